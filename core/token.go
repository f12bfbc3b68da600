package core

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/whisprnet/whispr-api/models"
)

// Balance returns the caller's token balance, or 0 for the anonymous or
// unknown caller
func (l *Ledger) Balance(ctx context.Context, caller models.Principal) (uint64, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if caller.IsAnonymous() {
		return 0, nil
	}
	user, err := l.store.Users.FindOne(ctx, caller)
	if err != nil {
		return 0, err
	}
	if user == nil {
		return 0, nil
	}
	return user.TokenBalance, nil
}

// Transfer moves tokens between two users independent of any report. The
// destination user is created lazily with a zero balance; both records
// are replaced under the ledger lock as one unit.
func (l *Ledger) Transfer(ctx context.Context, from, to models.Principal, amount uint64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if from.IsAnonymous() {
		return fmt.Errorf("%w: cannot transfer tokens", ErrUnauthenticated)
	}
	source, err := l.store.Users.FindOne(ctx, from)
	if err != nil {
		return err
	}
	if source == nil {
		return fmt.Errorf("%w: source user %s", ErrNotFound, from)
	}
	if source.TokenBalance < amount {
		return fmt.Errorf("%w: balance is %d, transfer is %d", ErrInsufficientBalance, source.TokenBalance, amount)
	}
	if from == to {
		return nil
	}

	destination, err := l.store.Users.FindOne(ctx, to)
	if err != nil {
		return err
	}
	if destination == nil {
		destination = &models.User{
			ID:               to,
			ReportsSubmitted: []uint64{},
		}
	}

	source.TokenBalance -= amount
	destination.TokenBalance += amount
	if err := l.store.Users.Save(ctx, *source); err != nil {
		return err
	}
	if err := l.store.Users.Save(ctx, *destination); err != nil {
		return err
	}

	zap.S().Infow("tokens transferred",
		"from", from,
		"to", to,
		"amount", amount,
	)
	return nil
}
