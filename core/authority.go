package core

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/whisprnet/whispr-api/models"
)

// Statistics returns a snapshot of the aggregate counters. Authority only.
func (l *Ledger) Statistics(ctx context.Context, caller models.Principal) (models.AuthorityStats, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if err := l.resolveAuthority(ctx, caller); err != nil {
		return models.AuthorityStats{}, err
	}
	return l.store.Stats.Get(ctx)
}

// AddAuthority registers a new authority. Only an existing authority may
// register one; the bootstrap seed covers the first.
func (l *Ledger) AddAuthority(ctx context.Context, caller, id models.Principal) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.resolveAuthority(ctx, caller); err != nil {
		return err
	}
	ok, err := l.store.Authorities.Exists(ctx, id)
	if err != nil {
		return err
	}
	if ok {
		return fmt.Errorf("%w: %s", ErrAlreadyAuthority, id)
	}
	if err := l.store.Authorities.Save(ctx, models.Authority{
		ID:              id,
		ReportsReviewed: []uint64{},
	}); err != nil {
		return err
	}

	zap.S().Infow("authority registered",
		"authority", id,
		"registeredBy", caller,
	)
	return nil
}

// recordReview appends the settled report to the authority's review
// history and keeps the running approval rate current. Callers must hold
// the write lock.
func (l *Ledger) recordReview(ctx context.Context, id models.Principal, reportID uint64, approved bool) error {
	authority, err := l.store.Authorities.FindOne(ctx, id)
	if err != nil {
		return err
	}
	if authority == nil {
		// The guard already ran, so a missing record means the registry
		// entry was written without review history yet.
		authority = &models.Authority{ID: id, ReportsReviewed: []uint64{}}
	}
	authority.ReportsReviewed = append(authority.ReportsReviewed, reportID)
	if approved {
		authority.ReviewsApproved++
	}
	authority.ApprovalRate = float64(authority.ReviewsApproved) / float64(len(authority.ReportsReviewed))
	return l.store.Authorities.Save(ctx, *authority)
}
