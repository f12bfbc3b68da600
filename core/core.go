package core

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/whisprnet/whispr-api/databases"
	"github.com/whisprnet/whispr-api/models"
)

// Policy holds the staking and reward constants of the ledger. MaxStake
// is carried as configuration but no lifecycle path currently enforces
// an upper bound.
type Policy struct {
	MinStake         uint64
	MaxStake         uint64
	RewardMultiplier uint64
	StartingBalance  uint64
}

// DefaultPolicy matches the shipped configuration defaults
var DefaultPolicy = Policy{
	MinStake:         5,
	MaxStake:         100,
	RewardMultiplier: 10,
	StartingBalance:  100,
}

// Store bundles the persisted collections the ledger operates on
type Store struct {
	Reports     databases.ReportDatabase
	Users       databases.UserDatabase
	Authorities databases.AuthorityDatabase
	Messages    databases.MessageDatabase
	Evidence    databases.EvidenceDatabase
	Counters    databases.CounterDatabase
	Stats       databases.StatsDatabase
}

// Ledger is the report lifecycle engine. Every state-mutating operation
// holds the write lock for its whole duration, so a submit/verify/reject
// sequence that touches Report, User and AuthorityStats together never
// interleaves with another one. Read-only operations share the read lock.
type Ledger struct {
	mu     sync.RWMutex
	store  Store
	policy Policy
}

// NewLedger creates a ledger over the given store with the given policy
func NewLedger(store Store, policy Policy) *Ledger {
	return &Ledger{
		store:  store,
		policy: policy,
	}
}

// Policy returns the ledger's staking policy
func (l *Ledger) Policy() Policy {
	return l.policy
}

// resolveAuthority maps the caller to its authority identity. Callers
// must hold at least the read lock.
func (l *Ledger) resolveAuthority(ctx context.Context, caller models.Principal) error {
	if caller.IsAnonymous() {
		return ErrUnauthenticated
	}
	ok, err := l.store.Authorities.Exists(ctx, caller)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotAuthority, caller)
	}
	return nil
}

// isAuthority is the non-failing membership check used for visibility
// filtering. The anonymous principal is never an authority.
func (l *Ledger) isAuthority(ctx context.Context, caller models.Principal) bool {
	if caller.IsAnonymous() {
		return false
	}
	ok, err := l.store.Authorities.Exists(ctx, caller)
	return err == nil && ok
}

// EnsureAuthority registers the principal as an authority if it is not
// one already. Used by process bootstrap to seed the registry; every
// later registration goes through AddAuthority.
func (l *Ledger) EnsureAuthority(ctx context.Context, id models.Principal) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	ok, err := l.store.Authorities.Exists(ctx, id)
	if err != nil || ok {
		return err
	}
	return l.store.Authorities.Save(ctx, models.Authority{
		ID:              id,
		ReportsReviewed: []uint64{},
	})
}

// EnsureStats writes the zero-valued statistics document if none exists
// yet, so the singleton is present from first startup
func (l *Ledger) EnsureStats(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	stats, err := l.store.Stats.Get(ctx)
	if err != nil {
		return err
	}
	return l.store.Stats.Save(ctx, stats)
}

func now() primitive.DateTime {
	return primitive.NewDateTimeFromTime(time.Now().UTC())
}
