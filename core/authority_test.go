package core_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/whisprnet/whispr-api/api/testhelpers"
	"github.com/whisprnet/whispr-api/core"
	"github.com/whisprnet/whispr-api/models"
)

func TestAddAuthority(t *testing.T) {
	ledger, store := testhelpers.NewLedger(officer)
	ctx := context.Background()

	require.NoError(t, ledger.AddAuthority(ctx, officer, bob))

	authority := store.Authorities[bob]
	assert.Equal(t, bob, authority.ID)
	assert.Empty(t, authority.ReportsReviewed)

	// The new authority can itself register others.
	require.NoError(t, ledger.AddAuthority(ctx, bob, alice))
}

func TestAddAuthorityGuards(t *testing.T) {
	ledger, _ := testhelpers.NewLedger(officer)
	ctx := context.Background()

	assert.ErrorIs(t, ledger.AddAuthority(ctx, alice, bob), core.ErrNotAuthority)
	assert.ErrorIs(t, ledger.AddAuthority(ctx, models.Anonymous, bob), core.ErrUnauthenticated)
	assert.ErrorIs(t, ledger.AddAuthority(ctx, officer, officer), core.ErrAlreadyAuthority)
}

func TestStatistics(t *testing.T) {
	ledger, _ := testhelpers.NewLedger(officer)
	ctx := context.Background()

	first, err := ledger.SubmitReport(ctx, alice, submission(10))
	require.NoError(t, err)
	_, err = ledger.SubmitReport(ctx, alice, submission(10))
	require.NoError(t, err)
	third, err := ledger.SubmitReport(ctx, bob, submission(20))
	require.NoError(t, err)

	require.NoError(t, ledger.VerifyReport(ctx, officer, first, ""))
	require.NoError(t, ledger.RejectReport(ctx, officer, third, ""))

	stats, err := ledger.Statistics(ctx, officer)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), stats.ReportsPending)
	assert.Equal(t, uint64(1), stats.ReportsVerified)
	assert.Equal(t, uint64(1), stats.ReportsRejected)
	assert.Equal(t, uint64(100), stats.TotalRewardsDistributed)
}

func TestStatisticsGuards(t *testing.T) {
	ledger, _ := testhelpers.NewLedger(officer)
	ctx := context.Background()

	_, err := ledger.Statistics(ctx, alice)
	assert.ErrorIs(t, err, core.ErrNotAuthority)

	_, err = ledger.Statistics(ctx, models.Anonymous)
	assert.ErrorIs(t, err, core.ErrUnauthenticated)
}

func TestEnsureAuthorityIsIdempotent(t *testing.T) {
	ledger, store := testhelpers.NewLedger()
	ctx := context.Background()

	require.NoError(t, ledger.EnsureAuthority(ctx, officer))
	store.Authorities[officer] = models.Authority{
		ID:              officer,
		ReportsReviewed: []uint64{7},
		ReviewsApproved: 1,
		ApprovalRate:    1,
	}

	// A second call must not reset the existing record.
	require.NoError(t, ledger.EnsureAuthority(ctx, officer))
	assert.Equal(t, []uint64{7}, store.Authorities[officer].ReportsReviewed)
}
