package core

import (
	"context"

	"github.com/whisprnet/whispr-api/models"
)

// statsReportCreated moves a freshly created report into the pending
// bucket. Called inside the same locked operation as the insert.
func (l *Ledger) statsReportCreated(ctx context.Context) error {
	stats, err := l.store.Stats.Get(ctx)
	if err != nil {
		return err
	}
	stats.ReportsPending++
	return l.store.Stats.Save(ctx, stats)
}

// statsStatusChanged shifts one report between status buckets and adds
// any paid reward to the distributed total. Unrecognized states are a
// no-op so a future transition through UnderReview cannot corrupt the
// terminal buckets. Called exactly once per transition, inside the same
// locked operation that replaces the report.
func (l *Ledger) statsStatusChanged(ctx context.Context, old, new models.ReportStatus, reward uint64) error {
	stats, err := l.store.Stats.Get(ctx)
	if err != nil {
		return err
	}
	switch old {
	case models.StatusPending:
		stats.ReportsPending--
	case models.StatusApproved:
		stats.ReportsVerified--
	case models.StatusRejected:
		stats.ReportsRejected--
	}
	switch new {
	case models.StatusPending:
		stats.ReportsPending++
	case models.StatusApproved:
		stats.ReportsVerified++
	case models.StatusRejected:
		stats.ReportsRejected++
	}
	stats.TotalRewardsDistributed += reward
	return l.store.Stats.Save(ctx, stats)
}
