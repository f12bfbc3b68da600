package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/whisprnet/whispr-api/databases"
	"github.com/whisprnet/whispr-api/models"
)

// Scheduler handles periodic background jobs for the ledger
type Scheduler struct {
	cron *cron.Cron
	RDB  databases.ReportDatabase
	SDB  databases.StatsDatabase
}

// NewScheduler creates a new scheduler instance
func NewScheduler(rDB databases.ReportDatabase, sDB databases.StatsDatabase) *Scheduler {
	return &Scheduler{
		cron: cron.New(cron.WithLocation(time.UTC)),
		RDB:  rDB,
		SDB:  sDB,
	}
}

// Start begins the scheduler with all registered jobs
func (s *Scheduler) Start() {
	// Audit the statistics counters against the report collection daily at 3 AM UTC
	_, err := s.cron.AddFunc("0 3 * * *", s.auditJob)
	if err != nil {
		zap.S().Errorw("failed to register statistics audit job", "error", err)
	}

	s.cron.Start()
	zap.S().Info("Statistics audit scheduler started")
}

// Stop gracefully stops the scheduler
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	zap.S().Info("Statistics audit scheduler stopped")
}

func (s *Scheduler) auditJob() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := s.Audit(ctx); err != nil {
		zap.S().Errorw("statistics audit failed", "error", err)
	}
}

// Audit recounts reports per status and compares the result to the stored
// statistics document. Divergence is logged, never repaired automatically.
func (s *Scheduler) Audit(ctx context.Context) error {
	stats, err := s.SDB.Get(ctx)
	if err != nil {
		return err
	}

	pending, err := s.RDB.CountByStatus(ctx, models.StatusPending)
	if err != nil {
		return err
	}
	underReview, err := s.RDB.CountByStatus(ctx, models.StatusUnderReview)
	if err != nil {
		return err
	}
	// Reports under review stay in the pending counter until settled.
	pending += underReview
	approved, err := s.RDB.CountByStatus(ctx, models.StatusApproved)
	if err != nil {
		return err
	}
	rejected, err := s.RDB.CountByStatus(ctx, models.StatusRejected)
	if err != nil {
		return err
	}

	if uint64(pending) != stats.ReportsPending ||
		uint64(approved) != stats.ReportsVerified ||
		uint64(rejected) != stats.ReportsRejected {
		zap.S().Errorw("statistics counters diverge from report collection",
			"statsPending", stats.ReportsPending, "countedPending", pending,
			"statsVerified", stats.ReportsVerified, "countedApproved", approved,
			"statsRejected", stats.ReportsRejected, "countedRejected", rejected,
		)
		return nil
	}

	zap.S().Debugw("statistics audit clean",
		"pending", pending, "approved", approved, "rejected", rejected,
	)
	return nil
}
