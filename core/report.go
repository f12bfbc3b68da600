package core

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/whisprnet/whispr-api/databases"
	"github.com/whisprnet/whispr-api/models"
)

// ReportSubmission carries the caller-supplied fields of a new report
type ReportSubmission struct {
	Title         string           `json:"title"`
	Description   string           `json:"description"`
	Category      string           `json:"category"`
	Location      *models.Location `json:"location,omitempty"`
	IncidentDate  string           `json:"incidentDate,omitempty"`
	StakeAmount   uint64           `json:"stakeAmount"`
	EvidenceCount uint32           `json:"evidenceCount"`
}

// SubmitReport creates a Pending report staked by the caller. The stake
// is debited from the caller's balance and held in stakesActive until an
// authority settles the report. Users are created on first contact with
// the configured starting balance. Returns the new report ID.
func (l *Ledger) SubmitReport(ctx context.Context, caller models.Principal, sub ReportSubmission) (uint64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if caller.IsAnonymous() {
		return 0, fmt.Errorf("%w: cannot submit reports", ErrUnauthenticated)
	}
	if sub.StakeAmount < l.policy.MinStake {
		return 0, fmt.Errorf("%w: minimum stake is %d tokens", ErrInvalidStake, l.policy.MinStake)
	}

	user, err := l.store.Users.FindOne(ctx, caller)
	if err != nil {
		return 0, err
	}
	if user == nil {
		user = &models.User{
			ID:               caller,
			TokenBalance:     l.policy.StartingBalance,
			ReportsSubmitted: []uint64{},
		}
	}
	if user.TokenBalance < sub.StakeAmount {
		return 0, fmt.Errorf("%w: balance is %d, stake is %d", ErrInsufficientBalance, user.TokenBalance, sub.StakeAmount)
	}

	id, err := l.store.Counters.Next(ctx, databases.CounterReports)
	if err != nil {
		return 0, err
	}

	report := models.Report{
		ID:            id,
		Title:         sub.Title,
		Description:   sub.Description,
		Category:      sub.Category,
		DateSubmitted: now(),
		IncidentDate:  sub.IncidentDate,
		Location:      sub.Location,
		SubmitterID:   caller,
		EvidenceCount: sub.EvidenceCount,
		EvidenceFiles: []uint64{},
		StakeAmount:   sub.StakeAmount,
		Status:        models.StatusPending,
	}
	if err := l.store.Reports.InsertOne(ctx, report); err != nil {
		return 0, err
	}
	if err := l.statsReportCreated(ctx); err != nil {
		return 0, err
	}

	user.TokenBalance -= sub.StakeAmount
	user.StakesActive += sub.StakeAmount
	user.ReportsSubmitted = append(user.ReportsSubmitted, id)
	if err := l.store.Users.Save(ctx, *user); err != nil {
		return 0, err
	}

	if err := l.systemMessage(ctx, id, fmt.Sprintf("Report submitted with a stake of %d tokens", sub.StakeAmount)); err != nil {
		return 0, err
	}

	zap.S().Infow("report submitted",
		"reportId", id,
		"category", sub.Category,
		"stake", sub.StakeAmount,
	)
	return id, nil
}

// AllReports returns every report. Authority only.
func (l *Ledger) AllReports(ctx context.Context, caller models.Principal) ([]models.Report, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if err := l.resolveAuthority(ctx, caller); err != nil {
		return nil, err
	}
	return l.store.Reports.FindAll(ctx)
}

// ReportsByStatus returns reports in the given lifecycle state. Authority only.
func (l *Ledger) ReportsByStatus(ctx context.Context, caller models.Principal, status models.ReportStatus) ([]models.Report, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if err := l.resolveAuthority(ctx, caller); err != nil {
		return nil, err
	}
	return l.store.Reports.FindByStatus(ctx, status)
}

// Report returns the report if the caller is its submitter or an
// authority, and nil otherwise. Denials and unknown IDs both come back
// as an absent result rather than an error so existence is not leaked.
func (l *Ledger) Report(ctx context.Context, caller models.Principal, id uint64) (*models.Report, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	report, err := l.store.Reports.FindOne(ctx, id)
	if err != nil {
		return nil, err
	}
	if report == nil {
		return nil, nil
	}
	if report.SubmitterID != caller && !l.isAuthority(ctx, caller) {
		return nil, nil
	}
	return report, nil
}

// UserReports returns the caller's own reports; empty for the anonymous caller
func (l *Ledger) UserReports(ctx context.Context, caller models.Principal) ([]models.Report, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if caller.IsAnonymous() {
		return []models.Report{}, nil
	}
	return l.store.Reports.FindBySubmitter(ctx, caller)
}

// VerifyReport settles a Pending report as Approved: the submitter gets
// the stake back plus stake times the reward multiplier, and the reward
// is added to the distributed total. Authority only.
func (l *Ledger) VerifyReport(ctx context.Context, caller models.Principal, reportID uint64, notes string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.resolveAuthority(ctx, caller); err != nil {
		return err
	}
	report, err := l.store.Reports.FindOne(ctx, reportID)
	if err != nil {
		return err
	}
	if report == nil {
		return fmt.Errorf("%w: report %d", ErrNotFound, reportID)
	}
	if report.Status != models.StatusPending {
		return fmt.Errorf("%w: report is already in %s state", ErrInvalidState, report.Status)
	}
	submitter, err := l.store.Users.FindOne(ctx, report.SubmitterID)
	if err != nil {
		return err
	}
	if submitter == nil {
		// A report pointing at a missing submitter is an unrecoverable
		// consistency error; surface it, never patch it.
		return fmt.Errorf("%w: submitter %s of report %d", ErrNotFound, report.SubmitterID, reportID)
	}

	stake := report.StakeAmount
	reward := stake * l.policy.RewardMultiplier
	reviewDate := now()

	updated := *report
	updated.Status = models.StatusApproved
	updated.Reviewer = caller
	updated.ReviewDate = &reviewDate
	updated.ReviewNotes = notes
	updated.RewardAmount = reward
	if err := l.store.Reports.ReplaceOne(ctx, updated); err != nil {
		return err
	}
	if err := l.statsStatusChanged(ctx, models.StatusPending, models.StatusApproved, reward); err != nil {
		return err
	}

	submitter.TokenBalance += stake + reward
	submitter.StakesActive -= stake
	submitter.RewardsEarned += reward
	if err := l.store.Users.Save(ctx, *submitter); err != nil {
		return err
	}

	if err := l.recordReview(ctx, caller, reportID, true); err != nil {
		return err
	}
	if err := l.systemMessage(ctx, reportID, fmt.Sprintf("This report has been verified. %d tokens have been awarded as a reward.", reward)); err != nil {
		return err
	}

	zap.S().Infow("report verified",
		"reportId", reportID,
		"reviewer", caller,
		"reward", reward,
	)
	return nil
}

// RejectReport settles a Pending report as Rejected: the stake is
// forfeited, moving from stakesActive to stakesLost without restoring
// the balance. Authority only.
func (l *Ledger) RejectReport(ctx context.Context, caller models.Principal, reportID uint64, notes string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.resolveAuthority(ctx, caller); err != nil {
		return err
	}
	report, err := l.store.Reports.FindOne(ctx, reportID)
	if err != nil {
		return err
	}
	if report == nil {
		return fmt.Errorf("%w: report %d", ErrNotFound, reportID)
	}
	if report.Status != models.StatusPending {
		return fmt.Errorf("%w: report is already in %s state", ErrInvalidState, report.Status)
	}
	submitter, err := l.store.Users.FindOne(ctx, report.SubmitterID)
	if err != nil {
		return err
	}
	if submitter == nil {
		return fmt.Errorf("%w: submitter %s of report %d", ErrNotFound, report.SubmitterID, reportID)
	}

	stake := report.StakeAmount
	reviewDate := now()

	updated := *report
	updated.Status = models.StatusRejected
	updated.Reviewer = caller
	updated.ReviewDate = &reviewDate
	updated.ReviewNotes = notes
	if err := l.store.Reports.ReplaceOne(ctx, updated); err != nil {
		return err
	}
	if err := l.statsStatusChanged(ctx, models.StatusPending, models.StatusRejected, 0); err != nil {
		return err
	}

	submitter.StakesActive -= stake
	submitter.StakesLost += stake
	if err := l.store.Users.Save(ctx, *submitter); err != nil {
		return err
	}

	if err := l.recordReview(ctx, caller, reportID, false); err != nil {
		return err
	}
	if err := l.systemMessage(ctx, reportID, fmt.Sprintf("This report has been rejected. The staked %d tokens have been lost.", stake)); err != nil {
		return err
	}

	zap.S().Infow("report rejected",
		"reportId", reportID,
		"reviewer", caller,
		"stakeLost", stake,
	)
	return nil
}
