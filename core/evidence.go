package core

import (
	"context"
	"fmt"

	"github.com/whisprnet/whispr-api/databases"
	"github.com/whisprnet/whispr-api/models"
)

// EvidenceUpload carries the metadata and bytes of an evidence file
type EvidenceUpload struct {
	Name     string `json:"name"`
	FileType string `json:"fileType"`
	Data     []byte `json:"data"`
}

// AttachEvidence stores an evidence file and links it to the caller's
// report. Only the report's submitter may attach evidence.
func (l *Ledger) AttachEvidence(ctx context.Context, caller models.Principal, reportID uint64, upload EvidenceUpload) (uint64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if caller.IsAnonymous() {
		return 0, fmt.Errorf("%w: cannot attach evidence", ErrUnauthenticated)
	}
	report, err := l.store.Reports.FindOne(ctx, reportID)
	if err != nil {
		return 0, err
	}
	if report == nil {
		return 0, fmt.Errorf("%w: report %d", ErrNotFound, reportID)
	}
	if report.SubmitterID != caller {
		return 0, fmt.Errorf("%w: evidence can only be attached to your own reports", ErrForbidden)
	}

	id, err := l.store.Counters.Next(ctx, databases.CounterEvidence)
	if err != nil {
		return 0, err
	}
	if err := l.store.Evidence.InsertOne(ctx, models.EvidenceFile{
		ID:         id,
		Name:       upload.Name,
		FileType:   upload.FileType,
		Data:       upload.Data,
		UploadDate: now(),
	}); err != nil {
		return 0, err
	}

	updated := *report
	updated.EvidenceFiles = append(updated.EvidenceFiles, id)
	updated.EvidenceCount++
	if err := l.store.Reports.ReplaceOne(ctx, updated); err != nil {
		return 0, err
	}
	return id, nil
}

// Evidence returns the file if the caller is an authority or the
// submitter of the report owning it, and nil otherwise
func (l *Ledger) Evidence(ctx context.Context, caller models.Principal, id uint64) (*models.EvidenceFile, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	file, err := l.store.Evidence.FindOne(ctx, id)
	if err != nil {
		return nil, err
	}
	if file == nil {
		return nil, nil
	}
	if l.isAuthority(ctx, caller) {
		return file, nil
	}
	if caller.IsAnonymous() {
		return nil, nil
	}

	// Ownership runs through the report's reference list.
	reports, err := l.store.Reports.FindBySubmitter(ctx, caller)
	if err != nil {
		return nil, err
	}
	for _, report := range reports {
		for _, ref := range report.EvidenceFiles {
			if ref == id {
				return file, nil
			}
		}
	}
	return nil, nil
}
