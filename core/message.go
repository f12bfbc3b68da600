package core

import (
	"context"
	"fmt"

	"github.com/whisprnet/whispr-api/databases"
	"github.com/whisprnet/whispr-api/models"
)

// appendMessage allocates a message ID and appends the message to the
// report's thread. Callers must hold the write lock.
func (l *Ledger) appendMessage(ctx context.Context, reportID uint64, sender models.MessageSender, content string, attachment []byte) error {
	id, err := l.store.Counters.Next(ctx, databases.CounterMessages)
	if err != nil {
		return err
	}
	return l.store.Messages.InsertOne(ctx, models.Message{
		ID:         id,
		ReportID:   reportID,
		Sender:     sender,
		Content:    content,
		Timestamp:  now(),
		Attachment: attachment,
	})
}

func (l *Ledger) systemMessage(ctx context.Context, reportID uint64, content string) error {
	return l.appendMessage(ctx, reportID, models.MessageSender{Kind: models.SenderSystem}, content, nil)
}

// SendAuthorityMessage appends a message to the report thread on behalf
// of the calling authority
func (l *Ledger) SendAuthorityMessage(ctx context.Context, caller models.Principal, reportID uint64, content string) error {
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
	return l.appendMessage(ctx, reportID, models.MessageSender{Kind: models.SenderAuthority, ID: caller}, content, nil)
}

// SendReporterMessage appends a message to the thread of one of the
// caller's own reports
func (l *Ledger) SendReporterMessage(ctx context.Context, caller models.Principal, reportID uint64, content string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if caller.IsAnonymous() {
		return fmt.Errorf("%w: cannot send messages", ErrUnauthenticated)
	}
	report, err := l.store.Reports.FindOne(ctx, reportID)
	if err != nil {
		return err
	}
	if report == nil {
		return fmt.Errorf("%w: report %d", ErrNotFound, reportID)
	}
	if report.SubmitterID != caller {
		return fmt.Errorf("%w: messages can only be sent for your own reports", ErrForbidden)
	}
	return l.appendMessage(ctx, reportID, models.MessageSender{Kind: models.SenderReporter, ID: caller}, content, nil)
}

// Messages returns the ordered thread of a report when the caller is its
// submitter or an authority, and an empty thread otherwise. Unknown
// report IDs also come back empty rather than as an error.
func (l *Ledger) Messages(ctx context.Context, caller models.Principal, reportID uint64) ([]models.Message, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	report, err := l.store.Reports.FindOne(ctx, reportID)
	if err != nil {
		return nil, err
	}
	if report == nil {
		return []models.Message{}, nil
	}
	if report.SubmitterID != caller && !l.isAuthority(ctx, caller) {
		return []models.Message{}, nil
	}
	return l.store.Messages.FindByReport(ctx, reportID)
}
