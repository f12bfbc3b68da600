// Package testhelpers provides an in-memory implementation of the
// databases interfaces so ledger flows can be exercised without a
// running mongo instance.
package testhelpers

import (
	"context"
	"sort"
	"sync"

	"github.com/whisprnet/whispr-api/core"
	"github.com/whisprnet/whispr-api/databases"
	"github.com/whisprnet/whispr-api/models"
)

// MemStore holds every collection in plain maps. It is safe for
// concurrent use and exposes its contents for test assertions.
type MemStore struct {
	mu sync.Mutex

	Reports     map[uint64]models.Report
	Users       map[models.Principal]models.User
	Authorities map[models.Principal]models.Authority
	Messages    map[uint64]models.Message
	Evidence    map[uint64]models.EvidenceFile
	Counters    map[string]uint64
	Stats       models.AuthorityStats
}

// NewMemStore creates an empty in-memory store
func NewMemStore() *MemStore {
	return &MemStore{
		Reports:     map[uint64]models.Report{},
		Users:       map[models.Principal]models.User{},
		Authorities: map[models.Principal]models.Authority{},
		Messages:    map[uint64]models.Message{},
		Evidence:    map[uint64]models.EvidenceFile{},
		Counters:    map[string]uint64{},
	}
}

// Store bundles the in-memory collections into the shape the ledger takes
func (m *MemStore) Store() core.Store {
	return core.Store{
		Reports:     memReports{m},
		Users:       memUsers{m},
		Authorities: memAuthorities{m},
		Messages:    memMessages{m},
		Evidence:    memEvidence{m},
		Counters:    memCounters{m},
		Stats:       memStats{m},
	}
}

// NewLedger builds a ledger over a fresh in-memory store with the
// default policy and the given principals seeded as authorities.
func NewLedger(authorities ...models.Principal) (*core.Ledger, *MemStore) {
	store := NewMemStore()
	ledger := core.NewLedger(store.Store(), core.DefaultPolicy)
	for _, id := range authorities {
		store.Authorities[id] = models.Authority{ID: id, ReportsReviewed: []uint64{}}
	}
	return ledger, store
}

type memReports struct{ m *MemStore }

func (r memReports) FindOne(ctx context.Context, id uint64) (*models.Report, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	report, ok := r.m.Reports[id]
	if !ok {
		return nil, nil
	}
	return &report, nil
}

func (r memReports) findSorted(match func(models.Report) bool) []models.Report {
	reports := []models.Report{}
	for _, report := range r.m.Reports {
		if match(report) {
			reports = append(reports, report)
		}
	}
	sort.Slice(reports, func(i, j int) bool { return reports[i].ID < reports[j].ID })
	return reports
}

func (r memReports) FindAll(ctx context.Context) ([]models.Report, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	return r.findSorted(func(models.Report) bool { return true }), nil
}

func (r memReports) FindByStatus(ctx context.Context, status models.ReportStatus) ([]models.Report, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	return r.findSorted(func(report models.Report) bool { return report.Status == status }), nil
}

func (r memReports) FindBySubmitter(ctx context.Context, submitter models.Principal) ([]models.Report, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	return r.findSorted(func(report models.Report) bool { return report.SubmitterID == submitter }), nil
}

func (r memReports) InsertOne(ctx context.Context, report models.Report) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	r.m.Reports[report.ID] = report
	return nil
}

func (r memReports) ReplaceOne(ctx context.Context, report models.Report) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.Reports[report.ID]; !ok {
		return databases.ErrNoDocument
	}
	r.m.Reports[report.ID] = report
	return nil
}

func (r memReports) CountByStatus(ctx context.Context, status models.ReportStatus) (int64, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var n int64
	for _, report := range r.m.Reports {
		if report.Status == status {
			n++
		}
	}
	return n, nil
}

type memUsers struct{ m *MemStore }

func (u memUsers) FindOne(ctx context.Context, id models.Principal) (*models.User, error) {
	u.m.mu.Lock()
	defer u.m.mu.Unlock()
	user, ok := u.m.Users[id]
	if !ok {
		return nil, nil
	}
	return &user, nil
}

func (u memUsers) Save(ctx context.Context, user models.User) error {
	u.m.mu.Lock()
	defer u.m.mu.Unlock()
	u.m.Users[user.ID] = user
	return nil
}

type memAuthorities struct{ m *MemStore }

func (a memAuthorities) FindOne(ctx context.Context, id models.Principal) (*models.Authority, error) {
	a.m.mu.Lock()
	defer a.m.mu.Unlock()
	authority, ok := a.m.Authorities[id]
	if !ok {
		return nil, nil
	}
	return &authority, nil
}

func (a memAuthorities) Exists(ctx context.Context, id models.Principal) (bool, error) {
	a.m.mu.Lock()
	defer a.m.mu.Unlock()
	_, ok := a.m.Authorities[id]
	return ok, nil
}

func (a memAuthorities) Save(ctx context.Context, authority models.Authority) error {
	a.m.mu.Lock()
	defer a.m.mu.Unlock()
	a.m.Authorities[authority.ID] = authority
	return nil
}

type memMessages struct{ m *MemStore }

func (s memMessages) InsertOne(ctx context.Context, message models.Message) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	s.m.Messages[message.ID] = message
	return nil
}

func (s memMessages) FindByReport(ctx context.Context, reportID uint64) ([]models.Message, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	messages := []models.Message{}
	for _, message := range s.m.Messages {
		if message.ReportID == reportID {
			messages = append(messages, message)
		}
	}
	sort.Slice(messages, func(i, j int) bool { return messages[i].ID < messages[j].ID })
	return messages, nil
}

type memEvidence struct{ m *MemStore }

func (e memEvidence) InsertOne(ctx context.Context, file models.EvidenceFile) error {
	e.m.mu.Lock()
	defer e.m.mu.Unlock()
	e.m.Evidence[file.ID] = file
	return nil
}

func (e memEvidence) FindOne(ctx context.Context, id uint64) (*models.EvidenceFile, error) {
	e.m.mu.Lock()
	defer e.m.mu.Unlock()
	file, ok := e.m.Evidence[id]
	if !ok {
		return nil, nil
	}
	return &file, nil
}

type memCounters struct{ m *MemStore }

func (c memCounters) Next(ctx context.Context, name string) (uint64, error) {
	c.m.mu.Lock()
	defer c.m.mu.Unlock()
	c.m.Counters[name]++
	return c.m.Counters[name], nil
}

type memStats struct{ m *MemStore }

func (s memStats) Get(ctx context.Context) (models.AuthorityStats, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	return s.m.Stats, nil
}

func (s memStats) Save(ctx context.Context, stats models.AuthorityStats) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	s.m.Stats = stats
	return nil
}
