package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sagecrest/pulsedash/internal/domain"
	"github.com/sagecrest/pulsedash/internal/domain/company"
	"github.com/sagecrest/pulsedash/internal/domain/contact"
	"github.com/sagecrest/pulsedash/internal/domain/credential"
	"github.com/sagecrest/pulsedash/internal/domain/entity"
	"github.com/sagecrest/pulsedash/internal/domain/goal"
	"github.com/sagecrest/pulsedash/internal/domain/metrics"
	"github.com/sagecrest/pulsedash/internal/domain/monthly"
)

// mockStore is an in-memory database.Store for service tests. Set err to
// force every call to fail.
type mockStore struct {
	mu sync.Mutex

	err error

	credentials []credential.Credential
	stats       map[company.Company]metrics.LiveStats
	logs        map[company.Company][]monthly.Log
	overrides   []metrics.Override
	goals       map[string]*goal.Goal
	submissions map[string]*contact.Submission
	records     map[string][]map[string]any

	statsCalls int
	nextID     int
}

func newMockStore() *mockStore {
	return &mockStore{
		stats:       make(map[company.Company]metrics.LiveStats),
		logs:        make(map[company.Company][]monthly.Log),
		goals:       make(map[string]*goal.Goal),
		submissions: make(map[string]*contact.Submission),
		records:     make(map[string][]map[string]any),
	}
}

func (m *mockStore) id() string {
	m.nextID++
	return fmt.Sprintf("id-%d", m.nextID)
}

func (m *mockStore) ListCredentials(context.Context) ([]credential.Credential, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.credentials, nil
}

func (m *mockStore) CreateCredential(_ context.Context, c *credential.Credential) error {
	if m.err != nil {
		return m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	c.ID = m.id()
	c.CreatedAt = time.Now()
	m.credentials = append(m.credentials, *c)
	return nil
}

func (m *mockStore) UpdateCredentialPassword(_ context.Context, id, hash string) error {
	if m.err != nil {
		return m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.credentials {
		if m.credentials[i].ID == id {
			m.credentials[i].PasswordHash = hash
			return nil
		}
	}
	return domain.ErrNotFound
}

func (m *mockStore) CompanyStats(_ context.Context, c company.Company) (metrics.LiveStats, error) {
	if m.err != nil {
		return metrics.LiveStats{}, m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.statsCalls++
	return m.stats[c], nil
}

func (m *mockStore) ListMonthlyLogs(_ context.Context, c company.Company) ([]monthly.Log, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.logs[c], nil
}

func (m *mockStore) UpsertMonthlyLog(_ context.Context, l *monthly.Log) error {
	if m.err != nil {
		return m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	logs := m.logs[l.Company]
	for i := range logs {
		if logs[i].Year == l.Year && logs[i].Month == l.Month {
			logs[i] = *l
			return nil
		}
	}
	m.logs[l.Company] = append(logs, *l)
	return nil
}

func (m *mockStore) ListOverrides(context.Context) ([]metrics.Override, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.overrides, nil
}

func (m *mockStore) UpsertOverride(_ context.Context, o *metrics.Override) error {
	if m.err != nil {
		return m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.overrides {
		if m.overrides[i].Company == o.Company && m.overrides[i].Key == o.Key {
			m.overrides[i].Value = o.Value
			return nil
		}
	}
	o.ID = m.id()
	m.overrides = append(m.overrides, *o)
	return nil
}

func (m *mockStore) DeleteOverride(_ context.Context, c company.Company, key metrics.Key) error {
	if m.err != nil {
		return m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.overrides {
		if m.overrides[i].Company == c && m.overrides[i].Key == key {
			m.overrides = append(m.overrides[:i], m.overrides[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (m *mockStore) ListGoals(_ context.Context, quarter, year int) ([]goal.Goal, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []goal.Goal
	for _, g := range m.goals {
		if g.Quarter == quarter && g.Year == year {
			out = append(out, *g)
		}
	}
	return out, nil
}

func (m *mockStore) GetGoal(_ context.Context, id string) (*goal.Goal, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	g, ok := m.goals[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *g
	return &cp, nil
}

func (m *mockStore) CreateGoal(_ context.Context, req goal.CreateRequest) (*goal.Goal, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	g := &goal.Goal{
		ID:           m.id(),
		Name:         req.Name,
		TargetValue:  req.TargetValue,
		CurrentValue: req.CurrentValue,
		Quarter:      req.Quarter,
		Year:         req.Year,
		MetricType:   req.MetricType,
		SortOrder:    req.SortOrder,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	m.goals[g.ID] = g
	cp := *g
	return &cp, nil
}

func (m *mockStore) UpdateGoal(_ context.Context, g *goal.Goal) error {
	if m.err != nil {
		return m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.goals[g.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *g
	m.goals[g.ID] = &cp
	return nil
}

func (m *mockStore) DeleteGoal(_ context.Context, id string) error {
	if m.err != nil {
		return m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.goals[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.goals, id)
	return nil
}

func (m *mockStore) CreateSubmission(_ context.Context, req contact.CreateRequest) (*contact.Submission, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	sub := &contact.Submission{
		ID:          m.id(),
		Name:        req.Name,
		Email:       req.Email,
		Company:     req.Company,
		Message:     req.Message,
		Status:      contact.StatusNew,
		SubmittedAt: time.Now(),
	}
	m.submissions[sub.ID] = sub
	cp := *sub
	return &cp, nil
}

func (m *mockStore) ListSubmissions(_ context.Context, status contact.Status) ([]contact.Submission, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []contact.Submission
	for _, sub := range m.submissions {
		if status == "" || sub.Status == status {
			out = append(out, *sub)
		}
	}
	return out, nil
}

func (m *mockStore) UpdateSubmission(_ context.Context, id string, req contact.UpdateRequest) (*contact.Submission, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	sub, ok := m.submissions[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if req.Status != nil {
		sub.Status = *req.Status
	}
	if req.Notes != nil {
		sub.Notes = *req.Notes
	}
	cp := *sub
	return &cp, nil
}

func (m *mockStore) EntityList(_ context.Context, t entity.Table) ([]map[string]any, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.records[t.Name], nil
}

func (m *mockStore) EntityCreate(_ context.Context, t entity.Table, fields map[string]any) (map[string]any, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	rec := map[string]any{"id": m.id()}
	for k, v := range fields {
		rec[k] = v
	}
	m.records[t.Name] = append(m.records[t.Name], rec)
	return rec, nil
}

func (m *mockStore) EntityUpdate(_ context.Context, t entity.Table, id string, fields map[string]any) (map[string]any, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, rec := range m.records[t.Name] {
		if rec["id"] == id {
			for k, v := range fields {
				rec[k] = v
			}
			return rec, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockStore) EntityDelete(_ context.Context, t entity.Table, id string) error {
	if m.err != nil {
		return m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	recs := m.records[t.Name]
	for i, rec := range recs {
		if rec["id"] == id {
			m.records[t.Name] = append(recs[:i], recs[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

// mockCache is a trivial map-backed cache (TTL ignored).
type mockCache struct {
	mu      sync.Mutex
	data    map[string][]byte
	sets    int
	deletes int
}

func newMockCache() *mockCache {
	return &mockCache{data: make(map[string][]byte)}
}

func (c *mockCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.data[key]
	return v, ok, nil
}

func (c *mockCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sets++
	c.data[key] = value
	return nil
}

func (c *mockCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.deletes++
	delete(c.data, key)
	return nil
}

// mockHub records broadcast events.
type mockHub struct {
	mu     sync.Mutex
	events []string
}

func (h *mockHub) BroadcastEvent(_ context.Context, eventType string, _ any) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, eventType)
}

func (h *mockHub) count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.events)
}
