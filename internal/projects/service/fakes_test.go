package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/dev-genie/dev-genie-backend/internal/generation/llm"
	"github.com/dev-genie/dev-genie-backend/internal/projects/domain"
)

type stubAdapter struct {
	provider llm.Provider
	text     string
	err      error
}

func (a stubAdapter) Provider() llm.Provider { return a.provider }

func (a stubAdapter) Complete(context.Context, llm.Call) (string, error) { return a.text, a.err }

func coordinator(adapters ...llm.Adapter) *llm.Coordinator {
	return llm.NewCoordinator(adapters, time.Second)
}

type memProjects struct {
	mu       sync.Mutex
	rows     []domain.Project
	batches  int
	failWith error
}

func (m *memProjects) InsertBatch(_ context.Context, ownerID string, recs []domain.Project) ([]domain.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	m.batches++
	out := make([]domain.Project, 0, len(recs))
	for i, r := range recs {
		r.ID = ownerID + "-" + time.Now().Format("150405.000000000") + "-" + string(rune('a'+i))
		r.OwnerID = ownerID
		r.CreatedAt = time.Now()
		out = append(out, r)
	}
	m.rows = append(m.rows, out...)
	return out, nil
}

func (m *memProjects) ListByOwner(_ context.Context, ownerID string, _ domain.ListFilter) ([]domain.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Project
	for _, r := range m.rows {
		if r.OwnerID == ownerID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memProjects) GetByID(_ context.Context, ownerID, id string) (*domain.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.rows {
		if r.ID == id && r.OwnerID == ownerID {
			p := r
			return &p, nil
		}
	}
	return nil, domain.ErrProjectNotFound
}

func (m *memProjects) Delete(_ context.Context, ownerID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, r := range m.rows {
		if r.ID == id && r.OwnerID == ownerID {
			m.rows = append(m.rows[:i], m.rows[i+1:]...)
			return nil
		}
	}
	return domain.ErrProjectNotFound
}

type memDetails struct {
	mu   sync.Mutex
	rows map[string]domain.Detail
}

func newMemDetails() *memDetails { return &memDetails{rows: map[string]domain.Detail{}} }

func (m *memDetails) GetByProjectID(_ context.Context, projectID string) (*domain.Detail, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.rows[projectID]
	if !ok {
		return nil, domain.ErrDetailNotFound
	}
	return &d, nil
}

func (m *memDetails) Insert(_ context.Context, d domain.Detail) (*domain.Detail, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.rows[d.ProjectID]; ok {
		return &existing, false, nil
	}
	d.ID = "detail-" + d.ProjectID
	d.CreatedAt = time.Now()
	m.rows[d.ProjectID] = d
	return &d, true, nil
}

type stubPrefs struct {
	provider llm.Provider
	ok       bool
}

func (p stubPrefs) PreferredProvider(context.Context, string) (llm.Provider, bool) {
	return p.provider, p.ok
}

type busyLocker struct{}

func (busyLocker) Acquire(context.Context, string) (func(context.Context) error, error) {
	return nil, errLockBusy
}

var errLockBusy = errors.New("unused")
