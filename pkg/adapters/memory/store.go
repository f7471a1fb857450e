package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/aretw0/automata/pkg/domain"
)

// Store implements ports.ReportStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]*domain.RunReport
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]*domain.RunReport),
	}
}

// Save persists the report in memory.
func (s *Store) Save(ctx context.Context, report *domain.RunReport) error {
	// Deep copy to ensure isolation, similar to serialization
	copied := copyReport(report)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[report.ID] = copied
	return nil
}

// Load retrieves the report from memory.
func (s *Store) Load(ctx context.Context, id string) (*domain.RunReport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	report, ok := s.data[id]
	if !ok {
		return nil, domain.ErrReportNotFound
	}
	// Copy on read so callers can't mutate the store through the pointer
	return copyReport(report), nil
}

// Delete removes the report.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, id)
	return nil
}

// List returns the stored report IDs, sorted.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.data))
	for id := range s.data {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

func copyReport(r *domain.RunReport) *domain.RunReport {
	ret := *r
	ret.Timelines = make([]domain.TimelineSnapshot, len(r.Timelines))
	for i, tl := range r.Timelines {
		ret.Timelines[i] = copySnapshot(tl)
	}
	if r.Accepted != nil {
		acc := copySnapshot(*r.Accepted)
		ret.Accepted = &acc
	}
	return &ret
}

func copySnapshot(s domain.TimelineSnapshot) domain.TimelineSnapshot {
	if s.Memories != nil {
		mems := make(map[string]string, len(s.Memories))
		for k, v := range s.Memories {
			mems[k] = v
		}
		s.Memories = mems
	}
	return s
}
