package session

import (
	"context"
	"fmt"
	"testing"

	"github.com/aretw0/automata/pkg/domain"
)

// MockStore structure
type MockStore struct{}

func (m *MockStore) Save(ctx context.Context, report *domain.RunReport) error { return nil }
func (m *MockStore) Load(ctx context.Context, id string) (*domain.RunReport, error) {
	return nil, domain.ErrReportNotFound
}
func (m *MockStore) Delete(ctx context.Context, id string) error  { return nil }
func (m *MockStore) List(ctx context.Context) ([]string, error) { return nil, nil }

func TestManager_LockLifecycle(t *testing.T) {
	mgr := NewManager(nil, &MockStore{})
	ctx := context.Background()
	count := 10000

	// 1. Take and release many keys
	for i := 0; i < count; i++ {
		id := fmt.Sprintf("report-%d", i)
		_ = mgr.WithLock(ctx, id, func(context.Context) error { return nil })
		_ = mgr.DeleteReport(ctx, id)
	}

	// 2. Count locks remaining in map
	lockCount := len(mgr.locks)

	if lockCount != 0 {
		t.Errorf("Memory Leak Detected: %d locks remaining in memory after release", lockCount)
	}
}

func TestManager_LockReleasedOnError(t *testing.T) {
	mgr := NewManager(nil, &MockStore{})

	err := mgr.WithLock(context.Background(), "k", func(context.Context) error {
		return domain.ErrReportNotFound
	})
	if err != domain.ErrReportNotFound {
		t.Fatalf("expected fn error to propagate, got %v", err)
	}
	if len(mgr.locks) != 0 {
		t.Errorf("expected lock to be released, %d remaining", len(mgr.locks))
	}
}
