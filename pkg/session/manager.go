package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/automata/internal/compiler"
	"github.com/aretw0/automata/internal/logging"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/machine"
	"github.com/aretw0/automata/pkg/ports"
	"github.com/aretw0/automata/pkg/runner"
)

// DefaultLockTTL bounds how long a distributed run lock survives a crashed replica.
const DefaultLockTTL = 30 * time.Second

// lockEntry holds the mutex and the reference count.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// Manager compiles machines on demand, runs them and persists their reports.
// Concurrent runs of the same machine/input pair are serialized; it uses
// Reference Counting to garbage collect unused locks.
type Manager struct {
	loader ports.DefinitionLoader
	store  ports.ReportStore

	mu    sync.Mutex            // Global lock for the map
	locks map[string]*lockEntry // Map of active locks

	locker   ports.DistributedLocker // Optional distributed locker
	lockTTL  time.Duration
	logger   *slog.Logger
	hooks    domain.LifecycleHooks
	maxSteps int
}

var _ ports.RunService = (*Manager)(nil)

// Option configures the Manager.
type Option func(*Manager)

// WithLocker enables distributed locking.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(m *Manager) {
		m.locker = locker
	}
}

// WithLockTTL overrides DefaultLockTTL.
func WithLockTTL(ttl time.Duration) Option {
	return func(m *Manager) {
		m.lockTTL = ttl
	}
}

// WithLogger configures a logger for the Manager and the machines it builds.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// WithLifecycleHooks attaches hooks to every machine the Manager builds.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(m *Manager) {
		m.hooks = m.hooks.Merge(hooks)
	}
}

// WithMaxSteps bounds every run. Zero means unbounded.
func WithMaxSteps(n int) Option {
	return func(m *Manager) {
		m.maxSteps = n
	}
}

// NewManager creates a run Manager over a definition loader and a report store.
func NewManager(loader ports.DefinitionLoader, store ports.ReportStore, opts ...Option) *Manager {
	m := &Manager{
		loader:  loader,
		store:   store,
		locks:   make(map[string]*lockEntry),
		lockTTL: DefaultLockTTL,
		logger:  logging.NewNop(), // Default to no-op
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// acquire gets or creates a lock entry and increments its reference count.
// The caller MUST Lock the entry.mu, and then call release(key) after unlocking.
func (m *Manager) acquire(key string) *lockEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[key]
	if !exists {
		entry = &lockEntry{}
		m.locks[key] = entry
	}
	entry.refs++
	return entry
}

// release decrements the reference count and deletes the entry if it reaches zero.
func (m *Manager) release(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[key]
	if !exists {
		return
	}

	entry.refs--
	if entry.refs <= 0 {
		delete(m.locks, key)
	}
}

// Run compiles machineID, runs it over input and saves the report.
//
// A run that exhausts the step budget or is cancelled is still saved, with
// Halted set to false, and the error is returned alongside the report.
func (m *Manager) Run(ctx context.Context, machineID, input string) (*domain.RunReport, error) {
	var report *domain.RunReport
	err := m.WithLock(ctx, runKey(machineID, input), func(ctx context.Context) error {
		mach, err := m.build(ctx, machineID)
		if err != nil {
			return err
		}

		r := runner.NewRunner(runner.WithLogger(m.logger), runner.WithMaxSteps(m.maxSteps))
		var runErr error
		report, runErr = r.Run(ctx, mach, input)
		if report == nil {
			return runErr
		}

		// The run context may be the one that was cancelled.
		if err := m.store.Save(context.WithoutCancel(ctx), report); err != nil {
			return fmt.Errorf("failed to save report %s: %w", report.ID, err)
		}
		m.logger.Info("run stored",
			"machine", machineID,
			"report", report.ID,
			"result", report.Result,
			"steps", report.Steps,
			"halted", report.Halted,
		)
		return runErr
	})
	return report, err
}

func (m *Manager) build(ctx context.Context, machineID string) (*machine.Machine, error) {
	def, err := m.loader.GetDefinition(ctx, machineID)
	if err != nil {
		return nil, err
	}
	mach, err := compiler.Build(def, machine.WithLogger(m.logger), machine.WithLifecycleHooks(m.hooks))
	if err != nil {
		return nil, fmt.Errorf("compile %s: %w", machineID, err)
	}
	return mach, nil
}

// Report retrieves a stored report.
func (m *Manager) Report(ctx context.Context, id string) (*domain.RunReport, error) {
	return m.store.Load(ctx, id)
}

// Reports lists the stored report IDs.
func (m *Manager) Reports(ctx context.Context) ([]string, error) {
	return m.store.List(ctx)
}

// DeleteReport removes a stored report.
func (m *Manager) DeleteReport(ctx context.Context, id string) error {
	return m.WithLock(ctx, "report:"+id, func(ctx context.Context) error {
		return m.store.Delete(ctx, id)
	})
}

// Machines lists the IDs known to the loader.
func (m *Manager) Machines(ctx context.Context) ([]string, error) {
	return m.loader.ListDefinitions(ctx)
}

// Definition returns the declarative form of a machine.
func (m *Manager) Definition(ctx context.Context, machineID string) (*domain.Definition, error) {
	return m.loader.GetDefinition(ctx, machineID)
}

// Store returns the underlying report store.
func (m *Manager) Store() ports.ReportStore {
	return m.store
}

// WithLock executes a function while holding the lock for key.
func (m *Manager) WithLock(ctx context.Context, key string, fn func(context.Context) error) error {
	entry := m.acquire(key)
	entry.mu.Lock()
	defer func() {
		entry.mu.Unlock()
		m.release(key)
	}()

	if m.locker != nil {
		unlock, err := m.locker.Lock(ctx, key, m.lockTTL)
		if err != nil {
			return fmt.Errorf("failed to acquire distributed lock: %w", err)
		}
		defer func() {
			if err := unlock(context.WithoutCancel(ctx)); err != nil {
				m.logger.Warn("Failed to release distributed lock (will expire via TTL)",
					"key", key,
					"err", err,
				)
			}
		}()
	}

	return fn(ctx)
}

func runKey(machineID, input string) string {
	return "run:" + machineID + ":" + input
}
