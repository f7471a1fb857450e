package automata

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/automata/internal/compiler"
	"github.com/aretw0/automata/internal/logging"
	"github.com/aretw0/automata/pkg/adapters/file"
	loamAdapter "github.com/aretw0/automata/pkg/adapters/loam"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/machine"
	"github.com/aretw0/automata/pkg/ports"
	"github.com/aretw0/automata/pkg/runner"
)

// Engine is the high-level entry point for the automata library.
// It owns one compiled machine; runs on the same Engine must not overlap.
type Engine struct {
	machine  *machine.Machine
	def      *domain.Definition
	loader   ports.DefinitionLoader
	hooks    domain.LifecycleHooks
	logger   *slog.Logger
	maxSteps int
	Name     string
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = e.hooks.Merge(hooks)
	}
}

// WithLoader injects a custom DefinitionLoader. The source passed to New is
// then a machine ID instead of a path.
func WithLoader(l ports.DefinitionLoader) Option {
	return func(e *Engine) {
		e.loader = l
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithMaxSteps bounds every run to n generations. A run that reaches the bound
// returns domain.ErrStepBudget. Zero means unbounded.
func WithMaxSteps(n int) Option {
	return func(e *Engine) {
		e.maxSteps = n
	}
}

// New loads and compiles a machine.
//
// By default source is a definition file: a definition-language source (.tm,
// .automata), a YAML/JSON document, or a markdown document read through Loam.
// With WithLoader, source is the machine ID to fetch from that loader.
func New(source string, opts ...Option) (*Engine, error) {
	eng := &Engine{}
	for _, opt := range opts {
		opt(eng)
	}
	if eng.logger == nil {
		eng.logger = logging.NewNop()
	}

	id := source
	if eng.loader == nil {
		if source == "" {
			return nil, fmt.Errorf("source is required when no custom loader is provided")
		}
		loader, machineID, err := loaderFor(source)
		if err != nil {
			return nil, err
		}
		eng.loader, id = loader, machineID
	}
	eng.Name = id
	eng.logger = eng.logger.With("machine", id)

	def, err := eng.loader.GetDefinition(context.Background(), id)
	if err != nil {
		return nil, err
	}
	m, err := compiler.Build(def,
		machine.WithLogger(eng.logger),
		machine.WithLifecycleHooks(eng.hooks),
	)
	if err != nil {
		return nil, err
	}
	eng.def = def
	eng.machine = m
	return eng, nil
}

// loaderFor picks the loader that can read path and the ID of path in it.
func loaderFor(path string) (ports.DefinitionLoader, string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, "", fmt.Errorf("invalid path: %w", err)
	}
	if _, err := os.Stat(absPath); err != nil {
		return nil, "", fmt.Errorf("%w: %s", domain.ErrMachineNotFound, path)
	}

	dir, base := filepath.Split(absPath)
	ext := filepath.Ext(base)
	id := strings.TrimSuffix(base, ext)

	if strings.EqualFold(ext, ".md") {
		loader, err := loamAdapter.Open(dir)
		if err != nil {
			return nil, "", err
		}
		return loader, id, nil
	}
	if !compiler.IsDefinitionFile(base) {
		return nil, "", fmt.Errorf("unsupported definition file %s", base)
	}
	return file.NewLoader(dir), id, nil
}

// Run starts the machine on input and steps it to a halting generation.
func (e *Engine) Run(ctx context.Context, input string) (*domain.RunReport, error) {
	return e.Trace(ctx, input, nil)
}

// Trace is Run with a callback for every generation, the initial one included.
func (e *Engine) Trace(ctx context.Context, input string, fn runner.Observer) (*domain.RunReport, error) {
	r := runner.NewRunner(
		runner.WithLogger(e.logger),
		runner.WithMaxSteps(e.maxSteps),
		runner.WithObserver(fn),
	)
	return r.Run(ctx, e.machine, input)
}

// Machine returns the compiled machine.
func (e *Engine) Machine() *machine.Machine {
	return e.machine
}

// Definition returns the declarative form the machine was compiled from.
func (e *Engine) Definition() *domain.Definition {
	return e.def
}

// Loader returns the loader the definition came from.
func (e *Engine) Loader() ports.DefinitionLoader {
	return e.loader
}
