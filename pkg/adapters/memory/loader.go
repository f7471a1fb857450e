package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/aretw0/automata/internal/compiler"
	"github.com/aretw0/automata/pkg/domain"
)

// Loader implements ports.DefinitionLoader using an in-memory map.
// Definitions are kept serialized so every read returns a fresh copy.
type Loader struct {
	defs map[string][]byte
}

// NewLoader creates a Loader from definition-language sources keyed by ID.
func NewLoader(sources map[string]string) (*Loader, error) {
	defs := make([]domain.Definition, 0, len(sources))
	for id, src := range sources {
		def, err := compiler.NewParser().Parse([]byte(src))
		if err != nil {
			return nil, fmt.Errorf("machine %s: %w", id, err)
		}
		def.ID = id
		defs = append(defs, *def)
	}
	return NewFromDefinitions(defs...)
}

// NewFromDefinitions creates a Loader from domain objects.
func NewFromDefinitions(defs ...domain.Definition) (*Loader, error) {
	data := make(map[string][]byte, len(defs))
	for _, d := range defs {
		if d.ID == "" {
			return nil, fmt.Errorf("definition missing ID")
		}
		bytes, err := json.Marshal(d)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal definition %s: %w", d.ID, err)
		}
		data[d.ID] = bytes
	}
	return &Loader{defs: data}, nil
}

// GetDefinition returns a copy of the definition with the given ID.
func (l *Loader) GetDefinition(ctx context.Context, id string) (*domain.Definition, error) {
	content, ok := l.defs[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrMachineNotFound, id)
	}
	var def domain.Definition
	if err := json.Unmarshal(content, &def); err != nil {
		return nil, fmt.Errorf("failed to decode definition %s: %w", id, err)
	}
	return &def, nil
}

// ListDefinitions returns all available IDs.
func (l *Loader) ListDefinitions(ctx context.Context) ([]string, error) {
	keys := make([]string, 0, len(l.defs))
	for k := range l.defs {
		keys = append(keys, k)
	}
	sort.Strings(keys) // Deterministic order
	return keys, nil
}
