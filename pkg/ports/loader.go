package ports

import (
	"context"

	"github.com/aretw0/automata/pkg/domain"
)

// DefinitionLoader defines how machine definitions are retrieved.
// This allows the storage layer (files, Loam, memory) to be decoupled.
type DefinitionLoader interface {
	// GetDefinition returns the definition with the given ID.
	// Returns domain.ErrMachineNotFound if it does not exist.
	GetDefinition(ctx context.Context, id string) (*domain.Definition, error)

	// ListDefinitions returns the IDs of all available definitions, sorted.
	ListDefinitions(ctx context.Context) ([]string, error)
}
