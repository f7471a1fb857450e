package ports

import (
	"context"

	"github.com/aretw0/automata/pkg/domain"
)

// RunService is the primary interface used by driving adapters (HTTP, MCP).
type RunService interface {
	// Run evaluates a machine over input and stores the resulting report.
	Run(ctx context.Context, machineID, input string) (*domain.RunReport, error)

	// Report returns a stored report.
	Report(ctx context.Context, id string) (*domain.RunReport, error)

	// Machines lists the available machine IDs.
	Machines(ctx context.Context) ([]string, error)

	// Definition returns the declarative form of a machine.
	Definition(ctx context.Context, machineID string) (*domain.Definition, error)
}
