package tests

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/ports"
)

// DefinitionLoaderContractTest is a reusable test suite that verifies if an adapter complies with ports.DefinitionLoader.
// want maps each expected ID to the names of its states, in declaration order.
func DefinitionLoaderContractTest(t *testing.T, loader ports.DefinitionLoader, want map[string][]string) {
	t.Helper()
	ctx := context.Background()

	// 1. GetDefinition (Success)
	t.Run("GetDefinition_Success", func(t *testing.T) {
		for id, states := range want {
			def, err := loader.GetDefinition(ctx, id)
			require.NoError(t, err, "getting %s", id)
			assert.Equal(t, id, def.ID)
			assert.Equal(t, states, def.StateNames())
		}
	})

	// 2. GetDefinition (NotFound)
	t.Run("GetDefinition_NotFound", func(t *testing.T) {
		_, err := loader.GetDefinition(ctx, "non-existent-machine")
		assert.ErrorIs(t, err, domain.ErrMachineNotFound)
	})

	// 3. ListDefinitions
	t.Run("ListDefinitions", func(t *testing.T) {
		ids, err := loader.ListDefinitions(ctx)
		require.NoError(t, err)
		for id := range want {
			assert.Contains(t, ids, id)
		}
		assert.IsNonDecreasing(t, ids)
	})
}
