package memory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/automata/pkg/adapters/memory"
	"github.com/aretw0/automata/pkg/domain"
	contract "github.com/aretw0/automata/pkg/ports/tests"
)

func TestInMemoryLoader_Contract(t *testing.T) {
	loader, err := memory.NewLoader(map[string]string{
		"flip": ".LOGIC\nA] SCAN (1,B) (0,C)\nB] PRINT (0,A)\nC] PRINT (1,A)\n",
		"ones": ".LOGIC\nA] SCAN (1,A) (Ø,accept)\n",
	})
	require.NoError(t, err)

	contract.DefinitionLoaderContractTest(t, loader, map[string][]string{
		"flip": {"A", "B", "C"},
		"ones": {"A"},
	})
}

func TestInMemoryLoader_Isolation(t *testing.T) {
	loader, err := memory.NewFromDefinitions(domain.Definition{
		ID:     "m",
		States: []domain.StateDecl{{Name: "A", Command: domain.CommandScan}},
	})
	require.NoError(t, err)

	ctx := context.Background()
	def, err := loader.GetDefinition(ctx, "m")
	require.NoError(t, err)
	def.States[0].Name = "mutated"

	again, err := loader.GetDefinition(ctx, "m")
	require.NoError(t, err)
	assert.Equal(t, "A", again.States[0].Name)
}

func TestInMemoryLoader_Errors(t *testing.T) {
	_, err := memory.NewLoader(map[string]string{"bad": "A] SCAN\n"})
	assert.Error(t, err)

	_, err = memory.NewFromDefinitions(domain.Definition{})
	assert.Error(t, err)
}
