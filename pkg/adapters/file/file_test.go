package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/automata/pkg/adapters/file"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/ports"
	contract "github.com/aretw0/automata/pkg/ports/tests"
)

// Ensure the adapters implement their ports
var (
	_ ports.ReportStore      = (*file.Store)(nil)
	_ ports.DefinitionLoader = (*file.Loader)(nil)
)

func TestFileStore_Contract(t *testing.T) {
	ports.RunReportStoreContract(t, file.NewStore(t.TempDir()))
}

func TestFileStore_EmptyID(t *testing.T) {
	store := file.NewStore(t.TempDir())
	ctx := context.Background()

	assert.Error(t, store.Save(ctx, &domain.RunReport{}))
	_, err := store.Load(ctx, "")
	assert.Error(t, err)
	assert.Error(t, store.Delete(ctx, ""))
}

func TestFileStore_ListMissingDir(t *testing.T) {
	store := file.NewStore(filepath.Join(t.TempDir(), "missing"))
	ids, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestFileLoader_Contract(t *testing.T) {
	dir := t.TempDir()
	write := func(rel, content string) {
		path := filepath.Join(dir, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	write("flip.tm", ".LOGIC\nA] SCAN (1,B) (0,C)\nB] PRINT (0,A)\nC] PRINT (1,A)\n")
	write("pda/ones.yaml", "states:\n  - name: A\n    command: SCAN\n    transitions:\n      - {trigger: 1, to: A}\n")
	write("README.md", "# not a machine")
	write(".hidden/skip.tm", ".LOGIC\nA] SCAN\n")

	loader := file.NewLoader(dir)
	contract.DefinitionLoaderContractTest(t, loader, map[string][]string{
		"flip":     {"A", "B", "C"},
		"pda/ones": {"A"},
	})

	ids, err := loader.ListDefinitions(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"flip", "pda/ones"}, ids)
}

func TestFileLoader_FS(t *testing.T) {
	loader := file.NewLoaderFS(fstest.MapFS{
		"a.tm":   {Data: []byte(".LOGIC\nA] SCAN\n")},
		"a.yaml": {Data: []byte("states: [{name: A}]\n")},
	})
	_, err := loader.ListDefinitions(context.Background())
	assert.ErrorContains(t, err, "defined twice")
}

func TestFileLoader_Source(t *testing.T) {
	loader := file.NewLoaderFS(fstest.MapFS{
		"m.tm": {Data: []byte(".LOGIC\nA] SCAN\n")},
	})
	path, data, err := loader.Source("m")
	require.NoError(t, err)
	assert.Equal(t, "m.tm", path)
	assert.Contains(t, string(data), "A] SCAN")

	_, _, err = loader.Source("nope")
	assert.ErrorIs(t, err, domain.ErrMachineNotFound)
}
