package automata_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/automata"
	"github.com/aretw0/automata/pkg/domain"
)

const flipSource = `// swaps zeros and ones
.LOGIC
A] SCAN (1,B), (0,C), (Ø,accept)
B] PRINT (0,A)
C] PRINT (1,A)
`

const flipYAML = `
states:
  - name: A
    command: SCAN
    transitions:
      - {trigger: "1", to: B}
      - {trigger: "0", to: C}
      - {trigger: "Ø", to: accept}
  - name: B
    command: PRINT
    transitions:
      - {trigger: "0", to: A}
  - name: C
    command: PRINT
    transitions:
      - {trigger: "1", to: A}
`

const flipDoc = "---\ndescription: swaps zeros and ones\n---\n# Flip\n\n```automata\n" + flipSource + "```\n"

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestFacade_Sources(t *testing.T) {
	dir := t.TempDir()
	sources := map[string]string{
		"source":   writeFile(t, dir, "flip.tm", flipSource),
		"yaml":     writeFile(t, dir, "flip_doc.yaml", flipYAML),
		"markdown": writeFile(t, t.TempDir(), "flip.md", flipDoc),
	}

	for name, path := range sources {
		t.Run(name, func(t *testing.T) {
			eng, err := automata.New(path)
			require.NoError(t, err)
			assert.NotEmpty(t, eng.Name)
			assert.Equal(t, []string{"A", "B", "C"}, eng.Definition().StateNames())

			report, err := eng.Run(context.Background(), "0011")
			require.NoError(t, err)
			assert.Equal(t, domain.ResultAccepted, report.Result)
			require.NotNil(t, report.Accepted)
			assert.Equal(t, "1100", report.Accepted.Output)

			// The engine can be run again on another input.
			report, err = eng.Run(context.Background(), "0121")
			require.NoError(t, err)
			assert.Equal(t, domain.ResultRejected, report.Result)
		})
	}
}

func TestFacade_Errors(t *testing.T) {
	_, err := automata.New("")
	assert.Error(t, err)

	_, err = automata.New(filepath.Join(t.TempDir(), "missing.tm"))
	assert.ErrorIs(t, err, domain.ErrMachineNotFound)

	dir := t.TempDir()
	_, err = automata.New(writeFile(t, dir, "notes.txt", "hello"))
	assert.ErrorContains(t, err, "unsupported")

	_, err = automata.New(writeFile(t, dir, "bad.tm", ".LOGIC\nA] SCAN (1,ghost)\n"))
	assert.ErrorIs(t, err, domain.ErrUnknownState)
}

func TestFacade_MaxSteps(t *testing.T) {
	path := writeFile(t, t.TempDir(), "loop.tm", ".LOGIC\nP] PRINT (x,P)\n")

	eng, err := automata.New(path, automata.WithMaxSteps(30))
	require.NoError(t, err)

	report, err := eng.Run(context.Background(), "")
	require.ErrorIs(t, err, domain.ErrStepBudget)
	assert.Equal(t, 30, report.Steps)
	assert.False(t, report.Halted)
}

func TestFacade_TraceAndHooks(t *testing.T) {
	path := writeFile(t, t.TempDir(), "flip.tm", flipSource)

	var starts, halts int
	eng, err := automata.New(path, automata.WithLifecycleHooks(domain.LifecycleHooks{
		OnRunStart: func(context.Context, *domain.RunEvent) { starts++ },
		OnRunHalt:  func(context.Context, *domain.RunEvent) { halts++ },
	}))
	require.NoError(t, err)

	var gens []int
	report, err := eng.Trace(context.Background(), "10", func(gen int, tls []domain.TimelineSnapshot) {
		gens = append(gens, gen)
	})
	require.NoError(t, err)
	assert.Equal(t, report.Steps+1, len(gens))
	assert.Equal(t, 1, starts)
	assert.Equal(t, 1, halts)
	assert.Same(t, eng.Machine(), eng.Machine())
	assert.NotNil(t, eng.Loader())
}

func TestVersion(t *testing.T) {
	assert.NotEmpty(t, automata.Version)
}

func TestFacade_ExampleMachines(t *testing.T) {
	cases := []struct {
		file   string
		input  string
		result domain.Result
		output string
	}{
		{"anbn.tm", "", domain.ResultAccepted, ""},
		{"anbn.tm", "aabb", domain.ResultAccepted, ""},
		{"anbn.tm", "aab", domain.ResultRejected, ""},
		{"anbn.tm", "ba", domain.ResultRejected, ""},
		{"flip.tm", "0110", domain.ResultAccepted, "1001"},
		{"fifo.tm", "0110", domain.ResultAccepted, "0110"},
		{"ends-with-ab.yaml", "bbab", domain.ResultAccepted, ""},
		{"ends-with-ab.yaml", "abba", domain.ResultRejected, ""},
	}

	for _, tc := range cases {
		t.Run(tc.file+"/"+tc.input, func(t *testing.T) {
			eng, err := automata.New(filepath.Join("examples", "machines", tc.file))
			require.NoError(t, err)

			report, err := eng.Run(context.Background(), tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.result, report.Result)
			if tc.result == domain.ResultAccepted {
				require.NotNil(t, report.Accepted)
				assert.Equal(t, tc.output, report.Accepted.Output)
			}
		})
	}
}
