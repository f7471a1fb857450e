package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/aretw0/automata/internal/compiler"
	"github.com/aretw0/automata/internal/validator"
	"github.com/aretw0/automata/pkg/adapters/file"
	"github.com/aretw0/automata/pkg/domain"
)

// ErrInvalid is returned by Validate when at least one definition has errors.
var ErrInvalid = errors.New("invalid definitions")

// Validate checks definition files, or every definition under a directory,
// and prints one block per machine.
func Validate(ctx context.Context, paths []string, out io.Writer) error {
	failed := 0
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return err
		}
		if !info.IsDir() {
			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			if !validateSource(out, path, data) {
				failed++
			}
			continue
		}

		loader := file.NewLoader(path)
		ids, err := loader.ListDefinitions(ctx)
		if err != nil {
			return err
		}
		for _, id := range ids {
			name, data, err := loader.Source(id)
			if err != nil {
				return err
			}
			if !validateSource(out, name, data) {
				failed++
			}
		}
	}
	if failed > 0 {
		return fmt.Errorf("%w: %d", ErrInvalid, failed)
	}
	return nil
}

func validateSource(out io.Writer, name string, data []byte) bool {
	def, err := compiler.ParseFile(name, data)
	if err != nil {
		fmt.Fprintf(out, "%s %s\n  %v\n", domain.StatusRejected.Emoji(), name, err)
		return false
	}

	issues := validator.ValidateGraph(def, data)
	ok := validator.Err(issues) == nil
	mark := domain.StatusAccepted.Emoji()
	if !ok {
		mark = domain.StatusRejected.Emoji()
	}
	fmt.Fprintf(out, "%s %s (%d states)\n", mark, name, len(def.States))
	for _, issue := range issues {
		fmt.Fprintf(out, "  %s\n", issue)
	}
	return ok
}
