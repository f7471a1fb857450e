package file

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/automata/internal/compiler"
	"github.com/aretw0/automata/pkg/domain"
)

// Loader implements ports.DefinitionLoader over a directory tree.
// A file machines/pda/stack.tm is served as "pda/stack".
type Loader struct {
	root fs.FS
	dir  string
}

// NewLoader reads definitions below dir.
func NewLoader(dir string) *Loader {
	return &Loader{root: os.DirFS(dir), dir: dir}
}

// NewLoaderFS reads definitions from any fs.FS (embed.FS, fstest.MapFS).
func NewLoaderFS(fsys fs.FS) *Loader {
	return &Loader{root: fsys, dir: "."}
}

// GetDefinition parses the file whose path without extension is id.
func (l *Loader) GetDefinition(ctx context.Context, id string) (*domain.Definition, error) {
	files, err := l.index()
	if err != nil {
		return nil, err
	}
	path, ok := files[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrMachineNotFound, id)
	}

	data, err := fs.ReadFile(l.root, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	def, err := compiler.ParseFile(path, data)
	if err != nil {
		return nil, err
	}
	def.ID = id
	return def, nil
}

// ListDefinitions returns every definition ID found, sorted.
func (l *Loader) ListDefinitions(ctx context.Context) ([]string, error) {
	files, err := l.index()
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(files))
	for id := range files {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// Source returns the raw bytes of a definition, for diagnostics.
func (l *Loader) Source(id string) (string, []byte, error) {
	files, err := l.index()
	if err != nil {
		return "", nil, err
	}
	path, ok := files[id]
	if !ok {
		return "", nil, fmt.Errorf("%w: %s", domain.ErrMachineNotFound, id)
	}
	data, err := fs.ReadFile(l.root, path)
	return filepath.Join(l.dir, path), data, err
}

// index maps IDs to paths. The directory is re-read on every call so edits
// show up without a restart.
func (l *Loader) index() (map[string]string, error) {
	files := make(map[string]string)
	err := fs.WalkDir(l.root, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != "." && strings.HasPrefix(d.Name(), ".") {
				return fs.SkipDir
			}
			return nil
		}
		if !compiler.IsDefinitionFile(path) {
			return nil
		}
		id := strings.TrimSuffix(path, filepath.Ext(path))
		if prev, dup := files[id]; dup {
			return fmt.Errorf("machine %s is defined twice: %s and %s", id, prev, path)
		}
		files[id] = path
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", l.dir, err)
	}
	return files, nil
}
