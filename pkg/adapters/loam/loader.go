package loam

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/loam"

	"github.com/aretw0/automata/internal/compiler"
	"github.com/aretw0/automata/pkg/domain"
)

// Loader adapts a Loam vault to the DefinitionLoader interface.
//
// A document declares its machine either in the frontmatter (memories/states,
// same shape as a YAML definition) or as definition-language source in its body,
// optionally inside a fenced code block.
type Loader struct {
	Repo *loam.TypedRepository[MachineMetadata]
}

// New creates a new Loam adapter.
func New(repo *loam.TypedRepository[MachineMetadata]) *Loader {
	return &Loader{
		Repo: repo,
	}
}

// Open initializes a read-only, strict Loam repository at path.
func Open(path string) (*Loader, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}
	// Strict mode keeps numbers as json.Number across JSON and YAML documents.
	repo, err := loam.Init(absPath,
		loam.WithStrict(true),
		loam.WithReadOnly(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize loam: %w", err)
	}
	return New(loam.NewTypedRepository[MachineMetadata](repo)), nil
}

// GetDefinition retrieves and compiles a machine document.
func (l *Loader) GetDefinition(ctx context.Context, id string) (*domain.Definition, error) {
	doc, err := l.Repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s (loam: %w)", domain.ErrMachineNotFound, id, err)
	}

	var def *domain.Definition
	if len(doc.Data.States) > 0 {
		def, err = compiler.DecodeMap(doc.Data.raw())
	} else {
		def, err = compiler.NewParser().Parse([]byte(sourceBlock(doc.Content)))
		if err == nil {
			def.Description = doc.Data.Description
		}
	}
	if err != nil {
		return nil, fmt.Errorf("document %s: %w", doc.ID, err)
	}

	rawID := doc.Data.ID
	if rawID == "" {
		rawID = doc.ID
	}
	def.ID = trimExtension(rawID)
	return def, nil
}

// ListDefinitions lists all machine documents in the repository.
func (l *Loader) ListDefinitions(ctx context.Context) ([]string, error) {
	docs, err := l.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loam list failed: %w", err)
	}

	seen := make(map[string]string)
	ids := make([]string, 0, len(docs))
	for _, doc := range docs {
		rawID := doc.Data.ID
		if rawID == "" {
			rawID = doc.ID
		}
		id := trimExtension(rawID)

		if existingPath, ok := seen[id]; ok {
			return nil, fmt.Errorf("collision detected: ID '%s' is defined in both '%s' and '%s'", id, existingPath, doc.ID)
		}
		seen[id] = doc.ID
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

func trimExtension(id string) string {
	ext := filepath.Ext(id)
	if ext != "" {
		return filepath.ToSlash(strings.TrimSuffix(id, ext))
	}
	return filepath.ToSlash(id)
}

// sourceBlock returns the first fenced code block of a markdown body, or the
// whole body when there is none.
func sourceBlock(body string) string {
	start := strings.Index(body, "```")
	if start < 0 {
		return body
	}
	rest := body[start+3:]
	// Skip the info string (```automata).
	if nl := strings.IndexByte(rest, '\n'); nl >= 0 {
		rest = rest[nl+1:]
	}
	if end := strings.Index(rest, "```"); end >= 0 {
		return rest[:end]
	}
	return rest
}
