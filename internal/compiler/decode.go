package compiler

import (
	"fmt"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/automata/pkg/domain"
)

// Extensions recognised by ParseFile.
var (
	SourceExtensions   = []string{".tm", ".automata"}
	DocumentExtensions = []string{".yaml", ".yml", ".json"}
)

// IsDefinitionFile reports whether name carries a known definition extension.
func IsDefinitionFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range append(SourceExtensions, DocumentExtensions...) {
		if e == ext {
			return true
		}
	}
	return false
}

// ParseFile picks the decoder from the file extension. The ID defaults to the
// base name without extension.
func ParseFile(name string, data []byte) (*domain.Definition, error) {
	var (
		def *domain.Definition
		err error
	)
	ext := strings.ToLower(filepath.Ext(name))
	switch ext {
	case ".yaml", ".yml", ".json":
		def, err = DecodeDocument(data)
	default:
		def, err = NewParser().Parse(data)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	if def.ID == "" {
		def.ID = strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	}
	return def, nil
}

// DecodeDocument reads a YAML or JSON document.
func DecodeDocument(data []byte) (*domain.Definition, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse definition document: %w", err)
	}
	return DecodeMap(raw)
}

// DecodeMap binds loosely typed data (a parsed document, frontmatter) to a
// Definition. Numeric triggers such as 0 and 1 are accepted as strings.
func DecodeMap(raw map[string]any) (*domain.Definition, error) {
	var def domain.Definition
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &def,
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
		DecodeHook:       mapstructure.DecodeHookFuncType(normaliseHook),
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(raw); err != nil {
		return nil, fmt.Errorf("failed to decode definition: %w", err)
	}
	for i := range def.States {
		s := &def.States[i]
		cmd, err := domain.ParseCommand(string(s.Command))
		if err != nil {
			return nil, fmt.Errorf("state %s: %w", s.Name, err)
		}
		s.Command = cmd
	}
	for _, m := range def.Memories {
		if _, err := domain.ParseMemoryKind(string(m.Kind)); err != nil {
			return nil, fmt.Errorf("memory %s: %w", m.Name, err)
		}
	}
	if len(def.States) == 0 {
		return nil, fmt.Errorf("failed to decode definition: %w", domain.ErrNoStates)
	}
	return &def, nil
}

var memoryKindType = reflect.TypeOf(domain.MemoryKind(""))

// normaliseHook upper-cases memory kinds so "stack" and "STACK" both work.
func normaliseHook(from, to reflect.Type, data any) (any, error) {
	if from.Kind() == reflect.String && to == memoryKindType {
		return strings.ToUpper(data.(string)), nil
	}
	return data, nil
}
