package loam

// MachineMetadata is the frontmatter of a machine document.
// States and memories stay loosely typed here; the compiler binds them so that
// numeric triggers (json.Number in strict mode) decode the same way as in YAML files.
type MachineMetadata struct {
	ID          string `json:"id" mapstructure:"id"`
	Description string `json:"description" mapstructure:"description"`
	Memories    []any  `json:"memories" mapstructure:"memories"`
	States      []any  `json:"states" mapstructure:"states"`
}

func (m MachineMetadata) raw() map[string]any {
	raw := map[string]any{
		"id":          m.ID,
		"description": m.Description,
	}
	if len(m.Memories) > 0 {
		raw["memories"] = m.Memories
	}
	if len(m.States) > 0 {
		raw["states"] = m.States
	}
	return raw
}
