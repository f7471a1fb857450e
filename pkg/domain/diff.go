package domain

// SnapshotDiff represents the changes of one timeline between two generations.
// It is designed to be serialized to JSON for step-by-step clients.
type SnapshotDiff struct {
	// Index is always present to identify the target timeline.
	Index int `json:"index"`

	State  *string `json:"state,omitempty"`
	Status *Status `json:"status,omitempty"`
	Input  *string `json:"input,omitempty"`
	Output *string `json:"output,omitempty"`

	// Memories contains only changed, added or deleted memories.
	// For deletions, the key is present with an empty value.
	Memories map[string]string `json:"memories,omitempty"`
}

// Diff calculates the difference between two snapshots of the same timeline slot.
// If oldSnap is nil, it returns a diff representing the entire newSnap (initial load).
// It returns nil when nothing changed.
func Diff(oldSnap, newSnap *TimelineSnapshot) *SnapshotDiff {
	if newSnap == nil {
		return nil
	}

	diff := &SnapshotDiff{Index: newSnap.Index}

	if oldSnap == nil || oldSnap.State != newSnap.State {
		diff.State = &newSnap.State
	}
	if oldSnap == nil || oldSnap.Status != newSnap.Status {
		diff.Status = &newSnap.Status
	}
	if oldSnap == nil || oldSnap.Input != newSnap.Input {
		diff.Input = &newSnap.Input
	}
	if oldSnap == nil || oldSnap.Output != newSnap.Output {
		diff.Output = &newSnap.Output
	}
	diff.Memories = diffMemories(oldSnap, newSnap)

	if diff.IsEmpty() {
		return nil
	}
	return diff
}

func diffMemories(old, new *TimelineSnapshot) map[string]string {
	delta := make(map[string]string)

	if old == nil {
		for k, v := range new.Memories {
			delta[k] = v
		}
		return nilIfEmpty(delta)
	}

	for k, newVal := range new.Memories {
		if oldVal, exists := old.Memories[k]; !exists || oldVal != newVal {
			delta[k] = newVal
		}
	}
	for k := range old.Memories {
		if _, exists := new.Memories[k]; !exists {
			delta[k] = ""
		}
	}
	return nilIfEmpty(delta)
}

func nilIfEmpty(m map[string]string) map[string]string {
	if len(m) == 0 {
		return nil
	}
	return m
}

// IsEmpty checks if the diff contains any actionable changes.
func (d *SnapshotDiff) IsEmpty() bool {
	return d.State == nil &&
		d.Status == nil &&
		d.Input == nil &&
		d.Output == nil &&
		len(d.Memories) == 0
}
