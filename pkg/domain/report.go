package domain

import "time"

// TimelineSnapshot is a read-only rendering of a single timeline.
type TimelineSnapshot struct {
	Index  int    `json:"index"`
	State  string `json:"state"`
	Status Status `json:"status"`

	// Input is the input tape with blanks; Output has blanks stripped.
	Input  string `json:"input"`
	Output string `json:"output"`

	// Memories maps each memory name to its rendered content.
	Memories map[string]string `json:"memories,omitempty"`
}

// RunReport summarises a run of a machine over one input.
type RunReport struct {
	ID        string `json:"id"`
	MachineID string `json:"machine_id,omitempty"`
	Input     string `json:"input"`
	Result    Result `json:"result"`
	Steps     int    `json:"steps"`

	// Halted is false when the run was interrupted before reaching a halting generation.
	Halted bool `json:"halted"`

	Timelines []TimelineSnapshot `json:"timelines"`
	Accepted  *TimelineSnapshot  `json:"accepted,omitempty"`

	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`

	// Sealed carries the encrypted report when the store seals its content.
	Sealed string `json:"sealed,omitempty"`
}
