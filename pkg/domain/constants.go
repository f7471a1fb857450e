package domain

// Reserved state and memory names.
const (
	// AcceptState is the successor name that marks a timeline as accepted.
	AcceptState = "accept"
	// RejectState is the successor name that marks a timeline as rejected.
	RejectState = "reject"

	// InputMemory is the reserved memory name of a Tape template that replaces the
	// default BLANK+input tape when a run starts.
	InputMemory = "input"
)

// IsTerminalName reports whether name is one of the reserved terminal markers.
func IsTerminalName(name string) bool {
	return name == AcceptState || name == RejectState
}
