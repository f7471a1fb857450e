package domain

// Status is the lifecycle position of a timeline, or of a machine as a whole.
type Status string

const (
	StatusRunning  Status = "RUNNING"
	StatusAccepted Status = "ACCEPTED"
	StatusRejected Status = "REJECTED"
)

// Emoji returns the glyph the terminal trace uses for the status.
func (s Status) Emoji() string {
	switch s {
	case StatusAccepted:
		return "✔"
	case StatusRejected:
		return "❌"
	default:
		return "🏃"
	}
}

// Result is the final verdict of a run.
type Result string

const (
	ResultAccepted Result = "accepted"
	ResultRejected Result = "rejected"
)
