package domain

import "time"

const (
	SchemaVersion = 1

	// DefaultTopic is what "start session" asks the backend to generate.
	DefaultTopic = "Introduction to Programming"

	// GenerateFallbackReason is shown when generation fails without a
	// server-provided message.
	GenerateFallbackReason = "Failed to generate content"
)

// Session is a backend-owned unit of generated learning content. The client
// never mutates it; the list is replaced on every fetch.
type Session struct {
	ID        string
	Topic     string
	Progress  int
	CreatedAt time.Time
	Content   string
}

// ProgressPercent clamps progress into [0, 100]; absent progress is 0.
func (s Session) ProgressPercent() int {
	switch {
	case s.Progress < 0:
		return 0
	case s.Progress > 100:
		return 100
	default:
		return s.Progress
	}
}

type Created struct {
	ID      string
	Topic   string
	Message string
	Content string
}

type Generation struct {
	Message string
	Content string
}
