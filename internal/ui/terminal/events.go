package terminal

import "reliance-drill-service/internal/domain"

// EventKind identifies the type of session event shown by the terminal UI.
type EventKind int

const (
	// EventQuestion delivers a newly presented question.
	EventQuestion EventKind = iota
	// EventTick delivers the remaining countdown seconds.
	EventTick
	// EventFinished delivers the final report.
	EventFinished
	// EventLoadError signals that the question bank could not be loaded.
	EventLoadError
)

// Event carries a session update to the UI.
type Event struct {
	Kind      EventKind
	Question  domain.ParsedQuestion
	Answer    domain.DisplayedAnswer
	Seconds   int
	Remaining int
	Report    domain.Report
	Err       error
}
