package dto

import "time"

// Event kinds carried by EventOutput.Kind.
const (
	EventStarted  = "started"
	EventRestored = "restored"
	EventPaused   = "paused"
	EventResumed  = "resumed"
	EventAdjusted = "adjusted"
	EventAdvanced = "advanced"
	EventTick     = "tick"
	EventFinished = "finished"
)

const (
	StatusRunning = "RUNNING"
	StatusPaused  = "PAUSED"
)

const (
	OutcomeCompleted = "COMPLETED"
	OutcomeAborted   = "ABORTED"
)

type StartInput struct {
	RoutineID string
}

type AdjustInput struct {
	DeltaSeconds int
}

type StepOutput struct {
	ID       string
	Name     string
	Duration int
	Kind     string
}

// StateOutput describes the session slot. Active is false when there is no session.
type StateOutput struct {
	Active      bool
	SessionID   string
	RoutineID   string
	RoutineName string
	Status      string
	Index       int
	Count       int
	Current     StepOutput
	Next        *StepOutput
	Remaining   int
	Total       int

	// Completed is the planned seconds of the blocks already finished.
	Completed int
	StartedAt time.Time
}

type EventOutput struct {
	Kind    string
	Outcome string
	State   StateOutput
}
