package dto

import "time"

const (
	StatusCompleted = "COMPLETED"
	StatusAborted   = "ABORTED"
)

type RecordInput struct {
	RoutineName string
	TotalTime   int
	Status      string
	// Date defaults to now when zero.
	Date time.Time
}

type EntryOutput struct {
	ID          string
	RoutineName string
	Date        time.Time
	TotalTime   int
	Status      string
}

type Summary struct {
	Sessions  int
	Completed int
	Aborted   int
	TotalTime int
}
