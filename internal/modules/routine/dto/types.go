package dto

import "time"

type BlockInput struct {
	Name     string
	Duration int
	Type     string
}

type CreateRoutineInput struct {
	Name   string
	Blocks []BlockInput
}

type RenameRoutineInput struct {
	RoutineID string
	Name      string
}

type AddBlockInput struct {
	RoutineID string
	Block     BlockInput
	// At is the insertion index; nil appends.
	At *int
}

type UpdateBlockInput struct {
	RoutineID string
	BlockID   string
	Name      *string
	Duration  *int
	Type      *string
}

type BlockRefInput struct {
	RoutineID string
	BlockID   string
}

type MoveBlockInput struct {
	RoutineID string
	Index     int
	Direction int
}

type BlockOutput struct {
	ID       string
	Name     string
	Duration int
	Type     string
}

type RoutineOutput struct {
	ID            string
	Name          string
	BlockCount    int
	TotalDuration int
	LastPlayed    time.Time
}

type RoutineDetailOutput struct {
	ID            string
	Name          string
	TotalDuration int
	LastPlayed    time.Time
	Blocks        []BlockOutput
}
