package domain

// Step is the session's frozen copy of one routine block.
type Step struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Duration int    `json:"duration"`
	Kind     string `json:"kind"`
}

// Plan is the routine snapshot a session runs. Later edits to the stored routine never
// reach a running plan.
type Plan struct {
	RoutineID   string `json:"routine_id"`
	RoutineName string `json:"routine_name"`
	Steps       []Step `json:"steps"`
	Total       int    `json:"total"`
}

func NewPlan(routineID, routineName string, steps []Step) Plan {
	plan := Plan{RoutineID: routineID, RoutineName: routineName, Steps: append([]Step(nil), steps...)}
	for _, s := range plan.Steps {
		plan.Total += s.Duration
	}
	return plan
}

func (p Plan) Last() int {
	return len(p.Steps) - 1
}
