package domain

// SeedRoutines is what a fresh install shows before the user has saved anything.
func SeedRoutines() []Routine {
	return []Routine{
		New("r1", "Tabata", []Block{
			{ID: "b1", Name: "Warm-up", Duration: 60, Kind: BlockKindPrep},
			{ID: "b2", Name: "Sprints", Duration: 20, Kind: BlockKindWork},
			{ID: "b3", Name: "Rest", Duration: 10, Kind: BlockKindRest},
			{ID: "b4", Name: "Sprints", Duration: 20, Kind: BlockKindWork},
			{ID: "b5", Name: "Rest", Duration: 10, Kind: BlockKindRest},
			{ID: "b6", Name: "Cool-down", Duration: 90, Kind: BlockKindRest},
		}),
		New("r2", "Pomodoro", []Block{
			{ID: "p1", Name: "Focus", Duration: 1500, Kind: BlockKindWork},
			{ID: "p2", Name: "Break", Duration: 300, Kind: BlockKindRest},
		}),
	}
}
