package domain

import (
	"fmt"
	"time"
)

type CueKind string

const (
	CueStart CueKind = "start"
	CueTick  CueKind = "tick"
	CueEnd   CueKind = "end"
)

type EffectKind string

const (
	EffectCue    EffectKind = "cue"
	EffectNotify EffectKind = "notify"
)

// Effect is a side-effect request. The state machine never performs one itself.
type Effect struct {
	Kind  EffectKind
	Cue   CueKind
	Delay time.Duration
	Title string
	Body  string
}

func cue(kind CueKind, delay time.Duration) Effect {
	return Effect{Kind: EffectCue, Cue: kind, Delay: delay}
}

func blockFinished(name string) Effect {
	return Effect{Kind: EffectNotify, Title: "Block finished", Body: fmt.Sprintf("%s finished.", name)}
}

type Outcome string

const (
	OutcomeCompleted Outcome = "COMPLETED"
	OutcomeAborted   Outcome = "ABORTED"
)

// Transition reports what a state change asks of the outside world. When Finished is set
// the session is over and exactly one history entry must be written with Outcome and
// TotalTime.
type Transition struct {
	Effects   []Effect
	Finished  bool
	Outcome   Outcome
	TotalTime int
}

func (t Transition) Changed() bool {
	return t.Finished || len(t.Effects) > 0
}
