package app

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	historydto "cronos/internal/modules/history/dto"
	routinedto "cronos/internal/modules/routine/dto"
	sessiondto "cronos/internal/modules/session/dto"
	"cronos/internal/ui/components"
)

type fakeRoutines struct {
	created []routinedto.BlockInput
	name    string
}

func (f *fakeRoutines) List(context.Context) ([]routinedto.RoutineOutput, error) { return nil, nil }
func (f *fakeRoutines) Show(context.Context, string) (routinedto.RoutineDetailOutput, error) {
	return routinedto.RoutineDetailOutput{}, nil
}
func (f *fakeRoutines) Create(_ context.Context, name string, blocks []routinedto.BlockInput) (routinedto.RoutineDetailOutput, error) {
	f.name = name
	f.created = blocks
	return routinedto.RoutineDetailOutput{ID: "new", Name: name}, nil
}
func (f *fakeRoutines) Rename(context.Context, string, string) (routinedto.RoutineDetailOutput, error) {
	return routinedto.RoutineDetailOutput{}, nil
}
func (f *fakeRoutines) Delete(context.Context, string) error { return nil }
func (f *fakeRoutines) AddBlock(context.Context, string, string, int, string, *int) (routinedto.RoutineDetailOutput, error) {
	return routinedto.RoutineDetailOutput{}, nil
}
func (f *fakeRoutines) UpdateBlock(context.Context, routinedto.UpdateBlockInput) (routinedto.RoutineDetailOutput, error) {
	return routinedto.RoutineDetailOutput{}, nil
}
func (f *fakeRoutines) RemoveBlock(context.Context, string, string) (routinedto.RoutineDetailOutput, error) {
	return routinedto.RoutineDetailOutput{}, nil
}
func (f *fakeRoutines) DuplicateBlock(context.Context, string, string) (routinedto.RoutineDetailOutput, error) {
	return routinedto.RoutineDetailOutput{}, nil
}
func (f *fakeRoutines) MoveBlock(context.Context, string, int, int) (routinedto.RoutineDetailOutput, error) {
	return routinedto.RoutineDetailOutput{}, nil
}

type fakeSession struct {
	state   sessiondto.StateOutput
	quits   int
	adjusts []int
}

func (f *fakeSession) Start(context.Context, string) (sessiondto.StateOutput, error) {
	return f.state, nil
}
func (f *fakeSession) TogglePause(context.Context) (sessiondto.StateOutput, error) {
	return f.state, nil
}
func (f *fakeSession) Adjust(_ context.Context, delta int) (sessiondto.StateOutput, error) {
	f.adjusts = append(f.adjusts, delta)
	return f.state, nil
}
func (f *fakeSession) Skip(context.Context) (sessiondto.StateOutput, error) { return f.state, nil }
func (f *fakeSession) Quit(context.Context) (sessiondto.StateOutput, error) {
	f.quits++
	f.state = sessiondto.StateOutput{}
	return f.state, nil
}
func (f *fakeSession) Current(context.Context) (sessiondto.StateOutput, error) { return f.state, nil }
func (f *fakeSession) Subscribe(int) (<-chan sessiondto.EventOutput, func()) {
	return nil, func() {}
}

type fakeHistory struct{}

func (fakeHistory) List(context.Context) ([]historydto.EntryOutput, error) { return nil, nil }
func (fakeHistory) Summary(context.Context) (historydto.Summary, error) {
	return historydto.Summary{}, nil
}

func runningState() sessiondto.StateOutput {
	return sessiondto.StateOutput{
		Active:      true,
		RoutineName: "Tabata",
		Status:      "RUNNING",
		Count:       2,
		Current:     sessiondto.StepOutput{ID: "b1", Name: "Warm-up", Duration: 60, Kind: "PREP"},
		Remaining:   42,
		Total:       80,
	}
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("unexpected model type %T", next)
	}
	return model, cmd
}

func TestQuitSessionRequiresConfirmation(t *testing.T) {
	t.Parallel()
	session := &fakeSession{state: runningState()}
	m := NewModel(&fakeRoutines{}, session, fakeHistory{})
	m, _ = update(t, m, sessionMsg{state: session.state})
	if m.activeTab != tabRunner {
		t.Fatalf("expected runner tab after a session appears, got %d", m.activeTab)
	}

	m, _ = update(t, m, keyRunes("x"))
	if !m.confirm.Visible() {
		t.Fatalf("expected confirm modal")
	}
	m, cmd := update(t, m, keyRunes("n"))
	if msg := cmd(); msg != (components.ConfirmResultMsg{Action: confirmQuitSession, Accepted: false}) {
		t.Fatalf("unexpected confirm result: %#v", msg)
	}
	if session.quits != 0 {
		t.Fatalf("declined confirm must not quit")
	}

	m, _ = update(t, m, keyRunes("x"))
	m, cmd = update(t, m, keyRunes("y"))
	m, cmd = update(t, m, cmd())
	if cmd == nil {
		t.Fatalf("expected a quit command")
	}
	m, _ = update(t, m, cmd())
	if session.quits != 1 {
		t.Fatalf("expected one quit, got %d", session.quits)
	}
	if m.runView.State().Active {
		t.Fatalf("runner view should be idle after quit")
	}
}

func TestPaletteAdjustAndCreate(t *testing.T) {
	t.Parallel()
	session := &fakeSession{state: runningState()}
	routines := &fakeRoutines{}
	m := NewModel(routines, session, fakeHistory{})

	m, cmd := update(t, m, components.PaletteSubmitMsg{Input: "adjust +15"})
	cmd()
	if len(session.adjusts) != 1 || session.adjusts[0] != 15 {
		t.Fatalf("unexpected adjusts: %v", session.adjusts)
	}

	m, cmd = update(t, m, components.PaletteSubmitMsg{Input: "adjust soon"})
	if cmd != nil || m.status != "invalid seconds" {
		t.Fatalf("expected invalid seconds status, got %q", m.status)
	}

	m, cmd = update(t, m, components.PaletteSubmitMsg{Input: "routine:new Core WORK:40 REST:20:Breathe"})
	m, _ = update(t, m, cmd())
	want := []routinedto.BlockInput{
		{Name: "Work", Duration: 40, Type: "WORK"},
		{Name: "Breathe", Duration: 20, Type: "REST"},
	}
	if routines.name != "Core" || len(routines.created) != len(want) {
		t.Fatalf("unexpected create: %q %+v", routines.name, routines.created)
	}
	for i := range want {
		if routines.created[i] != want[i] {
			t.Fatalf("block %d = %+v, want %+v", i, routines.created[i], want[i])
		}
	}
	if m.status != "created: Core" {
		t.Fatalf("unexpected status %q", m.status)
	}

	m, _ = update(t, m, components.PaletteSubmitMsg{Input: "routine:new Core WORK"})
	if m.status == "created: Core" {
		t.Fatalf("expected a parse error status")
	}
}
