package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	historydto "cronos/internal/modules/history/dto"
	routinedto "cronos/internal/modules/routine/dto"
	sessiondto "cronos/internal/modules/session/dto"
	apperrors "cronos/internal/platform/errors"
	"cronos/internal/ui/components"
	"cronos/internal/ui/format"
	"cronos/internal/ui/theme"
	historyview "cronos/internal/ui/views/history"
	routinesview "cronos/internal/ui/views/routines"
	runnerview "cronos/internal/ui/views/runner"
)

// ─── ports ───────────────────────────────────────────────────────────────────
// Each port is the minimal interface that this orchestration layer requires.

type routinePort interface {
	List(ctx context.Context) ([]routinedto.RoutineOutput, error)
	Show(ctx context.Context, routineID string) (routinedto.RoutineDetailOutput, error)
	Create(ctx context.Context, name string, blocks []routinedto.BlockInput) (routinedto.RoutineDetailOutput, error)
	Rename(ctx context.Context, routineID, name string) (routinedto.RoutineDetailOutput, error)
	Delete(ctx context.Context, routineID string) error
	AddBlock(ctx context.Context, routineID, name string, duration int, blockType string, at *int) (routinedto.RoutineDetailOutput, error)
	UpdateBlock(ctx context.Context, input routinedto.UpdateBlockInput) (routinedto.RoutineDetailOutput, error)
	RemoveBlock(ctx context.Context, routineID, blockID string) (routinedto.RoutineDetailOutput, error)
	DuplicateBlock(ctx context.Context, routineID, blockID string) (routinedto.RoutineDetailOutput, error)
	MoveBlock(ctx context.Context, routineID string, index, direction int) (routinedto.RoutineDetailOutput, error)
}

type sessionPort interface {
	Start(ctx context.Context, routineID string) (sessiondto.StateOutput, error)
	TogglePause(ctx context.Context) (sessiondto.StateOutput, error)
	Adjust(ctx context.Context, deltaSeconds int) (sessiondto.StateOutput, error)
	Skip(ctx context.Context) (sessiondto.StateOutput, error)
	Quit(ctx context.Context) (sessiondto.StateOutput, error)
	Current(ctx context.Context) (sessiondto.StateOutput, error)
	Subscribe(buffer int) (<-chan sessiondto.EventOutput, func())
}

type historyPort interface {
	List(ctx context.Context) ([]historydto.EntryOutput, error)
	Summary(ctx context.Context) (historydto.Summary, error)
}

// ─── tab index ───────────────────────────────────────────────────────────────

type tabID int

const (
	tabRoutines tabID = iota
	tabRunner
	tabHistory
	tabCount
)

var tabLabels = [tabCount]string{"Routines", "Runner", "History"}

const (
	adjustStep  = 10
	frameRate   = 200 * time.Millisecond
	eventBuffer = 16
)

const (
	confirmQuitSession   = "quit-session"
	confirmDeleteRoutine = "delete-routine"
)

// ─── async messages ───────────────────────────────────────────────────────────

type sessionMsg struct {
	state sessiondto.StateOutput
	err   error
}

type sessionEventMsg struct {
	event sessiondto.EventOutput
	ok    bool
}

type frameMsg struct{}

type routineEditedMsg struct {
	detail routinedto.RoutineDetailOutput
	action string
	follow int
	err    error
}

// ─── key bindings ─────────────────────────────────────────────────────────────

type keyMap struct {
	Tab     key.Binding
	Help    key.Binding
	Palette key.Binding
	Quit    key.Binding
	Run     key.Binding
	Pause   key.Binding
	Skip    key.Binding
	Plus    key.Binding
	Minus   key.Binding
	Abort   key.Binding
	Blocks  key.Binding
	Edit    key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Tab:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette: key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "palette")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
		Run:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "run routine")),
		Pause:   key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "pause/resume")),
		Skip:    key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "skip block")),
		Plus:    key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "add 10s")),
		Minus:   key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "remove 10s")),
		Abort:   key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "quit session / remove block")),
		Blocks:  key.NewBinding(key.WithKeys("J", "K"), key.WithHelp("J/K", "select block")),
		Edit:    key.NewBinding(key.WithKeys("d", "[", "]", "D"), key.WithHelp("d [ ] D", "dup, move, delete")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Help, k.Palette, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.Run, k.Blocks, k.Edit},
		{k.Pause, k.Skip, k.Plus, k.Minus, k.Abort},
		{k.Help, k.Palette, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. It owns tab routing, the session subscription,
// the help overlay, the palette and the confirm modal. Timing lives in the session
// runner; this model only renders what the runner reports.
type Model struct {
	routines routinePort
	session  sessionPort
	history  historyPort

	routineView routinesview.Model
	runView     runnerview.Model
	historyView historyview.Model

	events      <-chan sessiondto.EventOutput
	unsubscribe func()

	activeTab tabID
	keys      keyMap
	help      help.Model
	showHelp  bool
	palette   components.Palette
	confirm   components.Confirm
	status    string
	framing   bool
	width     int
	height    int
}

func NewModel(routines routinePort, session sessionPort, history historyPort) Model {
	events, unsubscribe := session.Subscribe(eventBuffer)
	return Model{
		routines:    routines,
		session:     session,
		history:     history,
		routineView: routinesview.New(routinePortBridge{p: routines}),
		runView:     runnerview.New(),
		historyView: historyview.New(historyPortBridge{p: history}),
		events:      events,
		unsubscribe: unsubscribe,
		activeTab:   tabRoutines,
		keys:        defaultKeys(),
		help:        help.New(),
		palette:     components.NewPalette(),
		status:      "ready",
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.routineView.Init(),
		m.historyView.Init(),
		m.currentCmd(),
		m.waitEventCmd(),
	)
}

// ─── update ───────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// The confirm modal and the palette intercept all key input while open.
	if _, isKey := msg.(tea.KeyMsg); isKey && m.confirm.Visible() {
		var cmd tea.Cmd
		m.confirm, cmd = m.confirm.Update(msg)
		return m, cmd
	}
	if m.palette.Visible() {
		if _, isKey := msg.(tea.KeyMsg); isKey {
			var cmd tea.Cmd
			m.palette, cmd = m.palette.Update(msg)
			return m, cmd
		}
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.help.Width = m.width
		m.propagateSize()
		return m, nil

	case sessionMsg:
		if msg.err != nil {
			m.status = describe(msg.err)
			return m, nil
		}
		wasActive := m.runView.State().Active
		m.runView.SetState(msg.state)
		if msg.state.Active && !wasActive {
			m.activeTab = tabRunner
		}
		return m, m.startFrames()

	case sessionEventMsg:
		if !msg.ok {
			return m, nil
		}
		m.runView.SetState(msg.event.State)
		cmds = append(cmds, m.waitEventCmd())
		switch msg.event.Kind {
		case sessiondto.EventStarted, sessiondto.EventRestored:
			m.activeTab = tabRunner
			m.status = "running " + msg.event.State.RoutineName
		case sessiondto.EventAdvanced:
			m.status = "next: " + msg.event.State.Current.Name
		case sessiondto.EventFinished:
			m.status = "session " + strings.ToLower(msg.event.Outcome)
			cmds = append(cmds, m.historyView.Reload(), m.routineView.Reload())
		}
		cmds = append(cmds, m.startFrames())
		return m, tea.Batch(cmds...)

	case frameMsg:
		if !m.runView.State().Active {
			m.framing = false
			return m, nil
		}
		return m, tea.Batch(m.currentCmd(), m.frameCmd())

	case routineEditedMsg:
		if msg.err != nil {
			m.status = msg.action + ": " + describe(msg.err)
			return m, nil
		}
		m.status = msg.action + ": " + msg.detail.Name
		if msg.follow >= 0 {
			m.routineView.FollowBlock(msg.follow)
		}
		return m, m.routineView.Reload()

	case components.ConfirmResultMsg:
		if !msg.Accepted {
			m.status = "cancelled"
			return m, nil
		}
		switch msg.Action {
		case confirmQuitSession:
			return m, m.sessionCmd(m.session.Quit)
		case confirmDeleteRoutine:
			return m, m.deleteRoutineCmd()
		}
		return m, nil

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.status = "ready"
		return m, nil

	case tea.KeyMsg:
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}

		// Yield to sub-view when its search filter is active.
		if m.subViewFiltering() {
			break
		}

		if handled, cmd := m.handleKey(msg); handled {
			return m, cmd
		}
	}

	// Propagate the message to the active tab's sub-view.
	var tabCmd tea.Cmd
	switch m.activeTab {
	case tabRoutines:
		m.routineView, tabCmd = m.routineView.Update(msg)
	case tabRunner:
		m.runView, tabCmd = m.runView.Update(msg)
	case tabHistory:
		m.historyView, tabCmd = m.historyView.Update(msg)
	}
	cmds = append(cmds, tabCmd)
	m = m.forwardData(msg)

	return m, tea.Batch(cmds...)
}

// handleKey applies global and per-tab bindings. Returning false lets the key reach the
// active sub-view.
func (m *Model) handleKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	active := m.runView.State().Active
	switch msg.String() {
	case "ctrl+c", "q":
		if m.unsubscribe != nil {
			m.unsubscribe()
		}
		return true, tea.Quit
	case "tab":
		m.activeTab = (m.activeTab + 1) % tabCount
		return true, nil
	case "shift+tab":
		m.activeTab = (m.activeTab + tabCount - 1) % tabCount
		return true, nil
	case "?":
		m.showHelp = !m.showHelp
		return true, nil
	case ":":
		return true, m.palette.Open()
	}

	if active && (m.activeTab == tabRunner || msg.String() == " ") {
		switch msg.String() {
		case " ", "p":
			return true, m.sessionCmd(m.session.TogglePause)
		case "s":
			return true, m.sessionCmd(m.session.Skip)
		case "+", "=":
			return true, m.adjustCmd(adjustStep)
		case "-":
			return true, m.adjustCmd(-adjustStep)
		case "x":
			m.confirm.Open(confirmQuitSession, "Quit this session? It will be recorded as aborted.")
			return true, nil
		}
	}

	if m.activeTab != tabRoutines {
		return false, nil
	}
	routineID, ok := m.routineView.SelectedRoutineID()
	if !ok {
		return false, nil
	}
	switch msg.String() {
	case "enter":
		return true, m.startCmd(routineID)
	case "d":
		if block, _, ok := m.routineView.SelectedBlock(); ok {
			return true, m.editCmd("duplicated", -1, func(ctx context.Context) (routinedto.RoutineDetailOutput, error) {
				return m.routines.DuplicateBlock(ctx, routineID, block.ID)
			})
		}
	case "x":
		if block, _, ok := m.routineView.SelectedBlock(); ok {
			return true, m.editCmd("removed block", -1, func(ctx context.Context) (routinedto.RoutineDetailOutput, error) {
				return m.routines.RemoveBlock(ctx, routineID, block.ID)
			})
		}
	case "[", "]":
		if _, idx, ok := m.routineView.SelectedBlock(); ok {
			dir := -1
			if msg.String() == "]" {
				dir = 1
			}
			return true, m.moveCmd(routineID, idx, dir)
		}
	case "D":
		m.confirm.Open(confirmDeleteRoutine, fmt.Sprintf("Delete routine %q?", m.routineView.SelectedRoutineName()))
		return true, nil
	}
	return false, nil
}

// forwardData makes sure async data reaches views that are not on the active tab.
func (m Model) forwardData(msg tea.Msg) Model {
	switch msg.(type) {
	case routinesview.RoutinesLoadedMsg, routinesview.DetailLoadedMsg:
		if m.activeTab != tabRoutines {
			m.routineView, _ = m.routineView.Update(msg)
		}
	case historyview.LoadedMsg:
		if m.activeTab != tabHistory {
			m.historyView, _ = m.historyView.Update(msg)
		}
	}
	return m
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	tabBar := m.renderTabBar()
	statusBar := m.renderStatusBar()
	contentH := m.height - lipgloss.Height(tabBar) - lipgloss.Height(statusBar)
	if contentH < 1 {
		contentH = 1
	}

	var content string
	switch {
	case m.confirm.Visible():
		content = lipgloss.Place(m.width, contentH, lipgloss.Center, lipgloss.Center, m.confirm.View())
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).Render(m.help.View(m.keys))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH, lipgloss.Center, lipgloss.Center, m.palette.View())
	default:
		content = m.activeView()
	}

	return lipgloss.JoinVertical(lipgloss.Left, tabBar, content, statusBar)
}

func (m Model) activeView() string {
	switch m.activeTab {
	case tabRoutines:
		return m.routineView.View()
	case tabRunner:
		return m.runView.View()
	case tabHistory:
		return m.historyView.View()
	}
	return ""
}

func (m Model) renderTabBar() string {
	parts := make([]string, tabCount)
	for i := tabID(0); i < tabCount; i++ {
		label := tabLabels[i]
		if i == m.activeTab {
			parts[i] = theme.Hot.Render(" " + label + " ")
		} else {
			parts[i] = theme.Muted.Render(" " + label + " ")
		}
	}
	bar := "cronos  " + strings.Join(parts, theme.Muted.Render(" │ "))
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	left := m.status
	if s := m.runView.State(); s.Active {
		marker := "● "
		if s.Status == sessiondto.StatusPaused {
			marker = "‖ "
		}
		left = theme.Hot.Render(marker+s.Current.Name+" "+format.Clock(s.Remaining)) + "  " + left
	}
	right := theme.Muted.Render("?:help  tab:switch  :::palette  q:quit")
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

// ─── helpers ─────────────────────────────────────────────────────────────────

func (m Model) subViewFiltering() bool {
	switch m.activeTab {
	case tabRoutines:
		return m.routineView.Filtering()
	case tabHistory:
		return m.historyView.Filtering()
	}
	return false
}

func (m *Model) propagateSize() {
	sz := tea.WindowSizeMsg{Width: m.width, Height: m.height - 3}
	m.routineView, _ = m.routineView.Update(sz)
	m.runView, _ = m.runView.Update(sz)
	m.historyView, _ = m.historyView.Update(sz)
}

func describe(err error) string {
	switch {
	case errors.Is(err, apperrors.ErrEmptyRoutine):
		return "routine has no blocks"
	case errors.Is(err, apperrors.ErrActiveSessionExists):
		return "a session is already running"
	case errors.Is(err, apperrors.ErrNoActiveSession):
		return "no session running"
	}
	return err.Error()
}

// ─── async commands ───────────────────────────────────────────────────────────

func (m Model) waitEventCmd() tea.Cmd {
	events := m.events
	if events == nil {
		return nil
	}
	return func() tea.Msg {
		event, ok := <-events
		return sessionEventMsg{event: event, ok: ok}
	}
}

// startFrames begins the redraw loop if a session is active and no loop is running.
func (m *Model) startFrames() tea.Cmd {
	if m.framing || !m.runView.State().Active {
		return nil
	}
	m.framing = true
	return m.frameCmd()
}

func (m Model) frameCmd() tea.Cmd {
	return tea.Tick(frameRate, func(time.Time) tea.Msg { return frameMsg{} })
}

func (m Model) currentCmd() tea.Cmd {
	return m.sessionCmd(m.session.Current)
}

func (m Model) sessionCmd(fn func(context.Context) (sessiondto.StateOutput, error)) tea.Cmd {
	return func() tea.Msg {
		state, err := fn(context.Background())
		return sessionMsg{state: state, err: err}
	}
}

func (m Model) startCmd(routineID string) tea.Cmd {
	return func() tea.Msg {
		state, err := m.session.Start(context.Background(), routineID)
		return sessionMsg{state: state, err: err}
	}
}

func (m Model) adjustCmd(delta int) tea.Cmd {
	return func() tea.Msg {
		state, err := m.session.Adjust(context.Background(), delta)
		return sessionMsg{state: state, err: err}
	}
}

func (m Model) editCmd(action string, follow int, fn func(context.Context) (routinedto.RoutineDetailOutput, error)) tea.Cmd {
	return func() tea.Msg {
		detail, err := fn(context.Background())
		return routineEditedMsg{detail: detail, action: action, follow: follow, err: err}
	}
}

func (m Model) moveCmd(routineID string, index, dir int) tea.Cmd {
	target := index + dir
	return m.editCmd("moved block", target, func(ctx context.Context) (routinedto.RoutineDetailOutput, error) {
		return m.routines.MoveBlock(ctx, routineID, index, dir)
	})
}

func (m Model) deleteRoutineCmd() tea.Cmd {
	routineID, ok := m.routineView.SelectedRoutineID()
	if !ok {
		return nil
	}
	name := m.routineView.SelectedRoutineName()
	return func() tea.Msg {
		err := m.routines.Delete(context.Background(), routineID)
		return routineEditedMsg{detail: routinedto.RoutineDetailOutput{Name: name}, action: "deleted", follow: -1, err: err}
	}
}

// ─── port bridges ─────────────────────────────────────────────────────────────

type routinePortBridge struct{ p routinePort }

func (b routinePortBridge) ListRoutines(ctx context.Context) ([]routinedto.RoutineOutput, error) {
	return b.p.List(ctx)
}
func (b routinePortBridge) GetRoutine(ctx context.Context, id string) (routinedto.RoutineDetailOutput, error) {
	return b.p.Show(ctx, id)
}

type historyPortBridge struct{ p historyPort }

func (b historyPortBridge) List(ctx context.Context) ([]historydto.EntryOutput, error) {
	return b.p.List(ctx)
}
func (b historyPortBridge) Summarize(ctx context.Context) (historydto.Summary, error) {
	return b.p.Summary(ctx)
}
