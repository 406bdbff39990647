package routines

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	routinedto "cronos/internal/modules/routine/dto"
	"cronos/internal/ui/format"
	"cronos/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type Port interface {
	ListRoutines(ctx context.Context) ([]routinedto.RoutineOutput, error)
	GetRoutine(ctx context.Context, id string) (routinedto.RoutineDetailOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type RoutinesLoadedMsg struct {
	Routines []routinedto.RoutineOutput
	Err      error
}

type DetailLoadedMsg struct {
	Detail routinedto.RoutineDetailOutput
	Err    error
}

// ─── list item ───────────────────────────────────────────────────────────────

type routineItem struct {
	routine routinedto.RoutineOutput
}

func (i routineItem) Title() string { return i.routine.Name }
func (i routineItem) Description() string {
	return fmt.Sprintf("%d blocks  %s", i.routine.BlockCount, format.Clock(i.routine.TotalDuration))
}
func (i routineItem) FilterValue() string { return i.routine.Name }

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port     Port
	list     list.Model
	detail   routinedto.RoutineDetailOutput
	blockIdx int
	preview  viewport.Model
	spinner  spinner.Model
	loading  bool
	width    int
	height   int
}

func New(port Port) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Routines"
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	vp := viewport.New(0, 0)
	vp.Style = lipgloss.NewStyle().
		Background(theme.Mantle).
		Foreground(theme.Text).
		Padding(1)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	return Model{port: port, list: l, preview: vp, spinner: sp, loading: true}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.Reload(), m.spinner.Tick)
}

// Reload refetches the list, keeping the selection when the routine still exists.
func (m Model) Reload() tea.Cmd {
	return func() tea.Msg {
		routines, err := m.port.ListRoutines(context.Background())
		return RoutinesLoadedMsg{Routines: routines, Err: err}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()

	case RoutinesLoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.list.Title = "Routines: " + msg.Err.Error()
			return m, nil
		}
		selected, _ := m.SelectedRoutineID()
		items := make([]list.Item, len(msg.Routines))
		for i, r := range msg.Routines {
			items[i] = routineItem{routine: r}
		}
		cmds = append(cmds, m.list.SetItems(items))
		for i, r := range msg.Routines {
			if r.ID == selected {
				m.list.Select(i)
			}
		}
		if item, ok := m.list.SelectedItem().(routineItem); ok {
			cmds = append(cmds, m.loadDetailCmd(item.routine.ID))
		} else {
			m.detail = routinedto.RoutineDetailOutput{}
			m.preview.SetContent(m.renderDetail())
		}

	case DetailLoadedMsg:
		if msg.Err == nil {
			if msg.Detail.ID != m.detail.ID {
				m.blockIdx = 0
			}
			m.detail = msg.Detail
			m.clampBlock()
			m.preview.SetContent(m.renderDetail())
		}

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}

	case tea.KeyMsg:
		if !m.Filtering() {
			switch msg.String() {
			case "J":
				m.blockIdx++
				m.clampBlock()
				m.preview.SetContent(m.renderDetail())
				return m, nil
			case "K":
				m.blockIdx--
				m.clampBlock()
				m.preview.SetContent(m.renderDetail())
				return m, nil
			}
		}
	}

	if !m.loading {
		var lCmd tea.Cmd
		prevIdx := m.list.Index()
		m.list, lCmd = m.list.Update(msg)
		cmds = append(cmds, lCmd)
		if m.list.Index() != prevIdx {
			if item, ok := m.list.SelectedItem().(routineItem); ok {
				cmds = append(cmds, m.loadDetailCmd(item.routine.ID))
			}
		}
	}

	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Loading routines…")
	}

	listW, detailW := m.split()
	return lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(listW).Height(m.height).Render(m.list.View()),
		theme.Pane.Padding(0).Width(detailW-2).Height(m.height-2).Render(m.preview.View()),
	)
}

func (m Model) SelectedRoutineID() (string, bool) {
	if item, ok := m.list.SelectedItem().(routineItem); ok {
		return item.routine.ID, true
	}
	return "", false
}

func (m Model) SelectedRoutineName() string {
	if item, ok := m.list.SelectedItem().(routineItem); ok {
		return item.routine.Name
	}
	return ""
}

// SelectedBlock returns the block under the detail cursor.
func (m Model) SelectedBlock() (routinedto.BlockOutput, int, bool) {
	if m.blockIdx < 0 || m.blockIdx >= len(m.detail.Blocks) {
		return routinedto.BlockOutput{}, -1, false
	}
	return m.detail.Blocks[m.blockIdx], m.blockIdx, true
}

// FollowBlock moves the cursor after a reorder so it stays on the moved block.
func (m *Model) FollowBlock(index int) {
	m.blockIdx = index
}

func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

// ─── private ─────────────────────────────────────────────────────────────────

// split gives the routine list two fifths of the width.
func (m Model) split() (int, int) {
	listW := m.width * 2 / 5
	return listW, m.width - listW
}

func (m *Model) resize() {
	listW, detailW := m.split()
	m.list.SetSize(listW, m.height)
	m.preview.Width = detailW - 4
	m.preview.Height = m.height - 4
	m.preview.SetContent(m.renderDetail())
}

func (m *Model) clampBlock() {
	if m.blockIdx >= len(m.detail.Blocks) {
		m.blockIdx = len(m.detail.Blocks) - 1
	}
	if m.blockIdx < 0 {
		m.blockIdx = 0
	}
}

func (m Model) renderDetail() string {
	d := m.detail
	if d.ID == "" {
		return theme.Muted.Render("Select a routine to see its blocks")
	}
	var sb strings.Builder
	sb.WriteString(theme.Title.Render(d.Name) + "\n")
	sb.WriteString(theme.Muted.Render("total: ") + format.Clock(d.TotalDuration))
	if !d.LastPlayed.IsZero() {
		sb.WriteString(theme.Muted.Render("   last played: ") + d.LastPlayed.Local().Format("Jan 2 15:04"))
	}
	sb.WriteString("\n\n")
	sb.WriteString(Timeline(d.Blocks, m.preview.Width-4) + "\n\n")
	for i, b := range d.Blocks {
		cursor := "  "
		if i == m.blockIdx {
			cursor = theme.Hot.Render("▸ ")
		}
		kind := lipgloss.NewStyle().Width(6).Render(theme.Kind(b.Type))
		sb.WriteString(fmt.Sprintf("%s%s %-22s %s\n", cursor, kind, b.Name, format.Clock(b.Duration)))
	}
	sb.WriteString("\n" + theme.Muted.Render("enter: run  J/K: block  d: dup  x: remove  [/]: move  D: delete routine"))
	return sb.String()
}

func (m Model) loadDetailCmd(id string) tea.Cmd {
	return func() tea.Msg {
		detail, err := m.port.GetRoutine(context.Background(), id)
		return DetailLoadedMsg{Detail: detail, Err: err}
	}
}

// Timeline draws the blocks as one strip whose segments are proportional to duration and
// coloured by kind. Every block gets at least one cell.
func Timeline(blocks []routinedto.BlockOutput, width int) string {
	if len(blocks) == 0 || width < len(blocks) {
		return ""
	}
	total := 0
	for _, b := range blocks {
		total += b.Duration
	}
	if total <= 0 {
		return ""
	}
	var sb strings.Builder
	used := 0
	for i, b := range blocks {
		cells := b.Duration * width / total
		if i == len(blocks)-1 {
			cells = width - used
		}
		// Leave room for one cell per remaining block.
		cells = max(1, min(cells, width-used-(len(blocks)-1-i)))
		used += cells
		sb.WriteString(lipgloss.NewStyle().Foreground(theme.KindColor(b.Type)).Render(strings.Repeat("█", cells)))
	}
	return sb.String()
}
