package runner

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	sessiondto "cronos/internal/modules/session/dto"
	"cronos/internal/ui/format"
	"cronos/internal/ui/theme"
)

// Model renders the live session. It never drives timing: the app hands it fresh state
// on every session event and frame.
type Model struct {
	state   sessiondto.StateOutput
	block   progress.Model
	overall progress.Model
	width   int
	height  int
}

func New() Model {
	return Model{
		block:   progress.New(progress.WithGradient(string(theme.Lavender), string(theme.Peach)), progress.WithoutPercentage()),
		overall: progress.New(progress.WithSolidFill(string(theme.Surface1)), progress.WithoutPercentage()),
	}
}

func (m *Model) SetState(state sessiondto.StateOutput) {
	m.state = state
}

func (m Model) State() sessiondto.StateOutput {
	return m.state
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = size.Width
		m.height = size.Height
		w := size.Width - 8
		if w > 72 {
			w = 72
		}
		if w < 10 {
			w = 10
		}
		m.block.Width = w
		m.overall.Width = w
	}
	return m, nil
}

func (m Model) View() string {
	s := m.state
	if !s.Active {
		body := theme.Muted.Render("No session running.") + "\n\n" +
			theme.Muted.Render("Pick a routine on the Routines tab and press enter.")
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, body)
	}

	header := theme.Title.Render(s.RoutineName) + theme.Muted.Render(fmt.Sprintf("   block %d of %d", s.Index+1, s.Count))
	current := theme.Kind(s.Current.Kind) + "  " + lipgloss.NewStyle().Bold(true).Render(s.Current.Name)

	clock := theme.Clock.Render(format.Clock(s.Remaining))
	if s.Status == sessiondto.StatusPaused {
		clock = theme.Clock.BorderForeground(theme.Surface1).Foreground(theme.Subtext0).Render(format.Clock(s.Remaining) + "  paused")
	}

	var sb strings.Builder
	sb.WriteString(header + "\n\n")
	sb.WriteString(current + "\n\n")
	sb.WriteString(clock + "\n\n")
	sb.WriteString(m.block.ViewAs(BlockProgress(s)) + "\n")
	sb.WriteString(m.overall.ViewAs(OverallProgress(s)) + "\n\n")
	if s.Next != nil {
		sb.WriteString(theme.Muted.Render("next: ") + theme.Kind(s.Next.Kind) + " " + s.Next.Name + theme.Muted.Render("  "+format.Clock(s.Next.Duration)) + "\n")
	} else {
		sb.WriteString(theme.Muted.Render("last block") + "\n")
	}
	sb.WriteString("\n" + theme.Muted.Render("space: pause/resume  s: skip  +/-: 10s  x: quit session"))

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, sb.String())
}

// BlockProgress is the elapsed share of the current block in [0,1].
func BlockProgress(s sessiondto.StateOutput) float64 {
	if !s.Active || s.Current.Duration <= 0 {
		return 0
	}
	return clamp(float64(s.Current.Duration-s.Remaining) / float64(s.Current.Duration))
}

// OverallProgress is the elapsed share of the whole routine, counting finished blocks at
// their planned length.
func OverallProgress(s sessiondto.StateOutput) float64 {
	if !s.Active || s.Total <= 0 {
		return 0
	}
	elapsed := s.Completed + s.Current.Duration - s.Remaining
	return clamp(float64(elapsed) / float64(s.Total))
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
