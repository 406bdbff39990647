package history

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	historydto "cronos/internal/modules/history/dto"
	"cronos/internal/ui/format"
	"cronos/internal/ui/theme"
)

type Port interface {
	List(ctx context.Context) ([]historydto.EntryOutput, error)
	Summarize(ctx context.Context) (historydto.Summary, error)
}

type LoadedMsg struct {
	Entries []historydto.EntryOutput
	Summary historydto.Summary
	Err     error
}

type entryItem struct {
	entry historydto.EntryOutput
}

func (i entryItem) Title() string { return i.entry.RoutineName }
func (i entryItem) Description() string {
	date := i.entry.Date.Local().Format("Mon Jan 2 15:04")
	if i.entry.Status == historydto.StatusAborted {
		return date + "  " + theme.Bad.Render("aborted")
	}
	return date + "  " + format.Clock(i.entry.TotalTime)
}
func (i entryItem) FilterValue() string { return i.entry.RoutineName }

type Model struct {
	port    Port
	list    list.Model
	summary historydto.Summary
	err     error
	width   int
	height  int
}

func New(port Port) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "History"
	l.Styles.Title = theme.Title
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)
	return Model{port: port, list: l}
}

func (m Model) Init() tea.Cmd {
	return m.Reload()
}

func (m Model) Reload() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		entries, err := m.port.List(ctx)
		if err != nil {
			return LoadedMsg{Err: err}
		}
		summary, err := m.port.Summarize(ctx)
		return LoadedMsg{Entries: entries, Summary: summary, Err: err}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(msg.Width, msg.Height-2)
	case LoadedMsg:
		m.err = msg.Err
		if msg.Err != nil {
			return m, nil
		}
		m.summary = msg.Summary
		items := make([]list.Item, len(msg.Entries))
		for i, e := range msg.Entries {
			items[i] = entryItem{entry: e}
		}
		return m, m.list.SetItems(items)
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.err != nil {
		return theme.Bad.Render("history: " + m.err.Error())
	}
	s := m.summary
	line := theme.Muted.Render(fmt.Sprintf("%d sessions  %d completed  %d aborted  %s trained",
		s.Sessions, s.Completed, s.Aborted, format.Clock(s.TotalTime)))
	return lipgloss.JoinVertical(lipgloss.Left, m.list.View(), line)
}

func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}
