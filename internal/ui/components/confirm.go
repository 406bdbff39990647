package components

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"cronos/internal/ui/theme"
)

// ConfirmResultMsg reports the user's answer for the action tagged Action.
type ConfirmResultMsg struct {
	Action   string
	Accepted bool
}

var confirmStyle = lipgloss.NewStyle().
	BorderStyle(lipgloss.RoundedBorder()).
	BorderForeground(theme.Red).
	Background(theme.Mantle).
	Foreground(theme.Text).
	Padding(1, 2)

// Confirm is a yes/no modal guarding destructive actions.
type Confirm struct {
	action  string
	prompt  string
	visible bool
}

func (c Confirm) Visible() bool { return c.visible }

func (c *Confirm) Open(action, prompt string) {
	c.action = action
	c.prompt = prompt
	c.visible = true
}

func (c Confirm) Update(msg tea.Msg) (Confirm, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !c.visible || !ok {
		return c, nil
	}
	var accepted bool
	switch key.String() {
	case "y", "Y":
		accepted = true
	case "n", "N", "esc", "q":
	default:
		return c, nil
	}
	c.visible = false
	action := c.action
	return c, func() tea.Msg { return ConfirmResultMsg{Action: action, Accepted: accepted} }
}

func (c Confirm) View() string {
	if !c.visible {
		return ""
	}
	return confirmStyle.Render(theme.Hot.Render(c.prompt) + "\n\n" + theme.Muted.Render("y: confirm   n/esc: cancel"))
}
