package components_test

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"cronos/internal/ui/components"
)

func press(c components.Confirm, key string) (components.Confirm, tea.Msg) {
	next, cmd := c.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)})
	if cmd == nil {
		return next, nil
	}
	return next, cmd()
}

func TestConfirmAcceptAndDecline(t *testing.T) {
	t.Parallel()
	var c components.Confirm
	c.Open("quit-session", "Quit this session?")

	c, msg := press(c, "x")
	if msg != nil || !c.Visible() {
		t.Fatalf("unrelated keys must keep the modal open")
	}
	c, msg = press(c, "y")
	res, ok := msg.(components.ConfirmResultMsg)
	if !ok || !res.Accepted || res.Action != "quit-session" || c.Visible() {
		t.Fatalf("expected accepted quit-session, got %+v", msg)
	}

	c.Open("delete-routine", "Delete?")
	_, msg = press(c, "n")
	if res, ok := msg.(components.ConfirmResultMsg); !ok || res.Accepted {
		t.Fatalf("expected declined result, got %+v", msg)
	}
}
