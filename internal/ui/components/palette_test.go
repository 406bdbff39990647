package components_test

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"cronos/internal/ui/components"
)

func typeInto(p components.Palette, s string) components.Palette {
	for _, r := range s {
		p, _ = p.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return p
}

func TestPaletteCompletesVerb(t *testing.T) {
	t.Parallel()
	p := components.NewPalette()
	p.Open()

	p = typeInto(p, "block:")
	if got := len(p.Matches()); got != 6 {
		t.Fatalf("expected 6 block verbs, got %d", got)
	}
	p, _ = p.Update(tea.KeyMsg{Type: tea.KeyDown})
	p, _ = p.Update(tea.KeyMsg{Type: tea.KeyTab})
	if p.Value() != "block:edit " {
		t.Fatalf("unexpected completion %q", p.Value())
	}

	p = typeInto(p, "30")
	p, cmd := p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if p.Visible() {
		t.Fatalf("palette should close on enter")
	}
	if msg := cmd(); msg != (components.PaletteSubmitMsg{Input: "block:edit 30"}) {
		t.Fatalf("unexpected submit %#v", msg)
	}
}

func TestPaletteEscCancels(t *testing.T) {
	t.Parallel()
	p := components.NewPalette()
	p.Open()
	p = typeInto(p, "sk")
	if m := p.Matches(); len(m) != 1 || m[0].Verb != "skip" {
		t.Fatalf("unexpected matches %+v", m)
	}
	p, cmd := p.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if p.Visible() {
		t.Fatalf("palette should close on esc")
	}
	if _, ok := cmd().(components.PaletteCancelMsg); !ok {
		t.Fatalf("expected cancel message")
	}
}
