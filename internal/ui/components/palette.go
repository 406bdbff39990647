package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"cronos/internal/ui/theme"
)

// PaletteSubmitMsg carries the trimmed command line the user entered.
type PaletteSubmitMsg struct{ Input string }

type PaletteCancelMsg struct{}

// PaletteCommand describes one verb the app understands. The app executes them in
// app/palette.go; the list here only drives completion and hints.
type PaletteCommand struct {
	Verb    string
	Args    string
	Summary string
}

var paletteCommands = []PaletteCommand{
	{Verb: "start", Summary: "run the selected routine"},
	{Verb: "pause", Summary: "pause or resume the session"},
	{Verb: "skip", Summary: "finish the current block now"},
	{Verb: "adjust", Args: "<+/-seconds>", Summary: "change the time left in this block"},
	{Verb: "abort", Summary: "quit the session"},
	{Verb: "routine:new", Args: "<name> <KIND:seconds>...", Summary: "create a routine"},
	{Verb: "routine:rename", Args: "<name>", Summary: "rename the selected routine"},
	{Verb: "routine:delete", Summary: "delete the selected routine"},
	{Verb: "block:add", Args: "<kind> <seconds> [name]", Summary: "append a block"},
	{Verb: "block:edit", Args: "<seconds> [name]", Summary: "change the selected block"},
	{Verb: "block:dup", Summary: "append a copy of the selected block"},
	{Verb: "block:rm", Summary: "remove the selected block"},
	{Verb: "block:up", Summary: "move the selected block up"},
	{Verb: "block:down", Summary: "move the selected block down"},
}

const maxPaletteHints = 6

var (
	paletteFrame = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Peach).
			Background(theme.Mantle).
			Foreground(theme.Text).
			Padding(0, 1)

	hintVerb    = lipgloss.NewStyle().Foreground(theme.Lavender)
	hintArgs    = lipgloss.NewStyle().Foreground(theme.Subtext0)
	hintCurrent = lipgloss.NewStyle().Foreground(theme.Peach).Bold(true)
)

// Palette is a one-line command prompt with verb completion. Tab completes the
// highlighted verb; up and down move the highlight.
type Palette struct {
	input    textinput.Model
	open     bool
	width    int
	selected int
}

func NewPalette() Palette {
	in := textinput.New()
	in.Prompt = ": "
	in.Placeholder = "command"
	in.CharLimit = 256
	return Palette{input: in}
}

func (p Palette) Visible() bool { return p.open }

func (p *Palette) Open() tea.Cmd {
	p.open = true
	p.selected = 0
	p.input.Reset()
	return p.input.Focus()
}

func (p *Palette) SetWidth(w int) { p.width = w }

func (p *Palette) close() {
	p.open = false
	p.input.Blur()
}

// Matches returns the commands whose verb starts with the first word typed so far.
func (p Palette) Matches() []PaletteCommand {
	verb := strings.ToLower(strings.TrimSpace(p.input.Value()))
	if i := strings.IndexByte(verb, ' '); i >= 0 {
		verb = verb[:i]
	}
	var out []PaletteCommand
	for _, c := range paletteCommands {
		if strings.HasPrefix(c.Verb, verb) {
			out = append(out, c)
		}
	}
	return out
}

func (p Palette) Value() string { return p.input.Value() }

func (p Palette) Update(msg tea.Msg) (Palette, tea.Cmd) {
	if !p.open {
		return p, nil
	}
	key, isKey := msg.(tea.KeyMsg)
	if !isKey {
		var cmd tea.Cmd
		p.input, cmd = p.input.Update(msg)
		return p, cmd
	}

	switch key.String() {
	case "esc":
		p.close()
		return p, func() tea.Msg { return PaletteCancelMsg{} }
	case "enter":
		line := strings.TrimSpace(p.input.Value())
		p.close()
		return p, func() tea.Msg { return PaletteSubmitMsg{Input: line} }
	case "tab":
		matches := p.Matches()
		if len(matches) > 0 && !strings.Contains(p.input.Value(), " ") {
			p.input.SetValue(matches[min(p.selected, len(matches)-1)].Verb + " ")
			p.input.CursorEnd()
			p.selected = 0
		}
		return p, nil
	case "up":
		if p.selected > 0 {
			p.selected--
		}
		return p, nil
	case "down":
		if p.selected < min(len(p.Matches()), maxPaletteHints)-1 {
			p.selected++
		}
		return p, nil
	}

	before := p.input.Value()
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	if p.input.Value() != before {
		p.selected = 0
	}
	return p, cmd
}

func (p Palette) View() string {
	if !p.open {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Command") + "\n")
	sb.WriteString(p.input.View() + "\n")

	matches := p.Matches()
	if len(matches) > maxPaletteHints {
		matches = matches[:maxPaletteHints]
	}
	if len(matches) > 0 {
		sb.WriteString("\n")
	}
	for i, c := range matches {
		verb := hintVerb.Render(c.Verb)
		if i == p.selected {
			verb = hintCurrent.Render("› " + c.Verb)
		} else {
			verb = "  " + verb
		}
		line := verb
		if c.Args != "" {
			line += " " + hintArgs.Render(c.Args)
		}
		sb.WriteString(line + "  " + theme.Muted.Render(c.Summary) + "\n")
	}

	width := p.width
	if width < 20 {
		width = 64
	}
	return paletteFrame.Width(width - 2).Render(sb.String())
}
