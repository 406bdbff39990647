package out

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"golang.org/x/term"

	"cronos/internal/modules/session/domain"
	sessionout "cronos/internal/modules/session/port/out"
)

// BellCuePlayer rings the terminal bell: once to start, twice to end, and once for a
// countdown tick. Nothing is written when the target is not a terminal.
type BellCuePlayer struct {
	mu    sync.Mutex
	out   io.Writer
	isTTY bool
}

func NewBellCuePlayer(out *os.File) sessionout.CuePlayer {
	return &BellCuePlayer{out: out, isTTY: out != nil && term.IsTerminal(int(out.Fd()))}
}

func (p *BellCuePlayer) Play(_ context.Context, kind domain.CueKind) error {
	if !p.isTTY {
		return nil
	}
	rings := 1
	switch kind {
	case domain.CueStart, domain.CueTick:
	case domain.CueEnd:
		rings = 2
	default:
		return fmt.Errorf("unknown cue %q", kind)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, err := io.WriteString(p.out, strings.Repeat("\a", rings)); err != nil {
		return fmt.Errorf("ring bell: %w", err)
	}
	return nil
}
