package bootstrap

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	sessiondto "cronos/internal/modules/session/dto"
	apperrors "cronos/internal/platform/errors"
	"cronos/internal/ui/format"
)

const headlessAdjust = 10

var errSessionOver = errors.New("session over")

// HeadlessOptions configures RunHeadless.
type HeadlessOptions struct {
	// RoutineID starts a new session. Empty attaches to the session restored at startup.
	RoutineID string

	// AssumeYes skips the quit confirmation.
	AssumeYes bool

	In      io.Reader
	Out     io.Writer
	Refresh time.Duration
}

// RunHeadless drives one session without the full-screen UI. Single-letter lines on In
// control it: p pauses or resumes, s skips, + and - adjust, q quits.
func RunHeadless(ctx context.Context, app *App, opts HeadlessOptions) error {
	if opts.Refresh <= 0 {
		opts.Refresh = time.Second
	}
	events, unsubscribe := app.SessionCLI.Subscribe(32)
	defer unsubscribe()

	var (
		state sessiondto.StateOutput
		err   error
	)
	if opts.RoutineID != "" {
		state, err = app.SessionCLI.Start(ctx, opts.RoutineID)
	} else {
		state, err = app.SessionCLI.Current(ctx)
		if err == nil && !state.Active {
			err = apperrors.ErrNoActiveSession
		}
	}
	if err != nil {
		return err
	}

	out := newLineWriter(opts.Out)
	out.status(state)

	lines := make(chan string)
	go scanLines(opts.In, lines)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return app.driver.Run(gctx)
	})
	g.Go(func() error {
		ticker := time.NewTicker(opts.Refresh)
		defer ticker.Stop()
		confirming := false
		routineName := state.RoutineName
		for {
			select {
			case <-gctx.Done():
				return nil
			case event, ok := <-events:
				if !ok {
					return nil
				}
				if event.Kind == sessiondto.EventFinished {
					out.finish(routineName, event.Outcome)
					return errSessionOver
				}
				if event.State.Active {
					routineName = event.State.RoutineName
				}
				out.event(event)
			case <-ticker.C:
				current, err := app.SessionCLI.Current(gctx)
				if err == nil {
					out.status(current)
				}
			case line, ok := <-lines:
				if !ok {
					// Input closed: keep running until the session ends on its own.
					lines = nil
					continue
				}
				cmd := strings.TrimSpace(line)
				if confirming {
					confirming = false
					if strings.EqualFold(cmd, "y") || strings.EqualFold(cmd, "yes") {
						cmd = "Q"
					} else {
						out.note("keep going")
						continue
					}
				}
				if cmd == "q" && !opts.AssumeYes {
					confirming = true
					out.note("quit this session? [y/N]")
					continue
				}
				if err := headlessCommand(gctx, app, cmd); err != nil {
					out.note(err.Error())
				}
			}
		}
	})

	err = g.Wait()
	if errors.Is(err, errSessionOver) {
		return nil
	}
	return err
}

func headlessCommand(ctx context.Context, app *App, cmd string) error {
	var err error
	switch cmd {
	case "":
		return nil
	case "p", " ":
		_, err = app.SessionCLI.TogglePause(ctx)
	case "s":
		_, err = app.SessionCLI.Skip(ctx)
	case "+", "=":
		_, err = app.SessionCLI.Adjust(ctx, headlessAdjust)
	case "-":
		_, err = app.SessionCLI.Adjust(ctx, -headlessAdjust)
	case "q", "Q":
		_, err = app.SessionCLI.Quit(ctx)
	default:
		return fmt.Errorf("unknown command %q (p, s, +, -, q)", cmd)
	}
	return err
}

func scanLines(in io.Reader, lines chan<- string) {
	defer close(lines)
	if in == nil {
		return
	}
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		lines <- scanner.Text()
	}
}

// lineWriter rewrites a single status line on a terminal and prints only transitions
// otherwise.
type lineWriter struct {
	out  io.Writer
	live bool
}

func newLineWriter(out io.Writer) *lineWriter {
	if out == nil {
		out = io.Discard
	}
	live := false
	if f, ok := out.(*os.File); ok {
		live = term.IsTerminal(int(f.Fd()))
	}
	return &lineWriter{out: out, live: live}
}

func (w *lineWriter) status(s sessiondto.StateOutput) {
	if !w.live {
		return
	}
	fmt.Fprintf(w.out, "\r\033[K%s", describeState(s))
}

func (w *lineWriter) event(e sessiondto.EventOutput) {
	if w.live {
		fmt.Fprintf(w.out, "\r\033[K%s", describeState(e.State))
		return
	}
	if e.Kind == sessiondto.EventTick {
		return
	}
	fmt.Fprintf(w.out, "%s: %s\n", e.Kind, describeState(e.State))
}

func (w *lineWriter) finish(routineName, outcome string) {
	if w.live {
		fmt.Fprint(w.out, "\r\033[K")
	}
	fmt.Fprintf(w.out, "%s %s\n", routineName, strings.ToLower(outcome))
}

func (w *lineWriter) note(text string) {
	if w.live {
		fmt.Fprint(w.out, "\r\033[K")
	}
	fmt.Fprintln(w.out, text)
}

func describeState(s sessiondto.StateOutput) string {
	if !s.Active {
		return "idle"
	}
	line := fmt.Sprintf("[%d/%d] %s %s %s", s.Index+1, s.Count, s.Current.Kind, s.Current.Name, format.Clock(s.Remaining))
	if s.Status == sessiondto.StatusPaused {
		line += " (paused)"
	}
	if s.Next != nil {
		line += "  next: " + s.Next.Name
	}
	return line
}
