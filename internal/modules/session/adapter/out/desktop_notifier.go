package out

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strconv"

	sessionout "cronos/internal/modules/session/port/out"
)

type DesktopNotifier struct{}

func NewDesktopNotifier() sessionout.Notifier {
	return &DesktopNotifier{}
}

func (n *DesktopNotifier) Notify(_ context.Context, title, body string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		script := fmt.Sprintf("display notification %s with title %s", strconv.Quote(body), strconv.Quote(title))
		cmd = exec.Command("osascript", "-e", script)
	case "linux":
		cmd = exec.Command("notify-send", "--app-name=cronos", title, body)
	default:
		return fmt.Errorf("desktop notifications are not supported on %s", runtime.GOOS)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("send notification: %w", err)
	}
	go func() { _ = cmd.Wait() }()
	return nil
}
