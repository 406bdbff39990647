package out

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"sync"

	sessionout "cronos/internal/modules/session/port/out"
)

// InhibitWakeLock keeps the machine awake by holding a child process that owns an OS
// inhibitor. Releasing the lock kills the child.
type InhibitWakeLock struct{}

func NewInhibitWakeLock() sessionout.WakeLock {
	return &InhibitWakeLock{}
}

func (l *InhibitWakeLock) Acquire(_ context.Context) (sessionout.WakeLockHandle, error) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("caffeinate", "-di")
	case "linux":
		cmd = exec.Command("systemd-inhibit", "--what=idle:sleep", "--who=cronos", "--why=session running", "--mode=block", "sleep", "infinity")
	default:
		return nil, fmt.Errorf("wake lock is not supported on %s", runtime.GOOS)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("acquire wake lock: %w", err)
	}
	return &processHandle{cmd: cmd}, nil
}

type processHandle struct {
	once sync.Once
	cmd  *exec.Cmd
	err  error
}

func (h *processHandle) Release() error {
	h.once.Do(func() {
		if err := h.cmd.Process.Kill(); err != nil {
			h.err = fmt.Errorf("release wake lock: %w", err)
			return
		}
		_ = h.cmd.Wait()
	})
	return h.err
}
