package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	hclog "github.com/hashicorp/go-hclog"
)

// New builds the root logger. An empty path logs to stderr.
func New(level, path string) (hclog.Logger, io.Closer, error) {
	var out io.Writer = os.Stderr
	var closer io.Closer = nopCloser{}
	if path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, nil, fmt.Errorf("create log dir: %w", err)
		}
		file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		out = file
		closer = file
	}
	logger := hclog.New(&hclog.LoggerOptions{
		Name:   "cronos",
		Level:  hclog.LevelFromString(level),
		Output: out,
	})
	return logger, closer, nil
}

// Discard is used by tests and by adapters constructed without a logger.
func Discard() hclog.Logger {
	return hclog.NewNullLogger()
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
