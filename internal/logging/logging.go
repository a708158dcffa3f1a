// Package logging routes structured logs to a file in the data directory.
// The interactive UI owns the terminal, so nothing may log to stdout or
// stderr while the program runs.
package logging

import (
	"log/slog"
	"os"
	"path/filepath"
)

// Setup opens (appending) taskden.log in dir and installs a text slog
// handler writing to it as the default logger. The returned file should be
// closed on shutdown.
func Setup(dir string) (*os.File, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(filepath.Join(dir, "taskden.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(f, nil)))
	return f, nil
}
