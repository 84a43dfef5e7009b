package adapter

import (
	"io"
	"log/slog"
	"os"
)

// newLogger creates the stage logger. Stage output goes both to the
// scheduler-owned log file and to stdout, mirroring what pipeline operators
// expect to find in _log. It does not set the global logger, allowing for
// isolated logger instances.
func newLogger(level slog.Level, logFile *os.File) *slog.Logger {
	handlerOpts := &slog.HandlerOptions{Level: level}
	return slog.New(slog.NewTextHandler(io.MultiWriter(logFile, os.Stdout), handlerOpts))
}
