package logging

import (
	"log/slog"
	"strings"
)

// Writer is an io.Writer implementation that forwards calculator output lines to slog.
type Writer struct {
	logger *slog.Logger
	msg    string
}

// NewWriter constructs a Writer bound to the provided logger. Each line is logged with msg.
func NewWriter(logger *slog.Logger, msg string) *Writer {
	if msg == "" {
		msg = "output"
	}
	return &Writer{logger: logger, msg: msg}
}

// Write logs every non-empty line of p at info level.
func (w *Writer) Write(p []byte) (int, error) {
	if w.logger != nil {
		for _, line := range strings.Split(strings.TrimRight(string(p), "\n"), "\n") {
			if line != "" {
				w.logger.Info(w.msg, "line", line)
			}
		}
	}
	return len(p), nil
}
