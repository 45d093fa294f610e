package internal

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// NewLogger builds the text logger used by the command line.
func NewLogger(level string, w io.Writer) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(level))); err != nil {
		return nil, fmt.Errorf("log level %q: %w", level, err)
	}

	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: lvl,
	})
	return slog.New(handler), nil
}
