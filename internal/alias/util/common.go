package util

import (
	"io"
	"log/slog"
)

// CloseQuietly closes c and only logs the error. Used on paths where an
// earlier error is already being returned to the caller.
func CloseQuietly(c io.Closer, what string) {
	if err := c.Close(); err != nil {
		slog.Warn("close failed", "what", what, "err", err)
	}
}
