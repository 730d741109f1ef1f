// SPDX-License-Identifier: EPL-2.0

// Package observability builds the logger and Prometheus metrics shared by
// the CLI and the HTTP server.
package observability

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// NewLogger returns a JSON logger writing to w, or a console logger when
// pretty is set. Unknown levels fall back to info. A nil w means stderr.
func NewLogger(level string, pretty bool, w io.Writer) zerolog.Logger {
	if w == nil {
		w = os.Stderr
	}

	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	if pretty {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	return zerolog.New(w).Level(lvl).With().Timestamp().Logger()
}

// WithRequestID tags every event of logger with request_id, generating one
// when id is empty.
func WithRequestID(logger zerolog.Logger, id string) (zerolog.Logger, string) {
	if id == "" {
		id = uuid.New().String()
	}

	return logger.With().Str("request_id", id).Logger(), id
}
