package loggers

import (
	"context"
	"io"
	"log"
	"time"

	"github.com/rs/zerolog"
)

// Logger is a wrapper around zerolog.Logger for convenience.
type Logger = zerolog.Logger

func init() {
	zerolog.TimestampFunc = func() time.Time {
		return time.Now().UTC()
	}
}

// New creates a JSON logger writing to w at the provided log level.
// Returns an error if the log level string cannot be parsed.
func New(level string, w io.Writer) (Logger, error) {
	zerologLevel, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), err
	}

	logger := zerolog.New(w).
		Level(zerologLevel).
		With().
		Timestamp().
		Caller().
		Logger()

	return logger, nil
}

// NewRequestSink creates the logger that receives one record per completed request.
// Its level is fixed at info so the configured operational level never drops records.
func NewRequestSink(w io.Writer) Logger {
	return zerolog.New(w).
		Level(zerolog.InfoLevel).
		With().
		Timestamp().
		Logger()
}

// NewStdLogger adapts l for APIs that take a *log.Logger, such as http.Server.ErrorLog.
func NewStdLogger(l Logger) *log.Logger {
	return log.New(l, "", 0)
}

// Ctx extracts a logger from the context.
// Returns a no-op logger if no logger is found in context.
var Ctx = func(ctx context.Context) *Logger {
	return zerolog.Ctx(ctx)
}
