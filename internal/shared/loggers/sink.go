package loggers

import (
	"errors"
	"fmt"
	"io"
)

// ErrInstrumentationSink reports that a log record could not be written.
var ErrInstrumentationSink = errors.New("instrumentation sink unavailable")

type failSafeWriter struct {
	w       io.Writer
	onError func(error)
}

// NewFailSafeWriter wraps w so write failures are handed to onError instead of
// being returned to the caller. Writes always report success.
func NewFailSafeWriter(w io.Writer, onError func(error)) io.Writer {
	return &failSafeWriter{w: w, onError: onError}
}

func (f *failSafeWriter) Write(p []byte) (int, error) {
	n, err := f.w.Write(p)
	if err == nil && n < len(p) {
		err = io.ErrShortWrite
	}
	if err != nil && f.onError != nil {
		f.onError(fmt.Errorf("%w: %w", ErrInstrumentationSink, err))
	}
	return len(p), nil
}
