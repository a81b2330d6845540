package http

import (
	"context"
	"net/http"
	"strings"
)

const (
	headerRequestID = "x-request-id"
	headerHost      = "Host"

	maxRequestIDLength = 128
)

type requestIDKey struct{}

// RequestID returns the id attached by the router's request ID middleware, or ""
// outside the middleware chain.
func RequestID(r *http.Request) string {
	return requestID(r)
}

func requestID(r *http.Request) string {
	id, _ := r.Context().Value(requestIDKey{}).(string)
	return id
}

func withRequestID(r *http.Request, requestID string) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), requestIDKey{}, requestID))
}

// incomingRequestID returns the caller's request id, or "" when it is missing,
// longer than maxRequestIDLength, or holds characters outside [A-Za-z0-9._:-].
func incomingRequestID(r *http.Request) string {
	id := strings.TrimSpace(r.Header.Get(headerRequestID))
	if id == "" || len(id) > maxRequestIDLength {
		return ""
	}
	for i := 0; i < len(id); i++ {
		if !isRequestIDChar(id[i]) {
			return ""
		}
	}
	return id
}

func isRequestIDChar(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	case c == '-', c == '_', c == '.', c == ':':
		return true
	}
	return false
}

// receivedHeaders returns a copy of the request headers including Host,
// which net/http moves out of the header map.
func receivedHeaders(r *http.Request) http.Header {
	headers := r.Header.Clone()
	if headers == nil {
		headers = http.Header{}
	}
	if r.Host != "" && headers.Get(headerHost) == "" {
		headers.Set(headerHost, r.Host)
	}
	return headers
}
