package hostinfo

import (
	"net"
	"net/http"
	"os"
	"strings"
)

// UnknownHost is reported when the host name cannot be resolved.
const UnknownHost = "unknown"

const (
	headerForwardedFor = "X-Forwarded-For"
	headerRealIP       = "X-Real-IP"
)

var osHostname = os.Hostname

// ResolveIdentity returns the name this instance reports in diagnostics.
// It is meant to be called once at startup and the result shared.
func ResolveIdentity() string {
	name, err := osHostname()
	name = strings.TrimSpace(name)
	if err != nil || name == "" {
		return UnknownHost
	}
	return name
}

// ClientAddress returns the caller's address as seen by this instance: the first
// hop of X-Forwarded-For, then X-Real-IP, then the transport peer address.
func ClientAddress(r *http.Request) string {
	if xff := r.Header.Get(headerForwardedFor); xff != "" {
		if idx := strings.IndexByte(xff, ','); idx != -1 {
			xff = xff[:idx]
		}
		if ip := strings.TrimSpace(xff); ip != "" {
			return ip
		}
	}

	if ip := strings.TrimSpace(r.Header.Get(headerRealIP)); ip != "" {
		return ip
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
