package hostinfo

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveIdentity(t *testing.T) {
	original := osHostname
	t.Cleanup(func() { osHostname = original })

	tests := []struct {
		name     string
		hostname string
		err      error
		want     string
	}{
		{name: "resolved", hostname: "replica-7", want: "replica-7"},
		{name: "trimmed", hostname: " replica-7\n", want: "replica-7"},
		{name: "empty", hostname: "", want: UnknownHost},
		{name: "error", hostname: "ignored", err: errors.New("no uts namespace"), want: UnknownHost},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			osHostname = func() (string, error) { return tt.hostname, tt.err }
			assert.Equal(t, tt.want, ResolveIdentity())
		})
	}
}

func TestClientAddress(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		remoteAddr string
		headers    map[string]string
		want       string
	}{
		{
			name:       "remote addr only",
			remoteAddr: "10.0.0.5:53211",
			want:       "10.0.0.5",
		},
		{
			name:       "ipv6 remote addr",
			remoteAddr: "[2001:db8::1]:443",
			want:       "2001:db8::1",
		},
		{
			name:       "remote addr without port",
			remoteAddr: "10.0.0.5",
			want:       "10.0.0.5",
		},
		{
			name:       "forwarded for wins",
			remoteAddr: "10.0.0.5:53211",
			headers:    map[string]string{"X-Forwarded-For": "203.0.113.9, 10.1.1.1", "X-Real-IP": "198.51.100.2"},
			want:       "203.0.113.9",
		},
		{
			name:       "real ip when no forwarded for",
			remoteAddr: "10.0.0.5:53211",
			headers:    map[string]string{"X-Real-IP": " 198.51.100.2 "},
			want:       "198.51.100.2",
		},
		{
			name:       "blank forwarded for falls through",
			remoteAddr: "10.0.0.5:53211",
			headers:    map[string]string{"X-Forwarded-For": " , 10.1.1.1"},
			want:       "10.0.0.5",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodGet, "/info", nil)
			req.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}

			assert.Equal(t, tt.want, ClientAddress(req))
		})
	}
}
