package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInfoHandler_Handle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		headers    map[string][]string
		remoteAddr string
		expectedIP string
	}{
		{
			name:       "peer address",
			headers:    map[string][]string{"X-Custom": {"abc"}},
			remoteAddr: "192.0.2.10:51234",
			expectedIP: "192.0.2.10",
		},
		{
			name:       "forwarded for wins over peer",
			headers:    map[string][]string{"X-Forwarded-For": {"203.0.113.7, 10.0.0.1"}},
			remoteAddr: "10.0.0.1:443",
			expectedIP: "203.0.113.7",
		},
		{
			name:       "repeated header values",
			headers:    map[string][]string{"Accept": {"text/html", "application/json"}},
			remoteAddr: "198.51.100.3:8080",
			expectedIP: "198.51.100.3",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			handler := NewInfoHandler("replica-1")

			req := httptest.NewRequest(http.MethodGet, "/info", nil)
			req.RemoteAddr = tt.remoteAddr
			for name, values := range tt.headers {
				for _, v := range values {
					req.Header.Add(name, v)
				}
			}
			rr := httptest.NewRecorder()

			err := handler.Handle(rr, req)
			require.NoError(t, err)

			assert.Equal(t, http.StatusOK, rr.Code)
			assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

			var resp infoResponse
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))

			assert.Equal(t, "replica-1", resp.Hostname)
			assert.Equal(t, tt.expectedIP, resp.IP)
			assert.Equal(t, []string{"example.com"}, resp.Headers.Values(headerHost))
			for name, values := range tt.headers {
				assert.Equal(t, values, resp.Headers.Values(name))
			}
		})
	}
}

func TestInfoHandler_DoesNotMutateRequestHeaders(t *testing.T) {
	t.Parallel()

	handler := NewInfoHandler("replica-1")

	req := httptest.NewRequest(http.MethodGet, "/info", nil)
	req.Header.Set("X-Custom", "abc")
	rr := httptest.NewRecorder()

	require.NoError(t, handler.Handle(rr, req))

	assert.Empty(t, req.Header.Get(headerHost))
	assert.Len(t, req.Header, 1)
}
