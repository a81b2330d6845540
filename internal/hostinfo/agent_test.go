package hostinfo

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseClientAgent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		userAgent string
		expected  ClientAgent
	}{
		{
			name:      "no header",
			userAgent: "",
			expected:  ClientAgent{},
		},
		{
			name:      "browser",
			userAgent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
			expected:  ClientAgent{Family: "Chrome"},
		},
		{
			name:      "crawler",
			userAgent: "Mozilla/5.0 (compatible; Googlebot/2.1; +http://www.google.com/bot.html)",
			expected:  ClientAgent{Family: "Googlebot", Bot: true},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodGet, "/info", nil)
			if tt.userAgent != "" {
				req.Header.Set("User-Agent", tt.userAgent)
			}

			assert.Equal(t, tt.expected, ParseClientAgent(req))
		})
	}
}
