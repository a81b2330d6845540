package hostinfo

import (
	"net/http"
	"strings"

	"github.com/mileusna/useragent"
)

// ClientAgent is the normalized User-Agent of a caller.
type ClientAgent struct {
	// Family is the parsed client name, or the raw header when it cannot be parsed.
	Family string
	// Bot reports crawlers and automated probes.
	Bot bool
}

// ParseClientAgent classifies the User-Agent header of r. It returns the zero
// value when the header is absent.
func ParseClientAgent(r *http.Request) ClientAgent {
	ua := strings.TrimSpace(r.UserAgent())
	if ua == "" {
		return ClientAgent{}
	}

	parsed := useragent.Parse(ua)
	if parsed.Name != "" {
		return ClientAgent{Family: parsed.Name, Bot: parsed.Bot}
	}
	return ClientAgent{Family: ua, Bot: parsed.Bot}
}
