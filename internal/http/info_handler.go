package http

import (
	"net/http"

	"hostprobe/internal/hostinfo"
)

type infoResponse struct {
	Hostname string      `json:"hostname"`
	IP       string      `json:"ip"`
	Headers  http.Header `json:"headers"`
}

type infoHandler struct {
	hostIdentity string
}

func NewInfoHandler(hostIdentity string) AppHttpHandler {
	return &infoHandler{hostIdentity: hostIdentity}
}

// Handle processes GET /info requests, echoing which replica answered and
// what it received.
func (h *infoHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	return writeJSON(w, http.StatusOK, infoResponse{
		Hostname: h.hostIdentity,
		IP:       hostinfo.ClientAddress(r),
		Headers:  receivedHeaders(r),
	})
}
