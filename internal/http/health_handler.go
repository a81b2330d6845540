package http

import "net/http"

type healthResponse struct {
	Status string `json:"status"`
}

var healthBody = healthResponse{Status: "healthy"}

type healthHandler struct{}

func NewHealthHandler() AppHttpHandler {
	return &healthHandler{}
}

// Handle processes GET /health requests.
func (h *healthHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	return writeJSON(w, http.StatusOK, healthBody)
}
