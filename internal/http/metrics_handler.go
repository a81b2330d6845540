package http

import (
	"net/http"

	"hostprobe/internal/shared/loggers"
	"hostprobe/internal/shared/metrics"
)

type metricsHandler struct {
	registry *metrics.Registry
}

func NewMetricsHandler(registry *metrics.Registry) AppHttpHandler {
	return &metricsHandler{registry: registry}
}

// Handle processes GET /metrics requests. A partially gathered snapshot is
// still served; the collector error goes to the log.
func (h *metricsHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	body, err := h.registry.Render()
	if err != nil {
		if body == "" {
			return errInternalMetricsRenderFailed(err)
		}
		loggers.Ctx(r.Context()).Warn().
			Err(err).
			Msg("serving partial metrics snapshot")
	}

	w.Header().Set("Content-Type", metrics.ContentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(body))
	return nil
}
