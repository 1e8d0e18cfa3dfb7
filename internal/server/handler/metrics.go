package handler

import (
	"net/http"

	"github.com/abr-dev/interview-coach/internal/metrics"
)

// MetricsHandler serves the in-process counters.
type MetricsHandler struct {
	metrics *metrics.Metrics
}

func NewMetricsHandler(m *metrics.Metrics) *MetricsHandler {
	return &MetricsHandler{metrics: m}
}

func (h *MetricsHandler) Get(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.metrics.Snapshot())
}
