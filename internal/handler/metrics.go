package handler

import (
	"fmt"
	"net/http"

	"github.com/carhub/carhub/internal/metrics"
)

// MetricsHandler exposes in-memory metrics.
type MetricsHandler struct {
	snapshotter metrics.Snapshotter
}

// NewMetricsHandler creates a new MetricsHandler.
func NewMetricsHandler(snapshotter metrics.Snapshotter) *MetricsHandler {
	return &MetricsHandler{snapshotter: snapshotter}
}

// Metrics returns metrics in Prometheus exposition format.
func (h *MetricsHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	if h.snapshotter == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	snap := h.snapshotter.Snapshot()

	w.Header().Set("Content-Type", "text/plain; version=0.0.4")

	writeMetric(w, "carhub_signups_total %d\n", snap.Signups)
	writeMetric(w, "carhub_logins_total %d\n", snap.Logins)
	writeMetric(w, "carhub_auth_failures_total %d\n", snap.AuthFailures)

	writeMetric(w, "carhub_listings_created_total %d\n", snap.ListingsCreated)
	writeMetric(w, "carhub_listings_updated_total %d\n", snap.ListingsUpdated)
	writeMetric(w, "carhub_listings_deleted_total %d\n", snap.ListingsDeleted)

	writeMetric(w, "carhub_images_uploaded_total %d\n", snap.ImagesUploaded)
	writeMetric(w, "carhub_images_deleted_total %d\n", snap.ImagesDeleted)
}

func writeMetric(w http.ResponseWriter, format string, value any) {
	_, _ = fmt.Fprintf(w, format, value)
}
