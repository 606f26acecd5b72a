package health

import (
	"context"
	"encoding/json"
	"net/http"
	"time"
)

// Checker represents dependencies that can be probed for readiness.
type Checker interface {
	PingSink(ctx context.Context, timeout time.Duration) error
}

// Handler exposes HTTP handlers for health endpoints.
type Handler struct {
	Checker     Checker
	SinkTimeout time.Duration
}

// Live reports liveness status.
func (h Handler) Live(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// Ready reports readiness based on the report sink probe.
func (h Handler) Ready(w http.ResponseWriter, r *http.Request) {
	if h.Checker == nil {
		http.Error(w, "dependencies unavailable", http.StatusServiceUnavailable)
		return
	}
	sinkStatus := "ok"
	if err := h.Checker.PingSink(r.Context(), h.sinkTimeout()); err != nil {
		sinkStatus = err.Error()
	}
	status := map[string]string{
		"sink": sinkStatus,
	}
	w.Header().Set("Content-Type", "application/json")
	if sinkStatus != "ok" {
		w.WriteHeader(http.StatusServiceUnavailable)
	} else {
		w.WriteHeader(http.StatusOK)
	}
	_ = json.NewEncoder(w).Encode(status)
}

func (h Handler) sinkTimeout() time.Duration {
	if h.SinkTimeout <= 0 {
		return 300 * time.Millisecond
	}
	return h.SinkTimeout
}
