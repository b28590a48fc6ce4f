package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/jonboulle/clockwork"
)

const (
	pingTimeout = 3 * time.Second
	// slowPing marks the database degraded; the ledger takes a row lock per
	// charge, so a slow round trip shows up directly as generation latency.
	slowPing = time.Second
)

const (
	statusOK       = "ok"
	statusDegraded = "degraded"
	statusDown     = "down"
)

type dbPinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler serves the liveness, readiness and full health endpoints.
type HealthHandler struct {
	db      dbPinger
	version string
	clock   clockwork.Clock
	started time.Time
}

// NewHealthHandler creates a HealthHandler. Uptime is counted from this call.
func NewHealthHandler(db dbPinger, version string, clock clockwork.Clock) *HealthHandler {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &HealthHandler{db: db, version: version, clock: clock, started: clock.Now()}
}

// HealthResponse is the JSON body of every probe.
type HealthResponse struct {
	Status     string                `json:"status"`
	Version    string                `json:"version,omitempty"`
	Uptime     string                `json:"uptime,omitempty"`
	Components map[string]CompStatus `json:"components,omitempty"`
	Timestamp  time.Time             `json:"timestamp"`
}

// CompStatus is the status of a single dependency.
type CompStatus struct {
	Status  string `json:"status"`
	Latency string `json:"latency,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Live always answers 200 while the process serves HTTP.
func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: statusOK, Timestamp: h.clock.Now()})
}

// Ready answers 503 until the database responds. A slow database still
// counts as ready.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	db := h.pingDB(r.Context())

	status := statusOK
	code := http.StatusOK
	if db.Status == statusDown {
		status, code = statusDown, http.StatusServiceUnavailable
	}
	writeJSON(w, code, HealthResponse{Status: status, Timestamp: h.clock.Now()})
}

// Health reports every component with its latency, plus build and uptime.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	db := h.pingDB(r.Context())

	code := http.StatusOK
	if db.Status == statusDown {
		code = http.StatusServiceUnavailable
	}

	now := h.clock.Now()
	writeJSON(w, code, HealthResponse{
		Status:     db.Status,
		Version:    h.version,
		Uptime:     now.Sub(h.started).Truncate(time.Second).String(),
		Components: map[string]CompStatus{"database": db},
		Timestamp:  now,
	})
}

func (h *HealthHandler) pingDB(ctx context.Context) CompStatus {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	start := h.clock.Now()
	err := h.db.Ping(ctx)
	latency := h.clock.Since(start)

	switch {
	case err != nil:
		return CompStatus{Status: statusDown, Error: err.Error()}
	case latency >= slowPing:
		return CompStatus{Status: statusDegraded, Latency: latency.String()}
	default:
		return CompStatus{Status: statusOK, Latency: latency.String()}
	}
}
