package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/adminboard/internal/transport"
	"github.com/jmoiron/sqlx"
)

type HealthStatus string

const (
	HealthHealthy   HealthStatus = "healthy"
	HealthUnhealthy HealthStatus = "unhealthy"
)

type CheckEntry struct {
	Status     HealthStatus `json:"status"`
	Message    string       `json:"message,omitempty"`
	CheckedAt  time.Time    `json:"checked_at"`
	DurationMs int64        `json:"duration_ms"`
}

type HealthHandler struct {
	*transport.BaseHandler
	db *sqlx.DB
}

func NewHealthHandler(baseHandler *transport.BaseHandler, db *sqlx.DB) *HealthHandler {
	return &HealthHandler{BaseHandler: baseHandler, db: db}
}

// HealthCheck reports API liveness plus a database ping, echoing back the
// request details the caller sent.
func (h *HealthHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	start := time.Now()
	pingErr := h.db.PingContext(ctx)

	entry := CheckEntry{
		Status:     HealthHealthy,
		CheckedAt:  time.Now().UTC(),
		DurationMs: time.Since(start).Milliseconds(),
	}
	if pingErr != nil {
		entry.Status = HealthUnhealthy
		entry.Message = pingErr.Error()
	}

	headers := make(map[string]string, len(r.Header))
	for name := range r.Header {
		headers[name] = r.Header.Get(name)
	}
	delete(headers, "Cookie")
	delete(headers, "Authorization")

	queryParams := map[string]string{}
	for key := range r.URL.Query() {
		queryParams[key] = r.URL.Query().Get(key)
	}

	h.OK(w, "API is healthy", map[string]any{
		"method":      r.Method,
		"url":         r.URL.String(),
		"headers":     headers,
		"queryParams": queryParams,
		"components": map[string]CheckEntry{
			"postgres": entry,
		},
	})
}
