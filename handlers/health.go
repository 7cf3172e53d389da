package handlers

import (
	"context"
	"net/http"
	"time"

	"nfl-pickem-go/interfaces"
)

// HealthHandler reports process liveness and store reachability
type HealthHandler struct {
	checks map[string]interfaces.HealthChecker
}

// NewHealthHandler creates a health handler. Nil checkers are ignored.
func NewHealthHandler(checks map[string]interfaces.HealthChecker) *HealthHandler {
	live := make(map[string]interfaces.HealthChecker, len(checks))
	for name, c := range checks {
		if c != nil {
			live[name] = c
		}
	}
	return &HealthHandler{checks: live}
}

// Health handles GET /health. Any failing check turns the response into a 503.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	status := http.StatusOK
	components := make(map[string]string, len(h.checks))
	for name, c := range h.checks {
		if err := c.Ping(ctx); err != nil {
			components[name] = "unavailable"
			status = http.StatusServiceUnavailable
			continue
		}
		components[name] = "ok"
	}

	overall := "ok"
	if status != http.StatusOK {
		overall = "degraded"
	}
	writeJSON(w, status, map[string]interface{}{
		"status":     overall,
		"components": components,
	})
}
