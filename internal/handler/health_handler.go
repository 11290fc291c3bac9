package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthCheck reports whether a dependency can serve requests
type HealthCheck func(ctx context.Context) bool

// RosterStatus describes the roster currently served by the directory
type RosterStatus interface {
	Size() int
	LoadedAt() time.Time
}

// HealthHandler aggregates dependency checks for /health
type HealthHandler struct {
	checks map[string]HealthCheck
	roster RosterStatus
}

// NewHealthHandler creates a HealthHandler over named checks. roster may be nil.
func NewHealthHandler(checks map[string]HealthCheck, roster RosterStatus) *HealthHandler {
	return &HealthHandler{checks: checks, roster: roster}
}

func (h *HealthHandler) Health(c *gin.Context) {
	body := gin.H{}
	code := http.StatusOK
	for name, check := range h.checks {
		if check(c.Request.Context()) {
			body[name] = "healthy"
		} else {
			body[name] = "unhealthy"
			code = http.StatusServiceUnavailable
		}
	}
	if h.roster != nil {
		body["roster_size"] = h.roster.Size()
		if loaded := h.roster.LoadedAt(); !loaded.IsZero() {
			body["roster_loaded_at"] = loaded.UTC().Format(time.RFC3339)
		}
	}
	if code == http.StatusOK {
		body["status"] = "ok"
	} else {
		body["status"] = "error"
	}
	c.JSON(code, body)
}
