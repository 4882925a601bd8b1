package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	redis "github.com/redis/go-redis/v9"
)

// probe reports the state of one dependency. A non-nil error marks it down.
type probe struct {
	name     string
	required bool
	check    func(ctx context.Context) (string, error)
}

// ComponentStatus is one entry of the readiness report.
type ComponentStatus struct {
	Status string `json:"status"`
	Detail string `json:"detail,omitempty"`
}

// ReadinessReport is the body of /readyz.
type ReadinessReport struct {
	Status     string                     `json:"status"`
	Version    string                     `json:"version,omitempty"`
	Uptime     string                     `json:"uptime"`
	CheckedAt  time.Time                  `json:"checked_at"`
	Components map[string]ComponentStatus `json:"components"`
}

type HealthHandler struct {
	probes  []probe
	started time.Time
	version string
}

// NewHealthHandler probes the database and, when rdb is not nil, Redis.
// Redis is optional: the service keeps serving without it.
func NewHealthHandler(db *pgxpool.Pool, rdb *redis.Client, version string) *HealthHandler {
	probes := []probe{{
		name:     "database",
		required: true,
		check: func(ctx context.Context) (string, error) {
			if err := db.Ping(ctx); err != nil {
				return "", err
			}
			st := db.Stat()
			return fmt.Sprintf("%d/%d conns in use", st.AcquiredConns(), st.MaxConns()), nil
		},
	}}
	if rdb != nil {
		probes = append(probes, probe{
			name: "redis",
			check: func(ctx context.Context) (string, error) {
				return "", rdb.Ping(ctx).Err()
			},
		})
	}
	return &HealthHandler{probes: probes, started: time.Now(), version: version}
}

// Liveness only says the process is up.
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Readiness runs every probe. Only required probes can fail the check.
func (h *HealthHandler) Readiness(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	report := ReadinessReport{
		Status:     "ready",
		Version:    h.version,
		Uptime:     time.Since(h.started).Round(time.Second).String(),
		CheckedAt:  time.Now().UTC(),
		Components: make(map[string]ComponentStatus, len(h.probes)),
	}
	code := http.StatusOK
	for _, p := range h.probes {
		detail, err := p.check(ctx)
		switch {
		case err == nil:
			report.Components[p.name] = ComponentStatus{Status: "up", Detail: detail}
		case p.required:
			report.Components[p.name] = ComponentStatus{Status: "down", Detail: err.Error()}
			report.Status = "not_ready"
			code = http.StatusServiceUnavailable
		default:
			report.Components[p.name] = ComponentStatus{Status: "degraded", Detail: err.Error()}
		}
	}
	c.JSON(code, report)
}

// Health checks required probes only and hides error details.
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	for _, p := range h.probes {
		if !p.required {
			continue
		}
		if _, err := p.check(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "component": p.name})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "version": h.version})
}
