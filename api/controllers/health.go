package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/budunsigorta/backend/api/responses"
	"github.com/budunsigorta/backend/pkg/logger"
)

const readinessTimeout = 5 * time.Second

// Pinger is satisfied by the database and cache clients.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthLive reports process liveness. It never touches dependencies.
func HealthLive(serviceName string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, map[string]string{
			"status":  "ok",
			"service": serviceName,
		})
	}
}

// HealthReady reports readiness by pinging the backing dependencies.
// A nil pinger is skipped, which lets the worker reuse the handler.
func HealthReady(logg *logger.Logger, database, cache Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
		defer cancel()

		checks := map[string]string{}
		healthy := true

		if database != nil {
			checks["database"] = "ok"
			if err := database.Ping(ctx); err != nil {
				checks["database"] = "unavailable"
				healthy = false
				if logg != nil {
					logg.Error(ctx, "database readiness check failed", err)
				}
			}
		}
		if cache != nil {
			checks["cache"] = "ok"
			if err := cache.Ping(ctx); err != nil {
				checks["cache"] = "unavailable"
				healthy = false
				if logg != nil {
					logg.Error(ctx, "cache readiness check failed", err)
				}
			}
		}

		status := http.StatusOK
		overall := "ready"
		if !healthy {
			status = http.StatusServiceUnavailable
			overall = "degraded"
		}
		responses.WriteSuccessStatus(w, status, map[string]any{
			"status": overall,
			"checks": checks,
		})
	}
}
