package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/printdeskhq/printdesk-backend/api/responses"
	"github.com/printdeskhq/printdesk-backend/pkg/config"
)

// Pinger matches what the health probe needs from the database and cache
// clients.
type Pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-PrintDesk-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady reports ready only when the database and cache answer a ping.
func HealthReady(cfg *config.Config, database Pinger, cache Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-PrintDesk-Env", cfg.App.Env)

		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		checks := map[string]string{"database": "ok", "cache": "ok"}
		healthy := true

		if database != nil {
			if err := database.Ping(ctx); err != nil {
				checks["database"] = err.Error()
				healthy = false
			}
		}
		if cache != nil {
			if err := cache.Ping(ctx); err != nil {
				checks["cache"] = err.Error()
				healthy = false
			}
		}

		if !healthy {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			_ = json.NewEncoder(w).Encode(map[string]any{"status": "degraded", "checks": checks})
			return
		}

		responses.WriteSuccess(w, map[string]any{"status": "ready", "checks": checks})
	}
}
