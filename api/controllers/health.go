package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/altamira-labs/stocktrack-backend/api/responses"
	"github.com/altamira-labs/stocktrack-backend/pkg/config"
	"github.com/altamira-labs/stocktrack-backend/pkg/db"
	pkgerrors "github.com/altamira-labs/stocktrack-backend/pkg/errors"
	"github.com/altamira-labs/stocktrack-backend/pkg/logger"
)

const envHeader = "X-StockTrack-Env"

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady pings the datasource when one is configured. The in-memory
// backend has nothing to probe, so a nil pinger reports ready.
func HealthReady(cfg *config.Config, logg *logger.Logger, dbP db.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)

		if dbP != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := dbP.Ping(ctx); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "database unreachable"))
				return
			}
		}

		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
