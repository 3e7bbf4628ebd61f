package controllers

import (
	"net/http"

	"github.com/altamira-labs/stocktrack-backend/api/responses"
	"github.com/altamira-labs/stocktrack-backend/internal/dashboard"
	"github.com/altamira-labs/stocktrack-backend/pkg/logger"
)

// DashboardMetrics returns the aggregate inventory counters.
func DashboardMetrics(svc dashboard.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		metrics, err := svc.Metrics(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, metrics)
	}
}
