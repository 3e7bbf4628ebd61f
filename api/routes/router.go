package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/altamira-labs/stocktrack-backend/api/controllers"
	"github.com/altamira-labs/stocktrack-backend/api/middleware"
	"github.com/altamira-labs/stocktrack-backend/internal/assignments"
	"github.com/altamira-labs/stocktrack-backend/internal/dashboard"
	"github.com/altamira-labs/stocktrack-backend/internal/invoices"
	"github.com/altamira-labs/stocktrack-backend/internal/items"
	"github.com/altamira-labs/stocktrack-backend/internal/notifications"
	"github.com/altamira-labs/stocktrack-backend/pkg/config"
	"github.com/altamira-labs/stocktrack-backend/pkg/db"
	"github.com/altamira-labs/stocktrack-backend/pkg/logger"
)

// RouterParams carries everything the HTTP surface depends on.
type RouterParams struct {
	Config        *config.Config
	Logger        *logger.Logger
	DBPinger      db.Pinger
	Invoices      invoices.Service
	Items         items.Service
	Assignments   assignments.Service
	Notifications notifications.Service
	Dashboard     dashboard.Service
}

// NewRouter mounts the REST surface.
func NewRouter(params RouterParams) http.Handler {
	cfg := params.Config
	logg := params.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS.AllowedOrigins),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, params.DBPinger))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/invoices", func(r chi.Router) {
			r.Post("/", controllers.CreateInvoice(params.Invoices, cfg.Uploads, logg))
			r.Get("/", controllers.ListInvoices(params.Invoices, logg))
			r.Get("/{invoiceId}", controllers.GetInvoice(params.Invoices, logg))
		})

		r.Route("/items", func(r chi.Router) {
			r.Post("/", controllers.CreateItems(params.Items, logg))
			r.Get("/", controllers.ListItems(params.Items, logg))
			r.Get("/low-stock", controllers.ListLowStockItems(params.Items, logg))
			r.Get("/invoice/{invoiceId}", controllers.ListItemsByInvoice(params.Items, logg))
		})

		r.Route("/assignments", func(r chi.Router) {
			r.Post("/", controllers.CreateAssignment(params.Assignments, logg))
			r.Get("/", controllers.ListAssignments(params.Assignments, logg))
			r.Get("/recent", controllers.RecentAssignments(params.Assignments, logg))
		})

		r.Route("/notifications", func(r chi.Router) {
			r.Get("/", controllers.ListNotifications(params.Notifications, logg))
			r.Post("/{notificationId}/read", controllers.MarkNotificationRead(params.Notifications, logg))
			r.Post("/read-all", controllers.MarkAllNotificationsRead(params.Notifications, logg))
		})

		r.Get("/dashboard/metrics", controllers.DashboardMetrics(params.Dashboard, logg))
	})

	return r
}
