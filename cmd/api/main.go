package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/altamira-labs/stocktrack-backend/api/routes"
	"github.com/altamira-labs/stocktrack-backend/internal/assignments"
	"github.com/altamira-labs/stocktrack-backend/internal/dashboard"
	"github.com/altamira-labs/stocktrack-backend/internal/invoices"
	"github.com/altamira-labs/stocktrack-backend/internal/items"
	"github.com/altamira-labs/stocktrack-backend/internal/notifications"
	"github.com/altamira-labs/stocktrack-backend/internal/storage/memory"
	"github.com/altamira-labs/stocktrack-backend/pkg/config"
	"github.com/altamira-labs/stocktrack-backend/pkg/db"
	"github.com/altamira-labs/stocktrack-backend/pkg/logger"
	"github.com/altamira-labs/stocktrack-backend/pkg/migrate"
	"github.com/altamira-labs/stocktrack-backend/pkg/storage/local"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	var (
		invoiceRepo      invoices.Repository
		itemRepo         items.Repository
		assignmentRepo   assignments.Repository
		notificationRepo notifications.Repository
		txRunner         db.TxRunner
		pinger           db.Pinger
	)

	if cfg.Storage.UsesDatabase() {
		dbClient, err := db.New(context.Background(), cfg.DB, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap database", err)
			os.Exit(1)
		}
		defer func() {
			if err := dbClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing database", err)
			}
		}()

		if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
			logg.Error(context.Background(), "failed to run dev migrations", err)
			os.Exit(1)
		}

		invoiceRepo = invoices.NewRepository(dbClient.DB())
		itemRepo = items.NewRepository(dbClient.DB())
		assignmentRepo = assignments.NewRepository(dbClient.DB())
		notificationRepo = notifications.NewRepository(dbClient.DB())
		txRunner = dbClient
		pinger = dbClient
	} else {
		store := memory.NewStore()
		invoiceRepo = store.Invoices()
		itemRepo = store.Items()
		assignmentRepo = store.Assignments()
		notificationRepo = store.Notifications()
		txRunner = store
	}

	blobs, err := local.New(cfg.Uploads.Dir)
	if err != nil {
		logg.Error(context.Background(), "failed to prepare upload directory", err)
		os.Exit(1)
	}

	invoiceService, err := invoices.NewService(invoiceRepo, blobs)
	if err != nil {
		logg.Error(context.Background(), "failed to create invoices service", err)
		os.Exit(1)
	}
	itemService, err := items.NewService(itemRepo, invoiceRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create items service", err)
		os.Exit(1)
	}
	assignmentService, err := assignments.NewService(assignmentRepo, itemRepo, txRunner)
	if err != nil {
		logg.Error(context.Background(), "failed to create assignments service", err)
		os.Exit(1)
	}
	notificationService, err := notifications.NewService(notificationRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create notifications service", err)
		os.Exit(1)
	}
	dashboardService, err := dashboard.NewService(itemRepo, assignmentRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create dashboard service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":     cfg.App.Env,
		"addr":    addr,
		"storage": cfg.Storage.Driver,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.RouterParams{
			Config:        cfg,
			Logger:        logg,
			DBPinger:      pinger,
			Invoices:      invoiceService,
			Items:         itemService,
			Assignments:   assignmentService,
			Notifications: notificationService,
			Dashboard:     dashboardService,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
