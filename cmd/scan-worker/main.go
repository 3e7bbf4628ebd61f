package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/altamira-labs/stocktrack-backend/internal/assignments"
	"github.com/altamira-labs/stocktrack-backend/internal/invoices"
	"github.com/altamira-labs/stocktrack-backend/internal/items"
	"github.com/altamira-labs/stocktrack-backend/internal/notifications"
	"github.com/altamira-labs/stocktrack-backend/internal/scanner"
	"github.com/altamira-labs/stocktrack-backend/pkg/config"
	"github.com/altamira-labs/stocktrack-backend/pkg/db"
	"github.com/altamira-labs/stocktrack-backend/pkg/logger"
	"github.com/altamira-labs/stocktrack-backend/pkg/metrics"
	"github.com/altamira-labs/stocktrack-backend/pkg/migrate"
	"github.com/altamira-labs/stocktrack-backend/pkg/redis"
)

const lockKeyFormat = "stocktrack:scan-worker:lock:%s"

func main() {
	logg := logger.New(logger.Options{ServiceName: "scan-worker"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	cfg.Service.Kind = "scan-worker"

	logg = logger.New(logger.Options{
		ServiceName: "scan-worker",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

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

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	invoiceRepo := invoices.NewRepository(dbClient.DB())
	itemRepo := items.NewRepository(dbClient.DB())
	assignmentRepo := assignments.NewRepository(dbClient.DB())

	notificationService, err := notifications.NewService(notifications.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create notifications service", err)
		os.Exit(1)
	}

	lowStockJob, err := scanner.NewLowStockJob(scanner.LowStockJobParams{
		Logger:        logg,
		Items:         itemRepo,
		Notifications: notificationService,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create low-stock job", err)
		os.Exit(1)
	}
	reorderJob, err := scanner.NewReorderJob(scanner.ReorderJobParams{
		Logger:        logg,
		Items:         itemRepo,
		Notifications: notificationService,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create reorder job", err)
		os.Exit(1)
	}
	reminderJob, err := scanner.NewAssignmentReminderJob(scanner.AssignmentReminderJobParams{
		Logger:        logg,
		Assignments:   assignmentRepo,
		Notifications: notificationService,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create assignment-reminder job", err)
		os.Exit(1)
	}
	approvalJob, err := scanner.NewInvoiceApprovalJob(scanner.InvoiceApprovalJobParams{
		Logger:        logg,
		Invoices:      invoiceRepo,
		Items:         itemRepo,
		Notifications: notificationService,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create invoice-approval job", err)
		os.Exit(1)
	}

	metricsCollector := metrics.NewScanJobMetrics(prometheus.DefaultRegisterer)
	lock, err := scanner.NewRedisLock(redisClient, lockKey(cfg.App.Env), cfg.Scanner.LockTTL)
	if err != nil {
		logg.Error(context.Background(), "failed to create scan lock", err)
		os.Exit(1)
	}

	registry := scanner.NewRegistry(lowStockJob, reorderJob, reminderJob, approvalJob)
	service, err := scanner.NewService(scanner.ServiceParams{
		Logger:   logg,
		Registry: registry,
		Lock:     lock,
		Metrics:  metricsCollector,
		Interval: cfg.Scanner.Interval,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create scanner service", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx = logg.WithFields(ctx, map[string]any{
		"env":         cfg.App.Env,
		"serviceKind": cfg.Service.Kind,
		"interval":    cfg.Scanner.Interval.String(),
	})
	logg.Info(ctx, "starting scan worker")

	if err := service.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logg.Error(ctx, "scan worker stopped unexpectedly", err)
		os.Exit(1)
	}

	logg.Info(ctx, "scan worker shutting down gracefully")
}

func lockKey(env string) string {
	if env == "" {
		env = "local"
	}
	return fmt.Sprintf(lockKeyFormat, env)
}
