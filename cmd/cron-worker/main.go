package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/budunsigorta/backend/internal/cron"
	"github.com/budunsigorta/backend/internal/crossselling"
	"github.com/budunsigorta/backend/internal/policies"
	"github.com/budunsigorta/backend/internal/products"
	"github.com/budunsigorta/backend/pkg/config"
	"github.com/budunsigorta/backend/pkg/db"
	"github.com/budunsigorta/backend/pkg/instance"
	"github.com/budunsigorta/backend/pkg/logger"
	"github.com/budunsigorta/backend/pkg/metrics"
	"github.com/budunsigorta/backend/pkg/migrate"
	"github.com/budunsigorta/backend/pkg/redis"
)

const lockKeyFormat = "budun:cron-worker:lock:%s"

func main() {
	logg := logger.New(logger.Options{ServiceName: "cron-worker"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "cron-worker",
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

	policyRepo := policies.NewRepository(dbClient.DB())
	productRepo := products.NewRepository(dbClient.DB())
	crossSellingRepo := crossselling.NewRepository(dbClient.DB())

	generator, err := crossselling.NewGenerator(crossselling.GeneratorParams{
		Policies: policyRepo,
		Products: productRepo,
		Repo:     crossSellingRepo,
		Logger:   logg,
		ScanDays: cfg.Cron.CrossSellScanDays,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create cross-sell generator", err)
		os.Exit(1)
	}

	crossSellJob, err := cron.NewCrossSellJob(cron.CrossSellJobParams{
		Generator: generator,
		Logger:    logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create cross-sell job", err)
		os.Exit(1)
	}

	renewalJob, err := cron.NewRenewalNotifyJob(cron.RenewalNotifyJobParams{
		Policies:   policyRepo,
		Logger:     logg,
		WindowDays: cfg.Cron.RenewalWindowDays,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create renewal notify job", err)
		os.Exit(1)
	}

	metricsCollector := metrics.NewCronJobMetrics(prometheus.DefaultRegisterer)
	lock, err := cron.NewRedisLock(redisClient, lockKey(cfg.App.Env), cfg.Cron.LockTTL)
	if err != nil {
		logg.Error(context.Background(), "failed to create cron lock", err)
		os.Exit(1)
	}

	registry := cron.NewRegistry(crossSellJob, renewalJob)
	service, err := cron.NewService(cron.ServiceParams{
		Logger:   logg,
		Registry: registry,
		Lock:     lock,
		Metrics:  metricsCollector,
		Interval: cfg.Cron.Interval,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create cron service", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx = logg.WithFields(ctx, map[string]any{
		"env":      cfg.App.Env,
		"instance": instance.GetID(),
	})
	logg.Info(ctx, "starting cron worker")

	if err := service.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logg.Error(ctx, "cron worker stopped unexpectedly", err)
		os.Exit(1)
	}

	logg.Info(ctx, "cron worker shutting down gracefully")
}

func lockKey(env string) string {
	if env == "" {
		env = "local"
	}
	return fmt.Sprintf(lockKeyFormat, env)
}
