package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"

	"github.com/budunsigorta/backend/api/routes"
	"github.com/budunsigorta/backend/internal/accounts"
	"github.com/budunsigorta/backend/internal/auth"
	"github.com/budunsigorta/backend/internal/companies"
	"github.com/budunsigorta/backend/internal/crossselling"
	"github.com/budunsigorta/backend/internal/dashboard"
	"github.com/budunsigorta/backend/internal/insurers"
	"github.com/budunsigorta/backend/internal/permissions"
	"github.com/budunsigorta/backend/internal/policies"
	"github.com/budunsigorta/backend/internal/products"
	"github.com/budunsigorta/backend/internal/renewals"
	"github.com/budunsigorta/backend/internal/salespeople"
	"github.com/budunsigorta/backend/internal/users"
	"github.com/budunsigorta/backend/pkg/auth/session"
	"github.com/budunsigorta/backend/pkg/config"
	"github.com/budunsigorta/backend/pkg/db"
	"github.com/budunsigorta/backend/pkg/logger"
	"github.com/budunsigorta/backend/pkg/migrate"
	"github.com/budunsigorta/backend/pkg/redis"
)

const shutdownTimeout = 15 * time.Second

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

	userRepo := users.NewRepository(dbClient.DB())
	if err := users.EnsureBootstrapAdmin(context.Background(), userRepo, cfg, logg); err != nil {
		logg.Error(context.Background(), "failed to ensure bootstrap admin", err)
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

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	companyRepo := companies.NewRepository(dbClient.DB())
	permissionRepo := permissions.NewRepository(dbClient.DB())
	productRepo := products.NewRepository(dbClient.DB())
	insurerRepo := insurers.NewRepository(dbClient.DB())
	rosterRepo := salespeople.NewRepository(dbClient.DB())
	policyRepo := policies.NewRepository(dbClient.DB())
	renewalRepo := renewals.NewRepository(dbClient.DB())
	crossSellingRepo := crossselling.NewRepository(dbClient.DB())
	accountRepo := accounts.NewRepository(dbClient.DB())

	authService, err := auth.NewService(auth.ServiceParams{
		UserRepo:       userRepo,
		CompanyRepo:    companyRepo,
		SessionManager: sessionManager,
		JWTConfig:      cfg.JWT,
	})
	exitOnError(logg, "auth service", err)

	userService, err := users.NewService(users.ServiceParams{
		Repo:           userRepo,
		PasswordConfig: cfg.Password,
	})
	exitOnError(logg, "user service", err)

	permissionService, err := permissions.NewService(permissions.ServiceParams{
		Repo:   permissionRepo,
		Logger: logg,
	})
	exitOnError(logg, "permission service", err)

	companyService, err := companies.NewService(companies.ServiceParams{
		Repo:   companyRepo,
		Logger: logg,
	})
	exitOnError(logg, "company service", err)

	productService, err := products.NewService(products.ServiceParams{
		Repo:   productRepo,
		Logger: logg,
	})
	exitOnError(logg, "product service", err)

	insurerService, err := insurers.NewService(insurers.ServiceParams{
		Repo:   insurerRepo,
		Logger: logg,
	})
	exitOnError(logg, "insurer service", err)

	salespersonService, err := salespeople.NewService(salespeople.ServiceParams{
		Roster:      rosterRepo,
		Permissions: permissionRepo,
		Users:       userRepo,
		Logger:      logg,
	})
	exitOnError(logg, "salesperson service", err)

	policyService, err := policies.NewService(policies.ServiceParams{
		Repo:      policyRepo,
		Products:  productRepo,
		Users:     userRepo,
		Roster:    rosterRepo,
		Companies: companyRepo,
		Logger:    logg,
	})
	exitOnError(logg, "policy service", err)

	renewalService, err := renewals.NewService(renewals.ServiceParams{
		Policies:     policyService,
		PolicyLoader: policyRepo,
		Statuses:     renewalRepo,
		Logger:       logg,
	})
	exitOnError(logg, "renewal service", err)

	crossSellingService, err := crossselling.NewService(crossselling.ServiceParams{
		Repo:   crossSellingRepo,
		Logger: logg,
	})
	exitOnError(logg, "cross-selling service", err)

	generator, err := crossselling.NewGenerator(crossselling.GeneratorParams{
		Policies: policyRepo,
		Products: productRepo,
		Repo:     crossSellingRepo,
		Logger:   logg,
		ScanDays: cfg.Cron.CrossSellScanDays,
	})
	exitOnError(logg, "cross-selling generator", err)

	accountService, err := accounts.NewService(accounts.ServiceParams{
		Repo:   accountRepo,
		Logger: logg,
	})
	exitOnError(logg, "account service", err)

	dashboardService, err := dashboard.NewService(dashboard.ServiceParams{
		DB:        dbClient.DB(),
		Companies: companyRepo,
		Logger:    logg,
	})
	exitOnError(logg, "dashboard service", err)

	router := routes.NewRouter(routes.Deps{
		Config:          cfg,
		Logger:          logg,
		DB:              dbClient,
		Cache:           redisClient,
		Session:         sessionManager,
		Auth:            authService,
		Users:           userService,
		Permissions:     permissionService,
		PermissionCheck: permissionRepo,
		Dashboard:       dashboardService,
		Policies:        policyService,
		Renewals:        renewalService,
		Products:        productService,
		Companies:       companyService,
		Insurers:        insurerService,
		Salespeople:     salespersonService,
		CrossSelling:    crossSellingService,
		Generator:       generator,
		Accounts:        accountService,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx = logg.WithFields(ctx, map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "api server shutdown failed", err)
			os.Exit(1)
		}
		logg.Info(ctx, "api server shut down gracefully")
	}
}

func exitOnError(logg *logger.Logger, what string, err error) {
	if err == nil {
		return
	}
	logg.Error(context.Background(), "failed to create "+what, err)
	os.Exit(1)
}
