package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/boddenberg/dashboard-api/internal/config"
	"github.com/boddenberg/dashboard-api/internal/domain"
	"github.com/boddenberg/dashboard-api/internal/handler"
	"github.com/boddenberg/dashboard-api/internal/infra/cache"
	"github.com/boddenberg/dashboard-api/internal/infra/memory"
	"github.com/boddenberg/dashboard-api/internal/infra/observability"
	"github.com/boddenberg/dashboard-api/internal/infra/postgres"
	"github.com/boddenberg/dashboard-api/internal/port"
	"github.com/boddenberg/dashboard-api/internal/service"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const serviceName = "dashboard-api"

func serveCommand(v *viper.Viper) (*cobra.Command, error) {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), v)
		},
	}

	cmd.Flags().Int("port", 0, "HTTP listen port")
	cmd.Flags().String("cors-origins", "", "Comma-separated list of allowed CORS origins")
	if err := bindFlags(v, cmd, map[string]string{
		"port":         "port",
		"cors_origins": "cors-origins",
	}); err != nil {
		return nil, err
	}
	return cmd, nil
}

func runServe(ctx context.Context, v *viper.Viper) error {
	// --- Config ---
	cfg, err := config.Load(v)
	if err != nil {
		return err
	}

	// --- Logger ---
	logger := observability.NewLogger(cfg.LogLevel)
	defer logger.Sync() //nolint:errcheck

	logger.Info("configuration loaded",
		zap.Int("port", cfg.Port),
		zap.String("env", cfg.Env),
		zap.String("log_level", cfg.LogLevel),
		zap.String("data_backend", cfg.DataBackend),
		zap.Strings("cors_origins", cfg.CORSOrigins),
		zap.Bool("verify_password", cfg.VerifyPassword),
		zap.Bool("expose_error_details", cfg.ExposeErrorDetails),
		zap.Duration("query_timeout", cfg.Database.QueryTimeout),
		zap.Duration("onboarding_cache_ttl", cfg.OnboardingCacheTTL),
	)
	for _, w := range cfg.ProductionWarnings() {
		logger.Warn("unsafe production setting", zap.String("setting", w))
	}

	// --- Tracing ---
	shutdownTracer, err := observability.InitTracer(ctx, serviceName, cfg.OTLPEndpoint)
	if err != nil {
		return fmt.Errorf("init tracer: %w", err)
	}
	defer func() {
		if err := shutdownTracer(context.Background()); err != nil {
			logger.Warn("tracer shutdown failed", zap.Error(err))
		}
	}()

	// --- Metrics ---
	metrics := observability.NewMetrics()

	// --- Store ---
	store, closeStore, err := openStore(ctx, cfg, metrics, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	// --- Services ---
	svc := handler.Services{
		Customers:    service.NewCustomerService(store, metrics, logger),
		Calculations: service.NewCalculationService(store, cfg.DefaultEmployeeID, metrics, logger),
		Onboarding: service.NewOnboardingService(
			store,
			cache.New[*domain.Onboarding](cfg.OnboardingCacheTTL),
			cfg.DefaultEmployeeID,
			metrics,
			logger,
		),
		Auth: service.NewAuthService(
			store,
			service.AuthOptions{VerifyPassword: cfg.VerifyPassword, BcryptCost: cfg.BcryptCost},
			metrics,
			logger,
		),
		Health: service.NewHealthService(store, cfg.Env, logger),
	}

	// --- Router ---
	router := handler.NewRouter(svc, handler.RouterConfig{
		CORSOrigins:        cfg.CORSOrigins,
		MaxBodyBytes:       cfg.MaxBodyBytes,
		ExposeErrorDetails: cfg.ExposeErrorDetails,
	}, metrics, logger)

	// --- Server ---
	srv := &http.Server{
		Addr:         ":" + strconv.Itoa(cfg.Port),
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	// --- Graceful shutdown ---
	serveErr := make(chan error, 1)
	go func() {
		logger.Info("server starting", zap.Int("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			logger.Error("server failed", zap.Error(err))
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("server shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced shutdown", zap.Error(err))
		return err
	}

	logger.Info("server stopped")
	return nil
}

// openStore connects the configured data backend. The returned func
// releases it.
func openStore(ctx context.Context, cfg *config.Config, metrics *observability.Metrics, logger *zap.Logger) (port.Store, func(), error) {
	switch cfg.DataBackend {
	case config.BackendMemory:
		logger.Warn("using in-memory data backend, data is lost on restart")
		return memory.New(memory.WithEmployees(defaultEmployee(cfg.DefaultEmployeeID))), func() {}, nil
	default:
		pool, err := postgres.NewPool(ctx, cfg.Database, logger)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("using PostgreSQL data backend")
		return postgres.NewStore(pool, cfg.Database.QueryTimeout, metrics, logger), pool.Close, nil
	}
}

// defaultEmployee is the fallback owner of records created without
// mitarbeiter_id, seeded into the memory backend.
func defaultEmployee(id int64) domain.Employee {
	return domain.Employee{ID: id, Name: "Admin", Vorname: "System", Email: "admin@localhost", Rolle: "admin"}
}
