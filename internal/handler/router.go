package handler

import (
	"net/http"

	"github.com/boddenberg/dashboard-api/internal/infra/observability"
	"github.com/boddenberg/dashboard-api/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("handler")

// Services groups the use cases served over HTTP.
type Services struct {
	Customers    *service.CustomerService
	Calculations *service.CalculationService
	Onboarding   *service.OnboardingService
	Auth         *service.AuthService
	Health       *service.HealthService
}

// RouterConfig holds the HTTP-level settings of the router.
type RouterConfig struct {
	// CORSOrigins restricts cross-origin requests; empty allows any origin.
	CORSOrigins []string
	// MaxBodyBytes limits request bodies; zero disables the limit.
	MaxBodyBytes int64
	// ExposeErrorDetails appends the cause to 500 messages of write operations.
	ExposeErrorDetails bool
}

// NewRouter creates the HTTP router with all routes and middleware.
// Routes follow the API contract of the dashboard frontend.
func NewRouter(svc Services, cfg RouterConfig, metrics *observability.Metrics, logger *zap.Logger) http.Handler {
	ew := errorWriter{logger: logger, exposeDetails: cfg.ExposeErrorDetails}
	r := chi.NewRouter()

	// --- Middleware ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(observability.ZapLoggerMiddleware(logger))
	r.Use(observability.MetricsMiddleware(metrics))
	r.Use(observability.TracingMiddleware)
	r.Use(middleware.Recoverer)
	if cfg.MaxBodyBytes > 0 {
		r.Use(middleware.RequestSize(cfg.MaxBodyBytes))
	}
	r.Use(middleware.StripSlashes)
	r.Use(corsMiddleware(cfg.CORSOrigins))

	r.NotFound(routeNotFoundHandler(ew))
	r.MethodNotAllowed(routeNotFoundHandler(ew))

	// --- Operational endpoints ---
	r.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	r.Route("/api", func(r chi.Router) {
		// =============================================
		// Diagnose
		// =============================================
		r.Get("/health", healthHandler(svc.Health))
		r.Get("/health/db", databaseHealthHandler(svc.Health, ew))
		r.Get("/test", testHandler(svc.Health))

		// =============================================
		// Authentifizierung
		// =============================================
		r.Post("/auth/login", loginHandler(svc.Auth, ew))
		r.Post("/auth/register", registerHandler(svc.Auth, ew))

		// =============================================
		// Kunden
		// =============================================
		r.Get("/customers", listCustomersHandler(svc.Customers, ew))
		r.Post("/customers", createCustomerHandler(svc.Customers, ew))

		// =============================================
		// Kalkulationen
		// =============================================
		r.Get("/kalkulationen/stats", statsHandler(svc.Calculations, ew))
		r.Get("/kalkulationen", listCalculationsHandler(svc.Calculations, ew))
		r.Post("/kalkulationen", createCalculationHandler(svc.Calculations, ew))

		// =============================================
		// Onboarding
		// =============================================
		r.Post("/onboarding", createOnboardingHandler(svc.Onboarding, ew))
		r.Get("/onboarding/{id}", getOnboardingHandler(svc.Onboarding, ew))
	})

	return r
}
