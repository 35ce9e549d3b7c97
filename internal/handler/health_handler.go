package handler

import (
	"net/http"

	"github.com/boddenberg/dashboard-api/internal/domain"
	"github.com/boddenberg/dashboard-api/internal/service"

	"go.uber.org/zap"
)

// ============================================================
// Diagnose
// ============================================================

// availableRoutes is listed in the body of every 404.
var availableRoutes = []string{
	"/api/health",
	"/api/health/db",
	"/api/test",
	"/api/auth/login",
	"/api/auth/register",
	"/api/customers",
	"/api/kalkulationen",
	"/api/kalkulationen/stats",
	"/api/onboarding",
	"/metrics",
}

func healthHandler(svc *service.HealthService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, svc.Health())
	}
}

func testHandler(svc *service.HealthService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, svc.Test())
	}
}

// databaseHealthHandler reports the ping result. The cause of a failed ping
// is only included when error details are exposed.
func databaseHealthHandler(svc *service.HealthService, ew errorWriter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /api/health/db")
		defer span.End()

		status, err := svc.Database(ctx)
		if err != nil {
			span.RecordError(err)
			if !ew.exposeDetails {
				status.Error = ""
			}
			writeJSON(w, http.StatusServiceUnavailable, status)
			return
		}
		writeJSON(w, http.StatusOK, status)
	}
}

// routeNotFoundHandler answers unknown paths and unsupported methods alike.
func routeNotFoundHandler(ew errorWriter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ew.logger.Info("route not found", zap.String("method", r.Method), zap.String("url", r.URL.RequestURI()))
		writeJSON(w, http.StatusNotFound, domain.RouteNotFound{
			Error:           domain.MsgRouteNotFoundPrefix + r.URL.RequestURI(),
			AvailableRoutes: availableRoutes,
		})
	}
}
