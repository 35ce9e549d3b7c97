package handler

import (
	"net/http"

	"github.com/boddenberg/dashboard-api/internal/domain"
	"github.com/boddenberg/dashboard-api/internal/service"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/attribute"
)

// ============================================================
// Onboarding
// ============================================================

func createOnboardingHandler(svc *service.OnboardingService, ew errorWriter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /api/onboarding")
		defer span.End()

		var req domain.CreateOnboardingRequest
		if !ew.decodeJSON(w, r, &req) {
			return
		}

		id, err := svc.CreateOnboarding(ctx, &req)
		if err != nil {
			ew.serviceError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, domain.CreateOnboardingResponse{Message: domain.MsgOnboardingSaved, OnboardingID: id})
	}
}

func getOnboardingHandler(svc *service.OnboardingService, ew errorWriter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /api/onboarding/{id}")
		defer span.End()

		id := chi.URLParam(r, "id")
		span.SetAttributes(attribute.String("onboarding.id", id))

		o, err := svc.GetOnboarding(ctx, id)
		if err != nil {
			ew.serviceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, o)
	}
}
