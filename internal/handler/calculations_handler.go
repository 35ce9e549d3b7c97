package handler

import (
	"net/http"

	"github.com/boddenberg/dashboard-api/internal/domain"
	"github.com/boddenberg/dashboard-api/internal/service"
)

// ============================================================
// Kalkulationen
// ============================================================

func statsHandler(svc *service.CalculationService, ew errorWriter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /api/kalkulationen/stats")
		defer span.End()

		stats, err := svc.Stats(ctx)
		if err != nil {
			ew.serviceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, stats)
	}
}

func listCalculationsHandler(svc *service.CalculationService, ew errorWriter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /api/kalkulationen")
		defer span.End()

		list, err := svc.ListCalculations(ctx)
		if err != nil {
			ew.serviceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, list)
	}
}

func createCalculationHandler(svc *service.CalculationService, ew errorWriter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /api/kalkulationen")
		defer span.End()

		var req domain.CreateCalculationRequest
		if !ew.decodeJSON(w, r, &req) {
			return
		}

		created, err := svc.CreateCalculation(ctx, &req)
		if err != nil {
			ew.serviceError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, domain.CreateCalculationResponse{Message: domain.MsgCalculationCreated, Kalkulation: created})
	}
}
