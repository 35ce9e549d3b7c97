package handler

import (
	"net/http"

	"github.com/boddenberg/dashboard-api/internal/domain"
	"github.com/boddenberg/dashboard-api/internal/service"
)

// ============================================================
// Kunden
// ============================================================

func listCustomersHandler(svc *service.CustomerService, ew errorWriter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /api/customers")
		defer span.End()

		customers, err := svc.ListCustomers(ctx)
		if err != nil {
			ew.serviceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, customers)
	}
}

func createCustomerHandler(svc *service.CustomerService, ew errorWriter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /api/customers")
		defer span.End()

		var req domain.CreateCustomerRequest
		if !ew.decodeJSON(w, r, &req) {
			return
		}

		kunde, err := svc.CreateCustomer(ctx, &req)
		if err != nil {
			ew.serviceError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, domain.CreateCustomerResponse{Message: domain.MsgCustomerCreated, Kunde: kunde})
	}
}
