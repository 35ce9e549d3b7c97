package handler

import (
	"net/http"

	"github.com/boddenberg/dashboard-api/internal/domain"
	"github.com/boddenberg/dashboard-api/internal/service"
)

// ============================================================
// Authentifizierung
// ============================================================

func loginHandler(svc *service.AuthService, ew errorWriter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /api/auth/login")
		defer span.End()

		var req domain.LoginRequest
		if !ew.decodeJSON(w, r, &req) {
			return
		}

		user, err := svc.Login(ctx, &req)
		if err != nil {
			ew.serviceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, domain.LoginResponse{Message: domain.MsgLoginOK, User: *user})
	}
}

func registerHandler(svc *service.AuthService, ew errorWriter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /api/auth/register")
		defer span.End()

		var req domain.RegisterRequest
		if !ew.decodeJSON(w, r, &req) {
			return
		}

		user, err := svc.Register(ctx, &req)
		if err != nil {
			ew.serviceError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, domain.RegisterResponse{Message: domain.MsgRegisterOK, User: *user})
	}
}
