package service

import (
	"context"
	"crypto/subtle"
	"strings"

	"github.com/boddenberg/dashboard-api/internal/domain"
	"github.com/boddenberg/dashboard-api/internal/infra/observability"
	"github.com/boddenberg/dashboard-api/internal/port"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var authTracer = otel.Tracer("service/auth")

// AuthOptions controls how secrets are hashed and checked.
type AuthOptions struct {
	// VerifyPassword enables the secret check on login. When false any
	// known email logs in.
	VerifyPassword bool
	BcryptCost     int
}

// AuthService handles employee login and registration.
type AuthService struct {
	store   port.EmployeeStore
	opts    AuthOptions
	metrics *observability.Metrics
	logger  *zap.Logger
}

// NewAuthService creates a new auth service.
func NewAuthService(store port.EmployeeStore, opts AuthOptions, metrics *observability.Metrics, logger *zap.Logger) *AuthService {
	if opts.BcryptCost == 0 {
		opts.BcryptCost = bcrypt.DefaultCost
	}
	return &AuthService{store: store, opts: opts, metrics: metrics, logger: logger}
}

// ============================================================
// Login: POST /api/auth/login
// ============================================================

func (s *AuthService) Login(ctx context.Context, req *domain.LoginRequest) (*domain.LoginUser, error) {
	ctx, span := authTracer.Start(ctx, "AuthService.Login")
	defer span.End()

	if err := validateRequest(req, domain.MsgRequiredFields); err != nil {
		return nil, err
	}

	emp, err := s.store.GetEmployeeByEmail(ctx, req.Email)
	if err != nil {
		return nil, &domain.ErrOperation{Message: domain.OpLogin, Err: err}
	}
	if emp == nil {
		s.logger.Info("login for unknown email")
		return nil, &domain.ErrUnauthorized{Message: domain.MsgUserNotFound}
	}

	if s.opts.VerifyPassword && !passwordMatches(emp.PasswordHash, req.Passwort) {
		s.logger.Warn("login with invalid credentials", zap.Int64("mitarbeiter_id", emp.ID))
		return nil, &domain.ErrUnauthorized{Message: domain.MsgInvalidCredentials}
	}

	span.SetAttributes(attribute.Int64("mitarbeiter.id", emp.ID))
	s.logger.Info("login succeeded",
		zap.Int64("mitarbeiter_id", emp.ID),
		zap.String("rolle", emp.Rolle),
	)
	return &domain.LoginUser{
		ID:      emp.ID,
		Name:    emp.Name,
		Vorname: emp.Vorname,
		Email:   emp.Email,
		Rolle:   emp.Rolle,
	}, nil
}

// ============================================================
// Register: POST /api/auth/register
// ============================================================

func (s *AuthService) Register(ctx context.Context, req *domain.RegisterRequest) (*domain.RegisteredUser, error) {
	ctx, span := authTracer.Start(ctx, "AuthService.Register")
	defer span.End()

	if err := validateRequest(req, domain.MsgRequiredFields); err != nil {
		return nil, err
	}

	exists, err := s.store.EmployeeExists(ctx, req.Email)
	if err != nil {
		return nil, &domain.ErrOperation{Message: domain.OpRegister, Err: err}
	}
	if exists {
		return nil, &domain.ErrConflict{Message: domain.MsgUserExists}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Passwort), s.opts.BcryptCost)
	if err != nil {
		return nil, &domain.ErrOperation{Message: domain.OpRegister, Err: err}
	}

	emp, err := s.store.CreateEmployee(ctx, &domain.NewEmployee{
		Name:         req.Nachname,
		Vorname:      req.Vorname,
		Email:        req.Email,
		PasswordHash: string(hash),
		Rolle:        domain.RoleFieldService,
	})
	if err != nil {
		return nil, &domain.ErrOperation{Message: domain.OpRegister, Err: err}
	}

	s.metrics.IncrCreated("mitarbeiter")
	span.SetAttributes(attribute.Int64("mitarbeiter.id", emp.ID))
	s.logger.Info("employee registered", zap.Int64("mitarbeiter_id", emp.ID))
	return &domain.RegisteredUser{
		MitarbeiterID: emp.ID,
		Name:          emp.Name,
		Vorname:       emp.Vorname,
		Email:         emp.Email,
		Rolle:         emp.Rolle,
	}, nil
}

// passwordMatches compares the supplied secret with the stored one. Rows
// created before hashing was introduced hold the plain secret.
func passwordMatches(stored, supplied string) bool {
	if strings.HasPrefix(stored, "$2") {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(supplied)) == nil
	}
	return stored != "" && subtle.ConstantTimeCompare([]byte(stored), []byte(supplied)) == 1
}
