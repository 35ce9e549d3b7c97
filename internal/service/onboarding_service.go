package service

import (
	"bytes"
	"context"
	"strconv"

	"github.com/boddenberg/dashboard-api/internal/domain"
	"github.com/boddenberg/dashboard-api/internal/infra/observability"
	"github.com/boddenberg/dashboard-api/internal/port"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

var onboardingTracer = otel.Tracer("service/onboarding")

// OnboardingService stores and returns onboarding questionnaires.
type OnboardingService struct {
	store             port.OnboardingStore
	cache             port.Cache[*domain.Onboarding]
	defaultEmployeeID int64
	metrics           *observability.Metrics
	logger            *zap.Logger
}

// NewOnboardingService creates a new onboarding service. Records are never
// updated after insert, so reads are served from cache when possible.
func NewOnboardingService(
	store port.OnboardingStore,
	cache port.Cache[*domain.Onboarding],
	defaultEmployeeID int64,
	metrics *observability.Metrics,
	logger *zap.Logger,
) *OnboardingService {
	return &OnboardingService{
		store:             store,
		cache:             cache,
		defaultEmployeeID: defaultEmployeeID,
		metrics:           metrics,
		logger:            logger,
	}
}

// CreateOnboarding stores the infrastructure document and returns the new id.
func (s *OnboardingService) CreateOnboarding(ctx context.Context, req *domain.CreateOnboardingRequest) (int64, error) {
	ctx, span := onboardingTracer.Start(ctx, "OnboardingService.CreateOnboarding")
	defer span.End()

	if err := validateRequest(req, domain.MsgOnboardingRequired); err != nil {
		return 0, err
	}
	kundeID, ok := req.KundeID.ID()
	if !ok {
		return 0, &domain.ErrValidation{Field: "kunde_id", Message: domain.MsgOnboardingRequired}
	}
	if !isObject(req.InfrastructureData) {
		return 0, &domain.ErrValidation{Field: "infrastructure_data", Message: domain.MsgOnboardingRequired}
	}

	id, err := s.store.CreateOnboarding(ctx, &domain.NewOnboarding{
		KundeID:            kundeID,
		MitarbeiterID:      employeeOr(req.MitarbeiterID, s.defaultEmployeeID),
		InfrastructureData: req.InfrastructureData,
	})
	if err != nil {
		return 0, &domain.ErrOperation{Message: domain.OpCreateOnboarding, Err: err, ShowCause: true}
	}

	s.metrics.IncrCreated("onboarding")
	span.SetAttributes(attribute.Int64("onboarding.id", id))
	s.logger.Info("onboarding saved",
		zap.Int64("onboarding_id", id),
		zap.Int64("kunde_id", kundeID),
		zap.Int("document_bytes", len(req.InfrastructureData)),
	)
	return id, nil
}

// GetOnboarding returns the record with the given id. Ids that are not
// positive integers are reported as not found.
func (s *OnboardingService) GetOnboarding(ctx context.Context, rawID string) (*domain.Onboarding, error) {
	ctx, span := onboardingTracer.Start(ctx, "OnboardingService.GetOnboarding")
	defer span.End()
	span.SetAttributes(attribute.String("onboarding.id", rawID))

	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil || id <= 0 {
		return nil, &domain.ErrNotFound{Resource: "onboarding", ID: rawID, Message: domain.MsgNotFound}
	}

	cacheKey := "onboarding:" + strconv.FormatInt(id, 10)
	if o, ok := s.cache.Get(cacheKey); ok {
		s.metrics.IncrCacheHit("onboarding")
		return o, nil
	}
	s.metrics.IncrCacheMiss("onboarding")

	o, err := s.store.GetOnboarding(ctx, id)
	if err != nil {
		return nil, &domain.ErrOperation{Message: domain.OpGetOnboarding, Err: err}
	}
	if o == nil {
		return nil, &domain.ErrNotFound{Resource: "onboarding", ID: rawID, Message: domain.MsgNotFound}
	}

	s.cache.Set(cacheKey, o)
	return o, nil
}

// isObject reports whether raw is a JSON object.
func isObject(raw []byte) bool {
	return bytes.HasPrefix(bytes.TrimSpace(raw), []byte("{"))
}
