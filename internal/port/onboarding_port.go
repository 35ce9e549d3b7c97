package port

import (
	"context"

	"github.com/boddenberg/dashboard-api/internal/domain"
)

// OnboardingStore handles onboarding data operations.
type OnboardingStore interface {
	CreateOnboarding(ctx context.Context, o *domain.NewOnboarding) (int64, error)
	// GetOnboarding returns nil, nil when no row matches.
	GetOnboarding(ctx context.Context, id int64) (*domain.Onboarding, error)
}
