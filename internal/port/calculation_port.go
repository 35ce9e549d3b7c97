package port

import (
	"context"

	"github.com/boddenberg/dashboard-api/internal/domain"
)

// CalculationStore handles kalkulation and dienstleistung data operations,
// plus the dashboard aggregates.
type CalculationStore interface {
	CountCustomers(ctx context.Context) (int64, error)
	CountOnboardingsByStatus(ctx context.Context, statuses []string) (int64, error)
	SumHoursCurrentMonth(ctx context.Context) (float64, error)
	SumRevenueCurrentMonth(ctx context.Context, status string) (float64, error)

	ListRecentCalculations(ctx context.Context, limit int) ([]domain.CalculationSummary, error)
	// CreateCalculation inserts the calculation and all of its lines in one transaction.
	CreateCalculation(ctx context.Context, c *domain.NewCalculation) (*domain.Calculation, error)
}
