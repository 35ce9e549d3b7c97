package port

import (
	"context"

	"github.com/boddenberg/dashboard-api/internal/domain"
)

// EmployeeStore handles mitarbeiter data operations for login and registration.
type EmployeeStore interface {
	// GetEmployeeByEmail returns nil, nil when no employee matches.
	GetEmployeeByEmail(ctx context.Context, email string) (*domain.Employee, error)
	EmployeeExists(ctx context.Context, email string) (bool, error)
	CreateEmployee(ctx context.Context, e *domain.NewEmployee) (*domain.Employee, error)
}
