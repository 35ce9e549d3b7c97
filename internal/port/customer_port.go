package port

import (
	"context"

	"github.com/boddenberg/dashboard-api/internal/domain"
)

// CustomerStore handles kunde and ansprechpartner data operations.
type CustomerStore interface {
	ListCustomers(ctx context.Context) ([]domain.CustomerSummary, error)
	// CustomerExists reports whether a customer with the given email or company name exists.
	CustomerExists(ctx context.Context, email, firmenname string) (bool, error)
	// CreateCustomer inserts the customer and, when contact is non-nil, its
	// contact person in one transaction.
	CreateCustomer(ctx context.Context, c *domain.NewCustomer, contact *domain.NewContactPerson) (*domain.Customer, error)
}
