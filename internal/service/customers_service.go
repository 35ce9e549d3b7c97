// Package service provides the business logic layer (use cases).
package service

import (
	"context"
	"strings"

	"github.com/boddenberg/dashboard-api/internal/domain"
	"github.com/boddenberg/dashboard-api/internal/infra/observability"
	"github.com/boddenberg/dashboard-api/internal/port"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

var customerTracer = otel.Tracer("service/customers")

// CustomerService handles customers and their contact persons.
type CustomerService struct {
	store   port.CustomerStore
	metrics *observability.Metrics
	logger  *zap.Logger
}

// NewCustomerService creates a new customer service.
func NewCustomerService(store port.CustomerStore, metrics *observability.Metrics, logger *zap.Logger) *CustomerService {
	return &CustomerService{store: store, metrics: metrics, logger: logger}
}

// ListCustomers returns all customers with their contact and onboarding counts.
func (s *CustomerService) ListCustomers(ctx context.Context) ([]domain.CustomerSummary, error) {
	ctx, span := customerTracer.Start(ctx, "CustomerService.ListCustomers")
	defer span.End()

	customers, err := s.store.ListCustomers(ctx)
	if err != nil {
		return nil, &domain.ErrOperation{Message: domain.OpListCustomers, Err: err}
	}
	span.SetAttributes(attribute.Int("customers.count", len(customers)))
	s.logger.Debug("customers listed", zap.Int("count", len(customers)))
	return customers, nil
}

// CreateCustomer validates the request, rejects duplicates by email or
// company name, and stores the customer with its optional contact person.
//
// The duplicate check and the insert are separate statements; two concurrent
// requests for the same company can both pass the check.
func (s *CustomerService) CreateCustomer(ctx context.Context, req *domain.CreateCustomerRequest) (*domain.Customer, error) {
	ctx, span := customerTracer.Start(ctx, "CustomerService.CreateCustomer")
	defer span.End()

	if err := validateRequest(req, domain.MsgRequiredFields); err != nil {
		return nil, err
	}

	exists, err := s.store.CustomerExists(ctx, req.Email, req.Firmenname)
	if err != nil {
		return nil, &domain.ErrOperation{Message: domain.OpCreateCustomer, Err: err, ShowCause: true}
	}
	if exists {
		return nil, &domain.ErrConflict{Message: domain.MsgCustomerExists}
	}

	cust := &domain.NewCustomer{
		Firmenname:    req.Firmenname,
		Strasse:       req.Strasse,
		Hausnummer:    req.Hausnummer.String(),
		Ort:           req.Ort,
		PLZ:           req.PLZ.String(),
		Telefonnummer: req.Telefonnummer.String(),
		Email:         req.Email,
	}
	contact := contactFor(req)

	created, err := s.store.CreateCustomer(ctx, cust, contact)
	if err != nil {
		return nil, &domain.ErrOperation{Message: domain.OpCreateCustomer, Err: err, ShowCause: true}
	}

	s.metrics.IncrCreated("kunde")
	span.SetAttributes(attribute.Int64("kunde.id", created.ID), attribute.Bool("ansprechpartner", contact != nil))
	s.logger.Info("customer created",
		zap.Int64("kunden_id", created.ID),
		zap.String("firmenname", created.Firmenname),
		zap.Bool("with_contact", contact != nil),
	)
	return created, nil
}

// contactFor returns the contact person to store with the customer, or nil
// when the request has none. Both name and first name are needed; phone and
// email fall back to the customer's, position to the main-contact label.
func contactFor(req *domain.CreateCustomerRequest) *domain.NewContactPerson {
	a := req.Ansprechpartner
	if a == nil || strings.TrimSpace(a.Name) == "" || strings.TrimSpace(a.Vorname) == "" {
		return nil
	}

	c := &domain.NewContactPerson{
		Name:          a.Name,
		Vorname:       a.Vorname,
		Telefonnummer: a.Telefonnummer.String(),
		Email:         a.Email,
		Position:      a.Position,
	}
	if c.Telefonnummer == "" {
		c.Telefonnummer = req.Telefonnummer.String()
	}
	if c.Email == "" {
		c.Email = req.Email
	}
	if c.Position == "" {
		c.Position = domain.DefaultContactPosition
	}
	return c
}
