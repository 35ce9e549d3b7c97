package postgres

import (
	"context"
	"fmt"

	"github.com/boddenberg/dashboard-api/internal/domain"

	"github.com/jackc/pgx/v5"
)

// ============================================================
// Kunden store
// ============================================================

// ListCustomers returns every customer with its contact and onboarding counts, newest first.
func (s *Store) ListCustomers(ctx context.Context) ([]domain.CustomerSummary, error) {
	var out []domain.CustomerSummary
	err := s.run(ctx, "list_customers", func(ctx context.Context) error {
		rows, err := s.db.Query(ctx, ListCustomersSQL)
		if err != nil {
			return fmt.Errorf("error querying customers: %w", err)
		}
		defer rows.Close()

		out = make([]domain.CustomerSummary, 0)
		for rows.Next() {
			var c domain.CustomerSummary
			if err := rows.Scan(
				&c.ID, &c.Firmenname, &c.Strasse, &c.Hausnummer, &c.Ort, &c.PLZ,
				&c.Telefonnummer, &c.Email, &c.AnsprechpartnerCount, &c.OnboardingCount,
			); err != nil {
				return fmt.Errorf("error scanning customer: %w", err)
			}
			out = append(out, c)
		}
		if err := rows.Err(); err != nil {
			return fmt.Errorf("failed iterating customers: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// CustomerExists reports whether a customer with the given email or company name exists.
func (s *Store) CustomerExists(ctx context.Context, email, firmenname string) (bool, error) {
	var exists bool
	err := s.run(ctx, "customer_exists", func(ctx context.Context) error {
		if err := s.db.QueryRow(ctx, CustomerExistsSQL, email, firmenname).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check customer existence: %w", err)
		}
		return nil
	})
	return exists, err
}

// CreateCustomer inserts the customer and its optional contact person atomically.
func (s *Store) CreateCustomer(ctx context.Context, c *domain.NewCustomer, contact *domain.NewContactPerson) (*domain.Customer, error) {
	var created domain.Customer
	err := s.run(ctx, "create_customer", func(ctx context.Context) error {
		return s.withTx(ctx, func(tx pgx.Tx) error {
			err := tx.QueryRow(ctx, InsertCustomerSQL,
				c.Firmenname, c.Strasse, c.Hausnummer, c.Ort, c.PLZ, c.Telefonnummer, c.Email,
			).Scan(
				&created.ID, &created.Firmenname, &created.Strasse, &created.Hausnummer,
				&created.Ort, &created.PLZ, &created.Telefonnummer, &created.Email,
			)
			if err != nil {
				return fmt.Errorf("failed to insert customer: %w", err)
			}

			if contact == nil {
				return nil
			}
			if _, err := tx.Exec(ctx, InsertContactPersonSQL,
				contact.Name, contact.Vorname, contact.Telefonnummer, contact.Email, contact.Position, created.ID,
			); err != nil {
				return fmt.Errorf("failed to insert contact person: %w", err)
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}
