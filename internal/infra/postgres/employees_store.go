package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/boddenberg/dashboard-api/internal/domain"

	"github.com/jackc/pgx/v5"
)

// ============================================================
// Mitarbeiter store
// ============================================================

// GetEmployeeByEmail returns the employee with the given email, or nil when none exists.
func (s *Store) GetEmployeeByEmail(ctx context.Context, email string) (*domain.Employee, error) {
	var found *domain.Employee
	err := s.run(ctx, "get_employee", func(ctx context.Context) error {
		var e domain.Employee
		err := s.db.QueryRow(ctx, GetEmployeeByEmailSQL, email).Scan(
			&e.ID, &e.Name, &e.Vorname, &e.Email, &e.Telefonnummer, &e.Rolle, &e.PasswordHash,
		)
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to find employee by email: %w", err)
		}
		found = &e
		return nil
	})
	return found, err
}

// EmployeeExists reports whether an employee with the given email exists.
func (s *Store) EmployeeExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := s.run(ctx, "employee_exists", func(ctx context.Context) error {
		if err := s.db.QueryRow(ctx, EmployeeExistsSQL, email).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check employee existence: %w", err)
		}
		return nil
	})
	return exists, err
}

// CreateEmployee inserts a new employee. The password must already be hashed.
func (s *Store) CreateEmployee(ctx context.Context, e *domain.NewEmployee) (*domain.Employee, error) {
	var created domain.Employee
	err := s.run(ctx, "create_employee", func(ctx context.Context) error {
		err := s.db.QueryRow(ctx, InsertEmployeeSQL,
			e.Name, e.Vorname, e.Email, e.PasswordHash, e.Telefonnummer, e.Rolle,
		).Scan(&created.ID, &created.Name, &created.Vorname, &created.Email, &created.Telefonnummer, &created.Rolle)
		if err != nil {
			return fmt.Errorf("failed to insert employee: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}
