package postgres

import (
	"context"
	"fmt"

	"github.com/boddenberg/dashboard-api/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

// ============================================================
// Kalkulationen store
// ============================================================

// CountCustomers returns the number of customers.
func (s *Store) CountCustomers(ctx context.Context) (int64, error) {
	var n int64
	err := s.run(ctx, "count_customers", func(ctx context.Context) error {
		if err := s.db.QueryRow(ctx, CountCustomersSQL).Scan(&n); err != nil {
			return fmt.Errorf("failed to count customers: %w", err)
		}
		return nil
	})
	return n, err
}

// CountOnboardingsByStatus returns the number of onboarding records in any of the given statuses.
func (s *Store) CountOnboardingsByStatus(ctx context.Context, statuses []string) (int64, error) {
	var n int64
	err := s.run(ctx, "count_onboardings", func(ctx context.Context) error {
		if err := s.db.QueryRow(ctx, CountOnboardingsByStatusSQL, statuses).Scan(&n); err != nil {
			return fmt.Errorf("failed to count onboardings: %w", err)
		}
		return nil
	})
	return n, err
}

// SumHoursCurrentMonth returns the total gesamtzeit of calculations dated in the current month.
func (s *Store) SumHoursCurrentMonth(ctx context.Context) (float64, error) {
	var total float64
	err := s.run(ctx, "sum_hours_month", func(ctx context.Context) error {
		if err := s.db.QueryRow(ctx, SumHoursCurrentMonthSQL).Scan(&total); err != nil {
			return fmt.Errorf("failed to sum monthly hours: %w", err)
		}
		return nil
	})
	return total, err
}

// SumRevenueCurrentMonth returns the total gesamtpreis of current-month calculations with the given status.
func (s *Store) SumRevenueCurrentMonth(ctx context.Context, status string) (float64, error) {
	var total float64
	err := s.run(ctx, "sum_revenue_month", func(ctx context.Context) error {
		if err := s.db.QueryRow(ctx, SumRevenueCurrentMonthSQL, status).Scan(&total); err != nil {
			return fmt.Errorf("failed to sum monthly revenue: %w", err)
		}
		return nil
	})
	return total, err
}

// ListRecentCalculations returns up to limit calculations, most recent first.
func (s *Store) ListRecentCalculations(ctx context.Context, limit int) ([]domain.CalculationSummary, error) {
	var out []domain.CalculationSummary
	err := s.run(ctx, "list_calculations", func(ctx context.Context) error {
		rows, err := s.db.Query(ctx, ListRecentCalculationsSQL, limit)
		if err != nil {
			return fmt.Errorf("error querying calculations: %w", err)
		}
		defer rows.Close()

		out = make([]domain.CalculationSummary, 0, limit)
		for rows.Next() {
			var (
				c               domain.CalculationSummary
				name, firstName pgtype.Text
			)
			if err := rows.Scan(
				&c.ID, &c.Datum, &c.Status, &c.Stundensatz, &c.Gesamtzeit, &c.Gesamtpreis,
				&c.KundeName, &name, &firstName,
			); err != nil {
				return fmt.Errorf("error scanning calculation: %w", err)
			}
			c.MitarbeiterName = textPtr(name)
			c.MitarbeiterVorname = textPtr(firstName)
			out = append(out, c)
		}
		if err := rows.Err(); err != nil {
			return fmt.Errorf("failed iterating calculations: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// CreateCalculation inserts the calculation header and one dienstleistung row
// per line in a single transaction.
func (s *Store) CreateCalculation(ctx context.Context, c *domain.NewCalculation) (*domain.Calculation, error) {
	var created domain.Calculation
	err := s.run(ctx, "create_calculation", func(ctx context.Context) error {
		return s.withTx(ctx, func(tx pgx.Tx) error {
			err := tx.QueryRow(ctx, InsertCalculationSQL,
				c.Gesamtpreis, c.Gesamtzeit, c.Stundensatz, domain.StatusNew, c.KundeID, c.MitarbeiterID,
			).Scan(
				&created.ID, &created.Datum, &created.Status,
				&created.Stundensatz, &created.Gesamtzeit, &created.Gesamtpreis,
			)
			if err != nil {
				return fmt.Errorf("failed to insert calculation: %w", err)
			}

			for i, l := range c.Lines {
				if _, err := tx.Exec(ctx, InsertServiceLineSQL,
					l.Beschreibung, l.DauerProEinheit, l.Anzahl, l.Gesamtdauer, l.Info, created.ID, l.Stundensatz,
				); err != nil {
					return fmt.Errorf("failed to insert service line %d: %w", i, err)
				}
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func textPtr(t pgtype.Text) *string {
	if !t.Valid {
		return nil
	}
	s := t.String
	return &s
}
