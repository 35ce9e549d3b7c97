package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/boddenberg/dashboard-api/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

// ============================================================
// Onboarding store
// ============================================================

// CreateOnboarding inserts a new onboarding record with status "neu" and returns its id.
func (s *Store) CreateOnboarding(ctx context.Context, o *domain.NewOnboarding) (int64, error) {
	var id int64
	err := s.run(ctx, "create_onboarding", func(ctx context.Context) error {
		return s.withTx(ctx, func(tx pgx.Tx) error {
			err := tx.QueryRow(ctx, InsertOnboardingSQL,
				domain.StatusNew, o.MitarbeiterID, o.KundeID, string(o.InfrastructureData),
			).Scan(&id)
			if err != nil {
				return fmt.Errorf("failed to insert onboarding: %w", err)
			}
			return nil
		})
	})
	return id, err
}

// GetOnboarding returns the onboarding record with the given id, or nil when it does not exist.
func (s *Store) GetOnboarding(ctx context.Context, id int64) (*domain.Onboarding, error) {
	var found *domain.Onboarding
	err := s.run(ctx, "get_onboarding", func(ctx context.Context) error {
		var (
			o          domain.Onboarding
			employeeID pgtype.Int8
			infraData  pgtype.Text
		)
		err := s.db.QueryRow(ctx, GetOnboardingSQL, id).Scan(
			&o.ID, &o.Datum, &o.Status, &employeeID, &o.KundeID, &infraData,
		)
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to get onboarding: %w", err)
		}

		if employeeID.Valid {
			v := employeeID.Int64
			o.MitarbeiterID = &v
		}
		o.InfrastructureData = json.RawMessage("null")
		if infraData.Valid {
			o.InfrastructureData = json.RawMessage(infraData.String)
		}
		found = &o
		return nil
	})
	return found, err
}
