package domain

import (
	"encoding/json"
	"time"
)

// ============================================================
// Onboarding (JSONB questionnaire)
// ============================================================

// Onboarding is a row of the onboarding table.
// InfrastructureData is passed through exactly as stored.
type Onboarding struct {
	ID                 int64           `json:"onboarding_id"`
	Datum              time.Time       `json:"datum"`
	Status             string          `json:"status"`
	MitarbeiterID      *int64          `json:"mitarbeiter_id"`
	KundeID            int64           `json:"kunde_id"`
	InfrastructureData json.RawMessage `json:"infrastructure_data"`
}

// CreateOnboardingRequest is the body for POST /api/onboarding.
type CreateOnboardingRequest struct {
	KundeID            Number          `json:"kunde_id" validate:"required,numeric"`
	InfrastructureData json.RawMessage `json:"infrastructure_data" validate:"required"`
	MitarbeiterID      Number          `json:"mitarbeiter_id"`
}

// NewOnboarding is an onboarding record ready to be inserted.
type NewOnboarding struct {
	KundeID            int64
	MitarbeiterID      int64
	InfrastructureData json.RawMessage
}

// CreateOnboardingResponse is the 201 body of POST /api/onboarding.
type CreateOnboardingResponse struct {
	Message      string `json:"message"`
	OnboardingID int64  `json:"onboarding_id"`
}
