package domain

// ============================================================
// Kunden & Ansprechpartner
// ============================================================

// DefaultContactPosition is stored when a contact person is created without a position.
const DefaultContactPosition = "Hauptansprechpartner"

// Customer is a row of the kunde table.
type Customer struct {
	ID            int64  `json:"kunden_id"`
	Firmenname    string `json:"firmenname"`
	Strasse       string `json:"strasse"`
	Hausnummer    string `json:"hausnummer"`
	Ort           string `json:"ort"`
	PLZ           string `json:"plz"`
	Telefonnummer string `json:"telefonnummer"`
	Email         string `json:"email"`
}

// CustomerSummary is a customer as listed by GET /api/customers.
type CustomerSummary struct {
	Customer
	AnsprechpartnerCount int64 `json:"ansprechpartner_count"`
	OnboardingCount      int64 `json:"onboarding_count"`
}

// ContactPerson is a row of the ansprechpartner table.
type ContactPerson struct {
	ID            int64  `json:"ansprechpartner_id"`
	Name          string `json:"name"`
	Vorname       string `json:"vorname"`
	Telefonnummer string `json:"telefonnummer"`
	Email         string `json:"email"`
	Position      string `json:"position"`
	KundeID       int64  `json:"kunde_id"`
}

// CreateCustomerRequest is the body for POST /api/customers.
type CreateCustomerRequest struct {
	Firmenname      string              `json:"firmenname" validate:"required"`
	Strasse         string              `json:"strasse" validate:"required"`
	Hausnummer      Text                `json:"hausnummer" validate:"required"`
	Ort             string              `json:"ort" validate:"required"`
	PLZ             Text                `json:"plz" validate:"required"`
	Telefonnummer   Text                `json:"telefonnummer" validate:"required"`
	Email           string              `json:"email" validate:"required"`
	Ansprechpartner *ContactPersonInput `json:"ansprechpartner,omitempty" validate:"-"`
}

// ContactPersonInput is the optional contact person sent along with a new customer.
type ContactPersonInput struct {
	Name          string `json:"name"`
	Vorname       string `json:"vorname"`
	Telefonnummer Text   `json:"telefonnummer"`
	Email         string `json:"email"`
	Position      string `json:"position"`
}

// NewCustomer is a validated customer ready to be inserted.
type NewCustomer struct {
	Firmenname    string
	Strasse       string
	Hausnummer    string
	Ort           string
	PLZ           string
	Telefonnummer string
	Email         string
}

// NewContactPerson is a contact person ready to be inserted with its customer.
type NewContactPerson struct {
	Name          string
	Vorname       string
	Telefonnummer string
	Email         string
	Position      string
}

// CreateCustomerResponse is the 201 body of POST /api/customers.
type CreateCustomerResponse struct {
	Message string    `json:"message"`
	Kunde   *Customer `json:"kunde"`
}
