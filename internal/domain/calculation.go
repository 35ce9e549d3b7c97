package domain

import "time"

// ============================================================
// Kalkulationen & Dienstleistungen
// ============================================================

// Status values used by calculations and onboarding records.
// The columns are free text; other values may exist in the database.
const (
	StatusNew        = "neu"
	StatusInProgress = "in Arbeit"
	StatusDone       = "erledigt"
)

// DefaultLineQuantity is used when a service line has no usable quantity.
const DefaultLineQuantity = 1

// Calculation is the created kalkulation row returned by POST /api/kalkulationen.
type Calculation struct {
	ID          int64     `json:"kalkulations_id"`
	Datum       time.Time `json:"datum"`
	Status      string    `json:"status"`
	Stundensatz float64   `json:"stundensatz"`
	Gesamtzeit  float64   `json:"gesamtzeit"`
	Gesamtpreis float64   `json:"gesamtpreis"`
}

// CalculationSummary is a calculation as listed by GET /api/kalkulationen.
type CalculationSummary struct {
	Calculation
	KundeName          string  `json:"kunde_name"`
	MitarbeiterName    *string `json:"mitarbeiter_name"`
	MitarbeiterVorname *string `json:"mitarbeiter_vorname"`
}

// CreateCalculationRequest is the body for POST /api/kalkulationen.
type CreateCalculationRequest struct {
	KundeID          Number             `json:"kunde_id" validate:"required,numeric"`
	Stundensatz      Number             `json:"stundensatz" validate:"required,numeric"`
	MitarbeiterID    Number             `json:"mitarbeiter_id"`
	Dienstleistungen []ServiceLineInput `json:"dienstleistungen" validate:"required,min=1"`
}

// ServiceLineInput is one dienstleistung as sent by the dashboard.
type ServiceLineInput struct {
	Beschreibung    Text   `json:"beschreibung"`
	DauerProEinheit Number `json:"dauer_pro_einheit"`
	Anzahl          Number `json:"anzahl"`
	Info            Text   `json:"info"`
	Stundensatz     Number `json:"stundensatz"`
}

// ServiceLine is a dienstleistung after defaults have been applied.
type ServiceLine struct {
	Beschreibung    *string
	DauerProEinheit float64
	Anzahl          int64
	Gesamtdauer     float64
	Info            *string
	// Stundensatz is the line's own rate, nil when the calculation rate applies.
	Stundensatz *float64
}

// NewCalculation is a calculation with derived totals, ready to be inserted.
type NewCalculation struct {
	KundeID       int64
	MitarbeiterID int64
	Stundensatz   float64
	Gesamtzeit    float64
	Gesamtpreis   float64
	Lines         []ServiceLine
}

// CreateCalculationResponse is the 201 body of POST /api/kalkulationen.
type CreateCalculationResponse struct {
	Message     string       `json:"message"`
	Kalkulation *Calculation `json:"kalkulation"`
}

// Totals holds the aggregated time and price of a calculation.
type Totals struct {
	Gesamtzeit  float64
	Gesamtpreis float64
}

// AggregateLines applies the line defaults and sums hours and price.
//
// Per line: duration defaults to 0, quantity to 1, hours = duration * quantity.
// The effective rate is the line's own rate when one was sent, otherwise
// baseRate. Lines whose own rate is present but not numeric are reported by
// index so the caller can reject the request.
func AggregateLines(inputs []ServiceLineInput, baseRate float64) ([]ServiceLine, Totals, int) {
	lines := make([]ServiceLine, 0, len(inputs))
	var totals Totals

	for i, in := range inputs {
		dauer := in.DauerProEinheit.FloatOr(0)
		anzahl := in.Anzahl.IntOr(DefaultLineQuantity)
		stunden := dauer * float64(anzahl)

		rate := baseRate
		var lineRate *float64
		if in.Stundensatz.Set {
			if !in.Stundensatz.Valid {
				return nil, Totals{}, i
			}
			v := in.Stundensatz.Value
			lineRate = &v
			rate = v
		}

		totals.Gesamtzeit += stunden
		totals.Gesamtpreis += stunden * rate

		lines = append(lines, ServiceLine{
			Beschreibung:    in.Beschreibung.OrNil(),
			DauerProEinheit: dauer,
			Anzahl:          anzahl,
			Gesamtdauer:     stunden,
			Info:            in.Info.OrNil(),
			Stundensatz:     lineRate,
		})
	}

	return lines, totals, -1
}

// Stats is returned by GET /api/kalkulationen/stats.
type Stats struct {
	ActiveCustomers int64   `json:"activeCustomers"`
	RunningProjects int64   `json:"runningProjects"`
	MonthlyHours    float64 `json:"monthlyHours"`
	MonthlyRevenue  float64 `json:"monthlyRevenue"`
}
