// Package memory is an in-process data backend implementing the same store
// ports as the postgres package. It backs DATA_BACKEND=memory and the
// handler tests; nothing survives a restart.
package memory

import (
	"context"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/boddenberg/dashboard-api/internal/domain"
)

type serviceLineRow struct {
	domain.ServiceLine
	KalkulationID int64
}

type calculationRow struct {
	domain.Calculation
	KundeID       int64
	MitarbeiterID int64
}

// Store is a thread-safe in-memory store.
type Store struct {
	mu sync.RWMutex

	now func() time.Time

	customers    []domain.Customer
	contacts     []domain.ContactPerson
	calculations []calculationRow
	lines        []serviceLineRow
	onboardings  []domain.Onboarding
	employees    []domain.Employee

	nextID map[string]int64
}

// Option configures a Store.
type Option func(*Store)

// WithClock makes the store date records with now instead of time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithEmployees seeds the store with existing employees.
func WithEmployees(employees ...domain.Employee) Option {
	return func(s *Store) {
		for _, e := range employees {
			if e.ID == 0 {
				e.ID = s.next("mitarbeiter")
			} else if e.ID > s.nextID["mitarbeiter"] {
				s.nextID["mitarbeiter"] = e.ID
			}
			s.employees = append(s.employees, e)
		}
	}
}

// New creates an empty Store.
func New(opts ...Option) *Store {
	s := &Store{now: time.Now, nextID: make(map[string]int64)}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) next(table string) int64 {
	s.nextID[table]++
	return s.nextID[table]
}

func (s *Store) today() time.Time {
	y, m, d := s.now().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Ping always succeeds.
func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

// ============================================================
// Kunden
// ============================================================

// ListCustomers returns every customer with its counts, newest first.
func (s *Store) ListCustomers(ctx context.Context) ([]domain.CustomerSummary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.CustomerSummary, 0, len(s.customers))
	for _, c := range s.customers {
		sum := domain.CustomerSummary{Customer: c}
		for _, a := range s.contacts {
			if a.KundeID == c.ID {
				sum.AnsprechpartnerCount++
			}
		}
		for _, o := range s.onboardings {
			if o.KundeID == c.ID {
				sum.OnboardingCount++
			}
		}
		out = append(out, sum)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

// CustomerExists reports whether a customer with the given email or company name exists.
func (s *Store) CustomerExists(ctx context.Context, email, firmenname string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, c := range s.customers {
		if c.Email == email || c.Firmenname == firmenname {
			return true, nil
		}
	}
	return false, nil
}

// CreateCustomer stores the customer and its optional contact person.
func (s *Store) CreateCustomer(ctx context.Context, c *domain.NewCustomer, contact *domain.NewContactPerson) (*domain.Customer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	created := domain.Customer{
		ID:            s.next("kunde"),
		Firmenname:    c.Firmenname,
		Strasse:       c.Strasse,
		Hausnummer:    c.Hausnummer,
		Ort:           c.Ort,
		PLZ:           c.PLZ,
		Telefonnummer: c.Telefonnummer,
		Email:         c.Email,
	}
	s.customers = append(s.customers, created)

	if contact != nil {
		s.contacts = append(s.contacts, domain.ContactPerson{
			ID:            s.next("ansprechpartner"),
			Name:          contact.Name,
			Vorname:       contact.Vorname,
			Telefonnummer: contact.Telefonnummer,
			Email:         contact.Email,
			Position:      contact.Position,
			KundeID:       created.ID,
		})
	}
	return &created, nil
}

// ContactsOf returns the contact persons stored for a customer.
func (s *Store) ContactsOf(kundeID int64) []domain.ContactPerson {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.ContactPerson
	for _, a := range s.contacts {
		if a.KundeID == kundeID {
			out = append(out, a)
		}
	}
	return out
}

// ============================================================
// Kalkulationen
// ============================================================

// CountCustomers returns the number of customers.
func (s *Store) CountCustomers(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.customers)), nil
}

// CountOnboardingsByStatus returns the number of onboarding records in any of the given statuses.
func (s *Store) CountOnboardingsByStatus(ctx context.Context, statuses []string) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int64
	for _, o := range s.onboardings {
		if slices.Contains(statuses, o.Status) {
			n++
		}
	}
	return n, nil
}

func sameMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}

// SumHoursCurrentMonth returns the total gesamtzeit of calculations dated in the current month.
func (s *Store) SumHoursCurrentMonth(ctx context.Context) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	today := s.today()
	var total float64
	for _, c := range s.calculations {
		if sameMonth(c.Datum, today) {
			total += c.Gesamtzeit
		}
	}
	return total, nil
}

// SumRevenueCurrentMonth returns the total gesamtpreis of current-month calculations with the given status.
func (s *Store) SumRevenueCurrentMonth(ctx context.Context, status string) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	today := s.today()
	var total float64
	for _, c := range s.calculations {
		if sameMonth(c.Datum, today) && c.Status == status {
			total += c.Gesamtpreis
		}
	}
	return total, nil
}

// ListRecentCalculations returns up to limit calculations, most recent first.
func (s *Store) ListRecentCalculations(ctx context.Context, limit int) ([]domain.CalculationSummary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.CalculationSummary, 0, len(s.calculations))
	for _, c := range s.calculations {
		sum := domain.CalculationSummary{Calculation: c.Calculation}
		matched := false
		for _, k := range s.customers {
			if k.ID == c.KundeID {
				sum.KundeName = k.Firmenname
				matched = true
				break
			}
		}
		// Inner join semantics: calculations without a customer row are skipped.
		if !matched {
			continue
		}
		for _, e := range s.employees {
			if e.ID == c.MitarbeiterID {
				name, first := e.Name, e.Vorname
				sum.MitarbeiterName = &name
				sum.MitarbeiterVorname = &first
				break
			}
		}
		out = append(out, sum)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Datum.Equal(out[j].Datum) {
			return out[i].Datum.After(out[j].Datum)
		}
		return out[i].ID > out[j].ID
	})
	if limit >= 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// CreateCalculation stores the calculation and its lines.
func (s *Store) CreateCalculation(ctx context.Context, c *domain.NewCalculation) (*domain.Calculation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	row := calculationRow{
		Calculation: domain.Calculation{
			ID:          s.next("kalkulation"),
			Datum:       s.today(),
			Status:      domain.StatusNew,
			Stundensatz: c.Stundensatz,
			Gesamtzeit:  c.Gesamtzeit,
			Gesamtpreis: c.Gesamtpreis,
		},
		KundeID:       c.KundeID,
		MitarbeiterID: c.MitarbeiterID,
	}
	s.calculations = append(s.calculations, row)
	for _, l := range c.Lines {
		s.lines = append(s.lines, serviceLineRow{ServiceLine: l, KalkulationID: row.ID})
	}

	created := row.Calculation
	return &created, nil
}

// LinesOf returns the service lines stored for a calculation.
func (s *Store) LinesOf(kalkulationID int64) []domain.ServiceLine {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.ServiceLine
	for _, l := range s.lines {
		if l.KalkulationID == kalkulationID {
			out = append(out, l.ServiceLine)
		}
	}
	return out
}

// SetCalculationStatus changes a calculation's status. Status changes have
// no HTTP route; this exists for seeding and tests.
func (s *Store) SetCalculationStatus(id int64, status string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.calculations {
		if s.calculations[i].ID == id {
			s.calculations[i].Status = status
			return true
		}
	}
	return false
}

// ============================================================
// Onboarding
// ============================================================

// CreateOnboarding stores a new onboarding record with status "neu".
func (s *Store) CreateOnboarding(ctx context.Context, o *domain.NewOnboarding) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	employeeID := o.MitarbeiterID
	rec := domain.Onboarding{
		ID:                 s.next("onboarding"),
		Datum:              s.today(),
		Status:             domain.StatusNew,
		MitarbeiterID:      &employeeID,
		KundeID:            o.KundeID,
		InfrastructureData: slices.Clone(o.InfrastructureData),
	}
	s.onboardings = append(s.onboardings, rec)
	return rec.ID, nil
}

// GetOnboarding returns the onboarding record with the given id, or nil.
func (s *Store) GetOnboarding(ctx context.Context, id int64) (*domain.Onboarding, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, o := range s.onboardings {
		if o.ID == id {
			found := o
			found.InfrastructureData = slices.Clone(o.InfrastructureData)
			return &found, nil
		}
	}
	return nil, nil
}

// ============================================================
// Mitarbeiter
// ============================================================

// GetEmployeeByEmail returns the employee with the given email, or nil.
func (s *Store) GetEmployeeByEmail(ctx context.Context, email string) (*domain.Employee, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, e := range s.employees {
		if e.Email == email {
			found := e
			return &found, nil
		}
	}
	return nil, nil
}

// EmployeeExists reports whether an employee with the given email exists.
func (s *Store) EmployeeExists(ctx context.Context, email string) (bool, error) {
	e, err := s.GetEmployeeByEmail(ctx, email)
	return e != nil, err
}

// CreateEmployee stores a new employee.
func (s *Store) CreateEmployee(ctx context.Context, e *domain.NewEmployee) (*domain.Employee, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	created := domain.Employee{
		ID:            s.next("mitarbeiter"),
		Name:          e.Name,
		Vorname:       e.Vorname,
		Email:         e.Email,
		Telefonnummer: e.Telefonnummer,
		Rolle:         e.Rolle,
		PasswordHash:  e.PasswordHash,
	}
	s.employees = append(s.employees, created)
	return &created, nil
}
