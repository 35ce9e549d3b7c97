package postgres_test

import (
	"encoding/json"
	"regexp"
	"testing"
	"time"

	"github.com/boddenberg/dashboard-api/internal/domain"
	"github.com/boddenberg/dashboard-api/internal/infra/observability"
	"github.com/boddenberg/dashboard-api/internal/infra/postgres"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newStore(t *testing.T) (*postgres.Store, pgxmock.PgxPoolIface, *observability.Metrics) {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.MonitorPingsOption(true))
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	metrics := observability.NewMetrics()
	return postgres.NewStore(mock, time.Second, metrics, zap.NewNop()), mock, metrics
}

func strPtr(s string) *string { return &s }

func TestListCustomers(t *testing.T) {
	t.Parallel()
	ctx := t.Context()
	cols := []string{
		"kunden_id", "firmenname", "strasse", "hausnummer", "ort", "plz",
		"telefonnummer", "email", "ansprechpartner_count", "onboarding_count",
	}

	t.Run("success - newest first with counts", func(t *testing.T) {
		t.Parallel()
		store, mock, _ := newStore(t)

		mock.ExpectQuery(regexp.QuoteMeta(postgres.ListCustomersSQL)).
			WillReturnRows(pgxmock.NewRows(cols).
				AddRow(int64(2), "Beta GmbH", "Hauptstr.", "5a", "Köln", "50667", "0221", "info@beta.de", int64(0), int64(0)).
				AddRow(int64(1), "Alpha AG", "Ring", "1", "Bonn", "53111", "0228", "a@alpha.de", int64(2), int64(1)))

		got, err := store.ListCustomers(ctx)

		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, int64(2), got[0].ID)
		assert.Equal(t, "Beta GmbH", got[0].Firmenname)
		assert.Equal(t, int64(0), got[0].AnsprechpartnerCount)
		assert.Equal(t, int64(2), got[1].AnsprechpartnerCount)
		assert.Equal(t, int64(1), got[1].OnboardingCount)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("success - empty table is an empty slice", func(t *testing.T) {
		t.Parallel()
		store, mock, _ := newStore(t)

		mock.ExpectQuery(regexp.QuoteMeta(postgres.ListCustomersSQL)).
			WillReturnRows(pgxmock.NewRows(cols))

		got, err := store.ListCustomers(ctx)

		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("error - query", func(t *testing.T) {
		t.Parallel()
		store, mock, metrics := newStore(t)

		mock.ExpectQuery(regexp.QuoteMeta(postgres.ListCustomersSQL)).
			WillReturnError(assert.AnError)

		_, err := store.ListCustomers(ctx)

		require.ErrorIs(t, err, assert.AnError)
		require.ErrorContains(t, err, "error querying customers")
		assert.InDelta(t, 1, metrics.StoreErrorCount("list_customers"), 0.0001)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("error - rows", func(t *testing.T) {
		t.Parallel()
		store, mock, _ := newStore(t)

		mock.ExpectQuery(regexp.QuoteMeta(postgres.ListCustomersSQL)).
			WillReturnRows(pgxmock.NewRows(cols).
				AddRow(int64(1), "Alpha AG", "Ring", "1", "Bonn", "53111", "0228", "a@alpha.de", int64(0), int64(0)).
				RowError(0, assert.AnError))

		_, err := store.ListCustomers(ctx)

		require.Error(t, err)
		require.ErrorContains(t, err, "failed iterating customers")
	})
}

func TestCustomerExists(t *testing.T) {
	t.Parallel()
	store, mock, _ := newStore(t)

	mock.ExpectQuery(regexp.QuoteMeta(postgres.CustomerExistsSQL)).
		WithArgs("info@beta.de", "Beta GmbH").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := store.CustomerExists(t.Context(), "info@beta.de", "Beta GmbH")

	require.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateCustomer(t *testing.T) {
	t.Parallel()
	ctx := t.Context()
	cust := &domain.NewCustomer{
		Firmenname: "Beta GmbH", Strasse: "Hauptstr.", Hausnummer: "5a", Ort: "Köln",
		PLZ: "50667", Telefonnummer: "0221", Email: "info@beta.de",
	}
	returned := pgxmock.NewRows([]string{
		"kunden_id", "firmenname", "strasse", "hausnummer", "ort", "plz", "telefonnummer", "email",
	}).AddRow(int64(7), "Beta GmbH", "Hauptstr.", "5a", "Köln", "50667", "0221", "info@beta.de")

	t.Run("success - with contact person", func(t *testing.T) {
		t.Parallel()
		store, mock, _ := newStore(t)
		contact := &domain.NewContactPerson{
			Name: "Muster", Vorname: "Max", Telefonnummer: "0221", Email: "info@beta.de",
			Position: domain.DefaultContactPosition,
		}

		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta(postgres.InsertCustomerSQL)).
			WithArgs("Beta GmbH", "Hauptstr.", "5a", "Köln", "50667", "0221", "info@beta.de").
			WillReturnRows(returned)
		mock.ExpectExec(regexp.QuoteMeta(postgres.InsertContactPersonSQL)).
			WithArgs("Muster", "Max", "0221", "info@beta.de", "Hauptansprechpartner", int64(7)).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
		mock.ExpectCommit()

		got, err := store.CreateCustomer(ctx, cust, contact)

		require.NoError(t, err)
		assert.Equal(t, int64(7), got.ID)
		assert.Equal(t, "Beta GmbH", got.Firmenname)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("error - contact insert rolls back", func(t *testing.T) {
		t.Parallel()
		store, mock, _ := newStore(t)
		contact := &domain.NewContactPerson{Name: "Muster", Vorname: "Max", Position: "CTO"}

		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta(postgres.InsertCustomerSQL)).
			WithArgs("Beta GmbH", "Hauptstr.", "5a", "Köln", "50667", "0221", "info@beta.de").
			WillReturnRows(pgxmock.NewRows([]string{
				"kunden_id", "firmenname", "strasse", "hausnummer", "ort", "plz", "telefonnummer", "email",
			}).AddRow(int64(8), "Beta GmbH", "Hauptstr.", "5a", "Köln", "50667", "0221", "info@beta.de"))
		mock.ExpectExec(regexp.QuoteMeta(postgres.InsertContactPersonSQL)).
			WithArgs("Muster", "Max", "", "", "CTO", int64(8)).
			WillReturnError(&pgconn.PgError{Code: "23502", Message: "null value in column"})
		mock.ExpectRollback()

		got, err := store.CreateCustomer(ctx, cust, contact)

		require.Error(t, err)
		assert.Nil(t, got)
		require.ErrorContains(t, err, "failed to insert contact person")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("error - begin", func(t *testing.T) {
		t.Parallel()
		store, mock, _ := newStore(t)

		mock.ExpectBegin().WillReturnError(assert.AnError)

		_, err := store.CreateCustomer(ctx, cust, nil)

		require.ErrorIs(t, err, assert.AnError)
		require.ErrorContains(t, err, "failed to begin transaction")
	})
}

func TestStats(t *testing.T) {
	t.Parallel()
	ctx := t.Context()
	store, mock, _ := newStore(t)

	mock.ExpectQuery(regexp.QuoteMeta(postgres.CountCustomersSQL)).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(12)))
	mock.ExpectQuery(regexp.QuoteMeta(postgres.CountOnboardingsByStatusSQL)).
		WithArgs([]string{domain.StatusNew, domain.StatusInProgress}).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(3)))
	mock.ExpectQuery(regexp.QuoteMeta(postgres.SumHoursCurrentMonthSQL)).
		WillReturnRows(pgxmock.NewRows([]string{"total_hours"}).AddRow(42.5))
	mock.ExpectQuery(regexp.QuoteMeta(postgres.SumRevenueCurrentMonthSQL)).
		WithArgs(domain.StatusDone).
		WillReturnRows(pgxmock.NewRows([]string{"total_revenue"}).AddRow(0.0))

	customers, err := store.CountCustomers(ctx)
	require.NoError(t, err)
	running, err := store.CountOnboardingsByStatus(ctx, []string{domain.StatusNew, domain.StatusInProgress})
	require.NoError(t, err)
	hours, err := store.SumHoursCurrentMonth(ctx)
	require.NoError(t, err)
	revenue, err := store.SumRevenueCurrentMonth(ctx, domain.StatusDone)
	require.NoError(t, err)

	assert.Equal(t, int64(12), customers)
	assert.Equal(t, int64(3), running)
	assert.InDelta(t, 42.5, hours, 0.0001)
	assert.InDelta(t, 0, revenue, 0.0001)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListRecentCalculations(t *testing.T) {
	t.Parallel()
	store, mock, _ := newStore(t)
	day := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(postgres.ListRecentCalculationsSQL)).
		WithArgs(10).
		WillReturnRows(pgxmock.NewRows([]string{
			"kalkulations_id", "datum", "status", "stundensatz", "gesamtzeit", "gesamtpreis",
			"kunde_name", "mitarbeiter_name", "mitarbeiter_vorname",
		}).
			AddRow(int64(5), day, "neu", 80.0, 4.0, 320.0, "Beta GmbH", "Muster", "Max").
			AddRow(int64(4), day, "erledigt", 90.0, 1.0, 90.0, "Alpha AG", nil, nil))

	got, err := store.ListRecentCalculations(t.Context(), 10)

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Beta GmbH", got[0].KundeName)
	require.NotNil(t, got[0].MitarbeiterName)
	assert.Equal(t, "Muster", *got[0].MitarbeiterName)
	assert.Nil(t, got[1].MitarbeiterName)
	assert.Nil(t, got[1].MitarbeiterVorname)
	assert.InDelta(t, 320, got[0].Gesamtpreis, 0.0001)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateCalculation(t *testing.T) {
	t.Parallel()
	ctx := t.Context()
	day := time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC)
	lineRate := 100.0
	calc := &domain.NewCalculation{
		KundeID: 3, MitarbeiterID: 1, Stundensatz: 80, Gesamtzeit: 5, Gesamtpreis: 420,
		Lines: []domain.ServiceLine{
			{Beschreibung: strPtr("Setup"), DauerProEinheit: 2, Anzahl: 2, Gesamtdauer: 4},
			{Beschreibung: strPtr("Schulung"), DauerProEinheit: 1, Anzahl: 1, Gesamtdauer: 1, Info: strPtr("vor Ort"), Stundensatz: &lineRate},
		},
	}
	header := []string{"kalkulations_id", "datum", "status", "stundensatz", "gesamtzeit", "gesamtpreis"}

	t.Run("success - header and lines", func(t *testing.T) {
		t.Parallel()
		store, mock, _ := newStore(t)

		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta(postgres.InsertCalculationSQL)).
			WithArgs(420.0, 5.0, 80.0, domain.StatusNew, int64(3), int64(1)).
			WillReturnRows(pgxmock.NewRows(header).AddRow(int64(11), day, "neu", 80.0, 5.0, 420.0))
		mock.ExpectExec(regexp.QuoteMeta(postgres.InsertServiceLineSQL)).
			WithArgs(strPtr("Setup"), 2.0, int64(2), 4.0, (*string)(nil), int64(11), (*float64)(nil)).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
		mock.ExpectExec(regexp.QuoteMeta(postgres.InsertServiceLineSQL)).
			WithArgs(strPtr("Schulung"), 1.0, int64(1), 1.0, strPtr("vor Ort"), int64(11), &lineRate).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
		mock.ExpectCommit()

		got, err := store.CreateCalculation(ctx, calc)

		require.NoError(t, err)
		assert.Equal(t, int64(11), got.ID)
		assert.Equal(t, "neu", got.Status)
		assert.Equal(t, day, got.Datum)
		assert.InDelta(t, 420, got.Gesamtpreis, 0.0001)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("error - line insert rolls back", func(t *testing.T) {
		t.Parallel()
		store, mock, _ := newStore(t)

		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta(postgres.InsertCalculationSQL)).
			WithArgs(420.0, 5.0, 80.0, domain.StatusNew, int64(3), int64(1)).
			WillReturnRows(pgxmock.NewRows(header).AddRow(int64(12), day, "neu", 80.0, 5.0, 420.0))
		mock.ExpectExec(regexp.QuoteMeta(postgres.InsertServiceLineSQL)).
			WithArgs(strPtr("Setup"), 2.0, int64(2), 4.0, (*string)(nil), int64(12), (*float64)(nil)).
			WillReturnError(assert.AnError)
		mock.ExpectRollback()

		_, err := store.CreateCalculation(ctx, calc)

		require.ErrorIs(t, err, assert.AnError)
		require.ErrorContains(t, err, "failed to insert service line 0")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestOnboarding(t *testing.T) {
	t.Parallel()
	ctx := t.Context()
	doc := json.RawMessage(`{"server":{"anzahl":2},"backup":true}`)
	day := time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC)
	cols := []string{"onboarding_id", "datum", "status", "mitarbeiter_id", "kunde_id", "infrastructure_data"}

	t.Run("create", func(t *testing.T) {
		t.Parallel()
		store, mock, _ := newStore(t)

		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta(postgres.InsertOnboardingSQL)).
			WithArgs(domain.StatusNew, int64(1), int64(3), string(doc)).
			WillReturnRows(pgxmock.NewRows([]string{"onboarding_id"}).AddRow(int64(9)))
		mock.ExpectCommit()

		id, err := store.CreateOnboarding(ctx, &domain.NewOnboarding{KundeID: 3, MitarbeiterID: 1, InfrastructureData: doc})

		require.NoError(t, err)
		assert.Equal(t, int64(9), id)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("get - found", func(t *testing.T) {
		t.Parallel()
		store, mock, _ := newStore(t)

		mock.ExpectQuery(regexp.QuoteMeta(postgres.GetOnboardingSQL)).
			WithArgs(int64(9)).
			WillReturnRows(pgxmock.NewRows(cols).AddRow(int64(9), day, "neu", int64(1), int64(3), string(doc)))

		got, err := store.GetOnboarding(ctx, 9)

		require.NoError(t, err)
		require.NotNil(t, got)
		require.NotNil(t, got.MitarbeiterID)
		assert.Equal(t, int64(1), *got.MitarbeiterID)
		assert.JSONEq(t, string(doc), string(got.InfrastructureData))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("get - null employee", func(t *testing.T) {
		t.Parallel()
		store, mock, _ := newStore(t)

		mock.ExpectQuery(regexp.QuoteMeta(postgres.GetOnboardingSQL)).
			WithArgs(int64(10)).
			WillReturnRows(pgxmock.NewRows(cols).AddRow(int64(10), day, "neu", nil, int64(3), "{}"))

		got, err := store.GetOnboarding(ctx, 10)

		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Nil(t, got.MitarbeiterID)
		assert.JSONEq(t, "{}", string(got.InfrastructureData))
	})

	t.Run("get - missing", func(t *testing.T) {
		t.Parallel()
		store, mock, metrics := newStore(t)

		mock.ExpectQuery(regexp.QuoteMeta(postgres.GetOnboardingSQL)).
			WithArgs(int64(404)).
			WillReturnError(pgx.ErrNoRows)

		got, err := store.GetOnboarding(ctx, 404)

		require.NoError(t, err)
		assert.Nil(t, got)
		assert.InDelta(t, 0, metrics.StoreErrorCount("get_onboarding"), 0.0001)
	})
}

func TestEmployees(t *testing.T) {
	t.Parallel()
	ctx := t.Context()
	cols := []string{"mitarbeiter_id", "name", "vorname", "email", "telefonnummer", "rolle", "passwort"}

	t.Run("get by email", func(t *testing.T) {
		t.Parallel()
		store, mock, _ := newStore(t)

		mock.ExpectQuery(regexp.QuoteMeta(postgres.GetEmployeeByEmailSQL)).
			WithArgs("max@firma.de").
			WillReturnRows(pgxmock.NewRows(cols).AddRow(int64(1), "Muster", "Max", "max@firma.de", "", "admin", "$2a$10$hash"))

		got, err := store.GetEmployeeByEmail(ctx, "max@firma.de")

		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "admin", got.Rolle)
		assert.Equal(t, "$2a$10$hash", got.PasswordHash)
	})

	t.Run("get by email - missing", func(t *testing.T) {
		t.Parallel()
		store, mock, _ := newStore(t)

		mock.ExpectQuery(regexp.QuoteMeta(postgres.GetEmployeeByEmailSQL)).
			WithArgs("ghost@firma.de").
			WillReturnError(pgx.ErrNoRows)

		got, err := store.GetEmployeeByEmail(ctx, "ghost@firma.de")

		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("create", func(t *testing.T) {
		t.Parallel()
		store, mock, _ := newStore(t)

		mock.ExpectQuery(regexp.QuoteMeta(postgres.InsertEmployeeSQL)).
			WithArgs("Muster", "Erika", "erika@firma.de", "hash", "", domain.RoleFieldService).
			WillReturnRows(pgxmock.NewRows([]string{"mitarbeiter_id", "name", "vorname", "email", "telefonnummer", "rolle"}).
				AddRow(int64(2), "Muster", "Erika", "erika@firma.de", "", domain.RoleFieldService))

		got, err := store.CreateEmployee(ctx, &domain.NewEmployee{
			Name: "Muster", Vorname: "Erika", Email: "erika@firma.de", PasswordHash: "hash", Rolle: domain.RoleFieldService,
		})

		require.NoError(t, err)
		assert.Equal(t, int64(2), got.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPing(t *testing.T) {
	t.Parallel()
	store, mock, _ := newStore(t)

	mock.ExpectPing()
	require.NoError(t, store.Ping(t.Context()))

	mock.ExpectPing().WillReturnError(assert.AnError)
	require.ErrorIs(t, store.Ping(t.Context()), assert.AnError)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCircuitBreakerOpens(t *testing.T) {
	t.Parallel()
	store, mock, _ := newStore(t)

	for i := 0; i < 5; i++ {
		mock.ExpectQuery(regexp.QuoteMeta(postgres.CountCustomersSQL)).
			WillReturnError(assert.AnError)
		_, err := store.CountCustomers(t.Context())
		require.ErrorIs(t, err, assert.AnError)
	}

	_, err := store.CountCustomers(t.Context())

	var open *domain.ErrCircuitOpen
	require.ErrorAs(t, err, &open)
	assert.NoError(t, mock.ExpectationsWereMet())
}
