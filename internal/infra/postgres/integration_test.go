package postgres_test

import (
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/boddenberg/dashboard-api/internal/config"
	"github.com/boddenberg/dashboard-api/internal/domain"
	"github.com/boddenberg/dashboard-api/internal/infra/observability"
	"github.com/boddenberg/dashboard-api/internal/infra/postgres"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
)

func TestStore_Postgres(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode.")
	}

	ctx := t.Context()
	pgContainer, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("dashboard"),
		tcpostgres.WithUsername("testuser"),
		tcpostgres.WithPassword("testpassword"),
		tcpostgres.WithInitScripts(filepath.Join("testdata", "schema.sql")),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err, "failed to start postgres container")
	t.Cleanup(func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate postgres container: %v", err)
		}
	})

	host, err := pgContainer.Host(ctx)
	require.NoError(t, err)
	port, err := pgContainer.MappedPort(ctx, "5432")
	require.NoError(t, err)

	pool, err := postgres.NewPool(ctx, config.DatabaseConfig{
		Host: host, Port: port.Port(), User: "testuser", Password: "testpassword", Name: "dashboard",
		MaxConns: 4, MinConns: 1, ConnectRetries: 3, ConnectBackoff: 200 * time.Millisecond,
	}, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	store := postgres.NewStore(pool, 5*time.Second, observability.NewMetrics(), zap.NewNop())

	// Customer with contact, then listed with counts.
	cust, err := store.CreateCustomer(ctx, &domain.NewCustomer{
		Firmenname: "Beta GmbH", Strasse: "Hauptstr.", Hausnummer: "5a", Ort: "Köln",
		PLZ: "50667", Telefonnummer: "0221", Email: "info@beta.de",
	}, &domain.NewContactPerson{Name: "Muster", Vorname: "Max", Telefonnummer: "0221", Email: "info@beta.de", Position: domain.DefaultContactPosition})
	require.NoError(t, err)

	exists, err := store.CustomerExists(ctx, "other@beta.de", "Beta GmbH")
	require.NoError(t, err)
	assert.True(t, exists)

	customers, err := store.ListCustomers(ctx)
	require.NoError(t, err)
	require.Len(t, customers, 1)
	assert.Equal(t, cust.ID, customers[0].ID)
	assert.Equal(t, int64(1), customers[0].AnsprechpartnerCount)
	assert.Equal(t, int64(0), customers[0].OnboardingCount)

	// Calculation with lines; reads back in the recent list.
	lines, totals, bad := domain.AggregateLines([]domain.ServiceLineInput{
		{Beschreibung: "Setup", DauerProEinheit: domain.NumberOf(2), Anzahl: domain.NumberOf(2)},
		{Beschreibung: "Schulung", DauerProEinheit: domain.NumberOf(1), Stundensatz: domain.NumberOf(100)},
	}, 80)
	require.Equal(t, -1, bad)
	calc, err := store.CreateCalculation(ctx, &domain.NewCalculation{
		KundeID: cust.ID, MitarbeiterID: 1, Stundensatz: 80,
		Gesamtzeit: totals.Gesamtzeit, Gesamtpreis: totals.Gesamtpreis, Lines: lines,
	})
	require.NoError(t, err)
	assert.InDelta(t, 5, calc.Gesamtzeit, 0.001)
	assert.InDelta(t, 420, calc.Gesamtpreis, 0.001)
	assert.Equal(t, domain.StatusNew, calc.Status)

	recent, err := store.ListRecentCalculations(ctx, 10)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, "Beta GmbH", recent[0].KundeName)
	require.NotNil(t, recent[0].MitarbeiterName)
	assert.Equal(t, "Admin", *recent[0].MitarbeiterName)

	hours, err := store.SumHoursCurrentMonth(ctx)
	require.NoError(t, err)
	assert.InDelta(t, 5, hours, 0.001)

	revenue, err := store.SumRevenueCurrentMonth(ctx, domain.StatusDone)
	require.NoError(t, err)
	assert.InDelta(t, 0, revenue, 0.001)

	// Onboarding round trip.
	doc := json.RawMessage(`{"netzwerk":{"router":"Fritz!Box","ports":[80,443]},"backup":null}`)
	id, err := store.CreateOnboarding(ctx, &domain.NewOnboarding{KundeID: cust.ID, MitarbeiterID: 1, InfrastructureData: doc})
	require.NoError(t, err)

	got, err := store.GetOnboarding(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.JSONEq(t, string(doc), string(got.InfrastructureData))

	running, err := store.CountOnboardingsByStatus(ctx, []string{domain.StatusNew, domain.StatusInProgress})
	require.NoError(t, err)
	assert.Equal(t, int64(1), running)

	missing, err := store.GetOnboarding(ctx, id+100)
	require.NoError(t, err)
	assert.Nil(t, missing)

	// Employees.
	emp, err := store.CreateEmployee(ctx, &domain.NewEmployee{
		Name: "Muster", Vorname: "Erika", Email: "erika@example.com", PasswordHash: "hash", Rolle: domain.RoleFieldService,
	})
	require.NoError(t, err)
	found, err := store.GetEmployeeByEmail(ctx, "erika@example.com")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, emp.ID, found.ID)
	assert.Equal(t, "hash", found.PasswordHash)

	require.NoError(t, store.Ping(ctx))
}
