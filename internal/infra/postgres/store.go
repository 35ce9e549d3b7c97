package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/boddenberg/dashboard-api/internal/domain"
	"github.com/boddenberg/dashboard-api/internal/infra/observability"
	"github.com/boddenberg/dashboard-api/internal/infra/resilience"

	"github.com/jackc/pgx/v5"
	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("postgres")

const serviceName = "postgres"

// DefaultQueryTimeout bounds every store call when no timeout is configured.
const DefaultQueryTimeout = 10 * time.Second

// Store implements the customer, calculation, onboarding and employee ports.
type Store struct {
	db           Database
	cb           *gobreaker.CircuitBreaker
	metrics      *observability.Metrics
	queryTimeout time.Duration
	logger       *zap.Logger
}

// NewStore creates a Store on top of db.
func NewStore(db Database, queryTimeout time.Duration, metrics *observability.Metrics, logger *zap.Logger) *Store {
	if queryTimeout <= 0 {
		queryTimeout = DefaultQueryTimeout
	}
	return &Store{
		db:           db,
		cb:           resilience.NewCircuitBreaker(serviceName),
		metrics:      metrics,
		queryTimeout: queryTimeout,
		logger:       logger,
	}
}

// Ping checks that the database answers.
func (s *Store) Ping(ctx context.Context) error {
	return s.run(ctx, "ping", func(ctx context.Context) error {
		return s.db.Ping(ctx)
	})
}

// run executes fn under the query timeout, the circuit breaker, a span and
// the query-duration histogram.
func (s *Store) run(ctx context.Context, op string, fn func(ctx context.Context) error) error {
	ctx, span := tracer.Start(ctx, "Postgres."+op,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("db.system", "postgresql"), attribute.String("db.operation", op)),
	)
	defer span.End()

	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	start := time.Now()
	_, err := s.cb.Execute(func() (any, error) {
		return nil, fn(ctx)
	})
	s.metrics.RecordQueryDuration(op, time.Since(start))

	if err == nil {
		return nil
	}

	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		err = &domain.ErrCircuitOpen{Service: serviceName}
	}

	s.metrics.IncrStoreError(op)
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	s.logger.Error("postgres: operation failed",
		zap.String("operation", op),
		zap.Duration("latency", time.Since(start)),
		zap.Error(err),
	)
	return err
}

// withTx runs fn in a transaction. The transaction is rolled back unless
// fn succeeds and the commit goes through.
func (s *Store) withTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op after a successful commit

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
