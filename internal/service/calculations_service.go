package service

import (
	"context"
	"fmt"

	"github.com/boddenberg/dashboard-api/internal/domain"
	"github.com/boddenberg/dashboard-api/internal/infra/observability"
	"github.com/boddenberg/dashboard-api/internal/port"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var calculationTracer = otel.Tracer("service/calculations")

// recentCalculations is how many calculations the dashboard list shows.
const recentCalculations = 10

// CalculationService handles kalkulationen and the dashboard statistics.
type CalculationService struct {
	store             port.CalculationStore
	defaultEmployeeID int64
	metrics           *observability.Metrics
	logger            *zap.Logger
}

// NewCalculationService creates a new calculation service. defaultEmployeeID
// is stored when a calculation arrives without mitarbeiter_id.
func NewCalculationService(
	store port.CalculationStore,
	defaultEmployeeID int64,
	metrics *observability.Metrics,
	logger *zap.Logger,
) *CalculationService {
	return &CalculationService{
		store:             store,
		defaultEmployeeID: defaultEmployeeID,
		metrics:           metrics,
		logger:            logger,
	}
}

// Stats runs the four dashboard aggregates concurrently.
// Any failing query fails the whole call; partial stats are never returned.
func (s *CalculationService) Stats(ctx context.Context) (*domain.Stats, error) {
	ctx, span := calculationTracer.Start(ctx, "CalculationService.Stats")
	defer span.End()

	var stats domain.Stats
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		n, err := s.store.CountCustomers(gCtx)
		if err != nil {
			return fmt.Errorf("count customers: %w", err)
		}
		stats.ActiveCustomers = n
		return nil
	})

	g.Go(func() error {
		n, err := s.store.CountOnboardingsByStatus(gCtx, []string{domain.StatusNew, domain.StatusInProgress})
		if err != nil {
			return fmt.Errorf("count running onboardings: %w", err)
		}
		stats.RunningProjects = n
		return nil
	})

	g.Go(func() error {
		h, err := s.store.SumHoursCurrentMonth(gCtx)
		if err != nil {
			return fmt.Errorf("sum monthly hours: %w", err)
		}
		stats.MonthlyHours = h
		return nil
	})

	g.Go(func() error {
		r, err := s.store.SumRevenueCurrentMonth(gCtx, domain.StatusDone)
		if err != nil {
			return fmt.Errorf("sum monthly revenue: %w", err)
		}
		stats.MonthlyRevenue = r
		return nil
	})

	if err := g.Wait(); err != nil {
		s.logger.Error("stats aggregation failed", zap.Error(err))
		return nil, &domain.ErrOperation{Message: domain.OpStats, Err: err}
	}

	s.logger.Debug("stats computed",
		zap.Int64("active_customers", stats.ActiveCustomers),
		zap.Int64("running_projects", stats.RunningProjects),
		zap.Float64("monthly_hours", stats.MonthlyHours),
		zap.Float64("monthly_revenue", stats.MonthlyRevenue),
	)
	return &stats, nil
}

// ListCalculations returns the most recent calculations, newest first.
func (s *CalculationService) ListCalculations(ctx context.Context) ([]domain.CalculationSummary, error) {
	ctx, span := calculationTracer.Start(ctx, "CalculationService.ListCalculations")
	defer span.End()

	list, err := s.store.ListRecentCalculations(ctx, recentCalculations)
	if err != nil {
		return nil, &domain.ErrOperation{Message: domain.OpListCalculations, Err: err}
	}
	span.SetAttributes(attribute.Int("kalkulationen.count", len(list)))
	return list, nil
}

// CreateCalculation validates the request, derives the totals from its service
// lines and stores the calculation together with all lines.
func (s *CalculationService) CreateCalculation(ctx context.Context, req *domain.CreateCalculationRequest) (*domain.Calculation, error) {
	ctx, span := calculationTracer.Start(ctx, "CalculationService.CreateCalculation")
	defer span.End()

	if err := validateRequest(req, domain.MsgCalculationRequired); err != nil {
		return nil, err
	}
	kundeID, ok := req.KundeID.ID()
	if !ok {
		return nil, &domain.ErrValidation{Field: "kunde_id", Message: domain.MsgCalculationRequired}
	}

	lines, totals, bad := domain.AggregateLines(req.Dienstleistungen, req.Stundensatz.Value)
	if bad >= 0 {
		return nil, &domain.ErrValidation{
			Field:   fmt.Sprintf("dienstleistungen[%d].stundensatz", bad),
			Message: domain.MsgInvalidLineRate,
		}
	}

	nc := &domain.NewCalculation{
		KundeID:       kundeID,
		MitarbeiterID: employeeOr(req.MitarbeiterID, s.defaultEmployeeID),
		Stundensatz:   req.Stundensatz.Value,
		Gesamtzeit:    totals.Gesamtzeit,
		Gesamtpreis:   totals.Gesamtpreis,
		Lines:         lines,
	}

	created, err := s.store.CreateCalculation(ctx, nc)
	if err != nil {
		return nil, &domain.ErrOperation{Message: domain.OpCreateCalculation, Err: err, ShowCause: true}
	}

	s.metrics.IncrCreated("kalkulation")
	span.SetAttributes(
		attribute.Int64("kalkulation.id", created.ID),
		attribute.Int("dienstleistungen.count", len(lines)),
	)
	s.logger.Info("calculation created",
		zap.Int64("kalkulations_id", created.ID),
		zap.Int64("kunde_id", kundeID),
		zap.Int("lines", len(lines)),
		zap.Float64("gesamtzeit", created.Gesamtzeit),
		zap.Float64("gesamtpreis", created.Gesamtpreis),
	)
	return created, nil
}

// employeeOr returns the employee id sent by the client, or def when it is
// absent or not a positive integer.
func employeeOr(n domain.Number, def int64) int64 {
	if id, ok := n.ID(); ok {
		return id
	}
	return def
}
