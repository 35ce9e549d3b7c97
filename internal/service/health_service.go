package service

import (
	"context"
	"time"

	"github.com/boddenberg/dashboard-api/internal/domain"
	"github.com/boddenberg/dashboard-api/internal/port"

	"go.uber.org/zap"
)

// testEnvironment is the environment tag reported by GET /api/test.
const testEnvironment = "docker"

// HealthService answers the liveness and database checks.
type HealthService struct {
	db     port.Pinger
	env    string
	now    func() time.Time
	logger *zap.Logger
}

// NewHealthService creates a new health service reporting env.
func NewHealthService(db port.Pinger, env string, logger *zap.Logger) *HealthService {
	return &HealthService{db: db, env: env, now: time.Now, logger: logger}
}

func (s *HealthService) timestamp() string {
	return s.now().UTC().Format(time.RFC3339Nano)
}

// Health returns the static liveness payload.
func (s *HealthService) Health() domain.HealthStatus {
	return domain.HealthStatus{OK: true, Message: domain.MsgBackendOK, Timestamp: s.timestamp(), Env: s.env}
}

// Test returns the static payload of the connectivity test route.
func (s *HealthService) Test() domain.TestStatus {
	return domain.TestStatus{Message: domain.MsgBackendRunning, Timestamp: s.timestamp(), Environment: testEnvironment}
}

// Database pings the store. The returned error is the ping failure.
func (s *HealthService) Database(ctx context.Context) (domain.DatabaseHealth, error) {
	if err := s.db.Ping(ctx); err != nil {
		s.logger.Warn("database ping failed", zap.Error(err))
		return domain.DatabaseHealth{Database: "unavailable", Error: err.Error()}, err
	}
	return domain.DatabaseHealth{Database: "ok"}, nil
}
