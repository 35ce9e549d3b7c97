package domain

// ============================================================
// Health & Diagnostics Responses
// ============================================================

// HealthStatus is returned by GET /api/health.
type HealthStatus struct {
	OK        bool   `json:"ok"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
	Env       string `json:"env"`
}

// TestStatus is returned by GET /api/test.
type TestStatus struct {
	Message     string `json:"message"`
	Timestamp   string `json:"timestamp"`
	Environment string `json:"environment"`
}

// DatabaseHealth is returned by GET /api/health/db.
type DatabaseHealth struct {
	Database string `json:"database"`
	Error    string `json:"error,omitempty"`
}

// RouteNotFound is the 404 body for unmatched routes.
type RouteNotFound struct {
	Error           string   `json:"error"`
	AvailableRoutes []string `json:"available_routes"`
}
