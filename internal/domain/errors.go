package domain

import "fmt"

// Error types for consistent error handling across the API.

// ErrNotFound indicates a resource was not found.
type ErrNotFound struct {
	Resource string
	ID       string
	Message  string
}

func (e *ErrNotFound) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ErrValidation indicates a missing or malformed request field.
// Message is what the dashboard shows; Field is only logged.
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("validation error on '%s'", e.Field)
}

// ErrConflict indicates a resource already exists (duplicate email or company name).
type ErrConflict struct {
	Message string
}

func (e *ErrConflict) Error() string {
	return e.Message
}

// ErrUnauthorized indicates an unknown user or invalid credentials.
type ErrUnauthorized struct {
	Message string
}

func (e *ErrUnauthorized) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "unauthorized"
}

// ErrCircuitOpen indicates the circuit breaker in front of the database is open.
type ErrCircuitOpen struct {
	Service string
}

func (e *ErrCircuitOpen) Error() string {
	return fmt.Sprintf("circuit breaker open for service: %s", e.Service)
}

// ErrOperation wraps an unexpected failure with the user-facing message of
// the operation that failed ("Fehler beim Erstellen des Kunden").
// ShowCause marks operations whose clients are shown the cause as well.
type ErrOperation struct {
	Message   string
	Err       error
	ShowCause bool
}

func (e *ErrOperation) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *ErrOperation) Unwrap() error {
	return e.Err
}

// Public returns the text sent to the client.
func (e *ErrOperation) Public(exposeDetails bool) string {
	if e.ShowCause && exposeDetails {
		return e.Error()
	}
	return e.Message
}
