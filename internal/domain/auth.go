package domain

// ============================================================
// Mitarbeiter: Login / Registrierung
// ============================================================

// RoleFieldService is the role assigned to self-registered employees.
const RoleFieldService = "aussendienst"

// Employee is a row of the mitarbeiter table.
// PasswordHash is never serialized.
type Employee struct {
	ID            int64  `json:"mitarbeiter_id"`
	Name          string `json:"name"`
	Vorname       string `json:"vorname"`
	Email         string `json:"email"`
	Telefonnummer string `json:"telefonnummer"`
	Rolle         string `json:"rolle"`
	PasswordHash  string `json:"-"`
}

// NewEmployee is an employee ready to be inserted.
type NewEmployee struct {
	Name          string
	Vorname       string
	Email         string
	PasswordHash  string
	Telefonnummer string
	Rolle         string
}

// LoginRequest is the body for POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Passwort string `json:"passwort" validate:"required"`
}

// LoginUser is the user object returned on login.
type LoginUser struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Vorname string `json:"vorname"`
	Email   string `json:"email"`
	Rolle   string `json:"rolle"`
}

// LoginResponse is the 200 body of POST /api/auth/login.
type LoginResponse struct {
	Message string    `json:"message"`
	User    LoginUser `json:"user"`
}

// RegisterRequest is the body for POST /api/auth/register.
type RegisterRequest struct {
	Vorname  string `json:"vorname" validate:"required"`
	Nachname string `json:"nachname" validate:"required"`
	Email    string `json:"email" validate:"required"`
	Passwort string `json:"passwort" validate:"required"`
}

// RegisteredUser is the user object returned on registration.
type RegisteredUser struct {
	MitarbeiterID int64  `json:"mitarbeiter_id"`
	Name          string `json:"name"`
	Vorname       string `json:"vorname"`
	Email         string `json:"email"`
	Rolle         string `json:"rolle"`
}

// RegisterResponse is the 201 body of POST /api/auth/register.
type RegisterResponse struct {
	Message string         `json:"message"`
	User    RegisteredUser `json:"user"`
}
