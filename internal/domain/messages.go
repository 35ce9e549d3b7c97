package domain

// User-facing messages. The dashboard displays them verbatim.
const (
	MsgRequiredFields      = "Alle Pflichtfelder müssen ausgefüllt werden"
	MsgCustomerExists      = "Kunde mit dieser E-Mail oder Firma existiert bereits"
	MsgCalculationRequired = "Kunde, Stundensatz und Dienstleistungen sind erforderlich"
	MsgInvalidLineRate     = "Ungültiger Stundensatz in Dienstleistung"
	MsgOnboardingRequired  = "kunde_id und infrastructure_data sind erforderlich"
	MsgNotFound            = "Nicht gefunden"
	MsgUserNotFound        = "Benutzer nicht gefunden"
	MsgUserExists          = "Benutzer existiert bereits"
	MsgInvalidCredentials  = "Ungültige Anmeldedaten"
	MsgInvalidBody         = "Ungültiger Request-Body"
	MsgRouteNotFoundPrefix = "Route nicht gefunden: "
	MsgCustomerCreated     = "Kunde erfolgreich erstellt"
	MsgCalculationCreated  = "Kalkulation erfolgreich erstellt"
	MsgOnboardingSaved     = "Onboarding gespeichert"
	MsgLoginOK             = "Login erfolgreich"
	MsgRegisterOK          = "Registrierung erfolgreich"
	MsgBackendOK           = "Backend OK"
	MsgBackendRunning      = "Backend läuft!"
)

// Operation messages prefixed to unexpected failures.
const (
	OpListCustomers     = "Fehler beim Abrufen der Kunden"
	OpCreateCustomer    = "Fehler beim Erstellen des Kunden"
	OpStats             = "Fehler beim Abrufen der Statistiken"
	OpListCalculations  = "Fehler beim Abrufen der Kalkulationen"
	OpCreateCalculation = "Fehler beim Erstellen der Kalkulation"
	OpCreateOnboarding  = "Fehler beim Speichern des Onboardings"
	OpGetOnboarding     = "Fehler beim Abrufen"
	OpLogin             = "Fehler beim Login"
	OpRegister          = "Fehler bei der Registrierung"
)

// MsgBodyTooLarge is returned when a request body exceeds the configured limit.
const MsgBodyTooLarge = "Request-Body zu groß"
