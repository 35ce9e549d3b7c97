package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Data backends selectable with DATA_BACKEND.
const (
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

// Config holds all application configuration.
// Values are loaded from environment variables (and an optional config file)
// with sensible defaults.
type Config struct {
	// Server
	Port            int
	Env             string
	LogLevel        string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
	MaxBodyBytes    int64
	CORSOrigins     []string

	// Storage
	DataBackend string
	Database    DatabaseConfig

	// Behavior
	VerifyPassword     bool
	BcryptCost         int
	ExposeErrorDetails bool
	DefaultEmployeeID  int64

	// Cache
	OnboardingCacheTTL time.Duration

	// Observability
	OTLPEndpoint string
}

// DatabaseConfig holds the PostgreSQL connection settings.
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	// URL overrides the individual fields when set.
	URL string

	MaxConns       int32
	MinConns       int32
	QueryTimeout   time.Duration
	ConnectRetries int
	ConnectBackoff time.Duration
}

// DSN returns the connection string for pgxpool.
func (d DatabaseConfig) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     net.JoinHostPort(d.Host, d.Port),
		Path:     "/" + d.Name,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}

// envBinding maps a viper key to the environment variables that may set it.
// The first listed variable wins.
type envBinding struct {
	key  string
	envs []string
	def  any
}

func bindings() []envBinding {
	return []envBinding{
		{"port", []string{"PORT"}, 5000},
		{"app_env", []string{"APP_ENV", "NODE_ENV"}, "development"},
		{"log_level", []string{"LOG_LEVEL"}, "info"},
		{"http_read_timeout", []string{"HTTP_READ_TIMEOUT"}, "15s"},
		{"http_write_timeout", []string{"HTTP_WRITE_TIMEOUT"}, "30s"},
		{"http_idle_timeout", []string{"HTTP_IDLE_TIMEOUT"}, "60s"},
		{"shutdown_timeout", []string{"SHUTDOWN_TIMEOUT"}, "10s"},
		{"max_body_bytes", []string{"MAX_BODY_BYTES"}, 2 << 20},
		{"cors_origins", []string{"CORS_ORIGINS"}, ""},

		{"data_backend", []string{"DATA_BACKEND"}, BackendPostgres},
		{"pghost", []string{"PGHOST"}, "db"},
		{"pgport", []string{"PGPORT"}, "5432"},
		{"pguser", []string{"PGUSER"}, "postgres"},
		{"pgpassword", []string{"PGPASSWORD"}, ""},
		{"pgdatabase", []string{"PGDATABASE"}, "postgres"},
		{"database_url", []string{"DATABASE_URL"}, ""},
		{"db_max_conns", []string{"DB_MAX_CONNS"}, 10},
		{"db_min_conns", []string{"DB_MIN_CONNS"}, 1},
		{"db_query_timeout", []string{"DB_QUERY_TIMEOUT"}, "10s"},
		{"db_connect_retries", []string{"DB_CONNECT_RETRIES"}, 5},
		{"db_connect_backoff", []string{"DB_CONNECT_BACKOFF"}, "500ms"},

		{"auth_verify_password", []string{"AUTH_VERIFY_PASSWORD"}, false},
		{"bcrypt_cost", []string{"BCRYPT_COST"}, 10},
		{"expose_error_details", []string{"EXPOSE_ERROR_DETAILS"}, true},
		{"default_employee_id", []string{"DEFAULT_EMPLOYEE_ID"}, 1},
		{"onboarding_cache_ttl", []string{"ONBOARDING_CACHE_TTL"}, "5m"},
		{"otel_exporter_otlp_endpoint", []string{"OTEL_EXPORTER_OTLP_ENDPOINT"}, ""},
		{"config_file", []string{"CONFIG_FILE"}, ""},
	}
}

// NewViper returns a viper instance with all defaults and environment
// bindings registered. Flags may be bound on top of it.
func NewViper() (*viper.Viper, error) {
	v := viper.New()
	for _, b := range bindings() {
		v.SetDefault(b.key, b.def)
		args := append([]string{b.key}, b.envs...)
		if err := v.BindEnv(args...); err != nil {
			return nil, fmt.Errorf("bind %s: %w", b.key, err)
		}
	}
	return v, nil
}

// Load reads the configuration from v. When CONFIG_FILE (or the
// config_file key) is set, that file is read first; environment variables
// still take precedence over it.
func Load(v *viper.Viper) (*Config, error) {
	if path := v.GetString("config_file"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}
	}

	cfg := &Config{
		Port:            v.GetInt("port"),
		Env:             v.GetString("app_env"),
		LogLevel:        strings.ToLower(v.GetString("log_level")),
		ReadTimeout:     v.GetDuration("http_read_timeout"),
		WriteTimeout:    v.GetDuration("http_write_timeout"),
		IdleTimeout:     v.GetDuration("http_idle_timeout"),
		ShutdownTimeout: v.GetDuration("shutdown_timeout"),
		MaxBodyBytes:    v.GetInt64("max_body_bytes"),
		CORSOrigins:     splitList(v.GetString("cors_origins")),

		DataBackend: strings.ToLower(v.GetString("data_backend")),
		Database: DatabaseConfig{
			Host:           v.GetString("pghost"),
			Port:           v.GetString("pgport"),
			User:           v.GetString("pguser"),
			Password:       v.GetString("pgpassword"),
			Name:           v.GetString("pgdatabase"),
			URL:            v.GetString("database_url"),
			MaxConns:       v.GetInt32("db_max_conns"),
			MinConns:       v.GetInt32("db_min_conns"),
			QueryTimeout:   v.GetDuration("db_query_timeout"),
			ConnectRetries: v.GetInt("db_connect_retries"),
			ConnectBackoff: v.GetDuration("db_connect_backoff"),
		},

		VerifyPassword:     v.GetBool("auth_verify_password"),
		BcryptCost:         v.GetInt("bcrypt_cost"),
		ExposeErrorDetails: v.GetBool("expose_error_details"),
		DefaultEmployeeID:  v.GetInt64("default_employee_id"),

		OnboardingCacheTTL: v.GetDuration("onboarding_cache_ttl"),

		OTLPEndpoint: v.GetString("otel_exporter_otlp_endpoint"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// IsProduction reports whether the service runs with APP_ENV=production.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

// ProductionWarnings lists settings that are allowed but unsafe when
// IsProduction is true. It is empty outside production.
func (c *Config) ProductionWarnings() []string {
	if !c.IsProduction() {
		return nil
	}
	var warnings []string
	if len(c.CORSOrigins) == 0 {
		warnings = append(warnings, "CORS_ORIGINS is empty, every origin is allowed")
	}
	if c.DataBackend == BackendMemory {
		warnings = append(warnings, "DATA_BACKEND=memory, data is lost on restart")
	}
	if !c.VerifyPassword {
		warnings = append(warnings, "AUTH_VERIFY_PASSWORD is off, login accepts any password")
	}
	return warnings
}

func (c *Config) validate() error {
	var errs []error
	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("invalid PORT %d", c.Port))
	}
	if c.DataBackend != BackendPostgres && c.DataBackend != BackendMemory {
		errs = append(errs, fmt.Errorf("invalid DATA_BACKEND %q (want %s or %s)", c.DataBackend, BackendPostgres, BackendMemory))
	}
	if c.Database.MaxConns < 1 {
		errs = append(errs, fmt.Errorf("DB_MAX_CONNS must be at least 1, got %d", c.Database.MaxConns))
	}
	if c.Database.MinConns < 0 || c.Database.MinConns > c.Database.MaxConns {
		errs = append(errs, fmt.Errorf("DB_MIN_CONNS must be between 0 and DB_MAX_CONNS, got %d", c.Database.MinConns))
	}
	if c.Database.QueryTimeout <= 0 {
		errs = append(errs, errors.New("DB_QUERY_TIMEOUT must be positive"))
	}
	if c.BcryptCost < 4 || c.BcryptCost > 31 {
		errs = append(errs, fmt.Errorf("BCRYPT_COST must be between 4 and 31, got %d", c.BcryptCost))
	}
	if c.MaxBodyBytes <= 0 {
		errs = append(errs, errors.New("MAX_BODY_BYTES must be positive"))
	}
	if c.DefaultEmployeeID <= 0 {
		errs = append(errs, errors.New("DEFAULT_EMPLOYEE_ID must be positive"))
	}
	if c.OnboardingCacheTTL <= 0 {
		errs = append(errs, errors.New("ONBOARDING_CACHE_TTL must be positive"))
	}
	return errors.Join(errs...)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
