package config

import "time"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Log      LogConfig      `mapstructure:"log" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	LLM      LLMConfig      `mapstructure:"llm" validate:"required"`
	Deck     DeckConfig     `mapstructure:"deck" validate:"required"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level string `mapstructure:"level" validate:"required,loglevel"`
}

// Supported store drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	Driver     string `mapstructure:"driver" validate:"required,oneof=postgres sqlite"`
	// URL is checked when a PostgreSQL store is opened, so commands that
	// never touch the store run without one.
	URL        string `mapstructure:"url" validate:"omitempty,url"`
	SQLitePath string `mapstructure:"sqlite_path" validate:"required_if=Driver sqlite"`

	// Connection attempts are bounded; the delay doubles from
	// ConnectBaseDelay up to ConnectMaxDelay between attempts.
	ConnectAttempts  int           `mapstructure:"connect_attempts" validate:"gte=1,lte=10"`
	ConnectBaseDelay time.Duration `mapstructure:"connect_base_delay" validate:"gte=0"`
	ConnectMaxDelay  time.Duration `mapstructure:"connect_max_delay" validate:"gtefield=ConnectBaseDelay"`
}

// LLMConfig contains all LLM integration related settings.
// The API key is optional here: only the generate operation needs it, and
// the generator refuses to start without one.
type LLMConfig struct {
	GeminiAPIKey string        `mapstructure:"gemini_api_key"`
	ModelName    string        `mapstructure:"model_name" validate:"required"`
	Timeout      time.Duration `mapstructure:"timeout" validate:"gt=0"`
	BaseURL      string        `mapstructure:"base_url" validate:"omitempty,url"`
	Temperature  float64       `mapstructure:"temperature" validate:"gte=0,lte=2"`
}

// DeckConfig holds defaults for generated decks.
type DeckConfig struct {
	DefaultAgeRange string `mapstructure:"default_age_range" validate:"required"`
	DefaultCount    int    `mapstructure:"default_count" validate:"gte=1,lte=50"`
}
