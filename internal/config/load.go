package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable, e.g. OBO_LOG_LEVEL.
const EnvPrefix = "OBO"

// Default values applied before files and environment are consulted.
const (
	DefaultLogLevel         = "warn"
	DefaultDriver           = DriverPostgres
	DefaultSQLitePath       = "obo-gen.db"
	DefaultConnectAttempts  = 4
	DefaultConnectBaseDelay = 500 * time.Millisecond
	DefaultConnectMaxDelay  = 4 * time.Second
	DefaultModelName        = "gemini-2.0-flash"
	DefaultLLMTimeout       = 60 * time.Second
	DefaultTemperature      = 0.7
	DefaultAgeRange         = "8-10"
	DefaultCount            = 10
)

// Options control where Load looks for configuration.
type Options struct {
	// ConfigFile is an explicit config file. When empty, obo-gen.{yaml,json,toml}
	// is searched for in the working directory and $HOME/.config/obo-gen.
	ConfigFile string

	// EnvFile is loaded into the process environment before reading it.
	// Variables already set are not overridden. Missing files are ignored.
	EnvFile string
}

// Load configuration from environment variables and optionally config files.
// Environment variables take precedence over values from config files.
// Returns a populated Config struct or an error if loading/validation fails.
func Load(opts Options) (*Config, error) {
	envFile := opts.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load env file %s: %w", envFile, err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// The unprefixed provider variable is honoured as well.
	if err := v.BindEnv("llm.gemini_api_key", EnvPrefix+"_LLM_GEMINI_API_KEY", "GEMINI_API_KEY"); err != nil {
		return nil, fmt.Errorf("failed to bind environment: %w", err)
	}
	if err := v.BindEnv("database.url", EnvPrefix+"_DATABASE_URL", "DATABASE_URL"); err != nil {
		return nil, fmt.Errorf("failed to bind environment: %w", err)
	}

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
	} else {
		v.SetConfigName("obo-gen")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/obo-gen")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if opts.ConfigFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// ParseLogLevel converts a level name into a slog.Level, ignoring case and
// surrounding space. The second result is false for unknown names.
func ParseLogLevel(name string) (slog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}

func newValidator() *validator.Validate {
	v := validator.New()
	// Registration only fails for an empty tag or a nil func.
	_ = v.RegisterValidation("loglevel", func(fl validator.FieldLevel) bool {
		_, ok := ParseLogLevel(fl.Field().String())
		return ok
	})
	return v
}

// Validate checks cfg against its struct tags.
func Validate(cfg *Config) error {
	if err := newValidator().Struct(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// Default returns a Config populated only with default values.
func Default() *Config {
	return &Config{
		Log: LogConfig{Level: DefaultLogLevel},
		Database: DatabaseConfig{
			Driver:           DefaultDriver,
			SQLitePath:       DefaultSQLitePath,
			ConnectAttempts:  DefaultConnectAttempts,
			ConnectBaseDelay: DefaultConnectBaseDelay,
			ConnectMaxDelay:  DefaultConnectMaxDelay,
		},
		LLM: LLMConfig{
			ModelName:   DefaultModelName,
			Timeout:     DefaultLLMTimeout,
			Temperature: DefaultTemperature,
		},
		Deck: DeckConfig{
			DefaultAgeRange: DefaultAgeRange,
			DefaultCount:    DefaultCount,
		},
	}
}

func setDefaults(v *viper.Viper) {
	d := Default()

	v.SetDefault("log.level", d.Log.Level)

	v.SetDefault("database.driver", d.Database.Driver)
	v.SetDefault("database.url", "")
	v.SetDefault("database.sqlite_path", d.Database.SQLitePath)
	v.SetDefault("database.connect_attempts", d.Database.ConnectAttempts)
	v.SetDefault("database.connect_base_delay", d.Database.ConnectBaseDelay)
	v.SetDefault("database.connect_max_delay", d.Database.ConnectMaxDelay)

	v.SetDefault("llm.gemini_api_key", "")
	v.SetDefault("llm.model_name", d.LLM.ModelName)
	v.SetDefault("llm.timeout", d.LLM.Timeout)
	v.SetDefault("llm.base_url", "")
	v.SetDefault("llm.temperature", d.LLM.Temperature)

	v.SetDefault("deck.default_age_range", d.Deck.DefaultAgeRange)
	v.SetDefault("deck.default_count", d.Deck.DefaultCount)
}
