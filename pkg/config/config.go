package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Solver  SolverConfig
	Grid    GridConfig
	CORS    CORSConfig
	Log     LogConfig
	Metrics MetricsConfig
}

// SolverConfig defines how to reach and poll the external solving service.
type SolverConfig struct {
	BaseURL        string
	RequestTimeout time.Duration
	PollInterval   time.Duration
}

// GridConfig bounds the selectable business-hours window and seeds capacity.
type GridConfig struct {
	FirstHour     int
	LastHour      int
	FieldCapacity int
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// MetricsConfig toggles the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	// A missing .env is the normal env-only deployment, not an error. With
	// an explicit config file viper reports absence as a path error rather
	// than ConfigFileNotFoundError, so both are tolerated.
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Solver = SolverConfig{
		BaseURL:        strings.TrimRight(v.GetString("SOLVER_BASE_URL"), "/"),
		RequestTimeout: parseDuration(v.GetString("SOLVER_TIMEOUT"), 30*time.Second),
		PollInterval:   parseDuration(v.GetString("POLL_INTERVAL"), 2*time.Second),
	}

	cfg.Grid = GridConfig{
		FirstHour:     v.GetInt("GRID_FIRST_HOUR"),
		LastHour:      v.GetInt("GRID_LAST_HOUR"),
		FieldCapacity: v.GetInt("FIELD_CAPACITY"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Metrics = MetricsConfig{Enabled: v.GetBool("ENABLE_METRICS")}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8090)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("SOLVER_BASE_URL", "http://localhost:8080/schedule")
	v.SetDefault("SOLVER_TIMEOUT", "30s")
	v.SetDefault("POLL_INTERVAL", "2s")

	v.SetDefault("GRID_FIRST_HOUR", 8)
	v.SetDefault("GRID_LAST_HOUR", 21)
	v.SetDefault("FIELD_CAPACITY", 60)

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("ENABLE_METRICS", true)
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
