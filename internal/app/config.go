package app

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/yungbote/growthdesk-backend/internal/data/db"
	"github.com/yungbote/growthdesk-backend/internal/observability"
	"github.com/yungbote/growthdesk-backend/internal/platform/envutil"
	"github.com/yungbote/growthdesk-backend/internal/platform/gemini"
	"github.com/yungbote/growthdesk-backend/internal/platform/logger"
	"github.com/yungbote/growthdesk-backend/internal/platform/openai"
	"github.com/yungbote/growthdesk-backend/internal/realtime/bus"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

type Config struct {
	LogMode         string
	Port            string
	MetricsAddr     string
	ShutdownTimeout time.Duration
	CORSOrigins     []string

	DB db.Config

	JWTSecretKey string
	JWTIssuer    string

	LLMProvider string
	OpenAI      openai.Config
	Gemini      gemini.Config

	Redis bus.RedisConfig

	Otel observability.OtelConfig
}

// LoadConfig reads the environment. A .env file and the YAML file named by
// APP_CONFIG_FILE only fill keys the environment leaves unset.
func LoadConfig(log *logger.Logger) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	if path := envutil.String("APP_CONFIG_FILE", ""); path != "" {
		n, err := applyYAMLDefaults(path)
		if err != nil {
			return Config{}, err
		}
		if log != nil {
			log.Info("Applied config defaults", "file", path, "keys", n)
		}
	}

	cfg := Config{
		LogMode:         envutil.String("LOG_MODE", "development"),
		Port:            envutil.String("PORT", "8080"),
		MetricsAddr:     envutil.String("METRICS_ADDR", ""),
		ShutdownTimeout: envutil.Duration("SHUTDOWN_TIMEOUT", 15*time.Second),
		CORSOrigins:     envutil.List("CORS_ALLOW_ORIGINS", nil),

		DB: db.Config{
			Driver:           envutil.String("DB_DRIVER", db.DriverSQLite),
			SQLitePath:       envutil.String("SQLITE_PATH", "growthdesk.db"),
			PostgresHost:     envutil.String("POSTGRES_HOST", "localhost"),
			PostgresPort:     envutil.String("POSTGRES_PORT", "5432"),
			PostgresUser:     envutil.String("POSTGRES_USER", "postgres"),
			PostgresPassword: envutil.String("POSTGRES_PASSWORD", ""),
			PostgresName:     envutil.String("POSTGRES_NAME", "growthdesk"),
			PostgresSSLMode:  envutil.String("POSTGRES_SSLMODE", "disable"),
		},

		JWTSecretKey: envutil.String("JWT_SECRET_KEY", ""),
		JWTIssuer:    envutil.String("JWT_ISSUER", ""),

		LLMProvider: strings.ToLower(envutil.String("LLM_PROVIDER", ProviderGemini)),
		OpenAI: openai.Config{
			APIKey:      envutil.String("OPENAI_API_KEY", ""),
			BaseURL:     envutil.String("OPENAI_BASE_URL", ""),
			Model:       envutil.String("OPENAI_MODEL", ""),
			Timeout:     envutil.Duration("OPENAI_TIMEOUT_SECONDS", 0),
			Temperature: optionalFloat("OPENAI_TEMPERATURE"),
		},
		Gemini: gemini.Config{
			APIKey:      firstNonEmpty(envutil.String("GEMINI_API_KEY", ""), envutil.String("GOOGLE_API_KEY", "")),
			Model:       envutil.String("GEMINI_MODEL", ""),
			BaseURL:     envutil.String("GEMINI_BASE_URL", ""),
			Timeout:     envutil.Duration("GEMINI_TIMEOUT_SECONDS", 0),
			Temperature: optionalFloat("GEMINI_TEMPERATURE"),
		},

		Redis: bus.RedisConfig{
			Addr:     envutil.String("REDIS_ADDR", ""),
			Password: envutil.String("REDIS_PASSWORD", ""),
			DB:       envutil.Int("REDIS_DB", 0),
			Channel:  envutil.String("REDIS_CHANNEL", ""),
		},

		Otel: observability.OtelConfig{
			ServiceName: envutil.String("OTEL_SERVICE_NAME", "growthdesk"),
			Environment: envutil.String("APP_ENV", "development"),
			Version:     envutil.String("APP_VERSION", ""),
		},
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	var errs []error
	switch c.LLMProvider {
	case ProviderGemini, ProviderOpenAI:
	default:
		errs = append(errs, fmt.Errorf("LLM_PROVIDER must be %q or %q, got %q", ProviderGemini, ProviderOpenAI, c.LLMProvider))
	}
	switch strings.ToLower(c.DB.Driver) {
	case db.DriverSQLite, db.DriverPostgres:
	default:
		errs = append(errs, fmt.Errorf("DB_DRIVER must be %q or %q, got %q", db.DriverSQLite, db.DriverPostgres, c.DB.Driver))
	}
	if strings.TrimSpace(c.JWTSecretKey) == "" {
		errs = append(errs, errors.New("JWT_SECRET_KEY is required"))
	}
	return errors.Join(errs...)
}

func (c Config) Addr() string {
	if strings.Contains(c.Port, ":") {
		return c.Port
	}
	return ":" + c.Port
}

// applyYAMLDefaults reads a flat KEY: value YAML file and sets every key that
// is not already present in the environment. It returns how many keys it set.
func applyYAMLDefaults(path string) (int, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read config file: %w", err)
	}
	var values map[string]any
	if err := yaml.Unmarshal(raw, &values); err != nil {
		return 0, fmt.Errorf("parse config file %s: %w", path, err)
	}
	n := 0
	for k, v := range values {
		key := strings.ToUpper(strings.TrimSpace(k))
		if key == "" || envutil.Set(key) {
			continue
		}
		var s string
		switch t := v.(type) {
		case nil:
			continue
		case []any:
			parts := make([]string, 0, len(t))
			for _, p := range t {
				parts = append(parts, fmt.Sprint(p))
			}
			s = strings.Join(parts, ",")
		default:
			s = fmt.Sprint(t)
		}
		if err := os.Setenv(key, s); err != nil {
			return n, fmt.Errorf("set %s: %w", key, err)
		}
		n++
	}
	return n, nil
}

func optionalFloat(name string) *float64 {
	if !envutil.Set(name) {
		return nil
	}
	v := envutil.Float(name, 0)
	return &v
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
