package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Config contains all runtime settings for the task service.
type Config struct {
	BindAddr         string
	DatabaseURL      string
	ShutdownTimeout  time.Duration
	MetricsNamespace string
	CORSOrigins      []string
}

// Load reads environment variables and applies safe defaults. The database
// connection string has no default; main treats its absence as fatal.
func Load() (Config, error) {
	cfg := Config{
		BindAddr:         envOrDefault("APP_BIND_ADDR", ""),
		DatabaseURL:      envTrimmed("DATABASE_URL"),
		MetricsNamespace: envOrDefault("APP_METRICS_NAMESPACE", "taskboard"),
		ShutdownTimeout:  15 * time.Second,
	}

	if cfg.BindAddr == "" {
		// Hosting platforms hand out a bare port number.
		if port := envTrimmed("PORT"); port != "" {
			cfg.BindAddr = ":" + port
		} else {
			cfg.BindAddr = ":8080"
		}
	}

	var err error
	cfg.ShutdownTimeout, err = durationFromEnv("APP_SHUTDOWN_TIMEOUT", cfg.ShutdownTimeout)
	if err != nil {
		return Config{}, err
	}

	for _, origin := range strings.Split(envOrDefault("APP_CORS_ORIGINS", "*"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSOrigins = append(cfg.CORSOrigins, origin)
		}
	}

	if cfg.ShutdownTimeout < time.Second {
		return Config{}, fmt.Errorf("APP_SHUTDOWN_TIMEOUT must be at least 1s")
	}
	if strings.TrimSpace(cfg.MetricsNamespace) == "" {
		return Config{}, fmt.Errorf("APP_METRICS_NAMESPACE must not be empty")
	}
	if len(cfg.CORSOrigins) == 0 {
		return Config{}, fmt.Errorf("APP_CORS_ORIGINS must name at least one origin")
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func envTrimmed(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

func durationFromEnv(key string, fallback time.Duration) (time.Duration, error) {
	v := envTrimmed(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s parse error: %w", key, err)
	}
	return d, nil
}
