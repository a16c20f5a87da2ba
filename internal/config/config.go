package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

const (
	defaultAddr           = ":8080"
	defaultJWTTTL         = "24h"
	defaultSweepInterval  = "5m"
	defaultSweepLookahead = "1h"
	defaultSweepCutoff    = "30m"
)

// Config is the process configuration, loaded from environment variables.
type Config struct {
	AppEnv      string
	Addr        string
	DatabaseURL string
	JWTSecret   string
	JWTTTL      time.Duration

	SweepInterval  time.Duration
	SweepLookahead time.Duration
	SweepCutoff    time.Duration
}

func Load() (*Config, error) {
	cfg := &Config{}

	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = "dev"
	}
	cfg.AppEnv = strings.ToLower(appEnv)

	cfg.Addr = getenv("ADDR", defaultAddr)

	cfg.DatabaseURL = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is empty")
	}

	cfg.JWTSecret = strings.TrimSpace(os.Getenv("JWT_SECRET"))
	if cfg.JWTSecret == "" {
		if cfg.AppEnv == "prod" {
			return nil, fmt.Errorf("JWT_SECRET is required in prod")
		}
		cfg.JWTSecret = "change-me-jwt-secret"
	}

	var err error
	if cfg.JWTTTL, err = getDuration("JWT_TTL", defaultJWTTTL); err != nil {
		return nil, err
	}
	if cfg.SweepInterval, err = getDuration("SWEEP_INTERVAL", defaultSweepInterval); err != nil {
		return nil, err
	}
	if cfg.SweepLookahead, err = getDuration("SWEEP_LOOKAHEAD", defaultSweepLookahead); err != nil {
		return nil, err
	}
	if cfg.SweepCutoff, err = getDuration("SWEEP_CUTOFF", defaultSweepCutoff); err != nil {
		return nil, err
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}

func getDuration(key, fallback string) (time.Duration, error) {
	v := getenv(key, fallback)
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid duration %q: %w", key, v, err)
	}
	return d, nil
}
