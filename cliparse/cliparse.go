// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	DataModeLive   = "live"
	DataModeSample = "sample"
)

type Config struct {
	Port         int
	DatabaseURL  string
	DatabaseType string

	// One of these must be set; the hash wins when both are.
	AdminAPIKey  string
	AdminKeyHash string

	// Web frontend data source
	APIURL   string
	DataMode string

	// Optional services
	RedisURL     string
	MeiliURL     string
	MeiliKey     string
	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string
	AdminEmail   string

	SeedSample bool
}

// LoadEnv loads KEY=value pairs from the given files (default .env) into the
// environment. Missing files are skipped; variables already set win.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

// ParseFlags validates flags and fills the rest from the environment
func ParseFlags(args []string) (Config, error) {
	var cfg Config
	var noSeed bool

	flags := flag.NewFlagSet("baseball-dictionary", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	flags.IntVar(&cfg.Port, "p", 0, "Server port")
	flags.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	flags.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")
	flags.StringVar(&cfg.APIURL, "api-url", "", "API base URL for the web frontend")
	flags.StringVar(&cfg.DataMode, "mode", "", "Web data mode (live or sample)")
	flags.BoolVar(&noSeed, "no-seed", false, "Do not seed an empty catalog with the sample terms")

	// Secrets (prefer env variables, but allow CLI for dev)
	flags.StringVar(&cfg.AdminAPIKey, "admin-key", "", "Admin API key (prefer env)")
	flags.StringVar(&cfg.AdminKeyHash, "admin-key-hash", "", "Bcrypt hash of the admin API key (prefer env)")

	if err := flags.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 3318 // default
		}
	}

	fallback(&cfg.DatabaseType, "DATABASE_TYPE", "sqlite")
	if cfg.DatabaseType != "sqlite" && cfg.DatabaseType != "postgres" {
		return Config{}, fmt.Errorf("unsupported DATABASE_TYPE %q", cfg.DatabaseType)
	}
	fallback(&cfg.DatabaseURL, "DATABASE_URL", "")
	if cfg.DatabaseURL == "" {
		if cfg.DatabaseType != "sqlite" {
			return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
		}
		cfg.DatabaseURL = "file:dictionary.db"
	}

	fallback(&cfg.APIURL, "API_URL", "")
	fallback(&cfg.DataMode, "DATA_MODE", DataModeLive)
	if cfg.DataMode != DataModeLive && cfg.DataMode != DataModeSample {
		return Config{}, fmt.Errorf("unsupported DATA_MODE %q", cfg.DataMode)
	}

	fallback(&cfg.RedisURL, "REDIS_URL", "")
	fallback(&cfg.MeiliURL, "MEILI_URL", "")
	fallback(&cfg.MeiliKey, "MEILI_MASTER_KEY", "")
	fallback(&cfg.SMTPHost, "SMTP_HOST", "")
	fallback(&cfg.SMTPPort, "SMTP_PORT", "587")
	fallback(&cfg.SMTPUsername, "SMTP_USERNAME", "")
	fallback(&cfg.SMTPPassword, "SMTP_PASSWORD", "")
	fallback(&cfg.SMTPFrom, "SMTP_FROM", "")
	fallback(&cfg.AdminEmail, "ADMIN_EMAIL", "")

	cfg.SeedSample = !noSeed
	if v := os.Getenv("SEED_SAMPLE"); v != "" && !noSeed {
		seed, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, errors.New("invalid SEED_SAMPLE env variable")
		}
		cfg.SeedSample = seed
	}

	// Secrets - one MUST be provided
	fallback(&cfg.AdminAPIKey, "ADMIN_API_KEY", "")
	fallback(&cfg.AdminKeyHash, "ADMIN_KEY_HASH", "")
	if cfg.AdminAPIKey == "" && cfg.AdminKeyHash == "" {
		return Config{}, errors.New("ADMIN_API_KEY or ADMIN_KEY_HASH required")
	}

	return cfg, nil
}

func fallback(field *string, env, def string) {
	if *field != "" {
		return
	}
	if v := os.Getenv(env); v != "" {
		*field = v
		return
	}
	*field = def
}
