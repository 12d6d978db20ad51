// internal/config/config.go
//
// Runtime configuration for the loto tools.
//
// Values come from the environment, optionally seeded from a .env file
// (godotenv), and are parsed into Config with caarlos0/env. Every component
// that touches the filesystem receives the base directory from here instead
// of reading process-wide state.
//
// Environment variables:
//
//	LOTO_BASE_DIR=./data       directory holding the database and saved records
//	LOTO_DB_FILE=loto.db       SQLite file, relative to LOTO_BASE_DIR
//	LOTO_DETERMINISTIC=false   seed draws with a fixed value
//	LOTO_METRICS_FILE=         prometheus textfile written on exit (optional)
//	LOG_LEVEL=info
//	LOG_FORMAT=json            json | console
package config

import (
	"fmt"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds every tunable of the CLI.
type Config struct {
	BaseDir       string `env:"LOTO_BASE_DIR" envDefault:"./data"`
	DBFile        string `env:"LOTO_DB_FILE" envDefault:"loto.db"`
	Deterministic bool   `env:"LOTO_DETERMINISTIC" envDefault:"false"`
	MetricsFile   string `env:"LOTO_METRICS_FILE"`
	LogLevel      string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat     string `env:"LOG_FORMAT" envDefault:"json"`
}

// Load reads the optional .env files then parses the environment.
// A missing .env file is not an error.
func Load(envFiles ...string) (Config, error) {
	_ = godotenv.Load(envFiles...)
	return Parse()
}

// Parse builds a Config from the current environment only.
func Parse() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.BaseDir == "" {
		cfg.BaseDir = "."
	}
	return cfg, nil
}

// Resolve anchors a relative path on the base directory. Absolute paths are
// returned unchanged.
func (c Config) Resolve(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.BaseDir, path)
}

// DBPath is the SQLite file location.
func (c Config) DBPath() string { return c.Resolve(c.DBFile) }

// MetricsPath is the textfile location, or "" when metrics are not exported.
func (c Config) MetricsPath() string { return c.Resolve(c.MetricsFile) }
