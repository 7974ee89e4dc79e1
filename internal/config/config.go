// Package config handles loading and parsing application configuration.
// It supports three sources (in priority order):
//
//  1. An environment variable:  CONFIG_PATH=/path/to/config.yaml
//  2. A command-line flag:      --config=/path/to/config.yaml
//  3. No file at all — every key below has a default and an env:"..."
//     override, so the service starts with zero configuration on a fixed
//     port and only changes behaviour when the environment says so.
//
// The parsed values are returned as a *Config pointer so the struct is
// shared by reference rather than copied everywhere.
package config

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// Storage backend names accepted in StorageType.
const (
	StorageMemory = "memory"
	StorageSQLite = "sqlite"
)

// Config is the root configuration structure.
// Every field maps to a key in the YAML file AND can be overridden by the
// corresponding environment variable (env:"...").
type Config struct {
	// Env controls log format and verbosity.
	// Valid values: "dev", "staging", "prod"
	Env string `yaml:"env" env:"ENV" env-default:"dev"`

	// StorageType selects the record-store backend: "memory" (the
	// default — records live in process memory and vanish on exit) or
	// "sqlite" (records live in the file named by StoragePath).
	StorageType string `yaml:"storage_type" env:"STORAGE_TYPE" env-default:"memory"`

	// StoragePath is the filesystem path to the SQLite .db file.
	// Only consulted when StorageType is "sqlite".
	StoragePath string `yaml:"storage_path" env:"STORAGE_PATH" env-default:"storage/users.db"`

	// HTTPServer is embedded (not a pointer) so its fields are
	// accessible directly on Config: cfg.HTTPServer.Addr or, after
	// promotion, cfg.Addr.
	HTTPServer `yaml:"http_server"`
}

// HTTPServer holds settings specific to the HTTP server.
// Nested under http_server: in the YAML file.
type HTTPServer struct {
	// Addr is the TCP address the server listens on, e.g. ":8080".
	Addr string `yaml:"address" env:"HTTP_SERVER_ADDR" env-default:":8080"`
}

// Load reads the configuration and returns it, or an error.
//
// With a non-empty path it reads the YAML file and applies environment
// overrides on top. With an empty path it reads the environment alone,
// falling back to the env-default values — the zero-configuration mode.
func Load(path string) (*Config, error) {
	var cfg Config

	if path == "" {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("config: read environment: %w", err)
		}
		return &cfg, nil
	}

	// Verify the file exists before trying to read it, so the caller
	// gets a clear message rather than a cryptic "open: no such file".
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", path)
	}

	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	return &cfg, nil
}

// MustLoad resolves the config path (CONFIG_PATH env var first, then the
// --config flag, then none) and loads it, exiting the process on failure.
//
// The name follows the Go convention: functions prefixed with "Must" are
// allowed to fatal on failure. If this function returns, the config is
// valid.
func MustLoad() *Config {
	// Useful in Docker / Kubernetes where env vars are the standard
	// way to pass config to a container.
	configPath := os.Getenv("CONFIG_PATH")

	// Useful when running locally:
	//   go run ./cmd/users-api --config=config/local.yaml
	if configPath == "" {
		flags := flag.String("config", "", "Path to the configuration YAML file")
		flag.Parse()
		configPath = *flags
	}

	cfg, err := Load(configPath)
	if err != nil {
		log.Fatalf("cannot load config: %s", err)
	}

	return cfg
}
