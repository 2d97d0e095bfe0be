// Package config loads server configuration from an optional TOML file with
// environment-variable overrides.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Storage drivers
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// ServerConfig holds the HTTP server settings
type ServerConfig struct {
	Addr           string `toml:"addr"`
	APIToken       string `toml:"api_token"`
	MetricsEnabled bool   `toml:"metrics_enabled"`
}

// StorageConfig selects and configures the repository backend
type StorageConfig struct {
	Driver string `toml:"driver"` // "postgres" or "sqlite"
	// ConnStr is the postgres connection string. When empty it is
	// assembled from the NETWORTH_DB_* environment variables.
	ConnStr string `toml:"conn_str"`
	// Path is the sqlite database file.
	Path string `toml:"path"`
}

// Config is the top-level configuration
type Config struct {
	Server  ServerConfig  `toml:"server"`
	Storage StorageConfig `toml:"storage"`
}

// Default returns the configuration used when no file and no environment
// overrides are present.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:           ":8080",
			APIToken:       "dev-token",
			MetricsEnabled: true,
		},
		Storage: StorageConfig{
			Driver: DriverSQLite,
			Path:   "networth.db",
		},
	}
}

// Load reads the TOML file at path (skipped when path is empty or the file
// does not exist) and applies environment overrides on top.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if _, err := toml.DecodeFile(path, &cfg); err != nil {
				return Config{}, fmt.Errorf("failed to parse config file %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return Config{}, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	applyEnv(&cfg)

	if cfg.Storage.Driver != DriverPostgres && cfg.Storage.Driver != DriverSQLite {
		return Config{}, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}

	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("NETWORTH_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("NETWORTH_API_TOKEN"); v != "" {
		cfg.Server.APIToken = v
	}
	if v := os.Getenv("NETWORTH_STORAGE_DRIVER"); v != "" {
		cfg.Storage.Driver = v
	}
	if v := os.Getenv("NETWORTH_SQLITE_PATH"); v != "" {
		cfg.Storage.Path = v
	}
	if v := os.Getenv("NETWORTH_DB_CONN_STR"); v != "" {
		cfg.Storage.ConnStr = v
	}
}

// PostgresConnStr returns the configured connection string, assembling it
// from individual NETWORTH_DB_* variables when unset (Docker friendly).
func (c StorageConfig) PostgresConnStr() string {
	if c.ConnStr != "" {
		return c.ConnStr
	}

	host := envOr("NETWORTH_DB_HOST", "localhost")
	port := envOr("NETWORTH_DB_PORT", "5432")
	user := envOr("NETWORTH_DB_USER", "postgres")
	password := envOr("NETWORTH_DB_PASSWORD", "postgres")
	dbname := envOr("NETWORTH_DB_NAME", "networth")

	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, password, dbname)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
