// Package config provides configuration management for salesdesk.
//
// Settings come from a YAML file, then environment variables (optionally
// seeded from a .env file) override individual keys.
//
// Config file locations (priority order):
//  1. $SALESDESK_CONFIG
//  2. ./salesdesk.yaml
//  3. ~/.config/salesdesk/config.yaml
//  4. /etc/salesdesk/config.yaml
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Supported database drivers
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "pgx"
)

// Environment overrides
const (
	EnvDBDriver = "SALESDESK_DB_DRIVER"
	EnvDBDSN    = "SALESDESK_DB_DSN"
	EnvLogLevel = "SALESDESK_LOG_LEVEL"
	EnvAddr     = "SALESDESK_ADDR"
)

const (
	defaultDSN             = "./salesdesk.db"
	defaultQueryTimeout    = 5 * time.Second
	defaultShutdownTimeout = 10 * time.Second
	defaultAddr            = ":3000"

	// Max lengths of the form text fields
	defaultDepartmentNameMax = 30
	defaultSellerNameMax     = 70
	defaultSellerEmailMax    = 60
)

// Load finds and loads the config file, or returns defaults if none found.
// Environment overrides are applied in both cases.
func Load() (*Config, string, error) {
	path := FindConfigPath()

	if path == "" {
		cfg := DefaultConfig()
		cfg.ApplyEnv()
		return cfg, "", cfg.Validate()
	}

	return LoadFromPath(path)
}

// LoadFromPath loads config from a specific path
func LoadFromPath(path string) (*Config, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, path, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, path, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyDefaults()
	cfg.ApplyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, path, err
	}

	return &cfg, path, nil
}

// LoadEnvFile loads KEY=value pairs from a .env file into the process
// environment. A missing file is not an error.
func LoadEnvFile(path string) error {
	if !fileExists(path) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load env file: %w", err)
	}
	return nil
}

// Save writes config to the specified path
func (c *Config) Save(path string) error {
	if err := EnsureParentDir(path); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	return os.WriteFile(path, data, 0644)
}

// DefaultConfig returns sensible defaults for a new installation
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// applyDefaults fills in missing values with defaults
func (c *Config) applyDefaults() {
	if c.Version == 0 {
		c.Version = 1
	}
	if c.Database.Driver == "" {
		c.Database.Driver = DriverSQLite
	}
	if c.Database.DSN == "" && c.Database.Driver == DriverSQLite {
		c.Database.DSN = defaultDSN
	}
	if c.Database.QueryTimeout == 0 {
		c.Database.QueryTimeout = Duration(defaultQueryTimeout)
	}
	if c.Limits.DepartmentName == 0 {
		c.Limits.DepartmentName = defaultDepartmentNameMax
	}
	if c.Limits.SellerName == 0 {
		c.Limits.SellerName = defaultSellerNameMax
	}
	if c.Limits.SellerEmail == 0 {
		c.Limits.SellerEmail = defaultSellerEmailMax
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "console"
	}
	if c.Server.Addr == "" {
		c.Server.Addr = defaultAddr
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = Duration(defaultShutdownTimeout)
	}
}

// ApplyEnv overrides file settings with SALESDESK_* environment variables
func (c *Config) ApplyEnv() {
	if v := os.Getenv(EnvDBDriver); v != "" {
		c.Database.Driver = v
	}
	if v := os.Getenv(EnvDBDSN); v != "" {
		c.Database.DSN = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv(EnvAddr); v != "" {
		c.Server.Addr = v
	}
}

// Validate rejects settings the application cannot start with
func (c *Config) Validate() error {
	var errs []error

	switch c.Database.Driver {
	case DriverSQLite, DriverPostgres:
	default:
		errs = append(errs, fmt.Errorf("unsupported database driver %q", c.Database.Driver))
	}
	if c.Database.DSN == "" {
		errs = append(errs, errors.New("database dsn is required"))
	}
	if c.Database.QueryTimeout < 0 {
		errs = append(errs, errors.New("database query_timeout must not be negative"))
	}
	if c.Limits.DepartmentName <= 0 || c.Limits.SellerName <= 0 || c.Limits.SellerEmail <= 0 {
		errs = append(errs, errors.New("limits must be positive"))
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Summary returns a human-readable config summary
func (c *Config) Summary() string {
	return fmt.Sprintf("Driver: %s, Timeout: %s, Addr: %s, Limits: department=%d seller=%d email=%d",
		c.Database.Driver, c.Database.QueryTimeout.Duration(), c.Server.Addr,
		c.Limits.DepartmentName, c.Limits.SellerName, c.Limits.SellerEmail)
}
