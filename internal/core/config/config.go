package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix of environment variables that override config keys.
// Nested keys use a double underscore: PUESTO_STORAGE__DATA_DIR -> storage.data_dir.
const EnvPrefix = "PUESTO_"

// Storage drivers.
const (
	DriverXLSX   = "xlsx"
	DriverMemory = "memory"
)

// defaultAllowedOrigins are the local frontend dev servers.
var defaultAllowedOrigins = []string{
	"http://localhost:3000",
	"http://localhost:5173",
	"http://127.0.0.1:3000",
	"http://127.0.0.1:5173",
}

// Config represents the top-level configuration for puesto.
type Config struct {
	Server  ServerConfig  `koanf:"server"`
	Storage StorageConfig `koanf:"storage"`
	Ledger  LedgerConfig  `koanf:"ledger"`
	CORS    CORSConfig    `koanf:"cors"`
}

type ServerConfig struct {
	Port          int    `koanf:"port"`
	Host          string `koanf:"host"`
	MaxBodySizeMB int    `koanf:"max_body_size_mb"`
	Mode          string `koanf:"mode"` // debug | release
}

type StorageConfig struct {
	Driver     string `koanf:"driver"` // xlsx | memory
	DataDir    string `koanf:"data_dir"`
	UploadsDir string `koanf:"uploads_dir"`
	Sheet      string `koanf:"sheet"`
}

// LedgerConfig holds the presentation of the default scope and the size of rankings.
type LedgerConfig struct {
	DefaultScopeLabel string `koanf:"default_scope_label"`
	DefaultScopeDate  string `koanf:"default_scope_date"` // YYYY-MM-DD
	TopProducts       int    `koanf:"top_products"`
}

type CORSConfig struct {
	AllowedOrigins   []string `koanf:"allowed_origins"`
	AllowCredentials bool     `koanf:"allow_credentials"`
}

// AllowAll reports whether any origin is accepted.
func (c CORSConfig) AllowAll() bool {
	for _, o := range c.AllowedOrigins {
		if strings.TrimSpace(o) == "*" {
			return true
		}
	}
	return false
}

func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server.port %d (must be 1-65535)", c.Server.Port)
	}
	if strings.TrimSpace(c.Server.Host) == "" {
		return fmt.Errorf("server.host is required")
	}
	if c.Server.MaxBodySizeMB <= 0 {
		return fmt.Errorf("server.max_body_size_mb must be > 0")
	}
	if c.Server.Mode != "debug" && c.Server.Mode != "release" {
		return fmt.Errorf("invalid server.mode %q (must be debug or release)", c.Server.Mode)
	}

	if c.Storage.Driver != DriverXLSX && c.Storage.Driver != DriverMemory {
		return fmt.Errorf("unsupported storage.driver %q (must be xlsx or memory)", c.Storage.Driver)
	}
	if c.Storage.Driver == DriverXLSX && strings.TrimSpace(c.Storage.DataDir) == "" {
		return fmt.Errorf("storage.data_dir is required")
	}
	if strings.TrimSpace(c.Storage.UploadsDir) == "" {
		return fmt.Errorf("storage.uploads_dir is required")
	}
	if strings.TrimSpace(c.Storage.Sheet) == "" {
		return fmt.Errorf("storage.sheet is required")
	}

	if strings.TrimSpace(c.Ledger.DefaultScopeLabel) == "" {
		return fmt.Errorf("ledger.default_scope_label is required")
	}
	if _, err := time.Parse(time.DateOnly, c.Ledger.DefaultScopeDate); err != nil {
		return fmt.Errorf("invalid ledger.default_scope_date %q: %w", c.Ledger.DefaultScopeDate, err)
	}
	if c.Ledger.TopProducts <= 0 {
		return fmt.Errorf("ledger.top_products must be > 0")
	}

	if c.CORS.AllowCredentials && c.CORS.AllowAll() {
		return fmt.Errorf("cors.allow_credentials cannot be combined with a wildcard origin")
	}

	return nil
}

// Load parses config from defaults, the yaml file, an optional dotenv file and the
// environment, then validates it. Empty paths are skipped. A dotenv file that does not
// exist is ignored; variables already set in the environment win over it.
func Load(configPath, dotenvPath string) (*Config, error) {
	k := koanf.New(".")

	defaults := map[string]interface{}{
		"server.port":                8080,
		"server.host":                "0.0.0.0",
		"server.max_body_size_mb":    10,
		"server.mode":                "release",
		"storage.driver":             DriverXLSX,
		"storage.data_dir":           "./data",
		"storage.uploads_dir":        "./uploads",
		"storage.sheet":              "Hoja1",
		"ledger.default_scope_label": "Campamento Adolescentes 2025",
		"ledger.default_scope_date":  "2025-01-01",
		"ledger.top_products":        5,
		"cors.allowed_origins":       defaultAllowedOrigins,
		"cors.allow_credentials":     true,
	}
	for key, value := range defaults {
		k.Set(key, value)
	}

	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	}

	if dotenvPath != "" {
		if err := godotenv.Load(dotenvPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load dotenv file: %w", err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.Replace(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".", -1)
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}
