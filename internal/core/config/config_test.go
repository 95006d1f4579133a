package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoad_DefaultsWithoutFiles(t *testing.T) {
	cfg, err := Load("", "")
	requireNoError(t, err)

	if cfg.Server.Port != 8080 || cfg.Server.Mode != "release" {
		t.Fatalf("unexpected server defaults: %+v", cfg.Server)
	}
	if cfg.Storage.Driver != DriverXLSX || cfg.Storage.Sheet != "Hoja1" {
		t.Fatalf("unexpected storage defaults: %+v", cfg.Storage)
	}
	if cfg.Ledger.DefaultScopeLabel != "Campamento Adolescentes 2025" || cfg.Ledger.DefaultScopeDate != "2025-01-01" {
		t.Fatalf("unexpected ledger defaults: %+v", cfg.Ledger)
	}
	if cfg.Ledger.TopProducts != 5 {
		t.Fatalf("expected 5 top products, got %d", cfg.Ledger.TopProducts)
	}
	if cfg.CORS.AllowAll() || len(cfg.CORS.AllowedOrigins) != 4 || !cfg.CORS.AllowCredentials {
		t.Fatalf("expected local dev origins with credentials by default, got %+v", cfg.CORS)
	}
}

func TestLoad_ValidConfigFile(t *testing.T) {
	root := t.TempDir()
	cfgPath := filepath.Join(root, "puesto.yaml")
	requireNoError(t, os.WriteFile(cfgPath, []byte(`
server:
  port: 4000
  host: "127.0.0.1"
  mode: "debug"
storage:
  driver: "memory"
  uploads_dir: "/tmp/puesto-uploads"
ledger:
  default_scope_label: "Feria 2026"
  default_scope_date: "2026-03-01"
  top_products: 3
cors:
  allowed_origins: ["http://localhost:5173"]
  allow_credentials: true
`), 0o644))

	cfg, err := Load(cfgPath, "")
	requireNoError(t, err)
	if cfg.Server.Port != 4000 || cfg.Server.Host != "127.0.0.1" || cfg.Server.Mode != "debug" {
		t.Fatalf("unexpected server config: %+v", cfg.Server)
	}
	if cfg.Storage.Driver != DriverMemory {
		t.Fatalf("expected memory driver, got %q", cfg.Storage.Driver)
	}
	if cfg.Ledger.TopProducts != 3 || cfg.Ledger.DefaultScopeLabel != "Feria 2026" {
		t.Fatalf("unexpected ledger config: %+v", cfg.Ledger)
	}
	if len(cfg.CORS.AllowedOrigins) != 1 || cfg.CORS.AllowedOrigins[0] != "http://localhost:5173" {
		t.Fatalf("unexpected cors origins: %v", cfg.CORS.AllowedOrigins)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	root := t.TempDir()
	cfgPath := filepath.Join(root, "puesto.yaml")
	requireNoError(t, os.WriteFile(cfgPath, []byte(`
storage:
  data_dir: "/from/file"
`), 0o644))

	t.Setenv("PUESTO_STORAGE__DATA_DIR", "/from/env")
	t.Setenv("PUESTO_SERVER__PORT", "9090")

	cfg, err := Load(cfgPath, "")
	requireNoError(t, err)
	if cfg.Storage.DataDir != "/from/env" {
		t.Fatalf("expected env data dir, got %q", cfg.Storage.DataDir)
	}
	if cfg.Server.Port != 9090 {
		t.Fatalf("expected env port, got %d", cfg.Server.Port)
	}
}

func TestLoad_DotenvFile(t *testing.T) {
	root := t.TempDir()
	dotenv := filepath.Join(root, ".env")
	requireNoError(t, os.WriteFile(dotenv, []byte("PUESTO_LEDGER__TOP_PRODUCTS=7\nPUESTO_SERVER__HOST=10.0.0.1\n"), 0o644))
	t.Cleanup(func() {
		os.Unsetenv("PUESTO_LEDGER__TOP_PRODUCTS")
		os.Unsetenv("PUESTO_SERVER__HOST")
	})

	// Already exported variables win over the dotenv file.
	t.Setenv("PUESTO_SERVER__HOST", "127.0.0.1")

	cfg, err := Load("", dotenv)
	requireNoError(t, err)
	if cfg.Ledger.TopProducts != 7 {
		t.Fatalf("expected dotenv top products, got %d", cfg.Ledger.TopProducts)
	}
	if cfg.Server.Host != "127.0.0.1" {
		t.Fatalf("expected exported host to win, got %q", cfg.Server.Host)
	}
}

func TestLoad_MissingDotenvIsIgnored(t *testing.T) {
	_, err := Load("", filepath.Join(t.TempDir(), ".env"))
	requireNoError(t, err)
}

func TestLoad_MissingConfigFileFailsStartup(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), "")
	if err == nil || !strings.Contains(err.Error(), "failed to load config file") {
		t.Fatalf("expected config file error, got %v", err)
	}
}

func TestLoad_InvalidValuesFailStartup(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{name: "port", yaml: "server:\n  port: -1\n", want: "invalid server.port"},
		{name: "mode", yaml: "server:\n  mode: \"prod\"\n", want: "invalid server.mode"},
		{name: "driver", yaml: "storage:\n  driver: \"postgres\"\n", want: "unsupported storage.driver"},
		{name: "data dir", yaml: "storage:\n  data_dir: \"\"\n", want: "storage.data_dir is required"},
		{name: "sheet", yaml: "storage:\n  sheet: \" \"\n", want: "storage.sheet is required"},
		{name: "scope date", yaml: "ledger:\n  default_scope_date: \"01/01/2025\"\n", want: "invalid ledger.default_scope_date"},
		{name: "top products", yaml: "ledger:\n  top_products: 0\n", want: "ledger.top_products must be > 0"},
		{name: "cors", yaml: "cors:\n  allowed_origins: [\"*\"]\n", want: "cors.allow_credentials"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfgPath := filepath.Join(t.TempDir(), "puesto.yaml")
			requireNoError(t, os.WriteFile(cfgPath, []byte(tc.yaml), 0o644))

			_, err := Load(cfgPath, "")
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error containing %q, got %v", tc.want, err)
			}
		})
	}
}

func TestLoad_MemoryDriverNeedsNoDataDir(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "puesto.yaml")
	requireNoError(t, os.WriteFile(cfgPath, []byte("storage:\n  driver: \"memory\"\n  data_dir: \"\"\n"), 0o644))

	_, err := Load(cfgPath, "")
	requireNoError(t, err)
}

func requireNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatal(err)
	}
}
