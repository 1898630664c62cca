package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.App.Name != "Items API" || cfg.App.Version != "1.0.0" || !cfg.App.IsDevelopment() {
		t.Fatalf("unexpected app defaults %+v", cfg.App)
	}
	if cfg.Server.Port != 8000 {
		t.Fatalf("unexpected port %d", cfg.Server.Port)
	}
	if cfg.Store.CatalogPath != "data/db.json" || cfg.Store.ShoppingPath != "db/shopping_list.json" {
		t.Fatalf("unexpected store paths %+v", cfg.Store)
	}
	if cfg.Store.IDStrategy != IDStrategySequential || !cfg.Store.AtomicWrites {
		t.Fatalf("unexpected store defaults %+v", cfg.Store)
	}
	if cfg.Server.RequestTimeout != 30*time.Second {
		t.Fatalf("unexpected request timeout %v", cfg.Server.RequestTimeout)
	}
	mode, err := cfg.Store.Mode()
	if err != nil || mode != 0o644 {
		t.Fatalf("unexpected mode %v %v", mode, err)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9100")
	t.Setenv("CATALOG_DB_PATH", "/tmp/catalog.json")
	t.Setenv("STORE_ID_STRATEGY", "unique")
	t.Setenv("STORE_ATOMIC_WRITES", "false")
	t.Setenv("RATE_LIMIT_WINDOW", "5s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 9100 || cfg.Store.CatalogPath != "/tmp/catalog.json" {
		t.Fatalf("env not applied: %+v %+v", cfg.Server, cfg.Store)
	}
	if cfg.Store.IDStrategy != IDStrategyUnique || cfg.Store.AtomicWrites {
		t.Fatalf("store env not applied: %+v", cfg.Store)
	}
	if cfg.Security.RateLimitWindow != 5*time.Second {
		t.Fatalf("unexpected window %v", cfg.Security.RateLimitWindow)
	}
}

func TestLoad_Invalid(t *testing.T) {
	cases := map[string]string{
		"SERVER_PORT":       "70000",
		"STORE_ID_STRATEGY": "random",
		"LOG_LEVEL":         "loud",
		"STORE_FILE_MODE":   "rw-r--r--",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%s", key, value)
			}
		})
	}
}

func TestStoreConfig_PathFor(t *testing.T) {
	cfg := StoreConfig{CatalogPath: "a.json", ShoppingPath: "b.json"}
	if p, err := cfg.PathFor("catalog"); err != nil || p != "a.json" {
		t.Fatalf("catalog path: %s %v", p, err)
	}
	if p, err := cfg.PathFor("shopping"); err != nil || p != "b.json" {
		t.Fatalf("shopping path: %s %v", p, err)
	}
	if _, err := cfg.PathFor("orders"); err == nil {
		t.Fatalf("expected unknown service error")
	}
}
