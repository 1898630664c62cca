package commands

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/itemkeeper/core/internal/domain/entities"
	"github.com/itemkeeper/core/internal/infrastructure/config"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	return &config.Config{Store: config.StoreConfig{
		CatalogPath:  filepath.Join(dir, "data", "db.json"),
		ShoppingPath: filepath.Join(dir, "db", "shopping_list.json"),
		IDStrategy:   config.IDStrategySequential,
		AtomicWrites: true,
		FileMode:     "0644",
	}}
}

func TestInitThenCheck(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)

	for _, service := range []string{entities.ServiceCatalog, entities.ServiceShopping} {
		var out bytes.Buffer
		if err := initDatabase(ctx, &out, cfg, service); err != nil {
			t.Fatalf("init %s: %v", service, err)
		}
		if !strings.Contains(out.String(), "Created empty") {
			t.Fatalf("unexpected init output %q", out.String())
		}

		out.Reset()
		if err := initDatabase(ctx, &out, cfg, service); err != nil {
			t.Fatalf("second init %s: %v", service, err)
		}
		if !strings.Contains(out.String(), "already exists") {
			t.Fatalf("unexpected second init output %q", out.String())
		}

		out.Reset()
		if err := checkDatabase(ctx, &out, cfg, service); err != nil {
			t.Fatalf("check %s: %v", service, err)
		}
		if !strings.Contains(out.String(), "(0 items)") {
			t.Fatalf("unexpected check output %q", out.String())
		}
	}
}

func TestCheck_ReportsProblems(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)
	var out bytes.Buffer

	if err := checkDatabase(ctx, &out, cfg, entities.ServiceCatalog); !errors.Is(err, entities.ErrDatabaseNotFound) {
		t.Fatalf("expected ErrDatabaseNotFound, got %v", err)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Store.ShoppingPath), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(cfg.Store.ShoppingPath, []byte("{oops"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := checkDatabase(ctx, &out, cfg, entities.ServiceShopping); !errors.Is(err, entities.ErrMalformedDocument) {
		t.Fatalf("expected ErrMalformedDocument, got %v", err)
	}
}

func TestServiceArgs(t *testing.T) {
	cmd := NewCheckCommand()
	if err := serviceArgs(cmd, []string{"orders"}); err == nil {
		t.Fatalf("expected invalid service to be rejected")
	}
	if err := serviceArgs(cmd, nil); err == nil {
		t.Fatalf("expected missing service to be rejected")
	}
	if err := serviceArgs(cmd, []string{"shopping"}); err != nil {
		t.Fatalf("shopping should be accepted: %v", err)
	}
}

func TestInitCommand_UsesEnvironment(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	t.Setenv("CATALOG_DB_PATH", path)

	cmd := NewInitCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"catalog"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if strings.TrimSpace(string(data)) != "{\n  \"items\": {}\n}" {
		t.Fatalf("unexpected empty catalog %q", data)
	}
}

func TestVersionCommand(t *testing.T) {
	cmd := NewVersionCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs(nil)
	if err := cmd.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(out.String(), Version) {
		t.Fatalf("unexpected version output %q", out.String())
	}
}
