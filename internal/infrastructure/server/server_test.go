package server

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/itemkeeper/core/internal/domain/entities"
	"github.com/itemkeeper/core/internal/infrastructure/config"
	"github.com/itemkeeper/core/internal/infrastructure/logger"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	return &config.Config{
		App:    config.AppConfig{Name: "Items API", Version: "test", Environment: "test", Docs: true},
		Server: config.ServerConfig{Port: 8000, RequestTimeout: 5 * time.Second},
		Store: config.StoreConfig{
			CatalogPath:  filepath.Join(dir, "db.json"),
			ShoppingPath: filepath.Join(dir, "shopping_list.json"),
			IDStrategy:   config.IDStrategySequential,
			AtomicWrites: true,
			FileMode:     "0644",
		},
		Logger:   config.LoggerConfig{Level: "info", Format: "json"},
		Security: config.SecurityConfig{CORSAllowedOrigins: "*", RateLimitRequests: 1000, RateLimitWindow: time.Second},
		Metrics:  config.MetricsConfig{Enabled: true},
	}
}

func serve(s *Server, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func TestNew_CatalogRequiresDatabase(t *testing.T) {
	cfg := testConfig(t)
	_, err := New(cfg, entities.ServiceCatalog, logger.NewNop())
	if !errors.Is(err, entities.ErrDatabaseNotFound) {
		t.Fatalf("expected ErrDatabaseNotFound, got %v", err)
	}
}

func TestNew_UnknownService(t *testing.T) {
	if _, err := New(testConfig(t), "orders", logger.NewNop()); err == nil {
		t.Fatalf("expected unknown service error")
	}
}

func TestCatalogServer_ErrorBodies(t *testing.T) {
	cfg := testConfig(t)
	if err := os.WriteFile(cfg.Store.CatalogPath, []byte(`{"items": {}}`), 0o644); err != nil {
		t.Fatalf("seed: %v", err)
	}
	s, err := New(cfg, entities.ServiceCatalog, logger.NewNop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	rec := serve(s, http.MethodGet, "/items/7", "")
	if rec.Code != http.StatusNotFound || !strings.Contains(rec.Body.String(), `"detail":"Item not found"`) {
		t.Fatalf("unexpected 404 reply %d %s", rec.Code, rec.Body.String())
	}

	rec = serve(s, http.MethodPut, "/items/7", `{"name": "x", "price": 1}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("update of unknown id: expected 404, got %d", rec.Code)
	}

	rec = serve(s, http.MethodPost, "/items/", `{"description": "x"}`)
	if rec.Code != http.StatusUnprocessableEntity || !strings.Contains(rec.Body.String(), `"field":"name"`) {
		t.Fatalf("unexpected validation reply %d %s", rec.Code, rec.Body.String())
	}

	for _, body := range []string{`{"name": 5, "price": 1}`, `{"name": "x", "price": "10.5"}`} {
		if rec := serve(s, http.MethodPost, "/items/", body); rec.Code != http.StatusUnprocessableEntity {
			t.Fatalf("type mismatch %s: expected 422, got %d", body, rec.Code)
		}
	}

	if rec := serve(s, http.MethodGet, "/items", ""); rec.Header().Get("X-Request-Id") == "" {
		t.Fatalf("expected request id header")
	}
}

func TestCatalogServer_MalformedDatabase(t *testing.T) {
	cfg := testConfig(t)
	if err := os.WriteFile(cfg.Store.CatalogPath, []byte(`{"items": `), 0o644); err != nil {
		t.Fatalf("seed: %v", err)
	}
	s, err := New(cfg, entities.ServiceCatalog, logger.NewNop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if rec := serve(s, http.MethodGet, "/health", ""); rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 for malformed database, got %d", rec.Code)
	}
}

func TestShoppingServer_MissingDatabaseIsEmpty(t *testing.T) {
	cfg := testConfig(t)
	s, err := New(cfg, entities.ServiceShopping, logger.NewNop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	rec := serve(s, http.MethodGet, "/items", "")
	if rec.Code != http.StatusOK || strings.TrimSpace(rec.Body.String()) != "[]" {
		t.Fatalf("unexpected list %d %s", rec.Code, rec.Body.String())
	}

	rec = serve(s, http.MethodPost, "/items/?name=bread&quantity=1", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"id":1`) {
		t.Fatalf("unexpected create %d %s", rec.Code, rec.Body.String())
	}

	rec = serve(s, http.MethodPost, "/items/?name=bread&quantity=lots", "")
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}

	// catalog-only routes are not mounted
	if rec := serve(s, http.MethodDelete, "/items/1", ""); rec.Code == http.StatusOK {
		t.Fatalf("shopping service must not expose delete")
	}
}

func TestServer_Metrics(t *testing.T) {
	cfg := testConfig(t)
	s, err := New(cfg, entities.ServiceShopping, logger.NewNop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	serve(s, http.MethodGet, "/items", "")

	rec := serve(s, http.MethodGet, "/metrics", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("metrics status %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{"http_requests_total", "itemkeeper_store_operations_total", "itemkeeper_store_records"} {
		if !strings.Contains(body, want) {
			t.Fatalf("metrics output missing %s", want)
		}
	}
}

func TestServer_MetricsDisabled(t *testing.T) {
	cfg := testConfig(t)
	cfg.Metrics.Enabled = false
	cfg.App.Docs = false
	s, err := New(cfg, entities.ServiceShopping, logger.NewNop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if rec := serve(s, http.MethodGet, "/metrics", ""); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for /metrics, got %d", rec.Code)
	}
}

func TestServer_Docs(t *testing.T) {
	cfg := testConfig(t)
	s, err := New(cfg, entities.ServiceShopping, logger.NewNop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	rec := serve(s, http.MethodGet, "/docs/doc.json", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "Shopping List API") {
		t.Fatalf("unexpected docs reply %d %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"version": "test"`) {
		t.Fatalf("docs do not carry the configured version: %s", rec.Body.String())
	}
}

func TestNew_DebugFollowsEnvironment(t *testing.T) {
	for env, want := range map[string]bool{"development": true, "production": false, "test": false} {
		cfg := testConfig(t)
		cfg.App.Environment = env
		s, err := New(cfg, entities.ServiceShopping, logger.NewNop())
		if err != nil {
			t.Fatalf("New: %v", err)
		}
		if s.echo.Debug != want {
			t.Fatalf("environment %s: expected debug %v", env, want)
		}
	}
}

func TestShoppingServer_MismatchedDatabase(t *testing.T) {
	cfg := testConfig(t)
	const doc = `[{"id": 1, "name": "eggs", "quantity": "12"}]`
	if err := os.WriteFile(cfg.Store.ShoppingPath, []byte(doc), 0o644); err != nil {
		t.Fatalf("seed: %v", err)
	}
	s, err := New(cfg, entities.ServiceShopping, logger.NewNop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if rec := serve(s, http.MethodPost, "/items/?name=bread&quantity=1", ""); rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	data, _ := os.ReadFile(cfg.Store.ShoppingPath)
	if string(data) != doc {
		t.Fatalf("file was rewritten: %s", data)
	}
}

func TestServer_RateLimit(t *testing.T) {
	cfg := testConfig(t)
	cfg.Security.RateLimitRequests = 2
	cfg.Security.RateLimitWindow = time.Hour
	s, err := New(cfg, entities.ServiceShopping, logger.NewNop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	var last int
	for i := 0; i < 3; i++ {
		last = serve(s, http.MethodGet, "/health", "").Code
	}
	if last != http.StatusTooManyRequests {
		t.Fatalf("expected 429 after burst, got %d", last)
	}
}
