package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/riskibarqy/volley-club/internal/config"
	"github.com/riskibarqy/volley-club/internal/platform/logging"
)

func memoryConfig(t *testing.T) config.Config {
	t.Helper()

	return config.Config{
		AppEnv:             config.EnvDev,
		HTTPAddr:           "127.0.0.1:0",
		ReadTimeout:        time.Second,
		WriteTimeout:       time.Second,
		StorageDriver:      config.StorageMemory,
		JWTSecret:          "app-test-secret-with-bytes",
		JWTIssuer:          "volley-club-test",
		JWTTTL:             time.Hour,
		BcryptCost:         4,
		CORSAllowedOrigins: []string{"*"},
		UploadsDir:         t.TempDir(),
		UploadMaxBytes:     1 << 20,
		MediaSweepInterval: 10 * time.Millisecond,
		MediaSweepGrace:    time.Minute,
		MediaSweepWorkers:  2,
		CacheEnabled:       true,
		CacheTTL:           time.Second,
		AdminEmail:         "admin@volley.test",
		AdminPassword:      "admin-password",
		AdminName:          "Admin",
	}
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v (%s)", err, rec.Body.String())
	}
	return body
}

func TestNew_MemoryStorageServesSeededData(t *testing.T) {
	a, err := New(context.Background(), memoryConfig(t), logging.NewNop())
	if err != nil {
		t.Fatalf("new app: %v", err)
	}

	rec := httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/league", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	rows, _ := decodeBody(t, rec)["data"].([]any)
	if len(rows) == 0 {
		t.Fatalf("expected seeded league rows")
	}

	rec = httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected ready with memory storage, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestNew_BootstrapsAdmin(t *testing.T) {
	a, err := New(context.Background(), memoryConfig(t), logging.NewNop())
	if err != nil {
		t.Fatalf("new app: %v", err)
	}

	body := strings.NewReader(`{"email":"admin@volley.test","password":"admin-password"}`)
	req := httptest.NewRequest(http.MethodPost, "/login", body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected admin login to succeed, got %d: %s", rec.Code, rec.Body.String())
	}

	data, _ := decodeBody(t, rec)["data"].(map[string]any)
	user, _ := data["user"].(map[string]any)
	if user["role"] != "admin" {
		t.Fatalf("expected admin role, got %v", user["role"])
	}
}

func TestNew_RejectsEmptyAddr(t *testing.T) {
	cfg := memoryConfig(t)
	cfg.HTTPAddr = ""
	if _, err := New(context.Background(), cfg, logging.NewNop()); err == nil {
		t.Fatalf("expected error for empty addr")
	}
}

func TestRun_StopsOnCancel(t *testing.T) {
	a, err := New(context.Background(), memoryConfig(t), logging.NewNop())
	if err != nil {
		t.Fatalf("new app: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("run returned error: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("run did not stop after cancel")
	}
}
