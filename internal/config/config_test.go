package config

import (
	"testing"
	"time"

	"github.com/riskibarqy/volley-club/internal/platform/logging"
)

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_DevDefaults(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("JWT_SECRET", "")
	t.Setenv("APP_HTTP_ADDR", "")
	t.Setenv("PORT", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("unexpected HTTPAddr: %q", cfg.HTTPAddr)
	}
	if cfg.StorageDriver != StoragePostgres {
		t.Fatalf("unexpected StorageDriver: %q", cfg.StorageDriver)
	}
	if cfg.JWTTTL != 24*time.Hour {
		t.Fatalf("unexpected JWTTTL: %s", cfg.JWTTTL)
	}
	if cfg.DBRetryDelay != 5*time.Second {
		t.Fatalf("unexpected DBRetryDelay: %s", cfg.DBRetryDelay)
	}
	if cfg.MediaSweepInterval != 5*time.Minute {
		t.Fatalf("unexpected MediaSweepInterval: %s", cfg.MediaSweepInterval)
	}
	if cfg.UploadMaxBytes != 5<<20 {
		t.Fatalf("unexpected UploadMaxBytes: %d", cfg.UploadMaxBytes)
	}
	if cfg.BcryptCost != 10 {
		t.Fatalf("unexpected BcryptCost: %d", cfg.BcryptCost)
	}
	if !cfg.CacheEnabled || cfg.CacheTTL != 30*time.Second {
		t.Fatalf("unexpected cache config: enabled=%v ttl=%s", cfg.CacheEnabled, cfg.CacheTTL)
	}
	if cfg.JWTSecret == "" {
		t.Fatalf("expected a dev JWT secret")
	}
	if !cfg.ExposeErrorDetail() {
		t.Fatalf("expected error detail outside prod")
	}
}

func TestLoad_JWTSecretRequiredOutsideDev(t *testing.T) {
	for _, env := range []string{EnvStage, EnvProd} {
		t.Run(env, func(t *testing.T) {
			t.Setenv("APP_ENV", env)
			t.Setenv("JWT_SECRET", "")
			if _, err := Load(); err == nil {
				t.Fatalf("expected error without JWT_SECRET")
			}

			t.Setenv("JWT_SECRET", "too-short")
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for short JWT_SECRET")
			}

			t.Setenv("JWT_SECRET", "a-long-enough-production-secret")
			cfg, err := Load()
			if err != nil {
				t.Fatalf("load config: %v", err)
			}
			if env == EnvProd && cfg.ExposeErrorDetail() {
				t.Fatalf("expected error detail hidden in prod")
			}
		})
	}
}

func TestLoad_PortFallback(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("APP_HTTP_ADDR", "")
	t.Setenv("PORT", "9090")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.HTTPAddr != ":9090" {
		t.Fatalf("unexpected HTTPAddr: %q", cfg.HTTPAddr)
	}

	t.Setenv("APP_HTTP_ADDR", "127.0.0.1:7000")
	cfg, err = Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.HTTPAddr != "127.0.0.1:7000" {
		t.Fatalf("expected APP_HTTP_ADDR to win, got %q", cfg.HTTPAddr)
	}
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "unknown storage driver", env: map[string]string{"STORAGE_DRIVER": "sqlite"}},
		{name: "bad duration", env: map[string]string{"DB_RETRY_DELAY": "soon"}},
		{name: "non-positive duration", env: map[string]string{"CACHE_TTL": "0s"}},
		{name: "bad bool", env: map[string]string{"CACHE_ENABLED": "maybe"}},
		{name: "bcrypt cost too low", env: map[string]string{"BCRYPT_COST": "2"}},
		{name: "zero sweep workers", env: map[string]string{"MEDIA_SWEEP_WORKERS": "0"}},
		{name: "upload limit not a number", env: map[string]string{"UPLOAD_MAX_BYTES": "5MB"}},
		{name: "admin email without password", env: map[string]string{"ADMIN_EMAIL": "admin@club.test"}},
		{name: "uptrace without dsn", env: map[string]string{"UPTRACE_ENABLED": "true", "UPTRACE_DSN": ""}},
		{name: "pyroscope without server", env: map[string]string{"PYROSCOPE_ENABLED": "true"}},
		{name: "empty cors", env: map[string]string{"CORS_ALLOWED_ORIGINS": " , "}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("APP_ENV", EnvDev)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %v", tt.env)
			}
		})
	}
}

func TestLoad_MemoryStorageAndLogLevel(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("STORAGE_DRIVER", " Memory ")
	t.Setenv("APP_LOG_LEVEL", "debug")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://club.example.com, https://admin.club.example.com")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.StorageDriver != StorageMemory {
		t.Fatalf("unexpected StorageDriver: %q", cfg.StorageDriver)
	}
	if cfg.LogLevel != logging.LevelDebug {
		t.Fatalf("unexpected LogLevel: %v", cfg.LogLevel)
	}
	if len(cfg.CORSAllowedOrigins) != 2 {
		t.Fatalf("unexpected CORSAllowedOrigins: %v", cfg.CORSAllowedOrigins)
	}
}
