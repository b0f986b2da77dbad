package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Port != "3000" || cfg.Server.CookieName != "autopost_session" {
		t.Fatalf("server = %+v", cfg.Server)
	}
	if cfg.Scheduler.Interval != time.Minute || cfg.Scheduler.TokenRefreshInterval != 10*time.Minute {
		t.Fatalf("scheduler = %+v", cfg.Scheduler)
	}
	if cfg.Storage.Driver != "r2" || cfg.Platforms.Mode != "real" || cfg.LLM.MaxConcurrency != 4 {
		t.Fatalf("cfg = %+v", cfg)
	}
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "8080")
	t.Setenv("SCHEDULER_INTERVAL", "30s")
	t.Setenv("STORAGE_DRIVER", "minio")
	t.Setenv("STORAGE_MINIO_BUCKET", "media")
	t.Setenv("PLATFORMS_MODE", "stub")
	t.Setenv("SECRET_KEY", "0123456789abcdef0123456789abcdef")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Port != "8080" || cfg.Scheduler.Interval != 30*time.Second {
		t.Fatalf("cfg = %+v", cfg)
	}
	if cfg.Storage.Driver != "minio" || cfg.Storage.Minio.Bucket != "media" || cfg.Platforms.Mode != "stub" {
		t.Fatalf("cfg = %+v", cfg)
	}
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "autopost.yaml")
	body := "server:\n  port: \"9000\"\nreview:\n  target_url: https://example.com\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CONFIG_FILE", path)

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Port != "9000" || cfg.Review.TargetURL != "https://example.com" {
		t.Fatalf("cfg = %+v", cfg)
	}
}

func TestLoadConfigRejects(t *testing.T) {
	cases := map[string][2]string{
		"secret length":  {"SECRET_KEY", "short"},
		"storage driver": {"STORAGE_DRIVER", "s3"},
		"platforms mode": {"PLATFORMS_MODE", "fake"},
		"interval":       {"SCHEDULER_INTERVAL", "0s"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			t.Setenv(env[0], env[1])
			if _, err := LoadConfig(); err == nil {
				t.Fatalf("%s=%s accepted", env[0], env[1])
			}
		})
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))
	_, err := LoadConfig()
	if err == nil || !strings.Contains(err.Error(), "read config") {
		t.Fatalf("err = %v", err)
	}
}
