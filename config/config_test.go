package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DB_USER", "club")
	t.Setenv("DB_HOST", "localhost:3306")
	t.Setenv("DB_NAME", "studyclub")
	t.Setenv("SESSION_SECRET", "secret")
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Port != "8080" {
		t.Errorf("default port: %v", cfg.Server.Port)
	}
	if cfg.Session.TTLDuration() != 72*time.Hour {
		t.Errorf("default session ttl: %v", cfg.Session.TTLDuration())
	}
	if cfg.Database.MaxOpenConns != 50 {
		t.Errorf("default pool size: %v", cfg.Database.MaxOpenConns)
	}
}

func TestLoadMissingRequired(t *testing.T) {
	t.Setenv("DB_USER", "club")
	t.Setenv("DB_HOST", "localhost:3306")
	t.Setenv("DB_NAME", "")
	t.Setenv("SESSION_SECRET", "")
	_, err := Load("")
	if err == nil {
		t.Fatal("missing required settings should fail")
	}
	for _, name := range []string{"DB_NAME", "SESSION_SECRET"} {
		if !strings.Contains(err.Error(), name) {
			t.Errorf("error should name %v: %v", name, err)
		}
	}
}

func TestEnvOverridesFile(t *testing.T) {
	setRequiredEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("server:\n  port: \"9999\"\n  mode: release\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PORT", "7070")

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Port != "7070" {
		t.Errorf("environment should win over the file, got %v", cfg.Server.Port)
	}
	if cfg.Server.Mode != "release" {
		t.Errorf("file value lost: %v", cfg.Server.Mode)
	}
}

func TestOriginsSplit(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("FE_ORIGINS", "https://a.example.com;https://b.example.com")
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if len(cfg.Server.Origins) != 2 || cfg.Server.Origins[1] != "https://b.example.com" {
		t.Errorf("origins: %v", cfg.Server.Origins)
	}
}

func TestDSN(t *testing.T) {
	d := &Database{User: "u", Pass: "p", Host: "h:3306", Name: "n", TLS: true}
	want := "u:p@tcp(h:3306)/n?tls=true&parseTime=true&clientFoundRows=true"
	if got := d.DSN(); got != want {
		t.Errorf("DSN() = %q, want %q", got, want)
	}
	if !strings.Contains(d.DSN(), "clientFoundRows=true") {
		t.Error("DSN must request found-rows semantics so idempotent updates still match")
	}
}

func TestTTLDurationFallback(t *testing.T) {
	for _, raw := range []string{"", "bogus", "-5m"} {
		s := &Session{TTL: raw}
		if s.TTLDuration() != 72*time.Hour {
			t.Errorf("TTL %q should fall back to 72h, got %v", raw, s.TTLDuration())
		}
	}
	s := &Session{TTL: "30m"}
	if s.TTLDuration() != 30*time.Minute {
		t.Errorf("valid TTL mangled: %v", s.TTLDuration())
	}
}
