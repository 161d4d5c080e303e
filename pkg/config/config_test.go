package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, `
environment: test
wiki:
  user_agent: "flippulse-test - dev@example.com"
`)
	c, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Flip.Bank != 10_000_000 {
		t.Fatalf("expected default bank, got %d", c.Flip.Bank)
	}
	if c.Flip.Aggressiveness != 0.15 {
		t.Fatalf("expected default aggressiveness, got %v", c.Flip.Aggressiveness)
	}
	if c.Flip.TaxModel != "standard" {
		t.Fatalf("expected standard tax model, got %s", c.Flip.TaxModel)
	}
	if c.Flip.MaxAge != 30*time.Minute {
		t.Fatalf("expected 30m max age, got %v", c.Flip.MaxAge)
	}
	if c.Refresh.Interval != 5*time.Minute {
		t.Fatalf("expected 5m refresh interval, got %v", c.Refresh.Interval)
	}
}

func TestLoadRejectsMissingUserAgent(t *testing.T) {
	path := writeConfig(t, "environment: test\n")
	if _, err := Load(path); err == nil {
		t.Fatalf("expected error for missing user agent")
	}
}

func TestLoadRejectsBadTaxModel(t *testing.T) {
	path := writeConfig(t, `
environment: test
wiki:
  user_agent: ua
flip:
  tax_model: halved
`)
	if _, err := Load(path); err == nil {
		t.Fatalf("expected error for unknown tax model")
	}
}

func TestLoadRejectsBadAggressiveness(t *testing.T) {
	path := writeConfig(t, `
environment: test
wiki:
  user_agent: ua
flip:
  aggressiveness: 0.75
`)
	if _, err := Load(path); err == nil {
		t.Fatalf("expected error for aggressiveness > 0.5")
	}
}

func TestLoadWithEnvOverrides(t *testing.T) {
	path := writeConfig(t, `
environment: test
wiki:
  user_agent: from-file
`)
	t.Setenv("FLIPPULSE_USER_AGENT", "from-env")
	t.Setenv("REDIS_ADDR", "localhost:6379")

	c, err := LoadWithEnv(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Wiki.UserAgent != "from-env" {
		t.Fatalf("expected env override, got %s", c.Wiki.UserAgent)
	}
	if !c.Cache.Redis.Enabled || c.Cache.Redis.Addr != "localhost:6379" {
		t.Fatalf("expected redis enabled from env")
	}
}
