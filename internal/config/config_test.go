package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// clearEnv unsets every GLEANER_* variable the tests touch so results do
// not depend on the invoking shell.
func clearEnv() {
	for _, key := range []string{
		"GLEANER_SERVER_ADDR", "GLEANER_SERVER_SAMPLE_PATH",
		"GLEANER_UPLOAD_MAX_BYTES", "GLEANER_CACHE_TTL",
		"GLEANER_CACHE_MAX_ENTRIES", "GLEANER_LABELER_KIND",
		"GLEANER_LABELER_MODEL_DIR", "GLEANER_LABELER_ENDPOINT",
		"GLEANER_LABELER_API_KEY", "GLEANER_LABELER_MODEL",
		"GLEANER_PATTERNS_PATH", "GLEANER_LOG_LEVEL",
		"GLEANER_LOG_FORMAT", "GLEANER_LOG_FILE",
	} {
		os.Unsetenv(key)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv()
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Server.Addr != ":8080" {
		t.Errorf("addr = %q", cfg.Server.Addr)
	}
	if cfg.Server.SamplePath != "data/sample_news.txt" {
		t.Errorf("sample path = %q", cfg.Server.SamplePath)
	}
	if cfg.Upload.MaxBytes != 16<<20 {
		t.Errorf("max bytes = %d", cfg.Upload.MaxBytes)
	}
	if cfg.Cache.TTL != 5*time.Minute {
		t.Errorf("ttl = %v", cfg.Cache.TTL)
	}
	if cfg.Cache.MaxEntries != 100 {
		t.Errorf("max entries = %d", cfg.Cache.MaxEntries)
	}
	if cfg.Labeler.Kind != "prose" {
		t.Errorf("labeler kind = %q", cfg.Labeler.Kind)
	}
	if cfg.Patterns.Path != "" {
		t.Errorf("patterns path = %q", cfg.Patterns.Path)
	}
	if cfg.Log.Level != "info" || cfg.Log.Format != "text" || cfg.Log.File != "" {
		t.Errorf("log config = %+v", cfg.Log)
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "gleaner.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_File(t *testing.T) {
	clearEnv()
	path := writeConfig(t, `
server:
  addr: ":9999"
cache:
  ttl: 90s
  max_entries: 10
labeler:
  kind: "null"
log:
  level: debug
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Server.Addr != ":9999" {
		t.Errorf("addr = %q", cfg.Server.Addr)
	}
	if cfg.Cache.TTL != 90*time.Second {
		t.Errorf("ttl = %v", cfg.Cache.TTL)
	}
	if cfg.Cache.MaxEntries != 10 {
		t.Errorf("max entries = %d", cfg.Cache.MaxEntries)
	}
	if cfg.Labeler.Kind != "null" {
		t.Errorf("labeler kind = %q", cfg.Labeler.Kind)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("log level = %q", cfg.Log.Level)
	}
	// Unset keys keep their defaults.
	if cfg.Upload.MaxBytes != 16<<20 {
		t.Errorf("max bytes = %d", cfg.Upload.MaxBytes)
	}
}

func TestLoad_DiscoveryInWorkingDir(t *testing.T) {
	clearEnv()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "gleaner.yaml"), []byte("server:\n  addr: \":4444\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Chdir(dir)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Addr != ":4444" {
		t.Errorf("addr = %q", cfg.Server.Addr)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearEnv()
	path := writeConfig(t, "server:\n  addr: \":9999\"\n")

	t.Setenv("GLEANER_SERVER_ADDR", ":7777")
	t.Setenv("GLEANER_CACHE_MAX_ENTRIES", "7")
	t.Setenv("GLEANER_LABELER_API_KEY", "sk-test")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Server.Addr != ":7777" {
		t.Errorf("env should override file, addr = %q", cfg.Server.Addr)
	}
	if cfg.Cache.MaxEntries != 7 {
		t.Errorf("max entries = %d", cfg.Cache.MaxEntries)
	}
	if cfg.Labeler.APIKey != "sk-test" {
		t.Errorf("api key = %q", cfg.Labeler.APIKey)
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	clearEnv()
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing explicit config file")
	}
}

func TestLoad_BadYAML(t *testing.T) {
	clearEnv()
	path := writeConfig(t, "cache: [unclosed\n")
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for malformed config file")
	}
}
