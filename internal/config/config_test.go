package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
data_dir: /var/lib/channeldex/data
redis_url: redis://localhost:6379/0
cache_ttl: 30m
max_groups: 10
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	c, err := LoadFromFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if c.DataDir != "/var/lib/channeldex/data" {
		t.Errorf("DataDir = %q", c.DataDir)
	}
	if c.CacheTTL != 30*time.Minute {
		t.Errorf("CacheTTL = %v, want 30m", c.CacheTTL)
	}
	if c.MaxGroups != 10 {
		t.Errorf("MaxGroups = %d, want 10", c.MaxGroups)
	}
	// Defaults fill the rest.
	if c.ServerPort != "8080" || c.FallbackLogo == "" || c.MaxGroupChannels != DefaultGroupCap {
		t.Errorf("defaults not applied: %+v", c)
	}
}

func TestLoadFromFile_RequiresSource(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("server_port: \"9090\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFromFile(path); !errors.Is(err, ErrNoSource) {
		t.Fatalf("err = %v, want ErrNoSource", err)
	}
}

func TestApplyEnvFile(t *testing.T) {
	t.Setenv("CHANNELDEX_TEST_SET", "keep")
	t.Setenv("CHANNELDEX_TEST_UNSET", "")
	os.Unsetenv("CHANNELDEX_TEST_UNSET")

	applyEnvFile([]byte(`
# comment
CHANNELDEX_TEST_SET=overwritten
CHANNELDEX_TEST_UNSET="quoted value"
`))
	if got := os.Getenv("CHANNELDEX_TEST_SET"); got != "keep" {
		t.Errorf("existing variable overwritten: %q", got)
	}
	if got := os.Getenv("CHANNELDEX_TEST_UNSET"); got != "quoted value" {
		t.Errorf("unset variable = %q, want quoted value applied", got)
	}
}
