package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDir_EnvOverride(t *testing.T) {
	t.Setenv("AGENTPACK_CONFIG_DIR", "/tmp/agentpack-config")
	if got := Dir(); got != "/tmp/agentpack-config" {
		t.Errorf("Dir() = %s, want /tmp/agentpack-config", got)
	}
	if got := FilePath(); got != "/tmp/agentpack-config/config.yaml" {
		t.Errorf("FilePath() = %s", got)
	}
}

func TestDir_Default(t *testing.T) {
	t.Setenv("AGENTPACK_CONFIG_DIR", "")
	home, _ := os.UserHomeDir()
	if got, want := Dir(), filepath.Join(home, ".agentpack"); got != want {
		t.Errorf("Dir() = %s, want %s", got, want)
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv("AGENTPACK_CONFIG_DIR", t.TempDir())
	t.Setenv("AGENTPACK_LOG_LEVEL", "")

	if err := Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := Get(KeyLogLevel); got != "warn" {
		t.Errorf("log_level default = %q, want warn", got)
	}
	if GetBool(KeyAssumeYes) {
		t.Error("assume_yes should default to false")
	}
}

func TestSetThenLoad(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("AGENTPACK_CONFIG_DIR", dir)
	t.Setenv("AGENTPACK_SOURCE", "")

	if err := Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := Set(KeySource, "/opt/payload"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := Set(KeyAssumeYes, "true"); err != nil {
		t.Fatalf("Set: %v", err)
	}

	if err := Load(); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got := Get(KeySource); got != "/opt/payload" {
		t.Errorf("source = %q, want /opt/payload", got)
	}
	if !GetBool(KeyAssumeYes) {
		t.Error("assume_yes should be true after Set")
	}

	result, err := ValidateFile(filepath.Join(dir, "config.yaml"))
	if err != nil {
		t.Fatalf("ValidateFile: %v", err)
	}
	if !result.Valid {
		t.Errorf("written config should validate, issues: %v", result.Issues)
	}
}

func TestSet_RejectsUnknownKey(t *testing.T) {
	t.Setenv("AGENTPACK_CONFIG_DIR", t.TempDir())
	err := Set("mirror", "x")
	if err == nil || !strings.Contains(err.Error(), "unknown config key") {
		t.Errorf("expected unknown key error, got %v", err)
	}
}

func TestSet_RejectsNonBoolAssumeYes(t *testing.T) {
	t.Setenv("AGENTPACK_CONFIG_DIR", t.TempDir())
	if err := Set(KeyAssumeYes, "maybe"); err == nil {
		t.Error("expected error for non-boolean assume_yes")
	}
}

func TestEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("AGENTPACK_CONFIG_DIR", dir)
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("host_root: /from/file\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("AGENTPACK_HOST_ROOT", "/from/env")

	if err := Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := Get(KeyHostRoot); got != "/from/env" {
		t.Errorf("host_root = %q, want /from/env", got)
	}
}

func TestLoad_MalformedFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("AGENTPACK_CONFIG_DIR", dir)
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("source: [unterminated\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := Load(); err == nil {
		t.Error("expected error for malformed config")
	}
	if got := Get(KeyLogLevel); got != "warn" {
		t.Errorf("log_level after failed load = %q, want default warn", got)
	}
	if got := Get(KeySource); got != "" {
		t.Errorf("source after failed load = %q, want empty", got)
	}
}
