package homes

import (
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
)

func newTestConfig(t *testing.T) (*Config, string) {
	t.Helper()
	dir := t.TempDir()
	cfg, err := LoadConfig(dir, zap.NewNop())
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	return cfg, dir
}

func TestLoadConfigCreatesDefaults(t *testing.T) {
	cfg, dir := newTestConfig(t)
	if cfg.DefaultHomeLimit() != 3 || cfg.MaxHomeLimit() != 10 || cfg.WarmupSeconds() != 3 {
		t.Fatalf("unexpected defaults: %d/%d/%d",
			cfg.DefaultHomeLimit(), cfg.MaxHomeLimit(), cfg.WarmupSeconds())
	}
	if !cfg.PermissionOverridesEnabled() {
		t.Fatalf("permission overrides not enabled by default")
	}
	if _, err := os.Stat(filepath.Join(dir, "config.yaml")); err != nil {
		t.Fatalf("default config file not written: %v", err)
	}
}

func TestConfigSettersPersist(t *testing.T) {
	cfg, dir := newTestConfig(t)
	if err := cfg.SetDefaultHomeLimit(5); err != nil {
		t.Fatalf("SetDefaultHomeLimit: %v", err)
	}
	if err := cfg.SetWarmupSeconds(0); err != nil {
		t.Fatalf("SetWarmupSeconds: %v", err)
	}
	if err := cfg.SetPermissionOverrides(false); err != nil {
		t.Fatalf("SetPermissionOverrides: %v", err)
	}

	fresh, err := LoadConfig(dir, zap.NewNop())
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if fresh.DefaultHomeLimit() != 5 || fresh.WarmupSeconds() != 0 || fresh.PermissionOverridesEnabled() {
		t.Fatalf("settings not persisted: %d/%d/%v",
			fresh.DefaultHomeLimit(), fresh.WarmupSeconds(), fresh.PermissionOverridesEnabled())
	}
}

func TestConfigReloadPicksUpExternalEdits(t *testing.T) {
	cfg, dir := newTestConfig(t)
	edited := "default_home_limit: 7\nmax_home_limit: 20\nwarmup_seconds: 1\npermission_overrides: false\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(edited), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if err := cfg.Reload(); err != nil {
		t.Fatalf("Reload: %v", err)
	}
	if cfg.DefaultHomeLimit() != 7 || cfg.MaxHomeLimit() != 20 || cfg.WarmupSeconds() != 1 {
		t.Fatalf("reload missed edits: %d/%d/%d",
			cfg.DefaultHomeLimit(), cfg.MaxHomeLimit(), cfg.WarmupSeconds())
	}
	if cfg.PermissionOverridesEnabled() {
		t.Fatalf("reload did not disable overrides")
	}
}

func TestConfigNormalizesNegatives(t *testing.T) {
	cfg, _ := newTestConfig(t)
	if err := cfg.SetWarmupSeconds(-4); err != nil {
		t.Fatalf("SetWarmupSeconds: %v", err)
	}
	if cfg.WarmupSeconds() != 0 {
		t.Fatalf("negative warmup not clamped: %d", cfg.WarmupSeconds())
	}
	if cfg.WarmupDuration() != 0 {
		t.Fatalf("warmup duration = %v, want 0", cfg.WarmupDuration())
	}
}
