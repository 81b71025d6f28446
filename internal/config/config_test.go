package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/viper"
)

// isolate points the config directory at a temp HOME and resets viper.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	viper.Reset()
	t.Cleanup(viper.Reset)
	return home
}

func TestDefaults(t *testing.T) {
	isolate(t)
	Load()

	if got := Get(KeyLanguage); got != "cn" {
		t.Errorf("language = %q, want cn", got)
	}
	if !GetBool(KeyLintStaged) {
		t.Error("lint-staged should default to true")
	}
	if GetBool(KeySkipInstall) {
		t.Error("skip-install should default to false")
	}
}

func TestSetPersists(t *testing.T) {
	home := isolate(t)
	Load()

	if err := Set(KeyLanguage, "en"); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	if err := Set(KeyLintStaged, "false"); err != nil {
		t.Fatalf("Set() error: %v", err)
	}

	if _, err := os.Stat(filepath.Join(home, ".nxcz", "config.yaml")); err != nil {
		t.Fatalf("config file not written: %v", err)
	}

	viper.Reset()
	Load()
	if got := Get(KeyLanguage); got != "en" {
		t.Errorf("language after reload = %q, want en", got)
	}
	if GetBool(KeyLintStaged) {
		t.Error("lint-staged after reload = true, want false")
	}
}

func TestSetRejects(t *testing.T) {
	isolate(t)
	Load()

	if err := Set("mirror", "x"); !errors.Is(err, ErrUnknownKey) {
		t.Errorf("Set(mirror) error = %v, want ErrUnknownKey", err)
	}
	if err := Set(KeySkipFormat, "maybe"); err == nil {
		t.Error("Set(skip-format, maybe) succeeded")
	}
}

func TestEnvOverride(t *testing.T) {
	isolate(t)
	t.Setenv("NXCZ_WORKSPACE_TYPE", "plugin")
	t.Setenv("NXCZ_SKIP_INSTALL", "true")
	Load()

	if got := Get(KeyWorkspaceType); got != "plugin" {
		t.Errorf("workspace-type = %q, want plugin", got)
	}
	if !GetBool(KeySkipInstall) {
		t.Error("skip-install not overridden by environment")
	}
}

func TestLoadDotEnv(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	content := "NXCZ_LANGUAGE=en\nNXCZ_SKIP_FORMAT=true\n"
	if err := os.WriteFile(filepath.Join(dir, DotEnvFile), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	// Registered with t.Setenv so the variables are restored afterwards;
	// the pre-set value must win over the file.
	t.Setenv("NXCZ_LANGUAGE", "cn")
	t.Setenv("NXCZ_SKIP_FORMAT", "")
	os.Unsetenv("NXCZ_SKIP_FORMAT")

	if err := LoadDotEnv(dir); err != nil {
		t.Fatalf("LoadDotEnv() error: %v", err)
	}
	Load()

	if got := Get(KeyLanguage); got != "cn" {
		t.Errorf("language = %q, want the pre-set cn", got)
	}
	if !GetBool(KeySkipFormat) {
		t.Error("skip-format not read from .env")
	}
}

func TestLoadDotEnvMissing(t *testing.T) {
	if err := LoadDotEnv(t.TempDir()); err != nil {
		t.Errorf("LoadDotEnv() on empty dir = %v", err)
	}
}

func TestKeys(t *testing.T) {
	want := []string{"language", "lint-staged", "package-manager", "skip-format", "skip-install", "workspace-type"}
	if diff := cmp.Diff(want, Keys()); diff != "" {
		t.Errorf("Keys() mismatch (-want +got):\n%s", diff)
	}
}
