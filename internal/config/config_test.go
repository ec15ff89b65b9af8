package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "config.yaml"))
	if err != nil {
		t.Fatalf("a missing config file must not error: %v", err)
	}
	if cfg.APIPort != 8765 {
		t.Errorf("expected default port 8765, got %d", cfg.APIPort)
	}
	if cfg.DisableFallback || cfg.ClearHiddenFieldValues {
		t.Error("policy flags must default to off")
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "library_dir: /tmp/biblioteca\nclear_hidden_field_values: true\napi_port: 9000\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LibraryDir != "/tmp/biblioteca" {
		t.Errorf("unexpected library dir %q", cfg.LibraryDir)
	}
	if !cfg.ClearHiddenFieldValues {
		t.Error("clear_hidden_field_values should be set")
	}
	if cfg.APIPort != 9000 {
		t.Errorf("unexpected port %d", cfg.APIPort)
	}
}

func TestEnvironmentOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("library_dir: /tmp/do-arquivo\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("REVISA_LIBRARY_DIR", "/tmp/do-ambiente")
	t.Setenv("REVISA_DISABLE_FALLBACK", "true")
	t.Setenv("REVISA_API_PORT", "9100")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LibraryDir != "/tmp/do-ambiente" {
		t.Errorf("environment should win over the file, got %q", cfg.LibraryDir)
	}
	if !cfg.DisableFallback {
		t.Error("REVISA_DISABLE_FALLBACK should apply")
	}
	if cfg.APIPort != 9100 {
		t.Errorf("unexpected port %d", cfg.APIPort)
	}
}

func TestPathLivesInConfigDir(t *testing.T) {
	dir, err := Dir()
	if err != nil {
		t.Fatalf("Dir: %v", err)
	}
	if filepath.Base(dir) != ".revisa" {
		t.Errorf("unexpected config dir %q", dir)
	}

	path, err := Path()
	if err != nil {
		t.Fatalf("Path: %v", err)
	}
	if path != filepath.Join(dir, "config.yaml") {
		t.Errorf("config file should live in the config dir, got %q", path)
	}
}

func TestMalformedFileErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("library_dir: [unclosed"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("a malformed config file must error")
	}
}
