package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Store.Driver != "json" {
		t.Fatalf("expected json driver, got %q", cfg.Store.Driver)
	}
	if cfg.Store.Path != "" {
		t.Fatalf("expected store path left to the driver, got %q", cfg.Store.Path)
	}
	if !cfg.Compose.ResetDraft {
		t.Fatalf("expected reset_draft default true")
	}
	if cfg.Compose.MaxAttachmentBytes != 10*1024*1024 {
		t.Fatalf("unexpected max attachment bytes %d", cfg.Compose.MaxAttachmentBytes)
	}
	if cfg.Logger.File != "" {
		t.Fatalf("expected logging disabled by default, got %q", cfg.Logger.File)
	}
}

func TestLoad_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	body := `
store:
  driver: sqlite
  path: /tmp/board.sqlite
compose:
  reset_draft: false
logger:
  level: debug
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("TODOBOARD_LOGGER_ENCODING", "console")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Store.Driver != "sqlite" || cfg.Store.Path != "/tmp/board.sqlite" {
		t.Fatalf("unexpected store config: %+v", cfg.Store)
	}
	if cfg.Compose.ResetDraft {
		t.Fatalf("expected reset_draft=false from file")
	}
	if cfg.Logger.Level != "debug" || cfg.Logger.Encoding != "console" {
		t.Fatalf("unexpected logger config: %+v", cfg.Logger)
	}
}

func TestLoad_RejectsBadDriver(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv("TODOBOARD_STORE_DRIVER", "postgres")

	if _, err := Load(""); err == nil {
		t.Fatalf("expected error for unknown driver")
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("expected error for missing explicit config")
	}
}

// chdir changes the working directory for the test and restores it on cleanup.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatalf("restore cwd: %v", err)
		}
	})
}
