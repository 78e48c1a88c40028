package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNew_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "todoboard.log")
	log, err := New(Config{Level: "debug", Encoding: "json", File: path})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	log.Debug("task added")
	_ = log.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "task added") {
		t.Fatalf("expected log line, got %q", data)
	}
}

func TestNew_EmptyFileIsNop(t *testing.T) {
	log, err := New(Config{})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if log.Core().Enabled(0) {
		t.Fatalf("expected no-op logger")
	}
}

func TestNew_BadLevel(t *testing.T) {
	if _, err := New(Config{Level: "loud", File: filepath.Join(t.TempDir(), "x.log")}); err == nil {
		t.Fatalf("expected error for invalid level")
	}
}
