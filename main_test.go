package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/WillyV3/todoboard/internal/board"
)

func runCLI(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func isolate(t *testing.T) string {
	t.Helper()
	chdir(t, t.TempDir())
	t.Setenv("HOME", t.TempDir())
	return t.TempDir()
}

func TestAddCommand(t *testing.T) {
	for _, driver := range []string{"json", "sqlite"} {
		t.Run(driver, func(t *testing.T) {
			dir := isolate(t)
			storePath := filepath.Join(dir, "board")

			out, _, err := runCLI(t, "", "--driver", driver, "--store", storePath, "add", "Buy", "milk", "-c", "inprogress")
			if err != nil {
				t.Fatalf("add: %v", err)
			}
			if !strings.Contains(out, "Buy milk") {
				t.Fatalf("expected confirmation, got %q", out)
			}

			s, _ := board.OpenStore(driver, storePath)
			b, err := s.Load()
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			tasks := b.AllTasks()
			if len(tasks) != 1 || tasks[0].Title != "Buy milk" || tasks[0].Category != board.InProgress {
				t.Fatalf("unexpected tasks: %+v", tasks)
			}
		})
	}
}

func TestAddCommand_IgnoresNonImage(t *testing.T) {
	dir := isolate(t)
	storePath := filepath.Join(dir, "board.json")
	notes := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(notes, []byte("hello\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, errOut, err := runCLI(t, "", "--store", storePath, "add", "Read notes", "--image", notes)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if !strings.Contains(errOut, "Ignoring notes.txt") {
		t.Fatalf("expected ignore notice, got %q", errOut)
	}

	b, err := board.JSONStore{Path: storePath}.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := b.AllTasks(); len(got) != 1 || got[0].Image != nil {
		t.Fatalf("expected task without image, got %+v", got)
	}
}

func TestAddCommand_BlankTitle(t *testing.T) {
	dir := isolate(t)
	if _, _, err := runCLI(t, "", "--store", filepath.Join(dir, "b.json"), "add", "  "); err == nil {
		t.Fatalf("expected error for blank title")
	}
}

func TestSeedCommand(t *testing.T) {
	dir := isolate(t)
	storePath := filepath.Join(dir, "board.json")

	if _, _, err := runCLI(t, "", "--store", storePath, "seed"); err != nil {
		t.Fatalf("seed: %v", err)
	}
	b, err := board.JSONStore{Path: storePath}.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := len(b.AllTasks())

	// Existing board: answering no keeps it.
	if _, _, err := runCLI(t, "", "--store", storePath, "add", "extra"); err != nil {
		t.Fatalf("add: %v", err)
	}
	out, _, err := runCLI(t, "n\n", "--store", storePath, "seed")
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if !strings.Contains(out, "Cancelled.") {
		t.Fatalf("expected cancel, got %q", out)
	}
	b, _ = board.JSONStore{Path: storePath}.Load()
	if len(b.AllTasks()) != want+1 {
		t.Fatalf("expected board untouched, got %d tasks", len(b.AllTasks()))
	}
}

func TestListCommand(t *testing.T) {
	dir := isolate(t)
	storePath := filepath.Join(dir, "board.json")
	if _, _, err := runCLI(t, "", "--store", storePath, "add", "Walk dog"); err != nil {
		t.Fatalf("add: %v", err)
	}
	out, _, err := runCLI(t, "", "--store", storePath, "list")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.Contains(out, "Todo (1)") || !strings.Contains(out, "Walk dog") {
		t.Fatalf("unexpected list output: %q", out)
	}
}

func TestAddCommand_SQLiteDefaultPath(t *testing.T) {
	isolate(t)
	home := os.Getenv("HOME")

	// A JSON board in the default location must not be opened as a database.
	if _, _, err := runCLI(t, "", "add", "json task"); err != nil {
		t.Fatalf("json add: %v", err)
	}
	if _, _, err := runCLI(t, "", "--driver", "sqlite", "add", "sqlite task"); err != nil {
		t.Fatalf("sqlite add: %v", err)
	}

	b, err := board.SQLiteStore{Path: filepath.Join(home, board.DefaultSQLiteFileName)}.Load()
	if err != nil {
		t.Fatalf("load sqlite: %v", err)
	}
	if got := b.AllTasks(); len(got) != 1 || got[0].Title != "sqlite task" {
		t.Fatalf("unexpected sqlite tasks: %+v", got)
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
