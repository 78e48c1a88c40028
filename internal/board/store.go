package board

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	DefaultFileName       = ".todoboard.json"
	DefaultSQLiteFileName = ".todoboard.db"
)

var ErrNotFound = errors.New("board: store not found")

// Store loads and saves a whole board.
type Store interface {
	Load() (*Board, error)
	Save(b *Board) error
}

// DefaultPath returns ~/.todoboard.json, or ~/.todoboard.db for sqlite.
func DefaultPath(driver string) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	if strings.EqualFold(strings.TrimSpace(driver), "sqlite") {
		return filepath.Join(home, DefaultSQLiteFileName), nil
	}
	return filepath.Join(home, DefaultFileName), nil
}

func OpenStore(driver, path string) (Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		p, err := DefaultPath(driver)
		if err != nil {
			return nil, err
		}
		path = p
	}

	switch strings.ToLower(strings.TrimSpace(driver)) {
	case "", "json":
		return JSONStore{Path: path}, nil
	case "sqlite":
		return SQLiteStore{Path: path}, nil
	default:
		return nil, fmt.Errorf("invalid store driver %q (expected json|sqlite)", driver)
	}
}

type JSONStore struct {
	Path string
}

func (s JSONStore) Load() (*Board, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var b Board
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("parse %s: %w", s.Path, err)
	}

	return &b, nil
}

func (s JSONStore) Save(b *Board) error {
	b.LastUpdate = time.Now()

	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return err
	}

	if dir := filepath.Dir(s.Path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(s.Path, data, 0644)
}

// LoadOrNew returns a fresh board when the store does not exist yet.
func LoadOrNew(s Store) (*Board, error) {
	b, err := s.Load()
	if errors.Is(err, ErrNotFound) {
		return NewBoard(), nil
	}
	return b, err
}
