package board

import (
	"context"
	"database/sql"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteStore keeps the board in a single sqlite file. Save rewrites every
// row inside one transaction.
type SQLiteStore struct {
	Path string
}

func (s SQLiteStore) open(ctx context.Context) (*sql.DB, error) {
	if dir := filepath.Dir(s.Path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", s.Path)
	if err != nil {
		return nil, err
	}
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if err := migrateSQLite(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func migrateSQLite(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS meta (
			k TEXT PRIMARY KEY,
			v TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS tasks (
			id TEXT PRIMARY KEY,
			position INTEGER NOT NULL,
			title TEXT NOT NULL,
			category TEXT NOT NULL,
			created_at_unixms INTEGER NOT NULL,
			image_name TEXT,
			image_media_type TEXT,
			image_data BLOB
		);`,
		`CREATE INDEX IF NOT EXISTS tasks_position ON tasks(position);`,
	}
	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

func (s SQLiteStore) Load() (*Board, error) {
	if _, err := os.Stat(s.Path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	ctx := context.Background()
	db, err := s.open(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	b := NewBoard()
	if err := loadMeta(ctx, db, b); err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, `
		SELECT id, title, category, created_at_unixms, image_name, image_media_type, image_data
		FROM tasks ORDER BY position ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			t         Task
			createdMs int64
			imgName   sql.NullString
			imgType   sql.NullString
			imgData   []byte
		)
		if err := rows.Scan(&t.ID, &t.Title, &t.Category, &createdMs, &imgName, &imgType, &imgData); err != nil {
			return nil, err
		}
		t.CreatedAt = time.UnixMilli(createdMs)
		if imgType.Valid {
			t.Image = &Attachment{Name: imgName.String, MediaType: imgType.String, Data: imgData}
		}
		b.addTask(t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return b, nil
}

func loadMeta(ctx context.Context, db *sql.DB, b *Board) error {
	rows, err := db.QueryContext(ctx, `SELECT k, v FROM meta`)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return err
		}
		switch k {
		case "version":
			b.Version = v
		case "last_update_unixms":
			if ms, err := strconv.ParseInt(v, 10, 64); err == nil {
				b.LastUpdate = time.UnixMilli(ms)
			}
		}
	}
	return rows.Err()
}

func (s SQLiteStore) Save(b *Board) error {
	ctx := context.Background()
	db, err := s.open(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	b.LastUpdate = time.Now()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM tasks`); err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO tasks (id, position, title, category, created_at_unixms, image_name, image_media_type, image_data)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for pos, t := range b.AllTasks() {
		var imgName, imgType any
		var imgData []byte
		if t.Image != nil {
			imgName, imgType, imgData = t.Image.Name, t.Image.MediaType, t.Image.Data
		}
		if _, err := stmt.ExecContext(ctx, t.ID, pos, t.Title, string(t.Category), t.CreatedAt.UnixMilli(), imgName, imgType, imgData); err != nil {
			return err
		}
	}

	meta := map[string]string{
		"version":            b.Version,
		"last_update_unixms": strconv.FormatInt(b.LastUpdate.UnixMilli(), 10),
	}
	for k, v := range meta {
		if _, err := tx.ExecContext(ctx, `INSERT INTO meta (k, v) VALUES (?, ?) ON CONFLICT(k) DO UPDATE SET v = excluded.v`, k, v); err != nil {
			return err
		}
	}

	return tx.Commit()
}
