package app

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ogefest/fbrowser/internal/logging"
	"github.com/ogefest/fbrowser/models"

	_ "modernc.org/sqlite"
)

// Visit is one row of the directory history.
type Visit struct {
	Path       string
	LastVisit  time.Time
	VisitCount int
	Entries    int
}

// History keeps visited directories and the outcome of mutation commands
// in a SQLite database.
type History struct {
	db *sql.DB
}

// OpenHistory opens (creating if needed) the database at dbPath.
func OpenHistory(dbPath string) (*History, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}
	if _, err := db.Exec(`PRAGMA journal_mode = WAL;`); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set journal_mode = WAL: %w", err)
	}
	if err := RunMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate history db: %w", err)
	}

	return &History{db: db}, nil
}

func (h *History) Close() error {
	return h.db.Close()
}

// RecordVisit stores a committed listing of path.
func (h *History) RecordVisit(ctx context.Context, path string, entries int) error {
	_, err := h.db.ExecContext(ctx, `
        INSERT INTO visits(path, last_visit, visit_count, entries)
        VALUES (?, ?, 1, ?)
        ON CONFLICT(path) DO UPDATE SET
            last_visit=excluded.last_visit,
            visit_count=visit_count + 1,
            entries=excluded.entries
    `, path, time.Now().UnixNano(), entries)
	if err != nil {
		return err
	}
	return h.setMetadata(ctx, "last_path", path)
}

// Recent returns up to limit directories, most recently visited first.
func (h *History) Recent(ctx context.Context, limit int) ([]Visit, error) {
	rows, err := h.db.QueryContext(ctx, `
        SELECT path, last_visit, visit_count, entries
        FROM visits
        ORDER BY last_visit DESC
        LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var visits []Visit
	for rows.Next() {
		var v Visit
		var ts int64
		if err := rows.Scan(&v.Path, &ts, &v.VisitCount, &v.Entries); err != nil {
			return nil, err
		}
		v.LastVisit = time.Unix(0, ts)
		visits = append(visits, v)
	}
	return visits, rows.Err()
}

// LastVisited returns the directory of the most recent committed listing,
// or "" when there is none.
func (h *History) LastVisited(ctx context.Context) (string, error) {
	var path string
	err := h.db.QueryRowContext(ctx, `SELECT value FROM metadata WHERE key='last_path'`).Scan(&path)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return path, err
}

// Record implements Journal. Load outcomes are already covered by visits,
// so only mutations are stored.
func (h *History) Record(op models.Operation) {
	if op.Op == models.OpLoad {
		return
	}
	if err := h.insertOperation(context.Background(), op); err != nil {
		logging.L().Warn("failed to record operation", logging.String("op", op.Op), logging.Err(err))
	}
}

func (h *History) insertOperation(ctx context.Context, op models.Operation) error {
	_, err := h.db.ExecContext(ctx, `
        INSERT INTO operations(op, path, target, ok, error, at)
        VALUES (?, ?, ?, ?, ?, ?)
    `, op.Op, op.Path, op.Target, boolToInt(op.OK), op.Error, op.At.UnixNano())
	return err
}

// Operations returns up to limit recorded mutations, newest first.
func (h *History) Operations(ctx context.Context, limit int) ([]models.Operation, error) {
	rows, err := h.db.QueryContext(ctx, `
        SELECT op, path, COALESCE(target, ''), ok, COALESCE(error, ''), at
        FROM operations
        ORDER BY at DESC, id DESC
        LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ops []models.Operation
	for rows.Next() {
		var op models.Operation
		var ok int
		var at int64
		if err := rows.Scan(&op.Op, &op.Path, &op.Target, &ok, &op.Error, &at); err != nil {
			return nil, err
		}
		op.OK = ok != 0
		op.At = time.Unix(0, at)
		ops = append(ops, op)
	}
	return ops, rows.Err()
}

// Track records every committed listing of m until the returned function
// is called.
func (h *History) Track(m *Model) (stop func()) {
	return m.Subscribe(func(e Event) {
		if e.Type != EventListingChanged {
			return
		}
		if err := h.RecordVisit(context.Background(), e.Path, e.Rows); err != nil {
			logging.L().Warn("failed to record visit", logging.String("path", e.Path), logging.Err(err))
		}
	})
}

func (h *History) setMetadata(ctx context.Context, key, value string) error {
	_, err := h.db.ExecContext(ctx, `
        INSERT INTO metadata(key, value)
        VALUES (?, ?)
        ON CONFLICT(key) DO UPDATE SET value=excluded.value
    `, key, value)
	return err
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
