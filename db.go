// db.go
//
// SQLite-backed solve history.
// Responsibilities:
//   - Opening the SQLite database with safe defaults (WAL, busy timeout,
//     foreign keys).
//   - Applying embedded migrations from sql/*.sql (idempotent, recorded
//     in _migrations).
//   - Implementing store.SolveHistory for the serve and solve commands.
//
// Note: migrations are embedded in the binary (this ships as a single
// CLI), unlike a deployment that reads them from disk.

package main

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle-solver/internal/store"
)

//go:embed sql/*.sql
var migrationsFS embed.FS

// openDB opens (and creates if missing) a SQLite database file.
//
//   - Ensures the parent directory exists for relative DSNs
//     (e.g. ./data/solver.db).
//   - Configures busy timeout and WAL journaling mode.
//   - Enforces foreign keys.
func openDB(dsn string) (*sql.DB, error) {
	dir := filepath.Dir(dsn)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite3", dsn+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(`PRAGMA foreign_keys = ON; PRAGMA journal_mode = WAL;`); err != nil {
		return nil, fmt.Errorf("set pragmas: %w", err)
	}
	return db, nil
}

// migrate applies the embedded sql/*.sql files in lexical order, each in
// its own transaction, recording applied names in _migrations.
func migrate(db *sql.DB) error {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS _migrations (name TEXT PRIMARY KEY);`); err != nil {
		return fmt.Errorf("create _migrations: %w", err)
	}

	entries, err := migrationsFS.ReadDir("sql")
	if err != nil {
		return fmt.Errorf("read migrations: %w", err)
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	for _, name := range names {
		var done int
		err := db.QueryRow(`SELECT 1 FROM _migrations WHERE name=?`, name).Scan(&done)
		if err == nil {
			log.Debug().Str("migration", name).Msg("already applied")
			continue
		}
		if err != sql.ErrNoRows {
			return fmt.Errorf("query _migrations: %w", err)
		}

		sqlBytes, err := migrationsFS.ReadFile("sql/" + name)
		if err != nil {
			return fmt.Errorf("read %s: %w", name, err)
		}

		tx, err := db.Begin()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(string(sqlBytes)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("apply %s: %w", name, err)
		}
		if _, err := tx.Exec(`INSERT INTO _migrations(name) VALUES (?)`, name); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record %s: %w", name, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit %s: %w", name, err)
		}
		log.Info().Str("migration", name).Msg("applied")
	}
	return nil
}

// dbHistory implements store.SolveHistory on SQLite.
type dbHistory struct {
	db *sql.DB
}

// newDBHistory opens the history database and applies migrations.
func newDBHistory(dsn string) (*dbHistory, error) {
	db, err := openDB(dsn)
	if err != nil {
		return nil, err
	}
	if err := migrate(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &dbHistory{db: db}, nil
}

func (h *dbHistory) Close() error { return h.db.Close() }

// InsertSolve records a finished solve. A re-solved session (reset, then
// finished again) replaces its earlier row.
func (h *dbHistory) InsertSolve(ctx context.Context, rec store.SolveRecord) error {
	solved := 0
	if rec.Solved {
		solved = 1
	}
	_, err := h.db.ExecContext(ctx, `
        INSERT OR REPLACE INTO solves
            (id, mode, steps, solved, answer, started_at, finished_at)
        VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Mode, rec.Steps, solved, rec.Answer,
		rec.StartedAt.UTC().Format(time.RFC3339),
		rec.FinishedAt.UTC().Format(time.RFC3339),
	)
	return err
}

// RecentSolves returns the most recently finished solves, newest first.
func (h *dbHistory) RecentSolves(ctx context.Context, limit int) ([]store.SolveRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := h.db.QueryContext(ctx, `
        SELECT id, mode, steps, solved, answer, started_at, finished_at
        FROM solves
        ORDER BY finished_at DESC
        LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]store.SolveRecord, 0, limit)
	for rows.Next() {
		var r store.SolveRecord
		var solved int
		var started, finished string
		if err := rows.Scan(&r.ID, &r.Mode, &r.Steps, &solved, &r.Answer, &started, &finished); err != nil {
			return nil, err
		}
		r.Solved = solved == 1
		r.StartedAt, _ = time.Parse(time.RFC3339, started)
		r.FinishedAt, _ = time.Parse(time.RFC3339, finished)
		out = append(out, r)
	}
	return out, rows.Err()
}
