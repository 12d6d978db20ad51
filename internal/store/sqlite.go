package store

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"

	"github.com/Silmaen/EvenementLoto-sub001/assets"
	"github.com/Silmaen/EvenementLoto-sub001/internal/outcome"
)

var _ Store = (*SQLite)(nil)

// SQLite is a Store backed by a SQLite file.
type SQLite struct {
	db  *sql.DB
	now func() time.Time
}

// OpenSQLite opens (creating if missing) the database at path and applies
// the embedded migrations.
func OpenSQLite(path string) (*SQLite, error) {
	db, err := openDB(path)
	if err != nil {
		return nil, err
	}
	if err := migrate(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLite{db: db, now: time.Now}, nil
}

// openDB opens a SQLite file with busy timeout, WAL journaling and foreign keys.
// The parent directory is created for paths like ./data/loto.db.
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
	// one writer; the shell never runs concurrent sessions
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(`PRAGMA foreign_keys = ON; PRAGMA journal_mode = WAL;`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set pragmas: %w", err)
	}
	return db, nil
}

// migrate applies the embedded scripts not yet recorded in _migrations,
// each in its own transaction.
func migrate(db *sql.DB) error {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS _migrations (name TEXT PRIMARY KEY);`); err != nil {
		return fmt.Errorf("create _migrations: %w", err)
	}
	ms, err := assets.Migrations()
	if err != nil {
		return fmt.Errorf("load migrations: %w", err)
	}

	for _, m := range ms {
		var done int
		err := db.QueryRow(`SELECT 1 FROM _migrations WHERE name=?`, m.Name).Scan(&done)
		if err == nil {
			log.Debug().Str("migration", m.Name).Msg("already applied")
			continue
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("query _migrations: %w", err)
		}

		tx, err := db.Begin()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(m.SQL); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("apply %s: %w", m.Name, err)
		}
		if _, err := tx.Exec(`INSERT INTO _migrations(name) VALUES (?)`, m.Name); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record %s: %w", m.Name, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit %s: %w", m.Name, err)
		}
		log.Info().Str("migration", m.Name).Msg("applied")
	}
	return nil
}

// Save inserts r. The outcome is stored as its binary record; kind and
// winner id are duplicated in columns for querying.
func (s *SQLite) Save(ctx context.Context, r *Record) error {
	var buf bytes.Buffer
	if err := outcome.Write(&buf, r.Outcome); err != nil {
		return err
	}
	created := s.now().UTC()
	res, err := s.db.ExecContext(ctx, `
        INSERT INTO round_outcomes
            (kind, winner_id, winner_name, record, draws, sequence, started_at, finished_at, created_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		int(r.Outcome.Kind), int64(r.Outcome.WinnerID), r.WinnerName, buf.Bytes(), r.Draws, r.Sequence,
		formatTime(r.StartedAt), formatTime(r.FinishedAt), formatTime(created),
	)
	if err != nil {
		return fmt.Errorf("insert outcome: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("insert outcome: %w", err)
	}
	r.ID, r.CreatedAt = id, created
	return nil
}

const selectRecord = `
        SELECT id, winner_name, record, draws, sequence,
               COALESCE(started_at, ''), COALESCE(finished_at, ''), created_at
        FROM round_outcomes`

// Get loads one record by id.
func (s *SQLite) Get(ctx context.Context, id int64) (*Record, error) {
	row := s.db.QueryRowContext(ctx, selectRecord+` WHERE id=?`, id)
	r, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return r, nil
}

// List returns the latest records, newest first.
func (s *SQLite) List(ctx context.Context, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = defaultLimit
	}
	rows, err := s.db.QueryContext(ctx, selectRecord+` ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Record, 0, limit)
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *r)
	}
	return out, rows.Err()
}

// Close releases the database handle.
func (s *SQLite) Close() error { return s.db.Close() }

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(sc scanner) (*Record, error) {
	var (
		r                          Record
		blob                       []byte
		started, finished, created string
	)
	if err := sc.Scan(&r.ID, &r.WinnerName, &blob, &r.Draws, &r.Sequence, &started, &finished, &created); err != nil {
		return nil, err
	}
	o, err := outcome.Unmarshal(blob)
	if err != nil {
		return nil, fmt.Errorf("decode outcome %d: %w", r.ID, err)
	}
	r.Outcome = o
	r.StartedAt = parseTime(started)
	r.FinishedAt = parseTime(finished)
	r.CreatedAt = parseTime(created)
	return &r, nil
}

// formatTime stores zero times as NULL.
func formatTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.UTC().Format(time.RFC3339Nano)
}

// parseTime parses RFC3339 timestamps; on error returns zero time.
func parseTime(s string) time.Time {
	t, _ := time.Parse(time.RFC3339Nano, s)
	return t
}
