package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"benchlog/internal/model"

	_ "github.com/mattn/go-sqlite3"
)

// Database stores runs in a SQLite database.
type Database struct {
	db *sql.DB
}

// OpenDatabase opens (and migrates) the SQLite database at path.
func OpenDatabase(path string) (*Database, error) {
	if path == "" {
		return nil, model.ErrNoStorage
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	store := &Database{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate database: %w", err)
	}
	return store, nil
}

func (s *Database) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			run_id TEXT PRIMARY KEY,
			date_unix INTEGER NOT NULL,
			zone_offset INTEGER NOT NULL DEFAULT 0,
			branch TEXT NOT NULL DEFAULT '',
			context TEXT NOT NULL DEFAULT '',
			subjects INTEGER NOT NULL DEFAULT 0,
			iterations INTEGER NOT NULL DEFAULT 0,
			revolutions INTEGER NOT NULL DEFAULT 0,
			min_time REAL NOT NULL DEFAULT 0,
			mean_time REAL NOT NULL DEFAULT 0,
			max_time REAL NOT NULL DEFAULT 0,
			total_time REAL NOT NULL DEFAULT 0,
			mean_rel_stdev REAL NOT NULL DEFAULT 0
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_date ON runs(date_unix)`,
	}
	for _, m := range migrations {
		if _, err := s.db.Exec(m); err != nil {
			return err
		}
	}
	return nil
}

// History streams runs from a cursor ordered by date, most recent first.
func (s *Database) History() model.History {
	return func(yield func(model.RunRecord, error) bool) {
		rows, err := s.db.Query(`SELECT run_id, date_unix, zone_offset, branch, context,
			subjects, iterations, revolutions, min_time, mean_time, max_time,
			total_time, mean_rel_stdev
			FROM runs ORDER BY date_unix DESC, run_id DESC`)
		if err != nil {
			yield(model.RunRecord{}, fmt.Errorf("query runs: %w", err))
			return
		}
		defer rows.Close()

		for rows.Next() {
			var (
				run      model.RunRecord
				unixNano int64
				offset   int
			)
			if err := rows.Scan(
				&run.ID, &unixNano, &offset, &run.Branch, &run.Context,
				&run.Subjects, &run.Iterations, &run.Revolutions,
				&run.MinTime, &run.MeanTime, &run.MaxTime,
				&run.TotalTime, &run.MeanRelStDev,
			); err != nil {
				yield(model.RunRecord{}, fmt.Errorf("scan run: %w", err))
				return
			}
			run.Date = time.Unix(0, unixNano).In(zoneFor(offset))
			if !yield(run, nil) {
				return
			}
		}
		if err := rows.Err(); err != nil {
			yield(model.RunRecord{}, fmt.Errorf("read runs: %w", err))
		}
	}
}

// Save inserts run, replacing any run with the same id.
func (s *Database) Save(run model.RunRecord) (model.RunRecord, error) {
	run, err := prepare(run)
	if err != nil {
		return run, err
	}

	_, offset := run.Date.Zone()
	_, err = s.db.Exec(`INSERT OR REPLACE INTO runs (run_id, date_unix, zone_offset,
		branch, context, subjects, iterations, revolutions, min_time, mean_time,
		max_time, total_time, mean_rel_stdev)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Date.UnixNano(), offset, run.Branch, run.Context,
		run.Subjects, run.Iterations, run.Revolutions,
		run.MinTime, run.MeanTime, run.MaxTime, run.TotalTime, run.MeanRelStDev,
	)
	if err != nil {
		return run, fmt.Errorf("insert run %s: %w", run.ID, err)
	}
	return run, nil
}

// Close closes the database.
func (s *Database) Close() error {
	return s.db.Close()
}

func zoneFor(offset int) *time.Location {
	if offset == 0 {
		return time.UTC
	}
	return time.FixedZone("", offset)
}
