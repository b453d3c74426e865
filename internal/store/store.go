// Package store provides the storage drivers that persist benchmark runs.
package store

import (
	"fmt"
	"path/filepath"
	"time"

	"benchlog/internal/model"

	"github.com/google/uuid"
)

const (
	// DriverJSON stores one JSON document per run in a directory tree.
	DriverJSON = "json"
	// DriverSQLite stores runs in a SQLite database file.
	DriverSQLite = "sqlite"
)

func init() {
	model.RegisterDriver(DriverJSON, func(path string) (model.Storage, error) {
		return OpenArchive(path)
	})
	model.RegisterDriver(DriverSQLite, func(path string) (model.Storage, error) {
		return OpenDatabase(path)
	})
}

// prepare fills in the run id and date of a run about to be stored.
func prepare(run model.RunRecord) (model.RunRecord, error) {
	if run.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return run, fmt.Errorf("generate run id: %w", err)
		}
		run.ID = id.String()
	}
	if filepath.Base(run.ID) != run.ID || run.ID == "." || run.ID == ".." {
		return run, fmt.Errorf("invalid run id %q", run.ID)
	}
	if run.Date.IsZero() {
		run.Date = time.Now()
	}
	return run, nil
}
