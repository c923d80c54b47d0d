// Package store persists a finished timeline into DuckDB for ad hoc
// querying alongside the CSV output.
package store

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"

	"github.com/marcboeker/go-duckdb"

	"github.com/field-logger/driftnorm/internal/models"
)

// DuckStore writes normalized readings into a DuckDB file. One row per
// adjusted-UTC timestamp, mirroring the CSV columns; absent fields are
// stored as NULL.
type DuckStore struct {
	db     *sql.DB
	dbPath string
}

// NewDuckStore opens (or creates) the DuckDB file at dbPath and
// ensures the readings table exists.
func NewDuckStore(dbPath string) (*DuckStore, error) {
	connector, err := duckdb.NewConnector(dbPath, func(execer driver.ExecerContext) error {
		pragmas := []string{
			"PRAGMA memory_limit='512MB'",
			"PRAGMA threads=2",
			"PRAGMA enable_progress_bar=false",
		}
		for _, pragma := range pragmas {
			if _, err := execer.ExecContext(context.Background(), pragma, nil); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("creating DuckDB connector: %w", err)
	}

	db := sql.OpenDB(connector)

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS readings (
			adjusted_utc     VARCHAR PRIMARY KEY,
			adjusted_local   VARCHAR,
			original_utc     VARCHAR,
			temp             VARCHAR,
			light            VARCHAR,
			wets             VARCHAR,
			wetdry           VARCHAR,
			duration         VARCHAR,
			wet_temp_min     VARCHAR,
			wet_temp_max     VARCHAR,
			wet_temp_mean    VARCHAR,
			wet_temp_samples VARCHAR
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating readings table: %w", err)
	}

	return &DuckStore{db: db, dbPath: dbPath}, nil
}

// WriteTimeline inserts every reading in ascending time order inside
// one transaction. Returns the number of rows written.
func (s *DuckStore) WriteTimeline(tl *models.Timeline) (int, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO readings VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		tx.Rollback()
		return 0, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	count := 0
	for _, key := range tl.SortedKeys(false) {
		r := tl.Get(key)
		_, err := stmt.Exec(key, r.LocalTime, r.Time,
			r.Temp, r.Light, r.Wets, r.WetDry, r.Duration,
			r.WetTempMin, r.WetTempMax, r.WetTempMean, r.WetTempSamples)
		if err != nil {
			tx.Rollback()
			return 0, fmt.Errorf("inserting reading %s: %w", key, err)
		}
		count++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing readings: %w", err)
	}
	return count, nil
}

// Count returns the number of stored readings.
func (s *DuckStore) Count() (int, error) {
	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM readings").Scan(&n); err != nil {
		return 0, fmt.Errorf("counting readings: %w", err)
	}
	return n, nil
}

// Close releases the database handle.
func (s *DuckStore) Close() error {
	return s.db.Close()
}
