package repository

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

type SQLiteDB struct {
	db *sql.DB
	store
}

func NewSQLiteDB(path string) (*SQLiteDB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("error while pinging database: %w", err)
	}

	// Serialize writers; sqlite allows only one write transaction at a
	// time and the CAS decrement depends on it.
	db.SetMaxOpenConns(1)

	s := &SQLiteDB{
		db:    db,
		store: store{q: db},
	}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("error while migrating to database: %w", err)
	}

	return s, nil
}

func (s *SQLiteDB) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS predictions (
			id TEXT PRIMARY KEY,
			disaster_type TEXT NOT NULL,
			region TEXT NOT NULL,
			confidence REAL NOT NULL,
			latitude REAL NOT NULL,
			longitude REAL NOT NULL,
			radius_km REAL NOT NULL,
			predicted_onset DATETIME NOT NULL,
			severity INTEGER NOT NULL,
			affected_population INTEGER NOT NULL,
			explanation TEXT,
			created_at DATETIME NOT NULL
		);

		CREATE TABLE IF NOT EXISTS resources (
			resource_type TEXT PRIMARY KEY,
			total_quantity INTEGER NOT NULL,
			available_quantity INTEGER NOT NULL,
			CHECK (available_quantity >= 0 AND available_quantity <= total_quantity)
		);

		CREATE TABLE IF NOT EXISTS deployments (
			id TEXT PRIMARY KEY,
			prediction_id TEXT NOT NULL,
			resource_type TEXT NOT NULL,
			quantity INTEGER NOT NULL,
			target_region TEXT NOT NULL,
			status TEXT NOT NULL,
			eta_hours INTEGER NOT NULL,
			priority TEXT NOT NULL,
			created_at DATETIME NOT NULL,
			UNIQUE (prediction_id, resource_type)
		);

		CREATE TABLE IF NOT EXISTS alerts (
			id TEXT PRIMARY KEY,
			prediction_id TEXT,
			phone TEXT NOT NULL,
			alert_type TEXT NOT NULL,
			message TEXT NOT NULL,
			language TEXT NOT NULL,
			status TEXT NOT NULL,
			created_at DATETIME NOT NULL
		);

		CREATE TABLE IF NOT EXISTS hospitals (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			region TEXT NOT NULL,
			latitude REAL NOT NULL,
			longitude REAL NOT NULL,
			total_beds INTEGER NOT NULL,
			available_beds INTEGER NOT NULL,
			total_icu INTEGER NOT NULL,
			available_icu INTEGER NOT NULL,
			ventilators INTEGER NOT NULL
		);

		CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			role TEXT NOT NULL,
			phone TEXT NOT NULL,
			language TEXT NOT NULL,
			region TEXT NOT NULL,
			blood_type TEXT,
			created_at DATETIME NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_predictions_severity ON predictions(severity);
		CREATE INDEX IF NOT EXISTS idx_predictions_region ON predictions(region);
		CREATE INDEX IF NOT EXISTS idx_deployments_created_at ON deployments(created_at);
		CREATE INDEX IF NOT EXISTS idx_alerts_created_at ON alerts(created_at);
		CREATE INDEX IF NOT EXISTS idx_users_region ON users(region);
  	`

	_, err := s.db.Exec(schema)
	return err
}

// Allocation runs fn against a transaction-backed store. The engine's
// reads, CAS decrements and deployment inserts commit as one unit.
func (s *SQLiteDB) Allocation(ctx context.Context, fn func(AllocationStore) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("error beginning allocation tx: %w", err)
	}

	if err := fn(&store{q: tx}); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("error committing allocation tx: %w", err)
	}
	return nil
}

func (s *SQLiteDB) Close() error {
	return s.db.Close()
}
