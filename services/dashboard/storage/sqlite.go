package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
	logger "github.com/multiversx/mx-chain-logger-go"
	"github.com/plantops/maintenance-kpi-monitoring/services/dashboard/common"
	"github.com/plantops/maintenance-kpi-monitoring/services/dashboard/dataset"
)

var log = logger.GetOrCreate("storage")

const inMemoryPath = ":memory:"

// sqliteStorage holds the current session dataset. With the default :memory:
// path nothing survives the process, matching the session-only retention rule.
type sqliteStorage struct {
	db *sql.DB
}

// NewSQLiteStorage creates the database and schema
func NewSQLiteStorage(dbPath string) (*sqliteStorage, error) {
	if dbPath != inMemoryPath {
		err := prepareDirectories(dbPath)
		if err != nil {
			return nil, fmt.Errorf("failed to create initial empty DB file: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if dbPath == inMemoryPath {
		// every new pool connection would get its own empty in-memory database
		db.SetMaxOpenConns(1)
	}

	err = createSchema(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &sqliteStorage{
		db: db,
	}, nil
}

func prepareDirectories(dbPath string) error {
	return os.MkdirAll(filepath.Dir(dbPath), os.ModePerm)
}

func createSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS equipments (
		id            TEXT    NOT NULL PRIMARY KEY,
		name          TEXT    NOT NULL,
		category      TEXT    NOT NULL,
		status        TEXT    NOT NULL,
		criticality   TEXT    NOT NULL DEFAULT '',
		display_order INTEGER NOT NULL DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS monthly_records (
		equipment_id     TEXT    NOT NULL REFERENCES equipments(id) ON DELETE CASCADE,
		month            TEXT    NOT NULL,
		month_index      INTEGER NOT NULL,
		mtbf             REAL    NOT NULL DEFAULT 0,
		mttr             REAL    NOT NULL DEFAULT 0,
		availability     REAL    NOT NULL DEFAULT 0,
		performance      REAL    NOT NULL DEFAULT 0,
		quality          REAL    NOT NULL DEFAULT 0,
		cost             REAL    NOT NULL DEFAULT 0,
		preventive_count INTEGER NOT NULL DEFAULT 0,
		corrective_count INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (equipment_id, month)
	);

	CREATE INDEX IF NOT EXISTS idx_monthly_records_equipment ON monthly_records(equipment_id);
	`

	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	_, _ = db.Exec("PRAGMA foreign_keys = ON;")

	return nil
}

// ReplaceEquipments swaps the whole held dataset in one transaction, last write wins.
// The UPSERT on (equipment_id, month) enforces at most one record per month.
func (s *sqliteStorage) ReplaceEquipments(ctx context.Context, equipments []common.Equipment) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, "DELETE FROM monthly_records")
	if err != nil {
		return fmt.Errorf("failed to clear monthly records: %w", err)
	}
	_, err = tx.ExecContext(ctx, "DELETE FROM equipments")
	if err != nil {
		return fmt.Errorf("failed to clear equipments: %w", err)
	}

	for displayOrder, equipment := range equipments {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO equipments (id, name, category, status, criticality, display_order)
			VALUES (?, ?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				name=excluded.name,
				category=excluded.category,
				status=excluded.status,
				criticality=excluded.criticality
		`, equipment.ID, equipment.Name, equipment.Category, equipment.Status, equipment.Criticality, displayOrder)
		if err != nil {
			return fmt.Errorf("failed to insert equipment %s: %w", equipment.ID, err)
		}

		for _, record := range equipment.History {
			_, err = tx.ExecContext(ctx, `
				INSERT INTO monthly_records (equipment_id, month, month_index, mtbf, mttr, availability, performance, quality, cost, preventive_count, corrective_count)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
				ON CONFLICT(equipment_id, month) DO UPDATE SET
					month_index=excluded.month_index,
					mtbf=excluded.mtbf,
					mttr=excluded.mttr,
					availability=excluded.availability,
					performance=excluded.performance,
					quality=excluded.quality,
					cost=excluded.cost,
					preventive_count=excluded.preventive_count,
					corrective_count=excluded.corrective_count
			`, equipment.ID, record.Month, dataset.MonthIndex(record.Month),
				record.MTBF, record.MTTR, record.Availability, record.Performance,
				record.Quality, record.Cost, record.PreventiveCount, record.CorrectiveCount)
			if err != nil {
				return fmt.Errorf("failed to insert record %s/%s: %w", equipment.ID, record.Month, err)
			}
		}
	}

	err = tx.Commit()
	if err != nil {
		return err
	}

	log.Debug("dataset replaced", "equipments", len(equipments))

	return nil
}

// GetEquipments returns the held dataset with each history in canonical month order
func (s *sqliteStorage) GetEquipments(ctx context.Context) ([]common.Equipment, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, category, status, criticality
		FROM equipments
		ORDER BY display_order
	`)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	equipments := make([]common.Equipment, 0)
	for rows.Next() {
		var equipment common.Equipment
		err = rows.Scan(&equipment.ID, &equipment.Name, &equipment.Category, &equipment.Status, &equipment.Criticality)
		if err != nil {
			return nil, err
		}

		equipments = append(equipments, equipment)
	}
	err = rows.Err()
	if err != nil {
		return nil, err
	}

	for i := range equipments {
		equipments[i].History, err = s.getHistory(ctx, equipments[i].ID)
		if err != nil {
			return nil, err
		}
	}

	return equipments, nil
}

func (s *sqliteStorage) getHistory(ctx context.Context, equipmentID string) ([]common.MonthlyRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT month, mtbf, mttr, availability, performance, quality, cost, preventive_count, corrective_count
		FROM monthly_records
		WHERE equipment_id = ?
		ORDER BY month_index
	`, equipmentID)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = rows.Close()
	}()

	history := make([]common.MonthlyRecord, 0)
	for rows.Next() {
		var record common.MonthlyRecord
		err = rows.Scan(&record.Month, &record.MTBF, &record.MTTR, &record.Availability,
			&record.Performance, &record.Quality, &record.Cost,
			&record.PreventiveCount, &record.CorrectiveCount)
		if err != nil {
			return nil, err
		}

		history = append(history, record)
	}

	return history, rows.Err()
}

// Close shuts down the database connection
func (s *sqliteStorage) Close() error {
	return s.db.Close()
}

// IsInterfaceNil returns true if the value under the interface is nil
func (s *sqliteStorage) IsInterfaceNil() bool {
	return s == nil
}
