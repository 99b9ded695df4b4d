// Package store persists generated call tables to SQLite.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"synth911/models"

	_ "modernc.org/sqlite"
)

// Store writes call tables to a SQLite database file.
type Store struct {
	db     *sql.DB
	dbPath string
}

// Open creates or opens the database at dbPath and ensures the schema.
func Open(dbPath string) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &Store{db: db, dbPath: dbPath}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.dbPath
}

func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		run_id TEXT PRIMARY KEY,
		locale TEXT NOT NULL,
		seed TEXT NOT NULL,
		records INTEGER NOT NULL,
		created_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS calls (
		run_id TEXT NOT NULL,
		call_id TEXT NOT NULL,
		agency TEXT NOT NULL,
		event_time TEXT NOT NULL,
		day_of_year INTEGER NOT NULL,
		week_no INTEGER NOT NULL,
		hour INTEGER NOT NULL,
		day_night TEXT NOT NULL,
		dow TEXT NOT NULL,
		shift TEXT NOT NULL,
		shift_part TEXT NOT NULL,
		problem TEXT NOT NULL,
		address TEXT NOT NULL,
		priority_number INTEGER NOT NULL,
		call_taker TEXT NOT NULL,
		call_reception TEXT NOT NULL,
		dispatcher TEXT NOT NULL,
		queue_time INTEGER NOT NULL,
		dispatch_time INTEGER NOT NULL,
		phone_time INTEGER NOT NULL,
		ack_time INTEGER NOT NULL,
		enroute_time INTEGER NOT NULL,
		on_scene_time INTEGER NOT NULL,
		process_time INTEGER NOT NULL,
		total_time INTEGER NOT NULL,
		time_call_queued TEXT NOT NULL,
		time_call_dispatched TEXT NOT NULL,
		time_call_acknowledged TEXT NOT NULL,
		time_call_disconnected TEXT NOT NULL,
		time_unit_enroute TEXT NOT NULL,
		time_call_closed TEXT NOT NULL,
		disposition TEXT NOT NULL,
		PRIMARY KEY (run_id, call_id),
		FOREIGN KEY (run_id) REFERENCES runs(run_id)
	);
	CREATE INDEX IF NOT EXISTS idx_calls_event_time ON calls(event_time);
	CREATE INDEX IF NOT EXISTS idx_calls_agency ON calls(agency);
	`
	_, err := s.db.Exec(schema)
	return err
}

const insertCall = `INSERT INTO calls (
	run_id, call_id, agency, event_time, day_of_year, week_no, hour, day_night, dow,
	shift, shift_part, problem, address, priority_number, call_taker, call_reception,
	dispatcher, queue_time, dispatch_time, phone_time, ack_time, enroute_time,
	on_scene_time, process_time, total_time, time_call_queued, time_call_dispatched,
	time_call_acknowledged, time_call_disconnected, time_unit_enroute, time_call_closed,
	disposition
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

// SaveTable writes a run and all of its records in one transaction.
func (s *Store) SaveTable(ctx context.Context, table *models.Table) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (run_id, locale, seed, records, created_at) VALUES (?, ?, ?, ?, ?)`,
		table.RunID, table.Locale, fmt.Sprintf("%d", table.Seed), len(table.Records), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to insert run %s: %w", table.RunID, err)
	}

	stmt, err := tx.PrepareContext(ctx, insertCall)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	ts := func(t time.Time) string { return t.Format(models.TimestampLayout) }
	for _, r := range table.Records {
		_, err := stmt.ExecContext(ctx,
			table.RunID, r.CallID, string(r.Agency), ts(r.EventTime), r.DayOfYear, r.WeekNo, r.Hour,
			string(r.DayNight), r.DOW, string(r.Shift), string(r.ShiftPart), r.Problem, r.Address,
			r.PriorityNumber, r.CallTaker, r.CallReception, r.Dispatcher,
			r.QueueTime, r.DispatchTime, r.PhoneTime, r.AckTime, r.EnrouteTime, r.OnSceneTime,
			r.ProcessTime, r.TotalTime,
			ts(r.CallQueued), ts(r.CallDispatched), ts(r.CallAcknowledged),
			ts(r.CallDisconnected), ts(r.UnitEnroute), ts(r.CallClosed),
			r.Disposition,
		)
		if err != nil {
			return fmt.Errorf("failed to insert call %s: %w", r.CallID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit run %s: %w", table.RunID, err)
	}
	return nil
}

// CountCalls returns the number of calls stored for a run, grouped by agency.
func (s *Store) CountCalls(ctx context.Context, runID string) (map[models.Agency]int, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT agency, COUNT(*) FROM calls WHERE run_id = ? GROUP BY agency`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to count calls: %w", err)
	}
	defer rows.Close()

	counts := make(map[models.Agency]int)
	for rows.Next() {
		var agency string
		var n int
		if err := rows.Scan(&agency, &n); err != nil {
			return nil, fmt.Errorf("failed to scan count: %w", err)
		}
		counts[models.Agency(agency)] = n
	}
	return counts, rows.Err()
}

// CallIDs returns the call identifiers of a run in event time order.
func (s *Store) CallIDs(ctx context.Context, runID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT call_id FROM calls WHERE run_id = ? ORDER BY event_time, call_id`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query calls: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan call: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
