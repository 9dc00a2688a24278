// Package history records scenario runs in a SQLite database.
package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/funvibe/overload/internal/scenario"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id         TEXT PRIMARY KEY,
	scenario   TEXT NOT NULL,
	started_at TEXT NOT NULL,
	passed     INTEGER NOT NULL,
	failed     INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS results (
	run_id  TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
	idx     INTEGER NOT NULL,
	name    TEXT NOT NULL,
	kind    TEXT NOT NULL,
	outcome TEXT NOT NULL,
	ok      INTEGER NOT NULL,
	PRIMARY KEY (run_id, idx)
);
CREATE INDEX IF NOT EXISTS runs_started_at ON runs(started_at);
`

// timeLayout is fixed-width so that stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// Run is one recorded execution of a scenario.
type Run struct {
	ID        string
	Scenario  string
	StartedAt time.Time
	Passed    int
	Failed    int
	Results   []Entry
}

// Entry is the recorded outcome of one check.
type Entry struct {
	Index   int
	Name    string
	Kind    string
	Outcome string
	OK      bool
}

// NewRun builds a run record from evaluated results. The id is left empty
// and assigned by Record.
func NewRun(sc *scenario.Scenario, results []scenario.Result, startedAt time.Time) *Run {
	run := &Run{Scenario: sc.Name, StartedAt: startedAt}
	run.Passed, run.Failed = scenario.Summary(results)
	for i := range results {
		r := &results[i]
		run.Results = append(run.Results, Entry{
			Index:   r.Case.Index,
			Name:    r.Case.DisplayName(),
			Kind:    r.Case.Kind.String(),
			Outcome: r.Outcome(),
			OK:      r.OK,
		})
	}
	return run
}

// ErrUnknownRun reports a run id that is not in the history.
var ErrUnknownRun = errors.New("unknown run")

// Store is a run history backed by a SQLite database file.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the history database at path.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening history %s: %w", path, err)
	}
	// SQLite allows a single writer; one connection keeps pragmas consistent.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("configuring history %s: %w", path, err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating history %s: %w", path, err)
	}
	return &Store{db: db}, nil
}

// Close releases the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Record stores run and its entries in one transaction. A new id is
// assigned when run.ID is empty.
func (s *Store) Record(ctx context.Context, run *Run) error {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("recording run: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, scenario, started_at, passed, failed) VALUES (?, ?, ?, ?, ?)`,
		run.ID, run.Scenario, run.StartedAt.UTC().Format(timeLayout), run.Passed, run.Failed)
	if err != nil {
		return fmt.Errorf("recording run %s: %w", run.ID, err)
	}

	for _, e := range run.Results {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO results (run_id, idx, name, kind, outcome, ok) VALUES (?, ?, ?, ?, ?, ?)`,
			run.ID, e.Index, e.Name, e.Kind, e.Outcome, boolToInt(e.OK))
		if err != nil {
			return fmt.Errorf("recording result %d of run %s: %w", e.Index, run.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("recording run %s: %w", run.ID, err)
	}
	return nil
}

// Runs returns up to limit runs, newest first, without their entries.
// A limit of zero or less returns every run.
func (s *Store) Runs(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, scenario, started_at, passed, failed FROM runs ORDER BY started_at DESC, rowid DESC LIMIT ?`,
		limit)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		var started string
		if err := rows.Scan(&run.ID, &run.Scenario, &started, &run.Passed, &run.Failed); err != nil {
			return nil, fmt.Errorf("listing runs: %w", err)
		}
		if run.StartedAt, err = time.Parse(timeLayout, started); err != nil {
			return nil, fmt.Errorf("run %s: bad timestamp %q: %w", run.ID, started, err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	return runs, nil
}

// Entries returns the recorded checks of one run in check order.
// It returns an error wrapping ErrUnknownRun when no run has that id.
func (s *Store) Entries(ctx context.Context, runID string) ([]Entry, error) {
	var exists int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM runs WHERE id = ?`, runID).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w %q", ErrUnknownRun, runID)
	}
	if err != nil {
		return nil, fmt.Errorf("reading run %s: %w", runID, err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT idx, name, kind, outcome, ok FROM results WHERE run_id = ? ORDER BY idx`, runID)
	if err != nil {
		return nil, fmt.Errorf("reading run %s: %w", runID, err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.Index, &e.Name, &e.Kind, &e.Outcome, &e.OK); err != nil {
			return nil, fmt.Errorf("reading run %s: %w", runID, err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
