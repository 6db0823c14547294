// Package store keeps a SQLite history of engine runs and the solutions
// each run selected.
//
// The database is opened in WAL mode with a busy timeout, and the schema is
// created on Open. A run is written in one transaction together with its
// solutions.
//
// Errors (sentinel):
//
//	– ErrNilResult if SaveResult is given no result.
//	– ErrNotFound  if a run id is unknown.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/vnalla55/Mark-Up-Any-Fare-sub037/esv"
)

// Sentinel errors.
var (
	ErrNilResult = errors.New("store: nil result")
	ErrNotFound  = errors.New("store: run not found")
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
  id            INTEGER PRIMARY KEY,
  run_id        TEXT NOT NULL UNIQUE,
  request_id    TEXT NOT NULL,
  scenario      TEXT NOT NULL,
  created_at    TEXT NOT NULL,
  solutions     INTEGER NOT NULL,
  dominated_out INTEGER NOT NULL DEFAULT 0,
  dominated_in  INTEGER NOT NULL DEFAULT 0
);
CREATE TABLE IF NOT EXISTS solutions (
  id              INTEGER PRIMARY KEY,
  run_id          TEXT NOT NULL REFERENCES runs(run_id) ON DELETE CASCADE,
  selection_order INTEGER NOT NULL,
  source          TEXT NOT NULL,
  out_id          INTEGER NOT NULL,
  in_id           INTEGER NOT NULL,
  carrier         TEXT NOT NULL,
  total           REAL NOT NULL,
  penalty         REAL NOT NULL,
  utility         REAL NOT NULL,
  carrier_group   INTEGER NOT NULL,
  family          INTEGER NOT NULL,
  is_primary      INTEGER NOT NULL CHECK (is_primary IN (0,1))
);
CREATE INDEX IF NOT EXISTS idx_solutions_run ON solutions(run_id, selection_order);
`

// DB is an open history database.
type DB struct {
	sql *sql.DB
}

// Run is one stored engine run.
type Run struct {
	ID        uuid.UUID
	RequestID string
	Scenario  string
	CreatedAt time.Time
	Solutions int
	Dominated [2]int
}

// Solution is one stored solution. In is -1 for one-way requests.
type Solution struct {
	Order        int
	Source       string
	Out          int
	In           int
	Carrier      string
	Total        float64
	Penalty      float64
	Utility      float64
	CarrierGroup int
	Family       int
	Primary      bool
}

// Open opens (creating if needed) the database at path.
func Open(path string) (*DB, error) {
	dsn := "file:" + path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", path, err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("store: open %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("store: schema: %w", err)
	}

	return &DB{sql: db}, nil
}

// Close closes the database. Closing a nil DB is a no-op.
func (d *DB) Close() error {
	if d == nil || d.sql == nil {
		return nil
	}

	return d.sql.Close()
}

// SaveResult records res under the given scenario name.
func (d *DB) SaveResult(ctx context.Context, scenario string, res *esv.Result) (err error) {
	if res == nil {
		return ErrNilResult
	}
	tx, err := d.sql.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return fmt.Errorf("store: begin: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	runID := res.RunID.String()
	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs(run_id, request_id, scenario, created_at, solutions, dominated_out, dominated_in) VALUES(?,?,?,?,?,?,?)`,
		runID, res.RequestID, scenario, time.Now().UTC().Format(time.RFC3339Nano),
		len(res.Solutions), res.Dominated[0], res.Dominated[1])
	if err != nil {
		return fmt.Errorf("store: insert run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO solutions(run_id, selection_order, source, out_id, in_id, carrier, total, penalty, utility, carrier_group, family, is_primary) VALUES(?,?,?,?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		return fmt.Errorf("store: prepare: %w", err)
	}
	defer stmt.Close()

	for _, s := range res.Solutions {
		_, err = stmt.ExecContext(ctx, runID, s.SelectionOrder, s.SelectionSource,
			s.ID.Out, s.ID.In, s.GoverningCarrier(), s.Total, s.Penalty, s.AggregateUtility,
			s.CarrierGroup, s.Family, boolToInt(s.Primary))
		if err != nil {
			return fmt.Errorf("store: insert solution %s: %w", s.ID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("store: commit: %w", err)
	}

	return nil
}

// Runs lists the stored runs, most recently saved first.
func (d *DB) Runs(ctx context.Context) ([]Run, error) {
	rows, err := d.sql.QueryContext(ctx, `SELECT run_id, request_id, scenario, created_at, solutions, dominated_out, dominated_in FROM runs ORDER BY id DESC`)
	if err != nil {
		return nil, fmt.Errorf("store: runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}

	return runs, rows.Err()
}

// Run returns one stored run.
func (d *DB) Run(ctx context.Context, id uuid.UUID) (Run, error) {
	row := d.sql.QueryRowContext(ctx, `SELECT run_id, request_id, scenario, created_at, solutions, dominated_out, dominated_in FROM runs WHERE run_id = ?`, id.String())
	r, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	return r, err
}

// Solutions returns the solutions of run id in selection order.
func (d *DB) Solutions(ctx context.Context, id uuid.UUID) ([]Solution, error) {
	if _, err := d.Run(ctx, id); err != nil {
		return nil, err
	}
	rows, err := d.sql.QueryContext(ctx, `SELECT selection_order, source, out_id, in_id, carrier, total, penalty, utility, carrier_group, family, is_primary FROM solutions WHERE run_id = ? ORDER BY selection_order`, id.String())
	if err != nil {
		return nil, fmt.Errorf("store: solutions: %w", err)
	}
	defer rows.Close()

	var out []Solution
	for rows.Next() {
		var (
			s       Solution
			primary int
		)
		if err := rows.Scan(&s.Order, &s.Source, &s.Out, &s.In, &s.Carrier, &s.Total, &s.Penalty, &s.Utility, &s.CarrierGroup, &s.Family, &primary); err != nil {
			return nil, fmt.Errorf("store: scan solution: %w", err)
		}
		s.Primary = primary == 1
		out = append(out, s)
	}

	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (Run, error) {
	var (
		r       Run
		id, ts  string
		out, in int
	)
	if err := row.Scan(&id, &r.RequestID, &r.Scenario, &ts, &r.Solutions, &out, &in); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Run{}, err
		}
		return Run{}, fmt.Errorf("store: scan run: %w", err)
	}
	var err error
	if r.ID, err = uuid.Parse(id); err != nil {
		return Run{}, fmt.Errorf("store: run id %q: %w", id, err)
	}
	if r.CreatedAt, err = time.Parse(time.RFC3339Nano, ts); err != nil {
		return Run{}, fmt.Errorf("store: created_at %q: %w", ts, err)
	}
	r.Dominated = [2]int{out, in}

	return r, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
