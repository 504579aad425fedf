package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/sells-group/facloc-cli/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS validation_runs (
	id              TEXT PRIMARY KEY,
	instance        TEXT NOT NULL,
	results_file    TEXT NOT NULL,
	solution_index  INTEGER NOT NULL,
	status          TEXT NOT NULL,
	failure_kind    TEXT,
	objective       REAL NOT NULL DEFAULT 0,
	budget_factor   REAL NOT NULL,
	capacity_factor REAL NOT NULL,
	created_at      DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_validation_runs_instance ON validation_runs(instance);
CREATE INDEX IF NOT EXISTS idx_validation_runs_status ON validation_runs(status);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) SaveRun(ctx context.Context, run model.ValidationRun) (*model.ValidationRun, error) {
	if run.ID == "" {
		run.ID = uuid.New().String()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO validation_runs
		 (id, instance, results_file, solution_index, status, failure_kind, objective, budget_factor, capacity_factor, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Instance, run.ResultsFile, run.SolutionIndex, string(run.Status),
		nullableString(run.FailureKind), run.Objective, run.BudgetFactor, run.CapacityFactor, run.CreatedAt,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: insert validation run")
	}
	return &run, nil
}

func (s *SQLiteStore) GetRun(ctx context.Context, runID string) (*model.ValidationRun, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, instance, results_file, solution_index, status, failure_kind, objective, budget_factor, capacity_factor, created_at
		 FROM validation_runs WHERE id = ?`,
		runID,
	)
	return scanRun(row)
}

func (s *SQLiteStore) ListRuns(ctx context.Context, filter RunFilter) ([]model.ValidationRun, error) {
	query := `SELECT id, instance, results_file, solution_index, status, failure_kind, objective, budget_factor, capacity_factor, created_at
	          FROM validation_runs WHERE 1=1`
	var args []any

	if filter.Instance != "" {
		query += ` AND instance = ?`
		args = append(args, filter.Instance)
	}
	if filter.Status != "" {
		query += ` AND status = ?`
		args = append(args, string(filter.Status))
	}
	query += ` ORDER BY created_at DESC`

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	query += ` LIMIT ?`
	args = append(args, limit)

	if filter.Offset > 0 {
		query += ` OFFSET ?`
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list validation runs")
	}
	defer rows.Close()

	var runs []model.ValidationRun
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *r)
	}
	return runs, eris.Wrap(rows.Err(), "sqlite: list validation runs iterate")
}

// helpers

func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

type scannable interface {
	Scan(dest ...any) error
}

func scanRun(row scannable) (*model.ValidationRun, error) {
	var r model.ValidationRun
	var failure sql.NullString

	err := row.Scan(&r.ID, &r.Instance, &r.ResultsFile, &r.SolutionIndex, &r.Status,
		&failure, &r.Objective, &r.BudgetFactor, &r.CapacityFactor, &r.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, eris.New("validation run not found")
	}
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: scan validation run")
	}
	if failure.Valid {
		r.FailureKind = failure.String
	}
	return &r, nil
}
