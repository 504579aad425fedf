package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rotisserie/eris"

	"github.com/sells-group/facloc-cli/internal/db"
	"github.com/sells-group/facloc-cli/internal/model"
)

// PostgresStore implements Store using a pgx pool.
type PostgresStore struct {
	pool db.Pool
}

// NewPostgres creates a PostgresStore with a fresh connection pool.
func NewPostgres(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := db.Connect(ctx, databaseURL)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: connect")
	}
	return &PostgresStore{pool: pool}, nil
}

// NewPostgresWithPool wraps an existing pool; tests pass a pgxmock pool.
func NewPostgresWithPool(pool db.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS validation_runs (
	id              TEXT PRIMARY KEY,
	instance        TEXT NOT NULL,
	results_file    TEXT NOT NULL,
	solution_index  INTEGER NOT NULL,
	status          TEXT NOT NULL,
	failure_kind    TEXT,
	objective       DOUBLE PRECISION NOT NULL DEFAULT 0,
	budget_factor   DOUBLE PRECISION NOT NULL,
	capacity_factor DOUBLE PRECISION NOT NULL,
	created_at      TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_validation_runs_instance ON validation_runs(instance);
CREATE INDEX IF NOT EXISTS idx_validation_runs_status ON validation_runs(status);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func (s *PostgresStore) SaveRun(ctx context.Context, run model.ValidationRun) (*model.ValidationRun, error) {
	if run.ID == "" {
		run.ID = uuid.New().String()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}

	_, err := s.pool.Exec(ctx,
		`INSERT INTO validation_runs
		 (id, instance, results_file, solution_index, status, failure_kind, objective, budget_factor, capacity_factor, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		run.ID, run.Instance, run.ResultsFile, run.SolutionIndex, string(run.Status),
		nullableString(run.FailureKind), run.Objective, run.BudgetFactor, run.CapacityFactor, run.CreatedAt,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: insert validation run")
	}
	return &run, nil
}

func (s *PostgresStore) GetRun(ctx context.Context, runID string) (*model.ValidationRun, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, instance, results_file, solution_index, status, failure_kind, objective, budget_factor, capacity_factor, created_at
		 FROM validation_runs WHERE id = $1`,
		runID,
	)

	var r model.ValidationRun
	var failure sql.NullString
	err := row.Scan(&r.ID, &r.Instance, &r.ResultsFile, &r.SolutionIndex, &r.Status,
		&failure, &r.Objective, &r.BudgetFactor, &r.CapacityFactor, &r.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, eris.Errorf("validation run not found: %s", runID)
	}
	if err != nil {
		return nil, eris.Wrap(err, "postgres: scan validation run")
	}
	if failure.Valid {
		r.FailureKind = failure.String
	}
	return &r, nil
}

func (s *PostgresStore) ListRuns(ctx context.Context, filter RunFilter) ([]model.ValidationRun, error) {
	query := `SELECT id, instance, results_file, solution_index, status, failure_kind, objective, budget_factor, capacity_factor, created_at
	          FROM validation_runs WHERE 1=1`
	var args []any
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.Instance != "" {
		query += ` AND instance = ` + arg(filter.Instance)
	}
	if filter.Status != "" {
		query += ` AND status = ` + arg(string(filter.Status))
	}
	query += ` ORDER BY created_at DESC`

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	query += ` LIMIT ` + arg(limit)
	if filter.Offset > 0 {
		query += ` OFFSET ` + arg(filter.Offset)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list validation runs")
	}
	defer rows.Close()

	var runs []model.ValidationRun
	for rows.Next() {
		var r model.ValidationRun
		var failure sql.NullString
		if err := rows.Scan(&r.ID, &r.Instance, &r.ResultsFile, &r.SolutionIndex, &r.Status,
			&failure, &r.Objective, &r.BudgetFactor, &r.CapacityFactor, &r.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "postgres: scan validation run")
		}
		if failure.Valid {
			r.FailureKind = failure.String
		}
		runs = append(runs, r)
	}
	return runs, eris.Wrap(rows.Err(), "postgres: list validation runs iterate")
}
