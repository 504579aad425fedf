package store

import (
	"context"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/facloc-cli/internal/model"
)

var runColumns = []string{
	"id", "instance", "results_file", "solution_index", "status",
	"failure_kind", "objective", "budget_factor", "capacity_factor", "created_at",
}

func TestPostgres_Migrate(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS validation_runs").
		WillReturnResult(pgxmock.NewResult("CREATE", 0))

	s := NewPostgresWithPool(mock)
	assert.NoError(t, s.Migrate(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_SaveRun(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec("INSERT INTO validation_runs").
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	s := NewPostgresWithPool(mock)
	saved, err := s.SaveRun(context.Background(), sampleRun())
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_GetRun(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	now := time.Now().UTC()
	mock.ExpectQuery("SELECT (.+) FROM validation_runs WHERE id").
		WithArgs("run-1").
		WillReturnRows(pgxmock.NewRows(runColumns).
			AddRow("run-1", "instance_1", "results.json", 2, "invalid",
				"BudgetExceeded", 0.0, 0.4, 1.5, now))

	s := NewPostgresWithPool(mock)
	got, err := s.GetRun(context.Background(), "run-1")
	require.NoError(t, err)
	assert.Equal(t, "instance_1", got.Instance)
	assert.Equal(t, model.ValidationInvalid, got.Status)
	assert.Equal(t, "BudgetExceeded", got.FailureKind)
	assert.Equal(t, 2, got.SolutionIndex)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_GetRun_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery("SELECT (.+) FROM validation_runs WHERE id").
		WithArgs("missing").
		WillReturnRows(pgxmock.NewRows(runColumns))

	s := NewPostgresWithPool(mock)
	_, err = s.GetRun(context.Background(), "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestPostgres_ListRuns(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	now := time.Now().UTC()
	mock.ExpectQuery("SELECT (.+) FROM validation_runs WHERE 1=1 AND instance =").
		WithArgs("instance_1", 100).
		WillReturnRows(pgxmock.NewRows(runColumns).
			AddRow("run-1", "instance_1", "results.json", 0, "valid",
				nil, 280.33, 1.0, 1.5, now))

	s := NewPostgresWithPool(mock)
	runs, err := s.ListRuns(context.Background(), RunFilter{Instance: "instance_1"})
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, model.ValidationValid, runs[0].Status)
	assert.Empty(t, runs[0].FailureKind)
	assert.NoError(t, mock.ExpectationsWereMet())
}
