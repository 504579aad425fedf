// Package store persists validation run history so batch checks of many
// candidate solutions can be reviewed later.
package store

import (
	"context"

	"github.com/sells-group/facloc-cli/internal/model"
)

// RunFilter specifies criteria for listing validation runs.
type RunFilter struct {
	Instance string                 `json:"instance,omitempty"`
	Status   model.ValidationStatus `json:"status,omitempty"`
	Limit    int                    `json:"limit,omitempty"`
	Offset   int                    `json:"offset,omitempty"`
}

// Store defines the persistence interface for validation runs.
type Store interface {
	SaveRun(ctx context.Context, run model.ValidationRun) (*model.ValidationRun, error)
	GetRun(ctx context.Context, runID string) (*model.ValidationRun, error)
	ListRuns(ctx context.Context, filter RunFilter) ([]model.ValidationRun, error)

	Migrate(ctx context.Context) error
	Close() error
}
