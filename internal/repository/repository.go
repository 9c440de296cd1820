package repository

import (
	"context"

	"github.com/dump-analysis/pkg/model"
)

// RunRepository defines the interface for analysis run history
// operations.
type RunRepository interface {
	// CreateRun records a new pending run.
	CreateRun(ctx context.Context, run *AnalysisRun) error

	// MarkRunning marks a run as started.
	MarkRunning(ctx context.Context, taskUUID string) error

	// CompleteRun stores the run outcome and marks it done.
	CompleteRun(ctx context.Context, taskUUID string, resp *model.AnalysisResponse, summary map[string]interface{}) error

	// FailRun marks a run as failed with an error description.
	FailRun(ctx context.Context, taskUUID string, statusInfo string) error

	// GetRunByUUID retrieves a run by its task UUID.
	GetRunByUUID(ctx context.Context, taskUUID string) (*AnalysisRun, error)

	// ListRecentRuns retrieves the most recent runs, newest first.
	ListRecentRuns(ctx context.Context, limit int) ([]*AnalysisRun, error)
}
