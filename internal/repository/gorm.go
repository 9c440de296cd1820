package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	apperrors "github.com/dump-analysis/pkg/errors"
	"github.com/dump-analysis/pkg/model"
)

// GormRunRepository implements RunRepository using GORM.
type GormRunRepository struct {
	db *gorm.DB
}

// NewGormRunRepository creates a new GormRunRepository.
func NewGormRunRepository(db *gorm.DB) *GormRunRepository {
	return &GormRunRepository{db: db}
}

// CreateRun records a new pending run.
func (r *GormRunRepository) CreateRun(ctx context.Context, run *AnalysisRun) error {
	if err := r.db.WithContext(ctx).Create(run).Error; err != nil {
		return apperrors.Wrap(apperrors.CodeDatabaseError, "failed to create run", err)
	}
	return nil
}

// MarkRunning marks a run as started.
func (r *GormRunRepository) MarkRunning(ctx context.Context, taskUUID string) error {
	now := time.Now()
	result := r.db.WithContext(ctx).
		Model(&AnalysisRun{}).
		Where("task_uuid = ?", taskUUID).
		Updates(map[string]interface{}{
			"status":     model.RunStatusRunning,
			"begin_time": &now,
		})

	if result.Error != nil {
		return apperrors.Wrap(apperrors.CodeDatabaseError, "failed to mark run running", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.New(apperrors.CodeNotFound, fmt.Sprintf("run not found: %s", taskUUID))
	}
	return nil
}

// CompleteRun stores the run outcome and marks it done.
func (r *GormRunRepository) CompleteRun(ctx context.Context, taskUUID string, resp *model.AnalysisResponse, summary map[string]interface{}) error {
	outputs, err := json.Marshal(resp.OutputFiles)
	if err != nil {
		return fmt.Errorf("failed to marshal output files: %w", err)
	}

	var summaryJSON JSONField
	if summary != nil {
		summaryJSON, err = json.Marshal(summary)
		if err != nil {
			return fmt.Errorf("failed to marshal summary: %w", err)
		}
	}

	now := time.Now()
	result := r.db.WithContext(ctx).
		Model(&AnalysisRun{}).
		Where("task_uuid = ?", taskUUID).
		Updates(map[string]interface{}{
			"status":        model.RunStatusDone,
			"output_files":  JSONField(outputs),
			"summary":       summaryJSON,
			"skipped_lines": resp.SkippedLines,
			"end_time":      &now,
		})

	if result.Error != nil {
		return apperrors.Wrap(apperrors.CodeDatabaseError, "failed to complete run", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.New(apperrors.CodeNotFound, fmt.Sprintf("run not found: %s", taskUUID))
	}
	return nil
}

// FailRun marks a run as failed with an error description.
func (r *GormRunRepository) FailRun(ctx context.Context, taskUUID string, statusInfo string) error {
	now := time.Now()
	result := r.db.WithContext(ctx).
		Model(&AnalysisRun{}).
		Where("task_uuid = ?", taskUUID).
		Updates(map[string]interface{}{
			"status":      model.RunStatusFailed,
			"status_info": statusInfo,
			"end_time":    &now,
		})

	if result.Error != nil {
		return apperrors.Wrap(apperrors.CodeDatabaseError, "failed to mark run failed", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.New(apperrors.CodeNotFound, fmt.Sprintf("run not found: %s", taskUUID))
	}
	return nil
}

// GetRunByUUID retrieves a run by its task UUID.
func (r *GormRunRepository) GetRunByUUID(ctx context.Context, taskUUID string) (*AnalysisRun, error) {
	var run AnalysisRun

	err := r.db.WithContext(ctx).Where("task_uuid = ?", taskUUID).First(&run).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New(apperrors.CodeNotFound, fmt.Sprintf("run not found: %s", taskUUID))
		}
		return nil, apperrors.Wrap(apperrors.CodeDatabaseError, "failed to get run", err)
	}
	return &run, nil
}

// ListRecentRuns retrieves the most recent runs, newest first.
func (r *GormRunRepository) ListRecentRuns(ctx context.Context, limit int) ([]*AnalysisRun, error) {
	var runs []*AnalysisRun

	err := r.db.WithContext(ctx).
		Order("id DESC").
		Limit(limit).
		Find(&runs).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeDatabaseError, "failed to list runs", err)
	}
	return runs, nil
}
