// Package repository persists analysis run history.
package repository

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/dump-analysis/pkg/model"
)

// AnalysisRun represents the analysis_runs table. One row records one
// analyzer invocation, its inputs and its summarized outcome.
type AnalysisRun struct {
	ID           int64           `gorm:"column:id;primaryKey;autoIncrement"`
	TaskUUID     string          `gorm:"column:task_uuid;type:varchar(64);uniqueIndex"`
	TaskType     model.TaskType  `gorm:"column:task_type"`
	Status       model.RunStatus `gorm:"column:status"`
	StatusInfo   string          `gorm:"column:status_info;type:text"`
	InputFiles   JSONField       `gorm:"column:input_files;type:json"`
	OutputFiles  JSONField       `gorm:"column:output_files;type:json"`
	Summary      JSONField       `gorm:"column:summary;type:json"`
	SkippedLines int             `gorm:"column:skipped_lines"`
	Version      string          `gorm:"column:version;type:varchar(32)"`
	CreateTime   time.Time       `gorm:"column:create_time;autoCreateTime"`
	BeginTime    *time.Time      `gorm:"column:begin_time"`
	EndTime      *time.Time      `gorm:"column:end_time"`
}

// TableName returns the table name for AnalysisRun.
func (AnalysisRun) TableName() string {
	return "analysis_runs"
}

// InputFileList decodes the stored input file list.
func (r *AnalysisRun) InputFileList() []string {
	var files []string
	if r.InputFiles != nil {
		_ = json.Unmarshal(r.InputFiles, &files)
	}
	return files
}

// OutputFileList decodes the stored output file list.
func (r *AnalysisRun) OutputFileList() []string {
	var files []string
	if r.OutputFiles != nil {
		_ = json.Unmarshal(r.OutputFiles, &files)
	}
	return files
}

// NewAnalysisRun builds a pending run row for a request.
func NewAnalysisRun(req *model.AnalysisRequest, version string) (*AnalysisRun, error) {
	inputs, err := json.Marshal(req.InputFiles)
	if err != nil {
		return nil, err
	}

	return &AnalysisRun{
		TaskUUID:   req.TaskUUID,
		TaskType:   req.TaskType,
		Status:     model.RunStatusPending,
		InputFiles: inputs,
		Version:    version,
	}, nil
}

// JSONField is a custom type for handling JSON fields in GORM.
type JSONField []byte

// Value implements driver.Valuer interface.
func (j JSONField) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return []byte(j), nil
}

// Scan implements sql.Scanner interface.
func (j *JSONField) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}

	switch v := value.(type) {
	case []byte:
		*j = append((*j)[0:0], v...)
		return nil
	case string:
		*j = []byte(v)
		return nil
	default:
		return errors.New("unsupported type for JSONField")
	}
}

// MarshalJSON implements json.Marshaler interface.
func (j JSONField) MarshalJSON() ([]byte, error) {
	if j == nil {
		return []byte("null"), nil
	}
	return j, nil
}

// UnmarshalJSON implements json.Unmarshaler interface.
func (j *JSONField) UnmarshalJSON(data []byte) error {
	if data == nil || string(data) == "null" {
		*j = nil
		return nil
	}
	*j = append((*j)[0:0], data...)
	return nil
}
