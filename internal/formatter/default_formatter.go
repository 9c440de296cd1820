package formatter

import (
	"github.com/dump-analysis/pkg/model"
	"github.com/dump-analysis/pkg/utils"
)

// DefaultFormatter is a fallback formatter for unknown task types.
type DefaultFormatter struct{}

// SupportedTypes returns an empty slice as this is a fallback formatter.
func (f *DefaultFormatter) SupportedTypes() []model.TaskType {
	return nil
}

// Format outputs a generic analysis result to the logger.
func (f *DefaultFormatter) Format(resp *model.AnalysisResponse, log utils.Logger) {
	log.Info("=== Analysis Results ===")
	log.Info("Task UUID:      %s", resp.TaskUUID)
	log.Info("Task Type:      %s", resp.TaskType.String())
	if resp.SkippedLines > 0 {
		log.Info("Skipped Lines:  %d", resp.SkippedLines)
	}
	log.Info("")

	printOutputFiles(resp, log)
}

// FormatSummary returns a summary map for serialization.
func (f *DefaultFormatter) FormatSummary(resp *model.AnalysisResponse) map[string]interface{} {
	return map[string]interface{}{
		"task_uuid":     resp.TaskUUID,
		"task_type":     resp.TaskType.String(),
		"skipped_lines": resp.SkippedLines,
		"output_files":  resp.OutputFiles,
	}
}
