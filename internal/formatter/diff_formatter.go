package formatter

import (
	"github.com/dump-analysis/pkg/model"
	"github.com/dump-analysis/pkg/utils"
)

// DiffFormatter formats two-snapshot comparison results.
type DiffFormatter struct{}

// SupportedTypes returns the task types this formatter supports.
func (f *DiffFormatter) SupportedTypes() []model.TaskType {
	return []model.TaskType{model.TaskTypeNetstatDiff}
}

// Format outputs the snapshot comparison to the logger.
func (f *DiffFormatter) Format(resp *model.AnalysisResponse, log utils.Logger) {
	log.Info("=== Snapshot Comparison ===")
	log.Info("Task UUID:      %s", resp.TaskUUID)

	report := resp.Diff
	if report == nil {
		log.Info("(No comparison data available)")
		return
	}

	log.Info("Before:         %s", report.SourceA)
	log.Info("After:          %s", report.SourceB)
	log.Info("Port:           %d", report.Port)
	if resp.SkippedLines > 0 {
		log.Info("Skipped Lines:  %d", resp.SkippedLines)
	}
	log.Info("")

	if len(report.Transitions) == 0 {
		log.Info("No matched connections on port %d", report.Port)
		log.Info("")
	} else {
		log.Info("=== State Transitions ===")
		for _, tr := range report.Transitions {
			log.Info("  %s  %s -> %s  %s", tr.Protocol, tr.LocalLabel, tr.ForeignLabel, tr.Change)
		}
		log.Info("")
	}

	printOutputFiles(resp, log)
}

// FormatSummary returns a summary map for serialization.
func (f *DiffFormatter) FormatSummary(resp *model.AnalysisResponse) map[string]interface{} {
	summary := map[string]interface{}{
		"task_uuid":     resp.TaskUUID,
		"task_type":     resp.TaskType.String(),
		"skipped_lines": resp.SkippedLines,
		"output_files":  resp.OutputFiles,
	}

	if resp.Diff != nil {
		summary["source_a"] = resp.Diff.SourceA
		summary["source_b"] = resp.Diff.SourceB
		summary["port"] = resp.Diff.Port
		summary["transitions"] = resp.Diff.Transitions
		summary["transition_count"] = len(resp.Diff.Transitions)
	}

	return summary
}
