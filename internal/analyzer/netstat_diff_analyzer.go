package analyzer

import (
	"context"

	"github.com/dump-analysis/internal/statistics"
	"github.com/dump-analysis/pkg/model"
)

// NetstatDiffAnalyzer compares two snapshots of the same host for one
// target port.
type NetstatDiffAnalyzer struct {
	*BaseAnalyzer
}

// NewNetstatDiffAnalyzer creates a new snapshot comparison analyzer.
func NewNetstatDiffAnalyzer(config *BaseAnalyzerConfig) *NetstatDiffAnalyzer {
	return &NetstatDiffAnalyzer{BaseAnalyzer: NewBaseAnalyzer(config)}
}

// Name returns the analyzer name.
func (a *NetstatDiffAnalyzer) Name() string {
	return "netstat_diff_analyzer"
}

// SupportedTypes returns the task types supported by this analyzer.
func (a *NetstatDiffAnalyzer) SupportedTypes() []model.TaskType {
	return []model.TaskType{model.TaskTypeNetstatDiff}
}

// Analyze parses both snapshots and reports per-connection state
// transitions touching the target port.
func (a *NetstatDiffAnalyzer) Analyze(ctx context.Context, req *model.AnalysisRequest) (*model.AnalysisResponse, error) {
	if len(req.InputFiles) != 2 {
		return nil, ErrInputCount
	}
	if req.Port <= 0 {
		return nil, ErrMissingPort
	}

	names, err := a.LoadNameMap(req.NameMapFile)
	if err != nil {
		return nil, err
	}

	before, err := a.ParseSnapshot(ctx, req.InputFiles[0])
	if err != nil {
		return nil, err
	}
	after, err := a.ParseSnapshot(ctx, req.InputFiles[1])
	if err != nil {
		return nil, err
	}

	resp := a.NewResponse(req)
	resp.SkippedLines = before.SkippedLines + after.SkippedLines
	resp.Diff = statistics.CompareSnapshots(before, after, req.Port, names)

	if err := WriteArtifact(a.BaseAnalyzer, req, resp, "netstat_diff.json", resp.Diff); err != nil {
		return nil, err
	}
	return resp, nil
}
