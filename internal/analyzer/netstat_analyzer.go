package analyzer

import (
	"context"

	"github.com/dump-analysis/internal/statistics"
	"github.com/dump-analysis/pkg/model"
)

// NetstatAnalyzer aggregates a single connection-table snapshot.
type NetstatAnalyzer struct {
	*BaseAnalyzer
}

// NewNetstatAnalyzer creates a new snapshot analyzer.
func NewNetstatAnalyzer(config *BaseAnalyzerConfig) *NetstatAnalyzer {
	return &NetstatAnalyzer{BaseAnalyzer: NewBaseAnalyzer(config)}
}

// Name returns the analyzer name.
func (a *NetstatAnalyzer) Name() string {
	return "netstat_analyzer"
}

// SupportedTypes returns the task types supported by this analyzer.
func (a *NetstatAnalyzer) SupportedTypes() []model.TaskType {
	return []model.TaskType{model.TaskTypeNetstat}
}

// Analyze parses the snapshot and computes its connection aggregates.
func (a *NetstatAnalyzer) Analyze(ctx context.Context, req *model.AnalysisRequest) (*model.AnalysisResponse, error) {
	if len(req.InputFiles) != 1 {
		return nil, ErrInputCount
	}

	names, err := a.LoadNameMap(req.NameMapFile)
	if err != nil {
		return nil, err
	}

	snapshot, err := a.ParseSnapshot(ctx, req.InputFiles[0])
	if err != nil {
		return nil, err
	}
	if len(snapshot.Records) == 0 {
		return nil, ErrEmptyData
	}

	resp := a.NewResponse(req)
	resp.SkippedLines = snapshot.SkippedLines
	resp.Netstat = statistics.BuildSnapshotStats(snapshot, names)

	if err := WriteArtifact(a.BaseAnalyzer, req, resp, "netstat_stats.json", resp.Netstat); err != nil {
		return nil, err
	}
	return resp, nil
}
