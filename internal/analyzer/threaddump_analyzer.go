package analyzer

import (
	"context"

	"github.com/dump-analysis/internal/parser/threaddump"
	"github.com/dump-analysis/internal/statistics"
	"github.com/dump-analysis/pkg/filter"
	"github.com/dump-analysis/pkg/model"
)

// ThreadDumpAnalyzer aggregates an ordered series of JDK thread dumps
// and correlates thread and group identity across them.
type ThreadDumpAnalyzer struct {
	*BaseAnalyzer
}

// NewThreadDumpAnalyzer creates a new thread dump analyzer.
func NewThreadDumpAnalyzer(config *BaseAnalyzerConfig) *ThreadDumpAnalyzer {
	return &ThreadDumpAnalyzer{BaseAnalyzer: NewBaseAnalyzer(config)}
}

// Name returns the analyzer name.
func (a *ThreadDumpAnalyzer) Name() string {
	return "threaddump_analyzer"
}

// SupportedTypes returns the task types supported by this analyzer.
func (a *ThreadDumpAnalyzer) SupportedTypes() []model.TaskType {
	return []model.TaskType{model.TaskTypeThreadDump}
}

// Analyze parses each dump in input order, aggregates it, and tracks
// continuity across the series.
func (a *ThreadDumpAnalyzer) Analyze(ctx context.Context, req *model.AnalysisRequest) (*model.AnalysisResponse, error) {
	if len(req.InputFiles) == 0 {
		return nil, ErrNoInputFiles
	}

	frameFilter := filter.New(req.Filter)
	dumpParser := threaddump.NewParser()

	dumps := make([]*model.DumpResult, 0, len(req.InputFiles))
	for _, path := range req.InputFiles {
		reader, content, err := a.ReadInput(path)
		if err != nil {
			return nil, err
		}

		entries, err := dumpParser.Parse(ctx, reader)
		if err != nil {
			return nil, err
		}

		timestamp := threaddump.ResolveTimestamp(path, content)
		dumps = append(dumps, statistics.AggregateDump(entries, frameFilter, path, timestamp))
	}

	resp := a.NewResponse(req)
	resp.Threads = statistics.TrackSeries(dumps)

	if err := WriteArtifact(a.BaseAnalyzer, req, resp, "thread_series.json.gz", resp.Threads); err != nil {
		return nil, err
	}
	return resp, nil
}
