package analyzer

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dump-analysis/internal/parser"
	"github.com/dump-analysis/internal/parser/netstat"
	apperrors "github.com/dump-analysis/pkg/errors"
	"github.com/dump-analysis/pkg/model"
	"github.com/dump-analysis/pkg/utils"
	"github.com/dump-analysis/pkg/writer"
)

// BaseAnalyzerConfig holds configuration shared by all analyzers.
type BaseAnalyzerConfig struct {
	// OutputDir is the directory for artifact files. Empty means the
	// system temp directory.
	OutputDir string

	// WriteArtifacts controls whether JSON artifacts are written next
	// to the structured response.
	WriteArtifacts bool

	// StrictMode aborts parsing on the first malformed line instead of
	// skipping it.
	StrictMode bool

	// Logger is used for debug logging. If nil, logs are suppressed.
	Logger utils.Logger

	// Clock stamps responses. If nil, the real clock is used.
	Clock utils.Clock
}

// DefaultBaseAnalyzerConfig returns default configuration.
func DefaultBaseAnalyzerConfig() *BaseAnalyzerConfig {
	return &BaseAnalyzerConfig{
		WriteArtifacts: true,
	}
}

// BaseAnalyzer provides common functionality for all analyzers.
type BaseAnalyzer struct {
	config *BaseAnalyzerConfig
	logger utils.Logger
	clock  utils.Clock
}

// NewBaseAnalyzer creates a new base analyzer.
func NewBaseAnalyzer(config *BaseAnalyzerConfig) *BaseAnalyzer {
	if config == nil {
		config = DefaultBaseAnalyzerConfig()
	}

	logger := config.Logger
	if logger == nil {
		logger = &utils.NullLogger{}
	}
	clock := config.Clock
	if clock == nil {
		clock = utils.NewRealClock()
	}

	return &BaseAnalyzer{
		config: config,
		logger: logger,
		clock:  clock,
	}
}

// ParserOptions returns parser options matching the analyzer config.
func (a *BaseAnalyzer) ParserOptions() *parser.Options {
	opts := parser.DefaultOptions()
	opts.StrictMode = a.config.StrictMode
	return opts
}

// ParseSnapshot parses one connection-table snapshot file.
func (a *BaseAnalyzer) ParseSnapshot(ctx context.Context, path string) (*model.Snapshot, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeUnreadableFile, fmt.Sprintf("cannot open snapshot %s", path), err)
	}
	defer file.Close()

	snapshot, err := netstat.NewParser(a.ParserOptions()).Parse(ctx, file, filepath.Base(path))
	if err != nil {
		return nil, err
	}
	if snapshot.SkippedLines > 0 {
		a.logger.Warn("skipped %d malformed lines in %s", snapshot.SkippedLines, path)
	}
	return snapshot, nil
}

// LoadNameMap loads the request's address name map, nil when unset.
func (a *BaseAnalyzer) LoadNameMap(path string) (model.AddressNameMap, error) {
	return netstat.LoadNameMap(path)
}

// ReadInput reads one input file fully into memory.
func (a *BaseAnalyzer) ReadInput(path string) (*bytes.Reader, string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, "", apperrors.Wrap(apperrors.CodeUnreadableFile, fmt.Sprintf("cannot read input %s", path), err)
	}
	return bytes.NewReader(content), string(content), nil
}

// NewResponse builds a response skeleton stamped with the clock.
func (a *BaseAnalyzer) NewResponse(req *model.AnalysisRequest) *model.AnalysisResponse {
	return &model.AnalysisResponse{
		TaskUUID:   req.TaskUUID,
		TaskType:   req.TaskType,
		AnalyzedAt: a.clock.Now(),
	}
}

// EnsureOutputDir ensures the task's artifact directory exists.
func (a *BaseAnalyzer) EnsureOutputDir(req *model.AnalysisRequest) (string, error) {
	outputDir := req.OutputDir
	if outputDir == "" {
		outputDir = a.config.OutputDir
	}
	if outputDir == "" {
		outputDir = os.TempDir()
	}

	taskDir := filepath.Join(outputDir, req.TaskUUID)
	if err := os.MkdirAll(taskDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	return taskDir, nil
}

// WriteArtifact writes one JSON artifact when artifacts are enabled and
// appends its path to the response.
func WriteArtifact[T any](a *BaseAnalyzer, req *model.AnalysisRequest, resp *model.AnalysisResponse, name string, data T) error {
	if !a.config.WriteArtifacts {
		return nil
	}

	taskDir, err := a.EnsureOutputDir(req)
	if err != nil {
		return err
	}

	path := filepath.Join(taskDir, name)
	if filepath.Ext(name) == ".gz" {
		if err := writer.NewGzipWriter[T]().WriteToFile(data, path); err != nil {
			return fmt.Errorf("failed to write artifact %s: %w", name, err)
		}
	} else {
		if err := writer.NewPrettyJSONWriter[T]().WriteToFile(data, path); err != nil {
			return fmt.Errorf("failed to write artifact %s: %w", name, err)
		}
	}

	resp.OutputFiles = append(resp.OutputFiles, path)
	return nil
}
