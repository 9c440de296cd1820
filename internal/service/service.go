// Package service wires storage, analyzers, formatting and run history
// into one analysis pipeline.
package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/dump-analysis/internal/analyzer"
	"github.com/dump-analysis/internal/formatter"
	"github.com/dump-analysis/internal/repository"
	"github.com/dump-analysis/internal/storage"
	"github.com/dump-analysis/pkg/config"
	"github.com/dump-analysis/pkg/model"
	"github.com/dump-analysis/pkg/utils"
)

// remoteKeyPrefix marks an input path as an object storage key instead
// of a local file.
const remoteKeyPrefix = "cos://"

// Service is the main application service.
type Service struct {
	config     *config.Config
	logger     utils.Logger
	db         *repository.Repositories
	storage    storage.Storage
	manager    *analyzer.Manager
	formatters *formatter.Registry
	tracer     trace.Tracer
}

// New creates a new Service instance.
func New(cfg *config.Config, logger utils.Logger) (*Service, error) {
	if logger == nil {
		logger = utils.NewDefaultLogger(utils.LevelInfo, nil)
	}

	return &Service{
		config:     cfg,
		logger:     logger,
		formatters: formatter.NewRegistry(),
		tracer:     otel.Tracer("dump-analysis/service"),
	}, nil
}

// Initialize initializes all service components.
func (s *Service) Initialize(ctx context.Context) error {
	if err := s.config.EnsureDataDir(); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	if err := s.initDatabase(); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	if err := s.initStorage(); err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}

	analyzerConfig := &analyzer.BaseAnalyzerConfig{
		OutputDir:      s.config.Analysis.OutputDir,
		WriteArtifacts: s.config.Analysis.WriteArtifacts,
		Logger:         s.logger,
	}
	s.manager = analyzer.NewFactory(analyzerConfig).CreateManager()

	return nil
}

// initDatabase opens the run history store unless disabled.
func (s *Service) initDatabase() error {
	if !s.config.Database.Enabled() {
		s.logger.Debug("run history disabled")
		return nil
	}

	s.logger.Info("Connecting to database (%s)...", s.config.Database.Type)

	gormDB, err := repository.NewGormDB(&s.config.Database)
	if err != nil {
		return err
	}

	s.db, err = repository.NewRepositories(gormDB, s.config.Database.Type)
	if err != nil {
		return err
	}

	s.logger.Info("Database connection established")
	return nil
}

// initStorage initializes the object storage backend.
func (s *Service) initStorage() error {
	store, err := storage.NewStorage(&s.config.Storage)
	if err != nil {
		return err
	}
	s.storage = store
	return nil
}

// Run executes one analysis request end to end: inputs are resolved,
// the matching analyzer runs, the outcome is recorded and rendered.
func (s *Service) Run(ctx context.Context, req *model.AnalysisRequest) (*model.AnalysisResponse, error) {
	ctx, span := s.tracer.Start(ctx, "service.Run",
		trace.WithAttributes(
			attribute.String("task.uuid", req.TaskUUID),
			attribute.String("task.type", req.TaskType.String()),
		))
	defer span.End()

	timer := utils.NewTimer("analysis", utils.WithLogger(s.logger))

	if err := s.recordRunStart(ctx, req); err != nil {
		return nil, err
	}

	resp, err := s.runAnalysis(ctx, req, timer)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.recordRunFailure(ctx, req, err)
		return nil, err
	}

	timer.StartPhase("persist")
	s.recordRunSuccess(ctx, req, resp)
	timer.StopPhase("persist")

	timer.StartPhase("publish")
	s.publishArtifacts(ctx, req, resp)
	timer.StopPhase("publish")

	timer.Report()
	s.formatters.Format(resp, s.logger)
	return resp, nil
}

// runAnalysis resolves inputs and runs the analyzer itself.
func (s *Service) runAnalysis(ctx context.Context, req *model.AnalysisRequest, timer *utils.Timer) (*model.AnalysisResponse, error) {
	timer.StartPhase("resolve_inputs")
	resolved, err := s.resolveInputs(ctx, req)
	timer.StopPhase("resolve_inputs")
	if err != nil {
		return nil, err
	}
	req.InputFiles = resolved

	timer.StartPhase("analyze")
	resp, err := s.manager.AnalyzeTask(ctx, req)
	timer.StopPhase("analyze")
	return resp, err
}

// resolveInputs downloads remote inputs into the run's working
// directory and leaves local paths untouched.
func (s *Service) resolveInputs(ctx context.Context, req *model.AnalysisRequest) ([]string, error) {
	ctx, span := s.tracer.Start(ctx, "service.resolveInputs")
	defer span.End()

	resolved := make([]string, 0, len(req.InputFiles))
	for _, input := range req.InputFiles {
		key, isRemote := strings.CutPrefix(input, remoteKeyPrefix)
		if !isRemote {
			expanded, err := expandDir(input)
			if err != nil {
				span.RecordError(err)
				return nil, err
			}
			resolved = append(resolved, expanded...)
			continue
		}

		localPath, err := s.storage.FetchInput(ctx, key, s.config.GetRunDir(req.TaskUUID))
		if err != nil {
			span.RecordError(err)
			return nil, fmt.Errorf("failed to fetch %s: %w", key, err)
		}
		s.logger.Debug("fetched %s to %s", key, localPath)
		resolved = append(resolved, localPath)
	}
	return resolved, nil
}

// expandDir expands a directory input into its files in lexicographic
// name order, so a dump series directory analyzes in capture order.
// A non-directory path is returned as is.
func expandDir(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return []string{path}, nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read input directory %s: %w", path, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		files = append(files, filepath.Join(path, entry.Name()))
	}
	sort.Strings(files)
	return files, nil
}

// publishArtifacts uploads run artifacts when a remote backend is
// configured. Upload failures are logged, not fatal: the local result
// already exists.
func (s *Service) publishArtifacts(ctx context.Context, req *model.AnalysisRequest, resp *model.AnalysisResponse) {
	if storage.StorageType(s.config.Storage.Type) != storage.StorageTypeCOS {
		return
	}

	for _, path := range resp.OutputFiles {
		key := req.TaskUUID + "/" + filepath.Base(path)
		if err := s.storage.StoreArtifact(ctx, key, path); err != nil {
			s.logger.Error("failed to publish %s: %v", key, err)
			continue
		}
		s.logger.Info("published %s", s.storage.URL(key))
	}
}

func (s *Service) recordRunStart(ctx context.Context, req *model.AnalysisRequest) error {
	if s.db == nil {
		return nil
	}

	run, err := repository.NewAnalysisRun(req, s.config.Analysis.Version)
	if err != nil {
		return fmt.Errorf("failed to build run record: %w", err)
	}
	if err := s.db.Run.CreateRun(ctx, run); err != nil {
		return err
	}
	return s.db.Run.MarkRunning(ctx, req.TaskUUID)
}

func (s *Service) recordRunSuccess(ctx context.Context, req *model.AnalysisRequest, resp *model.AnalysisResponse) {
	if s.db == nil {
		return
	}

	summary := s.formatters.FormatSummary(resp)
	if err := s.db.Run.CompleteRun(ctx, req.TaskUUID, resp, summary); err != nil {
		s.logger.Error("failed to record run completion: %v", err)
	}
}

func (s *Service) recordRunFailure(ctx context.Context, req *model.AnalysisRequest, runErr error) {
	if s.db == nil {
		return
	}

	if err := s.db.Run.FailRun(ctx, req.TaskUUID, runErr.Error()); err != nil {
		s.logger.Error("failed to record run failure: %v", err)
	}
}

// History returns the most recent recorded runs, newest first.
func (s *Service) History(ctx context.Context, limit int) ([]*repository.AnalysisRun, error) {
	if s.db == nil {
		return nil, fmt.Errorf("run history is disabled")
	}
	return s.db.Run.ListRecentRuns(ctx, limit)
}

// HealthCheck performs a health check on the service.
func (s *Service) HealthCheck(ctx context.Context) error {
	if s.db != nil {
		if err := s.db.HealthCheck(ctx); err != nil {
			return fmt.Errorf("database health check failed: %w", err)
		}
	}
	return nil
}

// Close releases service resources.
func (s *Service) Close() error {
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			s.logger.Error("Failed to close database connection: %v", err)
			return err
		}
	}
	return nil
}
