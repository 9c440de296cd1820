package service

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	stdmock "github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dump-analysis/internal/analyzer"
	"github.com/dump-analysis/internal/mock"
	"github.com/dump-analysis/internal/repository"
	"github.com/dump-analysis/internal/testutil"
	"github.com/dump-analysis/pkg/config"
	"github.com/dump-analysis/pkg/model"
	"github.com/dump-analysis/pkg/utils"
)

const netstatSample = `Proto Recv-Q Send-Q Local Address           Foreign Address         State
tcp        0      0 0.0.0.0:8080            0.0.0.0:*               LISTEN
tcp        0      0 10.0.0.1:8080           203.0.113.7:51234       ESTABLISHED
`

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	base := testutil.TempDir(t)
	return &config.Config{
		Analysis: config.AnalysisConfig{
			Version:        "1.0.0",
			DataDir:        filepath.Join(base, "data"),
			OutputDir:      filepath.Join(base, "output"),
			WriteArtifacts: true,
		},
		Database: config.DatabaseConfig{
			Type: "sqlite",
			Path: filepath.Join(base, "runs.db"),
		},
		Storage: config.StorageConfig{
			Type:      "local",
			LocalPath: filepath.Join(base, "storage"),
		},
	}
}

func newService(t *testing.T, cfg *config.Config) *Service {
	t.Helper()
	s, err := New(cfg, &utils.NullLogger{})
	require.NoError(t, err)
	require.NoError(t, s.Initialize(context.Background()))
	t.Cleanup(func() { s.Close() })
	return s
}

func TestService_Run_Netstat(t *testing.T) {
	cfg := testConfig(t)
	s := newService(t, cfg)

	input := testutil.TempFileWithName(t, "netstat.txt", netstatSample)
	req := &model.AnalysisRequest{
		TaskUUID:   "svc-1",
		TaskType:   model.TaskTypeNetstat,
		InputFiles: []string{input},
	}

	resp, err := s.Run(context.Background(), req)
	require.NoError(t, err)

	require.NotNil(t, resp.Netstat)
	assert.Equal(t, 2, resp.Netstat.TotalConns)
	require.Len(t, resp.OutputFiles, 1)
	assert.True(t, testutil.FileExists(t, resp.OutputFiles[0]))

	runs, err := s.History(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "svc-1", runs[0].TaskUUID)
	assert.Equal(t, model.RunStatusDone, runs[0].Status)
	assert.Contains(t, string(runs[0].Summary), "total_conns")
}

func TestService_Run_FailureRecorded(t *testing.T) {
	cfg := testConfig(t)
	s := newService(t, cfg)

	req := &model.AnalysisRequest{
		TaskUUID:   "svc-2",
		TaskType:   model.TaskTypeNetstat,
		InputFiles: []string{filepath.Join(testutil.TempDir(t), "missing.txt")},
	}

	_, err := s.Run(context.Background(), req)
	require.Error(t, err)

	runs, err := s.History(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, model.RunStatusFailed, runs[0].Status)
	assert.NotEmpty(t, runs[0].StatusInfo)
}

func TestService_Run_RemoteInput(t *testing.T) {
	cfg := testConfig(t)
	s := newService(t, cfg)

	inputs := testutil.CreateDir(t, cfg.Storage.LocalPath, "inputs")
	testutil.WriteFile(t, inputs, "netstat.txt", netstatSample)

	req := &model.AnalysisRequest{
		TaskUUID:   "svc-3",
		TaskType:   model.TaskTypeNetstat,
		InputFiles: []string{"cos://inputs/netstat.txt"},
	}

	resp, err := s.Run(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Netstat.TotalConns)
}

func TestService_Run_ThreadDumpDirectory(t *testing.T) {
	cfg := testConfig(t)
	s := newService(t, cfg)

	dir := testutil.TempDir(t)
	// Written out of order; the directory expands lexicographically.
	testutil.WriteFile(t, dir, "dump-2.txt", "#1 \"main\"\nat a.B.c(B.java:2)\n")
	testutil.WriteFile(t, dir, "dump-1.txt", "#1 \"main\"\nat a.B.c(B.java:1)\n")

	req := &model.AnalysisRequest{
		TaskUUID:   "svc-4",
		TaskType:   model.TaskTypeThreadDump,
		InputFiles: []string{dir},
	}

	resp, err := s.Run(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, resp.Threads.Dumps, 2)
	assert.Equal(t, filepath.Join(dir, "dump-1.txt"), resp.Threads.Dumps[0].Source)
	assert.Equal(t, filepath.Join(dir, "dump-2.txt"), resp.Threads.Dumps[1].Source)
	require.Len(t, resp.Threads.Continuities, 1)
}

func TestService_HistoryDisabled(t *testing.T) {
	cfg := testConfig(t)
	cfg.Database.Type = "none"
	s := newService(t, cfg)

	input := testutil.TempFileWithName(t, "netstat.txt", netstatSample)
	req := &model.AnalysisRequest{
		TaskUUID:   "svc-5",
		TaskType:   model.TaskTypeNetstat,
		InputFiles: []string{input},
	}

	_, err := s.Run(context.Background(), req)
	require.NoError(t, err)

	_, err = s.History(context.Background(), 10)
	assert.Error(t, err)
}

func TestService_HealthCheck(t *testing.T) {
	cfg := testConfig(t)
	s := newService(t, cfg)

	assert.NoError(t, s.HealthCheck(context.Background()))
}

func TestService_UnsupportedTaskType(t *testing.T) {
	cfg := testConfig(t)
	cfg.Database.Type = "none"
	s := newService(t, cfg)

	_, err := s.Run(context.Background(), &model.AnalysisRequest{
		TaskUUID: "svc-6",
		TaskType: model.TaskType(99),
	})
	assert.ErrorIs(t, err, analyzer.ErrUnsupportedTaskType)
}

func TestService_Run_PublishesArtifacts(t *testing.T) {
	cfg := testConfig(t)
	s := newService(t, cfg)

	ms := &mock.MockStorage{}
	ms.On("StoreArtifact", stdmock.Anything, "svc-7/netstat_stats.json", stdmock.Anything).Return(nil)
	ms.On("URL", "svc-7/netstat_stats.json").Return("cos://bucket/svc-7/netstat_stats.json")
	cfg.Storage.Type = "cos"
	s.storage = ms

	input := testutil.TempFileWithName(t, "netstat.txt", netstatSample)
	_, err := s.Run(context.Background(), &model.AnalysisRequest{
		TaskUUID:   "svc-7",
		TaskType:   model.TaskTypeNetstat,
		InputFiles: []string{input},
	})
	require.NoError(t, err)
	ms.AssertExpectations(t)
}

func TestService_Run_PublishFailureNotFatal(t *testing.T) {
	cfg := testConfig(t)
	s := newService(t, cfg)

	ms := &mock.MockStorage{}
	ms.ExpectAnyStoreArtifact(errors.New("upload refused"))
	cfg.Storage.Type = "cos"
	s.storage = ms

	input := testutil.TempFileWithName(t, "netstat.txt", netstatSample)
	resp, err := s.Run(context.Background(), &model.AnalysisRequest{
		TaskUUID:   "svc-8",
		TaskType:   model.TaskTypeNetstat,
		InputFiles: []string{input},
	})
	require.NoError(t, err)
	require.NotNil(t, resp.Netstat)
}

func TestService_Run_HistoryWriteFailureAborts(t *testing.T) {
	cfg := testConfig(t)
	cfg.Database.Type = "none"
	s := newService(t, cfg)

	mr := &mock.MockRunRepository{}
	mr.ExpectCreateRun(errors.New("db down"))
	s.db = &repository.Repositories{Run: mr}

	input := testutil.TempFileWithName(t, "netstat.txt", netstatSample)
	_, err := s.Run(context.Background(), &model.AnalysisRequest{
		TaskUUID:   "svc-9",
		TaskType:   model.TaskTypeNetstat,
		InputFiles: []string{input},
	})
	require.ErrorContains(t, err, "db down")
	s.db = nil
	mr.AssertExpectations(t)
}
