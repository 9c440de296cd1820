package analyzer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dump-analysis/internal/testutil"
	"github.com/dump-analysis/pkg/model"
)

const dumpOne = `2024-05-01 10:00:00
#1 "main"
at com.example.App.run(App.java:12)

#42 "handler" virtual
at com.example.Handler.handle(Handler.java:5)
`

const dumpTwo = `2024-05-01 10:00:30
#1 "main"
at com.example.App.run(App.java:12)

#42 "handler" virtual
at com.example.Handler.flush(Handler.java:9)
`

func threadRequest(t *testing.T, filter string) *model.AnalysisRequest {
	t.Helper()
	dir := testutil.TempDir(t)
	return &model.AnalysisRequest{
		TaskUUID: "task-3",
		TaskType: model.TaskTypeThreadDump,
		InputFiles: []string{
			testutil.WriteFile(t, dir, "dump-1.txt", dumpOne),
			testutil.WriteFile(t, dir, "dump-2.txt", dumpTwo),
		},
		OutputDir: dir,
		Filter:    filter,
	}
}

func TestThreadDumpAnalyzer_Analyze(t *testing.T) {
	a := NewThreadDumpAnalyzer(nil)

	resp, err := a.Analyze(context.Background(), threadRequest(t, ""))
	require.NoError(t, err)

	require.NotNil(t, resp.Threads)
	require.Len(t, resp.Threads.Dumps, 2)

	first := resp.Threads.Dumps[0]
	assert.Equal(t, "2024-05-01 10:00:00", first.Timestamp)
	assert.Equal(t, 1, first.PlatformCount)
	assert.Equal(t, 1, first.VirtualCount)

	// Same key in both dumps for the platform thread, drift for the
	// virtual one.
	require.Len(t, resp.Threads.Continuities, 1)
	assert.Equal(t, "1", resp.Threads.Continuities[0].ThreadID)
	require.Len(t, resp.Threads.Drifts, 1)
	assert.Equal(t, "42", resp.Threads.Drifts[0].ThreadID)
	assert.Equal(t, "com.example.Handler.handle", resp.Threads.Drifts[0].FromKey)
	assert.Equal(t, "com.example.Handler.flush", resp.Threads.Drifts[0].ToKey)

	require.Len(t, resp.OutputFiles, 1)
	assert.True(t, testutil.FileExists(t, resp.OutputFiles[0]))
}

func TestThreadDumpAnalyzer_Filter(t *testing.T) {
	a := NewThreadDumpAnalyzer(nil)

	resp, err := a.Analyze(context.Background(), threadRequest(t, "handler"))
	require.NoError(t, err)

	// The main thread has no matching frames in either dump.
	for _, dump := range resp.Threads.Dumps {
		assert.Equal(t, 0, dump.PlatformCount)
		assert.Equal(t, 1, dump.VirtualCount)
	}
}

func TestThreadDumpAnalyzer_NoInputs(t *testing.T) {
	a := NewThreadDumpAnalyzer(nil)

	_, err := a.Analyze(context.Background(), &model.AnalysisRequest{TaskType: model.TaskTypeThreadDump})
	assert.ErrorIs(t, err, ErrNoInputFiles)
}

func TestThreadDumpAnalyzer_TimestampFromFilename(t *testing.T) {
	a := NewThreadDumpAnalyzer(nil)
	dir := testutil.TempDir(t)
	req := &model.AnalysisRequest{
		TaskUUID: "task-3",
		TaskType: model.TaskTypeThreadDump,
		InputFiles: []string{
			testutil.WriteFile(t, dir, "dump-2024-05-01T10-00-00.txt", "#1 \"main\"\nat com.example.App.run(App.java:12)\n"),
		},
		OutputDir: dir,
	}

	resp, err := a.Analyze(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "2024-05-01 10:00:00", resp.Threads.Dumps[0].Timestamp)
}
