package analyzer

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dump-analysis/internal/testutil"
	"github.com/dump-analysis/pkg/model"
)

const sampleSnapshot = `Active Internet connections (servers and established)
Proto Recv-Q Send-Q Local Address           Foreign Address         State
tcp        0      0 0.0.0.0:8080            0.0.0.0:*               LISTEN
tcp        0      0 10.0.0.1:8080           203.0.113.7:51234       ESTABLISHED
tcp        0      0 10.0.0.1:8080           203.0.113.7:51235       ESTABLISHED
tcp6       0      0 :::22                   :::*                    LISTEN
tcp        0      0 10.0.0.1:40000          198.51.100.2:3306       ESTABLISHED
udp        0      0 0.0.0.0:68              0.0.0.0:*
`

func netstatRequest(t *testing.T, content string) *model.AnalysisRequest {
	t.Helper()
	dir := testutil.TempDir(t)
	return &model.AnalysisRequest{
		TaskUUID:   "task-1",
		TaskType:   model.TaskTypeNetstat,
		InputFiles: []string{testutil.WriteFile(t, dir, "netstat.txt", content)},
		OutputDir:  dir,
	}
}

func TestNetstatAnalyzer_Analyze(t *testing.T) {
	a := NewNetstatAnalyzer(nil)
	req := netstatRequest(t, sampleSnapshot)

	resp, err := a.Analyze(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, "task-1", resp.TaskUUID)
	assert.Equal(t, model.TaskTypeNetstat, resp.TaskType)
	assert.False(t, resp.AnalyzedAt.IsZero())

	require.NotNil(t, resp.Netstat)
	assert.Equal(t, 5, resp.Netstat.TotalConns)
	assert.Equal(t, []int{22, 8080}, resp.Netstat.ListenPorts)
	assert.Equal(t, 2, resp.Netstat.StateCounts["I ESTABLISHED(8080)"])
	assert.Equal(t, 1, resp.Netstat.StateCounts["O ESTABLISHED(3306)"])
}

func TestNetstatAnalyzer_WritesArtifact(t *testing.T) {
	a := NewNetstatAnalyzer(nil)
	req := netstatRequest(t, sampleSnapshot)

	resp, err := a.Analyze(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, resp.OutputFiles, 1)
	assert.Equal(t, filepath.Join(req.OutputDir, "task-1", "netstat_stats.json"), resp.OutputFiles[0])
	assert.True(t, testutil.FileExists(t, resp.OutputFiles[0]))
}

func TestNetstatAnalyzer_ArtifactsDisabled(t *testing.T) {
	config := DefaultBaseAnalyzerConfig()
	config.WriteArtifacts = false
	a := NewNetstatAnalyzer(config)
	req := netstatRequest(t, sampleSnapshot)

	resp, err := a.Analyze(context.Background(), req)
	require.NoError(t, err)
	assert.Empty(t, resp.OutputFiles)
}

func TestNetstatAnalyzer_NameMap(t *testing.T) {
	a := NewNetstatAnalyzer(nil)
	req := netstatRequest(t, sampleSnapshot)
	req.NameMapFile = testutil.TempFileWithName(t, "names.txt", "203.0.113.7=client-a\n198.51.100.2=db-1\n")

	resp, err := a.Analyze(context.Background(), req)
	require.NoError(t, err)

	established := resp.Netstat.PeerCounts["ESTABLISHED"]
	assert.Equal(t, 2, established["I client-a(8080)"])
	assert.Equal(t, 1, established["O db-1(3306)"])
}

func TestNetstatAnalyzer_InputCount(t *testing.T) {
	a := NewNetstatAnalyzer(nil)

	_, err := a.Analyze(context.Background(), &model.AnalysisRequest{TaskType: model.TaskTypeNetstat})
	assert.ErrorIs(t, err, ErrInputCount)
}

func TestNetstatAnalyzer_EmptySnapshot(t *testing.T) {
	a := NewNetstatAnalyzer(nil)
	req := netstatRequest(t, "Proto Recv-Q Send-Q Local Address Foreign Address State\n")

	_, err := a.Analyze(context.Background(), req)
	assert.ErrorIs(t, err, ErrEmptyData)
}

func TestNetstatAnalyzer_MissingFile(t *testing.T) {
	a := NewNetstatAnalyzer(nil)
	req := &model.AnalysisRequest{
		TaskUUID:   "task-1",
		TaskType:   model.TaskTypeNetstat,
		InputFiles: []string{filepath.Join(testutil.TempDir(t), "missing.txt")},
	}

	_, err := a.Analyze(context.Background(), req)
	assert.Error(t, err)
}
