package formatter

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dump-analysis/pkg/model"
	"github.com/dump-analysis/pkg/utils"
)

func captureFormat(t *testing.T, resp *model.AnalysisResponse) string {
	t.Helper()
	var buf bytes.Buffer
	log := utils.NewDefaultLogger(utils.LevelInfo, &buf)
	NewRegistry().Format(resp, log)
	return buf.String()
}

func TestRegistry_RoutesByTaskType(t *testing.T) {
	r := NewRegistry()

	assert.IsType(t, &NetstatFormatter{}, r.Get(model.TaskTypeNetstat))
	assert.IsType(t, &DiffFormatter{}, r.Get(model.TaskTypeNetstatDiff))
	assert.IsType(t, &ThreadDumpFormatter{}, r.Get(model.TaskTypeThreadDump))
	assert.IsType(t, &DefaultFormatter{}, r.Get(model.TaskType(99)))
}

func TestNetstatFormatter_SortedOutput(t *testing.T) {
	resp := &model.AnalysisResponse{
		TaskUUID: "t1",
		TaskType: model.TaskTypeNetstat,
		Netstat: &model.SnapshotStats{
			Source:      "netstat.txt",
			TotalConns:  3,
			ListenPorts: []int{8080},
			StateCounts: map[string]int{
				"O ESTABLISHED(3306)": 1,
				"I ESTABLISHED(8080)": 2,
			},
			PeerCounts: map[string]map[string]int{
				"ESTABLISHED": {
					"I client-a(8080)": 2,
					"O db-1(3306)":     1,
				},
			},
		},
	}

	out := captureFormat(t, resp)

	// Lexicographic key order: incoming before outgoing.
	first := strings.Index(out, "I ESTABLISHED(8080)")
	second := strings.Index(out, "O ESTABLISHED(3306)")
	require.Positive(t, first)
	require.Positive(t, second)
	assert.Less(t, first, second)

	assert.Contains(t, out, "I client-a(8080)")
}

func TestDiffFormatter_Transitions(t *testing.T) {
	resp := &model.AnalysisResponse{
		TaskUUID: "t2",
		TaskType: model.TaskTypeNetstatDiff,
		Diff: &model.DiffReport{
			SourceA: "a.txt",
			SourceB: "b.txt",
			Port:    443,
			Transitions: []model.Transition{
				{Protocol: "tcp", LocalLabel: "1.1.1.1:443", ForeignLabel: "2.2.2.2:5000", Change: "ESTABLISHED ==> CLOSE_WAIT"},
			},
		},
	}

	out := captureFormat(t, resp)
	assert.Contains(t, out, "ESTABLISHED ==> CLOSE_WAIT")
	assert.Contains(t, out, "1.1.1.1:443")
}

func TestDiffFormatter_NoTransitions(t *testing.T) {
	resp := &model.AnalysisResponse{
		TaskUUID: "t2",
		TaskType: model.TaskTypeNetstatDiff,
		Diff:     &model.DiffReport{SourceA: "a.txt", SourceB: "b.txt", Port: 443},
	}

	out := captureFormat(t, resp)
	assert.Contains(t, out, "No matched connections on port 443")
}

func TestThreadDumpFormatter_Series(t *testing.T) {
	resp := &model.AnalysisResponse{
		TaskUUID: "t3",
		TaskType: model.TaskTypeThreadDump,
		Threads: &model.SeriesResult{
			Dumps: []*model.DumpResult{
				{
					Source:                   "dump-1.txt",
					Timestamp:                "2024-05-01 10:00:00",
					PlatformCount:            4,
					VirtualCount:             2,
					VirtualWithoutStackCount: 1,
					Groups:                   map[string]model.GroupCount{"a.b": {Total: 6}},
					NameGroups:               map[string]int{"worker": 3, "main": 1},
				},
			},
			Timelines: []model.GroupTimeline{
				{Key: "a.b", Counts: []model.GroupCount{{Total: 6}}},
			},
			Drifts: []model.VirtualDrift{
				{FromDump: 0, ToDump: 1, ThreadID: "42", FromKey: "K1", ToKey: "K2"},
			},
		},
	}

	out := captureFormat(t, resp)
	assert.Contains(t, out, "dump-1.txt")
	assert.Contains(t, out, "Platform threads:       4")
	assert.Contains(t, out, "Virtual without stack:  1")
	assert.Contains(t, out, "3  worker")
	assert.NotContains(t, out, "1  main")
	assert.Contains(t, out, "thread 42")
	assert.Contains(t, out, "from: K1")
}

func TestFormatSummary(t *testing.T) {
	r := NewRegistry()

	resp := &model.AnalysisResponse{
		TaskUUID: "t1",
		TaskType: model.TaskTypeNetstat,
		Netstat:  &model.SnapshotStats{Source: "n.txt", TotalConns: 2},
	}

	summary := r.FormatSummary(resp)
	require.NotNil(t, summary)
	assert.Equal(t, "t1", summary["task_uuid"])
	assert.Equal(t, "netstat", summary["task_type"])
	assert.Equal(t, 2, summary["total_conns"])
}

func TestTruncateString(t *testing.T) {
	assert.Equal(t, "short", truncateString("short", 10))
	assert.Equal(t, "abcdefg...", truncateString("abcdefghijkl", 10))
}
