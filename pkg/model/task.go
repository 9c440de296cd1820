package model

import "time"

// TaskType represents the type of analysis task.
type TaskType int

const (
	// TaskTypeNetstat analyzes a single connection-table snapshot.
	TaskTypeNetstat TaskType = 0
	// TaskTypeNetstatDiff compares two snapshots for one port.
	TaskTypeNetstatDiff TaskType = 1
	// TaskTypeThreadDump analyzes an ordered series of thread dumps.
	TaskTypeThreadDump TaskType = 2
)

// String returns the string representation of TaskType.
func (t TaskType) String() string {
	switch t {
	case TaskTypeNetstat:
		return "netstat"
	case TaskTypeNetstatDiff:
		return "netstat_diff"
	case TaskTypeThreadDump:
		return "threaddump"
	default:
		return "unknown"
	}
}

// ParseTaskType parses a task type name.
func ParseTaskType(name string) (TaskType, bool) {
	switch name {
	case "netstat":
		return TaskTypeNetstat, true
	case "netstat_diff":
		return TaskTypeNetstatDiff, true
	case "threaddump":
		return TaskTypeThreadDump, true
	default:
		return 0, false
	}
}

// RunStatus represents the lifecycle state of a recorded analysis run.
type RunStatus int

const (
	RunStatusPending RunStatus = 0
	RunStatusRunning RunStatus = 1
	RunStatusDone    RunStatus = 2
	RunStatusFailed  RunStatus = 3
)

// String returns the string representation of RunStatus.
func (s RunStatus) String() string {
	switch s {
	case RunStatusPending:
		return "pending"
	case RunStatusRunning:
		return "running"
	case RunStatusDone:
		return "done"
	case RunStatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// AnalysisRequest describes one analysis invocation. Input paths are
// already resolved by the caller (local paths or storage keys).
type AnalysisRequest struct {
	TaskUUID   string
	TaskType   TaskType
	InputFiles []string
	OutputDir  string

	// NameMapFile optionally points at a key=value address name map.
	NameMapFile string

	// Port is the target port for TaskTypeNetstatDiff.
	Port int

	// Filter is the optional case-insensitive frame substring filter
	// for TaskTypeThreadDump.
	Filter string
}

// AnalysisResponse is the structured result of one analysis run.
type AnalysisResponse struct {
	TaskUUID     string         `json:"task_uuid"`
	TaskType     TaskType       `json:"task_type"`
	AnalyzedAt   time.Time      `json:"analyzed_at"`
	SkippedLines int            `json:"skipped_lines,omitempty"`
	OutputFiles  []string       `json:"output_files,omitempty"`
	Netstat      *SnapshotStats `json:"netstat,omitempty"`
	Diff         *DiffReport    `json:"diff,omitempty"`
	Threads      *SeriesResult  `json:"threads,omitempty"`
	Error        string         `json:"error,omitempty"`
}

// SnapshotStats is the aggregate view of a single snapshot.
type SnapshotStats struct {
	Source      string `json:"source"`
	TotalConns  int    `json:"total_conns"`
	ListenPorts []int  `json:"listen_ports"`

	// StateCounts maps "<dir-tag> <state>(<port>)" to a count.
	StateCounts map[string]int `json:"state_counts"`

	// PeerCounts maps a state token to its "<dir-tag> <peer>(<port>)"
	// counts.
	PeerCounts map[string]map[string]int `json:"peer_counts"`
}

// Transition is one matched connection's state change between two
// snapshots of the same host.
type Transition struct {
	Protocol     string `json:"protocol"`
	LocalLabel   string `json:"local"`
	ForeignLabel string `json:"foreign"`
	// Change is the display-ordered transition, e.g.
	// "ESTABLISHED ==> CLOSE_WAIT".
	Change string `json:"change"`
}

// DiffReport is the result of comparing two snapshots for one port.
type DiffReport struct {
	SourceA     string       `json:"source_a"`
	SourceB     string       `json:"source_b"`
	Port        int          `json:"port"`
	Transitions []Transition `json:"transitions"`
}
