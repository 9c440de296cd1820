package model

// ThreadEntry is one thread header plus its captured stack from a
// thread-dump file. Built once per header block, immutable thereafter.
type ThreadEntry struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	IsVirtual   bool     `json:"is_virtual"`
	StackFrames []string `json:"stack_frames"`
}

// HasStack reports whether the entry captured any stack frames.
func (e *ThreadEntry) HasStack() bool {
	return len(e.StackFrames) > 0
}

// EmptyStackKey is the canonical grouping key of an empty frame list.
const EmptyStackKey = "<empty>"

// GroupCount accumulates per-group totals during a single dump scan.
type GroupCount struct {
	Total    int `json:"total"`
	Platform int `json:"platform"`
	Virtual  int `json:"virtual"`
}

// ThreadRef records per-thread-id classification within one dump, used
// for cross-dump continuity checks. HasStack reflects the raw,
// unfiltered stack.
type ThreadRef struct {
	Key       string `json:"key"`
	IsVirtual bool   `json:"is_virtual"`
	HasStack  bool   `json:"has_stack"`
	Name      string `json:"name"`
}

// DumpResult is the per-dump aggregate. Built once per input file and
// read-only afterward.
type DumpResult struct {
	// Source is the file path the dump came from.
	Source string `json:"source"`

	// Timestamp is the resolved dump timestamp (see timestamp
	// resolution order in the threaddump parser); worst case the raw
	// filename.
	Timestamp string `json:"timestamp"`

	PlatformCount            int `json:"platform_count"`
	VirtualCount             int `json:"virtual_count"`
	VirtualWithoutStackCount int `json:"virtual_without_stack_count"`
	CarrierCount             int `json:"carrier_count"`

	// Groups maps normalized stack key to its counts.
	Groups map[string]GroupCount `json:"groups"`

	// GroupOrder lists group keys in first-seen order within the dump,
	// so cross-dump reports stay deterministic.
	GroupOrder []string `json:"group_order"`

	// NameGroups counts threads by pool name, i.e. the thread name with
	// trailing numbers and separators removed.
	NameGroups map[string]int `json:"name_groups"`

	// ThreadInfoByID maps thread id to its per-dump classification.
	ThreadInfoByID map[string]ThreadRef `json:"thread_info_by_id"`
}

// GroupTimeline is one behavioral group's counts across the whole dump
// series, in dump order; a zero GroupCount means the group was absent.
type GroupTimeline struct {
	Key    string       `json:"key"`
	Counts []GroupCount `json:"counts"`
}

// ThreadContinuity reports a thread id seen in two consecutive dumps
// with an unchanged normalized key.
type ThreadContinuity struct {
	FromDump  int    `json:"from_dump"`
	ToDump    int    `json:"to_dump"`
	ThreadID  string `json:"thread_id"`
	Name      string `json:"name"`
	Key       string `json:"key"`
	IsVirtual bool   `json:"is_virtual"`
}

// VirtualDrift reports a virtual thread id whose normalized key changed
// between two consecutive dumps.
type VirtualDrift struct {
	FromDump int    `json:"from_dump"`
	ToDump   int    `json:"to_dump"`
	ThreadID string `json:"thread_id"`
	Name     string `json:"name"`
	FromKey  string `json:"from_key"`
	ToKey    string `json:"to_key"`
}

// SeriesResult is the cross-dump correlation over an ordered dump series.
type SeriesResult struct {
	Dumps        []*DumpResult      `json:"dumps"`
	Timelines    []GroupTimeline    `json:"timelines"`
	Continuities []ThreadContinuity `json:"continuities"`
	Drifts       []VirtualDrift     `json:"drifts"`
}
