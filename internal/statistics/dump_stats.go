package statistics

import (
	"strings"

	"github.com/dump-analysis/internal/parser/threaddump"
	"github.com/dump-analysis/pkg/filter"
	"github.com/dump-analysis/pkg/model"
	"github.com/dump-analysis/pkg/profiling"
)

// carrierFrameSignatures are internal JDK frames a platform thread only
// runs while carrying a virtual thread's continuation. Matching them is
// a heuristic, not exact.
var carrierFrameSignatures = []string{
	"jdk.internal.vm.Continuation.run",
	"java.lang.VirtualThread.runContinuation",
}

// AggregateDump computes the per-dump aggregate for one thread-dump
// file's entries.
//
// With an active filter, an entry whose stack has no matching frames is
// excluded entirely; entries with no stack at all are kept, so the
// without-stack counters never depend on the filter. Grouping keys are
// computed over the filtered frames when a filter is active.
func AggregateDump(entries []model.ThreadEntry, f *filter.FrameFilter, source, timestamp string) *model.DumpResult {
	result := &model.DumpResult{
		Source:         source,
		Timestamp:      timestamp,
		Groups:         make(map[string]model.GroupCount),
		NameGroups:     make(map[string]int),
		ThreadInfoByID: make(map[string]model.ThreadRef),
	}

	for i := range entries {
		entry := &entries[i]

		frames := entry.StackFrames
		if f.Active() && entry.HasStack() {
			frames = f.Apply(frames)
			if len(frames) == 0 {
				continue
			}
		}

		if entry.IsVirtual {
			result.VirtualCount++
			if !entry.HasStack() {
				result.VirtualWithoutStackCount++
			}
		} else {
			result.PlatformCount++
			if isCarrier(frames) {
				result.CarrierCount++
			}
		}

		result.NameGroups[profiling.ExtractThreadGroup(entry.Name)]++

		key := threaddump.NormalizeStack(frames)

		group, seen := result.Groups[key]
		if !seen {
			result.GroupOrder = append(result.GroupOrder, key)
		}
		group.Total++
		if entry.IsVirtual {
			group.Virtual++
		} else {
			group.Platform++
		}
		result.Groups[key] = group

		result.ThreadInfoByID[entry.ID] = model.ThreadRef{
			Key:       key,
			IsVirtual: entry.IsVirtual,
			HasStack:  entry.HasStack(),
			Name:      entry.Name,
		}
	}

	return result
}

// isCarrier reports whether any frame matches a known carrier
// signature.
func isCarrier(frames []string) bool {
	for _, frame := range frames {
		for _, signature := range carrierFrameSignatures {
			if strings.Contains(frame, signature) {
				return true
			}
		}
	}
	return false
}
