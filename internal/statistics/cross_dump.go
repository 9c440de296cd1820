package statistics

import (
	"sort"

	"github.com/dump-analysis/pkg/model"
)

// TrackSeries correlates thread and group identity across a
// time-ordered sequence of dump results. The per-dump results are read,
// never mutated.
func TrackSeries(dumps []*model.DumpResult) *model.SeriesResult {
	result := &model.SeriesResult{Dumps: dumps}

	result.Timelines = buildTimelines(dumps)

	// Same-thread continuity and virtual drift look only at
	// consecutive dump pairs.
	for i := 0; i+1 < len(dumps); i++ {
		prev, next := dumps[i], dumps[i+1]

		for _, id := range sortedThreadIDs(prev) {
			before := prev.ThreadInfoByID[id]
			after, ok := next.ThreadInfoByID[id]
			if !ok {
				continue
			}

			if before.Key == after.Key {
				result.Continuities = append(result.Continuities, model.ThreadContinuity{
					FromDump:  i,
					ToDump:    i + 1,
					ThreadID:  id,
					Name:      after.Name,
					Key:       before.Key,
					IsVirtual: before.IsVirtual && after.IsVirtual,
				})
				continue
			}

			if before.IsVirtual && after.IsVirtual {
				result.Drifts = append(result.Drifts, model.VirtualDrift{
					FromDump: i,
					ToDump:   i + 1,
					ThreadID: id,
					Name:     after.Name,
					FromKey:  before.Key,
					ToKey:    after.Key,
				})
			}
		}
	}

	return result
}

// buildTimelines unions group keys across all dumps in first-seen order
// and materializes every group's count in every dump, zero when absent.
func buildTimelines(dumps []*model.DumpResult) []model.GroupTimeline {
	seen := make(map[string]bool)
	var keys []string
	for _, dump := range dumps {
		for _, key := range dump.GroupOrder {
			if !seen[key] {
				seen[key] = true
				keys = append(keys, key)
			}
		}
	}

	timelines := make([]model.GroupTimeline, 0, len(keys))
	for _, key := range keys {
		counts := make([]model.GroupCount, len(dumps))
		for i, dump := range dumps {
			counts[i] = dump.Groups[key]
		}
		timelines = append(timelines, model.GroupTimeline{Key: key, Counts: counts})
	}
	return timelines
}

func sortedThreadIDs(dump *model.DumpResult) []string {
	ids := make([]string, 0, len(dump.ThreadInfoByID))
	for id := range dump.ThreadInfoByID {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
