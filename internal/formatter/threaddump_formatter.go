package formatter

import (
	"sort"

	"github.com/dump-analysis/pkg/model"
	"github.com/dump-analysis/pkg/utils"
)

// maxGroupsShown caps the per-dump group listing in log output. The
// artifact file always carries the full set.
const maxGroupsShown = 15

// ThreadDumpFormatter formats thread-dump series results.
type ThreadDumpFormatter struct{}

// SupportedTypes returns the task types this formatter supports.
func (f *ThreadDumpFormatter) SupportedTypes() []model.TaskType {
	return []model.TaskType{model.TaskTypeThreadDump}
}

// Format outputs the series aggregate to the logger.
func (f *ThreadDumpFormatter) Format(resp *model.AnalysisResponse, log utils.Logger) {
	log.Info("=== Thread Dump Series ===")
	log.Info("Task UUID:      %s", resp.TaskUUID)

	series := resp.Threads
	if series == nil {
		log.Info("(No thread dump data available)")
		return
	}

	log.Info("Dumps:          %d", len(series.Dumps))
	log.Info("")

	for _, dump := range series.Dumps {
		log.Info("=== %s (%s) ===", dump.Source, dump.Timestamp)
		log.Info("  Platform threads:       %d", dump.PlatformCount)
		log.Info("  Virtual threads:        %d", dump.VirtualCount)
		log.Info("  Virtual without stack:  %d", dump.VirtualWithoutStackCount)
		log.Info("  Carrier threads:        %d", dump.CarrierCount)
		log.Info("  Stack groups:           %d", len(dump.Groups))
		f.printNameGroups(dump, log)
		log.Info("")
	}

	f.printTimelines(series, log)
	f.printContinuity(series, log)

	printOutputFiles(resp, log)
}

// printNameGroups lists thread pools with more than one member, so a
// dump full of "worker-N" threads reads as one pool.
func (f *ThreadDumpFormatter) printNameGroups(dump *model.DumpResult, log utils.Logger) {
	var pools []string
	for name, count := range dump.NameGroups {
		if count > 1 {
			pools = append(pools, name)
		}
	}
	if len(pools) == 0 {
		return
	}
	sort.Strings(pools)

	log.Info("  Thread pools:")
	for _, name := range pools {
		log.Info("    %4d  %s", dump.NameGroups[name], truncateString(name, 80))
	}
}

func (f *ThreadDumpFormatter) printTimelines(series *model.SeriesResult, log utils.Logger) {
	if len(series.Timelines) == 0 {
		return
	}

	log.Info("=== Stack Groups Across Dumps ===")
	shown := min(maxGroupsShown, len(series.Timelines))
	for i := 0; i < shown; i++ {
		tl := series.Timelines[i]
		totals := make([]int, len(tl.Counts))
		for j, c := range tl.Counts {
			totals[j] = c.Total
		}
		log.Info("  %v  %s", totals, truncateString(tl.Key, 100))
	}
	if len(series.Timelines) > shown {
		log.Info("  ... and %d more groups", len(series.Timelines)-shown)
	}
	log.Info("")
}

func (f *ThreadDumpFormatter) printContinuity(series *model.SeriesResult, log utils.Logger) {
	if len(series.Continuities) > 0 {
		log.Info("=== Thread Continuity ===")
		for _, c := range series.Continuities {
			log.Info("  dump %d -> %d  thread %s %q unchanged", c.FromDump+1, c.ToDump+1, c.ThreadID, c.Name)
		}
		log.Info("")
	}

	if len(series.Drifts) > 0 {
		log.Info("=== Virtual Thread Drift ===")
		for _, d := range series.Drifts {
			log.Info("  dump %d -> %d  thread %s %q", d.FromDump+1, d.ToDump+1, d.ThreadID, d.Name)
			log.Info("    from: %s", truncateString(d.FromKey, 100))
			log.Info("    to:   %s", truncateString(d.ToKey, 100))
		}
		log.Info("")
	}
}

// FormatSummary returns a summary map for serialization.
func (f *ThreadDumpFormatter) FormatSummary(resp *model.AnalysisResponse) map[string]interface{} {
	summary := map[string]interface{}{
		"task_uuid":    resp.TaskUUID,
		"task_type":    resp.TaskType.String(),
		"output_files": resp.OutputFiles,
	}

	if resp.Threads != nil {
		dumps := make([]map[string]interface{}, 0, len(resp.Threads.Dumps))
		for _, dump := range resp.Threads.Dumps {
			dumps = append(dumps, map[string]interface{}{
				"source":                dump.Source,
				"timestamp":             dump.Timestamp,
				"platform_count":        dump.PlatformCount,
				"virtual_count":         dump.VirtualCount,
				"virtual_without_stack": dump.VirtualWithoutStackCount,
				"carrier_count":         dump.CarrierCount,
				"group_count":           len(dump.Groups),
			})
		}
		summary["dumps"] = dumps
		summary["group_count"] = len(resp.Threads.Timelines)
		summary["continuity_count"] = len(resp.Threads.Continuities)
		summary["drift_count"] = len(resp.Threads.Drifts)
	}

	return summary
}
