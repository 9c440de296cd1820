package formatter

import (
	"sort"

	"github.com/dump-analysis/pkg/model"
	"github.com/dump-analysis/pkg/utils"
)

// NetstatFormatter formats single-snapshot connection aggregates.
type NetstatFormatter struct{}

// SupportedTypes returns the task types this formatter supports.
func (f *NetstatFormatter) SupportedTypes() []model.TaskType {
	return []model.TaskType{model.TaskTypeNetstat}
}

// Format outputs the snapshot aggregate to the logger. Count keys are
// printed in lexicographic order.
func (f *NetstatFormatter) Format(resp *model.AnalysisResponse, log utils.Logger) {
	log.Info("=== Connection Snapshot ===")
	log.Info("Task UUID:      %s", resp.TaskUUID)

	stats := resp.Netstat
	if stats == nil {
		log.Info("(No snapshot data available)")
		return
	}

	log.Info("Source:         %s", stats.Source)
	log.Info("Connections:    %d", stats.TotalConns)
	if resp.SkippedLines > 0 {
		log.Info("Skipped Lines:  %d", resp.SkippedLines)
	}
	log.Info("Listen Ports:   %v", stats.ListenPorts)
	log.Info("")

	log.Info("=== Connections by State ===")
	for _, key := range sortedKeys(stats.StateCounts) {
		log.Info("  %4d  %s", stats.StateCounts[key], key)
	}
	log.Info("")

	for _, state := range sortedStates(stats.PeerCounts) {
		peers := stats.PeerCounts[state]
		log.Info("=== %s Peers ===", state)
		for _, key := range sortedKeys(peers) {
			log.Info("  %4d  %s", peers[key], truncateString(key, 80))
		}
		log.Info("")
	}

	printOutputFiles(resp, log)
}

// FormatSummary returns a summary map for serialization.
func (f *NetstatFormatter) FormatSummary(resp *model.AnalysisResponse) map[string]interface{} {
	summary := map[string]interface{}{
		"task_uuid":     resp.TaskUUID,
		"task_type":     resp.TaskType.String(),
		"skipped_lines": resp.SkippedLines,
		"output_files":  resp.OutputFiles,
	}

	if resp.Netstat != nil {
		summary["source"] = resp.Netstat.Source
		summary["total_conns"] = resp.Netstat.TotalConns
		summary["listen_ports"] = resp.Netstat.ListenPorts
		summary["state_counts"] = resp.Netstat.StateCounts
		summary["peer_counts"] = resp.Netstat.PeerCounts
	}

	return summary
}

// sortedStates returns the peer-count state keys in lexicographic
// order.
func sortedStates(peerCounts map[string]map[string]int) []string {
	states := make([]string, 0, len(peerCounts))
	for state := range peerCounts {
		states = append(states, state)
	}
	sort.Strings(states)
	return states
}
