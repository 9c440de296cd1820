// Package statistics aggregates parsed connection and thread-dump
// records into report structures.
package statistics

import (
	"fmt"
	"sort"

	"github.com/dump-analysis/pkg/model"
)

// ListenPorts returns the local ports of all LISTEN records in one
// snapshot. Recomputed per snapshot, never mutated afterwards.
func ListenPorts(records []model.ConnectionRecord) map[int]bool {
	ports := make(map[int]bool)
	for _, record := range records {
		if record.State == model.StateListen {
			ports[record.Local.Port] = true
		}
	}
	return ports
}

// Direction classifies a record as incoming iff its local port is a
// known listener. A local port that coincides with an unrelated
// listener still classifies as incoming; the heuristic is kept as is.
func Direction(record *model.ConnectionRecord, listenPorts map[int]bool) model.TcpDirection {
	if listenPorts[record.Local.Port] {
		return model.DirectionIncoming
	}
	return model.DirectionOutgoing
}

// reportPort returns the port shown in report keys: the local port for
// incoming connections, the foreign port for outgoing ones.
func reportPort(record *model.ConnectionRecord, direction model.TcpDirection) int {
	if direction == model.DirectionIncoming {
		return record.Local.Port
	}
	return record.Foreign.Port
}

// CountsByStateAndDirection counts records of the given direction per
// "<dir-tag> <state>(<port>)" key. LISTEN records are never included.
func CountsByStateAndDirection(records []model.ConnectionRecord, listenPorts map[int]bool, direction model.TcpDirection) map[string]int {
	counts := make(map[string]int)
	for i := range records {
		record := &records[i]
		if record.State == model.StateListen {
			continue
		}
		if Direction(record, listenPorts) != direction {
			continue
		}

		key := fmt.Sprintf("%s %s(%d)", direction.Tag(), record.State, reportPort(record, direction))
		counts[key]++
	}
	return counts
}

// CountsByPeerAndDirection counts records of the given state and
// direction per "<dir-tag> <peerLabel>(<port>)" key. The peer label is
// always the mapped name of the foreign IP, regardless of direction.
func CountsByPeerAndDirection(records []model.ConnectionRecord, state model.TcpState, names model.AddressNameMap, listenPorts map[int]bool, direction model.TcpDirection) map[string]int {
	counts := make(map[string]int)
	for i := range records {
		record := &records[i]
		if record.State != state {
			continue
		}
		if Direction(record, listenPorts) != direction {
			continue
		}

		key := fmt.Sprintf("%s %s(%d)", direction.Tag(), names.Label(record.Foreign.IP), reportPort(record, direction))
		counts[key]++
	}
	return counts
}

// BuildSnapshotStats computes the full aggregate view of one snapshot.
// Map keys are rendered lexicographically by the formatter; the sorted
// listen-port slice keeps the report deterministic.
func BuildSnapshotStats(snapshot *model.Snapshot, names model.AddressNameMap) *model.SnapshotStats {
	listenPorts := ListenPorts(snapshot.Records)

	stats := &model.SnapshotStats{
		Source:      snapshot.Source,
		TotalConns:  len(snapshot.Records),
		ListenPorts: sortedPorts(listenPorts),
		StateCounts: make(map[string]int),
		PeerCounts:  make(map[string]map[string]int),
	}

	for _, direction := range []model.TcpDirection{model.DirectionIncoming, model.DirectionOutgoing} {
		for key, count := range CountsByStateAndDirection(snapshot.Records, listenPorts, direction) {
			stats.StateCounts[key] += count
		}
	}

	for _, state := range presentStates(snapshot.Records) {
		peers := make(map[string]int)
		for _, direction := range []model.TcpDirection{model.DirectionIncoming, model.DirectionOutgoing} {
			for key, count := range CountsByPeerAndDirection(snapshot.Records, state, names, listenPorts, direction) {
				peers[key] += count
			}
		}
		if len(peers) > 0 {
			stats.PeerCounts[state.String()] = peers
		}
	}

	return stats
}

// presentStates returns the distinct non-LISTEN states of a snapshot in
// a stable order.
func presentStates(records []model.ConnectionRecord) []model.TcpState {
	seen := make(map[model.TcpState]bool)
	for _, record := range records {
		if record.State != model.StateListen {
			seen[record.State] = true
		}
	}

	states := make([]model.TcpState, 0, len(seen))
	for state := range seen {
		states = append(states, state)
	}
	sort.Slice(states, func(i, j int) bool { return states[i] < states[j] })
	return states
}

func sortedPorts(ports map[int]bool) []int {
	result := make([]int, 0, len(ports))
	for port := range ports {
		result = append(result, port)
	}
	sort.Ints(result)
	return result
}
