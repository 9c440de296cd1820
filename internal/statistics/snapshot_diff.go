package statistics

import (
	"fmt"

	"github.com/dump-analysis/pkg/model"
)

// transitionPriority lists the states surfaced first in a transition
// string, in display priority order.
var transitionPriority = []model.TcpState{
	model.StateEstablished,
	model.StateFinWait1,
	model.StateFinWait2,
	model.StateCloseWait,
}

// CompareSnapshots matches connections between two snapshots of the
// same host and reports state transitions for connections touching the
// target port.
//
// Only non-LISTEN records of snapshot A whose local or foreign port
// equals the target port are considered; records without an identity
// match in B are interpreted as "connection ended" and omitted. When B
// contains duplicate identities, the first match wins.
func CompareSnapshots(a, b *model.Snapshot, port int, names model.AddressNameMap) *model.DiffReport {
	report := &model.DiffReport{
		SourceA: a.Source,
		SourceB: b.Source,
		Port:    port,
	}

	for i := range a.Records {
		before := &a.Records[i]
		if before.State == model.StateListen {
			continue
		}
		if before.Local.Port != port && before.Foreign.Port != port {
			continue
		}

		after := firstMatch(b.Records, before)
		if after == nil {
			continue
		}

		report.Transitions = append(report.Transitions, model.Transition{
			Protocol:     before.Protocol,
			LocalLabel:   fmt.Sprintf("%s:%d", names.Label(before.Local.IP), before.Local.Port),
			ForeignLabel: fmt.Sprintf("%s:%d", names.Label(before.Foreign.IP), before.Foreign.Port),
			Change:       transitionString(before.State, after.State),
		})
	}

	return report
}

// firstMatch returns the first record in the list with the same
// identity, or nil.
func firstMatch(records []model.ConnectionRecord, target *model.ConnectionRecord) *model.ConnectionRecord {
	for i := range records {
		if records[i].SameConnection(target) {
			return &records[i]
		}
	}
	return nil
}

// transitionString orders the two states so the prioritized one is
// shown first; without a priority hit, A's original state leads.
func transitionString(stateA, stateB model.TcpState) string {
	for _, priority := range transitionPriority {
		if stateA == priority {
			return fmt.Sprintf("%s ==> %s", stateA, stateB)
		}
		if stateB == priority {
			return fmt.Sprintf("%s ==> %s", stateB, stateA)
		}
	}
	return fmt.Sprintf("%s ==> %s", stateA, stateB)
}
