// Package model defines the core data structures used throughout the application.
package model

import (
	"fmt"
	"strconv"
)

// WildcardPort encodes the "*" (any) port of a listening socket's
// foreign address.
const WildcardPort = -1

// Address is one endpoint of a TCP connection. Equality is structural.
type Address struct {
	IP   string `json:"ip"`
	Port int    `json:"port"`
}

// String formats the address as ip:port, with "*" for a wildcard port.
func (a Address) String() string {
	if a.Port == WildcardPort {
		return a.IP + ":*"
	}
	return a.IP + ":" + strconv.Itoa(a.Port)
}

// IsWildcardPort reports whether the port is the wildcard.
func (a Address) IsWildcardPort() bool {
	return a.Port == WildcardPort
}

// TcpState is the closed set of TCP connection states accepted from a
// connection table. Unknown state tokens are a parse error.
type TcpState int

const (
	StateListen TcpState = iota
	StateEstablished
	StateTimeWait
	StateFinWait1
	StateFinWait2
	StateCloseWait
	StateSynRecv
	StateSynSent
	StateLastAck
)

// String returns the netstat token for the state.
func (s TcpState) String() string {
	switch s {
	case StateListen:
		return "LISTEN"
	case StateEstablished:
		return "ESTABLISHED"
	case StateTimeWait:
		return "TIME_WAIT"
	case StateFinWait1:
		return "FIN_WAIT1"
	case StateFinWait2:
		return "FIN_WAIT2"
	case StateCloseWait:
		return "CLOSE_WAIT"
	case StateSynRecv:
		return "SYN_RECV"
	case StateSynSent:
		return "SYN_SENT"
	case StateLastAck:
		return "LAST_ACK"
	default:
		return "UNKNOWN"
	}
}

// tcpStateTokens maps netstat state tokens to TcpState values.
var tcpStateTokens = map[string]TcpState{
	"LISTEN":      StateListen,
	"ESTABLISHED": StateEstablished,
	"TIME_WAIT":   StateTimeWait,
	"FIN_WAIT1":   StateFinWait1,
	"FIN_WAIT2":   StateFinWait2,
	"CLOSE_WAIT":  StateCloseWait,
	"SYN_RECV":    StateSynRecv,
	"SYN_SENT":    StateSynSent,
	"LAST_ACK":    StateLastAck,
}

// ParseTcpState parses a netstat state token.
func ParseTcpState(token string) (TcpState, error) {
	state, ok := tcpStateTokens[token]
	if !ok {
		return 0, fmt.Errorf("unrecognized TCP state %q", token)
	}
	return state, nil
}

// TcpDirection classifies a connection relative to the local listener set.
type TcpDirection int

const (
	// DirectionIncoming means the connection's local port is a known listener.
	DirectionIncoming TcpDirection = iota
	// DirectionOutgoing means the connection was initiated from this host.
	DirectionOutgoing
)

// Tag returns the single-letter tag used in report keys.
func (d TcpDirection) Tag() string {
	if d == DirectionIncoming {
		return "I"
	}
	return "O"
}

// String returns the direction name.
func (d TcpDirection) String() string {
	if d == DirectionIncoming {
		return "incoming"
	}
	return "outgoing"
}

// ConnectionRecord is one parsed connection-table line.
//
// Identity for matching between snapshots is (Protocol, Local, Foreign);
// queue sizes and state legitimately differ between two observations of
// the same logical connection and are excluded from identity.
type ConnectionRecord struct {
	Protocol  string   `json:"protocol"`
	RecvQueue int      `json:"recv_queue"`
	SendQueue int      `json:"send_queue"`
	Local     Address  `json:"local"`
	Foreign   Address  `json:"foreign"`
	State     TcpState `json:"state"`
}

// ConnectionKey is the matching identity of a ConnectionRecord.
type ConnectionKey struct {
	Protocol string
	Local    Address
	Foreign  Address
}

// Key returns the record's matching identity.
func (r *ConnectionRecord) Key() ConnectionKey {
	return ConnectionKey{Protocol: r.Protocol, Local: r.Local, Foreign: r.Foreign}
}

// SameConnection reports whether two records describe the same logical
// connection, ignoring state and queue sizes.
func (r *ConnectionRecord) SameConnection(other *ConnectionRecord) bool {
	return r.Key() == other.Key()
}

// Snapshot is one parsed point-in-time connection table.
type Snapshot struct {
	// Source is the file path (or storage key) the snapshot came from.
	Source string `json:"source"`

	// Records holds the parsed TCP connection records in file order.
	Records []ConnectionRecord `json:"records"`

	// SkippedLines counts malformed connection lines that were skipped.
	SkippedLines int `json:"skipped_lines"`
}

// AddressNameMap maps a literal IP string to a display label. Display
// only; never consulted for matching or aggregation.
type AddressNameMap map[string]string

// Label returns the mapped name for an IP, falling back to the IP itself.
func (m AddressNameMap) Label(ip string) string {
	if m == nil {
		return ip
	}
	if name, ok := m[ip]; ok {
		return name
	}
	return ip
}
