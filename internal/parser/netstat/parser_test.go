package netstat

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dump-analysis/internal/parser"
	"github.com/dump-analysis/internal/testutil"
	"github.com/dump-analysis/pkg/model"
)

const sampleTable = `Active Internet connections (servers and established)
Proto Recv-Q Send-Q Local Address           Foreign Address         State
tcp        0      0 0.0.0.0:8080            0.0.0.0:*               LISTEN
tcp        0     52 192.168.1.10:8080       203.0.113.7:51234       ESTABLISHED
tcp6       0      0 :::22                   :::*                    LISTEN
tcp        0      0 192.168.1.10:43210      198.51.100.2:443        TIME_WAIT
udp        0      0 0.0.0.0:68              0.0.0.0:*
unix  2      [ ACC ]     STREAM     LISTENING     12345    /run/x.sock
`

func TestParser_Parse_BasicTable(t *testing.T) {
	p := NewParser(nil)
	snapshot, err := p.Parse(context.Background(), strings.NewReader(sampleTable), "netstat-1.txt")

	require.NoError(t, err)
	require.NotNil(t, snapshot)
	assert.Equal(t, "netstat-1.txt", snapshot.Source)
	assert.Equal(t, 0, snapshot.SkippedLines)
	require.Len(t, snapshot.Records, 4)

	first := snapshot.Records[0]
	assert.Equal(t, "tcp", first.Protocol)
	assert.Equal(t, model.StateListen, first.State)
	assert.Equal(t, 8080, first.Local.Port)
	assert.True(t, first.Foreign.IsWildcardPort())

	// tcp6 wildcard listener
	sshd := snapshot.Records[2]
	assert.Equal(t, "tcp6", sshd.Protocol)
	assert.Equal(t, model.Address{IP: "0.0.0.0", Port: 22}, sshd.Local)
}

func TestParser_Parse_IgnoresNonTCPLines(t *testing.T) {
	input := `Proto Recv-Q Send-Q Local Address Foreign Address State
udp 0 0 0.0.0.0:68 0.0.0.0:*
tcp 0 0 1.1.1.1:80 2.2.2.2:5000 ESTABLISHED
`
	p := NewParser(nil)
	snapshot, err := p.Parse(context.Background(), strings.NewReader(input), "t")

	require.NoError(t, err)
	assert.Len(t, snapshot.Records, 1)
	assert.Equal(t, 0, snapshot.SkippedLines)
}

func TestParser_Parse_SkipsMalformedLines(t *testing.T) {
	input := `tcp 0 0 1.1.1.1:80 2.2.2.2:5000 ESTABLISHED
tcp 0 0 1.1.1.1:80 2.2.2.2:5000 WEIRD_STATE
tcp x 0 1.1.1.1:80 2.2.2.2:5000 ESTABLISHED
tcp 0 0 1.1.1.1:80 2.2.2.2:5000
tcp 0 0 1.1.1.1:80 bogus ESTABLISHED
tcp 0 0 3.3.3.3:443 4.4.4.4:6000 CLOSE_WAIT
`
	p := NewParser(nil)
	snapshot, err := p.Parse(context.Background(), strings.NewReader(input), "t")

	require.NoError(t, err)
	assert.Len(t, snapshot.Records, 2)
	assert.Equal(t, 4, snapshot.SkippedLines)
}

func TestParser_Parse_StrictModeAborts(t *testing.T) {
	input := `tcp 0 0 1.1.1.1:80 2.2.2.2:5000 ESTABLISHED
tcp 0 0 1.1.1.1:80 2.2.2.2:5000 WEIRD_STATE
`
	p := NewParser(&parser.Options{StrictMode: true})
	_, err := p.Parse(context.Background(), strings.NewReader(input), "t")

	require.Error(t, err)
	assert.True(t, errors.Is(err, parser.ErrMalformedLine))
	assert.Contains(t, err.Error(), "line 2")
}

func TestParser_Parse_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := NewParser(nil)
	_, err := p.Parse(ctx, strings.NewReader(sampleTable), "t")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestParseLine_States(t *testing.T) {
	tests := []struct {
		token string
		want  model.TcpState
	}{
		{"LISTEN", model.StateListen},
		{"ESTABLISHED", model.StateEstablished},
		{"TIME_WAIT", model.StateTimeWait},
		{"FIN_WAIT1", model.StateFinWait1},
		{"FIN_WAIT2", model.StateFinWait2},
		{"CLOSE_WAIT", model.StateCloseWait},
		{"SYN_RECV", model.StateSynRecv},
		{"SYN_SENT", model.StateSynSent},
		{"LAST_ACK", model.StateLastAck},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			record, err := ParseLine("tcp 0 0 1.1.1.1:80 2.2.2.2:5000 " + tt.token)
			require.NoError(t, err)
			assert.Equal(t, tt.want, record.State)
			assert.Equal(t, tt.token, record.State.String())
		})
	}
}

func TestParseLine_QueueSizes(t *testing.T) {
	record, err := ParseLine("tcp 17 52 1.1.1.1:80 2.2.2.2:5000 ESTABLISHED")
	require.NoError(t, err)
	assert.Equal(t, 17, record.RecvQueue)
	assert.Equal(t, 52, record.SendQueue)
}

func TestConnectionRecord_Identity(t *testing.T) {
	a, err := ParseLine("tcp 0 0 1.1.1.1:443 2.2.2.2:5000 ESTABLISHED")
	require.NoError(t, err)
	b, err := ParseLine("tcp 9 9 1.1.1.1:443 2.2.2.2:5000 CLOSE_WAIT")
	require.NoError(t, err)

	// Queue sizes and state are excluded from identity.
	assert.True(t, a.SameConnection(&b))
	assert.Equal(t, a.Key(), b.Key())

	c, err := ParseLine("tcp6 0 0 1.1.1.1:443 2.2.2.2:5000 ESTABLISHED")
	require.NoError(t, err)
	assert.False(t, a.SameConnection(&c))
}

func TestParser_Parse_SnapshotFile(t *testing.T) {
	p := NewParser(nil)
	snapshot, err := p.Parse(context.Background(), testutil.LoadFixtureReader(t, "snapshot.txt"), "snapshot.txt")

	require.NoError(t, err)
	require.Len(t, snapshot.Records, 4)
	assert.Equal(t, 0, snapshot.SkippedLines)

	ssh := snapshot.Records[0]
	assert.Equal(t, model.StateListen, ssh.State)
	assert.Equal(t, 22, ssh.Local.Port)

	ipv6 := snapshot.Records[1]
	assert.Equal(t, "0.0.0.0", ipv6.Local.IP)
	assert.Equal(t, 8443, ipv6.Local.Port)
	assert.Equal(t, model.WildcardPort, ipv6.Foreign.Port)
}
