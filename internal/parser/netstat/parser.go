package netstat

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dump-analysis/internal/parser"
	"github.com/dump-analysis/pkg/model"
)

// tcpProtocols are the connection-table protocol tags considered by the
// parser; every other line (headers, udp, unix sockets) is ignored.
var tcpProtocols = map[string]bool{
	"tcp":  true,
	"tcp4": true,
	"tcp6": true,
}

// connectionFieldCount is the number of whitespace-separated fields on
// a connection line: proto recvQ sendQ localAddr foreignAddr state.
const connectionFieldCount = 6

// Parser parses netstat -an style connection tables into Snapshots.
type Parser struct {
	opts *parser.Options
}

// NewParser creates a new connection-table parser.
func NewParser(opts *parser.Options) *Parser {
	if opts == nil {
		opts = parser.DefaultOptions()
	}
	return &Parser{opts: opts}
}

// ParseLine parses one connection line already confirmed to start with a
// TCP protocol tag.
func ParseLine(line string) (model.ConnectionRecord, error) {
	fields := strings.Fields(line)
	if len(fields) != connectionFieldCount {
		return model.ConnectionRecord{}, fmt.Errorf("%w: expected %d fields, got %d",
			parser.ErrMalformedLine, connectionFieldCount, len(fields))
	}

	recvQ, err := strconv.Atoi(fields[1])
	if err != nil {
		return model.ConnectionRecord{}, fmt.Errorf("%w: recv queue %q is not numeric", parser.ErrMalformedLine, fields[1])
	}

	sendQ, err := strconv.Atoi(fields[2])
	if err != nil {
		return model.ConnectionRecord{}, fmt.Errorf("%w: send queue %q is not numeric", parser.ErrMalformedLine, fields[2])
	}

	local, err := ParseAddress(fields[3])
	if err != nil {
		return model.ConnectionRecord{}, fmt.Errorf("%w: local address: %v", parser.ErrMalformedLine, err)
	}

	foreign, err := ParseAddress(fields[4])
	if err != nil {
		return model.ConnectionRecord{}, fmt.Errorf("%w: foreign address: %v", parser.ErrMalformedLine, err)
	}

	state, err := model.ParseTcpState(fields[5])
	if err != nil {
		return model.ConnectionRecord{}, fmt.Errorf("%w: %v", parser.ErrMalformedLine, err)
	}

	return model.ConnectionRecord{
		Protocol:  fields[0],
		RecvQueue: recvQ,
		SendQueue: sendQ,
		Local:     local,
		Foreign:   foreign,
		State:     state,
	}, nil
}

// Parse reads a connection table and returns the parsed snapshot.
//
// Only lines whose first field is tcp, tcp4 or tcp6 are considered.
// Malformed TCP lines are skipped and counted unless StrictMode is set,
// in which case the first one aborts the parse.
func (p *Parser) Parse(ctx context.Context, reader io.Reader, source string) (*model.Snapshot, error) {
	snapshot := &model.Snapshot{Source: source}

	scanner := bufio.NewScanner(reader)
	lineNum := 0

	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		proto := line
		if idx := strings.IndexFunc(line, func(r rune) bool { return r == ' ' || r == '\t' }); idx >= 0 {
			proto = line[:idx]
		}
		if !tcpProtocols[proto] {
			continue
		}

		record, err := ParseLine(line)
		if err != nil {
			if p.opts.StrictMode {
				return nil, fmt.Errorf("line %d: %w", lineNum, err)
			}
			snapshot.SkippedLines++
			continue
		}

		snapshot.Records = append(snapshot.Records, record)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}

	return snapshot, nil
}
