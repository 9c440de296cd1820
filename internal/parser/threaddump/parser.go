// Package threaddump parses JDK-style thread-dump text files.
package threaddump

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/dump-analysis/pkg/model"
)

// headerPrefix marks a thread header line: #<id> "<name>" [virtual].
const headerPrefix = "#"

// virtualMarker is the literal header substring identifying a virtual
// thread.
const virtualMarker = " virtual"

// Parser parses thread-dump files into ThreadEntry lists.
type Parser struct{}

// NewParser creates a new thread-dump parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse scans a thread-dump file for header lines and their stack
// blocks. A header with no following stack lines yields an entry with
// an empty stack.
func (p *Parser) Parse(ctx context.Context, reader io.Reader) ([]model.ThreadEntry, error) {
	var entries []model.ThreadEntry
	var current *model.ThreadEntry

	flush := func() {
		if current != nil {
			entries = append(entries, *current)
			current = nil
		}
	}

	scanner := bufio.NewScanner(reader)
	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		line := scanner.Text()
		trimmed := strings.TrimSpace(line)

		if strings.HasPrefix(line, headerPrefix) {
			flush()
			entry := parseHeader(line)
			current = &entry
			continue
		}

		if trimmed == "" {
			// A blank line ends the current stack block.
			flush()
			continue
		}

		if current != nil {
			current.StackFrames = append(current.StackFrames, trimmed)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}

	flush()
	return entries, nil
}

// parseHeader extracts id, name and the virtual flag from a header line
// of the form: #<id> "<name>" [virtual].
func parseHeader(line string) model.ThreadEntry {
	rest := strings.TrimPrefix(line, headerPrefix)

	id := rest
	if idx := strings.IndexFunc(rest, func(r rune) bool { return r == ' ' || r == '\t' }); idx >= 0 {
		id = rest[:idx]
	}

	name := ""
	if start := strings.Index(rest, `"`); start >= 0 {
		if end := strings.Index(rest[start+1:], `"`); end >= 0 {
			name = rest[start+1 : start+1+end]
		}
	}

	return model.ThreadEntry{
		ID:        id,
		Name:      name,
		IsVirtual: strings.Contains(line, virtualMarker),
	}
}
