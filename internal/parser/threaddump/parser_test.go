package threaddump

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dump-analysis/internal/testutil"
)

const sampleDump = `#1 "main"
java.base/java.lang.Thread.sleep(Native Method)
com.example.App.main(App.java:12)

#23 "worker-1" virtual
at java.base/jdk.internal.misc.Unsafe.park(Native Method)
at com.example.Worker.poll(Worker.java:42)

#24 "idle-virtual" virtual
#30 "gc-helper"
gc.Helper.scan(Helper.java:7)
`

func TestParser_Parse_Basic(t *testing.T) {
	p := NewParser()
	entries, err := p.Parse(context.Background(), strings.NewReader(sampleDump))

	require.NoError(t, err)
	require.Len(t, entries, 4)

	main := entries[0]
	assert.Equal(t, "1", main.ID)
	assert.Equal(t, "main", main.Name)
	assert.False(t, main.IsVirtual)
	require.Len(t, main.StackFrames, 2)
	assert.Equal(t, "java.base/java.lang.Thread.sleep(Native Method)", main.StackFrames[0])
	assert.True(t, main.HasStack())

	worker := entries[1]
	assert.Equal(t, "23", worker.ID)
	assert.Equal(t, "worker-1", worker.Name)
	assert.True(t, worker.IsVirtual)
	assert.Len(t, worker.StackFrames, 2)
}

func TestParser_Parse_HeaderWithoutStack(t *testing.T) {
	p := NewParser()
	entries, err := p.Parse(context.Background(), strings.NewReader(sampleDump))
	require.NoError(t, err)

	// A header followed directly by another header yields an empty
	// stack.
	idle := entries[2]
	assert.Equal(t, "24", idle.ID)
	assert.True(t, idle.IsVirtual)
	assert.False(t, idle.HasStack())

	// The last block runs to end of file.
	last := entries[3]
	assert.Equal(t, "30", last.ID)
	assert.Equal(t, []string{"gc.Helper.scan(Helper.java:7)"}, last.StackFrames)
}

func TestParser_Parse_EmptyInput(t *testing.T) {
	p := NewParser()
	entries, err := p.Parse(context.Background(), strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestParser_Parse_IgnoresLeadingNoise(t *testing.T) {
	input := `2025-06-01 10:00:00
Full thread dump

#7 "pool-1-thread-1"
com.example.Pool.take(Pool.java:99)
`
	p := NewParser()
	entries, err := p.Parse(context.Background(), strings.NewReader(input))
	require.NoError(t, err)

	require.Len(t, entries, 1)
	assert.Equal(t, "7", entries[0].ID)
	assert.Equal(t, []string{"com.example.Pool.take(Pool.java:99)"}, entries[0].StackFrames)
}

func TestParser_Parse_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := NewParser()
	_, err := p.Parse(ctx, strings.NewReader(sampleDump))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestParseHeader(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		wantID   string
		wantName string
		wantVirt bool
	}{
		{"platform", `#42 "request-handler"`, "42", "request-handler", false},
		{"virtual", `#101 "vthread-7" virtual`, "101", "vthread-7", true},
		{"no name", `#9`, "9", "", false},
		{"name with spaces", `#5 "C2 CompilerThread0"`, "5", "C2 CompilerThread0", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := parseHeader(tt.line)
			assert.Equal(t, tt.wantID, entry.ID)
			assert.Equal(t, tt.wantName, entry.Name)
			assert.Equal(t, tt.wantVirt, entry.IsVirtual)
		})
	}
}

func TestParser_Parse_DumpFile(t *testing.T) {
	p := NewParser()
	entries, err := p.Parse(context.Background(), strings.NewReader(testutil.LoadFixtureString(t, "dump.txt")))

	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "pool-1-thread-1", entries[1].Name)
	assert.False(t, entries[1].IsVirtual)
	assert.True(t, entries[2].IsVirtual)
	assert.Len(t, entries[2].StackFrames, 1)
}
