package threaddump

import (
	"regexp"
	"strings"

	"github.com/dump-analysis/pkg/model"
)

var (
	// parenSegment matches parenthesized file/line info such as
	// "(Worker.java:42)" or "(Unknown Source)".
	parenSegment = regexp.MustCompile(`\([^)]*\)`)

	// whitespaceRun matches runs of whitespace for collapsing.
	whitespaceRun = regexp.MustCompile(`\s+`)
)

// keySeparator joins normalized frames into a grouping key.
const keySeparator = " | "

// NormalizeFrame reduces one raw stack frame to its canonical form:
// the leading "at " token and all parenthesized segments are removed,
// whitespace runs collapse to single spaces.
func NormalizeFrame(frame string) string {
	frame = strings.TrimSpace(frame)
	frame = strings.TrimPrefix(frame, "at ")
	frame = parenSegment.ReplaceAllString(frame, "")
	frame = whitespaceRun.ReplaceAllString(frame, " ")
	return strings.TrimSpace(frame)
}

// NormalizeStack computes the grouping key for a stack. Two entries
// with equal keys belong to the same behavioral group. An empty frame
// list yields the canonical empty key.
func NormalizeStack(frames []string) string {
	if len(frames) == 0 {
		return model.EmptyStackKey
	}

	normalized := make([]string, len(frames))
	for i, frame := range frames {
		normalized[i] = NormalizeFrame(frame)
	}
	return strings.Join(normalized, keySeparator)
}
