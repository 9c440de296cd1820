// Package filter provides case-insensitive stack frame filtering for
// thread-dump analysis.
package filter

import "strings"

// FrameFilter narrows thread stacks to frames containing a substring.
// The zero value (and an empty pattern) matches everything.
type FrameFilter struct {
	pattern string
	lowered string
}

// New creates a FrameFilter for the given substring pattern. Matching is
// case-insensitive.
func New(pattern string) *FrameFilter {
	return &FrameFilter{
		pattern: pattern,
		lowered: strings.ToLower(pattern),
	}
}

// Active reports whether the filter has a pattern.
func (f *FrameFilter) Active() bool {
	return f != nil && f.lowered != ""
}

// Pattern returns the original pattern.
func (f *FrameFilter) Pattern() string {
	if f == nil {
		return ""
	}
	return f.pattern
}

// Matches reports whether a single frame contains the pattern.
func (f *FrameFilter) Matches(frame string) bool {
	if !f.Active() {
		return true
	}
	return strings.Contains(strings.ToLower(frame), f.lowered)
}

// Apply returns the frames containing the pattern, in original order.
// When the filter is inactive the input slice is returned unchanged.
func (f *FrameFilter) Apply(frames []string) []string {
	if !f.Active() {
		return frames
	}

	matched := make([]string, 0, len(frames))
	for _, frame := range frames {
		if f.Matches(frame) {
			matched = append(matched, frame)
		}
	}
	return matched
}
