// Package profiling provides helpers for working with thread names.
package profiling

// ExtractThreadGroup extracts the thread pool name by removing trailing
// numbers and separators.
// For example: "grpc-nio-worker-1" -> "grpc-nio-worker"
func ExtractThreadGroup(threadName string) string {
	name := threadName
	for len(name) > 0 {
		lastChar := name[len(name)-1]
		if lastChar >= '0' && lastChar <= '9' {
			name = name[:len(name)-1]
		} else if lastChar == '-' || lastChar == '_' || lastChar == '#' {
			name = name[:len(name)-1]
		} else {
			break
		}
	}
	if name == "" {
		return threadName
	}
	return name
}
