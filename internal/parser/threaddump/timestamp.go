package threaddump

import (
	"bufio"
	"path/filepath"
	"regexp"
	"strings"
)

var (
	// filenameTimestamp matches a 2006-01-02T15-04-05 pattern embedded
	// in a dump filename.
	filenameTimestamp = regexp.MustCompile(`\d{4}-\d{2}-\d{2}T\d{2}-\d{2}-\d{2}`)

	// contentTimestamp matches a full line of the form
	// "2006-01-02 15:04:05", as jcmd prints at the top of a dump.
	contentTimestamp = regexp.MustCompile(`^\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}$`)
)

// ResolveTimestamp determines a dump's timestamp. Resolution order:
// a timestamp embedded in the filename (reformatted to ISO form), then
// a timestamp line in the file content, then the raw filename itself.
// It never fails.
func ResolveTimestamp(path string, content string) string {
	name := filepath.Base(path)

	if match := filenameTimestamp.FindString(name); match != "" {
		// 2006-01-02T15-04-05 -> 2006-01-02T15:04:05
		date, clock, _ := strings.Cut(match, "T")
		return date + "T" + strings.ReplaceAll(clock, "-", ":")
	}

	scanner := bufio.NewScanner(strings.NewReader(content))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if contentTimestamp.MatchString(line) {
			return line
		}
	}

	return name
}
