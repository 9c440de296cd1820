package netstat

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	apperrors "github.com/dump-analysis/pkg/errors"
	"github.com/dump-analysis/pkg/model"
)

// ParseNameMap reads an address name map: text lines of the form
// key=value, where key is a literal IP string and value a display
// label. Lines without '=' are ignored; the last occurrence of a key
// wins.
func ParseNameMap(reader io.Reader) (model.AddressNameMap, error) {
	result := make(model.AddressNameMap)

	scanner := bufio.NewScanner(reader)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok || key == "" {
			continue
		}
		result[key] = value
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read name map: %w", err)
	}

	return result, nil
}

// LoadNameMap loads an address name map from a file. An empty path
// yields a nil map, which labels every IP with itself.
func LoadNameMap(path string) (model.AddressNameMap, error) {
	if path == "" {
		return nil, nil
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeUnreadableFile, "failed to open name map "+path, err)
	}
	defer file.Close()

	return ParseNameMap(file)
}
