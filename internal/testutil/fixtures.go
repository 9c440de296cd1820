// Package testutil provides utilities for testing.
package testutil

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// callerDir returns the directory of the file skip+1 frames up the
// call stack.
func callerDir(skip int) string {
	_, file, _, ok := runtime.Caller(skip + 1)
	if !ok {
		return ""
	}
	return filepath.Dir(file)
}

// findTestData locates testdata/filename starting at startDir and
// walking up the directory tree.
func findTestData(t *testing.T, startDir, filename string) string {
	t.Helper()

	dir := startDir
	for i := 0; i < 5; i++ {
		path := filepath.Join(dir, "testdata", filename)
		if _, err := os.Stat(path); err == nil {
			return path
		}
		dir = filepath.Dir(dir)
	}
	t.Fatalf("fixture %s not found under any testdata directory", filename)
	return ""
}

// GetTestDataPath returns the path to a file in the caller's nearest
// testdata directory.
func GetTestDataPath(t *testing.T, filename string) string {
	t.Helper()
	return findTestData(t, callerDir(1), filename)
}

// LoadFixtureString loads a fixture from the caller's nearest testdata
// directory and returns its contents as a string.
func LoadFixtureString(t *testing.T, filename string) string {
	t.Helper()
	return string(readFixture(t, findTestData(t, callerDir(1), filename)))
}

// LoadFixtureReader loads a fixture from the caller's nearest testdata
// directory and returns an io.Reader over its contents.
func LoadFixtureReader(t *testing.T, filename string) io.Reader {
	t.Helper()
	return bytes.NewReader(readFixture(t, findTestData(t, callerDir(1), filename)))
}

func readFixture(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to load fixture %s: %v", path, err)
	}
	return data
}

// TempDir creates a temporary directory for testing and returns its path.
// The directory is automatically cleaned up when the test completes.
func TempDir(t *testing.T) string {
	t.Helper()
	dir, err := os.MkdirTemp("", "dump-analysis-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	t.Cleanup(func() {
		os.RemoveAll(dir)
	})
	return dir
}

// TempFileWithName creates a temporary file with the given name and content.
func TempFileWithName(t *testing.T, name, content string) string {
	t.Helper()
	dir := TempDir(t)
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write temp file: %v", err)
	}
	return path
}

// WriteFile writes content to a file in the given directory.
func WriteFile(t *testing.T, dir, filename, content string) string {
	t.Helper()
	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
	return path
}

// CreateDir creates a directory within the given parent directory.
func CreateDir(t *testing.T, parent, name string) string {
	t.Helper()
	path := filepath.Join(parent, name)
	if err := os.MkdirAll(path, 0755); err != nil {
		t.Fatalf("failed to create directory: %v", err)
	}
	return path
}

// ReadFile reads a file and returns its contents.
func ReadFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read file %s: %v", path, err)
	}
	return string(data)
}

// FileExists checks if a file exists.
func FileExists(t *testing.T, path string) bool {
	t.Helper()
	_, err := os.Stat(path)
	return err == nil
}
