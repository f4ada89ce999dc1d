// Package testutil provides shared fixtures and helpers for package tests.
package testutil

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// Fixture names under testdata/
const (
	RaisecomConfig = "raisecom.cfg"
	DLinkConfig    = "dlink.cfg"
)

// ProjectRoot returns the absolute path to the project root.
func ProjectRoot() string {
	_, thisFile, _, _ := runtime.Caller(0)
	dir := filepath.Dir(thisFile)
	return filepath.Join(dir, "..", "..")
}

// FixturePath returns the absolute path to a file under testdata/.
// VLANCONV_TESTDATA_DIR overrides the directory.
func FixturePath(name string) string {
	if dir := os.Getenv("VLANCONV_TESTDATA_DIR"); dir != "" {
		return filepath.Join(dir, name)
	}
	return filepath.Join(ProjectRoot(), "internal", "testutil", "testdata", name)
}

// Fixture returns the contents of a testdata file.
func Fixture(t *testing.T, name string) string {
	t.Helper()
	data, err := os.ReadFile(FixturePath(name))
	if err != nil {
		t.Fatalf("reading fixture %s: %v", name, err)
	}
	return string(data)
}

// WriteTemp writes content to name inside a per-test temp directory and
// returns the path.
func WriteTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
	return path
}
