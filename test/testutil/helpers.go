// Package testutil provides test helper functions for unit and integration tests.
package testutil

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/award-search/award-flight-finder/internal/domain"
)

// LoadTestJSON loads a JSON file from the test/testdata directory.
func LoadTestJSON(t *testing.T, filename string) []byte {
	t.Helper()

	_, currentFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("Failed to get current file path")
	}

	// testutil lives in test/testutil
	projectRoot := filepath.Join(filepath.Dir(currentFile), "..", "..")
	testDataPath := filepath.Join(projectRoot, "test", "testdata", filename)

	data, err := os.ReadFile(testDataPath)
	if err != nil {
		t.Fatalf("Failed to load test file %s: %v", filename, err)
	}
	return data
}

// MustParseTime parses an RFC3339 timestamp or fails the test.
func MustParseTime(t *testing.T, s string) time.Time {
	t.Helper()
	parsed, err := time.Parse(time.RFC3339, s)
	if err != nil {
		t.Fatalf("Failed to parse time %s: %v", s, err)
	}
	return parsed
}

// MustParseDate parses a YYYY-MM-DD date at midnight UTC or fails the test.
func MustParseDate(t *testing.T, s string) time.Time {
	t.Helper()
	parsed, err := domain.ParseDate(s)
	if err != nil {
		t.Fatalf("Failed to parse date %s: %v", s, err)
	}
	return parsed
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}

// Dollars returns a pointer to a whole-dollar amount, for baseline cash prices.
func Dollars(d int64) *domain.Money {
	m := domain.Money(d * 100)
	return &m
}
