package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"migraph/internal/facts"
)

// LoadFactsFixture reads a facts batch from testdata/<name>.json, failing
// the test on error.
func LoadFactsFixture(t *testing.T, name string) *facts.Batch {
	t.Helper()

	path := filepath.Join("testdata", name+".json")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read fixture %s: %v", path, err)
	}
	var batch facts.Batch
	if err := json.Unmarshal(data, &batch); err != nil {
		t.Fatalf("failed to decode fixture %s: %v", path, err)
	}
	return &batch
}

// Fact builds a minimal FileFact for tests. Callers mutate the returned
// value to set indicator flags and counts.
func Fact(filePath, pkg string, classes []string, imports []string) facts.FileFact {
	return facts.FileFact{
		FilePath:    filePath,
		PackageName: pkg,
		ClassNames:  classes,
		Imports:     imports,
		LineCount:   10,
		MethodCount: 1,
		ClassCount:  len(classes),
	}
}
