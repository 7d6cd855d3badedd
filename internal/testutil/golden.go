// Package testutil provides helpers for golden-file tests.
package testutil

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
)

// updateGolden controls whether golden files should be rewritten.
// Use: go test ./... -update
var updateGolden = flag.Bool("update", false, "update golden files")

// ShouldUpdate returns true if golden files should be updated.
func ShouldUpdate() bool {
	return *updateGolden
}

// CompareGolden marshals got to canonical JSON and compares it against the
// golden file at testdata/<name>.golden.json, failing with a diff on mismatch.
// With -update, the golden file is rewritten instead of compared.
func CompareGolden(t *testing.T, name string, got interface{}) {
	t.Helper()

	data := MarshalCanonical(t, got)
	goldenPath := filepath.Join("testdata", name+".golden.json")

	if *updateGolden {
		if err := os.MkdirAll(filepath.Dir(goldenPath), 0o755); err != nil {
			t.Fatalf("failed to create testdata directory: %v", err)
		}
		if err := os.WriteFile(goldenPath, data, 0o644); err != nil {
			t.Fatalf("failed to write golden file: %v", err)
		}
		t.Logf("updated golden: %s", goldenPath)
		return
	}

	expected, err := os.ReadFile(goldenPath)
	if err != nil {
		if os.IsNotExist(err) {
			t.Fatalf("golden file missing: %s\n\ngot:\n%s\n\nrun with -update to create it", goldenPath, data)
		}
		t.Fatalf("failed to read golden file: %v", err)
	}

	if !bytes.Equal(data, expected) {
		t.Fatalf("golden mismatch for %s:\n%s\n\nrun with -update to refresh", name, diffLines(string(expected), string(data)))
	}
}

// MarshalCanonical marshals data to JSON with sorted keys, 2-space
// indentation, and a trailing newline, via a map round-trip so struct field
// order does not matter.
func MarshalCanonical(t *testing.T, data interface{}) []byte {
	t.Helper()

	raw, err := json.Marshal(data)
	if err != nil {
		t.Fatalf("failed to marshal data: %v", err)
	}
	var generic interface{}
	if err := json.Unmarshal(raw, &generic); err != nil {
		t.Fatalf("failed to round-trip data: %v", err)
	}

	out, err := json.MarshalIndent(sortKeys(generic), "", "  ")
	if err != nil {
		t.Fatalf("failed to marshal canonical data: %v", err)
	}
	if len(out) > 0 && out[len(out)-1] != '\n' {
		out = append(out, '\n')
	}
	return out
}

// sortKeys recursively rebuilds maps with sorted keys. encoding/json already
// sorts map keys, so rebuilding is enough for deterministic output.
func sortKeys(data interface{}) interface{} {
	switch v := data.(type) {
	case map[string]interface{}:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		result := make(map[string]interface{}, len(v))
		for _, k := range keys {
			result[k] = sortKeys(v[k])
		}
		return result
	case []interface{}:
		result := make([]interface{}, len(v))
		for i, item := range v {
			result[i] = sortKeys(item)
		}
		return result
	default:
		return v
	}
}

// diffLines produces a minimal line diff between expected and got.
func diffLines(expected, got string) string {
	var buf strings.Builder
	expectedLines := strings.Split(expected, "\n")
	gotLines := strings.Split(got, "\n")

	maxLines := len(expectedLines)
	if len(gotLines) > maxLines {
		maxLines = len(gotLines)
	}
	for i := 0; i < maxLines; i++ {
		var expLine, gotLine string
		if i < len(expectedLines) {
			expLine = expectedLines[i]
		}
		if i < len(gotLines) {
			gotLine = gotLines[i]
		}
		if expLine == gotLine {
			continue
		}
		if expLine != "" {
			fmt.Fprintf(&buf, "%4d -%s\n", i+1, expLine)
		}
		if gotLine != "" {
			fmt.Fprintf(&buf, "%4d +%s\n", i+1, gotLine)
		}
	}
	return buf.String()
}
