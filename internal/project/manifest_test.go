package project

import (
	"os"
	"path/filepath"
	"testing"
)

func writeManifest(t *testing.T, root, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(root, ManifestFile), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadFromRoot(t *testing.T) {
	t.Run("MissingIsNotAnError", func(t *testing.T) {
		m, err := LoadFromRoot(t.TempDir())
		if err != nil {
			t.Fatalf("LoadFromRoot failed: %v", err)
		}
		if m != nil {
			t.Error("expected nil manifest for missing file")
		}
	})

	t.Run("FullManifest", func(t *testing.T) {
		root := t.TempDir()
		writeManifest(t, root, `
version = 1
name = "orders-service"
language = "java"
target = "go"
facts_path = "build/facts.json"
owner = "@migration-team"
tags = ["backend", "phase-1"]
`)
		m, err := LoadFromRoot(root)
		if err != nil {
			t.Fatalf("LoadFromRoot failed: %v", err)
		}
		if m.Name != "orders-service" || m.Language != "java" || m.Target != "go" {
			t.Errorf("unexpected manifest: %+v", m)
		}
		if m.FactsPath != "build/facts.json" {
			t.Errorf("facts_path = %q, want build/facts.json", m.FactsPath)
		}
		if len(m.Tags) != 2 {
			t.Errorf("tags = %v, want 2 entries", m.Tags)
		}
	})

	t.Run("RejectsMissingName", func(t *testing.T) {
		root := t.TempDir()
		writeManifest(t, root, `version = 1`)
		if _, err := LoadFromRoot(root); err == nil {
			t.Error("expected error for missing name")
		}
	})

	t.Run("RejectsBadVersion", func(t *testing.T) {
		root := t.TempDir()
		writeManifest(t, root, "version = 9\nname = \"x\"\n")
		if _, err := LoadFromRoot(root); err == nil {
			t.Error("expected error for unsupported version")
		}
	})
}

func TestSaveRoundTrip(t *testing.T) {
	root := t.TempDir()
	m := &Manifest{
		Version:   1,
		Name:      "orders-service",
		Language:  "java",
		FactsPath: "facts.json",
	}
	if err := m.Save(root); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := LoadFromRoot(root)
	if err != nil {
		t.Fatalf("LoadFromRoot failed: %v", err)
	}
	if loaded.Name != m.Name || loaded.FactsPath != m.FactsPath {
		t.Errorf("round trip changed the manifest: %+v", loaded)
	}
}
