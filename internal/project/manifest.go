// Package project reads the migraph.toml manifest describing the codebase
// under migration. The manifest lets commands run without repeating flags:
// it names the project, its source language, and where the parser drops the
// facts batch.
package project

import (
	"fmt"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// ManifestFile is the default manifest filename at the project root.
const ManifestFile = "migraph.toml"

// Manifest represents a migraph.toml file.
type Manifest struct {
	// Version is the schema version
	Version int `toml:"version"`

	// Name is the human-readable project name
	Name string `toml:"name"`

	// Language is the source language of the codebase under migration
	Language string `toml:"language,omitempty"`

	// Target is the migration target language (informational)
	Target string `toml:"target,omitempty"`

	// FactsPath is the project-relative path to the parser's facts batch
	FactsPath string `toml:"facts_path,omitempty"`

	// Owner is the owner reference (e.g., @team-name or user@email.com)
	Owner string `toml:"owner,omitempty"`

	// Tags are free-form classification tags
	Tags []string `toml:"tags,omitempty"`
}

// Load parses a manifest from the given path.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// LoadFromRoot looks for migraph.toml at the project root. A missing
// manifest is not an error; it returns (nil, nil) and callers fall back to
// flags and config.
func LoadFromRoot(projectRoot string) (*Manifest, error) {
	path := filepath.Join(projectRoot, ManifestFile)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil
	}
	return Load(path)
}

// Validate checks required manifest fields.
func (m *Manifest) Validate() error {
	if m.Version != 1 {
		return fmt.Errorf("unsupported manifest version %d", m.Version)
	}
	if m.Name == "" {
		return fmt.Errorf("manifest field 'name' is required")
	}
	return nil
}

// Save writes the manifest to the project root.
func (m *Manifest) Save(projectRoot string) error {
	data, err := toml.Marshal(m)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(projectRoot, ManifestFile), data, 0644)
}
