package plan

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"migraph/internal/analysis"
	"migraph/internal/config"
)

// WaiversFile is the waivers filename under .migraph.
const WaiversFile = "plan.toml"

// Waiver is one operator override pinning a file to a tier. Waivers are a
// downstream policy layer; they never change the recorded analysis.
type Waiver struct {
	// FilePath matches the analyzed file path exactly
	FilePath string `toml:"file_path"`

	// Tier is the forced tier: safe, caution, or unsafe
	Tier string `toml:"tier"`

	// Reason documents why the override exists
	Reason string `toml:"reason"`

	// ApprovedBy is the approver reference (e.g., @team-name)
	ApprovedBy string `toml:"approved_by,omitempty"`
}

// Waivers represents the root structure of plan.toml.
type Waivers struct {
	Version int      `toml:"version"`
	Waivers []Waiver `toml:"waiver"`
}

// LoadWaivers reads .migraph/plan.toml. A missing file yields an empty
// waiver set, not an error.
func LoadWaivers(projectRoot string) (*Waivers, error) {
	path := filepath.Join(projectRoot, config.Dir, WaiversFile)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Waivers{Version: 1}, nil
		}
		return nil, err
	}

	var w Waivers
	if err := toml.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("parse %s: %w", WaiversFile, err)
	}
	if err := w.Validate(); err != nil {
		return nil, err
	}
	return &w, nil
}

// Validate checks every waiver names a real tier and a file path.
func (w *Waivers) Validate() error {
	for i, waiver := range w.Waivers {
		if waiver.FilePath == "" {
			return fmt.Errorf("waiver %d: file_path is required", i)
		}
		switch analysis.Tier(waiver.Tier) {
		case analysis.TierSafe, analysis.TierCaution, analysis.TierUnsafe:
		default:
			return fmt.Errorf("waiver %d (%s): tier must be safe, caution, or unsafe",
				i, waiver.FilePath)
		}
		if waiver.Reason == "" {
			return fmt.Errorf("waiver %d (%s): reason is required", i, waiver.FilePath)
		}
	}
	return nil
}

// For returns the waiver matching a file path, or nil.
func (w *Waivers) For(filePath string) *Waiver {
	for i := range w.Waivers {
		if w.Waivers[i].FilePath == filePath {
			return &w.Waivers[i]
		}
	}
	return nil
}
