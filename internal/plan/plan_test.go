package plan

import (
	"os"
	"path/filepath"
	"testing"

	"migraph/internal/analysis"
	"migraph/internal/config"
)

func testAnalyses() map[string]*analysis.Analysis {
	return map[string]*analysis.Analysis{
		"node_0": {
			NodeID: "node_0", FilePath: "src/Easy.java",
			Classification: analysis.TierSafe, RiskScore: 5, ConvertibilityScore: 95,
		},
		"node_1": {
			NodeID: "node_1", FilePath: "src/Easier.java",
			Classification: analysis.TierSafe, RiskScore: 0, ConvertibilityScore: 100,
		},
		"node_2": {
			NodeID: "node_2", FilePath: "src/Risky.java",
			Classification: analysis.TierCaution, RiskScore: 30, ConvertibilityScore: 60,
		},
		"node_3": {
			NodeID: "node_3", FilePath: "src/Cycle.java",
			Classification: analysis.TierUnsafe, RiskScore: 70, ConvertibilityScore: 20,
		},
	}
}

func TestBuildBuckets(t *testing.T) {
	p := Build("run-1", testAnalyses(), nil)

	if p.RunID != "run-1" {
		t.Errorf("runId = %q, want run-1", p.RunID)
	}
	if len(p.AutoMigrate) != 2 || len(p.NeedsReview) != 1 || len(p.Blocked) != 1 {
		t.Fatalf("bucket sizes = %d/%d/%d, want 2/1/1",
			len(p.AutoMigrate), len(p.NeedsReview), len(p.Blocked))
	}

	t.Run("AutoMigrateByConvertibility", func(t *testing.T) {
		if p.AutoMigrate[0].FilePath != "src/Easier.java" {
			t.Errorf("first auto-migrate item = %s, want the most convertible", p.AutoMigrate[0].FilePath)
		}
	})

	t.Run("EffectiveTierMirrorsClassification", func(t *testing.T) {
		for _, item := range p.AutoMigrate {
			if item.EffectiveTier != item.Classification || item.Waived {
				t.Errorf("%s: unexpected waiver state without waivers", item.FilePath)
			}
		}
	})
}

func TestBuildAppliesWaivers(t *testing.T) {
	waivers := &Waivers{
		Version: 1,
		Waivers: []Waiver{
			{FilePath: "src/Cycle.java", Tier: "caution", Reason: "cycle broken in branch refactor/orders"},
		},
	}
	p := Build("run-1", testAnalyses(), waivers)

	if len(p.Blocked) != 0 {
		t.Errorf("waived file still blocked")
	}
	if len(p.NeedsReview) != 2 {
		t.Fatalf("needsReview size = %d, want 2", len(p.NeedsReview))
	}

	var waived *Item
	for i := range p.NeedsReview {
		if p.NeedsReview[i].FilePath == "src/Cycle.java" {
			waived = &p.NeedsReview[i]
		}
	}
	if waived == nil {
		t.Fatal("waived file missing from needsReview")
	}
	if !waived.Waived || waived.WaiverReason == "" {
		t.Error("waiver metadata not carried onto the item")
	}
	if waived.Classification != analysis.TierUnsafe {
		t.Error("underlying classification must not change")
	}
	if waived.EffectiveTier != analysis.TierCaution {
		t.Errorf("effectiveTier = %s, want caution", waived.EffectiveTier)
	}
}

func TestBuildOrdersByRisk(t *testing.T) {
	analyses := map[string]*analysis.Analysis{
		"node_0": {NodeID: "node_0", FilePath: "src/A.java", Classification: analysis.TierCaution, RiskScore: 25},
		"node_1": {NodeID: "node_1", FilePath: "src/B.java", Classification: analysis.TierCaution, RiskScore: 45},
		"node_2": {NodeID: "node_2", FilePath: "src/C.java", Classification: analysis.TierCaution, RiskScore: 45},
	}
	p := Build("run-1", analyses, nil)

	if p.NeedsReview[0].RiskScore != 45 {
		t.Error("review bucket not ordered riskiest-first")
	}
	if p.NeedsReview[0].FilePath != "src/B.java" {
		t.Error("equal risk should fall back to path order")
	}
}

func writeWaivers(t *testing.T, root, content string) {
	t.Helper()
	dir := filepath.Join(root, config.Dir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, WaiversFile), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadWaivers(t *testing.T) {
	t.Run("MissingFileIsEmptySet", func(t *testing.T) {
		w, err := LoadWaivers(t.TempDir())
		if err != nil {
			t.Fatalf("LoadWaivers failed: %v", err)
		}
		if len(w.Waivers) != 0 {
			t.Errorf("expected empty waiver set, got %d", len(w.Waivers))
		}
	})

	t.Run("ParsesWaivers", func(t *testing.T) {
		root := t.TempDir()
		writeWaivers(t, root, `
version = 1

[[waiver]]
file_path = "src/Cycle.java"
tier = "caution"
reason = "cycle broken in branch refactor/orders"
approved_by = "@migration-team"
`)
		w, err := LoadWaivers(root)
		if err != nil {
			t.Fatalf("LoadWaivers failed: %v", err)
		}
		if len(w.Waivers) != 1 {
			t.Fatalf("expected 1 waiver, got %d", len(w.Waivers))
		}
		got := w.For("src/Cycle.java")
		if got == nil || got.Tier != "caution" || got.ApprovedBy != "@migration-team" {
			t.Errorf("unexpected waiver: %+v", got)
		}
		if w.For("src/Other.java") != nil {
			t.Error("For should return nil for unknown paths")
		}
	})

	t.Run("RejectsBadTier", func(t *testing.T) {
		root := t.TempDir()
		writeWaivers(t, root, `
[[waiver]]
file_path = "src/A.java"
tier = "yolo"
reason = "because"
`)
		if _, err := LoadWaivers(root); err == nil {
			t.Error("expected error for invalid tier")
		}
	})

	t.Run("RejectsMissingReason", func(t *testing.T) {
		root := t.TempDir()
		writeWaivers(t, root, `
[[waiver]]
file_path = "src/A.java"
tier = "safe"
`)
		if _, err := LoadWaivers(root); err == nil {
			t.Error("expected error for missing reason")
		}
	})
}
