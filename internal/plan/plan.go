// Package plan turns a classified analysis into a migration worklist and
// applies operator waivers. It sits strictly downstream of the engine: the
// analysis itself is read-only here.
package plan

import (
	"sort"

	"migraph/internal/analysis"
)

// Item is one file in the migration plan.
type Item struct {
	NodeID              string        `json:"nodeId"`
	FilePath            string        `json:"filePath"`
	Classification      analysis.Tier `json:"classification"`
	EffectiveTier       analysis.Tier `json:"effectiveTier"`
	Waived              bool          `json:"waived,omitempty"`
	WaiverReason        string        `json:"waiverReason,omitempty"`
	RiskScore           int           `json:"riskScore"`
	ConvertibilityScore int           `json:"convertibilityScore"`
}

// Plan is the migration worklist for one run.
type Plan struct {
	RunID       string `json:"runId"`
	AutoMigrate []Item `json:"autoMigrate"`
	NeedsReview []Item `json:"needsReview"`
	Blocked     []Item `json:"blocked"`
}

// Build derives the worklist from an analysis and a waiver set. Safe files
// queue for unattended migration, caution files for review, unsafe files are
// blocked; a waiver moves a file between buckets without touching the
// underlying classification.
func Build(runID string, analyses map[string]*analysis.Analysis, waivers *Waivers) *Plan {
	p := &Plan{
		RunID:       runID,
		AutoMigrate: []Item{},
		NeedsReview: []Item{},
		Blocked:     []Item{},
	}

	for _, a := range analyses {
		item := Item{
			NodeID:              a.NodeID,
			FilePath:            a.FilePath,
			Classification:      a.Classification,
			EffectiveTier:       a.Classification,
			RiskScore:           a.RiskScore,
			ConvertibilityScore: a.ConvertibilityScore,
		}
		if waivers != nil {
			if w := waivers.For(a.FilePath); w != nil {
				item.EffectiveTier = analysis.Tier(w.Tier)
				item.Waived = true
				item.WaiverReason = w.Reason
			}
		}

		switch item.EffectiveTier {
		case analysis.TierSafe:
			p.AutoMigrate = append(p.AutoMigrate, item)
		case analysis.TierCaution:
			p.NeedsReview = append(p.NeedsReview, item)
		default:
			p.Blocked = append(p.Blocked, item)
		}
	}

	// Easiest conversions first; riskiest reviews first.
	sort.Slice(p.AutoMigrate, func(i, j int) bool {
		if p.AutoMigrate[i].ConvertibilityScore != p.AutoMigrate[j].ConvertibilityScore {
			return p.AutoMigrate[i].ConvertibilityScore > p.AutoMigrate[j].ConvertibilityScore
		}
		return p.AutoMigrate[i].FilePath < p.AutoMigrate[j].FilePath
	})
	byRisk := func(items []Item) func(i, j int) bool {
		return func(i, j int) bool {
			if items[i].RiskScore != items[j].RiskScore {
				return items[i].RiskScore > items[j].RiskScore
			}
			return items[i].FilePath < items[j].FilePath
		}
	}
	sort.Slice(p.NeedsReview, byRisk(p.NeedsReview))
	sort.Slice(p.Blocked, byRisk(p.Blocked))

	return p
}
