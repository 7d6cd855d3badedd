// Package analysis scores each node of the dependency graph for migration:
// blast radius, complexity, risk, convertibility, and a three-tier
// classification consumed by downstream migration tooling.
package analysis

import (
	"migraph/internal/graph"
)

// Tier classifies whether a file is fit for unattended migration.
type Tier string

const (
	// TierSafe marks files with no structural or behavioral red flags.
	TierSafe Tier = "safe"
	// TierCaution marks files that need review before migration.
	TierCaution Tier = "caution"
	// TierUnsafe marks files that must not be auto-migrated.
	TierUnsafe Tier = "unsafe"
)

// BlastRadius summarizes how much of the graph transitively depends on a node.
type BlastRadius struct {
	AffectedNodes int     `json:"affectedNodes"`
	TotalNodes    int     `json:"totalNodes"`
	Percentage    float64 `json:"percentage"`
}

// Analysis is the complete per-node result of the risk stage. Field names
// are a hard contract with downstream consumers.
type Analysis struct {
	NodeID              string         `json:"nodeId"`
	FilePath            string         `json:"filePath"`
	RiskScore           int            `json:"riskScore"`
	ComplexityScore     int            `json:"complexityScore"`
	ConvertibilityScore int            `json:"convertibilityScore"`
	BlastRadius         *BlastRadius   `json:"blastRadius"`
	Classification      Tier           `json:"classification"`
	Metrics             *graph.Metrics `json:"metrics"`
}

// Summary tallies classifications across a run.
type Summary struct {
	Total   int `json:"total"`
	Safe    int `json:"safe"`
	Caution int `json:"caution"`
	Unsafe  int `json:"unsafe"`
}

// Summarize counts tiers over an analysis map.
func Summarize(results map[string]*Analysis) Summary {
	s := Summary{Total: len(results)}
	for _, a := range results {
		switch a.Classification {
		case TierSafe:
			s.Safe++
		case TierCaution:
			s.Caution++
		case TierUnsafe:
			s.Unsafe++
		}
	}
	return s
}
