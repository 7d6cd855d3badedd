package analysis

import (
	"migraph/internal/graph"
)

// Classify maps a node's scores and metrics to a migration tier. The
// evaluation order is policy: single severe signals disqualify immediately,
// moderate signals must co-occur to escalate, and the caution net is broad
// so that "safe" is reserved for files with no red flags at all.
// Classify is a pure function of its arguments.
func Classify(risk int, blast *BlastRadius, m *graph.Metrics, complexity int) Tier {
	// Step 1: immediate unsafe triggers.
	if m.InCycle ||
		risk >= 50 ||
		blast.Percentage >= 40 ||
		m.UsesReflection ||
		(m.UsesThreading && m.FanIn > 2) ||
		(m.WritesToDb && m.FanIn > 3) {
		return TierUnsafe
	}

	// Step 2: moderate signals escalate to unsafe only when they co-occur.
	signals := 0
	if risk >= 35 {
		signals++
	}
	if blast.Percentage >= 25 {
		signals++
	}
	if complexity >= 40 {
		signals++
	}
	if m.HasInheritance && m.HasInnerClasses {
		signals++
	}
	if m.FanIn > 4 && m.FanOut > 4 {
		signals++
	}
	if signals >= 2 {
		return TierUnsafe
	}

	// Step 3: caution triggers.
	if risk >= 25 ||
		blast.Percentage >= 10 ||
		complexity >= 30 ||
		m.UsesThreading ||
		m.HasInheritance ||
		m.HasInnerClasses ||
		m.WritesToDb ||
		m.FanIn > 2 ||
		m.FanOut > 3 ||
		m.LineCount > 200 ||
		m.MethodCount > 8 ||
		(m.UsesGenerics && m.ImportCount > 10) {
		return TierCaution
	}

	return TierSafe
}
