package analysis

import (
	"migraph/internal/graph"
)

// The banded point values below are behavioral policy, tuned against real
// migration outcomes. They are deliberately not derived from first
// principles and must not be re-balanced casually: downstream tooling keys
// off the resulting tiers.

// clampScore bounds a score to [0, 100].
func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// ComplexityScore measures intrinsic file complexity on a 0-100 scale. It is
// independent of graph position: only size and shape indicators contribute,
// each through a capped band.
func ComplexityScore(m *graph.Metrics) int {
	score := 0

	switch {
	case m.LineCount > 500:
		score += 20
	case m.LineCount > 300:
		score += 15
	case m.LineCount > 150:
		score += 10
	case m.LineCount > 50:
		score += 5
	}

	switch {
	case m.MethodCount > 20:
		score += 15
	case m.MethodCount > 10:
		score += 10
	case m.MethodCount > 5:
		score += 5
	}

	switch {
	case m.ClassCount > 3:
		score += 10
	case m.ClassCount > 1:
		score += 5
	}

	if m.HasInnerClasses {
		score += 8
	}

	switch {
	case m.ImportCount > 20:
		score += 10
	case m.ImportCount > 10:
		score += 5
	}

	switch {
	case m.FieldCount > 15:
		score += 10
	case m.FieldCount > 8:
		score += 7
	case m.FieldCount > 3:
		score += 3
	}

	switch {
	case m.CatchBlockCount > 5:
		score += 8
	case m.CatchBlockCount > 2:
		score += 4
	}

	if m.UsesGenerics {
		score += 5
	}

	switch {
	case m.StaticMethodCount > 5:
		score += 8
	case m.StaticMethodCount > 2:
		score += 4
	}

	return clampScore(score)
}

// RiskScore combines structural danger (cycles, fan-in) with behavioral
// flags, intrinsic complexity, and blast radius on a 0-100 scale. No single
// dimension alone reaches the top tier.
func RiskScore(m *graph.Metrics, blast *BlastRadius, complexity int) int {
	score := 0

	switch {
	case m.FanIn > 8:
		score += 25
	case m.FanIn > 4:
		score += 18
	case m.FanIn > 2:
		score += 12
	case m.FanIn >= 1:
		score += 5
	}

	switch {
	case m.FanOut > 8:
		score += 15
	case m.FanOut > 4:
		score += 10
	case m.FanOut > 2:
		score += 5
	}

	if m.InCycle {
		score += 30
	}

	if m.WritesToDb {
		score += 15
	}
	if m.ReadsFromDb {
		score += 8
	}
	if m.UsesReflection {
		score += 15
	}
	if m.UsesThreading {
		score += 12
	}
	if m.HasInheritance {
		score += 8
	}
	if m.ImplementsInterfaces {
		score += 5
	}

	// Integer division floors, matching the floor(complexity * 0.15) policy.
	score += complexity * 15 / 100

	switch {
	case blast.Percentage > 30:
		score += 10
	case blast.Percentage > 15:
		score += 7
	case blast.Percentage > 5:
		score += 3
	}

	return clampScore(score)
}

// ConvertibilityScore descends from 100 through deductions that mirror the
// risk inputs but are tuned independently. It is deliberately not 100-risk:
// streams and thrown exceptions affect only convertibility, and complexity
// reaches it only through its correlated sub-signals, so the two scores can
// diverge for files that are structurally simple but semantically hard to
// port.
func ConvertibilityScore(m *graph.Metrics, blast *BlastRadius) int {
	score := 100

	if m.InCycle {
		score -= 35
	}
	if m.WritesToDb {
		score -= 20
	}
	if m.ReadsFromDb {
		score -= 10
	}

	switch {
	case m.FanIn > 8:
		score -= 25
	case m.FanIn > 4:
		score -= 18
	case m.FanIn > 2:
		score -= 12
	case m.FanIn >= 1:
		score -= 5
	}

	switch {
	case m.FanOut > 8:
		score -= 15
	case m.FanOut > 4:
		score -= 10
	case m.FanOut > 2:
		score -= 5
	}

	if m.UsesReflection {
		score -= 20
	}
	if m.UsesThreading {
		score -= 15
	}
	if m.UsesStreams {
		score -= 5
	}
	if m.UsesGenerics {
		score -= 8
	}
	if m.HasInheritance {
		score -= 10
	}
	if m.ImplementsInterfaces {
		score -= 5
	}
	if m.HasInnerClasses {
		score -= 10
	}
	if m.ThrowsExceptions {
		score -= 5
	}

	switch {
	case m.LineCount > 500:
		score -= 15
	case m.LineCount > 300:
		score -= 10
	case m.LineCount > 150:
		score -= 5
	}

	switch {
	case m.MethodCount > 20:
		score -= 10
	case m.MethodCount > 10:
		score -= 5
	}

	switch {
	case m.FieldCount > 10:
		score -= 8
	case m.FieldCount > 5:
		score -= 4
	}

	switch {
	case blast.Percentage > 30:
		score -= 10
	case blast.Percentage > 15:
		score -= 5
	}

	return clampScore(score)
}
