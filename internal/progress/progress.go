// Package progress computes completion ratios bottom-up: component,
// phase, work package, squad, project. Every function is pure and
// stateless; callers fetch the counts from the store and pass them in.
// Ratios stay in [0, 1] through every level of aggregation. Rounding
// happens once, at display, via Percent.
package progress

import "math"

// CountPolicy selects how phase-level progress counts a component that
// is scheduled for the same phase in more than one week.
type CountPolicy int

const (
	// CountInstances counts every weekly scheduling of a component
	// separately, so repeat scheduling (rework) moves the ratio. This
	// is the default.
	CountInstances CountPolicy = iota
	// CountDistinct counts each component at most once per phase.
	CountDistinct
)

// Project KPI weights. Fixed, not configurable.
const (
	weightWorkPackages = 0.5
	weightTestPackages = 0.3
	weightActions      = 0.2
)

// Ratio returns completed/total, or 0 when total is 0.
func Ratio(completed, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(completed) / float64(total)
}

// WorkPackageProgress is the share of a work package's members that
// have ever been marked complete in any phase, any week.
func WorkPackageProgress(completedDistinct, members int) float64 {
	return Ratio(completedDistinct, members)
}

// PhaseCounts holds both counting views of one (work package, phase)
// pair across all scheduled weeks.
type PhaseCounts struct {
	CompletedInstances int
	TotalInstances     int
	CompletedDistinct  int
	TotalDistinct      int
}

// PhaseProgress computes the completion ratio for one phase of a work
// package under the given counting policy.
func PhaseProgress(c PhaseCounts, policy CountPolicy) float64 {
	if policy == CountDistinct {
		return Ratio(c.CompletedDistinct, c.TotalDistinct)
	}
	return Ratio(c.CompletedInstances, c.TotalInstances)
}

// WorkPackageCounts is the per-work-package input to squad and project
// aggregation.
type WorkPackageCounts struct {
	CompletedDistinct int
	Members           int
}

// SquadProgress pools the members of every work package assigned to a
// squad: sum of completed over sum of members, not an average of
// per-package ratios. A squad with one large and one small package is
// weighted by component count.
func SquadProgress(packages []WorkPackageCounts) float64 {
	var completed, total int
	for _, p := range packages {
		completed += p.CompletedDistinct
		total += p.Members
	}
	return Ratio(completed, total)
}

// Average returns the arithmetic mean of ratios, or 0 for an empty
// slice.
func Average(ratios []float64) float64 {
	if len(ratios) == 0 {
		return 0
	}
	var sum float64
	for _, r := range ratios {
		sum += r
	}
	return sum / float64(len(ratios))
}

// ProjectWeightedProgress combines the three project-level signals into
// the headline KPI: 0.5 x mean work-package progress, 0.3 x mean
// test-package progress, 0.2 x completed-over-total ledger actions.
func ProjectWeightedProgress(workPackageRatios, testPackageRatios []float64, completedActions, totalActions int) float64 {
	return weightWorkPackages*Average(workPackageRatios) +
		weightTestPackages*Average(testPackageRatios) +
		weightActions*Ratio(completedActions, totalActions)
}

// Percent converts a ratio to a whole percentage, rounding to nearest.
// This is the only place rounding is allowed; aggregation always works
// on raw ratios.
func Percent(ratio float64) int {
	return int(math.Round(ratio * 100))
}
