package progress

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRatio(t *testing.T) {
	assert.Equal(t, 0.0, Ratio(0, 0), "empty denominator is 0, not an error")
	assert.Equal(t, 0.0, Ratio(5, 0))
	assert.Equal(t, 0.5, Ratio(1, 2))
	assert.Equal(t, 1.0, Ratio(7, 7))
}

func TestWorkPackageProgress(t *testing.T) {
	// 10 members, 4 ever completed in any phase across any week.
	ratio := WorkPackageProgress(4, 10)
	assert.InDelta(t, 0.4, ratio, 1e-9)
	assert.Equal(t, 40, Percent(ratio))

	assert.Equal(t, 0.0, WorkPackageProgress(0, 0), "zero members is 0%")
}

func TestWorkPackageProgress_Monotonic(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	for i := 0; i < 200; i++ {
		members := 1 + rng.Intn(50)
		completed := rng.Intn(members)
		before := WorkPackageProgress(completed, members)
		after := WorkPackageProgress(completed+1, members)
		require.GreaterOrEqual(t, after, before)
	}
}

func TestPhaseProgress_Policies(t *testing.T) {
	// Same component scheduled twice for the phase, completed once.
	counts := PhaseCounts{
		CompletedInstances: 1,
		TotalInstances:     2,
		CompletedDistinct:  1,
		TotalDistinct:      1,
	}
	assert.InDelta(t, 0.5, PhaseProgress(counts, CountInstances), 1e-9)
	assert.InDelta(t, 1.0, PhaseProgress(counts, CountDistinct), 1e-9)
}

func TestSquadProgress_PoolsByMemberCount(t *testing.T) {
	// One large, one small package: the pooled ratio follows component
	// counts, not the average of the two ratios.
	pooled := SquadProgress([]WorkPackageCounts{
		{CompletedDistinct: 90, Members: 100},
		{CompletedDistinct: 0, Members: 10},
	})
	assert.InDelta(t, 90.0/110.0, pooled, 1e-9)

	assert.Equal(t, 0.0, SquadProgress(nil))
}

func TestAverage(t *testing.T) {
	assert.Equal(t, 0.0, Average(nil))
	assert.InDelta(t, 0.5, Average([]float64{0.25, 0.75}), 1e-9)
}

func TestProjectWeightedProgress(t *testing.T) {
	// 0.5*0.4 + 0.3*0 + 0.2*0.5 = 0.3
	got := ProjectWeightedProgress([]float64{0.4}, nil, 1, 2)
	assert.InDelta(t, 0.3, got, 1e-9)

	// All signals full.
	assert.InDelta(t, 1.0, ProjectWeightedProgress([]float64{1}, []float64{1}, 3, 3), 1e-9)

	// No data at all.
	assert.Equal(t, 0.0, ProjectWeightedProgress(nil, nil, 0, 0))
}

func TestPercent_RoundsAtDisplayOnly(t *testing.T) {
	assert.Equal(t, 33, Percent(1.0/3.0))
	assert.Equal(t, 67, Percent(2.0/3.0))
	assert.Equal(t, 0, Percent(0))
	assert.Equal(t, 100, Percent(1))

	// Aggregating raw ratios then rounding differs from rounding early;
	// the helpers keep ratios raw so only this final call rounds.
	a, b := 1.0/3.0, 1.0/3.0
	assert.Equal(t, 33, Percent(Average([]float64{a, b})))
}
