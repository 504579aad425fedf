package access

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/facloc-cli/internal/model"
)

func TestProbability_Range(t *testing.T) {
	distances := []float64{0, 0.1, 1, 4.99, 5, 5.01, 10, 50, 200}
	for _, region := range []model.RegionType{model.RegionUrban, model.RegionRural} {
		for _, d := range distances {
			p, err := Probability(d, region)
			require.NoError(t, err)
			assert.Greater(t, p, 0.0, "region %s d=%v", region, d)
			assert.LessOrEqual(t, p, 1.0, "region %s d=%v", region, d)
		}
	}
}

func TestProbability_ZeroDistance(t *testing.T) {
	assert.Equal(t, 1.0, Urban(0))
	assert.Equal(t, 1.0, Rural(0))
}

func TestProbability_StrictlyDecreasingPerBranch(t *testing.T) {
	// Each fitted branch is strictly decreasing. The branches were fitted
	// independently, so monotonicity is not guaranteed across the 5 km
	// boundary itself; that residual jump is covered by the branch-gap test.
	for _, curve := range []struct {
		name string
		f    func(float64) float64
	}{
		{"urban", Urban},
		{"rural", Rural},
	} {
		t.Run(curve.name, func(t *testing.T) {
			prev := curve.f(0)
			for d := 0.05; d < 5; d += 0.05 {
				p := curve.f(d)
				assert.Less(t, p, prev, "short branch must decrease at d=%.2f", d)
				prev = p
			}
			prev = curve.f(5)
			for d := 5.05; d < 100; d += 0.05 {
				p := curve.f(d)
				assert.Less(t, p, prev, "long branch must decrease at d=%.2f", d)
				prev = p
			}
		})
	}
}

func TestProbability_BranchGapWithinFit(t *testing.T) {
	// The fitted branches do not meet exactly at 5 km; the residual jump is
	// just under 1e-2 for both curves and must not grow past that.
	urbanShort := math.Exp(-0.2550891696011455 * math.Pow(5, 0.8674531576586394))
	urbanLong := 4.639450774188538 * math.Exp(-1.4989521421856289*math.Pow(5, 0.3288777336829004))
	assert.InDelta(t, urbanShort, urbanLong, 1e-2)

	ruralShort := math.Exp(-0.24990116894290326 * math.Pow(5, 0.8201058149904008))
	ruralLong := 1.6114912595353221 * math.Exp(-0.6887217475464711*math.Pow(5, 0.43652329253292316))
	assert.InDelta(t, ruralShort, ruralLong, 1e-2)
}

func TestProbability_InvalidRegionType(t *testing.T) {
	_, err := Probability(3.0, model.RegionType("suburban"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid region type")
}

func TestProbability_KnownValues(t *testing.T) {
	// Pinned values computed directly from the fitted constants.
	assert.InDelta(t, math.Exp(-0.2550891696011455), Urban(1), 1e-12)
	assert.InDelta(t, math.Exp(-0.24990116894290326), Rural(1), 1e-12)
}
