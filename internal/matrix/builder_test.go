package matrix

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/facloc-cli/internal/access"
	"github.com/sells-group/facloc-cli/internal/model"
)

func testInstance() *model.Instance {
	return model.NewInstance([]model.Record{
		{Index: 0, ZipCode: "90402", Lat: 49.45, Lon: 11.08, RegionType: model.RegionUrban, Population: 1200, RCLat: 49.45, RCLon: 11.08},
		{Index: 1, ZipCode: "91052", Lat: 49.60, Lon: 11.00, RegionType: model.RegionRural, Population: 800, Capacity: 5000, RCLat: 49.61, RCLon: 11.01},
		{Index: 2, ZipCode: "92224", Lat: 49.44, Lon: 11.85, RegionType: model.RegionRural, Population: 400, Capacity: 3000, RCLat: 49.44, RCLon: 11.86},
	})
}

func TestBuild_FullCrossProduct(t *testing.T) {
	inst := testInstance()
	m, err := New().Build(context.Background(), inst)
	require.NoError(t, err)

	require.Len(t, m, 3)
	for _, i := range inst.Users {
		require.Len(t, m[i], 2, "user %d must cover every facility", i)
		for _, j := range inst.Facs {
			p, err := m.Prob(i, j)
			require.NoError(t, err)
			assert.Greater(t, p, 0.0)
			assert.LessOrEqual(t, p, 1.0)
		}
	}
}

func TestBuild_UsesRegionType(t *testing.T) {
	inst := testInstance()
	// Fixed distance makes the probability depend only on the curve.
	fixed := func(lat1, lon1, lat2, lon2 float64) float64 { return 10 }
	m, err := New(WithDistance(fixed)).Build(context.Background(), inst)
	require.NoError(t, err)

	assert.InDelta(t, access.Urban(10), m[0][1], 1e-12)
	assert.InDelta(t, access.Rural(10), m[1][2], 1e-12)
}

func TestBuild_UsesRelocatedFacilityCoords(t *testing.T) {
	inst := testInstance()
	var sawRC bool
	dist := func(lat1, lon1, lat2, lon2 float64) float64 {
		if lat2 == 49.61 && lon2 == 11.01 {
			sawRC = true
		}
		return 1
	}
	_, err := New(WithDistance(dist), WithWorkers(1)).Build(context.Background(), inst)
	require.NoError(t, err)
	assert.True(t, sawRC, "builder must target the relocated facility centroid")
}

func TestBuild_Deterministic(t *testing.T) {
	inst := testInstance()
	a, err := New(WithWorkers(4)).Build(context.Background(), inst)
	require.NoError(t, err)
	b, err := New(WithWorkers(1)).Build(context.Background(), inst)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestBuild_InvalidRegionType(t *testing.T) {
	inst := model.NewInstance([]model.Record{
		{Index: 0, RegionType: model.RegionType("exurban"), Population: 10},
		{Index: 1, RegionType: model.RegionRural, Capacity: 100},
	})
	_, err := New().Build(context.Background(), inst)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid region type")
}

func TestBuild_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New(WithWorkers(1)).Build(ctx, testInstance())
	require.Error(t, err)
}
