package repo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/facloc-cli/internal/model"
)

func TestGenerate_Shape(t *testing.T) {
	inst := Generate(GenerateParams{NumUsers: 200, PFac: 0.3, Seed: 7})

	require.Len(t, inst.Records, 200)
	require.Len(t, inst.Users, 200)
	assert.NotEmpty(t, inst.Facs)
	assert.Less(t, len(inst.Facs), 200)

	for _, rec := range inst.Records {
		assert.GreaterOrEqual(t, rec.Lat, 47.3)
		assert.LessOrEqual(t, rec.Lat, 49.0)
		assert.GreaterOrEqual(t, rec.Lon, 9.0)
		assert.LessOrEqual(t, rec.Lon, 11.5)
		assert.GreaterOrEqual(t, rec.Population, 0)
		assert.LessOrEqual(t, rec.Population, 20000)
		assert.GreaterOrEqual(t, rec.Capacity, 0)
		assert.LessOrEqual(t, rec.Capacity, 80000)
		assert.Contains(t, []model.RegionType{model.RegionUrban, model.RegionRural}, rec.RegionType)
		// The relocated centroid is a small perturbation of the original.
		assert.InDelta(t, rec.Lat, rec.RCLat, 0.1)
		assert.InDelta(t, rec.Lon, rec.RCLon, 0.1)
	}
}

func TestGenerate_FacilityIffPositiveCapacity(t *testing.T) {
	inst := Generate(GenerateParams{NumUsers: 100, PFac: 0.5, Seed: 3})
	facSet := make(map[int]bool, len(inst.Facs))
	for _, j := range inst.Facs {
		facSet[j] = true
	}
	for _, rec := range inst.Records {
		assert.Equal(t, rec.Capacity > 0, facSet[rec.Index], "record %d", rec.Index)
	}
}

func TestGenerate_DeterministicForSeed(t *testing.T) {
	a := Generate(GenerateParams{NumUsers: 50, PFac: 0.2, Seed: 42})
	b := Generate(GenerateParams{NumUsers: 50, PFac: 0.2, Seed: 42})
	assert.Equal(t, a.Records, b.Records)
}

func TestGenerate_NoFacilitiesAtZeroPFac(t *testing.T) {
	inst := Generate(GenerateParams{NumUsers: 50, PFac: 0, Seed: 1})
	assert.Empty(t, inst.Facs)
}
