package repo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/facloc-cli/internal/model"
)

func TestDatasetFilename(t *testing.T) {
	assert.Equal(t, "instance_1_users_and_facs.csv", DatasetFilename(1, false))
	assert.Equal(t, "instance_1_suff_users_and_facs.csv", DatasetFilename(1, true))
	assert.Equal(t, "instance_3_users_and_facs.csv", DatasetFilename(3, false))
	// Instance 2 shares instance 1's files.
	assert.Equal(t, "instance_1_users_and_facs.csv", DatasetFilename(2, false))
	assert.Equal(t, "instance_1_travel_dict.json.gz", TravelMatrixFilename(2))
}

func TestLoadInstance_OutOfRange(t *testing.T) {
	_, _, err := LoadInstance(5, false, t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "allowed range")
}

func TestLoadInstance_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	inst := bavarianInstance()
	m := model.TravelMatrix{0: {1: 0.5, 2: 0.4, 4: 0.1}}

	require.NoError(t, SaveDataset(inst, dir, DatasetFilename(1, false)))
	require.NoError(t, SaveTravelMatrix(m, dir, TravelMatrixFilename(1)))

	loaded, loadedM, err := LoadInstance(1, false, dir)
	require.NoError(t, err)
	assert.Equal(t, inst.Users, loaded.Users)
	assert.Equal(t, inst.Facs, loaded.Facs)
	assert.InDelta(t, 0.5, loadedM[0][1], 1e-15)
}

func TestLoadInstance_TwoRestrictsSets(t *testing.T) {
	dir := t.TempDir()
	inst := bavarianInstance()
	m := model.TravelMatrix{0: {1: 0.5}}

	require.NoError(t, SaveDataset(inst, dir, DatasetFilename(1, false)))
	require.NoError(t, SaveTravelMatrix(m, dir, TravelMatrixFilename(1)))

	loaded, _, err := LoadInstance(2, false, dir)
	require.NoError(t, err)
	// The "90, 91, 92" group of the bavarian fixture.
	assert.Equal(t, []int{0, 1}, loaded.Users)
	assert.Equal(t, []int{1}, loaded.Facs)
	// Records stay those of instance 1.
	assert.Len(t, loaded.Records, len(inst.Records))
}

func TestLoadInstance_MissingMatrix(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, SaveDataset(bavarianInstance(), dir, DatasetFilename(1, false)))

	_, _, err := LoadInstance(1, false, dir)
	require.Error(t, err)
}
