package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRegionType(t *testing.T) {
	rt, err := ParseRegionType("urban")
	require.NoError(t, err)
	assert.Equal(t, RegionUrban, rt)

	rt, err = ParseRegionType("rural")
	require.NoError(t, err)
	assert.Equal(t, RegionRural, rt)

	_, err = ParseRegionType("suburban")
	require.Error(t, err)
}

func TestNewInstance_DerivesSets(t *testing.T) {
	inst := NewInstance([]Record{
		{Index: 0, Population: 100, Capacity: 0},
		{Index: 1, Population: 200, Capacity: 5000},
		{Index: 2, Population: 0, Capacity: 300},
	})

	assert.Equal(t, []int{0, 1, 2}, inst.Users)
	assert.Equal(t, []int{1, 2}, inst.Facs)
}

func TestInstance_RecordOutOfRange(t *testing.T) {
	inst := NewInstance([]Record{{Index: 0}})

	_, err := inst.Record(1)
	require.Error(t, err)
	_, err = inst.Record(-1)
	require.Error(t, err)
}

func TestTravelMatrix_Prob(t *testing.T) {
	m := TravelMatrix{0: {1: 0.5}}

	p, err := m.Prob(0, 1)
	require.NoError(t, err)
	assert.Equal(t, 0.5, p)

	_, err = m.Prob(0, 2)
	require.Error(t, err)
	_, err = m.Prob(3, 1)
	require.Error(t, err)
}
