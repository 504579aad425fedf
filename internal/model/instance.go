// Package model defines the core domain types shared across the CLI:
// users, facilities, instances, travel matrices, and assignments.
package model

import "github.com/rotisserie/eris"

// RegionType classifies a user's surroundings for the access decay curves.
type RegionType string

const (
	RegionUrban RegionType = "urban"
	RegionRural RegionType = "rural"
)

// ParseRegionType validates a raw region type string. Unknown values are an
// error rather than a silent default.
func ParseRegionType(s string) (RegionType, error) {
	switch RegionType(s) {
	case RegionUrban, RegionRural:
		return RegionType(s), nil
	default:
		return "", eris.Errorf("model: invalid region type %q (want urban or rural)", s)
	}
}

// Record is one row of the users-and-facilities dataset. Every record is a
// user; it is additionally a facility iff Capacity > 0. The relocated
// (RC prefixed) coordinates are the facility-side centroid.
type Record struct {
	Index      int        `json:"index"`
	ZipCode    string     `json:"zipcode"`
	Lat        float64    `json:"centroid_lat"`
	Lon        float64    `json:"centroid_lon"`
	RegionType RegionType `json:"regional_spatial_type"`
	Population int        `json:"population"`
	Capacity   int        `json:"capacity"`
	RCLat      float64    `json:"rc_centroid_lat"`
	RCLon      float64    `json:"rc_centroid_lon"`
}

// IsFacility reports whether the record doubles as a facility.
func (r Record) IsFacility() bool { return r.Capacity > 0 }

// Instance bundles the dataset with the derived user and facility index sets.
type Instance struct {
	Records []Record `json:"records"`
	Users   []int    `json:"users"`
	Facs    []int    `json:"facs"`
}

// NewInstance derives the user and facility sets from the dataset: every
// record index is a user, positive-capacity records are facilities.
func NewInstance(records []Record) *Instance {
	inst := &Instance{Records: records}
	for _, rec := range records {
		inst.Users = append(inst.Users, rec.Index)
		if rec.IsFacility() {
			inst.Facs = append(inst.Facs, rec.Index)
		}
	}
	return inst
}

// Record returns the record at the given index.
func (in *Instance) Record(i int) (Record, error) {
	if i < 0 || i >= len(in.Records) {
		return Record{}, eris.Errorf("model: record index %d out of range [0,%d)", i, len(in.Records))
	}
	return in.Records[i], nil
}

// TravelMatrix maps user index -> facility index -> access probability.
// Built once per instance and read-only afterwards; every probability is
// in (0, 1].
type TravelMatrix map[int]map[int]float64

// Prob returns the stored probability for the (user, facility) pair.
func (m TravelMatrix) Prob(user, fac int) (float64, error) {
	row, ok := m[user]
	if !ok {
		return 0, eris.Errorf("model: travel matrix has no user %d", user)
	}
	p, ok := row[fac]
	if !ok {
		return 0, eris.Errorf("model: travel matrix has no entry for user %d, facility %d", user, fac)
	}
	return p, nil
}
