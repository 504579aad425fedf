package model

import (
	"encoding/json"

	"github.com/rotisserie/eris"
)

// unassignedSentinel is the wire value solvers emit for users they leave
// unserved. It exists only at the serialization boundary; in memory the
// state is carried by Target.Unassigned.
const unassignedSentinel = "unassigned"

// Target is the facility a user is assigned to, or the explicit unassigned
// marker permitted by the relaxed validator.
type Target struct {
	Fac        int
	Unassigned bool
}

// Assigned builds a target pointing at a facility.
func Assigned(fac int) Target { return Target{Fac: fac} }

// UnassignedTarget is the explicit not-served marker.
var UnassignedTarget = Target{Unassigned: true}

// MarshalJSON writes the facility index, or the sentinel string for
// unassigned targets, matching the solver result format.
func (t Target) MarshalJSON() ([]byte, error) {
	if t.Unassigned {
		return json.Marshal(unassignedSentinel)
	}
	return json.Marshal(t.Fac)
}

// UnmarshalJSON accepts either a facility index or the sentinel string.
func (t *Target) UnmarshalJSON(data []byte) error {
	var fac int
	if err := json.Unmarshal(data, &fac); err == nil {
		*t = Target{Fac: fac}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return eris.Wrap(err, "model: decode assignment target")
	}
	if s != unassignedSentinel {
		return eris.Errorf("model: invalid assignment target %q", s)
	}
	*t = UnassignedTarget
	return nil
}

// Assignment maps each user index to its target. Produced externally per
// solver run and consumed only by validation.
type Assignment map[int]Target

// AssignedOnly returns the user -> facility pairs, dropping unassigned
// entries.
func (a Assignment) AssignedOnly() map[int]int {
	out := make(map[int]int, len(a))
	for user, t := range a {
		if !t.Unassigned {
			out[user] = t.Fac
		}
	}
	return out
}
