// Package validate checks externally produced assignments against the
// capacity, budget, and completeness constraints of an instance.
package validate

import (
	"math"
	"sort"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/facloc-cli/internal/model"
)

// FailureKind names the first constraint a candidate solution violated.
type FailureKind string

const (
	FailureMissingAssignment FailureKind = "MissingAssignment"
	FailureInvalidTarget     FailureKind = "InvalidTarget"
	FailureCapacityExceeded  FailureKind = "CapacityExceeded"
	FailureBudgetExceeded    FailureKind = "BudgetExceeded"
)

// Params configures a validation. The strict and relaxed validator variants
// are the same check parameterized by AllowUnassigned.
type Params struct {
	BudgetFactor    float64
	CapacityFactor  float64
	AllowUnassigned bool
}

// DefaultCapacityFactor is the operational scaling applied to nominal
// facility capacities.
const DefaultCapacityFactor = 1.5

// Report is the outcome of one validation. A failed check yields
// Valid=false plus diagnostic detail; it is a value, not an error, so batch
// validation of many candidates can continue.
type Report struct {
	Valid        bool            `json:"valid"`
	Failure      FailureKind     `json:"failure,omitempty"`
	MissingUsers []int           `json:"missing_users,omitempty"`
	BadTargets   map[int]int     `json:"bad_targets,omitempty"`
	NotSatisfied []int           `json:"not_satisfied,omitempty"`
	OpenCount    int             `json:"open_count"`
	Budget       int             `json:"budget"`
	Slacks       map[int]float64 `json:"slacks,omitempty"`
	Objective    float64         `json:"objective"`
}

// Check validates an assignment for the given instance, travel matrix, and
// open-facility set. Checks run in order and short-circuit on the first
// failure: completeness, target validity, capacity, budget. On success the
// report carries the normalized-slack fairness objective (lower is a better
// balance of relative spare capacity).
//
// A zero-capacity facility in the instance's facility set is a precondition
// violation and returns an error rather than a silently guarded division.
func Check(inst *model.Instance, m model.TravelMatrix, openFacs []int, assignment model.Assignment, p Params) (*Report, error) {
	if p.CapacityFactor == 0 {
		p.CapacityFactor = DefaultCapacityFactor
	}
	log := zap.L().With(zap.String("component", "validate"))
	rep := &Report{
		OpenCount: len(openFacs),
		Budget:    int(math.Round(p.BudgetFactor * float64(len(inst.Facs)))),
	}

	open := make(map[int]bool, len(openFacs))
	for _, j := range openFacs {
		open[j] = true
	}

	// Completeness: every user must appear as a key.
	for _, i := range inst.Users {
		if _, ok := assignment[i]; !ok {
			rep.MissingUsers = append(rep.MissingUsers, i)
		}
	}
	if len(rep.MissingUsers) > 0 {
		sort.Ints(rep.MissingUsers)
		rep.Failure = FailureMissingAssignment
		log.Warn("some user is not assigned a facility",
			zap.Ints("users", rep.MissingUsers))
		return rep, nil
	}

	// Target validity: only open facilities, plus the explicit unassigned
	// marker when permitted.
	for user, t := range assignment {
		if t.Unassigned {
			if !p.AllowUnassigned {
				if rep.BadTargets == nil {
					rep.BadTargets = make(map[int]int)
				}
				rep.BadTargets[user] = -1
			}
			continue
		}
		if !open[t.Fac] {
			if rep.BadTargets == nil {
				rep.BadTargets = make(map[int]int)
			}
			rep.BadTargets[user] = t.Fac
		}
	}
	if len(rep.BadTargets) > 0 {
		rep.Failure = FailureInvalidTarget
		log.Warn("some user is assigned to a closed facility",
			zap.Int("count", len(rep.BadTargets)))
		return rep, nil
	}

	// Capacity: scaled capacity minus expected load of assigned users.
	slacks, err := Slacks(inst, m, assignment, p.CapacityFactor)
	if err != nil {
		return nil, err
	}
	rep.Slacks = slacks
	for _, j := range inst.Facs {
		if slacks[j] < 0 {
			rep.NotSatisfied = append(rep.NotSatisfied, j)
		}
	}
	if len(rep.NotSatisfied) > 0 {
		sort.Ints(rep.NotSatisfied)
		rep.Failure = FailureCapacityExceeded
		log.Warn("capacity constraints not satisfied",
			zap.Ints("facilities", rep.NotSatisfied))
		return rep, nil
	}

	// Budget: open facilities bounded by a fraction of all facilities.
	if len(openFacs) > rep.Budget {
		rep.Failure = FailureBudgetExceeded
		log.Warn("too many facilities open",
			zap.Int("open", len(openFacs)),
			zap.Int("budget", rep.Budget))
		return rep, nil
	}

	obj, err := Objective(inst, slacks, p.CapacityFactor)
	if err != nil {
		return nil, err
	}
	rep.Valid = true
	rep.Objective = obj
	log.Info("solution valid", zap.Float64("objective", obj))
	return rep, nil
}

// Slacks computes the remaining scaled capacity per facility under the
// assignment. Unassigned entries contribute no load; a target outside the
// instance's facility set is an error.
func Slacks(inst *model.Instance, m model.TravelMatrix, assignment model.Assignment, capFactor float64) (map[int]float64, error) {
	slacks := make(map[int]float64, len(inst.Facs))
	for _, j := range inst.Facs {
		rec, err := inst.Record(j)
		if err != nil {
			return nil, err
		}
		slacks[j] = capFactor * float64(rec.Capacity)
	}
	for user, t := range assignment {
		if t.Unassigned {
			continue
		}
		if _, ok := slacks[t.Fac]; !ok {
			return nil, eris.Errorf("validate: user %d assigned to %d, which is not in the facility set", user, t.Fac)
		}
		rec, err := inst.Record(user)
		if err != nil {
			return nil, err
		}
		p, err := m.Prob(user, t.Fac)
		if err != nil {
			return nil, eris.Wrap(err, "validate: slack")
		}
		slacks[t.Fac] -= float64(rec.Population) * p
	}
	return slacks, nil
}

// Objective is the normalized-slack fairness measure
// sum_j capFactor*cap(j)*(slack(j)/(capFactor*cap(j)))^2 over the
// instance's facilities.
func Objective(inst *model.Instance, slacks map[int]float64, capFactor float64) (float64, error) {
	var obj float64
	for _, j := range inst.Facs {
		rec, err := inst.Record(j)
		if err != nil {
			return 0, err
		}
		scaled := capFactor * float64(rec.Capacity)
		if scaled == 0 {
			return 0, eris.Errorf("validate: facility %d has zero capacity; facility sets must contain positive-capacity facilities only", j)
		}
		rel := slacks[j] / scaled
		obj += scaled * rel * rel
	}
	return obj, nil
}
