package model

import "time"

// ValidationStatus is the outcome of one validation run.
type ValidationStatus string

const (
	ValidationValid   ValidationStatus = "valid"
	ValidationInvalid ValidationStatus = "invalid"
)

// ValidationRun is one persisted validation of a candidate solution.
type ValidationRun struct {
	ID             string           `json:"id"`
	Instance       string           `json:"instance"`
	ResultsFile    string           `json:"results_file"`
	SolutionIndex  int              `json:"solution_index"`
	Status         ValidationStatus `json:"status"`
	FailureKind    string           `json:"failure_kind,omitempty"`
	Objective      float64          `json:"objective"`
	BudgetFactor   float64          `json:"budget_factor"`
	CapacityFactor float64          `json:"capacity_factor"`
	CreatedAt      time.Time        `json:"created_at"`
}
