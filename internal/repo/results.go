package repo

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"

	"github.com/sells-group/facloc-cli/internal/model"
)

// SolutionDetails is the per-solution payload inside a solver result
// record. Assignment keys arrive as strings and are coerced to integers
// during decoding.
type SolutionDetails struct {
	Assignment model.Assignment `json:"assignment"`
	OpenFacs   []int            `json:"open_facs,omitempty"`
	Objective  float64          `json:"objective,omitempty"`
}

// Result is one record of a solver results list.
type Result struct {
	SolutionDetails SolutionDetails `json:"solution_details"`
	ModelDetails    map[string]any  `json:"model_details,omitempty"`
}

// WriteResults writes a results list as JSON, creating dir on demand.
func WriteResults(results []Result, dir, filename string) error {
	if err := ensureDir(dir); err != nil {
		return err
	}
	path := filepath.Join(dir, filename)
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "repo: create results %s", path)
	}
	defer f.Close() //nolint:errcheck

	if err := json.NewEncoder(f).Encode(results); err != nil {
		return eris.Wrapf(err, "repo: encode results %s", path)
	}
	return nil
}

// ReadResults reads a results list. Assignment keys are decoded back to
// integer user indices; the "unassigned" sentinel becomes an explicit
// unassigned target.
func ReadResults(dir, filename string) ([]Result, error) {
	path := filepath.Join(dir, filename)
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "repo: open results %s", path)
	}
	defer f.Close() //nolint:errcheck

	var results []Result
	if err := json.NewDecoder(f).Decode(&results); err != nil {
		return nil, eris.Wrapf(err, "repo: decode results %s", path)
	}
	return results, nil
}
