package repo

import (
	"fmt"

	"github.com/rotisserie/eris"

	"github.com/sells-group/facloc-cli/internal/model"
)

// Benchmark instance numbering. Instance 2 shares instance 1's files and
// restricts the user and facility sets to one combined zip-code group.
const (
	minInstance = 1
	maxInstance = 4
)

// DatasetFilename is the conventional dataset filename for a benchmark
// instance. The sufficient-capacity variant carries a "suff_" marker.
func DatasetFilename(instance int, sufficientCap bool) string {
	n := instance
	if instance == 2 {
		n = 1
	}
	suff := ""
	if sufficientCap {
		suff = "suff_"
	}
	return fmt.Sprintf("instance_%d_%susers_and_facs.csv", n, suff)
}

// TravelMatrixFilename is the conventional travel matrix filename for a
// benchmark instance.
func TravelMatrixFilename(instance int) string {
	n := instance
	if instance == 2 {
		n = 1
	}
	return fmt.Sprintf("instance_%d_travel_dict.json.gz", n)
}

// LoadInstance loads a benchmark instance's dataset and travel matrix from
// dataDir. For instance 2 the user and facility sets are restricted to the
// "90, 91, 92" combined group while the records and matrix stay those of
// instance 1.
func LoadInstance(instance int, sufficientCap bool, dataDir string) (*model.Instance, model.TravelMatrix, error) {
	if instance < minInstance || instance > maxInstance {
		return nil, nil, eris.Errorf("repo: instance number %d not in allowed range %d-%d", instance, minInstance, maxInstance)
	}

	inst, err := LoadDataset(dataDir, DatasetFilename(instance, sufficientCap))
	if err != nil {
		return nil, nil, err
	}
	m, err := LoadTravelMatrix(dataDir, TravelMatrixFilename(instance))
	if err != nil {
		return nil, nil, err
	}

	if instance == 2 {
		users, facs, err := InstanceTwoSets(inst)
		if err != nil {
			return nil, nil, err
		}
		inst.Users = users
		inst.Facs = facs
	}
	return inst, m, nil
}
