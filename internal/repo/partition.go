package repo

import (
	"os"
	"sort"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/facloc-cli/internal/model"
)

// Groups maps a combined-group label to the zip-code prefixes it covers.
type Groups map[string][]string

// DefaultGroups are the five fixed Bavarian prefix groupings used to derive
// the medium-sized benchmark instances.
var DefaultGroups = Groups{
	"63, 97, 96, 95":         {"63", "97", "96", "95"},
	"90, 91, 92":             {"90", "91", "92"},
	"93, 94":                 {"93", "94"},
	"80, 81, 82, 83, 84, 85": {"80", "81", "82", "83", "84", "85"},
	"86, 87, 88, 89":         {"86", "87", "88", "89"},
}

// instanceTwoGroup is the combined group instance 2 is carved from.
const instanceTwoGroup = "90, 91, 92"

// groupsFile is the YAML shape of an external groups file.
type groupsFile struct {
	Groups Groups `yaml:"groups"`
}

// LoadGroups reads combined-group definitions from a YAML file.
func LoadGroups(path string) (Groups, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "repo: read groups file %s", path)
	}
	var gf groupsFile
	if err := yaml.Unmarshal(data, &gf); err != nil {
		return nil, eris.Wrapf(err, "repo: parse groups file %s", path)
	}
	if len(gf.Groups) == 0 {
		return nil, eris.Errorf("repo: groups file %s defines no groups", path)
	}
	return gf.Groups, nil
}

// zipPrefix is the partitioning key: the first two characters of the zip
// code, or the whole code when shorter.
func zipPrefix(zip string) string {
	if len(zip) < 2 {
		return zip
	}
	return zip[:2]
}

// SplitByZipPrefix partitions the instance's users and facilities by
// zip-code prefix. Every user and facility lands in exactly one part, so
// recombining all parts restores the original sets.
func SplitByZipPrefix(inst *model.Instance) (map[string][]int, map[string][]int, error) {
	users := make(map[string][]int)
	facs := make(map[string][]int)
	for _, i := range inst.Users {
		rec, err := inst.Record(i)
		if err != nil {
			return nil, nil, err
		}
		key := zipPrefix(rec.ZipCode)
		users[key] = append(users[key], i)
		if rec.IsFacility() {
			facs[key] = append(facs[key], i)
		}
	}
	// Facility parts exist for every user part, even when empty.
	for key := range users {
		if _, ok := facs[key]; !ok {
			facs[key] = nil
		}
	}
	return users, facs, nil
}

// CombineByGroups partitions by zip prefix and merges parts into the given
// combined groups. Prefixes not covered by any group are dropped, matching
// the benchmark derivation.
func CombineByGroups(inst *model.Instance, groups Groups) (map[string][]int, map[string][]int, error) {
	splitUsers, splitFacs, err := SplitByZipPrefix(inst)
	if err != nil {
		return nil, nil, err
	}

	prefixToGroup := make(map[string]string)
	for label, prefixes := range groups {
		for _, p := range prefixes {
			prefixToGroup[p] = label
		}
	}

	users := make(map[string][]int, len(groups))
	facs := make(map[string][]int, len(groups))
	for label := range groups {
		users[label] = nil
		facs[label] = nil
	}

	var dropped []string
	for prefix, ids := range splitUsers {
		label, ok := prefixToGroup[prefix]
		if !ok {
			dropped = append(dropped, prefix)
			continue
		}
		users[label] = append(users[label], ids...)
	}
	for prefix, ids := range splitFacs {
		if label, ok := prefixToGroup[prefix]; ok {
			facs[label] = append(facs[label], ids...)
		}
	}

	for label := range users {
		sort.Ints(users[label])
		sort.Ints(facs[label])
	}
	if len(dropped) > 0 {
		sort.Strings(dropped)
		zap.L().Debug("prefixes outside combined groups dropped", zap.Strings("prefixes", dropped))
	}
	return users, facs, nil
}

// InstanceTwoSets returns the user and facility sets of benchmark
// instance 2: the "90, 91, 92" combined group of instance 1.
func InstanceTwoSets(inst *model.Instance) ([]int, []int, error) {
	users, facs, err := CombineByGroups(inst, DefaultGroups)
	if err != nil {
		return nil, nil, err
	}
	return users[instanceTwoGroup], facs[instanceTwoGroup], nil
}
