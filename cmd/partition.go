package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/facloc-cli/internal/repo"
)

var (
	partDataset    string
	partGroupsFile string
	partCombined   bool
	partJSON       bool
)

var partitionCmd = &cobra.Command{
	Use:   "partition",
	Short: "Partition a dataset by zip-code prefix",
	Long: `Splits a dataset's users and facilities by the first two characters of
their zip codes, or into the combined prefix groups used for the medium
benchmark instances.

Example:
  facloc-cli partition --dataset instance_1_users_and_facs.csv --combined`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		inst, err := repo.LoadDataset(cfg.DataDir, partDataset)
		if err != nil {
			return eris.Wrap(err, "partition: load dataset")
		}

		var users, facs map[string][]int
		if partCombined {
			groups := repo.DefaultGroups
			if partGroupsFile != "" {
				groups, err = repo.LoadGroups(partGroupsFile)
				if err != nil {
					return err
				}
			}
			users, facs, err = repo.CombineByGroups(inst, groups)
		} else {
			users, facs, err = repo.SplitByZipPrefix(inst)
		}
		if err != nil {
			return eris.Wrap(err, "partition: split")
		}

		if partJSON {
			out := map[string]any{"users": users, "facs": facs}
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return eris.Wrap(enc.Encode(out), "partition: encode json")
		}

		keys := make([]string, 0, len(users))
		for k := range users {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "GROUP\tUSERS\tFACILITIES")
		for _, k := range keys {
			fmt.Fprintf(w, "%s\t%d\t%d\n", k, len(users[k]), len(facs[k]))
		}
		return w.Flush()
	},
}

func init() {
	partitionCmd.Flags().StringVar(&partDataset, "dataset", "instance_1_users_and_facs.csv", "dataset filename inside the data directory")
	partitionCmd.Flags().StringVar(&partGroupsFile, "groups-file", "", "YAML file overriding the combined prefix groups")
	partitionCmd.Flags().BoolVar(&partCombined, "combined", false, "merge prefixes into the combined benchmark groups")
	partitionCmd.Flags().BoolVar(&partJSON, "json", false, "emit the partition as JSON")
	rootCmd.AddCommand(partitionCmd)
}
