package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/facloc-cli/internal/repo"
)

var (
	instNumber int
	instSuff   bool
)

var instanceCmd = &cobra.Command{
	Use:   "instance",
	Short: "Summarize a benchmark instance",
	Long: `Loads a benchmark instance's dataset and travel matrix and prints its
user, facility, population, and capacity totals.

Example:
  facloc-cli instance --number 2`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		inst, m, err := repo.LoadInstance(instNumber, instSuff, cfg.DataDir)
		if err != nil {
			return eris.Wrap(err, "instance: load")
		}

		var population, capacity int
		for _, i := range inst.Users {
			rec, err := inst.Record(i)
			if err != nil {
				return eris.Wrap(err, "instance: resolve user")
			}
			population += rec.Population
		}
		for _, j := range inst.Facs {
			rec, err := inst.Record(j)
			if err != nil {
				return eris.Wrap(err, "instance: resolve facility")
			}
			capacity += rec.Capacity
		}

		entries := 0
		for _, row := range m {
			entries += len(row)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintf(w, "instance\t%d\n", instNumber)
		fmt.Fprintf(w, "dataset\t%s\n", repo.DatasetFilename(instNumber, instSuff))
		fmt.Fprintf(w, "matrix\t%s\n", repo.TravelMatrixFilename(instNumber))
		fmt.Fprintf(w, "records\t%d\n", len(inst.Records))
		fmt.Fprintf(w, "users\t%d\n", len(inst.Users))
		fmt.Fprintf(w, "facilities\t%d\n", len(inst.Facs))
		fmt.Fprintf(w, "population\t%d\n", population)
		fmt.Fprintf(w, "capacity\t%d\n", capacity)
		fmt.Fprintf(w, "matrix entries\t%d\n", entries)
		return w.Flush()
	},
}

func init() {
	instanceCmd.Flags().IntVar(&instNumber, "number", 1, "benchmark instance number (1-4)")
	instanceCmd.Flags().BoolVar(&instSuff, "suff", false, "use the sufficient-capacity dataset variant")
	rootCmd.AddCommand(instanceCmd)
}
