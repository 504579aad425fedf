package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sells-group/facloc-cli/internal/model"
	"github.com/sells-group/facloc-cli/internal/store"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Inspect validation run history",
	Long:  "Lists previously recorded validation runs from the configured store.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck
		if err := st.Migrate(ctx); err != nil {
			return err
		}

		instance, _ := cmd.Flags().GetString("instance")
		status, _ := cmd.Flags().GetString("status")
		limit, _ := cmd.Flags().GetInt("limit")

		runs, err := st.ListRuns(ctx, store.RunFilter{
			Instance: instance,
			Status:   model.ValidationStatus(status),
			Limit:    limit,
		})
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tINSTANCE\tRESULTS\tSOLUTION\tSTATUS\tFAILURE\tOBJECTIVE\tCREATED")
		for _, r := range runs {
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%s\t%.4f\t%s\n",
				r.ID, r.Instance, r.ResultsFile, r.SolutionIndex, r.Status,
				r.FailureKind, r.Objective, r.CreatedAt.Format("2006-01-02 15:04:05"))
		}
		return w.Flush()
	},
}

func init() {
	runsCmd.Flags().String("instance", "", "filter by instance name (e.g. instance_3)")
	runsCmd.Flags().String("status", "", "filter by status (valid, invalid)")
	runsCmd.Flags().Int("limit", 50, "max number of runs to display")
	rootCmd.AddCommand(runsCmd)
}
