package main

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/facloc-cli/internal/export"
	"github.com/sells-group/facloc-cli/internal/model"
	"github.com/sells-group/facloc-cli/internal/repo"
	"github.com/sells-group/facloc-cli/internal/validate"
)

var (
	valInstance        int
	valSufficientCap   bool
	valResults         string
	valBudgetFactor    float64
	valCapacityFactor  float64
	valAllowUnassigned bool
	valXLSX            string
	valNoStore         bool
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate solver assignments against an instance",
	Long: `Reads a results list produced by the optimization model and checks each
solution's assignment for completeness, open-facility membership, capacity
slack, and the open-facility budget. Failed checks are reported per
solution; validation continues across the whole list.

Example:
  facloc-cli validate --instance 3 --results bflp_results.json --budget-factor 0.4`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		inst, m, err := repo.LoadInstance(valInstance, valSufficientCap, cfg.DataDir)
		if err != nil {
			return eris.Wrap(err, "validate: load instance")
		}
		results, err := repo.ReadResults(cfg.ResultsDir, valResults)
		if err != nil {
			return eris.Wrap(err, "validate: read results")
		}

		budgetFactor := valBudgetFactor
		if budgetFactor == 0 {
			budgetFactor = cfg.Validate.BudgetFactor
		}
		capacityFactor := valCapacityFactor
		if capacityFactor == 0 {
			capacityFactor = cfg.Validate.CapacityFactor
		}

		var st storeCloser
		if !valNoStore {
			st, err = initStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close() //nolint:errcheck
			if err := st.Migrate(ctx); err != nil {
				return err
			}
		}

		instanceName := fmt.Sprintf("instance_%d", valInstance)
		reports := make([]*validate.Report, 0, len(results))
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "SOLUTION\tVALID\tFAILURE\tOBJECTIVE")

		for i, res := range results {
			openFacs := res.SolutionDetails.OpenFacs
			if len(openFacs) == 0 {
				openFacs = derivedOpenFacs(res.SolutionDetails.Assignment)
			}

			rep, err := validate.Check(inst, m, openFacs, res.SolutionDetails.Assignment, validate.Params{
				BudgetFactor:    budgetFactor,
				CapacityFactor:  capacityFactor,
				AllowUnassigned: valAllowUnassigned,
			})
			if err != nil {
				return eris.Wrapf(err, "validate: solution %d", i)
			}
			reports = append(reports, rep)

			if rep.Valid {
				fmt.Fprintf(w, "%d\ttrue\t\t%.4f\n", i, rep.Objective)
			} else {
				fmt.Fprintf(w, "%d\tfalse\t%s\t\n", i, rep.Failure)
			}

			if st != nil {
				run := model.ValidationRun{
					Instance:       instanceName,
					ResultsFile:    valResults,
					SolutionIndex:  i,
					Status:         model.ValidationValid,
					Objective:      rep.Objective,
					BudgetFactor:   budgetFactor,
					CapacityFactor: capacityFactor,
				}
				if !rep.Valid {
					run.Status = model.ValidationInvalid
					run.FailureKind = string(rep.Failure)
				}
				if _, err := st.SaveRun(ctx, run); err != nil {
					return eris.Wrapf(err, "validate: save run for solution %d", i)
				}
			}
		}
		if err := w.Flush(); err != nil {
			return eris.Wrap(err, "validate: flush output")
		}

		if valXLSX != "" {
			if err := export.WriteValidationSummary(reports, valXLSX); err != nil {
				return err
			}
			zap.L().Info("validation summary exported", zap.String("path", valXLSX))
		}
		return nil
	},
}

// derivedOpenFacs falls back to the distinct assigned facilities when a
// results record does not carry an explicit open-facility set.
func derivedOpenFacs(a model.Assignment) []int {
	seen := make(map[int]bool)
	for _, t := range a {
		if !t.Unassigned {
			seen[t.Fac] = true
		}
	}
	facs := make([]int, 0, len(seen))
	for j := range seen {
		facs = append(facs, j)
	}
	sort.Ints(facs)
	return facs
}

func init() {
	validateCmd.Flags().IntVar(&valInstance, "instance", 1, "benchmark instance number (1-4)")
	validateCmd.Flags().BoolVar(&valSufficientCap, "suff", false, "use the sufficient-capacity dataset variant")
	validateCmd.Flags().StringVar(&valResults, "results", "", "results filename inside the results directory")
	validateCmd.Flags().Float64Var(&valBudgetFactor, "budget-factor", 0, "max fraction of facilities open (0 = config default)")
	validateCmd.Flags().Float64Var(&valCapacityFactor, "capacity-factor", 0, "capacity scaling factor (0 = config default)")
	validateCmd.Flags().BoolVar(&valAllowUnassigned, "allow-unassigned", false, "permit the explicit unassigned marker")
	validateCmd.Flags().StringVar(&valXLSX, "xlsx", "", "write a validation summary workbook to this path")
	validateCmd.Flags().BoolVar(&valNoStore, "no-store", false, "skip recording validation runs in the store")
	_ = validateCmd.MarkFlagRequired("results")
	rootCmd.AddCommand(validateCmd)
}
