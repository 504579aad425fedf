package main

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/facloc-cli/internal/matrix"
	"github.com/sells-group/facloc-cli/internal/repo"
)

var (
	genUsers    int
	genPFac     float64
	genSeed     int64
	genPrefix   string
	genNoMatrix bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a synthetic random instance",
	Long: `Synthesizes a random instance with uniform coordinates in the study
bounding box, random populations and capacities, and saves both the dataset
and its travel matrix.

Example:
  facloc-cli generate --users 5000 --p-fac 0.1 --prefix large_random_instance`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		users := genUsers
		if users == 0 {
			users = cfg.Generate.Users
		}
		pFac := genPFac
		if pFac == 0 {
			pFac = cfg.Generate.PFac
		}

		inst := repo.Generate(repo.GenerateParams{NumUsers: users, PFac: pFac, Seed: genSeed})

		datasetFile := fmt.Sprintf("%s_users_and_facs.csv", genPrefix)
		if err := repo.SaveDataset(inst, cfg.DataDir, datasetFile); err != nil {
			return eris.Wrap(err, "generate: save dataset")
		}

		if genNoMatrix {
			return nil
		}

		m, err := matrix.New().Build(ctx, inst)
		if err != nil {
			return eris.Wrap(err, "generate: build matrix")
		}
		matrixFile := fmt.Sprintf("%s_travel_dict.json.gz", genPrefix)
		if err := repo.SaveTravelMatrix(m, cfg.DataDir, matrixFile); err != nil {
			return eris.Wrap(err, "generate: save matrix")
		}

		zap.L().Info("instance written",
			zap.String("dataset", datasetFile),
			zap.String("matrix", matrixFile),
		)
		return nil
	},
}

func init() {
	generateCmd.Flags().IntVar(&genUsers, "users", 0, "number of users (0 = config default)")
	generateCmd.Flags().Float64Var(&genPFac, "p-fac", 0, "probability a record carries a facility (0 = config default)")
	generateCmd.Flags().Int64Var(&genSeed, "seed", 1, "random seed")
	generateCmd.Flags().StringVar(&genPrefix, "prefix", "large_random_instance", "output filename prefix")
	generateCmd.Flags().BoolVar(&genNoMatrix, "no-matrix", false, "skip building the travel matrix")
	rootCmd.AddCommand(generateCmd)
}
