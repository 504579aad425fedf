package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/facloc-cli/internal/matrix"
	"github.com/sells-group/facloc-cli/internal/repo"
)

var (
	buildDataset string
	buildOutput  string
	buildWorkers int
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the travel-probability matrix for a dataset",
	Long: `Computes the access probability for every (user, facility) pair of a
users-and-facilities dataset and writes the matrix as compressed JSON.

Example:
  facloc-cli build --dataset instance_1_users_and_facs.csv --output instance_1_travel_dict.json.gz`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		inst, err := repo.LoadDataset(cfg.DataDir, buildDataset)
		if err != nil {
			return eris.Wrap(err, "build: load dataset")
		}

		workers := buildWorkers
		if workers == 0 {
			workers = cfg.Build.Workers
		}
		var opts []matrix.Option
		if workers > 0 {
			opts = append(opts, matrix.WithWorkers(workers))
		}

		m, err := matrix.New(opts...).Build(ctx, inst)
		if err != nil {
			return eris.Wrap(err, "build: compute matrix")
		}

		if err := repo.SaveTravelMatrix(m, cfg.DataDir, buildOutput); err != nil {
			return eris.Wrap(err, "build: save matrix")
		}

		zap.L().Info("travel matrix written",
			zap.String("dataset", buildDataset),
			zap.String("output", buildOutput),
		)
		return nil
	},
}

func init() {
	buildCmd.Flags().StringVar(&buildDataset, "dataset", "users_and_facilities.csv", "dataset filename inside the data directory")
	buildCmd.Flags().StringVar(&buildOutput, "output", "travel_dict.json.gz", "output matrix filename inside the data directory")
	buildCmd.Flags().IntVar(&buildWorkers, "workers", 0, "concurrent row workers (0 = config / all CPUs)")
	rootCmd.AddCommand(buildCmd)
}
