package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/piwi3910/binpack/internal/bench"
	"github.com/piwi3910/binpack/internal/export"
)

type benchOptions struct {
	trials       int
	workers      int
	seed         int64
	instanceSeed int64
	exactTimeout time.Duration

	items       int
	minWeight   int
	maxWeight   int
	capacityMin int
	capacityMax int

	out string
}

func newBenchCmd(a *app) *cobra.Command {
	o := &benchOptions{}

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Compare annealing against the exact solver on generated instances",
		Long: `Generates trials with random capacities and annealing schedules, solves
each with both the annealer and the exact solver, and reports how often the
annealer reaches the optimum. By default every trial packs the same 15
reference weights; --items switches to random weight lists.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			gen := bench.DefaultGeneratorConfig()
			if o.items > 0 {
				gen.Weights = nil
				gen.Items = o.items
				gen.MinWeight = o.minWeight
				gen.MaxWeight = o.maxWeight
			}
			gen.CapacityMin = o.capacityMin
			gen.CapacityMax = o.capacityMax

			workers := a.config.BenchWorkers
			if cmd.Flags().Changed("workers") {
				workers = o.workers
			}
			exactTimeout := time.Duration(a.config.ExactTimeLimitSeconds) * time.Second
			if cmd.Flags().Changed("exact-timeout") {
				exactTimeout = o.exactTimeout
			}

			runner := bench.Runner{
				Trials:       o.trials,
				Workers:      workers,
				BaseSeed:     o.seed,
				InstanceSeed: o.instanceSeed,
				ExactTimeout: exactTimeout,
				Logger:       a.logger,
			}
			records, err := runner.Run(cmd.Context(), gen)
			if err != nil {
				return err
			}
			summary := bench.Summarize(records)

			out := cmd.OutOrStdout()
			heading(out, "Benchmark")
			fmt.Fprintf(out, "Trials:            %d\n", summary.Trials)
			fmt.Fprintf(out, "With exact result: %d (%d proven optimal)\n", summary.WithExact, summary.ProvenOptimal)
			fmt.Fprintf(out, "Matched optimum:   %d (%.1f%%)\n", summary.MatchedOptimum, summary.MatchRate)
			fmt.Fprintf(out, "Gap:               mean %.2f%%  std %.2f%%  max %.2f%%\n", summary.Gap.Mean, summary.Gap.Std, summary.Gap.Max)
			fmt.Fprintf(out, "Anneal time:       mean %.3f ms\n", summary.AnnealTimeMs.Mean)
			fmt.Fprintf(out, "Exact time:        mean %.3f ms\n", summary.ExactTimeMs.Mean)

			if o.out != "" {
				if err := export.WriteResultsXLSX(o.out, records, summary); err != nil {
					return err
				}
				a.logger.Info("wrote results", "path", o.out, "trials", len(records))
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.IntVarP(&o.trials, "trials", "n", 100, "Number of trials")
	f.IntVarP(&o.workers, "workers", "w", 0, "Concurrent trials (default from config)")
	f.Int64Var(&o.seed, "seed", 1, "Base annealing seed; trial i uses seed+i")
	f.Int64Var(&o.instanceSeed, "instance-seed", 1, "Seed for drawing capacities, schedules and weights")
	f.DurationVar(&o.exactTimeout, "exact-timeout", 0, "Time limit per exact solve (default from config)")
	f.IntVar(&o.items, "items", 0, "Draw this many random weights per trial instead of the reference list")
	f.IntVar(&o.minWeight, "min-weight", 1, "Smallest random weight")
	f.IntVar(&o.maxWeight, "max-weight", 20, "Largest random weight")
	f.IntVar(&o.capacityMin, "capacity-min", 50, "Smallest bin capacity")
	f.IntVar(&o.capacityMax, "capacity-max", 100, "Largest bin capacity")
	f.StringVarP(&o.out, "out", "o", "", "Write per-trial results to an Excel workbook")

	return cmd
}
