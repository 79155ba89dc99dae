package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/piwi3910/binpack/internal/engine"
	"github.com/piwi3910/binpack/internal/export"
)

type exactOptions struct {
	instance instanceFlags
	timeout  time.Duration

	pdf    string
	labels string
	xlsx   string
	save   string
}

func newExactCmd(a *app) *cobra.Command {
	o := &exactOptions{}

	cmd := &cobra.Command{
		Use:   "exact",
		Short: "Pack items optimally with branch and bound",
		Long: `Runs only the exact solver. The search starts from a first-fit decreasing
packing and stops at the time limit with the best packing found so far, which
is then reported as not proven optimal.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			inst, err := o.instance.load(a)
			if err != nil {
				return err
			}

			timeout := time.Duration(a.config.ExactTimeLimitSeconds) * time.Second
			if cmd.Flags().Changed("timeout") {
				timeout = o.timeout
			}
			ctx := cmd.Context()
			if timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, timeout)
				defer cancel()
			}

			start := time.Now()
			sol, err := engine.SolveExact(ctx, inst.Weights(), inst.Capacity)
			if err != nil {
				return err
			}
			a.logger.Info("exact search finished",
				"bins", sol.BinCount,
				"optimal", sol.Optimal,
				"duration", time.Since(start),
			)

			out := cmd.OutOrStdout()
			heading(out, "Exact packing")
			if err := export.RenderSummary(out, inst, sol); err != nil {
				return err
			}
			if !sol.Optimal {
				fmt.Fprintln(out, "\nTime limit reached: packing is not proven optimal.")
			}

			return writeOutputs(a, inst, sol, engine.ConfigFromApp(a.config), o.pdf, o.labels, o.xlsx, o.save)
		},
	}

	o.instance.register(cmd.Flags())
	f := cmd.Flags()
	f.DurationVar(&o.timeout, "timeout", 0, "Search time limit (default from config, 0 = no limit)")
	f.StringVar(&o.pdf, "pdf", "", "Write a PDF packing report")
	f.StringVar(&o.labels, "labels", "", "Write a PDF sheet of QR item labels")
	f.StringVar(&o.xlsx, "xlsx", "", "Write the packing to an Excel workbook")
	f.StringVar(&o.save, "save", "", "Save instance, settings and result as a project file")

	return cmd
}
