package commands

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/piwi3910/binpack/internal/engine"
	"github.com/piwi3910/binpack/internal/export"
	"github.com/piwi3910/binpack/internal/model"
	"github.com/piwi3910/binpack/internal/project"
)

type solveOptions struct {
	instance instanceFlags

	temperature     float64
	coolingRate     float64
	iterations      int
	bootstrap       int
	strictBootstrap bool
	seed            int64
	timeout         time.Duration

	compare   bool
	scenarios bool

	pdf    string
	labels string
	xlsx   string
	save   string
}

func newSolveCmd(a *app) *cobra.Command {
	o := &solveOptions{}

	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Pack items with simulated annealing",
		Example: `  binpack solve --weights 4,8,1,4,2,1,3,2,1,2 --capacity 10
  binpack solve --input items.xlsx --capacity 50 --iterations 20000 --compare --pdf out.pdf`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSolve(cmd, a, o)
		},
	}

	o.instance.register(cmd.Flags())
	f := cmd.Flags()
	f.Float64Var(&o.temperature, "temp", 0, "Initial temperature (default from config)")
	f.Float64Var(&o.coolingRate, "cooling", 0, "Geometric cooling rate in (0,1) (default from config)")
	f.IntVar(&o.iterations, "iterations", 0, "Iteration budget (default from config)")
	f.IntVar(&o.bootstrap, "bootstrap-attempts", 0, "Random samples tried for the starting packing (default from config)")
	f.BoolVar(&o.strictBootstrap, "strict-bootstrap", false, "Fail instead of starting from one item per bin")
	f.Int64Var(&o.seed, "seed", 1, "Random seed; equal seeds give equal packings")
	f.DurationVar(&o.timeout, "timeout", 0, "Stop early and keep the best packing so far (0 = no limit)")
	f.BoolVar(&o.compare, "compare", false, "Also run the exact solver and report the gap")
	f.BoolVar(&o.scenarios, "scenarios", false, "Rerun with slower, faster and longer schedules for comparison")
	f.StringVar(&o.pdf, "pdf", "", "Write a PDF packing report")
	f.StringVar(&o.labels, "labels", "", "Write a PDF sheet of QR item labels")
	f.StringVar(&o.xlsx, "xlsx", "", "Write the packing to an Excel workbook")
	f.StringVar(&o.save, "save", "", "Save instance, settings and result as a project file")

	return cmd
}

// annealConfig starts from the persisted defaults and applies the flags the
// user actually set.
func (o *solveOptions) annealConfig(cmd *cobra.Command, app model.AppConfig) engine.AnnealConfig {
	cfg := engine.ConfigFromApp(app)
	f := cmd.Flags()
	if f.Changed("temp") {
		cfg.InitialTemperature = o.temperature
	}
	if f.Changed("cooling") {
		cfg.CoolingRate = o.coolingRate
	}
	if f.Changed("iterations") {
		cfg.MaxIterations = o.iterations
	}
	if f.Changed("bootstrap-attempts") {
		cfg.MaxBootstrapAttempts = o.bootstrap
	}
	if f.Changed("strict-bootstrap") {
		cfg.StrictBootstrap = o.strictBootstrap
	}
	return cfg
}

func runSolve(cmd *cobra.Command, a *app, o *solveOptions) error {
	inst, err := o.instance.load(a)
	if err != nil {
		return err
	}
	weights := inst.Weights()
	cfg := o.annealConfig(cmd, a.config)
	if err := cfg.Validate(); err != nil {
		return err
	}

	est := model.EstimateBins(weights, inst.Capacity, 0)
	a.logger.Info("solving",
		"items", len(weights),
		"capacity", inst.Capacity,
		"lower_bound", est.LowerBound,
		"temperature", cfg.InitialTemperature,
		"cooling_rate", cfg.CoolingRate,
		"iterations", cfg.MaxIterations,
		"seed", o.seed,
	)

	ctx := cmd.Context()
	if o.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.timeout)
		defer cancel()
	}

	progress := func(iteration, bestCost int, temperature float64) {
		a.logger.Debug("progress", "iteration", iteration, "best_bins", bestCost, "temperature", temperature)
	}

	res, err := engine.Optimize(ctx, weights, inst.Capacity, cfg, o.seed, progress)
	if err != nil {
		return err
	}
	a.logger.Info("annealing finished",
		"bins", res.Solution.BinCount,
		"initial_bins", res.InitialCost,
		"iterations", res.Iterations,
		"accepted", res.Accepted,
		"rejected", res.Rejected,
		"skipped", res.Skipped,
		"fallback_start", res.FallbackSeeded,
		"stopped", res.Stopped,
		"duration", res.Duration,
	)
	if res.Stopped {
		a.logger.Warn("stopped before the iteration budget; reporting the best packing so far")
	}

	out := cmd.OutOrStdout()
	sol := res.Solution.Compact()
	heading(out, "Packing")
	if err := export.RenderSummary(out, inst, sol); err != nil {
		return err
	}

	if o.compare {
		if err := printExactComparison(cmd.Context(), out, a, inst, sol.BinCount); err != nil {
			return err
		}
	}
	if o.scenarios {
		printScenarios(ctx, out, inst, cfg, o.seed)
	}

	return writeOutputs(a, inst, sol, cfg, o.pdf, o.labels, o.xlsx, o.save)
}

func printExactComparison(ctx context.Context, w io.Writer, a *app, inst model.Instance, annealBins int) error {
	if limit := a.config.ExactTimeLimitSeconds; limit > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(limit)*time.Second)
		defer cancel()
	}

	start := time.Now()
	exact, err := engine.SolveExact(ctx, inst.Weights(), inst.Capacity)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	fmt.Fprintln(w)
	heading(w, "Exact comparison")
	status := "proven optimal"
	if !exact.Optimal {
		status = "best found before the time limit"
	}
	fmt.Fprintf(w, "Exact bins:   %d (%s, %s)\n", exact.BinCount, status, elapsed.Round(time.Millisecond))
	fmt.Fprintf(w, "Anneal bins:  %d\n", annealBins)
	fmt.Fprintf(w, "Gap:          %.2f%%\n", engine.Gap(annealBins, exact.BinCount))
	return nil
}

func printScenarios(ctx context.Context, w io.Writer, inst model.Instance, cfg engine.AnnealConfig, seed int64) {
	quiet := cfg
	quiet.ReportInterval = 0
	results := engine.CompareScenarios(ctx, inst.Weights(), inst.Capacity, engine.BuildDefaultScenarios(quiet), seed)

	fmt.Fprintln(w)
	heading(w, "Schedule scenarios")
	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(w, "%-28s error: %v\n", r.Scenario.Name, r.Err)
			continue
		}
		fmt.Fprintf(w, "%-28s %3d bins  %8d iterations  %s\n",
			r.Scenario.Name, r.Result.Solution.BinCount, r.Result.Iterations, r.Result.Duration.Round(time.Microsecond))
	}
}

// writeOutputs produces every export the user asked for and records a saved
// project in the recent files list.
func writeOutputs(a *app, inst model.Instance, sol model.Solution, cfg engine.AnnealConfig, pdfPath, labelsPath, xlsxPath, savePath string) error {
	if pdfPath != "" {
		if err := export.ExportPDF(pdfPath, inst, sol); err != nil {
			return fmt.Errorf("write PDF: %w", err)
		}
		a.logger.Info("wrote PDF report", "path", pdfPath)
	}
	if labelsPath != "" {
		if err := export.ExportLabels(labelsPath, inst, sol); err != nil {
			return fmt.Errorf("write labels: %w", err)
		}
		a.logger.Info("wrote labels", "path", labelsPath)
	}
	if xlsxPath != "" {
		if err := export.WriteSolutionXLSX(xlsxPath, inst, sol); err != nil {
			return fmt.Errorf("write workbook: %w", err)
		}
		a.logger.Info("wrote workbook", "path", xlsxPath)
	}
	if savePath != "" {
		p := model.NewProject()
		p.Instance = inst
		p.Config = a.config
		p.Config.DefaultInitialTemperature = cfg.InitialTemperature
		p.Config.DefaultCoolingRate = cfg.CoolingRate
		p.Config.DefaultMaxIterations = cfg.MaxIterations
		p.Result = &sol
		if err := project.SaveProject(savePath, p); err != nil {
			return err
		}
		a.logger.Info("saved project", "path", savePath)

		a.config.AddRecentFile(savePath, 10)
		if err := project.SaveAppConfig(a.configPath(), a.config); err != nil {
			a.logger.Warn("could not update recent files", "error", err)
		}
	}
	return nil
}
