// Package bench runs the annealing optimizer against the exact solver on many
// generated instances and collects per-trial records for reporting.
package bench

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/sourcegraph/conc/pool"

	"github.com/piwi3910/binpack/internal/engine"
)

// Record is the outcome of one trial, one row of the results workbook.
type Record struct {
	RunID string
	Trial int // 1-based

	Items              int
	Capacity           float64
	InitialTemperature float64
	CoolingRate        float64
	Iterations         int

	AnnealBins       int
	AnnealTime       time.Duration
	AnnealAssignment []int

	ExactBins       int // 0 when the exact solver failed
	ExactOptimal    bool
	ExactTime       time.Duration
	ExactAssignment []int
	ExactError      string

	GreedyBins int

	GapPercent float64
	HasGap     bool

	Weights []float64
}

// Runner executes trials on a bounded worker pool.
type Runner struct {
	Trials       int
	Workers      int   // <= 0 means 1
	BaseSeed     int64 // Trial i anneals with seed BaseSeed+i
	InstanceSeed int64 // Seed for drawing instances and schedules
	ExactTimeout time.Duration
	Logger       *slog.Logger
}

// Run generates Trials instances from gen and solves each with both the
// annealer and the exact solver. Records are returned in trial order and are
// identical for any worker count.
func (r Runner) Run(ctx context.Context, gen GeneratorConfig) ([]Record, error) {
	if r.Trials <= 0 {
		return nil, fmt.Errorf("trials must be > 0 (got %d)", r.Trials)
	}
	logger := r.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	g, err := NewGenerator(gen, r.InstanceSeed)
	if err != nil {
		return nil, err
	}

	// Draw every trial up front so the instance stream is independent of
	// scheduling.
	trials := make([]Trial, r.Trials)
	for i := range trials {
		trials[i] = g.Next(i, r.BaseSeed+int64(i))
	}

	workers := r.Workers
	if workers <= 0 {
		workers = 1
	}

	runID := uuid.New().String()[:8]
	records := make([]Record, len(trials))

	logger.Info("bench started", "run_id", runID, "trials", r.Trials, "workers", workers)

	p := pool.New().WithMaxGoroutines(workers).WithContext(ctx).WithCancelOnError()
	for i := range trials {
		tr := trials[i]
		p.Go(func(ctx context.Context) error {
			rec, err := runTrial(ctx, tr, r.ExactTimeout)
			if err != nil {
				return fmt.Errorf("trial %d: %w", tr.Index+1, err)
			}
			rec.RunID = runID
			records[tr.Index] = rec

			logger.Debug("trial complete",
				"trial", rec.Trial,
				"capacity", rec.Capacity,
				"anneal_bins", rec.AnnealBins,
				"exact_bins", rec.ExactBins,
				"gap_percent", rec.GapPercent,
			)
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	logger.Info("bench finished", "run_id", runID, "trials", len(records))
	return records, nil
}

func runTrial(ctx context.Context, tr Trial, exactTimeout time.Duration) (Record, error) {
	cmp, err := engine.Compare(ctx, tr.Weights, tr.Capacity, tr.Config, tr.Seed, exactTimeout)
	if err != nil {
		return Record{}, err
	}

	rec := Record{
		Trial:              tr.Index + 1,
		Items:              len(tr.Weights),
		Capacity:           tr.Capacity,
		InitialTemperature: tr.Config.InitialTemperature,
		CoolingRate:        tr.Config.CoolingRate,
		Iterations:         tr.Config.MaxIterations,
		AnnealBins:         cmp.Anneal.Solution.BinCount,
		AnnealTime:         cmp.AnnealTime,
		AnnealAssignment:   cmp.Anneal.Solution.Assignment,
		ExactTime:          cmp.ExactTime,
		GreedyBins:         cmp.Greedy.BinCount,
		GapPercent:         cmp.GapPercent,
		HasGap:             cmp.HasGap,
		Weights:            tr.Weights,
	}
	if cmp.ExactErr != nil {
		rec.ExactError = cmp.ExactErr.Error()
	} else {
		rec.ExactBins = cmp.Exact.BinCount
		rec.ExactOptimal = cmp.Exact.Optimal
		rec.ExactAssignment = cmp.Exact.Assignment
	}
	return rec, nil
}

func durationMs(d time.Duration) float64 {
	return float64(d.Microseconds()) / 1000.0
}
