package engine

import (
	"fmt"
	"math"

	"github.com/piwi3910/binpack/internal/model"
)

// defaultBootstrapAttempts bounds rejection sampling when the config leaves
// MaxBootstrapAttempts at zero.
const defaultBootstrapAttempts = 100000

// AnnealConfig holds parameters for the simulated annealing optimizer.
type AnnealConfig struct {
	InitialTemperature float64
	CoolingRate        float64 // Geometric factor applied once per iteration, in (0,1)
	MaxIterations      int

	// MaxBootstrapAttempts caps the random sampling of the starting assignment.
	// Zero means defaultBootstrapAttempts.
	MaxBootstrapAttempts int
	// StrictBootstrap fails with ErrBootstrapNonConvergence when sampling is
	// exhausted instead of seeding one item per bin.
	StrictBootstrap bool

	// ReportInterval is the number of iterations between progress callbacks.
	// Zero disables progress reporting.
	ReportInterval int
}

// DefaultAnnealConfig returns the stock schedule: T0=1000, alpha=0.95,
// 100000 iterations, progress every 100 iterations.
func DefaultAnnealConfig() AnnealConfig {
	return AnnealConfig{
		InitialTemperature:   1000,
		CoolingRate:          0.95,
		MaxIterations:        100000,
		MaxBootstrapAttempts: defaultBootstrapAttempts,
		ReportInterval:       100,
	}
}

// ConfigFromApp builds an AnnealConfig from the persisted application defaults.
func ConfigFromApp(c model.AppConfig) AnnealConfig {
	return AnnealConfig{
		InitialTemperature:   c.DefaultInitialTemperature,
		CoolingRate:          c.DefaultCoolingRate,
		MaxIterations:        c.DefaultMaxIterations,
		MaxBootstrapAttempts: c.MaxBootstrapAttempts,
		StrictBootstrap:      c.StrictBootstrap,
		ReportInterval:       c.ReportInterval,
	}
}

func (c AnnealConfig) Validate() error {
	if !(c.InitialTemperature > 0) || math.IsInf(c.InitialTemperature, 0) {
		return fmt.Errorf("%w: initial temperature must be > 0 (got %g)", ErrInvalidParameter, c.InitialTemperature)
	}
	if !(c.CoolingRate > 0 && c.CoolingRate < 1) {
		return fmt.Errorf("%w: cooling rate must lie in (0,1) (got %g)", ErrInvalidParameter, c.CoolingRate)
	}
	if c.MaxIterations < 0 {
		return fmt.Errorf("%w: max iterations must be >= 0 (got %d)", ErrInvalidParameter, c.MaxIterations)
	}
	if c.MaxBootstrapAttempts < 0 {
		return fmt.Errorf("%w: max bootstrap attempts must be >= 0 (got %d)", ErrInvalidParameter, c.MaxBootstrapAttempts)
	}
	if c.ReportInterval < 0 {
		return fmt.Errorf("%w: report interval must be >= 0 (got %d)", ErrInvalidParameter, c.ReportInterval)
	}
	return nil
}

func (c AnnealConfig) bootstrapAttempts() int {
	if c.MaxBootstrapAttempts == 0 {
		return defaultBootstrapAttempts
	}
	return c.MaxBootstrapAttempts
}

// validateInstance checks the weight list and capacity shared by every solver.
// Parameter errors are reported before feasibility so a zero weight is never
// mistaken for an oversized one.
func validateInstance(weights []float64, capacity float64) error {
	if len(weights) == 0 {
		return fmt.Errorf("%w: no items to pack", ErrInvalidParameter)
	}
	if !(capacity > 0) || math.IsInf(capacity, 0) {
		return fmt.Errorf("%w: capacity must be > 0 (got %g)", ErrInvalidParameter, capacity)
	}
	for i, w := range weights {
		if !(w > 0) || math.IsInf(w, 0) {
			return fmt.Errorf("%w: weight[%d] must be > 0 (got %g)", ErrInvalidParameter, i, w)
		}
	}
	for i, w := range weights {
		if w > capacity {
			return fmt.Errorf("%w: weight[%d]=%g exceeds capacity %g", ErrInfeasible, i, w, capacity)
		}
	}
	return nil
}
