package engine

import "errors"

// Error kinds returned by the optimizers. Callers match them with errors.Is;
// the returned errors wrap these with details about the offending input.
var (
	// ErrInvalidParameter is returned for a non-positive capacity or weight,
	// a cooling rate outside (0,1), or a negative iteration budget.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrInfeasible is returned when some item is heavier than the bin capacity.
	ErrInfeasible = errors.New("infeasible instance")

	// ErrBootstrapNonConvergence is returned when random sampling found no
	// feasible starting assignment and the fallback seed is disabled.
	ErrBootstrapNonConvergence = errors.New("bootstrap did not converge")
)
