package emd

import "errors"

// Sentinel errors returned by the exact OT solver.
var (
	// ErrInfeasibleInput indicates malformed marginals or cost matrix:
	// mismatched dimensions, negative marginal entries, NaN/Inf values,
	// or total masses that differ beyond Options.MassTol.
	ErrInfeasibleInput = errors.New("emd: infeasible input")

	// ErrNotConverged indicates the pivot cap was reached before the
	// optimality test passed. The plan returned alongside it is feasible
	// (row and column sums match the marginals) but possibly suboptimal.
	ErrNotConverged = errors.New("emd: pivot cap reached before optimality")
)

// Default option values.
const (
	// DefaultMassTol is the tolerance on |Σa - Σb| for the feasibility check.
	DefaultMassTol = 1e-9

	// DefaultEpsilon is the reduced-cost threshold for the optimality test:
	// a pivot happens only on a reduced cost below -Epsilon.
	DefaultEpsilon = 1e-12

	// DefaultMaxIter caps the number of simplex pivots.
	DefaultMaxIter = 100000
)

// Options configures the transportation simplex.
//   - MassTol: tolerance on the total-mass match between a and b.
//   - Epsilon: reduced-cost optimality threshold.
//   - MaxIter: pivot cap; reaching it yields ErrNotConverged.
//   - Verbose: print objective value per pivot via fmt.Printf.
type Options struct {
	MassTol float64
	Epsilon float64
	MaxIter int
	Verbose bool
}

// DefaultOptions returns production-safe defaults.
func DefaultOptions() Options {
	return Options{
		MassTol: DefaultMassTol,
		Epsilon: DefaultEpsilon,
		MaxIter: DefaultMaxIter,
	}
}

// normalize fills zero values with defaults so a partially populated
// Options struct behaves sensibly.
func (o *Options) normalize() {
	if o.MassTol <= 0 {
		o.MassTol = DefaultMassTol
	}
	if o.Epsilon <= 0 {
		o.Epsilon = DefaultEpsilon
	}
	if o.MaxIter <= 0 {
		o.MaxIter = DefaultMaxIter
	}
}
