package eos

import "math"

const (
	maxSolveIterations = 100
	pressureTolerance  = 1e-4 // GPa
)

// solveVolume finds v in [lo, hi] with f(v) = 0, where f is a pressure
// residual in GPa. Regula falsi with a bisection step every other
// iteration, so the bracket always shrinks.
func solveVolume(f func(float64) (float64, error), lo, hi float64) (float64, int, error) {
	if !(lo > 0) || !(hi > lo) {
		return 0, 0, &ConvergenceError{Message: "invalid bracket"}
	}

	flo, err := f(lo)
	if err != nil {
		return 0, 0, err
	}
	if math.Abs(flo) <= pressureTolerance {
		return lo, 0, nil
	}
	fhi, err := f(hi)
	if err != nil {
		return 0, 0, err
	}
	if math.Abs(fhi) <= pressureTolerance {
		return hi, 0, nil
	}
	if flo*fhi > 0 {
		return 0, 0, &ConvergenceError{
			Residual: math.Min(math.Abs(flo), math.Abs(fhi)),
			Message:  "bracket does not contain a sign change",
		}
	}

	var fv float64
	for i := 1; i <= maxSolveIterations; i++ {
		var v float64
		if i%2 == 0 {
			v = 0.5 * (lo + hi)
		} else {
			v = lo - flo*(hi-lo)/(fhi-flo)
			if !(v > lo && v < hi) {
				v = 0.5 * (lo + hi)
			}
		}

		fv, err = f(v)
		if err != nil {
			return 0, i, err
		}
		if math.Abs(fv) <= pressureTolerance {
			return v, i, nil
		}

		if (fv > 0) == (flo > 0) {
			lo, flo = v, fv
		} else {
			hi, fhi = v, fv
		}
	}

	return 0, maxSolveIterations, &ConvergenceError{
		Iterations: maxSolveIterations,
		Residual:   fv,
		Message:    "volume inversion exceeded iteration budget",
	}
}
