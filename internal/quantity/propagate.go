package quantity

import "math"

// fdStep picks a central-difference step for an argument value.
func fdStep(x float64) float64 {
	return 1e-6 * math.Max(math.Abs(x), 1.0)
}

// Propagate evaluates f at the nominal arguments and propagates the
// argument uncertainties through numerically estimated partial
// derivatives. Arguments with zero sigma contribute nothing and cost no
// extra evaluations, so exact inputs keep the call cheap.
func Propagate(f func(args []float64) float64, args []Quantity) Quantity {
	nominal := make([]float64, len(args))
	for i, a := range args {
		nominal[i] = a.Value
	}
	value := f(nominal)

	variance := 0.0
	for i, a := range args {
		if a.Sigma == 0 {
			continue
		}
		h := fdStep(a.Value)
		x := nominal[i]
		nominal[i] = x + h
		hi := f(nominal)
		nominal[i] = x - h
		lo := f(nominal)
		nominal[i] = x

		deriv := (hi - lo) / (2 * h)
		variance += deriv * deriv * a.Sigma * a.Sigma
	}

	return Quantity{Value: value, Sigma: math.Sqrt(variance)}
}
