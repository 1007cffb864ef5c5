package quantity

import "math"

// Quantity is a scalar measurement with a standard uncertainty.
// Operations return new values; a Quantity is never mutated in place.
// Propagation assumes inputs are independent (first-order, Gaussian).
type Quantity struct {
	Value float64
	Sigma float64
}

func New(value, sigma float64) Quantity {
	return Quantity{Value: value, Sigma: math.Abs(sigma)}
}

// Exact wraps a value with zero uncertainty.
func Exact(value float64) Quantity {
	return Quantity{Value: value}
}

func (q Quantity) IsFinite() bool {
	return !math.IsNaN(q.Value) && !math.IsInf(q.Value, 0) &&
		!math.IsNaN(q.Sigma) && !math.IsInf(q.Sigma, 0)
}

func (q Quantity) Add(other Quantity) Quantity {
	return Quantity{
		Value: q.Value + other.Value,
		Sigma: math.Hypot(q.Sigma, other.Sigma),
	}
}

func (q Quantity) Sub(other Quantity) Quantity {
	return Quantity{
		Value: q.Value - other.Value,
		Sigma: math.Hypot(q.Sigma, other.Sigma),
	}
}

func (q Quantity) Mul(other Quantity) Quantity {
	return Quantity{
		Value: q.Value * other.Value,
		Sigma: math.Hypot(other.Value*q.Sigma, q.Value*other.Sigma),
	}
}

func (q Quantity) Div(other Quantity) Quantity {
	v := q.Value / other.Value
	return Quantity{
		Value: v,
		Sigma: math.Hypot(q.Sigma/other.Value, v/other.Value*other.Sigma),
	}
}

// Scale multiplies by an exact constant.
func (q Quantity) Scale(k float64) Quantity {
	return Quantity{Value: k * q.Value, Sigma: math.Abs(k) * q.Sigma}
}

// Pow raises to an exact constant exponent.
func (q Quantity) Pow(p float64) Quantity {
	v := math.Pow(q.Value, p)
	return Quantity{
		Value: v,
		Sigma: math.Abs(p*math.Pow(q.Value, p-1)) * q.Sigma,
	}
}
