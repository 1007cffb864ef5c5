package quantity

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestArithmeticPropagation(t *testing.T) {
	a := New(10, 3)
	b := New(4, 4)

	sum := a.Add(b)
	assert.Equal(t, 14.0, sum.Value)
	assert.InDelta(t, 5.0, sum.Sigma, 1e-12) // hypot(3,4)

	diff := a.Sub(b)
	assert.Equal(t, 6.0, diff.Value)
	assert.InDelta(t, 5.0, diff.Sigma, 1e-12)

	prod := a.Mul(b)
	assert.Equal(t, 40.0, prod.Value)
	// sigma = hypot(b*sa, a*sb) = hypot(12, 40)
	assert.InDelta(t, math.Hypot(12, 40), prod.Sigma, 1e-12)

	quot := a.Div(b)
	assert.InDelta(t, 2.5, quot.Value, 1e-12)
	// sigma = hypot(sa/b, v/b*sb) = hypot(0.75, 2.5)
	assert.InDelta(t, math.Hypot(0.75, 2.5), quot.Sigma, 1e-12)
}

func TestScaleAndPow(t *testing.T) {
	q := New(2, 0.1)

	s := q.Scale(-3)
	assert.Equal(t, -6.0, s.Value)
	assert.InDelta(t, 0.3, s.Sigma, 1e-12)

	p := q.Pow(3)
	assert.InDelta(t, 8.0, p.Value, 1e-12)
	// sigma = |3*x^2|*sx = 12*0.1
	assert.InDelta(t, 1.2, p.Sigma, 1e-12)
}

func TestExactHasZeroSigma(t *testing.T) {
	q := Exact(7)
	assert.Equal(t, 7.0, q.Value)
	assert.Equal(t, 0.0, q.Sigma)
}

func TestSigmaStoredAbsolute(t *testing.T) {
	q := New(1, -0.5)
	assert.Equal(t, 0.5, q.Sigma)
}

func TestPropagateMatchesAnalytic(t *testing.T) {
	// f(x,y) = x^2*y, df/dx = 2xy, df/dy = x^2
	f := func(a []float64) float64 { return a[0] * a[0] * a[1] }
	x := New(3, 0.01)
	y := New(5, 0.02)

	got := Propagate(f, []Quantity{x, y})
	assert.InDelta(t, 45.0, got.Value, 1e-12)

	want := math.Hypot(2*3*5*0.01, 3*3*0.02)
	assert.InDelta(t, want, got.Sigma, 1e-6)
}

func TestPropagateSkipsExactArgs(t *testing.T) {
	calls := 0
	f := func(a []float64) float64 {
		calls++
		return a[0] + a[1]
	}
	got := Propagate(f, []Quantity{Exact(1), Exact(2)})
	assert.Equal(t, 3.0, got.Value)
	assert.Equal(t, 0.0, got.Sigma)
	assert.Equal(t, 1, calls)
}

func TestIsFinite(t *testing.T) {
	assert.True(t, New(1, 0.1).IsFinite())
	assert.False(t, Quantity{Value: math.NaN()}.IsFinite())
	assert.False(t, Quantity{Value: 1, Sigma: math.Inf(1)}.IsFinite())
}
