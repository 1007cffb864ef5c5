// Package fit estimates equation-of-state parameters from P-V-T
// observations by weighted nonlinear least squares.
package fit

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/eoslab/internal/dataset"
	"github.com/san-kum/eoslab/internal/eos"
	"github.com/san-kum/eoslab/internal/params"
	"github.com/san-kum/eoslab/internal/quantity"
)

const (
	defaultMaxIterations = 200
	chi2RelTol           = 1e-10
	stepRelTol           = 1e-12
	gradNormTol          = 1e-8 // scaled by 1+chi2
	maxDamping           = 1e12
)

// Options configures one fit. Start holds every parameter: fixed ones
// keep their value throughout, free ones (named in Free) start from
// their Start value and are optimized.
type Options struct {
	StaticFamily  string
	ThermalFamily string
	Free          []string
	Start         *params.Set
	Weighted      bool // weight residuals by 1/sigma(P)^2 where available
	MaxIterations int
}

// Result is the outcome of a fit. It is never mutated after creation.
type Result struct {
	// Params carries fitted values for free parameters, with the
	// standard error as sigma; fixed parameters pass through unchanged.
	Params      *params.Set
	StdErrors   map[string]float64
	Residuals   []float64 // observed minus model pressure, GPa, input order
	Converged   bool
	Iterations  int
	Chi2        float64 // weighted sum of squared residuals
	ReducedChi2 float64
	RMSE        float64
}

// Fit runs Levenberg-Marquardt over the free parameters. It fails with
// a FitError if the initial guess yields non-finite residuals, the
// normal equations are singular, or the iteration budget runs out
// before convergence.
func Fit(obs []dataset.Observation, opts Options) (*Result, error) {
	if len(obs) == 0 {
		return nil, &FitError{Message: "no observations"}
	}
	if len(opts.Free) == 0 {
		return nil, &FitError{Message: "no free parameters"}
	}
	for _, o := range obs {
		if !o.HasPressure {
			return nil, &FitError{Message: "observation without pressure"}
		}
	}
	maxIter := opts.MaxIterations
	if maxIter <= 0 {
		maxIter = defaultMaxIterations
	}

	x := make([]float64, len(opts.Free))
	for i, name := range opts.Free {
		q, ok := opts.Start.Get(name)
		if !ok {
			return nil, &FitError{Message: "free parameter " + name + " not in start set"}
		}
		x[i] = q.Value
	}

	weights := make([]float64, len(obs))
	for i, o := range obs {
		weights[i] = 1.0
		if opts.Weighted && o.P.Sigma > 0 {
			weights[i] = 1.0 / (o.P.Sigma * o.P.Sigma)
		}
	}

	prob := &problem{obs: obs, opts: opts, weights: weights}

	r, err := prob.residuals(x)
	if err != nil {
		return nil, &FitError{Message: "initial guess rejected: " + err.Error()}
	}
	chi2 := sumSquares(r)
	if math.IsNaN(chi2) || math.IsInf(chi2, 0) {
		return nil, &FitError{Chi2: chi2, Message: "non-finite residuals at initial guess"}
	}

	m, k := len(obs), len(x)
	lambda := 1e-3
	converged := false
	anyAccepted := false
	iterations := 0

	for iterations < maxIter && !converged {
		iterations++

		J, err := prob.jacobian(x, r)
		if err != nil {
			return nil, &FitError{Iterations: iterations, Chi2: chi2, Message: err.Error()}
		}
		jtj, g := normalEquations(J, r)

		accepted := false
		for lambda <= maxDamping {
			delta, ok := solveDamped(jtj, g, lambda)
			if !ok {
				lambda *= 10
				continue
			}

			trial := make([]float64, k)
			stepNorm, xNorm := 0.0, 0.0
			for i := range x {
				trial[i] = x[i] - delta.AtVec(i)
				stepNorm += delta.AtVec(i) * delta.AtVec(i)
				xNorm += x[i] * x[i]
			}

			rTrial, err := prob.residuals(trial)
			if err == nil {
				chi2Trial := sumSquares(rTrial)
				if chi2Trial < chi2 && !math.IsNaN(chi2Trial) {
					if chi2-chi2Trial <= chi2RelTol*(chi2+1e-30) ||
						stepNorm <= stepRelTol*stepRelTol*(xNorm+1e-30) {
						converged = true
					}
					x, r, chi2 = trial, rTrial, chi2Trial
					lambda = math.Max(lambda*0.3, 1e-12)
					accepted = true
					anyAccepted = true
					break
				}
			}
			lambda *= 10
		}

		if !accepted {
			// Damping saturated without improvement. That is only a
			// minimum if descent was found earlier or the gradient is
			// already flat; otherwise the optimizer went nowhere.
			if anyAccepted || mat.Norm(g, 2) <= gradNormTol*(1+chi2) {
				converged = true
			} else {
				return nil, &FitError{Iterations: iterations, Chi2: chi2,
					Message: "no descent direction from initial guess"}
			}
		}
	}

	if !converged {
		return nil, &FitError{Iterations: iterations, Chi2: chi2,
			Message: "no convergence within iteration budget"}
	}

	J, err := prob.jacobian(x, r)
	if err != nil {
		return nil, &FitError{Iterations: iterations, Chi2: chi2, Message: err.Error()}
	}
	stderr, err := standardErrors(J, chi2, m, k)
	if err != nil {
		return nil, &FitError{Iterations: iterations, Chi2: chi2, Message: err.Error()}
	}

	fitted := opts.Start.Clone()
	stdErrors := make(map[string]float64, k)
	for i, name := range opts.Free {
		fitted.Put(name, quantity.New(x[i], stderr[i]))
		stdErrors[name] = stderr[i]
	}

	raw, err := prob.rawResiduals(x)
	if err != nil {
		return nil, &FitError{Iterations: iterations, Chi2: chi2, Message: err.Error()}
	}

	res := &Result{
		Params:     fitted,
		StdErrors:  stdErrors,
		Residuals:  raw,
		Converged:  true,
		Iterations: iterations,
		Chi2:       chi2,
		RMSE:       rmse(raw),
	}
	if m > k {
		res.ReducedChi2 = chi2 / float64(m-k)
	}
	return res, nil
}

type problem struct {
	obs     []dataset.Observation
	opts    Options
	weights []float64
}

func (p *problem) model(x []float64) (*eos.MieGruneisen, error) {
	ps := p.opts.Start.Clone()
	for i, name := range p.opts.Free {
		ps.Put(name, quantity.Exact(x[i]))
	}
	mp, err := eos.ParamsFrom(ps)
	if err != nil {
		return nil, err
	}
	return eos.New(p.opts.StaticFamily, p.opts.ThermalFamily, mp)
}

// residuals returns sqrt(w_i)*(P_obs - P_model) for each observation.
func (p *problem) residuals(x []float64) ([]float64, error) {
	model, err := p.model(x)
	if err != nil {
		return nil, err
	}
	r := make([]float64, len(p.obs))
	for i, o := range p.obs {
		pm, err := model.Pressure(quantity.Exact(o.V.Value), quantity.Exact(o.T.Value))
		if err != nil {
			return nil, err
		}
		r[i] = (o.P.Value - pm.Value) * math.Sqrt(p.weights[i])
	}
	return r, nil
}

// rawResiduals returns unweighted observed-minus-model pressures.
func (p *problem) rawResiduals(x []float64) ([]float64, error) {
	model, err := p.model(x)
	if err != nil {
		return nil, err
	}
	r := make([]float64, len(p.obs))
	for i, o := range p.obs {
		pm, err := model.Pressure(quantity.Exact(o.V.Value), quantity.Exact(o.T.Value))
		if err != nil {
			return nil, err
		}
		r[i] = o.P.Value - pm.Value
	}
	return r, nil
}

// jacobian estimates dr_i/dx_j by central differences.
func (p *problem) jacobian(x, r []float64) (*mat.Dense, error) {
	m, k := len(r), len(x)
	J := mat.NewDense(m, k, nil)
	for j := 0; j < k; j++ {
		h := 1e-6 * math.Max(math.Abs(x[j]), 1.0)
		xj := x[j]

		x[j] = xj + h
		hi, err := p.residuals(x)
		if err != nil {
			x[j] = xj
			return nil, err
		}
		x[j] = xj - h
		lo, err := p.residuals(x)
		x[j] = xj
		if err != nil {
			return nil, err
		}

		for i := 0; i < m; i++ {
			J.Set(i, j, (hi[i]-lo[i])/(2*h))
		}
	}
	return J, nil
}

// normalEquations builds JtJ and the gradient Jtr.
func normalEquations(J *mat.Dense, r []float64) (*mat.SymDense, *mat.VecDense) {
	_, k := J.Dims()
	var jtj mat.Dense
	jtj.Mul(J.T(), J)

	sym := mat.NewSymDense(k, nil)
	for i := 0; i < k; i++ {
		for j := i; j < k; j++ {
			sym.SetSym(i, j, jtj.At(i, j))
		}
	}

	g := mat.NewVecDense(k, nil)
	g.MulVec(J.T(), mat.NewVecDense(len(r), r))
	return sym, g
}

// solveDamped solves (JtJ + lambda*diag(JtJ)) delta = g.
func solveDamped(jtj *mat.SymDense, g *mat.VecDense, lambda float64) (*mat.VecDense, bool) {
	k, _ := jtj.Dims()
	damped := mat.NewSymDense(k, nil)
	for i := 0; i < k; i++ {
		for j := i; j < k; j++ {
			v := jtj.At(i, j)
			if i == j {
				v *= 1 + lambda
			}
			damped.SetSym(i, j, v)
		}
	}

	var chol mat.Cholesky
	if !chol.Factorize(damped) {
		return nil, false
	}
	delta := mat.NewVecDense(k, nil)
	if err := chol.SolveVecTo(delta, g); err != nil {
		return nil, false
	}
	return delta, true
}

// standardErrors derives per-parameter errors from the covariance
// estimate cov = inv(JtJ) * chi2/(m-k).
func standardErrors(J *mat.Dense, chi2 float64, m, k int) ([]float64, error) {
	jtj, _ := normalEquations(J, make([]float64, m))

	var chol mat.Cholesky
	if !chol.Factorize(jtj) {
		return nil, &FitError{Chi2: chi2, Message: "singular normal equations at solution"}
	}
	var cov mat.SymDense
	if err := chol.InverseTo(&cov); err != nil {
		return nil, &FitError{Chi2: chi2, Message: "covariance inversion failed: " + err.Error()}
	}

	scale := 1.0
	if m > k {
		scale = chi2 / float64(m-k)
	}
	stderr := make([]float64, k)
	for i := 0; i < k; i++ {
		stderr[i] = math.Sqrt(cov.At(i, i) * scale)
	}
	return stderr, nil
}
