package eos

import (
	"math"

	"github.com/san-kum/eoslab/internal/params"
	"github.com/san-kum/eoslab/internal/quantity"
)

// Params bundles the static and thermal parameter groups. The two
// groups share v0.
type Params struct {
	Static  StaticParams
	Thermal ThermalParams
}

// StaticPrefix and ThermalPrefix mark group membership when the two
// groups are assembled separately and merged into one flat set via
// Set.WithPrefix and Set.Merge. Extraction tries the prefixed name
// first and falls back to the bare one, so a plain flat set still
// works unchanged.
const (
	StaticPrefix  = "st_"
	ThermalPrefix = "th_"
)

func lookup(ps *params.Set, prefix, name string) (quantity.Quantity, bool) {
	if q, ok := ps.Get(prefix + name); ok {
		return q, true
	}
	return ps.Get(name)
}

// ParamsFrom extracts both groups from one flat parameter set.
func ParamsFrom(ps *params.Set) (Params, error) {
	var p Params
	var err error
	if p.Static, err = StaticParamsFrom(ps); err != nil {
		return p, err
	}
	if p.Thermal, err = ThermalParamsFrom(ps); err != nil {
		return p, err
	}
	return p, nil
}

// MieGruneisen composes a static compression law with a thermal
// correction: P(V,T) = Pst(V) + Pth(V,T).
type MieGruneisen struct {
	static  Static
	thermal Thermal
	p       Params
}

// New builds a model from family names ("bm3"/"vinet", "constq").
func New(staticFamily, thermalFamily string, p Params) (*MieGruneisen, error) {
	st, err := NewStatic(staticFamily)
	if err != nil {
		return nil, err
	}
	th, err := NewThermal(thermalFamily)
	if err != nil {
		return nil, err
	}
	return Compose(st, th, p), nil
}

// Compose wires explicit implementations, for callers that carry their
// own Static or Thermal.
func Compose(st Static, th Thermal, p Params) *MieGruneisen {
	return &MieGruneisen{static: st, thermal: th, p: p}
}

func (m *MieGruneisen) StaticName() string  { return m.static.Name() }
func (m *MieGruneisen) ThermalName() string { return m.thermal.Name() }
func (m *MieGruneisen) Params() Params      { return m.p }

// Pressure returns total pressure in GPa at unit-cell volume v (A^3)
// and temperature t (K).
func (m *MieGruneisen) Pressure(v, t quantity.Quantity) (quantity.Quantity, error) {
	pst, err := m.static.Pressure(v, m.p.Static)
	if err != nil {
		return quantity.Quantity{}, err
	}
	pth, err := m.thermal.Pressure(v, t, m.p.Thermal)
	if err != nil {
		return quantity.Quantity{}, err
	}
	return pst.Add(pth), nil
}

// pressureAt is the uncertainty-free forward evaluation used by the
// solver and by sensitivity estimates.
func (m *MieGruneisen) pressureAt(v, t float64) (float64, error) {
	p, err := m.Pressure(quantity.Exact(v), quantity.Exact(t))
	if err != nil {
		return 0, err
	}
	return p.Value, nil
}

// Default volume search interval for inversion, as fractions of v0.
// The upper bound sits above v0 because thermal expansion pushes the
// zero-pressure volume past the reference value.
const (
	defaultBracketLo = 0.2
	defaultBracketHi = 1.5
)

// Volume solves P(V,t) = p for V over the default bracket
// (0.2*v0, 1.5*v0).
func (m *MieGruneisen) Volume(p, t quantity.Quantity) (quantity.Quantity, error) {
	v0 := m.p.Static.V0.Value
	return m.VolumeIn(p, t, defaultBracketLo*v0, defaultBracketHi*v0)
}

// VolumeIn solves P(V,t) = p for V within an explicit bracket (lo, hi].
// The pressure residual tolerance is 1e-4 GPa; failure to converge
// within 100 iterations, or a bracket without a sign change, returns a
// ConvergenceError.
func (m *MieGruneisen) VolumeIn(p, t quantity.Quantity, lo, hi float64) (quantity.Quantity, error) {
	if t.Value < 0 {
		return quantity.Quantity{}, &DomainError{Param: "t", Value: t.Value, Reason: "must be non-negative"}
	}
	f := func(v float64) (float64, error) {
		pv, err := m.pressureAt(v, t.Value)
		if err != nil {
			return 0, err
		}
		return pv - p.Value, nil
	}
	v, _, err := solveVolume(f, lo, hi)
	if err != nil {
		return quantity.Quantity{}, err
	}
	sigma, err := m.volumeSigma(v, t, p.Sigma)
	if err != nil {
		return quantity.Quantity{}, err
	}
	return quantity.New(v, sigma), nil
}

// volumeSigma propagates pressure and temperature uncertainty through
// the implicit function: sigma_V^2 = (sigma_P^2 + (dP/dT*sigma_T)^2) /
// (dP/dV)^2, with the partials estimated by central differences at the
// solution.
func (m *MieGruneisen) volumeSigma(v float64, t quantity.Quantity, sigmaP float64) (float64, error) {
	if sigmaP == 0 && t.Sigma == 0 {
		return 0, nil
	}
	hv := 1e-6 * v
	pHi, err := m.pressureAt(v+hv, t.Value)
	if err != nil {
		return 0, err
	}
	pLo, err := m.pressureAt(v-hv, t.Value)
	if err != nil {
		return 0, err
	}
	dPdV := (pHi - pLo) / (2 * hv)
	if dPdV == 0 {
		return 0, &ConvergenceError{Message: "flat pressure-volume slope at solution"}
	}

	variance := sigmaP * sigmaP
	if t.Sigma > 0 {
		ht := 1e-6 * math.Max(t.Value, 1.0)
		tHi, err := m.pressureAt(v, t.Value+ht)
		if err != nil {
			return 0, err
		}
		tLo, err := m.pressureAt(v, math.Max(t.Value-ht, 0))
		if err != nil {
			return 0, err
		}
		dPdT := (tHi - tLo) / (t.Value + ht - math.Max(t.Value-ht, 0))
		variance += dPdT * dPdT * t.Sigma * t.Sigma
	}
	return math.Sqrt(variance) / math.Abs(dPdV), nil
}
