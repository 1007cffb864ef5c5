package eos

import (
	"fmt"
	"math"

	"github.com/san-kum/eoslab/internal/params"
	"github.com/san-kum/eoslab/internal/quantity"
)

// volumeScaleLimit bounds v/v0. Compression laws are only meaningful
// near the reference volume; a ratio beyond this almost always means
// mismatched units (e.g. cm^3/mol against A^3).
const volumeScaleLimit = 10.0

// StaticParams are the reference-isotherm compression parameters.
type StaticParams struct {
	V0  quantity.Quantity // zero-pressure volume, A^3
	K0  quantity.Quantity // bulk modulus, GPa
	K0p quantity.Quantity // dK0/dP
}

// StaticParamsFrom extracts the static group from a parameter set.
func StaticParamsFrom(ps *params.Set) (StaticParams, error) {
	var sp StaticParams
	var ok bool
	if sp.V0, ok = lookup(ps, StaticPrefix, params.V0); !ok {
		return sp, &DomainError{Param: params.V0, Reason: "missing"}
	}
	if sp.K0, ok = lookup(ps, StaticPrefix, params.K0); !ok {
		return sp, &DomainError{Param: params.K0, Reason: "missing"}
	}
	if sp.K0p, ok = lookup(ps, StaticPrefix, params.K0p); !ok {
		return sp, &DomainError{Param: params.K0p, Reason: "missing"}
	}
	return sp, sp.validate()
}

func (sp StaticParams) validate() error {
	if sp.V0.Value <= 0 {
		return &DomainError{Param: params.V0, Value: sp.V0.Value, Reason: "must be positive"}
	}
	if sp.K0.Value <= 0 {
		return &DomainError{Param: params.K0, Value: sp.K0.Value, Reason: "must be positive"}
	}
	return nil
}

func checkVolume(v, v0 float64) error {
	if v <= 0 {
		return &DomainError{Param: "v", Value: v, Reason: "must be positive"}
	}
	if v > volumeScaleLimit*v0 {
		return &DomainError{Param: "v", Value: v, Reason: "out of scale with v0, check units"}
	}
	return nil
}

// Static evaluates reference-isotherm pressure at a volume.
type Static interface {
	// Pressure returns the static pressure in GPa for a unit-cell
	// volume in A^3, with uncertainty propagated from v and the
	// parameters.
	Pressure(v quantity.Quantity, sp StaticParams) (quantity.Quantity, error)
	Name() string
}

// NewStatic selects a static compression law by family name.
func NewStatic(family string) (Static, error) {
	switch family {
	case "bm3":
		return BM3{}, nil
	case "vinet":
		return Vinet{}, nil
	default:
		return nil, fmt.Errorf("%w: static %q", ErrUnknownFamily, family)
	}
}

// BM3 is the third-order Birch-Murnaghan equation of state.
type BM3 struct{}

func (BM3) Name() string { return "bm3" }

// bm3Pressure is the scalar kernel. eta is the compression ratio V0/V.
func bm3Pressure(v, v0, k0, k0p float64) float64 {
	eta := v0 / v
	e23 := math.Pow(eta, 2.0/3.0)
	e53 := math.Pow(eta, 5.0/3.0)
	e73 := e53 * e23
	return 1.5 * k0 * (e73 - e53) * (1.0 + 0.75*(k0p-4.0)*(e23-1.0))
}

func (BM3) Pressure(v quantity.Quantity, sp StaticParams) (quantity.Quantity, error) {
	if err := sp.validate(); err != nil {
		return quantity.Quantity{}, err
	}
	if err := checkVolume(v.Value, sp.V0.Value); err != nil {
		return quantity.Quantity{}, err
	}
	p := quantity.Propagate(func(a []float64) float64 {
		return bm3Pressure(a[0], a[1], a[2], a[3])
	}, []quantity.Quantity{v, sp.V0, sp.K0, sp.K0p})
	return p, nil
}

// Vinet is the Vinet (universal) equation of state.
type Vinet struct{}

func (Vinet) Name() string { return "vinet" }

func vinetPressure(v, v0, k0, k0p float64) float64 {
	x := math.Cbrt(v / v0)
	return 3.0 * k0 * (1.0 - x) / (x * x) * math.Exp(1.5*(k0p-1.0)*(1.0-x))
}

func (Vinet) Pressure(v quantity.Quantity, sp StaticParams) (quantity.Quantity, error) {
	if err := sp.validate(); err != nil {
		return quantity.Quantity{}, err
	}
	if err := checkVolume(v.Value, sp.V0.Value); err != nil {
		return quantity.Quantity{}, err
	}
	p := quantity.Propagate(func(a []float64) float64 {
		return vinetPressure(a[0], a[1], a[2], a[3])
	}, []quantity.Quantity{v, sp.V0, sp.K0, sp.K0p})
	return p, nil
}
