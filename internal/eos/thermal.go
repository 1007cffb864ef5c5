package eos

import (
	"fmt"
	"math"

	"github.com/san-kum/eoslab/internal/params"
	"github.com/san-kum/eoslab/internal/quantity"
)

// RefTemperature is the reference isotherm in kelvin. Thermal pressure
// is measured relative to the internal energy at this temperature.
const RefTemperature = 300.0

// jPerMolToGPaA3 converts gamma/V[A^3] * dE[J/mol of formula units] * z
// to GPa. The volume per mole of formula units is (V/z)*N_A*1e-30 m^3,
// so 1 J/mol over that volume is z*1e30/(V*N_A) Pa = z*1e21/(V*N_A) GPa.
const jPerMolToGPaA3 = 1e21 / avogadro

// ThermalParams are the Debye-Gruneisen thermal parameters. N and Z are
// exact counts (atoms per formula unit, formula units per cell) and
// carry no uncertainty.
type ThermalParams struct {
	V0     quantity.Quantity
	Gamma0 quantity.Quantity
	Q      quantity.Quantity
	Theta0 quantity.Quantity
	N      float64
	Z      float64
}

// ThermalParamsFrom extracts the thermal group from a parameter set.
func ThermalParamsFrom(ps *params.Set) (ThermalParams, error) {
	var tp ThermalParams
	var ok bool
	if tp.V0, ok = lookup(ps, ThermalPrefix, params.V0); !ok {
		return tp, &DomainError{Param: params.V0, Reason: "missing"}
	}
	if tp.Gamma0, ok = lookup(ps, ThermalPrefix, params.Gamma0); !ok {
		return tp, &DomainError{Param: params.Gamma0, Reason: "missing"}
	}
	if tp.Q, ok = lookup(ps, ThermalPrefix, params.Q); !ok {
		return tp, &DomainError{Param: params.Q, Reason: "missing"}
	}
	if tp.Theta0, ok = lookup(ps, ThermalPrefix, params.Theta0); !ok {
		return tp, &DomainError{Param: params.Theta0, Reason: "missing"}
	}
	n, ok := lookup(ps, ThermalPrefix, params.N)
	if !ok {
		return tp, &DomainError{Param: params.N, Reason: "missing"}
	}
	z, ok := lookup(ps, ThermalPrefix, params.Z)
	if !ok {
		return tp, &DomainError{Param: params.Z, Reason: "missing"}
	}
	tp.N, tp.Z = n.Value, z.Value
	return tp, tp.validate()
}

func (tp ThermalParams) validate() error {
	if tp.V0.Value <= 0 {
		return &DomainError{Param: params.V0, Value: tp.V0.Value, Reason: "must be positive"}
	}
	if tp.Theta0.Value <= 0 {
		return &DomainError{Param: params.Theta0, Value: tp.Theta0.Value, Reason: "must be positive"}
	}
	if tp.N < 1 {
		return &DomainError{Param: params.N, Value: tp.N, Reason: "must be at least 1"}
	}
	if tp.Z < 1 {
		return &DomainError{Param: params.Z, Value: tp.Z, Reason: "must be at least 1"}
	}
	return nil
}

// Thermal evaluates the thermal pressure correction at a volume and
// temperature.
type Thermal interface {
	// Pressure returns the thermal pressure in GPa relative to the
	// 300 K reference isotherm.
	Pressure(v, t quantity.Quantity, tp ThermalParams) (quantity.Quantity, error)
	Name() string
}

// NewThermal selects a thermal model by family name.
func NewThermal(family string) (Thermal, error) {
	switch family {
	case "constq":
		return ConstQ{}, nil
	default:
		return nil, fmt.Errorf("%w: thermal %q", ErrUnknownFamily, family)
	}
}

// ConstQ is the constant-q Debye-Gruneisen thermal model: the Debye
// temperature stays at theta0 and gamma(V) = gamma0*(V/V0)^q.
type ConstQ struct{}

func (ConstQ) Name() string { return "constq" }

// constQPressure is the scalar kernel: gamma(V)/V times the thermal
// internal energy gained since the reference temperature, converted to
// GPa.
func constQPressure(v, t, v0, gamma0, q, theta0, n, z float64) float64 {
	gamma := gamma0 * math.Pow(v/v0, q)
	dE := debyeEnergy(theta0, t, n) - debyeEnergy(theta0, RefTemperature, n)
	return gamma / v * dE * z * jPerMolToGPaA3
}

func (ConstQ) Pressure(v, t quantity.Quantity, tp ThermalParams) (quantity.Quantity, error) {
	if err := tp.validate(); err != nil {
		return quantity.Quantity{}, err
	}
	if err := checkVolume(v.Value, tp.V0.Value); err != nil {
		return quantity.Quantity{}, err
	}
	if t.Value < 0 {
		return quantity.Quantity{}, &DomainError{Param: "t", Value: t.Value, Reason: "must be non-negative"}
	}
	n, z := tp.N, tp.Z
	p := quantity.Propagate(func(a []float64) float64 {
		return constQPressure(a[0], a[1], a[2], a[3], a[4], a[5], n, z)
	}, []quantity.Quantity{v, t, tp.V0, tp.Gamma0, tp.Q, tp.Theta0})
	return p, nil
}
