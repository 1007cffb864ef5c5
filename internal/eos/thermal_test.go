package eos

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/eoslab/internal/quantity"
)

func testThermalParams() ThermalParams {
	return ThermalParams{
		V0:     quantity.Exact(162.373),
		Gamma0: quantity.Exact(1.45),
		Q:      quantity.Exact(0.8),
		Theta0: quantity.Exact(880.0),
		N:      5,
		Z:      4,
	}
}

func TestDebyeIntegralSpotValues(t *testing.T) {
	cases := []struct {
		x, want float64
	}{
		{0.1, 0.00032099998016240397},
		{1.0, 0.2248051880259384},
		{880.0 / 300.0, 2.4577609618656315},
		{5.0, 4.89989215833064},
	}
	for _, c := range cases {
		got := debyeIntegral(c.x)
		assert.InEpsilon(t, c.want, got, 1e-6, "x=%g", c.x)
	}
	assert.Equal(t, 0.0, debyeIntegral(0))
}

func TestDebyeEnergyReference(t *testing.T) {
	// theta0=880 K, n=5 atoms per formula unit.
	assert.InEpsilon(t, 210686.26350407442, debyeEnergy(880, 2000, 5), 1e-5)
	assert.InEpsilon(t, 10930.080059480802, debyeEnergy(880, 300, 5), 1e-5)
}

func TestDebyeIntegralLargeX(t *testing.T) {
	// For large x the integral saturates at pi^4/15; the upper limit
	// must not stall the node-doubling loop.
	full := math.Pow(math.Pi, 4) / 15
	assert.InEpsilon(t, full, debyeIntegral(880), 1e-8)
	assert.InEpsilon(t, full, debyeIntegral(1e6), 1e-8)
}

func TestDebyeEnergyLowTemperatureCubicLaw(t *testing.T) {
	// Deep in the quantum regime E = 3*n*R*pi^4/5 * T^4/theta^3.
	want := 3 * 5 * GasConstant * math.Pow(math.Pi, 4) / 5 *
		math.Pow(10, 4) / math.Pow(880, 3)
	assert.InEpsilon(t, want, debyeEnergy(880, 10, 5), 1e-6)
}

func TestDebyeEnergyZeroTemperature(t *testing.T) {
	assert.Equal(t, 0.0, debyeEnergy(880, 0, 5))
}

func TestDulongPetitLimit(t *testing.T) {
	// As theta/T -> 0 the Debye energy approaches the classical 3nRT.
	e := debyeEnergy(0.01, 10000, 1)
	classical := 3 * GasConstant * 10000.0
	assert.InEpsilon(t, classical, e, 1e-5)
}

func TestThermalPressureZeroAtReference(t *testing.T) {
	tp := testThermalParams()
	p, err := ConstQ{}.Pressure(quantity.Exact(150.0), quantity.Exact(RefTemperature), tp)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, p.Value, 1e-10)
}

func TestThermalPressureReference(t *testing.T) {
	// gamma0=1.45, q=0.8, theta0=880 K, n=5, z=4, V=0.9*V0, T=2000 K.
	tp := testThermalParams()
	v := 0.9 * 162.373
	p, err := ConstQ{}.Pressure(quantity.Exact(v), quantity.Exact(2000), tp)
	require.NoError(t, err)
	assert.InEpsilon(t, 12.10082572408955, p.Value, 1e-5)
}

func TestThermalPressureNegativeBelowReference(t *testing.T) {
	tp := testThermalParams()
	p, err := ConstQ{}.Pressure(quantity.Exact(150.0), quantity.Exact(100), tp)
	require.NoError(t, err)
	assert.Less(t, p.Value, 0.0)
}

func TestGruneisenVolumeScaling(t *testing.T) {
	// At fixed T the thermal pressure scales as gamma(V)/V with
	// gamma(V) = gamma0*(V/V0)^q.
	tp := testThermalParams()
	v1, v2 := 150.0, 160.0
	p1, err := ConstQ{}.Pressure(quantity.Exact(v1), quantity.Exact(2000), tp)
	require.NoError(t, err)
	p2, err := ConstQ{}.Pressure(quantity.Exact(v2), quantity.Exact(2000), tp)
	require.NoError(t, err)

	g1 := 1.45 * math.Pow(v1/162.373, 0.8)
	g2 := 1.45 * math.Pow(v2/162.373, 0.8)
	assert.InEpsilon(t, (g1/v1)/(g2/v2), p1.Value/p2.Value, 1e-9)
}

func TestThermalUncertaintyPropagation(t *testing.T) {
	tp := testThermalParams()
	tp.Gamma0 = quantity.New(1.45, 0.05)
	tp.Theta0 = quantity.New(880, 20)

	p, err := ConstQ{}.Pressure(quantity.Exact(150), quantity.New(2000, 50), tp)
	require.NoError(t, err)
	assert.Greater(t, p.Sigma, 0.0)

	// gamma0 enters linearly: its lone contribution is P*sg/g.
	tpg := testThermalParams()
	tpg.Gamma0 = quantity.New(1.45, 0.05)
	pg, err := ConstQ{}.Pressure(quantity.Exact(150), quantity.Exact(2000), tpg)
	require.NoError(t, err)
	assert.InEpsilon(t, math.Abs(pg.Value)*0.05/1.45, pg.Sigma, 1e-3)
}

func TestThermalDomainErrors(t *testing.T) {
	tp := testThermalParams()

	_, err := ConstQ{}.Pressure(quantity.Exact(150), quantity.Exact(-1), tp)
	assert.ErrorIs(t, err, ErrDomain)

	bad := tp
	bad.Theta0 = quantity.Exact(0)
	_, err = ConstQ{}.Pressure(quantity.Exact(150), quantity.Exact(300), bad)
	assert.ErrorIs(t, err, ErrDomain)

	bad = tp
	bad.N = 0
	_, err = ConstQ{}.Pressure(quantity.Exact(150), quantity.Exact(300), bad)
	assert.ErrorIs(t, err, ErrDomain)

	bad = tp
	bad.Z = 0
	_, err = ConstQ{}.Pressure(quantity.Exact(150), quantity.Exact(300), bad)
	assert.ErrorIs(t, err, ErrDomain)
}

func TestNewThermal(t *testing.T) {
	th, err := NewThermal("constq")
	require.NoError(t, err)
	assert.Equal(t, "constq", th.Name())

	_, err = NewThermal("speziale")
	assert.ErrorIs(t, err, ErrUnknownFamily)
}
