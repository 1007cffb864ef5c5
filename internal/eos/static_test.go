package eos

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/eoslab/internal/quantity"
)

func testStaticParams() StaticParams {
	return StaticParams{
		V0:  quantity.Exact(163.0),
		K0:  quantity.Exact(260.0),
		K0p: quantity.Exact(4.0),
	}
}

func TestBM3Reference(t *testing.T) {
	// V0=163 A^3, K0=260 GPa, K0'=4, V=0.75*V0.
	sp := testStaticParams()
	p, err := BM3{}.Pressure(quantity.Exact(0.75*163.0), sp)
	require.NoError(t, err)
	assert.InDelta(t, 133.17693645161643, p.Value, 1e-9)
	assert.Equal(t, 0.0, p.Sigma)
}

func TestVinetReference(t *testing.T) {
	sp := testStaticParams()
	p, err := Vinet{}.Pressure(quantity.Exact(0.75*163.0), sp)
	require.NoError(t, err)
	assert.InDelta(t, 130.38415520767427, p.Value, 1e-9)
}

func TestBM3ZeroPressureAtV0(t *testing.T) {
	sp := testStaticParams()
	for _, law := range []Static{BM3{}, Vinet{}} {
		p, err := law.Pressure(sp.V0, sp)
		require.NoError(t, err)
		assert.InDelta(t, 0.0, p.Value, 1e-12, law.Name())
	}
}

func TestBM3MonotoneUnderCompression(t *testing.T) {
	sp := testStaticParams()
	prev := -1.0
	for frac := 0.99; frac > 0.5; frac -= 0.01 {
		p, err := BM3{}.Pressure(quantity.Exact(frac*163.0), sp)
		require.NoError(t, err)
		if p.Value <= prev {
			t.Fatalf("pressure not increasing at v/v0=%.2f: %f <= %f", frac, p.Value, prev)
		}
		prev = p.Value
	}
}

func TestStaticUncertaintyPropagation(t *testing.T) {
	sp := StaticParams{
		V0:  quantity.New(163.0, 0.2),
		K0:  quantity.New(260.0, 3.0),
		K0p: quantity.New(4.0, 0.2),
	}
	p, err := BM3{}.Pressure(quantity.New(0.8*163.0, 0.1), sp)
	require.NoError(t, err)
	assert.Greater(t, p.Sigma, 0.0)

	// K0 enters linearly at fixed K0': sigma from K0 alone is P*sK0/K0.
	spK0 := testStaticParams()
	spK0.K0 = quantity.New(260.0, 3.0)
	pk, err := BM3{}.Pressure(quantity.Exact(0.8*163.0), spK0)
	require.NoError(t, err)
	assert.InEpsilon(t, pk.Value*3.0/260.0, pk.Sigma, 1e-4)
}

func TestStaticDomainErrors(t *testing.T) {
	sp := testStaticParams()

	_, err := BM3{}.Pressure(quantity.Exact(-1), sp)
	assert.ErrorIs(t, err, ErrDomain)

	_, err = BM3{}.Pressure(quantity.Exact(0), sp)
	assert.ErrorIs(t, err, ErrDomain)

	bad := sp
	bad.K0 = quantity.Exact(-10)
	_, err = BM3{}.Pressure(quantity.Exact(150), bad)
	assert.ErrorIs(t, err, ErrDomain)

	bad = sp
	bad.V0 = quantity.Exact(0)
	_, err = BM3{}.Pressure(quantity.Exact(150), bad)
	assert.ErrorIs(t, err, ErrDomain)

	// Unit-mismatch guard: a cm^3/mol-scale volume against an A^3 v0.
	_, err = BM3{}.Pressure(quantity.Exact(24000), sp)
	assert.ErrorIs(t, err, ErrDomain)
}

func TestNewStatic(t *testing.T) {
	for name, want := range map[string]string{"bm3": "bm3", "vinet": "vinet"} {
		law, err := NewStatic(name)
		require.NoError(t, err)
		assert.Equal(t, want, law.Name())
	}
	_, err := NewStatic("bm4")
	assert.ErrorIs(t, err, ErrUnknownFamily)
}
