package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/eoslab/internal/params"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "bm3", cfg.Static)
	assert.Equal(t, "constq", cfg.Thermal)
	assert.NoError(t, cfg.Validate())
	assert.Greater(t, cfg.Params.V0.Value, 0.0)
	assert.Greater(t, cfg.Params.Theta0.Value, 0.0)
}

func TestValidateRejectsBadFamilies(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Static = "bm4"
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Thermal = "mgd"
	assert.Error(t, cfg.Validate())
}

func TestValidateRejectsBadParams(t *testing.T) {
	cases := []func(*Config){
		func(c *Config) { c.Params.V0.Value = 0 },
		func(c *Config) { c.Params.K0.Value = -1 },
		func(c *Config) { c.Params.Theta0.Value = 0 },
		func(c *Config) { c.Params.N = 0 },
		func(c *Config) { c.Params.Z = 0 },
	}
	for i, mutate := range cases {
		cfg := DefaultConfig()
		mutate(cfg)
		assert.Error(t, cfg.Validate(), "case %d", i)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Static = "vinet"
	cfg.Params.K0.Value = 255.5
	cfg.Fit.Free = []string{params.V0, params.Gamma0}

	path := filepath.Join(t.TempDir(), "eoslab.yaml")
	require.NoError(t, Save(path, cfg))

	back, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "vinet", back.Static)
	assert.Equal(t, 255.5, back.Params.K0.Value)
	assert.Equal(t, []string{params.V0, params.Gamma0}, back.Fit.Free)
}

func TestLoadRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("static: bm9\n"), 0644))
	_, err := Load(path)
	assert.Error(t, err)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestParameterSetOrderAndValues(t *testing.T) {
	ps := DefaultConfig().ParameterSet()

	assert.Equal(t, []string{
		params.V0, params.K0, params.K0p,
		params.Gamma0, params.Q, params.Theta0,
		params.N, params.Z,
	}, ps.Names())

	n, ok := ps.Get(params.N)
	require.True(t, ok)
	assert.Equal(t, 5.0, n.Value)
	assert.Equal(t, 0.0, n.Sigma)

	k0, _ := ps.Get(params.K0)
	assert.Equal(t, 2.0, k0.Sigma)
}
