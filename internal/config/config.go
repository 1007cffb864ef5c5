// Package config holds the yaml run configuration: EOS family
// selection, parameter priors, and fit setup.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/eoslab/internal/params"
	"github.com/san-kum/eoslab/internal/quantity"
)

// Param is a prior value with its standard uncertainty.
type Param struct {
	Value float64 `yaml:"value"`
	Sigma float64 `yaml:"sigma"`
}

type ParamsConfig struct {
	V0     Param `yaml:"v0"`
	K0     Param `yaml:"k0"`
	K0p    Param `yaml:"k0p"`
	Gamma0 Param `yaml:"gamma0"`
	Q      Param `yaml:"q"`
	Theta0 Param `yaml:"theta0"`
	N      int   `yaml:"n"`
	Z      int   `yaml:"z"`
}

type FitConfig struct {
	Free          []string `yaml:"free"`
	Weighted      bool     `yaml:"weighted"`
	MaxIterations int      `yaml:"max_iterations"`
}

type SolveConfig struct {
	BracketLo float64 `yaml:"bracket_lo"` // as fraction of v0; 0 means default
	BracketHi float64 `yaml:"bracket_hi"`
}

type Config struct {
	Static  string       `yaml:"static"`  // bm3 | vinet
	Thermal string       `yaml:"thermal"` // constq
	Params  ParamsConfig `yaml:"params"`
	Fit     FitConfig    `yaml:"fit"`
	Solve   SolveConfig  `yaml:"solve"`
}

// DefaultConfig returns MgSiO3-bridgmanite-like literature priors.
func DefaultConfig() *Config {
	return &Config{
		Static:  "bm3",
		Thermal: "constq",
		Params: ParamsConfig{
			V0:     Param{Value: 162.373, Sigma: 0.1},
			K0:     Param{Value: 260.0, Sigma: 2.0},
			K0p:    Param{Value: 4.0, Sigma: 0.1},
			Gamma0: Param{Value: 1.45, Sigma: 0.05},
			Q:      Param{Value: 0.8, Sigma: 0.2},
			Theta0: Param{Value: 880.0, Sigma: 10.0},
			N:      5,
			Z:      4,
		},
		Fit: FitConfig{
			Free:          []string{params.V0, params.K0, params.K0p},
			Weighted:      true,
			MaxIterations: 200,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, cfg.Validate()
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	switch c.Static {
	case "bm3", "vinet":
	default:
		return fmt.Errorf("config: unknown static family %q", c.Static)
	}
	switch c.Thermal {
	case "constq":
	default:
		return fmt.Errorf("config: unknown thermal family %q", c.Thermal)
	}
	if c.Params.V0.Value <= 0 {
		return fmt.Errorf("config: v0 must be positive, got %g", c.Params.V0.Value)
	}
	if c.Params.K0.Value <= 0 {
		return fmt.Errorf("config: k0 must be positive, got %g", c.Params.K0.Value)
	}
	if c.Params.Theta0.Value <= 0 {
		return fmt.Errorf("config: theta0 must be positive, got %g", c.Params.Theta0.Value)
	}
	if c.Params.N < 1 {
		return fmt.Errorf("config: n must be at least 1, got %d", c.Params.N)
	}
	if c.Params.Z < 1 {
		return fmt.Errorf("config: z must be at least 1, got %d", c.Params.Z)
	}
	return nil
}

// ParameterSet builds the ordered parameter set consumed by the eos and
// fit packages.
func (c *Config) ParameterSet() *params.Set {
	ps := params.NewSet()
	ps.Put(params.V0, quantity.New(c.Params.V0.Value, c.Params.V0.Sigma))
	ps.Put(params.K0, quantity.New(c.Params.K0.Value, c.Params.K0.Sigma))
	ps.Put(params.K0p, quantity.New(c.Params.K0p.Value, c.Params.K0p.Sigma))
	ps.Put(params.Gamma0, quantity.New(c.Params.Gamma0.Value, c.Params.Gamma0.Sigma))
	ps.Put(params.Q, quantity.New(c.Params.Q.Value, c.Params.Q.Sigma))
	ps.Put(params.Theta0, quantity.New(c.Params.Theta0.Value, c.Params.Theta0.Sigma))
	ps.Put(params.N, quantity.Exact(float64(c.Params.N)))
	ps.Put(params.Z, quantity.Exact(float64(c.Params.Z)))
	return ps
}
