package fit

import (
	"math/rand"

	"github.com/san-kum/eoslab/internal/dataset"
	"github.com/san-kum/eoslab/internal/eos"
	"github.com/san-kum/eoslab/internal/quantity"
)

// Synthesize generates observations from a model on a (volume,
// temperature) grid with seeded Gaussian pressure noise of the given
// sigma. Used to validate that fitting recovers known parameters.
func Synthesize(model *eos.MieGruneisen, vols, temps []float64, sigmaP float64, seed int64) ([]dataset.Observation, error) {
	rng := rand.New(rand.NewSource(seed))
	obs := make([]dataset.Observation, 0, len(vols)*len(temps))
	for _, t := range temps {
		for _, v := range vols {
			p, err := model.Pressure(quantity.Exact(v), quantity.Exact(t))
			if err != nil {
				return nil, err
			}
			obs = append(obs, dataset.Observation{
				T:           quantity.Exact(t),
				V:           quantity.Exact(v),
				P:           quantity.New(p.Value+rng.NormFloat64()*sigmaP, sigmaP),
				HasPressure: true,
			})
		}
	}
	return obs, nil
}
