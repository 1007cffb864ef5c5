package eos

import (
	"context"
	"sync"

	"github.com/san-kum/eoslab/internal/quantity"
)

// PT is one pressure-temperature condition for batch inversion.
type PT struct {
	P quantity.Quantity
	T quantity.Quantity
}

// Volumes inverts each (P, T) condition independently across
// goroutines. Elements share no state, so order of completion does not
// matter; results keep input order. The first error encountered is
// returned.
func (m *MieGruneisen) Volumes(ctx context.Context, conditions []PT) ([]quantity.Quantity, error) {
	results := make([]quantity.Quantity, len(conditions))
	errs := make([]error, len(conditions))

	var wg sync.WaitGroup
	for i := range conditions {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			if err := ctx.Err(); err != nil {
				errs[idx] = err
				return
			}
			c := conditions[idx]
			results[idx], errs[idx] = m.Volume(c.P, c.T)
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}
