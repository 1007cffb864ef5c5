package fit

import (
	"errors"
	"fmt"
)

// ErrFit indicates the optimizer could not produce a solution.
var ErrFit = errors.New("fit: optimization failed")

// FitError carries the optimizer state at the point of failure.
type FitError struct {
	Iterations int
	Chi2       float64
	Message    string
}

func (e *FitError) Error() string {
	return fmt.Sprintf("fit: %s (iterations %d, chi2 %g)", e.Message, e.Iterations, e.Chi2)
}

func (e *FitError) Unwrap() error { return ErrFit }
