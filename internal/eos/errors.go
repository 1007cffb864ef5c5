package eos

import (
	"errors"
	"fmt"
)

// Domain errors for equation-of-state evaluation.
var (
	// ErrDomain indicates a nonphysical input value.
	ErrDomain = errors.New("eos: nonphysical input")

	// ErrConvergence indicates a numeric solver exceeded its budget or
	// was given an invalid bracket.
	ErrConvergence = errors.New("eos: solver did not converge")

	// ErrUnknownFamily indicates an unrecognized EOS family name.
	ErrUnknownFamily = errors.New("eos: unknown EOS family")
)

// DomainError reports a rejected input with the offending value.
type DomainError struct {
	Param  string
	Value  float64
	Reason string
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("eos: nonphysical %s=%g (%s)", e.Param, e.Value, e.Reason)
}

func (e *DomainError) Unwrap() error { return ErrDomain }

// ConvergenceError carries the solver state at the point of failure.
type ConvergenceError struct {
	Iterations int
	Residual   float64
	Message    string
}

func (e *ConvergenceError) Error() string {
	return fmt.Sprintf("eos: %s after %d iterations (residual %g)",
		e.Message, e.Iterations, e.Residual)
}

func (e *ConvergenceError) Unwrap() error { return ErrConvergence }
