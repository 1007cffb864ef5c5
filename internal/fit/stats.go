package fit

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

func sumSquares(r []float64) float64 {
	return floats.Dot(r, r)
}

func rmse(r []float64) float64 {
	if len(r) == 0 {
		return 0
	}
	return math.Sqrt(floats.Dot(r, r) / float64(len(r)))
}
