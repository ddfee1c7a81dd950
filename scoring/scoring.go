// Package scoring converts raw performance values into points. It is pure:
// callers resolve the sport and persist the result.
package scoring

import (
	"errors"
	"math"
)

var (
	ErrNegativeValue = errors.New("performance value must not be negative")
	ErrNegativeRate  = errors.New("points per unit must not be negative")
)

// ComputePoints returns value multiplied by the sport's points-per-unit rate,
// rounded to two decimal places. The result is what gets frozen on the
// performance row; it is never recomputed from a later rate.
func ComputePoints(pointsPerUnit, value float64) (float64, error) {
	if value < 0 {
		return 0, ErrNegativeValue
	}
	if pointsPerUnit < 0 {
		return 0, ErrNegativeRate
	}
	return Round2(pointsPerUnit * value), nil
}

// Round2 rounds half away from zero to two decimal places, keeping displayed
// totals free of floating-point drift.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
