// internal/scoring/normalize/normalize.go

// Package normalize provides the shared numeric mapping primitives for
// keyword scoring. Every component score produced by the service passes
// through these functions, so all outputs live on the same 1-10 scale.
package normalize

import "math"

const (
	// MinScore is the floor of the normalized scale.
	MinScore = 1.0
	// MaxScore is the ceiling of the normalized scale.
	MaxScore = 10.0
)

// Linear maps value from [min, max] onto [1, 10], clipping out-of-range
// inputs. A degenerate range collapses to the minimum score.
func Linear(value, min, max float64) float64 {
	if min == max {
		return MinScore
	}
	if value < min {
		value = min
	}
	if value > max {
		value = max
	}
	return MinScore + (MaxScore-MinScore)*(value-min)/(max-min)
}

// Z maps a value bounded below by zero onto [1, 10] against a maximum
// threshold. This is the linear mapping the original algorithm calls a
// z-score; it is not a statistical standard score.
func Z(value, maxThreshold float64) float64 {
	return Linear(value, 0, maxThreshold)
}

// Inverted maps value from [min, max] onto [10, 1]: larger raw values
// yield smaller scores.
func Inverted(value, min, max float64) float64 {
	if min == max {
		return MinScore
	}
	if value < min {
		value = min
	}
	if value > max {
		value = max
	}
	return MinScore + (MaxScore-MinScore)*(max-value)/(max-min)
}

// InvertedZ is Inverted over [0, maxThreshold].
func InvertedZ(value, maxThreshold float64) float64 {
	return Inverted(value, 0, maxThreshold)
}

// Weighted pairs a component score with its aggregation weight.
type Weighted struct {
	Score  float64
	Weight float64
}

// Aggregate combines component scores by weighted mean. Inputs in
// [1, 10] keep the result in [1, 10]. A zero total weight collapses to
// the minimum score.
func Aggregate(components map[string]Weighted) float64 {
	var sum, totalWeight float64
	for _, c := range components {
		sum += c.Score * c.Weight
		totalWeight += c.Weight
	}
	if totalWeight == 0 {
		return MinScore
	}
	return sum / totalWeight
}

// Clip clamps a score into [1, 10].
func Clip(value float64) float64 {
	return math.Max(MinScore, math.Min(MaxScore, value))
}

// Round2 rounds to two decimal places. Applied only at reporting
// boundaries, never between intermediate computations.
func Round2(value float64) float64 {
	return math.Round(value*100) / 100
}
