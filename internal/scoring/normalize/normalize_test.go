// internal/scoring/normalize/normalize_test.go
package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLinear(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		min      float64
		max      float64
		expected float64
	}{
		{name: "minimum of range", value: 0, min: 0, max: 100, expected: 1},
		{name: "maximum of range", value: 100, min: 0, max: 100, expected: 10},
		{name: "midpoint", value: 50, min: 0, max: 100, expected: 5.5},
		{name: "clips below range", value: -10, min: 0, max: 100, expected: 1},
		{name: "clips above range", value: 500, min: 0, max: 100, expected: 10},
		{name: "degenerate range", value: 7, min: 5, max: 5, expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, Linear(tt.value, tt.min, tt.max), 1e-9)
		})
	}
}

func TestZ(t *testing.T) {
	// Golden values from the difficulty algorithm scenarios.
	assert.InDelta(t, 1.09, Z(1000, 100000), 1e-9)
	assert.InDelta(t, 5.5, Z(4000, 8000), 1e-9)
	assert.InDelta(t, 10.0, Z(250000, 100000), 1e-9)
	assert.InDelta(t, 1.0, Z(0, 100000), 1e-9)
}

func TestInverted(t *testing.T) {
	assert.InDelta(t, 10.0, Inverted(1, 1, 25), 1e-9)
	assert.InDelta(t, 1.0, Inverted(25, 1, 25), 1e-9)
	assert.InDelta(t, 1.0, Inverted(40, 1, 25), 1e-9)
}

func TestInvertedZ(t *testing.T) {
	// 30 days since update against a 500 day threshold.
	assert.InDelta(t, 9.46, InvertedZ(30, 500), 1e-9)
	assert.InDelta(t, 10.0, InvertedZ(0, 500), 1e-9)
	assert.InDelta(t, 1.0, InvertedZ(500, 500), 1e-9)
	assert.InDelta(t, 1.0, InvertedZ(900, 500), 1e-9)
}

func TestAggregate(t *testing.T) {
	t.Run("weighted mean stays in range", func(t *testing.T) {
		got := Aggregate(map[string]Weighted{
			"a": {Score: 10, Weight: 4},
			"b": {Score: 1, Weight: 1},
		})
		assert.InDelta(t, 8.2, got, 1e-9)
		assert.GreaterOrEqual(t, got, MinScore)
		assert.LessOrEqual(t, got, MaxScore)
	})

	t.Run("single component passes through", func(t *testing.T) {
		got := Aggregate(map[string]Weighted{"only": {Score: 7.25, Weight: 3}})
		assert.InDelta(t, 7.25, got, 1e-9)
	})

	t.Run("zero total weight collapses to floor", func(t *testing.T) {
		assert.Equal(t, MinScore, Aggregate(map[string]Weighted{}))
	})
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 9.46, Round2(9.459999999))
	assert.Equal(t, 1.09, Round2(1.09))
	assert.Equal(t, 5.5, Round2(5.504))
}

func TestClip(t *testing.T) {
	assert.Equal(t, 1.0, Clip(0.3))
	assert.Equal(t, 10.0, Clip(11.2))
	assert.Equal(t, 4.2, Clip(4.2))
}
