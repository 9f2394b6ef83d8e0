package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummarize(t *testing.T) {
	t.Run("basic statistics", func(t *testing.T) {
		s := summarize([]float64{2, 4, 4, 4, 5, 5, 7, 9})

		assert.Equal(t, 8, s.Count)
		assert.InDelta(t, 40.0, s.Sum, 1e-9)
		assert.InDelta(t, 5.0, s.Mean, 1e-9)
		assert.InDelta(t, 2.0, s.Min, 1e-9)
		assert.InDelta(t, 9.0, s.Max, 1e-9)
		// Sample standard deviation, n-1 denominator.
		assert.InDelta(t, 2.13809, s.StdDev, 1e-4)
		assert.InDelta(t, s.StdDev/s.Mean, s.CV, 1e-9)
	})

	t.Run("empty input", func(t *testing.T) {
		s := summarize(nil)
		assert.Equal(t, 0, s.Count)
		assert.Zero(t, s.Sum)
		assert.Zero(t, s.StdDev)
	})

	t.Run("single value has no deviation", func(t *testing.T) {
		s := summarize([]float64{42})
		assert.Equal(t, 1, s.Count)
		assert.InDelta(t, 42.0, s.Mean, 1e-9)
		assert.Zero(t, s.StdDev)
		assert.Zero(t, s.Slope)
	})

	t.Run("zero mean yields zero CV", func(t *testing.T) {
		s := summarize([]float64{-1, 1})
		assert.Zero(t, s.CV)
	})
}

func TestRegressionSlope(t *testing.T) {
	t.Run("perfect line", func(t *testing.T) {
		// y = 2x + 1
		slope := regressionSlope([]float64{1, 3, 5, 7, 9})
		assert.InDelta(t, 2.0, slope, 1e-9)
	})

	t.Run("flat series", func(t *testing.T) {
		slope := regressionSlope([]float64{5, 5, 5, 5})
		assert.InDelta(t, 0.0, slope, 1e-9)
	})

	t.Run("decreasing series", func(t *testing.T) {
		slope := regressionSlope([]float64{10, 8, 6, 4})
		assert.InDelta(t, -2.0, slope, 1e-9)
	})

	t.Run("fewer than two points", func(t *testing.T) {
		assert.Zero(t, regressionSlope([]float64{3}))
		assert.Zero(t, regressionSlope(nil))
	})
}

func TestMovingAverage(t *testing.T) {
	values := []float64{10, 20, 30, 40}

	assert.InDelta(t, 30.0, movingAverage(values, 3), 1e-9)
	assert.InDelta(t, 25.0, movingAverage(values, 4), 1e-9)
	assert.Zero(t, movingAverage(values[:2], 3), "undefined until enough periods exist")
	assert.Zero(t, movingAverage(values, 0))
}
