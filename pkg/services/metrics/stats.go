package metrics

import "math"

// numericSummary holds dataset-wide statistics for one metric. Sales and
// orders both go through summarize so rounding behavior stays identical.
type numericSummary struct {
	Count  int
	Sum    float64
	Mean   float64
	Min    float64
	Max    float64
	StdDev float64 // sample standard deviation
	Slope  float64 // least-squares slope against the zero-based index
	CV     float64 // coefficient of variation, StdDev / Mean
}

func summarize(values []float64) numericSummary {
	s := numericSummary{Count: len(values)}
	if s.Count == 0 {
		return s
	}

	s.Min = values[0]
	s.Max = values[0]
	for _, v := range values {
		s.Sum += v
		if v < s.Min {
			s.Min = v
		}
		if v > s.Max {
			s.Max = v
		}
	}
	s.Mean = s.Sum / float64(s.Count)

	if s.Count > 1 {
		var sq float64
		for _, v := range values {
			d := v - s.Mean
			sq += d * d
		}
		s.StdDev = math.Sqrt(sq / float64(s.Count-1))
	}

	if s.Mean != 0 {
		s.CV = s.StdDev / s.Mean
	}

	s.Slope = regressionSlope(values)
	return s
}

// regressionSlope fits y = a + b*x over the zero-based index and returns b.
func regressionSlope(values []float64) float64 {
	n := float64(len(values))
	if n < 2 {
		return 0
	}

	var sumX, sumY, sumXY, sumXX float64
	for i, y := range values {
		x := float64(i)
		sumX += x
		sumY += y
		sumXY += x * y
		sumXX += x * x
	}

	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		return 0
	}
	return (n*sumXY - sumX*sumY) / denom
}

// movingAverage returns the mean of the last `window` values, or 0 until
// enough periods exist.
func movingAverage(values []float64, window int) float64 {
	if len(values) < window || window <= 0 {
		return 0
	}
	var sum float64
	for _, v := range values[len(values)-window:] {
		sum += v
	}
	return sum / float64(window)
}
