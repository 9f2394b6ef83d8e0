package metrics

import (
	"math"
	"sort"

	"github.com/bi-tools/weekly-pulse/pkg/models/domain"
)

const (
	// Trend analysis needs at least this many weeks; below it the
	// snapshot carries no trend block at all.
	minTrendPeriods = 3

	smaWindow = 3
)

// Compute derives a full metrics snapshot from an ordered dataset. It
// fails with a domain.InsufficientDataError on an empty dataset; every
// other minimum degrades to an absent field instead.
func Compute(ds domain.Dataset) (domain.MetricsSnapshot, error) {
	if len(ds) == 0 {
		return domain.MetricsSnapshot{}, &domain.InsufficientDataError{Op: "metrics.Compute", Needed: 1, Got: 0}
	}

	curr := ds.Current()
	prev := ds.Previous()

	sales := make([]float64, len(ds))
	orders := make([]float64, len(ds))
	for i, r := range ds {
		sales[i] = r.TotalSales
		orders[i] = float64(r.TotalOrders)
	}
	salesStats := summarize(sales)
	orderStats := summarize(orders)

	snapshot := domain.MetricsSnapshot{
		CurrentWeek:  periodMetrics(curr),
		PreviousWeek: periodMetrics(prev),
		Changes: domain.ChangeMetrics{
			SalesChange:          PctChange(curr.TotalSales, prev.TotalSales),
			OrdersChange:         PctChange(float64(curr.TotalOrders), float64(prev.TotalOrders)),
			SalesAbsoluteChange:  curr.TotalSales - prev.TotalSales,
			OrdersAbsoluteChange: curr.TotalOrders - prev.TotalOrders,
		},
		AOV: aovMetrics(curr, prev),
		Historical: domain.HistoricalMetrics{
			TotalSales:          salesStats.Sum,
			TotalOrders:         int(math.Round(orderStats.Sum)),
			AverageWeeklySales:  salesStats.Mean,
			AverageWeeklyOrders: orderStats.Mean,
			MaxWeeklySales:      salesStats.Max,
			MinWeeklySales:      salesStats.Min,
			MaxWeeklyOrders:     orderStats.Max,
			MinWeeklyOrders:     orderStats.Min,
			SalesStdDev:         salesStats.StdDev,
			OrdersStdDev:        orderStats.StdDev,
			SalesGrowthRate:     growthRate(sales),
			OrdersGrowthRate:    growthRate(orders),
			WeeksCount:          len(ds),
		},
		Products:  analyzeFrequency(ds, func(r domain.WeeklyRecord) string { return r.TopProduct }),
		Customers: analyzeFrequency(ds, func(r domain.WeeklyRecord) string { return r.TopCustomer }),
	}

	if len(ds) >= minTrendPeriods {
		snapshot.Trend = &domain.TrendMetrics{
			SalesSlope:       salesStats.Slope,
			OrdersSlope:      orderStats.Slope,
			SalesDirection:   direction(salesStats.Slope),
			OrdersDirection:  direction(orderStats.Slope),
			SalesVolatility:  salesStats.CV,
			OrdersVolatility: orderStats.CV,
			LatestSalesSMA3:  movingAverage(sales, smaWindow),
			LatestOrdersSMA3: movingAverage(orders, smaWindow),
		}
	}

	return snapshot, nil
}

// PctChange returns the percentage change from prev to curr. A zero
// previous value yields 100 when the current one is positive, else 0.
func PctChange(curr, prev float64) float64 {
	if prev == 0 {
		if curr > 0 {
			return 100.0
		}
		return 0.0
	}
	return (curr - prev) / prev * 100
}

func periodMetrics(r domain.WeeklyRecord) domain.PeriodMetrics {
	return domain.PeriodMetrics{
		WeekStart:   r.WeekStart,
		WeekEnd:     r.WeekEnd,
		Sales:       r.TotalSales,
		Orders:      r.TotalOrders,
		TopProduct:  r.TopProduct,
		TopCustomer: r.TopCustomer,
	}
}

func aovMetrics(curr, prev domain.WeeklyRecord) domain.AOVMetrics {
	currAOV := 0.0
	if curr.TotalOrders > 0 {
		currAOV = curr.TotalSales / float64(curr.TotalOrders)
	}
	prevAOV := 0.0
	if prev.TotalOrders > 0 {
		prevAOV = prev.TotalSales / float64(prev.TotalOrders)
	}
	return domain.AOVMetrics{
		Current:  currAOV,
		Previous: prevAOV,
		Change:   PctChange(currAOV, prevAOV),
	}
}

// growthRate returns the compound per-period growth rate in percent
// implied by the first and last values.
func growthRate(values []float64) float64 {
	periods := len(values) - 1
	if periods < 1 {
		return 0
	}
	first := values[0]
	last := values[len(values)-1]
	if first <= 0 {
		return 0
	}
	return (math.Pow(last/first, 1/float64(periods)) - 1) * 100
}

// analyzeFrequency counts label occurrences across the dataset. The most
// frequent label breaks ties by first appearance in the sorted dataset,
// implemented as a stable sort on (-count, firstIndex).
func analyzeFrequency(ds domain.Dataset, label func(domain.WeeklyRecord) string) domain.FrequencyAnalysis {
	counts := make(map[string]int, len(ds))
	firstIndex := make(map[string]int, len(ds))
	order := make([]string, 0, len(ds))

	for i, r := range ds {
		l := label(r)
		if _, seen := counts[l]; !seen {
			firstIndex[l] = i
			order = append(order, l)
		}
		counts[l]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		if counts[order[i]] != counts[order[j]] {
			return counts[order[i]] > counts[order[j]]
		}
		return firstIndex[order[i]] < firstIndex[order[j]]
	})

	return domain.FrequencyAnalysis{
		Frequency:    counts,
		MostFrequent: order[0],
		Current:      label(ds.Current()),
		UniqueCount:  len(counts),
	}
}

func direction(slope float64) domain.TrendDirection {
	switch {
	case slope > 0:
		return domain.TrendIncreasing
	case slope < 0:
		return domain.TrendDecreasing
	default:
		return domain.TrendStable
	}
}
