package metrics

import (
	"math"
	"testing"
	"time"

	"github.com/bi-tools/weekly-pulse/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// makeDataset builds an ordered dataset with one record per week.
func makeDataset(sales []float64, orders []int, products, customers []string) domain.Dataset {
	start := time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)
	ds := make(domain.Dataset, len(sales))
	for i := range sales {
		ds[i] = domain.WeeklyRecord{
			WeekStart:   start.AddDate(0, 0, 7*i),
			WeekEnd:     start.AddDate(0, 0, 7*i+6),
			TotalSales:  sales[i],
			TotalOrders: orders[i],
			TopProduct:  products[i],
			TopCustomer: customers[i],
		}
	}
	return ds
}

func sampleDataset() domain.Dataset {
	return makeDataset(
		[]float64{12500, 15800, 14200, 16950, 18100, 17500, 19000, 20050},
		[]int{45, 52, 48, 55, 60, 57, 62, 65},
		[]string{"Laptop", "Smartphone", "Tablet", "Monitor", "Printer", "Keyboard", "Mouse", "Headphones"},
		[]string{"Alpha Corp", "Beta Ltd", "Gamma LLC", "Delta Inc", "Epsilon Co", "Zeta Enterprises", "Eta Traders", "Theta Solutions"},
	)
}

func TestPctChange(t *testing.T) {
	t.Run("zero previous with positive current", func(t *testing.T) {
		assert.Equal(t, 100.0, PctChange(50, 0))
	})

	t.Run("zero previous with zero current", func(t *testing.T) {
		assert.Equal(t, 0.0, PctChange(0, 0))
	})

	t.Run("exact formula", func(t *testing.T) {
		cases := []struct {
			curr, prev float64
		}{
			{20050, 19000},
			{19000, 20050},
			{-5, 10},
			{10, -5},
			{1, 3},
		}
		for _, tc := range cases {
			expected := (tc.curr - tc.prev) / tc.prev * 100
			assert.InDelta(t, expected, PctChange(tc.curr, tc.prev), 1e-9)
		}
	})
}

func TestCompute_EmptyDataset(t *testing.T) {
	_, err := Compute(nil)

	var insufficientErr *domain.InsufficientDataError
	require.ErrorAs(t, err, &insufficientErr)
	assert.Equal(t, 1, insufficientErr.Needed)
	assert.Equal(t, 0, insufficientErr.Got)
}

func TestCompute_SingleRecord(t *testing.T) {
	// With a single record the previous week equals the current one, so
	// the change metrics collapse to zero through the regular formula.
	ds := makeDataset([]float64{1000}, []int{10}, []string{"Laptop"}, []string{"Alpha Corp"})

	m, err := Compute(ds)
	require.NoError(t, err)

	assert.Equal(t, m.CurrentWeek, m.PreviousWeek)
	assert.Zero(t, m.Changes.SalesChange)
	assert.Zero(t, m.Changes.OrdersChange)
	assert.Zero(t, m.AOV.Change)
	assert.Nil(t, m.Trend)
	assert.Zero(t, m.Historical.SalesGrowthRate)
}

func TestCompute_TrendPresence(t *testing.T) {
	sales := []float64{100, 200, 300}
	orders := []int{1, 2, 3}
	products := []string{"A", "A", "A"}
	customers := []string{"X", "X", "X"}

	t.Run("absent below three weeks", func(t *testing.T) {
		m, err := Compute(makeDataset(sales[:2], orders[:2], products[:2], customers[:2]))
		require.NoError(t, err)
		assert.Nil(t, m.Trend)
	})

	t.Run("present from three weeks", func(t *testing.T) {
		m, err := Compute(makeDataset(sales, orders, products, customers))
		require.NoError(t, err)
		require.NotNil(t, m.Trend)
		assert.Equal(t, domain.TrendIncreasing, m.Trend.SalesDirection)
		assert.InDelta(t, 100.0, m.Trend.SalesSlope, 1e-9)
		assert.InDelta(t, 200.0, m.Trend.LatestSalesSMA3, 1e-9)
	})
}

func TestCompute_GrowthRateRoundTrip(t *testing.T) {
	ds := sampleDataset()
	m, err := Compute(ds)
	require.NoError(t, err)

	rate := m.Historical.SalesGrowthRate
	periods := float64(len(ds) - 1)
	reconstructed := ds[0].TotalSales * math.Pow(1+rate/100, periods)

	assert.InDelta(t, ds[len(ds)-1].TotalSales, reconstructed, 1e-6)
}

func TestCompute_FrequencyTieBreak(t *testing.T) {
	// Laptop and Tablet both lead twice; Laptop appears first in the
	// sorted dataset and must win the tie.
	products := []string{"Tablet", "Laptop", "Laptop", "Tablet"}
	ds := makeDataset(
		[]float64{100, 100, 100, 100},
		[]int{1, 1, 1, 1},
		products,
		[]string{"X", "Y", "X", "Y"},
	)

	first, err := Compute(ds)
	require.NoError(t, err)
	second, err := Compute(ds)
	require.NoError(t, err)

	assert.Equal(t, "Tablet", first.Products.MostFrequent)
	assert.Equal(t, first.Products.MostFrequent, second.Products.MostFrequent, "tie-break must be deterministic")
	assert.Equal(t, "X", first.Customers.MostFrequent)
	assert.Equal(t, 2, first.Products.UniqueCount)
}

func TestCompute_EndToEnd(t *testing.T) {
	m, err := Compute(sampleDataset())
	require.NoError(t, err)

	assert.InDelta(t, 5.526, m.Changes.SalesChange, 0.001)
	assert.InDelta(t, 4.839, m.Changes.OrdersChange, 0.001)
	assert.InDelta(t, 1050.0, m.Changes.SalesAbsoluteChange, 1e-9)
	assert.Equal(t, 3, m.Changes.OrdersAbsoluteChange)

	assert.InDelta(t, 308.46, m.AOV.Current, 0.01)
	assert.InDelta(t, 306.45, m.AOV.Previous, 0.01)

	assert.InDelta(t, 134100.0, m.Historical.TotalSales, 1e-9)
	assert.Equal(t, 444, m.Historical.TotalOrders)
	assert.InDelta(t, 16762.5, m.Historical.AverageWeeklySales, 1e-9)
	assert.InDelta(t, 20050.0, m.Historical.MaxWeeklySales, 1e-9)
	assert.InDelta(t, 12500.0, m.Historical.MinWeeklySales, 1e-9)
	assert.Equal(t, 8, m.Historical.WeeksCount)
	assert.InDelta(t, 6.97, m.Historical.SalesGrowthRate, 0.01)

	require.NotNil(t, m.Trend)
	assert.Equal(t, domain.TrendIncreasing, m.Trend.SalesDirection)
	assert.Equal(t, domain.TrendIncreasing, m.Trend.OrdersDirection)
	assert.Greater(t, m.Trend.SalesSlope, 0.0)
	assert.Less(t, m.Trend.SalesVolatility, 0.2)
	assert.InDelta(t, (17500.0+19000.0+20050.0)/3, m.Trend.LatestSalesSMA3, 1e-9)

	assert.Equal(t, "Headphones", m.Products.Current)
	assert.Equal(t, "Laptop", m.Products.MostFrequent, "all counts tie, first appearance wins")
	assert.Equal(t, 8, m.Products.UniqueCount)
	assert.Equal(t, "Theta Solutions", m.Customers.Current)
}
