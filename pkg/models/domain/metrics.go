package domain

import "time"

type TrendDirection string

const (
	TrendIncreasing TrendDirection = "increasing"
	TrendDecreasing TrendDirection = "decreasing"
	TrendStable     TrendDirection = "stable"
)

// PeriodMetrics holds the core fields of a single observed week.
type PeriodMetrics struct {
	WeekStart   time.Time
	WeekEnd     time.Time
	Sales       float64
	Orders      int
	TopProduct  string
	TopCustomer string
}

// ChangeMetrics captures week-over-week deltas.
type ChangeMetrics struct {
	SalesChange          float64 // percent
	OrdersChange         float64 // percent
	SalesAbsoluteChange  float64
	OrdersAbsoluteChange int
}

// AOVMetrics captures the average order value for the latest two periods.
type AOVMetrics struct {
	Current  float64
	Previous float64
	Change   float64 // percent
}

// HistoricalMetrics aggregates the full dataset.
type HistoricalMetrics struct {
	TotalSales          float64
	TotalOrders         int
	AverageWeeklySales  float64
	AverageWeeklyOrders float64
	MaxWeeklySales      float64
	MinWeeklySales      float64
	MaxWeeklyOrders     float64
	MinWeeklyOrders     float64
	SalesStdDev         float64
	OrdersStdDev        float64
	SalesGrowthRate     float64 // compound, percent per period
	OrdersGrowthRate    float64
	WeeksCount          int
}

// TrendMetrics carries regression and volatility indicators. It is only
// present on a snapshot when the dataset holds at least three weeks.
type TrendMetrics struct {
	SalesSlope        float64
	OrdersSlope       float64
	SalesDirection    TrendDirection
	OrdersDirection   TrendDirection
	SalesVolatility  float64 // coefficient of variation
	OrdersVolatility float64
	LatestSalesSMA3  float64
	LatestOrdersSMA3 float64
}

// FrequencyAnalysis summarizes how often each label led a week.
type FrequencyAnalysis struct {
	Frequency    map[string]int
	MostFrequent string // ties broken by first appearance in the sorted dataset
	Current      string // latest week's label, may differ from MostFrequent
	UniqueCount  int
}

// MetricsSnapshot is the complete set of derived metrics for one run,
// rebuilt fresh per run and treated as an immutable value.
type MetricsSnapshot struct {
	CurrentWeek  PeriodMetrics
	PreviousWeek PeriodMetrics
	Changes      ChangeMetrics
	AOV          AOVMetrics
	Historical   HistoricalMetrics
	Trend        *TrendMetrics // nil when fewer than three weeks exist
	Products     FrequencyAnalysis
	Customers    FrequencyAnalysis
}
