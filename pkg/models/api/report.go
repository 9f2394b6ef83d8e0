package api

import (
	"time"

	"github.com/bi-tools/weekly-pulse/pkg/models/domain"
)

// WeeklyRow is one raw weekly row as submitted by API clients. All fields
// are textual; empty strings mark missing values.
type WeeklyRow struct {
	WeekStart   string `json:"week_start"`
	WeekEnd     string `json:"week_end"`
	TotalSales  string `json:"total_sales"`
	TotalOrders string `json:"total_orders"`
	TopProduct  string `json:"top_product"`
	TopCustomer string `json:"top_customer"`
}

type PeriodMetrics struct {
	WeekStart   string  `json:"week_start"`
	WeekEnd     string  `json:"week_end"`
	Sales       float64 `json:"sales"`
	Orders      int     `json:"orders"`
	TopProduct  string  `json:"top_product"`
	TopCustomer string  `json:"top_customer"`
}

type ChangeMetrics struct {
	SalesChange          float64 `json:"sales_change"`
	OrdersChange         float64 `json:"orders_change"`
	SalesAbsoluteChange  float64 `json:"sales_absolute_change"`
	OrdersAbsoluteChange int     `json:"orders_absolute_change"`
}

type AOVMetrics struct {
	Current  float64 `json:"current"`
	Previous float64 `json:"previous"`
	Change   float64 `json:"change"`
}

type HistoricalMetrics struct {
	TotalSales          float64 `json:"total_sales"`
	TotalOrders         int     `json:"total_orders"`
	AverageWeeklySales  float64 `json:"average_weekly_sales"`
	AverageWeeklyOrders float64 `json:"average_weekly_orders"`
	MaxWeeklySales      float64 `json:"max_weekly_sales"`
	MinWeeklySales      float64 `json:"min_weekly_sales"`
	MaxWeeklyOrders     float64 `json:"max_weekly_orders"`
	MinWeeklyOrders     float64 `json:"min_weekly_orders"`
	SalesStdDev         float64 `json:"sales_std_dev"`
	OrdersStdDev        float64 `json:"orders_std_dev"`
	SalesGrowthRate     float64 `json:"sales_growth_rate"`
	OrdersGrowthRate    float64 `json:"orders_growth_rate"`
	WeeksCount          int     `json:"weeks_count"`
}

type TrendMetrics struct {
	SalesSlope       float64 `json:"sales_trend_slope"`
	OrdersSlope      float64 `json:"orders_trend_slope"`
	SalesDirection   string  `json:"sales_trend_direction"`
	OrdersDirection  string  `json:"orders_trend_direction"`
	SalesVolatility  float64 `json:"sales_volatility"`
	OrdersVolatility float64 `json:"orders_volatility"`
	LatestSalesSMA3  float64 `json:"latest_ma3_sales"`
	LatestOrdersSMA3 float64 `json:"latest_ma3_orders"`
}

type FrequencyAnalysis struct {
	Frequency    map[string]int `json:"frequency"`
	MostFrequent string         `json:"most_frequent"`
	Current      string         `json:"current"`
	UniqueCount  int            `json:"unique_count"`
}

type MetricsSnapshot struct {
	CurrentWeek  PeriodMetrics     `json:"current_week"`
	PreviousWeek PeriodMetrics     `json:"previous_week"`
	Changes      ChangeMetrics     `json:"changes"`
	AOV          AOVMetrics        `json:"aov"`
	Historical   HistoricalMetrics `json:"historical"`
	Trend        *TrendMetrics     `json:"trend,omitempty"`
	Products     FrequencyAnalysis `json:"products"`
	Customers    FrequencyAnalysis `json:"customers"`
}

type PerformanceEntry struct {
	Metric  string `json:"metric"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

type TrendInsight struct {
	Type       string `json:"type"`
	Direction  string `json:"direction"`
	Message    string `json:"message"`
	Volatility string `json:"volatility"`
}

type Commentary struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Action  string `json:"action"`
}

type Recommendation struct {
	Priority       string `json:"priority"`
	Category       string `json:"category"`
	Title          string `json:"title"`
	Description    string `json:"description"`
	ExpectedImpact string `json:"expected_impact"`
	Timeline       string `json:"timeline"`
}

type Risk struct {
	Level       string `json:"level"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Mitigation  string `json:"mitigation"`
}

type Opportunity struct {
	Potential   string `json:"potential"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Action      string `json:"action"`
}

type InsightSet struct {
	ExecutiveSummary string             `json:"executive_summary"`
	Performance      []PerformanceEntry `json:"performance"`
	Trends           []TrendInsight     `json:"trends"`
	Products         []Commentary       `json:"products"`
	Customers        []Commentary       `json:"customers"`
	Recommendations  []Recommendation   `json:"recommendations"`
	Risks            []Risk             `json:"risks"`
	Opportunities    []Opportunity      `json:"opportunities"`
}

type IngestSummary struct {
	RecordCount         int      `json:"record_count"`
	DiscardedDuplicates int      `json:"discarded_duplicates"`
	InterpolatedValues  int      `json:"interpolated_values"`
	MalformedRows       []string `json:"malformed_rows,omitempty"`
	Warnings            []string `json:"warnings,omitempty"`
}

type Report struct {
	GeneratedAt time.Time       `json:"generated_at"`
	Snapshot    MetricsSnapshot `json:"snapshot"`
	Insights    InsightSet      `json:"insights"`
	Ingest      IngestSummary   `json:"ingest"`
}

type ReportRun struct {
	ID           int64     `json:"id"`
	GeneratedAt  time.Time `json:"generated_at"`
	PeriodStart  string    `json:"period_start"`
	PeriodEnd    string    `json:"period_end"`
	WeeksCount   int       `json:"weeks_count"`
	TotalSales   float64   `json:"total_sales"`
	SalesChange  float64   `json:"sales_change"`
	OrdersChange float64   `json:"orders_change"`
	SalesStatus  string    `json:"sales_status"`
}

const dateLayout = "2006-01-02"

// FromSnapshot maps a domain snapshot to its API representation.
func FromSnapshot(m domain.MetricsSnapshot) MetricsSnapshot {
	out := MetricsSnapshot{
		CurrentWeek:  fromPeriod(m.CurrentWeek),
		PreviousWeek: fromPeriod(m.PreviousWeek),
		Changes: ChangeMetrics{
			SalesChange:          m.Changes.SalesChange,
			OrdersChange:         m.Changes.OrdersChange,
			SalesAbsoluteChange:  m.Changes.SalesAbsoluteChange,
			OrdersAbsoluteChange: m.Changes.OrdersAbsoluteChange,
		},
		AOV: AOVMetrics(m.AOV),
		Historical: HistoricalMetrics{
			TotalSales:          m.Historical.TotalSales,
			TotalOrders:         m.Historical.TotalOrders,
			AverageWeeklySales:  m.Historical.AverageWeeklySales,
			AverageWeeklyOrders: m.Historical.AverageWeeklyOrders,
			MaxWeeklySales:      m.Historical.MaxWeeklySales,
			MinWeeklySales:      m.Historical.MinWeeklySales,
			MaxWeeklyOrders:     m.Historical.MaxWeeklyOrders,
			MinWeeklyOrders:     m.Historical.MinWeeklyOrders,
			SalesStdDev:         m.Historical.SalesStdDev,
			OrdersStdDev:        m.Historical.OrdersStdDev,
			SalesGrowthRate:     m.Historical.SalesGrowthRate,
			OrdersGrowthRate:    m.Historical.OrdersGrowthRate,
			WeeksCount:          m.Historical.WeeksCount,
		},
		Products:  fromFrequency(m.Products),
		Customers: fromFrequency(m.Customers),
	}
	if m.Trend != nil {
		out.Trend = &TrendMetrics{
			SalesSlope:       m.Trend.SalesSlope,
			OrdersSlope:      m.Trend.OrdersSlope,
			SalesDirection:   string(m.Trend.SalesDirection),
			OrdersDirection:  string(m.Trend.OrdersDirection),
			SalesVolatility:  m.Trend.SalesVolatility,
			OrdersVolatility: m.Trend.OrdersVolatility,
			LatestSalesSMA3:  m.Trend.LatestSalesSMA3,
			LatestOrdersSMA3: m.Trend.LatestOrdersSMA3,
		}
	}
	return out
}

// FromInsights maps a domain insight set to its API representation.
func FromInsights(set domain.InsightSet) InsightSet {
	out := InsightSet{ExecutiveSummary: set.ExecutiveSummary}
	for _, p := range set.Performance {
		out.Performance = append(out.Performance, PerformanceEntry{
			Metric: p.Metric, Status: string(p.Status), Message: p.Message,
		})
	}
	for _, t := range set.Trends {
		out.Trends = append(out.Trends, TrendInsight{
			Type: t.Type, Direction: string(t.Direction), Message: t.Message, Volatility: t.Volatility,
		})
	}
	for _, c := range set.Products {
		out.Products = append(out.Products, Commentary(c))
	}
	for _, c := range set.Customers {
		out.Customers = append(out.Customers, Commentary(c))
	}
	for _, r := range set.Recommendations {
		out.Recommendations = append(out.Recommendations, Recommendation{
			Priority: string(r.Priority), Category: r.Category, Title: r.Title,
			Description: r.Description, ExpectedImpact: string(r.ExpectedImpact), Timeline: r.Timeline,
		})
	}
	for _, r := range set.Risks {
		out.Risks = append(out.Risks, Risk{
			Level: string(r.Level), Category: r.Category, Description: r.Description, Mitigation: r.Mitigation,
		})
	}
	for _, o := range set.Opportunities {
		out.Opportunities = append(out.Opportunities, Opportunity{
			Potential: string(o.Potential), Category: o.Category, Description: o.Description, Action: o.Action,
		})
	}
	return out
}

func fromPeriod(p domain.PeriodMetrics) PeriodMetrics {
	return PeriodMetrics{
		WeekStart:   p.WeekStart.Format(dateLayout),
		WeekEnd:     p.WeekEnd.Format(dateLayout),
		Sales:       p.Sales,
		Orders:      p.Orders,
		TopProduct:  p.TopProduct,
		TopCustomer: p.TopCustomer,
	}
}

func fromFrequency(f domain.FrequencyAnalysis) FrequencyAnalysis {
	return FrequencyAnalysis{
		Frequency:    f.Frequency,
		MostFrequent: f.MostFrequent,
		Current:      f.Current,
		UniqueCount:  f.UniqueCount,
	}
}
