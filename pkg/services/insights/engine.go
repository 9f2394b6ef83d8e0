package insights

import (
	"fmt"
	"math"

	"github.com/bi-tools/weekly-pulse/pkg/models/domain"
)

// Engine turns a metrics snapshot into the narrative insight layer. It is
// a pure function of its settings and the snapshot; no external fetches.
type Engine struct {
	settings Settings
}

func NewEngine(settings Settings) *Engine {
	return &Engine{settings: settings}
}

// Generate applies the threshold rules to a snapshot. Every list in the
// returned set keeps its declared rule order.
func (e *Engine) Generate(m domain.MetricsSnapshot) domain.InsightSet {
	return domain.InsightSet{
		ExecutiveSummary: e.executiveSummary(m),
		Performance:      e.performanceEntries(m),
		Trends:           e.trendInsights(m),
		Products:         e.productInsights(m),
		Customers:        e.customerInsights(m),
		Recommendations:  e.recommendations(m),
		Risks:            e.risks(m),
		Opportunities:    e.opportunities(m),
	}
}

// StatusFor classifies a percentage-change value.
func (e *Engine) StatusFor(change float64) domain.Status {
	switch {
	case change >= e.settings.ExcellentChange:
		return domain.StatusExcellent
	case change >= e.settings.GoodChange:
		return domain.StatusGood
	case change >= 0:
		return domain.StatusFair
	case change >= e.settings.ConcerningChange:
		return domain.StatusConcerning
	default:
		return domain.StatusCritical
	}
}

// QualifierFor grades the magnitude of a change regardless of sign.
func (e *Engine) QualifierFor(change float64) string {
	abs := math.Abs(change)
	switch {
	case abs >= e.settings.DramaticChange:
		return "dramatically"
	case abs >= e.settings.SignificantChange:
		return "significantly"
	case abs >= e.settings.ModerateChange:
		return "moderately"
	default:
		return "slightly"
	}
}

func (e *Engine) volatilityLabel(cv float64) string {
	switch {
	case cv > e.settings.HighVolatility:
		return "high"
	case cv > e.settings.ModerateVolatility:
		return "moderate"
	default:
		return "low"
	}
}

func (e *Engine) executiveSummary(m domain.MetricsSnapshot) string {
	salesDir := "increased"
	if m.Changes.SalesChange < 0 {
		salesDir = "decreased"
	}
	ordersDir := "increased"
	if m.Changes.OrdersChange < 0 {
		ordersDir = "decreased"
	}
	aovDir := "increase"
	if m.AOV.Change < 0 {
		aovDir = "decrease"
	}

	return fmt.Sprintf(
		"Week ending %s: sales %s %s by %.1f%% to %s%.0f, while orders %s %s by %.1f%% to %d units. "+
			"The average order value is %s%.0f, a %.1f%% %s from the previous week.",
		m.CurrentWeek.WeekEnd.Format("02 Jan 2006"),
		salesDir, e.QualifierFor(m.Changes.SalesChange), math.Abs(m.Changes.SalesChange),
		e.settings.CurrencySymbol, m.CurrentWeek.Sales,
		ordersDir, e.QualifierFor(m.Changes.OrdersChange), math.Abs(m.Changes.OrdersChange),
		m.CurrentWeek.Orders,
		e.settings.CurrencySymbol, m.AOV.Current,
		math.Abs(m.AOV.Change), aovDir,
	)
}

func (e *Engine) performanceEntries(m domain.MetricsSnapshot) []domain.PerformanceEntry {
	entries := []domain.PerformanceEntry{
		{
			Metric:  "Sales Performance",
			Status:  e.StatusFor(m.Changes.SalesChange),
			Message: e.salesMessage(m),
		},
		{
			Metric:  "Order Volume",
			Status:  e.StatusFor(m.Changes.OrdersChange),
			Message: e.ordersMessage(m),
		},
		{
			Metric:  "Average Order Value",
			Status:  e.StatusFor(m.AOV.Change),
			Message: e.aovMessage(m),
		},
	}

	growth := m.Historical.SalesGrowthRate
	momentum := "declining performance"
	if growth > 5 {
		momentum = "strong momentum"
	} else if growth > 0 {
		momentum = "steady progress"
	}
	entries = append(entries, domain.PerformanceEntry{
		Metric: "Overall Growth Trend",
		Status: e.StatusFor(growth),
		Message: fmt.Sprintf("Overall growth rate is %.1f%% per week over the analyzed period, indicating %s.",
			growth, momentum),
	})

	return entries
}

func (e *Engine) salesMessage(m domain.MetricsSnapshot) string {
	change := m.Changes.SalesChange
	qualifier := e.QualifierFor(change)
	if change >= 0 {
		return fmt.Sprintf("Sales performance is strong with %s growth of %.1f%% to %s%.0f.",
			qualifier, change, e.settings.CurrencySymbol, m.CurrentWeek.Sales)
	}
	return fmt.Sprintf("Sales declined %s by %.1f%% to %s%.0f, requiring attention.",
		qualifier, math.Abs(change), e.settings.CurrencySymbol, m.CurrentWeek.Sales)
}

func (e *Engine) ordersMessage(m domain.MetricsSnapshot) string {
	change := m.Changes.OrdersChange
	qualifier := e.QualifierFor(change)
	if change >= 0 {
		return fmt.Sprintf("Order volume shows %s improvement of %.1f%% to %d orders.",
			qualifier, change, m.CurrentWeek.Orders)
	}
	return fmt.Sprintf("Order volume decreased %s by %.1f%% to %d orders.",
		qualifier, math.Abs(change), m.CurrentWeek.Orders)
}

func (e *Engine) aovMessage(m domain.MetricsSnapshot) string {
	change := m.AOV.Change
	qualifier := e.QualifierFor(change)
	if change >= 0 {
		return fmt.Sprintf("Average order value increased %s by %.1f%% to %s%.0f.",
			qualifier, change, e.settings.CurrencySymbol, m.AOV.Current)
	}
	return fmt.Sprintf("Average order value declined %s by %.1f%% to %s%.0f.",
		qualifier, math.Abs(change), e.settings.CurrencySymbol, m.AOV.Current)
}

func (e *Engine) trendInsights(m domain.MetricsSnapshot) []domain.TrendInsight {
	if m.Trend == nil {
		return nil
	}
	t := m.Trend

	out := []domain.TrendInsight{
		{
			Type:       "Sales Trend",
			Direction:  t.SalesDirection,
			Message:    trendMessage("Sales", t.SalesDirection),
			Volatility: e.volatilityLabel(t.SalesVolatility),
		},
		{
			Type:       "Orders Trend",
			Direction:  t.OrdersDirection,
			Message:    trendMessage("Orders", t.OrdersDirection),
			Volatility: e.volatilityLabel(t.OrdersVolatility),
		},
	}

	if t.SalesVolatility > e.settings.VolatilityAlert || t.OrdersVolatility > e.settings.VolatilityAlert {
		out = append(out, domain.TrendInsight{
			Type:      "Volatility Alert",
			Direction: domain.TrendStable,
			Message: "Business metrics show high volatility, indicating inconsistent performance " +
				"that may require operational review.",
			Volatility: "high",
		})
	}

	return out
}

func trendMessage(metric string, dir domain.TrendDirection) string {
	switch dir {
	case domain.TrendIncreasing:
		return fmt.Sprintf("%s shows a positive upward trend with a consistent growth pattern.", metric)
	case domain.TrendDecreasing:
		return fmt.Sprintf("%s shows a concerning downward trend requiring intervention.", metric)
	default:
		return fmt.Sprintf("%s remains stable with minimal variation over time.", metric)
	}
}

func (e *Engine) productInsights(m domain.MetricsSnapshot) []domain.Commentary {
	p := m.Products
	var out []domain.Commentary

	if p.Current != p.MostFrequent {
		out = append(out, domain.Commentary{
			Type: "Product Leadership Change",
			Message: fmt.Sprintf("%s is currently the top performer, while %s has been the most consistent leader historically.",
				p.Current, p.MostFrequent),
			Action: "Monitor performance of the new top product and analyze factors driving the change.",
		})
	} else {
		out = append(out, domain.Commentary{
			Type:    "Product Consistency",
			Message: fmt.Sprintf("%s maintains its position as both current and historical top performer.", p.Current),
			Action:  "Continue supporting this strong performer while exploring growth opportunities.",
		})
	}

	if p.UniqueCount < e.settings.MinUniqueProducts {
		out = append(out, domain.Commentary{
			Type: "Product Concentration Risk",
			Message: fmt.Sprintf("Only %d different products have been top performers, indicating high concentration.",
				p.UniqueCount),
			Action: "Consider diversifying the product portfolio or boosting underperforming products.",
		})
	} else {
		out = append(out, domain.Commentary{
			Type: "Product Diversity",
			Message: fmt.Sprintf("Good product diversity with %d different top performers shows a balanced portfolio.",
				p.UniqueCount),
			Action: "Maintain this diversity while identifying patterns in successful products.",
		})
	}

	return out
}

func (e *Engine) customerInsights(m domain.MetricsSnapshot) []domain.Commentary {
	c := m.Customers
	var out []domain.Commentary

	if c.Current == c.MostFrequent {
		out = append(out, domain.Commentary{
			Type: "Customer Loyalty",
			Message: fmt.Sprintf("%s demonstrates strong loyalty as both current and most frequent top customer.",
				c.Current),
			Action: "Strengthen the relationship with this key customer and understand their success factors.",
		})
	} else {
		out = append(out, domain.Commentary{
			Type:    "Customer Dynamics",
			Message: fmt.Sprintf("Customer leadership has shifted from %s to %s.", c.MostFrequent, c.Current),
			Action:  "Investigate reasons for customer ranking changes and address any service issues.",
		})
	}

	if c.UniqueCount < e.settings.MinUniqueCustomers {
		out = append(out, domain.Commentary{
			Type: "Customer Concentration Risk",
			Message: fmt.Sprintf("High customer concentration with only %d different top customers.",
				c.UniqueCount),
			Action: "Develop strategies to expand the customer base and reduce dependency on few key accounts.",
		})
	} else {
		out = append(out, domain.Commentary{
			Type:    "Customer Base Health",
			Message: fmt.Sprintf("Healthy customer diversity with %d different top customers.", c.UniqueCount),
			Action:  "Continue building strong relationships across a diverse customer base.",
		})
	}

	return out
}
