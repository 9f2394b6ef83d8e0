package insights

import (
	"fmt"
	"math"

	"github.com/bi-tools/weekly-pulse/pkg/models/domain"
)

// The decision tables below are explicit ordered (predicate, build) pairs.
// Rules are independent: every matching rule fires, and the declared order
// is part of the contract since callers truncate to the top N entries.

type recommendationRule struct {
	matches func(m domain.MetricsSnapshot) bool
	build   func(m domain.MetricsSnapshot) domain.Recommendation
}

type riskRule struct {
	matches func(m domain.MetricsSnapshot) bool
	build   func(m domain.MetricsSnapshot) domain.Risk
}

type opportunityRule struct {
	matches func(m domain.MetricsSnapshot) bool
	build   func(m domain.MetricsSnapshot) domain.Opportunity
}

func (e *Engine) recommendations(m domain.MetricsSnapshot) []domain.Recommendation {
	var out []domain.Recommendation
	for _, rule := range e.recommendationRules() {
		if rule.matches(m) {
			out = append(out, rule.build(m))
		}
	}
	return out
}

func (e *Engine) risks(m domain.MetricsSnapshot) []domain.Risk {
	var out []domain.Risk
	for _, rule := range e.riskRules() {
		if rule.matches(m) {
			out = append(out, rule.build(m))
		}
	}
	return out
}

func (e *Engine) opportunities(m domain.MetricsSnapshot) []domain.Opportunity {
	var out []domain.Opportunity
	for _, rule := range e.opportunityRules() {
		if rule.matches(m) {
			out = append(out, rule.build(m))
		}
	}
	return out
}

func (e *Engine) recommendationRules() []recommendationRule {
	return []recommendationRule{
		{
			matches: func(m domain.MetricsSnapshot) bool { return m.Changes.SalesChange < -5 },
			build: func(m domain.MetricsSnapshot) domain.Recommendation {
				return domain.Recommendation{
					Priority: domain.LevelHigh,
					Category: "Sales Recovery",
					Title:    "Implement Sales Recovery Plan",
					Description: "Sales have declined significantly. Consider promotional campaigns, " +
						"customer outreach, or market analysis.",
					ExpectedImpact: domain.LevelHigh,
					Timeline:       "1-2 weeks",
				}
			},
		},
		{
			matches: func(m domain.MetricsSnapshot) bool { return m.Changes.SalesChange > 10 },
			build: func(m domain.MetricsSnapshot) domain.Recommendation {
				return domain.Recommendation{
					Priority: domain.LevelMedium,
					Category: "Growth Optimization",
					Title:    "Scale Successful Strategies",
					Description: "Strong sales growth achieved. Identify and replicate successful " +
						"strategies to sustain momentum.",
					ExpectedImpact: domain.LevelHigh,
					Timeline:       "2-4 weeks",
				}
			},
		},
		{
			matches: func(m domain.MetricsSnapshot) bool {
				return m.Changes.OrdersChange < 0 && m.AOV.Change > 0
			},
			build: func(m domain.MetricsSnapshot) domain.Recommendation {
				return domain.Recommendation{
					Priority: domain.LevelMedium,
					Category: "Customer Acquisition",
					Title:    "Focus on Customer Acquisition",
					Description: "Fewer orders but higher AOV suggests a need for broader customer " +
						"reach while maintaining quality.",
					ExpectedImpact: domain.LevelMedium,
					Timeline:       "3-4 weeks",
				}
			},
		},
		{
			matches: func(m domain.MetricsSnapshot) bool {
				return m.Changes.OrdersChange > 0 && m.AOV.Change < 0
			},
			build: func(m domain.MetricsSnapshot) domain.Recommendation {
				return domain.Recommendation{
					Priority: domain.LevelMedium,
					Category: "Revenue Optimization",
					Title:    "Implement Upselling Strategies",
					Description: "More orders but lower AOV. Consider product bundling, premium " +
						"options, or cross-selling.",
					ExpectedImpact: domain.LevelMedium,
					Timeline:       "2-3 weeks",
				}
			},
		},
		{
			matches: func(m domain.MetricsSnapshot) bool { return m.Products.UniqueCount < 3 },
			build: func(m domain.MetricsSnapshot) domain.Recommendation {
				return domain.Recommendation{
					Priority: domain.LevelLow,
					Category: "Product Strategy",
					Title:    "Diversify Product Portfolio",
					Description: "Limited product variety in top performers. Analyze market " +
						"opportunities for expansion.",
					ExpectedImpact: domain.LevelMedium,
					Timeline:       "4-8 weeks",
				}
			},
		},
		{
			matches: func(m domain.MetricsSnapshot) bool {
				return m.Trend != nil && m.Trend.SalesVolatility > 0.2
			},
			build: func(m domain.MetricsSnapshot) domain.Recommendation {
				return domain.Recommendation{
					Priority: domain.LevelMedium,
					Category: "Business Stability",
					Title:    "Reduce Business Volatility",
					Description: "High sales volatility detected. Review operational processes and " +
						"market factors.",
					ExpectedImpact: domain.LevelHigh,
					Timeline:       "4-6 weeks",
				}
			},
		},
		{
			matches: func(m domain.MetricsSnapshot) bool {
				g := m.Historical.SalesGrowthRate
				return g > 0 && g < 5
			},
			build: func(m domain.MetricsSnapshot) domain.Recommendation {
				return domain.Recommendation{
					Priority: domain.LevelLow,
					Category: "Growth Acceleration",
					Title:    "Accelerate Growth Initiatives",
					Description: "Moderate growth rate suggests room for improvement. Consider " +
						"market expansion or innovation.",
					ExpectedImpact: domain.LevelMedium,
					Timeline:       "6-12 weeks",
				}
			},
		},
	}
}

func (e *Engine) riskRules() []riskRule {
	return []riskRule{
		{
			matches: func(m domain.MetricsSnapshot) bool { return m.Changes.SalesChange < -10 },
			build: func(m domain.MetricsSnapshot) domain.Risk {
				return domain.Risk{
					Level:    domain.LevelHigh,
					Category: "Revenue Risk",
					Description: fmt.Sprintf("Significant sales decline of %.1f%% poses immediate revenue risk.",
						math.Abs(m.Changes.SalesChange)),
					Mitigation: "Immediate action required: analyze root causes and implement corrective measures.",
				}
			},
		},
		{
			matches: func(m domain.MetricsSnapshot) bool { return m.Changes.OrdersChange < -15 },
			build: func(m domain.MetricsSnapshot) domain.Risk {
				return domain.Risk{
					Level:    domain.LevelHigh,
					Category: "Demand Risk",
					Description: fmt.Sprintf("Sharp decline in orders (%.1f%%) indicates potential demand issues.",
						math.Abs(m.Changes.OrdersChange)),
					Mitigation: "Review market conditions, customer feedback, and the competitive landscape.",
				}
			},
		},
		{
			matches: func(m domain.MetricsSnapshot) bool { return m.Customers.UniqueCount < 3 },
			build: func(m domain.MetricsSnapshot) domain.Risk {
				return domain.Risk{
					Level:    domain.LevelMedium,
					Category: "Customer Risk",
					Description: fmt.Sprintf("High customer concentration with only %d key customers creates dependency risk.",
						m.Customers.UniqueCount),
					Mitigation: "Diversify the customer base and strengthen relationships with existing customers.",
				}
			},
		},
		{
			matches: func(m domain.MetricsSnapshot) bool { return m.Products.UniqueCount < 3 },
			build: func(m domain.MetricsSnapshot) domain.Risk {
				return domain.Risk{
					Level:    domain.LevelMedium,
					Category: "Product Risk",
					Description: fmt.Sprintf("Limited product diversity with only %d top performers.",
						m.Products.UniqueCount),
					Mitigation: "Expand the product portfolio or improve performance of existing products.",
				}
			},
		},
		{
			matches: func(m domain.MetricsSnapshot) bool {
				return m.Trend != nil && m.Trend.SalesVolatility > 0.3
			},
			build: func(m domain.MetricsSnapshot) domain.Risk {
				return domain.Risk{
					Level:       domain.LevelMedium,
					Category:    "Volatility Risk",
					Description: "High business volatility creates unpredictable performance patterns.",
					Mitigation:  "Implement stabilization measures and improve forecasting capabilities.",
				}
			},
		},
	}
}

func (e *Engine) opportunityRules() []opportunityRule {
	return []opportunityRule{
		{
			matches: func(m domain.MetricsSnapshot) bool {
				return m.Changes.SalesChange > 5 && m.Changes.OrdersChange > 5
			},
			build: func(m domain.MetricsSnapshot) domain.Opportunity {
				return domain.Opportunity{
					Potential: domain.LevelHigh,
					Category:  "Market Expansion",
					Description: "Strong performance in both sales and orders suggests a market " +
						"opportunity for expansion.",
					Action: "Consider scaling operations, expanding territory, or increasing marketing investment.",
				}
			},
		},
		{
			matches: func(m domain.MetricsSnapshot) bool { return m.AOV.Change > 10 },
			build: func(m domain.MetricsSnapshot) domain.Opportunity {
				return domain.Opportunity{
					Potential: domain.LevelMedium,
					Category:  "Premium Strategy",
					Description: fmt.Sprintf("AOV increased by %.1f%%, indicating customer willingness to pay premium prices.",
						m.AOV.Change),
					Action: "Explore premium product lines or value-added services.",
				}
			},
		},
		{
			matches: func(m domain.MetricsSnapshot) bool {
				return m.Trend != nil && m.Trend.SalesDirection == domain.TrendIncreasing
			},
			build: func(m domain.MetricsSnapshot) domain.Opportunity {
				return domain.Opportunity{
					Potential:   domain.LevelHigh,
					Category:    "Momentum Capture",
					Description: "A positive sales trend provides an opportunity to accelerate growth.",
					Action:      "Increase investment in successful channels and strategies while the trend continues.",
				}
			},
		},
		{
			matches: func(m domain.MetricsSnapshot) bool { return true },
			build: func(m domain.MetricsSnapshot) domain.Opportunity {
				return domain.Opportunity{
					Potential:   domain.LevelMedium,
					Category:    "Product Development",
					Description: fmt.Sprintf("%s is performing well as the current top product.", m.Products.Current),
					Action: fmt.Sprintf("Analyze %s success factors and apply them to other products or develop complementary offerings.",
						m.Products.Current),
				}
			},
		},
		{
			matches: func(m domain.MetricsSnapshot) bool { return true },
			build: func(m domain.MetricsSnapshot) domain.Opportunity {
				return domain.Opportunity{
					Potential:   domain.LevelMedium,
					Category:    "Customer Success",
					Description: fmt.Sprintf("%s is the current top customer showing strong engagement.", m.Customers.Current),
					Action: fmt.Sprintf("Study the %s relationship model and replicate it with other customers.",
						m.Customers.Current),
				}
			},
		},
	}
}
