package insights

// Settings contains the classification thresholds applied by the insights
// engine. The decision tables for recommendations, risks and opportunities
// keep their rule constants inline so the rule list stays auditable.
type Settings struct {
	// ExcellentChange is the minimum percentage change rated excellent (default: 10)
	ExcellentChange float64
	// GoodChange is the minimum percentage change rated good (default: 5)
	GoodChange float64
	// ConcerningChange is the minimum percentage change rated concerning; anything below is critical (default: -5)
	ConcerningChange float64
	// DramaticChange is the absolute change qualified as dramatic (default: 20)
	DramaticChange float64
	// SignificantChange is the absolute change qualified as significant (default: 10)
	SignificantChange float64
	// ModerateChange is the absolute change qualified as moderate (default: 5)
	ModerateChange float64
	// HighVolatility is the coefficient of variation labelled high (default: 0.3)
	HighVolatility float64
	// ModerateVolatility is the coefficient of variation labelled moderate (default: 0.15)
	ModerateVolatility float64
	// VolatilityAlert triggers a volatility alert entry when sales or orders exceed it (default: 0.2)
	VolatilityAlert float64
	// MinUniqueProducts below which product concentration commentary fires (default: 3)
	MinUniqueProducts int
	// MinUniqueCustomers below which customer concentration commentary fires (default: 4)
	MinUniqueCustomers int
	// CurrencySymbol prefixes monetary amounts in narrative text (default: "$")
	CurrencySymbol string
}

// DefaultSettings returns the default thresholds for insight generation.
func DefaultSettings() Settings {
	return Settings{
		ExcellentChange:    10,
		GoodChange:         5,
		ConcerningChange:   -5,
		DramaticChange:     20,
		SignificantChange:  10,
		ModerateChange:     5,
		HighVolatility:     0.3,
		ModerateVolatility: 0.15,
		VolatilityAlert:    0.2,
		MinUniqueProducts:  3,
		MinUniqueCustomers: 4,
		CurrencySymbol:     "$",
	}
}
