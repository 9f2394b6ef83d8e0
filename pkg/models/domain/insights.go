package domain

// Status classifies a percentage-change value.
type Status string

const (
	StatusExcellent  Status = "excellent"
	StatusGood       Status = "good"
	StatusFair       Status = "fair"
	StatusConcerning Status = "concerning"
	StatusCritical   Status = "critical"
)

// Level grades recommendations, risks and opportunities.
type Level string

const (
	LevelLow    Level = "Low"
	LevelMedium Level = "Medium"
	LevelHigh   Level = "High"
)

// PerformanceEntry is one classified performance observation.
type PerformanceEntry struct {
	Metric  string
	Status  Status
	Message string
}

// TrendInsight is commentary on a trend direction and its volatility.
type TrendInsight struct {
	Type       string
	Direction  TrendDirection
	Message    string
	Volatility string // high, moderate or low
}

// Commentary is a narrative observation paired with a suggested action.
type Commentary struct {
	Type    string
	Message string
	Action  string
}

// Recommendation is one actionable item from the decision table.
type Recommendation struct {
	Priority       Level
	Category       string
	Title          string
	Description    string
	ExpectedImpact Level
	Timeline       string
}

// Risk flags a potential problem surfaced by the threshold rules.
type Risk struct {
	Level       Level
	Category    string
	Description string
	Mitigation  string
}

// Opportunity flags favorable conditions worth acting on.
type Opportunity struct {
	Potential   Level
	Category    string
	Description string
	Action      string
}

// InsightSet is the complete narrative layer derived from one snapshot.
// Every list keeps its declared rule order so callers can truncate to the
// top N entries.
type InsightSet struct {
	ExecutiveSummary string
	Performance      []PerformanceEntry
	Trends           []TrendInsight
	Products         []Commentary
	Customers        []Commentary
	Recommendations  []Recommendation
	Risks            []Risk
	Opportunities    []Opportunity
}
