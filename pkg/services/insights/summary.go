package insights

import (
	"fmt"
	"strings"

	"github.com/bi-tools/weekly-pulse/pkg/models/domain"
)

// Summarize renders a concise text digest of an insight set: the executive
// summary, the top performance highlights, and the highest-graded
// recommendations, risks and opportunities.
func Summarize(set domain.InsightSet) string {
	var b strings.Builder

	b.WriteString("EXECUTIVE SUMMARY\n")
	b.WriteString(set.ExecutiveSummary)
	b.WriteString("\n\n")

	b.WriteString("KEY PERFORMANCE HIGHLIGHTS\n")
	for i, p := range set.Performance {
		if i == 3 {
			break
		}
		fmt.Fprintf(&b, "- %s: %s\n", p.Metric, p.Message)
	}

	if recs := filterRecommendations(set.Recommendations, domain.LevelHigh, 2); len(recs) > 0 {
		b.WriteString("\nTOP RECOMMENDATIONS\n")
		for _, r := range recs {
			fmt.Fprintf(&b, "- %s: %s\n", r.Title, r.Description)
		}
	}

	if risks := filterRisks(set.Risks, domain.LevelHigh, 2); len(risks) > 0 {
		b.WriteString("\nCRITICAL RISKS\n")
		for _, r := range risks {
			fmt.Fprintf(&b, "- %s: %s\n", r.Category, r.Description)
		}
	}

	if opps := filterOpportunities(set.Opportunities, domain.LevelHigh, 2); len(opps) > 0 {
		b.WriteString("\nKEY OPPORTUNITIES\n")
		for _, o := range opps {
			fmt.Fprintf(&b, "- %s: %s\n", o.Category, o.Description)
		}
	}

	return b.String()
}

func filterRecommendations(recs []domain.Recommendation, priority domain.Level, limit int) []domain.Recommendation {
	var out []domain.Recommendation
	for _, r := range recs {
		if r.Priority == priority {
			out = append(out, r)
		}
		if len(out) == limit {
			break
		}
	}
	return out
}

func filterRisks(risks []domain.Risk, level domain.Level, limit int) []domain.Risk {
	var out []domain.Risk
	for _, r := range risks {
		if r.Level == level {
			out = append(out, r)
		}
		if len(out) == limit {
			break
		}
	}
	return out
}

func filterOpportunities(opps []domain.Opportunity, potential domain.Level, limit int) []domain.Opportunity {
	var out []domain.Opportunity
	for _, o := range opps {
		if o.Potential == potential {
			out = append(out, o)
		}
		if len(out) == limit {
			break
		}
	}
	return out
}
