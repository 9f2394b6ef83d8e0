package store

import "time"

// ReportRun is the persisted record of one report generation, kept so
// scheduling and delivery collaborators can query past runs.
type ReportRun struct {
	ID           int64
	GeneratedAt  time.Time
	PeriodStart  time.Time
	PeriodEnd    time.Time
	WeeksCount   int
	TotalSales   float64
	SalesChange  float64
	OrdersChange float64
	SalesStatus  string
}
