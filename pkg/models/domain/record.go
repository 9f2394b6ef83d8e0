package domain

import "time"

// WeeklyRecord is one observed week of business activity. Records are
// created during ingestion and immutable afterwards.
type WeeklyRecord struct {
	WeekStart   time.Time
	WeekEnd     time.Time
	TotalSales  float64
	TotalOrders int
	TopProduct  string
	TopCustomer string
}

// Dataset is a sequence of weekly records ordered ascending by WeekStart,
// unique per WeekStart.
type Dataset []WeeklyRecord

// Current returns the latest record. The dataset must not be empty.
func (d Dataset) Current() WeeklyRecord {
	return d[len(d)-1]
}

// Previous returns the second-to-last record, or the latest one when the
// dataset holds a single week.
func (d Dataset) Previous() WeeklyRecord {
	if len(d) < 2 {
		return d[len(d)-1]
	}
	return d[len(d)-2]
}
