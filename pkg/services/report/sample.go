package report

import "github.com/bi-tools/weekly-pulse/pkg/services/ingest"

// SampleRows returns the bundled eight-week demo dataset. It doubles as
// the fixture for end-to-end tests.
func SampleRows() []ingest.RawRow {
	return []ingest.RawRow{
		{WeekStart: "2025-01-06", WeekEnd: "2025-01-12", TotalSales: "12500", TotalOrders: "45", TopProduct: "Laptop", TopCustomer: "Alpha Corp"},
		{WeekStart: "2025-01-13", WeekEnd: "2025-01-19", TotalSales: "15800", TotalOrders: "52", TopProduct: "Smartphone", TopCustomer: "Beta Ltd"},
		{WeekStart: "2025-01-20", WeekEnd: "2025-01-26", TotalSales: "14200", TotalOrders: "48", TopProduct: "Tablet", TopCustomer: "Gamma LLC"},
		{WeekStart: "2025-01-27", WeekEnd: "2025-02-02", TotalSales: "16950", TotalOrders: "55", TopProduct: "Monitor", TopCustomer: "Delta Inc"},
		{WeekStart: "2025-02-03", WeekEnd: "2025-02-09", TotalSales: "18100", TotalOrders: "60", TopProduct: "Printer", TopCustomer: "Epsilon Co"},
		{WeekStart: "2025-02-10", WeekEnd: "2025-02-16", TotalSales: "17500", TotalOrders: "57", TopProduct: "Keyboard", TopCustomer: "Zeta Enterprises"},
		{WeekStart: "2025-02-17", WeekEnd: "2025-02-23", TotalSales: "19000", TotalOrders: "62", TopProduct: "Mouse", TopCustomer: "Eta Traders"},
		{WeekStart: "2025-02-24", WeekEnd: "2025-03-02", TotalSales: "20050", TotalOrders: "65", TopProduct: "Headphones", TopCustomer: "Theta Solutions"},
	}
}
