// Package csvfile adapts CSV sources into raw weekly rows. CSV framing,
// quoting and encoding stay here; the ingest engine only ever sees the
// six textual fields.
package csvfile

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/bi-tools/weekly-pulse/pkg/services/ingest"
)

var columns = []string{
	"week_start", "week_end", "total_sales", "total_orders", "top_product", "top_customer",
}

// ReadFile reads weekly rows from a CSV file on disk.
func ReadFile(path string) ([]ingest.RawRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer f.Close()
	return Read(f)
}

// Read parses weekly rows from CSV content. The header row is matched
// case-insensitively and tolerates surrounding whitespace and quotes.
func Read(r io.Reader) ([]ingest.RawRow, error) {
	cr := csv.NewReader(r)
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, h := range header {
		clean := strings.ToLower(strings.TrimSpace(strings.ReplaceAll(h, `"`, "")))
		index[clean] = i
	}
	for _, col := range columns {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("CSV header is missing column %q", col)
		}
	}

	var rows []ingest.RawRow
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV row: %w", err)
		}

		field := func(name string) string {
			i := index[name]
			if i >= len(record) {
				return ""
			}
			return record[i]
		}
		rows = append(rows, ingest.RawRow{
			WeekStart:   field("week_start"),
			WeekEnd:     field("week_end"),
			TotalSales:  field("total_sales"),
			TotalOrders: field("total_orders"),
			TopProduct:  field("top_product"),
			TopCustomer: field("top_customer"),
		})
	}
	return rows, nil
}
