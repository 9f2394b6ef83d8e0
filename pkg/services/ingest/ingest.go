package ingest

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/bi-tools/weekly-pulse/pkg/models/domain"
	"github.com/rs/zerolog"
)

const (
	dateLayout  = "2006-01-02"
	unknownName = "Unknown"

	// Sales above this multiple of the dataset median are flagged as a
	// soft warning during validation.
	outlierMedianFactor = 10.0
)

// RawRow is one raw weekly row as handed over by an external source.
// All fields are textual; empty strings mark missing values.
type RawRow struct {
	WeekStart   string
	WeekEnd     string
	TotalSales  string
	TotalOrders string
	TopProduct  string
	TopCustomer string
}

// Options control ingest behavior.
type Options struct {
	// Strict aborts the ingest on the first malformed row instead of
	// dropping it and carrying on.
	Strict bool
}

// Summary reports what the ingest did to the raw input.
type Summary struct {
	RecordCount         int
	DiscardedDuplicates int
	InterpolatedValues  int
	Malformed           []*domain.MalformedRecordError
	Warnings            []string
}

// row carries a partially parsed record through cleaning. Nil numeric
// fields mark missing values awaiting interpolation.
type row struct {
	weekStart   time.Time
	weekEnd     time.Time
	sales       *float64
	orders      *float64
	topProduct  string
	topCustomer string
}

// Ingest parses, cleans and validates raw weekly rows into an ordered
// dataset. Malformed rows are collected in the summary; validation
// violations abort the run with a domain.ValidationError.
func Ingest(ctx context.Context, rows []RawRow, opts Options) (domain.Dataset, Summary, error) {
	logger := zerolog.Ctx(ctx)
	summary := Summary{}

	parsed := make([]row, 0, len(rows))
	for i, raw := range rows {
		r, err := parseRow(i, raw)
		if err != nil {
			if opts.Strict {
				return nil, summary, err
			}
			summary.Malformed = append(summary.Malformed, err)
			logger.Warn().Int("row", i).Str("field", err.Field).Msg("dropping malformed row")
			continue
		}
		parsed = append(parsed, r)
	}

	sort.SliceStable(parsed, func(i, j int) bool {
		return parsed[i].weekStart.Before(parsed[j].weekStart)
	})

	parsed, discarded := dropDuplicates(parsed)
	summary.DiscardedDuplicates = discarded
	if discarded > 0 {
		logger.Warn().Int("count", discarded).Msg("discarded duplicate week records")
	}

	summary.InterpolatedValues = interpolate(parsed)
	if summary.InterpolatedValues > 0 {
		logger.Warn().Int("count", summary.InterpolatedValues).Msg("filled missing numeric values by interpolation")
	}

	ds, err := validate(parsed, &summary)
	if err != nil {
		return nil, summary, err
	}
	for _, w := range summary.Warnings {
		logger.Warn().Msg(w)
	}

	summary.RecordCount = len(ds)
	logger.Info().Int("records", len(ds)).Msg("dataset ingested")
	return ds, summary, nil
}

func parseRow(idx int, raw RawRow) (row, *domain.MalformedRecordError) {
	var r row

	start, err := time.Parse(dateLayout, strings.TrimSpace(raw.WeekStart))
	if err != nil {
		return r, &domain.MalformedRecordError{Row: idx, Field: "week_start", Reason: "invalid date"}
	}
	end, err := time.Parse(dateLayout, strings.TrimSpace(raw.WeekEnd))
	if err != nil {
		return r, &domain.MalformedRecordError{Row: idx, Field: "week_end", Reason: "invalid date"}
	}
	r.weekStart = start
	r.weekEnd = end

	if s := strings.TrimSpace(raw.TotalSales); s != "" {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return r, &domain.MalformedRecordError{Row: idx, Field: "total_sales", Reason: "not a number"}
		}
		r.sales = &v
	}
	if s := strings.TrimSpace(raw.TotalOrders); s != "" {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return r, &domain.MalformedRecordError{Row: idx, Field: "total_orders", Reason: "not a number"}
		}
		r.orders = &v
	}

	r.topProduct = strings.TrimSpace(raw.TopProduct)
	if r.topProduct == "" {
		r.topProduct = unknownName
	}
	r.topCustomer = strings.TrimSpace(raw.TopCustomer)
	if r.topCustomer == "" {
		r.topCustomer = unknownName
	}

	return r, nil
}

// dropDuplicates keeps the first record per week start after the stable
// sort, so input order decides among duplicates.
func dropDuplicates(rows []row) ([]row, int) {
	seen := make(map[time.Time]bool, len(rows))
	kept := rows[:0]
	discarded := 0
	for _, r := range rows {
		if seen[r.weekStart] {
			discarded++
			continue
		}
		seen[r.weekStart] = true
		kept = append(kept, r)
	}
	return kept, discarded
}

// interpolate fills missing numeric values linearly between the nearest
// known neighbors in sorted order. Leading or trailing gaps with a known
// neighbor on one side only are left missing for validation to reject.
func interpolate(rows []row) int {
	sales := make([]*float64, len(rows))
	orders := make([]*float64, len(rows))
	for i := range rows {
		sales[i] = rows[i].sales
		orders[i] = rows[i].orders
	}

	filled := fillGaps(sales) + fillGaps(orders)

	for i := range rows {
		rows[i].sales = sales[i]
		rows[i].orders = orders[i]
	}
	return filled
}

func fillGaps(vals []*float64) int {
	filled := 0
	for i := range vals {
		if vals[i] != nil {
			continue
		}

		prev, next := -1, -1
		for j := i - 1; j >= 0; j-- {
			if vals[j] != nil {
				prev = j
				break
			}
		}
		for j := i + 1; j < len(vals); j++ {
			if vals[j] != nil {
				next = j
				break
			}
		}
		if prev < 0 || next < 0 {
			continue
		}

		v := *vals[prev] + (*vals[next]-*vals[prev])*float64(i-prev)/float64(next-prev)
		vals[i] = &v
		filled++
	}
	return filled
}

// validate enforces dataset integrity in a fixed order: unresolved missing
// values, negative values, inverted date ranges, then the soft outlier
// check which only adds a warning.
func validate(rows []row, summary *Summary) (domain.Dataset, error) {
	for _, r := range rows {
		if r.sales == nil || r.orders == nil {
			return nil, &domain.ValidationError{
				Reason: fmt.Sprintf("week %s has a missing value with no neighbor to interpolate from",
					r.weekStart.Format(dateLayout)),
			}
		}
	}

	for _, r := range rows {
		if *r.sales < 0 || *r.orders < 0 {
			return nil, &domain.ValidationError{
				Reason: fmt.Sprintf("week %s contains negative sales or orders", r.weekStart.Format(dateLayout)),
			}
		}
	}

	for _, r := range rows {
		if !r.weekEnd.After(r.weekStart) {
			return nil, &domain.ValidationError{
				Reason: fmt.Sprintf("week %s ends on or before its start date", r.weekStart.Format(dateLayout)),
			}
		}
	}

	if threshold := outlierThreshold(rows); threshold > 0 {
		for _, r := range rows {
			if *r.sales > threshold {
				summary.Warnings = append(summary.Warnings,
					fmt.Sprintf("week %s sales %.2f exceed 10x the dataset median", r.weekStart.Format(dateLayout), *r.sales))
			}
		}
	}

	ds := make(domain.Dataset, 0, len(rows))
	for _, r := range rows {
		ds = append(ds, domain.WeeklyRecord{
			WeekStart:   r.weekStart,
			WeekEnd:     r.weekEnd,
			TotalSales:  *r.sales,
			TotalOrders: int(math.Round(*r.orders)),
			TopProduct:  r.topProduct,
			TopCustomer: r.topCustomer,
		})
	}
	return ds, nil
}

func outlierThreshold(rows []row) float64 {
	if len(rows) == 0 {
		return 0
	}
	sales := make([]float64, 0, len(rows))
	for _, r := range rows {
		if r.sales != nil {
			sales = append(sales, *r.sales)
		}
	}
	if len(sales) == 0 {
		return 0
	}
	sort.Float64s(sales)
	mid := len(sales) / 2
	median := sales[mid]
	if len(sales)%2 == 0 {
		median = (sales[mid-1] + sales[mid]) / 2
	}
	return median * outlierMedianFactor
}
