package ingest

import (
	"context"
	"testing"

	"github.com/bi-tools/weekly-pulse/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mkRow(start, end, sales, orders, product, customer string) RawRow {
	return RawRow{
		WeekStart:   start,
		WeekEnd:     end,
		TotalSales:  sales,
		TotalOrders: orders,
		TopProduct:  product,
		TopCustomer: customer,
	}
}

func TestIngest_SortsByWeekStart(t *testing.T) {
	rows := []RawRow{
		mkRow("2025-01-20", "2025-01-26", "300", "3", "C", "Z"),
		mkRow("2025-01-06", "2025-01-12", "100", "1", "A", "X"),
		mkRow("2025-01-13", "2025-01-19", "200", "2", "B", "Y"),
	}

	ds, summary, err := Ingest(context.Background(), rows, Options{})
	require.NoError(t, err)

	require.Len(t, ds, 3)
	assert.Equal(t, 3, summary.RecordCount)
	assert.Equal(t, "A", ds[0].TopProduct)
	assert.Equal(t, "B", ds[1].TopProduct)
	assert.Equal(t, "C", ds[2].TopProduct)
	assert.True(t, ds[0].WeekStart.Before(ds[1].WeekStart))
}

func TestIngest_MalformedRows(t *testing.T) {
	rows := []RawRow{
		mkRow("2025-01-06", "2025-01-12", "100", "1", "A", "X"),
		mkRow("not-a-date", "2025-01-19", "200", "2", "B", "Y"),
		mkRow("2025-01-20", "2025-01-26", "abc", "3", "C", "Z"),
	}

	t.Run("lenient collects and drops", func(t *testing.T) {
		ds, summary, err := Ingest(context.Background(), rows, Options{})
		require.NoError(t, err)

		assert.Len(t, ds, 1)
		require.Len(t, summary.Malformed, 2)
		assert.Equal(t, "week_start", summary.Malformed[0].Field)
		assert.Equal(t, 1, summary.Malformed[0].Row)
		assert.Equal(t, "total_sales", summary.Malformed[1].Field)
	})

	t.Run("strict aborts on first malformed row", func(t *testing.T) {
		_, _, err := Ingest(context.Background(), rows, Options{Strict: true})

		var malformedErr *domain.MalformedRecordError
		require.ErrorAs(t, err, &malformedErr)
		assert.Equal(t, 1, malformedErr.Row)
	})
}

func TestIngest_MissingValues(t *testing.T) {
	t.Run("numeric gaps interpolate between neighbors", func(t *testing.T) {
		rows := []RawRow{
			mkRow("2025-01-06", "2025-01-12", "100", "10", "A", "X"),
			mkRow("2025-01-13", "2025-01-19", "", "", "B", "Y"),
			mkRow("2025-01-20", "2025-01-26", "300", "30", "C", "Z"),
		}

		ds, summary, err := Ingest(context.Background(), rows, Options{})
		require.NoError(t, err)

		assert.Equal(t, 2, summary.InterpolatedValues)
		assert.InDelta(t, 200.0, ds[1].TotalSales, 1e-9)
		assert.Equal(t, 20, ds[1].TotalOrders)
	})

	t.Run("leading gap is rejected", func(t *testing.T) {
		rows := []RawRow{
			mkRow("2025-01-06", "2025-01-12", "", "10", "A", "X"),
			mkRow("2025-01-13", "2025-01-19", "200", "20", "B", "Y"),
		}

		_, _, err := Ingest(context.Background(), rows, Options{})

		var validationErr *domain.ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Contains(t, validationErr.Reason, "missing value")
	})

	t.Run("categorical gaps become Unknown", func(t *testing.T) {
		rows := []RawRow{
			mkRow("2025-01-06", "2025-01-12", "100", "10", "", ""),
		}

		ds, _, err := Ingest(context.Background(), rows, Options{})
		require.NoError(t, err)

		assert.Equal(t, "Unknown", ds[0].TopProduct)
		assert.Equal(t, "Unknown", ds[0].TopCustomer)
	})
}

func TestIngest_Duplicates(t *testing.T) {
	rows := []RawRow{
		mkRow("2025-01-06", "2025-01-12", "100", "10", "First", "X"),
		mkRow("2025-01-13", "2025-01-19", "200", "20", "B", "Y"),
		mkRow("2025-01-06", "2025-01-12", "999", "99", "Second", "Z"),
	}

	ds, summary, err := Ingest(context.Background(), rows, Options{})
	require.NoError(t, err)

	require.Len(t, ds, 2)
	assert.Equal(t, 1, summary.DiscardedDuplicates)
	assert.Equal(t, "First", ds[0].TopProduct, "first occurrence in input order wins")
}

func TestIngest_Validation(t *testing.T) {
	t.Run("negative values abort", func(t *testing.T) {
		rows := []RawRow{
			mkRow("2025-01-06", "2025-01-12", "-100", "10", "A", "X"),
		}

		_, _, err := Ingest(context.Background(), rows, Options{})

		var validationErr *domain.ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Contains(t, validationErr.Reason, "negative")
	})

	t.Run("inverted date range aborts", func(t *testing.T) {
		rows := []RawRow{
			mkRow("2025-01-12", "2025-01-06", "100", "10", "A", "X"),
		}

		_, _, err := Ingest(context.Background(), rows, Options{})

		var validationErr *domain.ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Contains(t, validationErr.Reason, "ends on or before")
	})

	t.Run("negative check runs before date check", func(t *testing.T) {
		rows := []RawRow{
			mkRow("2025-01-12", "2025-01-06", "-100", "10", "A", "X"),
		}

		_, _, err := Ingest(context.Background(), rows, Options{})

		var validationErr *domain.ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Contains(t, validationErr.Reason, "negative")
	})

	t.Run("outlier sales warn but do not abort", func(t *testing.T) {
		rows := []RawRow{
			mkRow("2025-01-06", "2025-01-12", "100", "10", "A", "X"),
			mkRow("2025-01-13", "2025-01-19", "110", "11", "B", "Y"),
			mkRow("2025-01-20", "2025-01-26", "120", "12", "C", "Z"),
			mkRow("2025-01-27", "2025-02-02", "5000", "13", "D", "W"),
		}

		ds, summary, err := Ingest(context.Background(), rows, Options{})
		require.NoError(t, err)

		assert.Len(t, ds, 4)
		require.Len(t, summary.Warnings, 1)
		assert.Contains(t, summary.Warnings[0], "exceed 10x the dataset median")
	})
}
