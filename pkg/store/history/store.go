// Package history persists report run summaries to SQLite so scheduling
// and delivery collaborators can query past runs.
package history

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/bi-tools/weekly-pulse/pkg/models/store"
	_ "github.com/mattn/go-sqlite3"
)

const schema = `
CREATE TABLE IF NOT EXISTS report_runs (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	generated_at DATETIME NOT NULL,
	period_start DATETIME NOT NULL,
	period_end DATETIME NOT NULL,
	weeks_count INTEGER NOT NULL,
	total_sales REAL NOT NULL,
	sales_change REAL NOT NULL,
	orders_change REAL NOT NULL,
	sales_status TEXT NOT NULL
);
`

type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the SQLite database at path and ensures the
// schema exists.
func NewStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("failed to create history schema: %w", err)
	}
	return &Store{db: db}, nil
}

// NewStoreWithDB wraps an existing connection. Used in tests.
func NewStoreWithDB(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) SaveRun(ctx context.Context, run store.ReportRun) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO report_runs
			(generated_at, period_start, period_end, weeks_count, total_sales, sales_change, orders_change, sales_status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.GeneratedAt, run.PeriodStart, run.PeriodEnd, run.WeeksCount,
		run.TotalSales, run.SalesChange, run.OrdersChange, run.SalesStatus,
	)
	if err != nil {
		return fmt.Errorf("failed to insert report run: %w", err)
	}
	return nil
}

// ListRuns returns the most recent runs, newest first.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]store.ReportRun, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, generated_at, period_start, period_end, weeks_count, total_sales, sales_change, orders_change, sales_status
		FROM report_runs
		ORDER BY generated_at DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query report runs: %w", err)
	}
	defer rows.Close()

	var runs []store.ReportRun
	for rows.Next() {
		var run store.ReportRun
		if err := rows.Scan(
			&run.ID, &run.GeneratedAt, &run.PeriodStart, &run.PeriodEnd,
			&run.WeeksCount, &run.TotalSales, &run.SalesChange, &run.OrdersChange, &run.SalesStatus,
		); err != nil {
			return nil, fmt.Errorf("failed to scan report run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

func (s *Store) Close() error {
	return s.db.Close()
}
