package report

import (
	"context"
	"time"

	"github.com/bi-tools/weekly-pulse/pkg/models/domain"
	"github.com/bi-tools/weekly-pulse/pkg/models/store"
	"github.com/bi-tools/weekly-pulse/pkg/services/ingest"
	"github.com/bi-tools/weekly-pulse/pkg/services/insights"
	"github.com/bi-tools/weekly-pulse/pkg/services/metrics"
	"github.com/rs/zerolog"
)

// Report bundles everything one run produces.
type Report struct {
	GeneratedAt time.Time
	Snapshot    domain.MetricsSnapshot
	Insights    domain.InsightSet
	Ingest      ingest.Summary
}

// RunRecorder persists a summary row per generated report. Implementations
// live under pkg/store.
type RunRecorder interface {
	SaveRun(ctx context.Context, run store.ReportRun) error
}

// Controller orchestrates the ingest -> metrics -> insights flow.
type Controller struct {
	ingestOpts ingest.Options
	engine     *insights.Engine
	history    RunRecorder // optional
}

type Option func(*Controller)

// WithStrictIngest makes the controller abort on the first malformed row.
func WithStrictIngest() Option {
	return func(c *Controller) { c.ingestOpts.Strict = true }
}

// WithHistory records every successful run through the given recorder.
func WithHistory(h RunRecorder) Option {
	return func(c *Controller) { c.history = h }
}

func NewController(settings insights.Settings, opts ...Option) *Controller {
	c := &Controller{
		engine: insights.NewEngine(settings),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Generate runs the full pipeline over raw rows. Errors from any stage
// abort the run; callers never see a partial report.
func (c *Controller) Generate(ctx context.Context, rows []ingest.RawRow) (*Report, error) {
	logger := zerolog.Ctx(ctx)

	ds, summary, err := ingest.Ingest(ctx, rows, c.ingestOpts)
	if err != nil {
		return nil, err
	}

	snapshot, err := metrics.Compute(ds)
	if err != nil {
		return nil, err
	}

	rep := &Report{
		GeneratedAt: time.Now().UTC(),
		Snapshot:    snapshot,
		Insights:    c.engine.Generate(snapshot),
		Ingest:      summary,
	}

	if c.history != nil {
		run := store.ReportRun{
			GeneratedAt:  rep.GeneratedAt,
			PeriodStart:  snapshot.CurrentWeek.WeekStart,
			PeriodEnd:    snapshot.CurrentWeek.WeekEnd,
			WeeksCount:   snapshot.Historical.WeeksCount,
			TotalSales:   snapshot.CurrentWeek.Sales,
			SalesChange:  snapshot.Changes.SalesChange,
			OrdersChange: snapshot.Changes.OrdersChange,
			SalesStatus:  string(c.engine.StatusFor(snapshot.Changes.SalesChange)),
		}
		if err := c.history.SaveRun(ctx, run); err != nil {
			// The report itself is complete; a failed history write is
			// not fatal to the run.
			logger.Error().Err(err).Msg("failed to record report run")
		}
	}

	logger.Info().
		Int("weeks", snapshot.Historical.WeeksCount).
		Str("sales_status", string(c.engine.StatusFor(snapshot.Changes.SalesChange))).
		Msg("report generated")

	return rep, nil
}
