package report

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/bi-tools/weekly-pulse/pkg/models/api"
	"github.com/bi-tools/weekly-pulse/pkg/models/domain"
	"github.com/bi-tools/weekly-pulse/pkg/models/store"
	"github.com/bi-tools/weekly-pulse/pkg/services/ingest"
	"github.com/bi-tools/weekly-pulse/pkg/services/report"
	"github.com/rs/zerolog"
)

const defaultHistoryLimit = 20

// Generator produces a full report from raw rows.
type Generator interface {
	Generate(ctx context.Context, rows []ingest.RawRow) (*report.Report, error)
}

// HistoryReader lists persisted report runs.
type HistoryReader interface {
	ListRuns(ctx context.Context, limit int) ([]store.ReportRun, error)
}

type Handler struct {
	generator Generator
	history   HistoryReader
}

func NewHandler(generator Generator, history HistoryReader) *Handler {
	return &Handler{generator: generator, history: history}
}

// GenerateReport accepts raw weekly rows and returns the full report.
func (h *Handler) GenerateReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	var rows []api.WeeklyRow
	if err := json.NewDecoder(r.Body).Decode(&rows); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	rep, err := h.generator.Generate(ctx, toRawRows(rows))
	if err != nil {
		logger.Error().Err(err).Msg("report generation failed")
		writeError(w, statusFor(err), err.Error())
		return
	}

	writeJSON(w, logger, toAPIReport(rep))
}

// SampleReport generates a report over the bundled demo dataset.
func (h *Handler) SampleReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	rep, err := h.generator.Generate(ctx, report.SampleRows())
	if err != nil {
		logger.Error().Err(err).Msg("sample report generation failed")
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, logger, toAPIReport(rep))
}

// ListHistory returns recent persisted report runs.
func (h *Handler) ListHistory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	limit := defaultHistoryLimit
	if q := r.URL.Query().Get("limit"); q != "" {
		if n, err := strconv.Atoi(q); err == nil && n > 0 {
			limit = n
		}
	}

	runs, err := h.history.ListRuns(ctx, limit)
	if err != nil {
		logger.Error().Err(err).Msg("failed to list report runs")
		writeError(w, http.StatusInternalServerError, "failed to list report runs")
		return
	}

	response := make([]api.ReportRun, 0, len(runs))
	for _, run := range runs {
		response = append(response, api.ReportRun{
			ID:           run.ID,
			GeneratedAt:  run.GeneratedAt,
			PeriodStart:  run.PeriodStart.Format("2006-01-02"),
			PeriodEnd:    run.PeriodEnd.Format("2006-01-02"),
			WeeksCount:   run.WeeksCount,
			TotalSales:   run.TotalSales,
			SalesChange:  run.SalesChange,
			OrdersChange: run.OrdersChange,
			SalesStatus:  run.SalesStatus,
		})
	}
	writeJSON(w, logger, response)
}

func toRawRows(rows []api.WeeklyRow) []ingest.RawRow {
	out := make([]ingest.RawRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, ingest.RawRow{
			WeekStart:   r.WeekStart,
			WeekEnd:     r.WeekEnd,
			TotalSales:  r.TotalSales,
			TotalOrders: r.TotalOrders,
			TopProduct:  r.TopProduct,
			TopCustomer: r.TopCustomer,
		})
	}
	return out
}

func toAPIReport(rep *report.Report) api.Report {
	summary := api.IngestSummary{
		RecordCount:         rep.Ingest.RecordCount,
		DiscardedDuplicates: rep.Ingest.DiscardedDuplicates,
		InterpolatedValues:  rep.Ingest.InterpolatedValues,
		Warnings:            rep.Ingest.Warnings,
	}
	for _, m := range rep.Ingest.Malformed {
		summary.MalformedRows = append(summary.MalformedRows, m.Error())
	}

	return api.Report{
		GeneratedAt: rep.GeneratedAt,
		Snapshot:    api.FromSnapshot(rep.Snapshot),
		Insights:    api.FromInsights(rep.Insights),
		Ingest:      summary,
	}
}

// statusFor maps the error taxonomy to HTTP status codes: bad input is the
// client's fault, anything else is ours.
func statusFor(err error) int {
	var validationErr *domain.ValidationError
	var malformedErr *domain.MalformedRecordError
	var insufficientErr *domain.InsufficientDataError
	switch {
	case errors.As(err, &validationErr),
		errors.As(err, &malformedErr),
		errors.As(err, &insufficientErr):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, logger *zerolog.Logger, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error().Err(err).Msg("failed to encode response")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
