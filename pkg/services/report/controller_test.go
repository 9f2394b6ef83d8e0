package report

import (
	"context"
	"errors"
	"testing"

	"github.com/bi-tools/weekly-pulse/pkg/models/domain"
	"github.com/bi-tools/weekly-pulse/pkg/models/store"
	"github.com/bi-tools/weekly-pulse/pkg/services/ingest"
	"github.com/bi-tools/weekly-pulse/pkg/services/insights"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockRecorder struct {
	mock.Mock
}

func (m *mockRecorder) SaveRun(ctx context.Context, run store.ReportRun) error {
	args := m.Called(ctx, run)
	return args.Error(0)
}

func TestController_Generate(t *testing.T) {
	ctrl := NewController(insights.DefaultSettings())

	rep, err := ctrl.Generate(context.Background(), SampleRows())
	require.NoError(t, err)

	assert.False(t, rep.GeneratedAt.IsZero())
	assert.Equal(t, 8, rep.Snapshot.Historical.WeeksCount)
	assert.Equal(t, 8, rep.Ingest.RecordCount)
	assert.InDelta(t, 5.526, rep.Snapshot.Changes.SalesChange, 0.001)
	assert.NotEmpty(t, rep.Insights.ExecutiveSummary)
	assert.NotEmpty(t, rep.Insights.Performance)
}

func TestController_Generate_RecordsHistory(t *testing.T) {
	recorder := &mockRecorder{}
	recorder.On("SaveRun", mock.Anything, mock.MatchedBy(func(run store.ReportRun) bool {
		return run.WeeksCount == 8 && run.SalesStatus == string(domain.StatusGood)
	})).Return(nil).Once()

	ctrl := NewController(insights.DefaultSettings(), WithHistory(recorder))

	_, err := ctrl.Generate(context.Background(), SampleRows())
	require.NoError(t, err)

	recorder.AssertExpectations(t)
}

func TestController_Generate_HistoryFailureIsNotFatal(t *testing.T) {
	recorder := &mockRecorder{}
	recorder.On("SaveRun", mock.Anything, mock.Anything).
		Return(errors.New("disk full"))

	ctrl := NewController(insights.DefaultSettings(), WithHistory(recorder))

	rep, err := ctrl.Generate(context.Background(), SampleRows())
	require.NoError(t, err)
	assert.NotNil(t, rep)
}

func TestController_Generate_PropagatesIngestErrors(t *testing.T) {
	rows := []ingest.RawRow{
		{
			WeekStart:   "2025-01-06",
			WeekEnd:     "2025-01-12",
			TotalSales:  "-100",
			TotalOrders: "10",
			TopProduct:  "Laptop",
			TopCustomer: "Alpha Corp",
		},
	}

	ctrl := NewController(insights.DefaultSettings())

	_, err := ctrl.Generate(context.Background(), rows)

	var validationErr *domain.ValidationError
	require.ErrorAs(t, err, &validationErr)
}

func TestController_Generate_EmptyInput(t *testing.T) {
	ctrl := NewController(insights.DefaultSettings())

	_, err := ctrl.Generate(context.Background(), nil)

	var insufficientErr *domain.InsufficientDataError
	require.ErrorAs(t, err, &insufficientErr)
}

func TestController_Generate_StrictIngest(t *testing.T) {
	rows := append(SampleRows(), ingest.RawRow{
		WeekStart:   "bad-date",
		WeekEnd:     "2025-03-09",
		TotalSales:  "100",
		TotalOrders: "1",
		TopProduct:  "Laptop",
		TopCustomer: "Alpha Corp",
	})

	t.Run("lenient drops the row", func(t *testing.T) {
		ctrl := NewController(insights.DefaultSettings())
		rep, err := ctrl.Generate(context.Background(), rows)
		require.NoError(t, err)
		assert.Equal(t, 8, rep.Ingest.RecordCount)
		assert.Len(t, rep.Ingest.Malformed, 1)
	})

	t.Run("strict aborts", func(t *testing.T) {
		ctrl := NewController(insights.DefaultSettings(), WithStrictIngest())
		_, err := ctrl.Generate(context.Background(), rows)

		var malformedErr *domain.MalformedRecordError
		require.ErrorAs(t, err, &malformedErr)
	})
}
