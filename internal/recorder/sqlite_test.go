package recorder

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"StopLossCowboy/internal/model"
)

func newTestRecorder(t *testing.T) *SQLiteRecorder {
	t.Helper()
	r, err := NewSQLiteRecorder(filepath.Join(t.TempDir(), "history.db"), zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = r.Close() })
	return r
}

func report(started time.Time, column string) *model.RunReport {
	return &model.RunReport{
		StockFile:  "stocks.csv",
		Column:     column,
		StartedAt:  started,
		FinishedAt: started.Add(3 * time.Second),
		Proposals: []*model.Proposal{
			{
				Line: 1, Symbol: "AAPL", Peak: 200, StopLoss: 180,
				Request: &model.StockRequest{Line: 1, Symbol: "AAPL", Days: 10, Field: model.FieldHigh, Discount: 0.1, Mode: model.ModeMax},
			},
			{Line: 2, Symbol: "AAPL", Err: errors.New("illegal share value price \"FOO\"")},
		},
	}
}

func TestSQLiteRecorder_RoundTrip(t *testing.T) {
	r := newTestRecorder(t)
	t0 := time.Date(2024, 3, 15, 18, 30, 0, 0, time.UTC)

	require.NoError(t, r.RecordRun(report(t0, "first")))
	require.NoError(t, r.RecordRun(report(t0.Add(time.Hour), "second")))

	runs, err := r.RecentRuns(10)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "second", runs[0].Column)
	assert.Equal(t, 2, runs[0].Rows)
	assert.Equal(t, 1, runs[0].Failed)
	assert.True(t, runs[1].StartedAt.Equal(t0))

	props, err := r.Proposals(runs[1].ID)
	require.NoError(t, err)
	require.Len(t, props, 2)
	assert.Equal(t, ProposalRecord{
		Line: 1, Symbol: "AAPL", Days: 10, Field: "HIGH", Mode: "MAX",
		Discount: 0.1, Peak: 200, StopLoss: 180,
	}, props[0])
	assert.Equal(t, model.Sentinel, props[1].StopLoss)
	assert.Contains(t, props[1].Error, "FOO")
}

func TestSQLiteRecorder_Limit(t *testing.T) {
	r := newTestRecorder(t)
	t0 := time.Now()
	for i := 0; i < 3; i++ {
		require.NoError(t, r.RecordRun(report(t0.Add(time.Duration(i)*time.Minute), "run")))
	}
	runs, err := r.RecentRuns(2)
	require.NoError(t, err)
	assert.Len(t, runs, 2)
}

func TestNoopRecorder(t *testing.T) {
	var r Recorder = NewNoopRecorder()
	assert.NoError(t, r.RecordRun(&model.RunReport{}))
	runs, err := r.RecentRuns(5)
	assert.NoError(t, err)
	assert.Empty(t, runs)
}
