package recorder

import (
	"time"

	"StopLossCowboy/internal/model"
)

// RunSummary is one stored batch run.
type RunSummary struct {
	ID         int64
	StartedAt  time.Time
	FinishedAt time.Time
	StockFile  string
	Column     string
	Rows       int
	Failed     int
}

// ProposalRecord is one stored row outcome.
type ProposalRecord struct {
	Line     int
	Symbol   string
	Days     int
	Field    string
	Mode     string
	Discount float64
	Peak     float64
	StopLoss float64
	Error    string
}

// Recorder persists run history for later inspection.
type Recorder interface {
	RecordRun(report *model.RunReport) error
	RecentRuns(limit int) ([]RunSummary, error)
	Proposals(runID int64) ([]ProposalRecord, error)
	Close() error
}
