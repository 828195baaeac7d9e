package model

import "time"

// Sentinel marks a row whose stop loss could not be computed. Real proposals
// are never negative, so any negative value in a result column is a failure.
const Sentinel = -1.0

// Proposal is the outcome of one row.
type Proposal struct {
	Line     int
	Symbol   string
	Request  *StockRequest // nil when the row could not be parsed
	Peak     float64
	StopLoss float64
	Bars     int
	Err      error
}

// Value returns the number written to the result column.
func (p *Proposal) Value() float64 {
	if p.Err != nil {
		return Sentinel
	}
	return p.StopLoss
}

// RunReport summarises one batch run.
type RunReport struct {
	StockFile  string
	Column     string
	StartedAt  time.Time
	FinishedAt time.Time
	Proposals  []*Proposal
}

// Failed counts the rows that produced the sentinel.
func (r *RunReport) Failed() int {
	n := 0
	for _, p := range r.Proposals {
		if p.Err != nil {
			n++
		}
	}
	return n
}
