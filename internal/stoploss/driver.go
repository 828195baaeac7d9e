package stoploss

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"StopLossCowboy/internal/model"
	"StopLossCowboy/internal/notifier"
	"StopLossCowboy/internal/recorder"
	"StopLossCowboy/internal/sheet"
)

// ColumnSuffix follows the run timestamp in the name of a result column.
const ColumnSuffix = " (Stop loss proposal)"

// ColumnName returns the result column name for a run started at t.
func ColumnName(t time.Time) string {
	return t.Format("2006-01-02:15:04") + ColumnSuffix
}

// Driver runs the processor over every row of a stock file.
type Driver struct {
	Processor *Processor
	Recorder  recorder.Recorder
	Notifier  notifier.Notifier
	Logger    *zap.Logger
	Now       func() time.Time
}

// NewDriver creates a Driver with no-op history and notifications.
func NewDriver(p *Processor, logger *zap.Logger) *Driver {
	return &Driver{
		Processor: p,
		Recorder:  recorder.NewNoopRecorder(),
		Notifier:  notifier.NewNoopNotifier(),
		Logger:    logger.With(zap.String("component", "driver")),
		Now:       time.Now,
	}
}

// Run computes one proposal per row, in row order, and returns a copy of
// table with the result column appended. A failing row yields the sentinel
// and never stops the batch. Rows left when ctx ends are marked failed.
func (d *Driver) Run(ctx context.Context, table *sheet.Table) (*sheet.Table, *model.RunReport, error) {
	started := d.Now()
	report := &model.RunReport{
		Column:    ColumnName(started),
		StartedAt: started,
		Proposals: make([]*model.Proposal, 0, len(table.Rows)),
	}

	values := make([]string, len(table.Rows))
	for i, record := range table.Rows {
		p := d.processRow(ctx, i+1, record)
		report.Proposals = append(report.Proposals, p)
		values[i] = sheet.FormatFloat(p.Value())
	}

	out := table.Clone()
	if err := out.AppendColumn(report.Column, values); err != nil {
		return nil, nil, err
	}
	report.FinishedAt = d.Now()
	return out, report, nil
}

func (d *Driver) processRow(ctx context.Context, line int, record []string) *model.Proposal {
	prop := &model.Proposal{Line: line}
	if len(record) > 0 {
		prop.Symbol = record[0]
	}

	req, err := ParseRequest(line, record)
	if err == nil {
		err = ctx.Err()
	}
	if err == nil {
		prop, err = d.Processor.Process(ctx, req)
	}
	if err != nil {
		prop.Err = err
		d.Logger.Warn("skipping row",
			zap.Int("line", line),
			zap.String("symbol", prop.Symbol),
			zap.Error(err),
		)
		return prop
	}

	d.Logger.Info("stop loss proposal",
		zap.Int("line", line),
		zap.String("symbol", prop.Symbol),
		zap.Int("bars", prop.Bars),
		zap.Float64("peak", prop.Peak),
		zap.Float64("stop_loss", prop.StopLoss),
	)
	return prop
}

// RunFile reads path, runs the batch and overwrites path with the result.
// History and notification failures are logged, not returned.
func (d *Driver) RunFile(ctx context.Context, path string) (*model.RunReport, error) {
	table, err := sheet.Read(path)
	if err != nil {
		return nil, fmt.Errorf("load stock file: %w", err)
	}

	out, report, err := d.Run(ctx, table)
	if err != nil {
		return nil, err
	}
	report.StockFile = path

	if err := sheet.Write(path, out); err != nil {
		return nil, fmt.Errorf("write stock file: %w", err)
	}
	d.Logger.Info("file successfully written",
		zap.String("path", path),
		zap.String("column", report.Column),
		zap.Int("rows", len(report.Proposals)),
		zap.Int("failed", report.Failed()),
	)

	if err := d.Recorder.RecordRun(report); err != nil {
		d.Logger.Warn("record run failed", zap.Error(err))
	}
	if err := d.Notifier.Notify(context.WithoutCancel(ctx), report); err != nil {
		d.Logger.Warn("notify failed", zap.Error(err))
	}
	return report, nil
}
