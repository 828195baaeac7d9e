package scheduler

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"StopLossCowboy/internal/model"
)

// Runner processes a stock file once.
type Runner interface {
	RunFile(ctx context.Context, path string) (*model.RunReport, error)
}

// Scheduler re-runs the batch on a cron schedule.
type Scheduler struct {
	Cron      *cron.Cron
	Runner    Runner
	StockFile string
	Logger    *zap.Logger
	Ctx       context.Context
}

// NewScheduler creates a Scheduler with a seconds-field cron parser.
// Overlapping ticks are skipped while a run is still in progress.
func NewScheduler(ctx context.Context, runner Runner, stockFile string, logger *zap.Logger) *Scheduler {
	logger = logger.With(zap.String("component", "scheduler"))
	return &Scheduler{
		Cron: cron.New(
			cron.WithSeconds(),
			cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
		),
		Runner:    runner,
		StockFile: stockFile,
		Logger:    logger,
		Ctx:       ctx,
	}
}

// Register schedules the batch run.
func (s *Scheduler) Register(spec string) error {
	if _, err := s.Cron.AddFunc(spec, s.runTask); err != nil {
		return fmt.Errorf("register process task: %w", err)
	}
	s.Logger.Info("process task registered", zap.String("cron", spec), zap.String("file", s.StockFile))
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	s.Logger.Info("scheduler started")
}

// Stop stops the cron scheduler and waits for a running batch to finish.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	s.Logger.Info("scheduler stopped")
}

// RunNow executes the batch immediately (for RUN_ON_START).
func (s *Scheduler) RunNow() {
	s.runTask()
}

func (s *Scheduler) runTask() {
	if s.Ctx.Err() != nil {
		return
	}
	s.Logger.Info("running process task")
	report, err := s.Runner.RunFile(s.Ctx, s.StockFile)
	if err != nil {
		s.Logger.Error("process task failed", zap.Error(err))
		return
	}
	s.Logger.Info("process task finished",
		zap.String("column", report.Column),
		zap.Int("failed", report.Failed()),
	)
}
