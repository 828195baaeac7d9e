package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"StopLossCowboy/internal/config"
	"StopLossCowboy/internal/logging"
	"StopLossCowboy/internal/scheduler"
	"StopLossCowboy/internal/sheet"
)

// state is filled by the root command before any subcommand runs.
type state struct {
	configPath string
	stockFile  string
	logLevel   string

	cfg    *config.Config
	logger *zap.Logger
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}

// NewRootCmd creates the root command.
func NewRootCmd() *cobra.Command {
	st := &state{}
	var initFlag bool

	rootCmd := &cobra.Command{
		Use:   "stoploss",
		Short: "Stop Loss Cowboy - stop loss proposals for a stock file",
		Long: `Stop Loss Cowboy reads a CSV of stock symbols, aggregates each symbol's recent
price history and appends a discounted stop loss proposal as a new column.
Rows that fail get -1.0 and a log line; the rest of the file is still processed.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return st.load(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if st.logger != nil {
				_ = st.logger.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if initFlag {
				return runInit(cmd, st)
			}
			return runProcess(cmd, st)
		},
	}

	rootCmd.AddCommand(newInitCmd(st))
	rootCmd.AddCommand(newProcessCmd(st))
	rootCmd.AddCommand(newScheduleCmd(st))
	rootCmd.AddCommand(newHistoryCmd(st))

	defaultConfig := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		defaultConfig = v
	}
	rootCmd.PersistentFlags().StringVar(&st.configPath, "config", defaultConfig, "Configuration file path")
	rootCmd.PersistentFlags().StringVar(&st.stockFile, "stock-file", "", "Path to the stock file (default ./stocks.csv)")
	rootCmd.PersistentFlags().StringVar(&st.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.Flags().BoolVar(&initFlag, "init", false, "Create a stocks file template instead of processing")

	return rootCmd
}

func (st *state) load(cmd *cobra.Command) error {
	cfg, err := config.Load(st.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if st.stockFile != "" {
		cfg.StockFile = st.stockFile
	}
	if st.logLevel != "" {
		cfg.Log.Level = st.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config validation: %w", err)
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}
	st.cfg = cfg
	st.logger = logger
	return nil
}

func newInitCmd(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create a stocks file template",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd, st)
		},
	}
}

func runInit(cmd *cobra.Command, st *state) error {
	path := st.cfg.StockFile
	if err := sheet.CreateTemplate(path); err != nil {
		if errors.Is(err, sheet.ErrExists) {
			return fmt.Errorf("the file %s exists already. Please delete it or move it somewhere else before init", path)
		}
		return fmt.Errorf("write template: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "File written to %s\n", path)
	return nil
}

func newProcessCmd(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "process",
		Short: "Append a stop loss proposal column to the stocks file",
		Long: `Fetches price history for every row, computes the stop loss and rewrites the
file with a new "<YYYY-MM-DD:HH:MM> (Stop loss proposal)" column. Failed rows are
written as -1.0 and do not change the exit code.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProcess(cmd, st)
		},
	}
}

func runProcess(cmd *cobra.Command, st *state) error {
	path := st.cfg.StockFile
	if info, err := os.Stat(path); err != nil || info.IsDir() {
		return fmt.Errorf("file does not exist: %s. You can create one using init", path)
	}

	d, rec, err := newDriver(st.cfg, st.logger)
	if err != nil {
		return err
	}
	defer rec.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	report, err := d.RunFile(ctx, path)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "File successfully written to %s (%d rows, %d failed)\n",
		path, len(report.Proposals), report.Failed())
	return nil
}

func newScheduleCmd(st *state) *cobra.Command {
	var cronSpec string
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Process the stocks file on a cron schedule until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cronSpec != "" {
				st.cfg.Schedule.Cron = cronSpec
			}
			return runSchedule(cmd.Context(), st)
		},
	}
	cmd.Flags().StringVar(&cronSpec, "cron", "", "Cron expression with seconds, e.g. \"0 30 22 * * 1-5\"")
	return cmd
}

func runSchedule(parent context.Context, st *state) error {
	d, rec, err := newDriver(st.cfg, st.logger)
	if err != nil {
		return err
	}
	defer rec.Close()

	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sched := scheduler.NewScheduler(ctx, d, st.cfg.StockFile, st.logger)
	if err := sched.Register(st.cfg.Schedule.Cron); err != nil {
		return err
	}
	if st.cfg.Schedule.RunOnStart {
		st.logger.Info("run_on_start enabled, processing now")
		sched.RunNow()
	}
	sched.Start()

	st.logger.Info("scheduler running, press Ctrl+C to stop")
	<-ctx.Done()
	st.logger.Info("shutdown signal received, stopping")
	sched.Stop()
	return nil
}

func newHistoryCmd(st *state) *cobra.Command {
	var (
		limit int
		runID int64
	)
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent runs recorded in the SQLite database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if st.cfg.Database.SQLitePath == "" {
				return errors.New("database.sqlite_path is not configured")
			}
			rec := openRecorder(st.cfg, st.logger)
			defer rec.Close()

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			defer w.Flush()

			if runID > 0 {
				props, err := rec.Proposals(runID)
				if err != nil {
					return err
				}
				fmt.Fprintln(w, "LINE\tSYMBOL\tDAYS\tFIELD\tMODE\tDISCOUNT\tPEAK\tSTOP LOSS\tERROR")
				for _, p := range props {
					fmt.Fprintf(w, "%d\t%s\t%d\t%s\t%s\t%g\t%.2f\t%s\t%s\n",
						p.Line, p.Symbol, p.Days, p.Field, p.Mode, p.Discount, p.Peak, sheet.FormatFloat(p.StopLoss), p.Error)
				}
				return nil
			}

			runs, err := rec.RecentRuns(limit)
			if err != nil {
				return err
			}
			fmt.Fprintln(w, "ID\tSTARTED\tFILE\tCOLUMN\tROWS\tFAILED")
			for _, r := range runs {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d\t%d\n",
					r.ID, r.StartedAt.Format("2006-01-02 15:04:05"), r.StockFile, r.Column, r.Rows, r.Failed)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 10, "Number of runs to show")
	cmd.Flags().Int64Var(&runID, "run", 0, "Show the rows of one run")
	return cmd
}
