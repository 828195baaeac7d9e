package recorder

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"StopLossCowboy/internal/model"
)

// SQLiteRecorder persists run history to a SQLite database.
type SQLiteRecorder struct {
	db     *sql.DB
	mu     sync.Mutex
	logger *zap.Logger
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string, logger *zap.Logger) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db, logger: logger.With(zap.String("component", "recorder"))}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	r.logger.Info("sqlite recorder opened", zap.String("path", dbPath))
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			started_at  INTEGER NOT NULL,
			finished_at INTEGER NOT NULL,
			stock_file  TEXT,
			column_name TEXT,
			row_count   INTEGER,
			failed      INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at)`,

		`CREATE TABLE IF NOT EXISTS proposals (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id      INTEGER NOT NULL REFERENCES runs(id),
			line        INTEGER NOT NULL,
			symbol      TEXT,
			days        INTEGER,
			price_field TEXT,
			mode        TEXT,
			discount    REAL,
			peak        REAL,
			stop_loss   REAL,
			error       TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_proposals_run ON proposals(run_id)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

// RecordRun stores the run and all of its row outcomes in one transaction.
func (r *SQLiteRecorder) RecordRun(report *model.RunReport) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(`INSERT INTO runs
		(started_at, finished_at, stock_file, column_name, row_count, failed)
		VALUES (?,?,?,?,?,?)`,
		report.StartedAt.Unix(), report.FinishedAt.Unix(), report.StockFile,
		report.Column, len(report.Proposals), report.Failed(),
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("run id: %w", err)
	}

	for _, p := range report.Proposals {
		var (
			days        int
			field, mode string
			discount    float64
			errText     string
		)
		if p.Request != nil {
			days = p.Request.Days
			field = string(p.Request.Field)
			mode = string(p.Request.Mode)
			discount = p.Request.Discount
		}
		if p.Err != nil {
			errText = p.Err.Error()
		}
		if _, err := tx.Exec(`INSERT INTO proposals
			(run_id, line, symbol, days, price_field, mode, discount, peak, stop_loss, error)
			VALUES (?,?,?,?,?,?,?,?,?,?)`,
			runID, p.Line, p.Symbol, days, field, mode, discount, p.Peak, p.Value(), errText,
		); err != nil {
			return fmt.Errorf("insert proposal line %d: %w", p.Line, err)
		}
	}
	return tx.Commit()
}

// RecentRuns returns the latest runs, newest first.
func (r *SQLiteRecorder) RecentRuns(limit int) ([]RunSummary, error) {
	rows, err := r.db.Query(`SELECT id, started_at, finished_at, stock_file, column_name, row_count, failed
		FROM runs ORDER BY started_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []RunSummary
	for rows.Next() {
		var (
			s                 RunSummary
			started, finished int64
		)
		if err := rows.Scan(&s.ID, &started, &finished, &s.StockFile, &s.Column, &s.Rows, &s.Failed); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		s.StartedAt = time.Unix(started, 0)
		s.FinishedAt = time.Unix(finished, 0)
		runs = append(runs, s)
	}
	return runs, rows.Err()
}

// Proposals returns the row outcomes of one run in line order.
func (r *SQLiteRecorder) Proposals(runID int64) ([]ProposalRecord, error) {
	rows, err := r.db.Query(`SELECT line, symbol, days, price_field, mode, discount, peak, stop_loss, error
		FROM proposals WHERE run_id = ? ORDER BY line`, runID)
	if err != nil {
		return nil, fmt.Errorf("query proposals: %w", err)
	}
	defer rows.Close()

	var out []ProposalRecord
	for rows.Next() {
		var p ProposalRecord
		if err := rows.Scan(&p.Line, &p.Symbol, &p.Days, &p.Field, &p.Mode, &p.Discount, &p.Peak, &p.StopLoss, &p.Error); err != nil {
			return nil, fmt.Errorf("scan proposal: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *SQLiteRecorder) Close() error {
	r.logger.Info("closing sqlite recorder")
	return r.db.Close()
}
