package export

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"iowa-lite/trial"
)

type SQLiteSink struct {
	db     *sql.DB
	logger *zap.Logger
}

func NewSQLiteSink(dbPath string, logger *zap.Logger) (*SQLiteSink, error) {
	dbPath = strings.TrimSpace(dbPath)
	if dbPath == "" {
		return nil, fmt.Errorf("empty sqlite database path")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if dbPath != ":memory:" {
		parent := filepath.Dir(dbPath)
		if parent != "" && parent != "." {
			if err := os.MkdirAll(parent, 0o755); err != nil {
				return nil, err
			}
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	for _, pragma := range []string{
		`PRAGMA busy_timeout = 5000;`,
		`PRAGMA journal_mode = WAL;`,
	} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := ensureSQLiteSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &SQLiteSink{db: db, logger: logger.Named("export.sqlite")}, nil
}

func (s *SQLiteSink) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// WriteIowa upserts rows keyed by (session_id, trial) in one transaction.
func (s *SQLiteSink) WriteIowa(ctx context.Context, sessionID string, rows []trial.IowaRecord) error {
	if strings.TrimSpace(sessionID) == "" {
		return fmt.Errorf("empty session id")
	}
	nowMs := time.Now().UTC().UnixMilli()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
INSERT INTO iowa_trials (
    session_id, trial, deck, win, loss, net, balance, elapsed_ms, created_at_ms
)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (session_id, trial) DO UPDATE
SET
    deck = excluded.deck,
    win = excluded.win,
    loss = excluded.loss,
    net = excluded.net,
    balance = excluded.balance,
    elapsed_ms = excluded.elapsed_ms
`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, r := range rows {
		if _, err := stmt.ExecContext(ctx, sessionID, r.Trial, r.Deck, r.Win, r.Loss, r.Net, r.Balance, r.ElapsedMS, nowMs); err != nil {
			return fmt.Errorf("insert trial %d: %w", r.Trial, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	s.logger.Info("iowa trials exported", zap.String("session", sessionID), zap.Int("rows", len(rows)))
	return nil
}

func (s *SQLiteSink) WriteLibet(ctx context.Context, sessionID string, rows []trial.LibetRecord) error {
	if strings.TrimSpace(sessionID) == "" {
		return fmt.Errorf("empty session id")
	}
	nowMs := time.Now().UTC().UnixMilli()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
INSERT INTO libet_trials (session_id, trial, stop_time_ms, urge_time_ms, created_at_ms)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT (session_id, trial) DO UPDATE
SET
    stop_time_ms = excluded.stop_time_ms,
    urge_time_ms = excluded.urge_time_ms
`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, r := range rows {
		if _, err := stmt.ExecContext(ctx, sessionID, r.Trial, r.StopTimeMS, nullableInt64Ptr(r.UrgeTimeMS), nowMs); err != nil {
			return fmt.Errorf("insert trial %d: %w", r.Trial, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	s.logger.Info("libet trials exported", zap.String("session", sessionID), zap.Int("rows", len(rows)))
	return nil
}

func ensureSQLiteSchema(ctx context.Context, db *sql.DB) error {
	statements := []string{
		`
CREATE TABLE IF NOT EXISTS iowa_trials (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    session_id TEXT NOT NULL,
    trial INTEGER NOT NULL,
    deck TEXT NOT NULL,
    win INTEGER NOT NULL,
    loss INTEGER NOT NULL,
    net INTEGER NOT NULL,
    balance INTEGER NOT NULL,
    elapsed_ms INTEGER NOT NULL DEFAULT 0,
    created_at_ms INTEGER NOT NULL,
    UNIQUE (session_id, trial)
)`,
		`CREATE INDEX IF NOT EXISTS idx_iowa_trials_deck ON iowa_trials(session_id, deck)`,
		`
CREATE TABLE IF NOT EXISTS libet_trials (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    session_id TEXT NOT NULL,
    trial INTEGER NOT NULL,
    stop_time_ms INTEGER NOT NULL,
    urge_time_ms INTEGER,
    created_at_ms INTEGER NOT NULL,
    UNIQUE (session_id, trial)
)`,
	}

	for _, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
