package export

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"
	"go.uber.org/zap"

	"iowa-lite/trial"
)

type PostgresSink struct {
	db     *sql.DB
	logger *zap.Logger
}

func NewPostgresSink(dsn string, logger *zap.Logger) (*PostgresSink, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, fmt.Errorf("empty postgres dsn")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := ensurePostgresSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &PostgresSink{db: db, logger: logger.Named("export.postgres")}, nil
}

func (p *PostgresSink) Close() error {
	if p == nil || p.db == nil {
		return nil
	}
	return p.db.Close()
}

// WriteIowa replaces the session's rows and bulk loads the new ones with COPY.
func (p *PostgresSink) WriteIowa(ctx context.Context, sessionID string, rows []trial.IowaRecord) error {
	values := make([][]any, 0, len(rows))
	for _, r := range rows {
		values = append(values, []any{sessionID, r.Trial, r.Deck, r.Win, r.Loss, r.Net, r.Balance, r.ElapsedMS})
	}
	err := p.copyRows(ctx, "iowa_trials", sessionID, values,
		"session_id", "trial", "deck", "win", "loss", "net", "balance", "elapsed_ms")
	if err != nil {
		return err
	}
	p.logger.Info("iowa trials exported", zap.String("session", sessionID), zap.Int("rows", len(rows)))
	return nil
}

func (p *PostgresSink) WriteLibet(ctx context.Context, sessionID string, rows []trial.LibetRecord) error {
	values := make([][]any, 0, len(rows))
	for _, r := range rows {
		values = append(values, []any{sessionID, r.Trial, r.StopTimeMS, nullableInt64Ptr(r.UrgeTimeMS)})
	}
	err := p.copyRows(ctx, "libet_trials", sessionID, values,
		"session_id", "trial", "stop_time_ms", "urge_time_ms")
	if err != nil {
		return err
	}
	p.logger.Info("libet trials exported", zap.String("session", sessionID), zap.Int("rows", len(rows)))
	return nil
}

func (p *PostgresSink) copyRows(ctx context.Context, table, sessionID string, rows [][]any, columns ...string) error {
	if strings.TrimSpace(sessionID) == "" {
		return fmt.Errorf("empty session id")
	}

	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM `+pq.QuoteIdentifier(table)+` WHERE session_id = $1`, sessionID); err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, pq.CopyIn(table, columns...))
	if err != nil {
		return err
	}
	for _, row := range rows {
		if _, err := stmt.ExecContext(ctx, row...); err != nil {
			_ = stmt.Close()
			return err
		}
	}
	// flush
	if _, err := stmt.ExecContext(ctx); err != nil {
		_ = stmt.Close()
		return err
	}
	if err := stmt.Close(); err != nil {
		return err
	}
	return tx.Commit()
}

func ensurePostgresSchema(ctx context.Context, db *sql.DB) error {
	statements := []string{
		`
CREATE TABLE IF NOT EXISTS iowa_trials (
    id BIGSERIAL PRIMARY KEY,
    session_id TEXT NOT NULL,
    trial INTEGER NOT NULL,
    deck TEXT NOT NULL,
    win BIGINT NOT NULL,
    loss BIGINT NOT NULL,
    net BIGINT NOT NULL,
    balance BIGINT NOT NULL,
    elapsed_ms BIGINT NOT NULL DEFAULT 0,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    UNIQUE (session_id, trial)
)`,
		`
CREATE TABLE IF NOT EXISTS libet_trials (
    id BIGSERIAL PRIMARY KEY,
    session_id TEXT NOT NULL,
    trial INTEGER NOT NULL,
    stop_time_ms BIGINT NOT NULL,
    urge_time_ms BIGINT,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
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
