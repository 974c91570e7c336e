package export

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"iowa-lite/trial"
)

const (
	ModeNone     = "none"
	ModeSQLite   = "sqlite"
	ModePostgres = "postgres"
)

// Sink receives the trial table of a finished session.
type Sink interface {
	WriteIowa(ctx context.Context, sessionID string, rows []trial.IowaRecord) error
	WriteLibet(ctx context.Context, sessionID string, rows []trial.LibetRecord) error
	Close() error
}

type Options struct {
	SQLitePath  string
	PostgresDSN string
}

// NormalizeMode maps accepted aliases onto ModeNone, ModeSQLite or
// ModePostgres. Unknown values are returned lower-cased.
func NormalizeMode(raw string) string {
	mode := strings.ToLower(strings.TrimSpace(raw))
	switch mode {
	case "", ModeNone, "off", "mem", "memory":
		return ModeNone
	case ModeSQLite, "sqlite3", "local":
		return ModeSQLite
	case ModePostgres, "postgresql", "pg", "db":
		return ModePostgres
	default:
		return mode
	}
}

func NewSink(mode string, opts Options, logger *zap.Logger) (Sink, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	switch m := NormalizeMode(mode); m {
	case ModeNone:
		return NopSink{}, nil
	case ModeSQLite:
		return NewSQLiteSink(opts.SQLitePath, logger)
	case ModePostgres:
		return NewPostgresSink(opts.PostgresDSN, logger)
	default:
		return nil, fmt.Errorf("invalid export mode %q (supported: %s, %s, %s)", m, ModeNone, ModeSQLite, ModePostgres)
	}
}

// NopSink discards everything.
type NopSink struct{}

func (NopSink) WriteIowa(context.Context, string, []trial.IowaRecord) error { return nil }

func (NopSink) WriteLibet(context.Context, string, []trial.LibetRecord) error { return nil }

func (NopSink) Close() error { return nil }

func nullableInt64Ptr(v *int64) any {
	if v == nil {
		return nil
	}
	return *v
}
