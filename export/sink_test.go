package export

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"iowa-lite/trial"
)

func TestNormalizeMode(t *testing.T) {
	cases := map[string]string{
		"":           ModeNone,
		"  MEM ":     ModeNone,
		"off":        ModeNone,
		"sqlite":     ModeSQLite,
		"SQLite3":    ModeSQLite,
		"db":         ModePostgres,
		"postgresql": ModePostgres,
		"Mongo":      "mongo",
	}
	for in, want := range cases {
		require.Equal(t, want, NormalizeMode(in), "mode %q", in)
	}
}

func TestNewSink_Modes(t *testing.T) {
	s, err := NewSink("none", Options{}, nil)
	require.NoError(t, err)
	require.IsType(t, NopSink{}, s)
	require.NoError(t, s.WriteIowa(context.Background(), "x", []trial.IowaRecord{{Deck: "A"}}))

	_, err = NewSink("mongo", Options{}, nil)
	require.ErrorContains(t, err, "invalid export mode")

	_, err = NewSink("postgres", Options{PostgresDSN: "  "}, nil)
	require.ErrorContains(t, err, "empty postgres dsn")

	_, err = NewSink("sqlite", Options{}, nil)
	require.ErrorContains(t, err, "empty sqlite database path")
}

func TestSQLiteSink_UpsertsIowaRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "trials.db")
	s, err := NewSQLiteSink(path, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	ctx := context.Background()
	rows := []trial.IowaRecord{
		{Trial: 0, Deck: "A", Win: 100, Loss: 0, Net: 100, Balance: 2100, ElapsedMS: 800},
		{Trial: 1, Deck: "B", Win: 100, Loss: 1250, Net: -1150, Balance: 950, ElapsedMS: 1600},
	}
	require.NoError(t, s.WriteIowa(ctx, "sess-1", rows))

	// second write of the same session replaces by trial index
	rows[1].Deck = "C"
	rows[1].Balance = 2150
	require.NoError(t, s.WriteIowa(ctx, "sess-1", rows))
	require.NoError(t, s.WriteIowa(ctx, "sess-2", rows[:1]))

	require.Equal(t, 2, countRows(t, s.db, "sess-1", "iowa_trials"))
	require.Equal(t, 1, countRows(t, s.db, "sess-2", "iowa_trials"))

	var deck string
	var balance int64
	require.NoError(t, s.db.QueryRowContext(ctx,
		`SELECT deck, balance FROM iowa_trials WHERE session_id = ? AND trial = 1`, "sess-1").Scan(&deck, &balance))
	require.Equal(t, "C", deck)
	require.Equal(t, int64(2150), balance)

	require.Error(t, s.WriteIowa(ctx, " ", rows))
}

func TestSQLiteSink_LibetNullUrge(t *testing.T) {
	s, err := NewSQLiteSink(filepath.Join(t.TempDir(), "libet.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	urge := int64(350)
	rows := []trial.LibetRecord{
		{Trial: 0, StopTimeMS: 1200, UrgeTimeMS: &urge},
		{Trial: 1, StopTimeMS: 900},
	}
	ctx := context.Background()
	require.NoError(t, s.WriteLibet(ctx, "sess-l", rows))
	require.Equal(t, 2, countRows(t, s.db, "sess-l", "libet_trials"))

	var got sql.NullInt64
	require.NoError(t, s.db.QueryRowContext(ctx,
		`SELECT urge_time_ms FROM libet_trials WHERE session_id = ? AND trial = 1`, "sess-l").Scan(&got))
	require.False(t, got.Valid)

	require.NoError(t, s.db.QueryRowContext(ctx,
		`SELECT urge_time_ms FROM libet_trials WHERE session_id = ? AND trial = 0`, "sess-l").Scan(&got))
	require.True(t, got.Valid)
	require.Equal(t, urge, got.Int64)
}

func TestSQLiteSink_ReopenKeepsSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "again.db")
	s, err := NewSQLiteSink(path, nil)
	require.NoError(t, err)
	require.NoError(t, s.WriteIowa(context.Background(), "s", []trial.IowaRecord{{Trial: 0, Deck: "D"}}))
	require.NoError(t, s.Close())

	s, err = NewSQLiteSink(path, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	require.Equal(t, 1, countRows(t, s.db, "s", "iowa_trials"))
}

func countRows(t *testing.T, db *sql.DB, sessionID, table string) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM `+table+` WHERE session_id = ?`, sessionID).Scan(&n))
	return n
}
