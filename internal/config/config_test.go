package config

import (
	"testing"

	"github.com/stretchr/testify/require"

	"iowa-lite/export"
	"iowa-lite/iowa"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(New())
	require.NoError(t, err)
	require.Equal(t, "info", cfg.LogLevel)
	require.Equal(t, export.ModeNone, cfg.Export.Mode)
	require.Equal(t, iowa.DefaultMaxTrials, cfg.Session.Trials)
	require.Equal(t, iowa.DefaultStartingBalance, cfg.Session.Balance)
	require.Nil(t, cfg.Session.Seed)
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("IOWA_EXPORT_MODE", "DB")
	t.Setenv("IOWA_EXPORT_POSTGRES_DSN", "postgres://u:p@localhost/iowa?sslmode=disable")
	t.Setenv("IOWA_SESSION_SEED", "77")
	t.Setenv("IOWA_SESSION_TRIALS", "40")

	cfg, err := Load(New())
	require.NoError(t, err)
	require.Equal(t, export.ModePostgres, cfg.Export.Mode)
	require.Equal(t, "postgres://u:p@localhost/iowa?sslmode=disable", cfg.Export.Options().PostgresDSN)
	require.Equal(t, 40, cfg.Session.Trials)
	require.NotNil(t, cfg.Session.Seed)
	require.Equal(t, int64(77), *cfg.Session.Seed)
}

func TestLoad_Invalid(t *testing.T) {
	cases := map[string]map[string]any{
		"postgres without dsn": {KeyExportMode: "postgres"},
		"sqlite without path":  {KeyExportMode: "sqlite", KeySQLitePath: " "},
		"unknown mode":         {KeyExportMode: "redis"},
		"zero trials":          {KeySessionTrials: 0},
		"negative balance":     {KeySessionBalance: -1},
	}
	for name, overrides := range cases {
		t.Run(name, func(t *testing.T) {
			v := New()
			for k, val := range overrides {
				v.Set(k, val)
			}
			_, err := Load(v)
			require.Error(t, err)
		})
	}
}
