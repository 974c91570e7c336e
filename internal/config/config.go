package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"iowa-lite/export"
	"iowa-lite/iowa"
)

const EnvPrefix = "IOWA"

const (
	KeyLogLevel       = "log.level"
	KeyExportMode     = "export.mode"
	KeySQLitePath     = "export.sqlite_path"
	KeyPostgresDSN    = "export.postgres_dsn"
	KeySessionTrials  = "session.trials"
	KeySessionBalance = "session.balance"
	KeySessionSeed    = "session.seed"
)

type Config struct {
	LogLevel string
	Export   ExportConfig
	Session  SessionConfig
}

type ExportConfig struct {
	Mode        string
	SQLitePath  string
	PostgresDSN string
}

func (e ExportConfig) Options() export.Options {
	return export.Options{SQLitePath: e.SQLitePath, PostgresDSN: e.PostgresDSN}
}

type SessionConfig struct {
	Trials  int
	Balance int64
	// nil => random
	Seed *int64
}

// New returns a viper instance reading IOWA_* variables, e.g.
// IOWA_EXPORT_MODE for export.mode.
func New() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	SetDefaults(v)
	return v
}

func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyExportMode, export.ModeNone)
	v.SetDefault(KeySQLitePath, "iowa_trials.db")
	v.SetDefault(KeyPostgresDSN, "")
	v.SetDefault(KeySessionTrials, iowa.DefaultMaxTrials)
	v.SetDefault(KeySessionBalance, iowa.DefaultStartingBalance)
}

// Load reads and validates the typed configuration.
func Load(v *viper.Viper) (Config, error) {
	cfg := Config{
		LogLevel: strings.TrimSpace(v.GetString(KeyLogLevel)),
		Export: ExportConfig{
			Mode:        export.NormalizeMode(v.GetString(KeyExportMode)),
			SQLitePath:  strings.TrimSpace(v.GetString(KeySQLitePath)),
			PostgresDSN: strings.TrimSpace(v.GetString(KeyPostgresDSN)),
		},
		Session: SessionConfig{
			Trials:  v.GetInt(KeySessionTrials),
			Balance: v.GetInt64(KeySessionBalance),
		},
	}
	if v.IsSet(KeySessionSeed) && strings.TrimSpace(v.GetString(KeySessionSeed)) != "" {
		seed := v.GetInt64(KeySessionSeed)
		cfg.Session.Seed = &seed
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.Export.Mode {
	case export.ModeNone:
	case export.ModeSQLite:
		if c.Export.SQLitePath == "" {
			return fmt.Errorf("%s is required for export mode %s", KeySQLitePath, c.Export.Mode)
		}
	case export.ModePostgres:
		if c.Export.PostgresDSN == "" {
			return fmt.Errorf("%s is required for export mode %s", KeyPostgresDSN, c.Export.Mode)
		}
	default:
		return fmt.Errorf("invalid %s %q", KeyExportMode, c.Export.Mode)
	}
	if c.Session.Trials <= 0 {
		return fmt.Errorf("%s must be > 0", KeySessionTrials)
	}
	if c.Session.Balance < 0 {
		return fmt.Errorf("%s must be >= 0", KeySessionBalance)
	}
	return nil
}
