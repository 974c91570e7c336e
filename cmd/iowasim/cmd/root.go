package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"iowa-lite/export"
	"iowa-lite/internal/config"
	"iowa-lite/internal/logging"
)

// app is filled in by the root PersistentPreRunE before any subcommand runs.
type app struct {
	v      *viper.Viper
	cfg    config.Config
	logger *zap.Logger
}

func NewRootCmd() *cobra.Command {
	a := &app{v: config.New(), logger: zap.NewNop()}

	rootCmd := &cobra.Command{
		Use:           "iowasim",
		Short:         "Iowa Gambling Task deck engine and simulator",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SetOut(cmd.OutOrStdout())
			cmd.SetErr(cmd.ErrOrStderr())

			cfg, err := config.Load(a.v)
			if err != nil {
				return err
			}
			logger, err := logging.New(cfg.LogLevel)
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.logger = logger
			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			_ = a.logger.Sync()
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.String("log-level", "info", "log level (debug, info, warn, error)")
	pf.String("export", export.ModeNone, "trial export sink (none, sqlite, postgres)")
	pf.String("sqlite-path", "iowa_trials.db", "sqlite database file for --export=sqlite")
	pf.String("postgres-dsn", "", "postgres DSN for --export=postgres")
	_ = a.v.BindPFlag(config.KeyLogLevel, pf.Lookup("log-level"))
	_ = a.v.BindPFlag(config.KeyExportMode, pf.Lookup("export"))
	_ = a.v.BindPFlag(config.KeySQLitePath, pf.Lookup("sqlite-path"))
	_ = a.v.BindPFlag(config.KeyPostgresDSN, pf.Lookup("postgres-dsn"))

	rootCmd.AddCommand(
		newRunCmd(a),
		newReplayCmd(a),
		newProfilesCmd(),
	)
	return rootCmd
}
