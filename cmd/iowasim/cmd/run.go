package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"iowa-lite/deck"
	"iowa-lite/export"
	"iowa-lite/internal/config"
	"iowa-lite/iowa"
	"iowa-lite/participant"
)

func newRunCmd(a *app) *cobra.Command {
	var (
		name         string
		profilesPath string
		weighted     bool
		lock         bool
		out          string
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Play one session with a simulated participant and write its trials as CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			reg := participant.Builtin()
			if profilesPath != "" {
				if err := reg.LoadFromFile(profilesPath); err != nil {
					return err
				}
			}

			policy := deck.Reshuffle
			if lock {
				policy = deck.Lock
			}
			session, err := iowa.NewSession(iowa.Config{
				StartingBalance: iowa.BalanceOf(a.cfg.Session.Balance),
				MaxTrials:       a.cfg.Session.Trials,
				Weighted:        weighted,
				OnExhaust:       policy,
				Seed:            a.cfg.Session.Seed,
			}, nil)
			if err != nil {
				return err
			}

			decider, err := reg.NewDecider(name, session.Seed())
			if err != nil {
				return err
			}

			log := a.logger.Named("run").With(zap.String("session", session.ID()))
			log.Debug("session started",
				zap.Int64("seed", session.Seed()),
				zap.String("participant", decider.Name()),
				zap.Bool("weighted", weighted),
				zap.Stringer("on_exhaust", policy))

			outcomes, err := participant.Run(cmd.Context(), session, decider)
			if err != nil {
				return err
			}
			log.Info("session finished",
				zap.Int64("seed", session.Seed()),
				zap.Int("trials", len(outcomes)),
				zap.Int64("balance", session.Balance()))

			if err := writeCSV(cmd, out, session); err != nil {
				return err
			}
			return exportTrials(cmd, a, session)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&name, "participant", "p", "learner", `participant: "random" or a profile id`)
	f.StringVar(&profilesPath, "profiles", "", "JSON file with extra participant profiles")
	f.BoolVar(&weighted, "weighted", false, "draw with replacement instead of dealing finite decks")
	f.BoolVar(&lock, "lock", false, "retire a finite deck once it is empty instead of reshuffling")
	f.StringVarP(&out, "out", "o", "-", `CSV output file ("-" for stdout)`)
	f.Int("trials", iowa.DefaultMaxTrials, "number of trials")
	f.Int64("balance", iowa.DefaultStartingBalance, "starting balance")
	f.Int64("seed", 0, "session seed (random when unset)")
	_ = a.v.BindPFlag(config.KeySessionTrials, f.Lookup("trials"))
	_ = a.v.BindPFlag(config.KeySessionBalance, f.Lookup("balance"))
	_ = a.v.BindPFlag(config.KeySessionSeed, f.Lookup("seed"))
	return cmd
}

func writeCSV(cmd *cobra.Command, out string, session *iowa.Session) error {
	var w io.Writer = cmd.OutOrStdout()
	if out != "" && out != "-" {
		f, err := os.Create(out)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	if err := session.Recorder().WriteCSV(w); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}

func exportTrials(cmd *cobra.Command, a *app, session *iowa.Session) error {
	if a.cfg.Export.Mode == export.ModeNone {
		return nil
	}
	sink, err := export.NewSink(a.cfg.Export.Mode, a.cfg.Export.Options(), a.logger)
	if err != nil {
		return fmt.Errorf("open %s sink: %w", a.cfg.Export.Mode, err)
	}
	defer sink.Close()
	return sink.WriteIowa(cmd.Context(), session.ID(), session.Recorder().Records())
}
