package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"iowa-lite/replay"
)

func newReplayCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "replay <spec.json|->",
		Short: "Rebuild a seeded run from a JSON run spec and print its tape",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}
			var spec replay.RunSpec
			if err := json.Unmarshal(raw, &spec); err != nil {
				return fmt.Errorf("parse run spec: %w", err)
			}

			resp := replay.HandleRequest(replay.MustJSON(replay.Request{Spec: spec}))
			if _, err := cmd.OutOrStdout().Write(append(replay.MustJSON(resp), '\n')); err != nil {
				return err
			}
			if !resp.OK {
				a.logger.Named("replay").Warn("replay rejected",
					zap.Int32("step", resp.Error.StepIndex),
					zap.String("reason", resp.Error.Reason))
				return resp.Error
			}
			return nil
		},
	}
}

func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	return os.ReadFile(path)
}
