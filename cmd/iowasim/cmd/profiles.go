package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"iowa-lite/participant"
)

func newProfilesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "profiles",
		Short: "List the built-in participant profiles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tEXPLORATION\tLOSS AVERSION\tRANDOMNESS\tTAGLINE")
			for _, p := range participant.Builtin().All() {
				fmt.Fprintf(tw, "%s\t%.2f\t%.2f\t%.2f\t%s\n",
					p.ID, p.Profile.Exploration, p.Profile.LossAversion, p.Profile.Randomness, p.Tagline)
			}
			return tw.Flush()
		},
	}
}
