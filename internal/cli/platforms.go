package cli

import (
	"fmt"

	"github.com/hpcv/vrpninput/internal/platform"
	"github.com/spf13/cobra"
)

func newPlatformsCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "platforms",
		Short: "List supported target platforms",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			host := hostPlatform()
			if opts.json {
				return writeJSON(out, platform.Known())
			}
			for _, p := range platform.Known() {
				marker := ""
				if p == host {
					marker = " (host)"
				}
				fmt.Fprintf(out, "%s%s\n", p, marker)
			}
			return nil
		},
	}
}
