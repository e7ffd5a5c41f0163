package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/hpcv/vrpninput/internal/ir"
	"github.com/hpcv/vrpninput/internal/platform"
	"github.com/hpcv/vrpninput/internal/resolver"
	"github.com/spf13/cobra"
)

// resolvedTarget is one entry of the resolve output.
type resolvedTarget struct {
	Requested string `json:"requested"`
	ir.ResolvedPaths
}

func newResolveCmd(opts *globalOptions) *cobra.Command {
	flags := &targetFlags{}
	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Print include directories and link inputs for target platforms",
		Long: `Resolves the VRPN SDK header directories, library search paths and
library artifacts for each requested platform.

An unsupported platform resolves to no link inputs. Pass --strict to make
that an error instead.

  vrpnbuild resolve -p Linux --root /plugin/VRPNInput
  vrpnbuild resolve -p Win64,Mac --layout external --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			targets, err := flags.targets(cmd, opts)
			if err != nil {
				return err
			}

			var results []resolvedTarget
			var errs []error
			for _, t := range targets {
				res := resolver.Resolve(t.Platform, t.ModuleRoot, t.Layout)
				results = append(results, resolvedTarget{Requested: t.Requested, ResolvedPaths: res})
				if t.Strict {
					errs = append(errs, resolver.Err(res))
				}
			}

			out := cmd.OutOrStdout()
			if opts.json {
				if err := writeJSON(out, results); err != nil {
					return err
				}
			} else {
				for _, res := range results {
					renderResolved(out, res)
				}
			}
			return errors.Join(errs...)
		},
	}
	flags.register(cmd)
	return cmd
}

func renderResolved(w io.Writer, res resolvedTarget) {
	if res.Platform == platform.Unknown && res.Requested != "" {
		fmt.Fprintf(w, "%s\n", res.Requested)
	} else {
		fmt.Fprintf(w, "%s\n", res.Platform)
	}
	writeList(w, "include", res.IncludeDirs)
	writeList(w, "libpath", res.LibraryPaths)
	writeList(w, "link", res.LibraryArtifacts)
	if res.Unsupported {
		fmt.Fprintln(w, "  unsupported platform: nothing will be linked")
	}
}
