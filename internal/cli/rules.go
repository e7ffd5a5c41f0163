package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/hpcv/vrpninput/internal/ir"
	"github.com/hpcv/vrpninput/internal/rules"
	"github.com/spf13/cobra"
)

func newRulesCmd(opts *globalOptions) *cobra.Command {
	flags := &targetFlags{}
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Print the full module rules for target platforms",
		Long: `Prints the module rules of the external VRPN SDK module and of the
VRPNInput plugin module for each requested platform, together with a
fingerprint that changes whenever the resolved rules change.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			targets, err := flags.targets(cmd, opts)
			if err != nil {
				return err
			}

			results := rules.ResolveAll(cmd.Context(), targets)
			errs := make([]error, 0, len(results))
			for _, r := range results {
				errs = append(errs, r.Err)
			}

			out := cmd.OutOrStdout()
			if opts.json {
				type entry struct {
					rules.Result
					Fingerprint string `json:"fingerprint"`
				}
				entries := make([]entry, 0, len(results))
				for _, r := range results {
					fp, err := rules.Fingerprint(r)
					if err != nil {
						return err
					}
					entries = append(entries, entry{Result: r, Fingerprint: fp})
				}
				if err := writeJSON(out, entries); err != nil {
					return err
				}
				return errors.Join(errs...)
			}

			for _, r := range results {
				if r.Err != nil {
					fmt.Fprintf(out, "%s: %v\n\n", r.Target.Platform, r.Err)
					continue
				}
				fp, err := rules.Fingerprint(r)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%s (fingerprint %s)\n", r.Target.Platform, fp[:12])
				renderModule(out, r.SDK)
				renderModule(out, r.Input)
				fmt.Fprintln(out)
			}
			return errors.Join(errs...)
		},
	}
	flags.register(cmd)
	return cmd
}

func renderModule(w io.Writer, m ir.ModuleRules) {
	fmt.Fprintf(w, " module %s (%s)\n", m.Name, m.Type)
	sections := []struct {
		label string
		items []string
	}{
		{"PublicIncludePaths", m.PublicIncludePaths},
		{"PublicSystemIncludePaths", m.PublicSystemIncludePaths},
		{"PrivateIncludePaths", m.PrivateIncludePaths},
		{"PublicLibraryPaths", m.PublicLibraryPaths},
		{"PublicAdditionalLibraries", m.PublicAdditionalLibraries},
		{"PublicDependencyModuleNames", m.PublicDependencyModuleNames},
		{"PrivateDependencyModuleNames", m.PrivateDependencyModuleNames},
		{"PrivateIncludePathModuleNames", m.PrivateIncludePathModuleNames},
		{"DynamicallyLoadedModuleNames", m.DynamicallyLoadedModuleNames},
	}
	for _, s := range sections {
		if len(s.items) == 0 {
			continue
		}
		fmt.Fprintf(w, "   %s:\n", s.label)
		for _, item := range s.items {
			fmt.Fprintf(w, "     %s\n", item)
		}
	}
	if len(m.RuntimeDependencies) > 0 {
		fmt.Fprintf(w, "   RuntimeDependencies:\n")
		for _, d := range m.RuntimeDependencies {
			fmt.Fprintf(w, "     %s\n", d.Path)
		}
	}
}
