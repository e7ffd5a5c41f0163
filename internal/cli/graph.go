package cli

import (
	"fmt"
	"io"

	"github.com/hpcv/vrpninput/internal/ir"
	"github.com/hpcv/vrpninput/internal/rules"
	"github.com/spf13/cobra"
)

func newGraphCmd(opts *globalOptions) *cobra.Command {
	flags := &targetFlags{}
	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Output the module dependency graph in DOT format",
		Long: `Generates the dependency graph of the plugin modules for one platform
in Graphviz DOT format. Pipe the output to 'dot' to generate an image:

  vrpnbuild graph -p Win64 | dot -Tpng > modules.png`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			targets, err := flags.targets(cmd, opts)
			if err != nil {
				return err
			}
			if len(targets) != 1 {
				return fmt.Errorf("graph takes exactly one platform, got %d", len(targets))
			}

			res := rules.Resolve(targets[0])
			if res.Err != nil {
				return res.Err
			}
			writeDOT(cmd.OutOrStdout(), res.Input, res.SDK)
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

// writeDOT prints the graph of input's dependencies. Library artifacts of
// sdk are attached to the sdk node.
func writeDOT(w io.Writer, input, sdk ir.ModuleRules) {
	fmt.Fprintln(w, "digraph vrpnbuild {")
	fmt.Fprintln(w, "  rankdir = \"BT\";")
	fmt.Fprintln(w, "  node [shape = rect];")
	fmt.Fprintln(w)

	fmt.Fprintf(w, "  %q;\n", input.Name)
	for _, dep := range input.PublicDependencyModuleNames {
		fmt.Fprintf(w, "  %q;\n", dep)
	}
	for _, lib := range sdk.PublicAdditionalLibraries {
		fmt.Fprintf(w, "  %q [shape = note];\n", lib)
	}
	fmt.Fprintln(w)

	for _, dep := range input.PublicDependencyModuleNames {
		fmt.Fprintf(w, "  %q -> %q;\n", input.Name, dep)
	}
	for _, dep := range input.PrivateIncludePathModuleNames {
		fmt.Fprintf(w, "  %q -> %q [style = dashed];\n", input.Name, dep)
	}
	for _, lib := range sdk.PublicAdditionalLibraries {
		fmt.Fprintf(w, "  %q -> %q [style = dotted];\n", sdk.Name, lib)
	}

	fmt.Fprintln(w, "}")
}
