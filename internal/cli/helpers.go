package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/hpcv/vrpninput/internal/logging"
	"github.com/hpcv/vrpninput/internal/platform"
	"github.com/hpcv/vrpninput/internal/resolver"
	"github.com/hpcv/vrpninput/internal/rules"
	"github.com/spf13/cobra"
)

func hostPlatform() platform.Platform {
	return platform.Host()
}

// targetFlags are the flags of every command that resolves build targets.
type targetFlags struct {
	platforms  []string
	root       string
	layout     string
	pluginPath string
	strict     bool
}

func (f *targetFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringSliceVarP(&f.platforms, "platform", "p", nil, "Target platform(s); defaults to the host platform")
	cmd.Flags().StringVar(&f.root, "root", "", "Module root directory")
	cmd.Flags().StringVar(&f.layout, "layout", "", "SDK layout: thirdparty or external")
	cmd.Flags().StringVar(&f.pluginPath, "plugin-path", "", "Plugin location below the engine plugins directory")
	cmd.Flags().BoolVar(&f.strict, "strict", false, "Fail on unsupported platforms instead of linking nothing")
}

// targets builds one rules.Target per requested platform. Values from
// vrpnbuild.conf fill in anything not given on the command line.
func (f *targetFlags) targets(cmd *cobra.Command, opts *globalOptions) ([]rules.Target, error) {
	names := f.platforms
	if len(names) == 0 {
		names = []string{hostPlatform().String()}
	}

	targets := make([]rules.Target, 0, len(names))
	for _, name := range names {
		p := platform.ParseLenient(name)
		if !p.Supported() {
			logging.Warn("unsupported platform requested", "platform", name)
		}

		s, err := opts.settingsFor(p)
		if err != nil {
			return nil, err
		}

		root := s.ModuleRoot
		if cmd.Flags().Changed("root") {
			root = f.root
		}
		layoutName := s.Layout
		if cmd.Flags().Changed("layout") {
			layoutName = f.layout
		}
		layout, err := resolver.ParseLayout(layoutName)
		if err != nil {
			return nil, err
		}
		pluginPath := s.PluginPath
		if cmd.Flags().Changed("plugin-path") {
			pluginPath = f.pluginPath
		}
		strict := s.Strict
		if cmd.Flags().Changed("strict") {
			strict = f.strict
		}

		targets = append(targets, rules.Target{
			Requested:  name,
			Platform:   p,
			ModuleRoot: root,
			Layout:     layout,
			PluginPath: pluginPath,
			Strict:     strict,
		})
	}
	return targets, nil
}

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// writeList prints label followed by items, or "(none)".
func writeList(w io.Writer, label string, items []string) {
	if len(items) == 0 {
		fmt.Fprintf(w, "  %-10s (none)\n", label+":")
		return
	}
	for i, item := range items {
		if i == 0 {
			fmt.Fprintf(w, "  %-10s %s\n", label+":", item)
			continue
		}
		fmt.Fprintf(w, "  %-10s %s\n", "", item)
	}
}
