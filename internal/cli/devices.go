package cli

import (
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/hpcv/vrpninput/internal/devconfig"
	"github.com/hpcv/vrpninput/internal/logging"
	"github.com/spf13/cobra"
)

// locateFlags select the device config file.
type locateFlags struct {
	projectDir       string
	enginePluginsDir string
	pluginPath       string
	commandLine      string
}

func (f *locateFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.projectDir, "project", "", "Project directory (looks in <project>/Config)")
	cmd.Flags().StringVar(&f.enginePluginsDir, "engine-plugins", "", "Engine Plugins directory")
	cmd.Flags().StringVar(&f.pluginPath, "plugin-path", "", "Plugin location below the engine plugins directory")
	cmd.Flags().StringVar(&f.commandLine, "command-line", "", "Engine command line to read VRPNConfigFile= and VRPNEnabledDevices= from")
}

// resolve returns the config path and the enabled-device filter.
func (f *locateFlags) resolve(args []string, opts *globalOptions) (string, []string, error) {
	cl := devconfig.ParseCommandLine(f.commandLine)
	if len(args) > 0 {
		cl.ConfigFile = args[0]
	}

	pluginPath := f.pluginPath
	if pluginPath == "" {
		s, err := opts.settingsFor(hostPlatform())
		if err != nil {
			return "", nil, err
		}
		pluginPath = s.PluginPath
	}

	path, err := devconfig.Locate(devconfig.LocateOptions{
		ConfigFile:       cl.ConfigFile,
		ProjectDir:       f.projectDir,
		EnginePluginsDir: f.enginePluginsDir,
		PluginPath:       pluginPath,
	})
	if err != nil {
		return "", nil, err
	}
	return path, cl.EnabledDevices, nil
}

func newDevicesCmd(opts *globalOptions) *cobra.Command {
	flags := &locateFlags{}
	var enabled []string
	var strict, watch bool

	cmd := &cobra.Command{
		Use:   "devices [config-file]",
		Short: "Check a VRPNConfig.ini device file",
		Long: `Parses a VRPNConfig.ini file and lists the devices the input plugin would
create from it. Sections the plugin would skip are reported as problems.

Without a file argument the file is located the way the plugin does it:
VRPNConfigFile= on the engine command line, then <project>/Config, then
the plugin's Config directory below the engine plugins directory.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, fromCmdline, err := flags.resolve(args, opts)
			if err != nil {
				return err
			}
			if len(enabled) == 0 {
				enabled = fromCmdline
			}

			out := cmd.OutOrStdout()
			if watch {
				ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
				defer stop()
				fmt.Fprintf(out, "Watching %s (Ctrl-C to stop)\n", path)
				return devconfig.Watch(ctx, path, enabled, func(s devconfig.Snapshot) {
					if err := renderSnapshot(out, opts.json, s); err != nil {
						logging.Warn("failed to render devices", "file", path, "error", err)
					}
				})
			}

			snap := devconfig.LoadDevices(path, enabled)
			if err := renderSnapshot(out, opts.json, snap); err != nil {
				return err
			}
			if snap.Err != nil {
				return snap.Err
			}
			if strict && len(snap.Problems) > 0 {
				return fmt.Errorf("%s: %d problem(s) found", path, len(snap.Problems))
			}
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().StringSliceVar(&enabled, "enabled", nil, "Only enable these device sections")
	cmd.Flags().BoolVar(&strict, "strict", false, "Fail when any section has problems")
	cmd.Flags().BoolVar(&watch, "watch", false, "Re-check the file whenever it changes")
	return cmd
}

func renderSnapshot(w io.Writer, asJSON bool, s devconfig.Snapshot) error {
	if s.Err != nil {
		if asJSON {
			return writeJSON(w, map[string]string{"error": s.Err.Error()})
		}
		fmt.Fprintf(w, "error: %v\n", s.Err)
		return nil
	}

	if asJSON {
		return writeJSON(w, struct {
			Devices  []devconfig.Device  `json:"devices"`
			Problems []devconfig.Problem `json:"problems"`
		}{s.Devices, s.Problems})
	}

	for _, d := range s.Devices {
		state := "enabled"
		if !d.Enabled {
			state = "disabled"
		}
		fmt.Fprintf(w, "[%s] %s at %s (%s)\n", d.Section, d.Type, d.Address, state)
		for _, key := range d.Keys() {
			fmt.Fprintf(w, "  key %s\n", key)
		}
		for _, t := range d.Trackers {
			if t.IsMotionController() {
				fmt.Fprintf(w, "  motion controller: player %d, %s hand (%s)\n", t.PlayerID, t.Hand, t.Name)
			}
		}
	}
	for _, p := range s.Problems {
		fmt.Fprintf(w, "problem: %s\n", p)
	}
	fmt.Fprintf(w, "%d device(s), %d problem(s)\n", len(s.Devices), len(s.Problems))
	return nil
}

func newLocateCmd(opts *globalOptions) *cobra.Command {
	flags := &locateFlags{}
	cmd := &cobra.Command{
		Use:   "locate",
		Short: "Show which VRPNConfig.ini the plugin would load",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, enabled, err := flags.resolve(nil, opts)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if opts.json {
				return writeJSON(out, map[string]any{"path": path, "enabledDevices": enabled})
			}
			fmt.Fprintln(out, path)
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}
