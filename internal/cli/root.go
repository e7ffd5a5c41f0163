package cli

import (
	"github.com/hpcv/vrpninput/internal/logging"
	"github.com/hpcv/vrpninput/internal/platform"
	"github.com/hpcv/vrpninput/internal/settings"
	"github.com/spf13/cobra"
)

// globalOptions are the persistent flags shared by every command.
type globalOptions struct {
	logLevel    string
	json        bool
	settingsDir string
}

func (o *globalOptions) settingsPaths() []string {
	if o.settingsDir != "" {
		return []string{o.settingsDir}
	}
	return settings.SearchPaths()
}

func (o *globalOptions) settingsFor(p platform.Platform) (settings.Settings, error) {
	return settings.Load(o.settingsPaths(), p)
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	cmd := &cobra.Command{
		Use:   "vrpnbuild",
		Short: "Resolve build rules for the VRPN input plugin",
		Long: `vrpnbuild computes the include paths, library paths and link inputs the
VRPN input plugin needs for each target platform, and checks the plugin's
VRPNConfig.ini device file.

Defaults can be kept in vrpnbuild.conf in the working directory or in
~/.config/vrpnbuild; command-line flags always win.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := opts.logLevel
			if !cmd.Flags().Changed("log-level") {
				s, err := opts.settingsFor(platform.Unknown)
				if err != nil {
					return err
				}
				level = s.LogLevel
			}
			logging.InitWriter(cmd.ErrOrStderr(), level)
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	cmd.PersistentFlags().BoolVar(&opts.json, "json", false, "Output in JSON format")
	cmd.PersistentFlags().StringVar(&opts.settingsDir, "settings-dir", "", "Directory containing "+settings.FileName)

	cmd.AddCommand(newResolveCmd(opts))
	cmd.AddCommand(newRulesCmd(opts))
	cmd.AddCommand(newGraphCmd(opts))
	cmd.AddCommand(newPlatformsCmd(opts))
	cmd.AddCommand(newDevicesCmd(opts))
	cmd.AddCommand(newLocateCmd(opts))
	cmd.AddCommand(newVersionCmd())
	return cmd
}

// Execute runs the root command
func Execute() error {
	return newRootCmd().Execute()
}
