package devconfig

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hpcv/vrpninput/internal/logging"
)

// ErrConfigNotFound is returned by Locate when no candidate file exists.
var ErrConfigNotFound = errors.New("VRPN configuration file not found")

// FileName is the conventional device config name.
const FileName = "VRPNConfig.ini"

// LocateOptions lists the places a device config may live.
type LocateOptions struct {
	// ConfigFile is an explicit path; when set no other place is tried.
	ConfigFile string
	// ProjectDir is the directory holding the project file.
	ProjectDir string
	// EnginePluginsDir is the engine's Plugins directory.
	EnginePluginsDir string
	// PluginPath is the plugin location below EnginePluginsDir.
	PluginPath string
}

// Candidates returns the paths Locate would try, in order.
func (o LocateOptions) Candidates() []string {
	if o.ConfigFile != "" {
		return []string{o.ConfigFile}
	}
	var out []string
	if o.ProjectDir != "" {
		out = append(out, filepath.Join(o.ProjectDir, "Config", FileName))
	}
	if o.EnginePluginsDir != "" {
		pluginPath := o.PluginPath
		if pluginPath == "" {
			pluginPath = filepath.Join("HPCV", "VRPNInput")
		}
		out = append(out, filepath.Join(o.EnginePluginsDir, filepath.FromSlash(pluginPath), "Config", FileName))
	}
	return out
}

// Locate returns the first candidate that is an existing regular file.
func Locate(o LocateOptions) (string, error) {
	candidates := o.Candidates()
	for _, c := range candidates {
		info, err := os.Stat(c)
		if err == nil && info.Mode().IsRegular() {
			logging.Info("loading VRPN configuration file", "path", c)
			return c, nil
		}
		logging.Warn("could not find VRPN configuration file", "path", c)
	}
	return "", fmt.Errorf("%w (tried %s)", ErrConfigNotFound, strings.Join(candidates, ", "))
}

// CommandLine holds the plugin's command-line switches.
type CommandLine struct {
	ConfigFile     string
	EnabledDevices []string
}

// ParseCommandLine extracts VRPNConfigFile= and VRPNEnabledDevices= from an
// engine command line.
func ParseCommandLine(cmdline string) CommandLine {
	var cl CommandLine
	if v, ok := lookupSwitch(cmdline, "VRPNConfigFile"); ok {
		cl.ConfigFile = v
	}
	if v, ok := lookupSwitch(cmdline, "VRPNEnabledDevices"); ok {
		for _, name := range strings.Split(v, ",") {
			if name = strings.TrimSpace(name); name != "" {
				cl.EnabledDevices = append(cl.EnabledDevices, name)
			}
		}
	}
	return cl
}
