// Package settings loads vrpnbuild.conf, the tool's own defaults file.
//
// The file uses the DEFAULT-section ini format of github.com/revel/config.
// A section named after a platform (for example [Win64]) overrides the
// defaults for that platform only:
//
//	module.root = /plugins/VRPNInput
//	module.layout = thirdparty
//	log.level = info
//
//	[Win64]
//	module.strict = true
package settings

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hpcv/vrpninput/internal/platform"
	"github.com/revel/config"
)

// FileName is the settings file name looked up in each search path.
const FileName = "vrpnbuild.conf"

// Settings are the resolved tool defaults.
type Settings struct {
	ModuleRoot string
	Layout     string
	Strict     bool
	PluginPath string
	LogLevel   string
	// Source is the file the settings came from, empty for built-ins.
	Source string
}

// Defaults returns the built-in settings.
func Defaults() Settings {
	return Settings{
		ModuleRoot: ".",
		Layout:     "thirdparty",
		PluginPath: "HPCV/VRPNInput",
		LogLevel:   "warn",
	}
}

// SearchPaths returns the directories searched for FileName, in order.
func SearchPaths() []string {
	paths := []string{"."}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "vrpnbuild"))
	}
	return paths
}

// Load reads the first FileName found in paths and applies the section for
// p on top of DEFAULT. No file at all yields Defaults.
func Load(paths []string, p platform.Platform) (Settings, error) {
	source := ""
	for _, dir := range paths {
		candidate := filepath.Join(dir, FileName)
		if info, err := os.Stat(candidate); err == nil && info.Mode().IsRegular() {
			source = candidate
			break
		}
	}
	if source == "" {
		return Defaults(), nil
	}

	ctx, err := config.LoadContext(FileName, []string{filepath.Dir(source)})
	if err != nil {
		return Settings{}, fmt.Errorf("failed to read %s: %w", source, err)
	}
	s := FromContext(ctx, p)
	s.Source = source
	return s, nil
}

// FromContext reads settings from an already loaded context.
func FromContext(ctx *config.Context, p platform.Platform) Settings {
	if p.Supported() && ctx.HasSection(p.String()) {
		ctx.SetSection(p.String())
	}

	d := Defaults()
	return Settings{
		ModuleRoot: ctx.StringDefault("module.root", d.ModuleRoot),
		Layout:     ctx.StringDefault("module.layout", d.Layout),
		Strict:     ctx.BoolDefault("module.strict", d.Strict),
		PluginPath: ctx.StringDefault("plugin.path", d.PluginPath),
		LogLevel:   ctx.StringDefault("log.level", d.LogLevel),
	}
}
