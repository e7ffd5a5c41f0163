// Package rules assembles the module-rule descriptors for the VRPN SDK
// module and the VRPNInput plugin module.
package rules

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"path"
	"sync"

	"github.com/hpcv/vrpninput/internal/ir"
	"github.com/hpcv/vrpninput/internal/logging"
	"github.com/hpcv/vrpninput/internal/platform"
	"github.com/hpcv/vrpninput/internal/resolver"
)

const (
	SDKModuleName   = "VRPN"
	InputModuleName = "VRPNInput"

	// DefaultPluginPath is the plugin location below the engine plugins dir.
	DefaultPluginPath = "HPCV/VRPNInput"
)

var inputPublicDependencies = []string{
	"Core",
	"CoreUObject",
	"Engine",
	"InputCore",
	"InputDevice",
	"Slate",
	"SlateCore",
	SDKModuleName,
}

// Target is one build configuration to resolve.
type Target struct {
	// Requested is the platform name as given by the caller, kept when it
	// does not parse to a known Platform.
	Requested  string            `json:"requested,omitempty"`
	Platform   platform.Platform `json:"platform"`
	ModuleRoot string            `json:"moduleRoot"`
	Layout     resolver.Layout   `json:"layout"`
	PluginPath string            `json:"pluginPath,omitempty"`
	// Strict turns an unsupported platform into an error instead of empty
	// link inputs.
	Strict bool `json:"strict,omitempty"`
}

func (t Target) pluginPath() string {
	if t.PluginPath == "" {
		return DefaultPluginPath
	}
	return t.PluginPath
}

// SDKModule builds the external module wrapping the prebuilt SDK.
func SDKModule(t Target) (ir.ModuleRules, error) {
	paths := resolver.Resolve(t.Platform, t.ModuleRoot, t.Layout)
	if paths.Unsupported {
		if t.Strict {
			return ir.ModuleRules{}, fmt.Errorf("module %s: %w", SDKModuleName, resolver.Err(paths))
		}
		logging.Debug("no link inputs for platform", "module", SDKModuleName, "platform", t.Platform.String())
	}

	m := empty(SDKModuleName, ir.ModuleExternal)
	m.PublicSystemIncludePaths = append(m.PublicSystemIncludePaths, paths.IncludeDirs...)
	m.PublicLibraryPaths = append(m.PublicLibraryPaths, paths.LibraryPaths...)
	m.PublicAdditionalLibraries = append(m.PublicAdditionalLibraries, paths.LibraryArtifacts...)
	return m, nil
}

// InputModule builds the plugin module that depends on the SDK module.
func InputModule(t Target) ir.ModuleRules {
	m := empty(InputModuleName, ir.ModuleCPlusPlus)
	m.PrivateIncludePaths = append(m.PrivateIncludePaths, InputModuleName+"/Private")
	m.PublicDependencyModuleNames = append(m.PublicDependencyModuleNames, inputPublicDependencies...)
	m.PrivateIncludePathModuleNames = append(m.PrivateIncludePathModuleNames, "HeadMountedDisplay")

	// The device config is read at startup, so it ships with Windows builds.
	if t.Platform.IsWindows() {
		m.RuntimeDependencies = append(m.RuntimeDependencies, ir.RuntimeDependency{
			Path: path.Join("$(EngineDir)", "Plugins", t.pluginPath(), "Config", "VRPNConfig.ini"),
		})
	}
	return m
}

func empty(name string, typ ir.ModuleType) ir.ModuleRules {
	return ir.ModuleRules{
		Name:                          name,
		Type:                          typ,
		PublicIncludePaths:            []string{},
		PublicSystemIncludePaths:      []string{},
		PrivateIncludePaths:           []string{},
		PublicLibraryPaths:            []string{},
		PublicAdditionalLibraries:     []string{},
		PublicDependencyModuleNames:   []string{},
		PrivateDependencyModuleNames:  []string{},
		PrivateIncludePathModuleNames: []string{},
		DynamicallyLoadedModuleNames:  []string{},
		RuntimeDependencies:           []ir.RuntimeDependency{},
	}
}

// Result holds everything resolved for one Target.
type Result struct {
	Target Target           `json:"target"`
	Paths  ir.ResolvedPaths `json:"paths"`
	SDK    ir.ModuleRules   `json:"sdk"`
	Input  ir.ModuleRules   `json:"input"`
	Err    error            `json:"-"`
}

// Resolve resolves a single target.
func Resolve(t Target) Result {
	res := Result{
		Target: t,
		Paths:  resolver.Resolve(t.Platform, t.ModuleRoot, t.Layout),
		Input:  InputModule(t),
	}
	res.SDK, res.Err = SDKModule(t)
	return res
}

// ResolveAll resolves targets concurrently. Results are returned in the
// order of targets. Targets not started before ctx is done carry ctx.Err().
func ResolveAll(ctx context.Context, targets []Target) []Result {
	results := make([]Result, len(targets))
	var wg sync.WaitGroup
	for i, t := range targets {
		if err := ctx.Err(); err != nil {
			results[i] = Result{Target: t, Err: err}
			continue
		}
		wg.Add(1)
		go func(i int, t Target) {
			defer wg.Done()
			results[i] = Resolve(t)
		}(i, t)
	}
	wg.Wait()
	return results
}

// Fingerprint returns a stable SHA-256 hex digest of v's JSON encoding.
func Fingerprint(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to encode for fingerprint: %w", err)
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}
