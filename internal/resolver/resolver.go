// Package resolver maps a target platform and module root to the header
// directories and link inputs of the prebuilt VRPN SDK.
//
// Resolution is a pure function of its inputs. It performs no filesystem
// access; CheckRoot is provided separately for callers that want to verify
// the module root before resolving.
package resolver

import (
	"errors"
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/hpcv/vrpninput/internal/ir"
	"github.com/hpcv/vrpninput/internal/platform"
)

var (
	// ErrUnsupportedPlatform marks a resolution that produced no link inputs.
	ErrUnsupportedPlatform = errors.New("unsupported platform")
	// ErrInvalidLayout is returned by ParseLayout.
	ErrInvalidLayout = errors.New("invalid layout")
)

// Layout selects where the SDK lives relative to the module root.
type Layout int

const (
	// LayoutThirdParty is the plugin-embedded tree:
	// ThirdParty/VRPN/Include and ThirdParty/VRPN/Lib/<Platform>.
	LayoutThirdParty Layout = iota
	// LayoutExternal is the standalone SDK tree: include and lib/<platform>.
	LayoutExternal
)

func (l Layout) String() string {
	switch l {
	case LayoutExternal:
		return "external"
	case LayoutThirdParty:
		return "thirdparty"
	}
	return fmt.Sprintf("Layout(%d)", int(l))
}

// MarshalText encodes the layout name.
func (l Layout) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// UnmarshalText decodes a layout name.
func (l *Layout) UnmarshalText(text []byte) error {
	v, err := ParseLayout(string(text))
	if err != nil {
		return err
	}
	*l = v
	return nil
}

// ParseLayout converts a case-insensitive layout name.
func ParseLayout(s string) (Layout, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "thirdparty", "third-party", "":
		return LayoutThirdParty, nil
	case "external":
		return LayoutExternal, nil
	}
	return 0, fmt.Errorf("%w: %q (expected thirdparty or external)", ErrInvalidLayout, s)
}

// linkSpec is the per-platform part of a layout.
type linkSpec struct {
	dir       string
	libs      []string
	bareNames bool // import libraries found through the search path
}

type layoutSpec struct {
	include []string
	libBase []string
	links   map[platform.Platform]linkSpec
}

var layouts = map[Layout]layoutSpec{
	LayoutThirdParty: {
		include: []string{"ThirdParty", "VRPN", "Include"},
		libBase: []string{"ThirdParty", "VRPN", "Lib"},
		links: map[platform.Platform]linkSpec{
			platform.Win64: {dir: "Win64", libs: []string{"vrpn.lib", "quat.lib"}, bareNames: true},
			platform.Win32: {dir: "Win64", libs: []string{"vrpn.lib", "quat.lib"}, bareNames: true},
			platform.Linux: {dir: "Linux", libs: []string{"vrpn.a", "quat.a"}},
			platform.Mac:   {dir: "Mac", libs: []string{"libvrpn.a", "quat.a"}},
		},
	},
	// The standalone SDK rules never linked quat on Windows.
	LayoutExternal: {
		include: []string{"include"},
		libBase: []string{"lib"},
		links: map[platform.Platform]linkSpec{
			platform.Win64: {dir: "win64", libs: []string{"vrpn.lib"}, bareNames: true},
			platform.Win32: {dir: "win64", libs: []string{"vrpn.lib"}, bareNames: true},
			platform.Linux: {dir: "linux", libs: []string{"vrpn.a", "quat.a"}},
			platform.Mac:   {dir: "mac", libs: []string{"libvrpn.a", "quat.a"}},
		},
	},
}

// Resolve computes the include directories and link inputs for p.
//
// An unsupported platform does not fail: the result carries the include
// directory, empty link lists and Unsupported set. Use Err or ResolveStrict
// to turn that into an error. A layout other than LayoutThirdParty or
// LayoutExternal resolves as LayoutThirdParty; ParseLayout never yields one.
func Resolve(p platform.Platform, moduleRoot string, layout Layout) ir.ResolvedPaths {
	spec, ok := layouts[layout]
	if !ok {
		spec = layouts[LayoutThirdParty]
	}
	root := strings.ReplaceAll(moduleRoot, `\`, "/")

	out := ir.ResolvedPaths{
		Platform:         p,
		IncludeDirs:      []string{join(root, spec.include...)},
		LibraryPaths:     []string{},
		LibraryArtifacts: []string{},
	}

	link, ok := spec.links[p]
	if !ok {
		out.Unsupported = true
		return out
	}

	libDir := join(root, append(append([]string{}, spec.libBase...), link.dir)...)
	out.LibraryPaths = append(out.LibraryPaths, libDir)
	for _, lib := range link.libs {
		if link.bareNames {
			out.LibraryArtifacts = append(out.LibraryArtifacts, lib)
		} else {
			out.LibraryArtifacts = append(out.LibraryArtifacts, path.Join(libDir, lib))
		}
	}
	return out
}

// ResolveStrict is Resolve that reports an unsupported platform as an error.
func ResolveStrict(p platform.Platform, moduleRoot string, layout Layout) (ir.ResolvedPaths, error) {
	res := Resolve(p, moduleRoot, layout)
	return res, Err(res)
}

// Err returns an error wrapping ErrUnsupportedPlatform when res has no link
// inputs because its platform is not supported.
func Err(res ir.ResolvedPaths) error {
	if res.Unsupported {
		return fmt.Errorf("%w: %s", ErrUnsupportedPlatform, res.Platform)
	}
	return nil
}

// CheckRoot verifies that root is a readable directory.
func CheckRoot(root string) error {
	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("module root: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("module root %s is not a directory", root)
	}
	f, err := os.Open(root)
	if err != nil {
		return fmt.Errorf("module root: %w", err)
	}
	return f.Close()
}

func join(root string, elem ...string) string {
	return path.Join(append([]string{root}, elem...)...)
}
