// Package platform defines the closed set of target platforms a VRPN build
// can be configured for.
package platform

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

// ErrUnknownPlatform is returned by Parse for names outside the enumeration.
var ErrUnknownPlatform = errors.New("unknown platform")

// Platform identifies a build target.
type Platform int

const (
	Unknown Platform = iota
	Win64
	Win32
	Linux
	Mac
)

var names = map[Platform]string{
	Win64: "Win64",
	Win32: "Win32",
	Linux: "Linux",
	Mac:   "Mac",
}

var aliases = map[string]Platform{
	"win64":   Win64,
	"windows": Win64,
	"win":     Win64,
	"win32":   Win32,
	"x86":     Win32,
	"linux":   Linux,
	"mac":     Mac,
	"macos":   Mac,
	"darwin":  Mac,
	"osx":     Mac,
}

// Known returns the supported platforms in a deterministic order.
func Known() []Platform {
	return []Platform{Win64, Win32, Linux, Mac}
}

// String returns the canonical platform name.
func (p Platform) String() string {
	if n, ok := names[p]; ok {
		return n
	}
	return "Unknown"
}

// IsWindows reports whether p is one of the Windows targets.
func (p Platform) IsWindows() bool {
	return p == Win64 || p == Win32
}

// Supported reports whether p is a member of the enumeration.
func (p Platform) Supported() bool {
	_, ok := names[p]
	return ok
}

// MarshalText encodes the canonical name.
func (p Platform) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText decodes a platform name, accepting the same aliases as Parse.
func (p *Platform) UnmarshalText(text []byte) error {
	v, err := Parse(string(text))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// Parse converts a case-insensitive platform name to a Platform.
func Parse(s string) (Platform, error) {
	if p, ok := aliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return p, nil
	}
	return Unknown, fmt.Errorf("%w: %q", ErrUnknownPlatform, s)
}

// ParseLenient is Parse without the error: unrecognised names yield Unknown.
func ParseLenient(s string) Platform {
	p, _ := Parse(s)
	return p
}

// Host returns the platform of the running process.
func Host() Platform {
	return fromGOOS(runtime.GOOS, runtime.GOARCH)
}

func fromGOOS(goos, goarch string) Platform {
	switch goos {
	case "windows":
		if goarch == "386" {
			return Win32
		}
		return Win64
	case "linux":
		return Linux
	case "darwin":
		return Mac
	}
	return Unknown
}
