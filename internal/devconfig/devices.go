// Package devconfig reads the VRPNConfig.ini file that declares which VRPN
// devices the input plugin connects to and how their channels map to keys.
package devconfig

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hpcv/vrpninput/internal/logging"
	"github.com/hpcv/vrpninput/internal/tracker"
	"gonum.org/v1/gonum/spatial/r3"
)

// DeviceType is the value of a section's Type key.
type DeviceType string

const (
	TypeTracker DeviceType = "Tracker"
	TypeButton  DeviceType = "Button"
	TypeAnalog  DeviceType = "Analog"
)

// Hand is the motion-controller hand a tracker is bound to.
type Hand string

const (
	HandLeft  Hand = "Left"
	HandRight Hand = "Right"
)

// Mapping binds a device-side id to an engine key.
type Mapping struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// TrackerMapping is a Mapping for one tracker sensor.
type TrackerMapping struct {
	Mapping
	PlayerID int      `json:"playerId"`
	Hand     Hand     `json:"hand"`
	Keys     []string `json:"keys"`
}

// IsMotionController reports whether the sensor drives a motion controller.
func (m TrackerMapping) IsMotionController() bool {
	return m.PlayerID >= 0
}

var trackerKeySuffixes = []string{
	"MotionX", "MotionY", "MotionZ",
	"RotationYaw", "RotationPitch", "RotationRoll",
}

// Device is one validated section.
type Device struct {
	Section  string            `json:"section"`
	Type     DeviceType        `json:"type"`
	Address  string            `json:"address"`
	Enabled  bool              `json:"enabled"`
	Buttons  []Mapping         `json:"buttons,omitempty"`
	Channels []Mapping         `json:"channels,omitempty"`
	Trackers []TrackerMapping  `json:"trackers,omitempty"`
	Settings *tracker.Settings `json:"settings,omitempty"`
}

// Keys returns every engine key the device registers.
func (d Device) Keys() []string {
	var keys []string
	for _, m := range d.Buttons {
		keys = append(keys, m.Name)
	}
	for _, m := range d.Channels {
		keys = append(keys, m.Name)
	}
	for _, m := range d.Trackers {
		keys = append(keys, m.Keys...)
	}
	return keys
}

// Problem is a non-fatal issue found while validating a section.
type Problem struct {
	Section string `json:"section"`
	Message string `json:"message"`
}

func (p Problem) String() string {
	return fmt.Sprintf("[%s] %s", p.Section, p.Message)
}

// Devices validates every section. Sections that cannot produce a device are
// skipped and reported as problems. A device is enabled when enabled is
// empty or names its section.
func (f *File) Devices(enabled []string) ([]Device, []Problem) {
	var devices []Device
	var problems []Problem

	report := func(s *Section, format string, args ...any) {
		p := Problem{Section: s.Name, Message: fmt.Sprintf(format, args...)}
		logging.Warn("device config", "file", f.Path, "section", p.Section, "problem", p.Message)
		problems = append(problems, p)
	}

	for _, s := range f.Sections {
		typ, ok := s.Get("Type")
		if !ok {
			report(s, "expected Type; skipping section")
			continue
		}
		addr, ok := s.Get("Address")
		if !ok || addr == "" {
			report(s, "expected Address; skipping section")
			continue
		}

		d := Device{
			Section: s.Name,
			Address: addr,
			Enabled: isEnabled(s.Name, enabled),
		}

		switch DeviceType(typ) {
		case TypeButton:
			d.Type = TypeButton
			d.Buttons = parseMappings(s, "Button", func(msg string) { report(s, "%s", msg) })
			if len(d.Buttons) == 0 {
				report(s, "button device has no valid Button mappings; skipping section")
				continue
			}
		case TypeAnalog:
			d.Type = TypeAnalog
			d.Channels = parseMappings(s, "Channel", func(msg string) { report(s, "%s", msg) })
			if len(d.Channels) == 0 {
				report(s, "analog device has no valid Channel mappings; skipping section")
				continue
			}
		case TypeTracker:
			d.Type = TypeTracker
			settings := parseTrackerSettings(s, func(msg string) { report(s, "%s", msg) })
			d.Settings = &settings
			d.Trackers = parseTrackers(s, func(msg string) { report(s, "%s", msg) })
			if len(d.Trackers) == 0 {
				report(s, "tracker device has no valid Tracker mappings; skipping section")
				continue
			}
		default:
			report(s, "Type should be Tracker, Button or Analog but found %q; skipping section", typ)
			continue
		}

		logging.Debug("device loaded", "section", d.Section, "type", string(d.Type), "address", d.Address, "enabled", d.Enabled)
		devices = append(devices, d)
	}
	return devices, problems
}

func isEnabled(section string, enabled []string) bool {
	if len(enabled) == 0 {
		return true
	}
	for _, e := range enabled {
		if e == section {
			return true
		}
	}
	return false
}

func parseMapping(value string) (Mapping, bool) {
	id, okID := lookupInt(value, "Id")
	name, okName := lookup(value, "Name")
	desc, okDesc := lookup(value, "Description")
	if !okID || !okName || !okDesc || name == "" {
		return Mapping{}, false
	}
	return Mapping{ID: id, Name: name, Description: desc}, true
}

// parseMappings keeps the last mapping for a repeated id at the position of
// the first.
func parseMappings(s *Section, key string, report func(msg string)) []Mapping {
	var out []Mapping
	index := make(map[int]int)
	for _, e := range s.All(key) {
		m, ok := parseMapping(e.Value)
		if !ok {
			report(fmt.Sprintf("could not parse %s; expected %s = (Id=#,Name=String,Description=String)", key, key))
			continue
		}
		if i, dup := index[m.ID]; dup {
			out[i] = m
			continue
		}
		index[m.ID] = len(out)
		out = append(out, m)
	}
	return out
}

func parseTrackers(s *Section, report func(msg string)) []TrackerMapping {
	var out []TrackerMapping
	index := make(map[int]int)
	for _, e := range s.All("Tracker") {
		m, ok := parseMapping(e.Value)
		if !ok {
			report("could not parse Tracker; expected Tracker = (Id=#,Name=String,Description=String)")
			continue
		}
		tm := TrackerMapping{Mapping: m, PlayerID: -1, Hand: HandLeft}
		if pid, ok := lookupInt(e.Value, "PlayerId"); ok {
			tm.PlayerID = pid
		}
		if tm.IsMotionController() {
			if h, ok := lookup(e.Value, "Hand"); ok && h == string(HandRight) {
				tm.Hand = HandRight
			}
		}
		for _, suffix := range trackerKeySuffixes {
			tm.Keys = append(tm.Keys, m.Name+suffix)
		}
		if i, dup := index[m.ID]; dup {
			out[i] = tm
			continue
		}
		index[m.ID] = len(out)
		out = append(out, tm)
	}
	return out
}

func parseTrackerSettings(s *Section, report func(msg string)) tracker.Settings {
	settings := tracker.DefaultSettings()

	if v, ok := s.Get("RotationOffset"); ok {
		axis, okAxis := parseVector(v)
		angle, okAngle := lookupFloat(v, "Angle")
		if okAxis && okAngle && r3.Norm(axis) > 0 {
			settings.RotationOffset = tracker.AxisAngle(axis, angle)
		} else {
			report("RotationOffset expects X=,Y=,Z=,Angle=; using identity")
		}
	}

	if v, ok := s.Get("PositionOffset"); ok {
		if off, ok := parseVector(v); ok {
			settings.TranslationOffset = off
		} else {
			report("PositionOffset expects X=,Y=,Z=; using (0,0,0)")
		}
	}

	if v, ok := s.Get("TrackerUnitsToUE4Units"); ok {
		if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			settings.UnitsScale = f
		} else {
			report("TrackerUnitsToUE4Units is not a number; using 1.0")
		}
	}

	if v, ok := s.Get("FlipZAxis"); ok {
		settings.FlipZ = parseBool(v)
	}
	return settings
}

func parseVector(v string) (tracker.Vector, bool) {
	x, okX := lookupFloat(v, "X")
	y, okY := lookupFloat(v, "Y")
	z, okZ := lookupFloat(v, "Z")
	return tracker.Vector{X: x, Y: y, Z: z}, okX && okY && okZ
}
