package devconfig

import (
	"strings"
	"testing"

	"github.com/hpcv/vrpninput/internal/tracker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `; VRPN devices for the CAVE
[Wand]
Type=Button
Address=Wand0@localhost
Button=(Id=0,Name=WandTrigger,Description="Wand trigger")
Button=(Id=1,Name=WandGrip,Description=Grip)
Button=(Id=2,Name=Broken)

[Head]
Type=Tracker
Address=DTrack@10.0.0.2
TrackerUnitsToUE4Units=100
FlipZAxis=true
PositionOffset=(X=1,Y=2,Z=3)
RotationOffset=(X=0,Y=0,Z=1,Angle=90)
Tracker=(Id=0,Name=Head,Description=Head)
+Tracker=(Id=1,Name=Hand,Description=Hand,PlayerId=0,Hand=Right)

[Signals]
Type=Analog
Address=openvibe-vrpn@localhost
Channel=(Id=0,Name=Alpha,Description=Alpha)

[NoType]
Address=x@y

[NoAddress]
Type=Button

[Joystick]
Type=Gamepad
Address=js@localhost

[EmptyButtons]
Type=Button
Address=b@localhost
`

func loadSample(t *testing.T) *File {
	t.Helper()
	f, err := Parse(strings.NewReader(sampleConfig))
	require.NoError(t, err)
	return f
}

func TestDevices_ValidSections(t *testing.T) {
	devices, _ := loadSample(t).Devices(nil)
	require.Len(t, devices, 3)

	wand := devices[0]
	assert.Equal(t, "Wand", wand.Section)
	assert.Equal(t, TypeButton, wand.Type)
	assert.Equal(t, "Wand0@localhost", wand.Address)
	assert.True(t, wand.Enabled)
	assert.Equal(t, []Mapping{
		{ID: 0, Name: "WandTrigger", Description: "Wand trigger"},
		{ID: 1, Name: "WandGrip", Description: "Grip"},
	}, wand.Buttons)

	head := devices[1]
	assert.Equal(t, TypeTracker, head.Type)
	require.Len(t, head.Trackers, 2)
	assert.Equal(t, -1, head.Trackers[0].PlayerID)
	assert.False(t, head.Trackers[0].IsMotionController())
	assert.Equal(t, HandLeft, head.Trackers[0].Hand)
	assert.Equal(t, []string{
		"HeadMotionX", "HeadMotionY", "HeadMotionZ",
		"HeadRotationYaw", "HeadRotationPitch", "HeadRotationRoll",
	}, head.Trackers[0].Keys)
	assert.True(t, head.Trackers[1].IsMotionController())
	assert.Equal(t, HandRight, head.Trackers[1].Hand)

	require.NotNil(t, head.Settings)
	assert.Equal(t, 100.0, head.Settings.UnitsScale)
	assert.True(t, head.Settings.FlipZ)
	assert.Equal(t, tracker.Vector{X: 1, Y: 2, Z: 3}, head.Settings.TranslationOffset)
	assert.InDelta(t, 0.7071, head.Settings.RotationOffset.Kmag, 1e-3)

	signals := devices[2]
	assert.Equal(t, TypeAnalog, signals.Type)
	assert.Equal(t, []string{"Alpha"}, signals.Keys())
}

func TestDevices_Problems(t *testing.T) {
	_, problems := loadSample(t).Devices(nil)

	var sections []string
	for _, p := range problems {
		sections = append(sections, p.Section)
	}
	assert.Equal(t, []string{"Wand", "NoType", "NoAddress", "Joystick", "EmptyButtons"}, sections)

	assert.Contains(t, problems[0].Message, "could not parse Button")
	assert.Contains(t, problems[3].Message, `"Gamepad"`)
	assert.True(t, strings.HasPrefix(problems[0].String(), "[Wand] could not parse Button"))
}

func TestDevices_EnabledFilter(t *testing.T) {
	devices, _ := loadSample(t).Devices([]string{"Head"})
	require.Len(t, devices, 3)
	assert.False(t, devices[0].Enabled)
	assert.True(t, devices[1].Enabled)
	assert.False(t, devices[2].Enabled)
}

func TestDevices_DuplicateIDKeepsLast(t *testing.T) {
	f, err := Parse(strings.NewReader(`[B]
Type=Button
Address=b@localhost
Button=(Id=3,Name=First,Description=a)
Button=(Id=4,Name=Other,Description=b)
Button=(Id=3,Name=Second,Description=c)
`))
	require.NoError(t, err)

	devices, problems := f.Devices(nil)
	assert.Empty(t, problems)
	require.Len(t, devices, 1)
	assert.Equal(t, []string{"Second", "Other"}, devices[0].Keys())
}

func TestDevices_TrackerDefaults(t *testing.T) {
	f, err := Parse(strings.NewReader(`[T]
Type=Tracker
Address=t@localhost
TrackerUnitsToUE4Units=lots
RotationOffset=(X=1)
Tracker=(Id=0,Name=T,Description=T)
`))
	require.NoError(t, err)

	devices, problems := f.Devices(nil)
	require.Len(t, devices, 1)
	assert.Equal(t, tracker.DefaultSettings(), *devices[0].Settings)
	assert.Len(t, problems, 2)
}

func TestDevices_EngineConfigRules(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		address string
		keys    []string
	}{
		{
			name: "stray line is skipped",
			input: `[Wand]
Type=Button
this line has no value
Address=Wand0@localhost
Button=(Id=0,Name=Trigger,Description=Trigger)
`,
			address: "Wand0@localhost",
			keys:    []string{"Trigger"},
		},
		{
			name: "sections with the same name merge",
			input: `[Wand]
Type=Button
Address=Wand0@localhost
Button=(Id=0,Name=Trigger,Description=Trigger)

[wand]
Button=(Id=1,Name=Grip,Description=Grip)
`,
			address: "Wand0@localhost",
			keys:    []string{"Trigger", "Grip"},
		},
		{
			name: "quoted address",
			input: `[Wand]
Type="Button"
Address="Wand0@localhost"
Button=(Id=0,Name=Trigger,Description="Wand trigger")
`,
			address: "Wand0@localhost",
			keys:    []string{"Trigger"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Parse(strings.NewReader(tt.input))
			require.NoError(t, err)
			assert.Equal(t, []string{"Wand"}, f.SectionNames())

			devices, problems := f.Devices(nil)
			assert.Empty(t, problems)
			require.Len(t, devices, 1)
			assert.Equal(t, tt.address, devices[0].Address)
			assert.Equal(t, tt.keys, devices[0].Keys())
		})
	}
}

func TestParseBool(t *testing.T) {
	for _, v := range []string{"true", "True", "yes", "on", "1", "2.5"} {
		assert.True(t, parseBool(v), v)
	}
	for _, v := range []string{"false", "no", "0", "", "maybe"} {
		assert.False(t, parseBool(v), v)
	}
}

func TestLookup(t *testing.T) {
	tuple := `(Id=7,PlayerName=Bob,Name=Alice,Description="left hand")`

	v, ok := lookup(tuple, "Name")
	require.True(t, ok)
	assert.Equal(t, "Alice", v)

	v, ok = lookup(tuple, "description")
	require.True(t, ok)
	assert.Equal(t, "left hand", v)

	n, ok := lookupInt(tuple, "Id")
	require.True(t, ok)
	assert.Equal(t, 7, n)

	_, ok = lookup(tuple, "Hand")
	assert.False(t, ok)

	_, ok = lookupInt("(Id=x)", "Id")
	assert.False(t, ok)
}
