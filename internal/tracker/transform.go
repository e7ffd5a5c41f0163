// Package tracker converts raw tracker samples into engine coordinates.
package tracker

import (
	"math"

	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

// Vector is a position or axis.
type Vector = r3.Vec

// Quat is a rotation quaternion. Imag, Jmag and Kmag are its X, Y and Z
// parts.
type Quat = quat.Number

// Identity is the no-op rotation.
var Identity = Quat{Real: 1}

// AxisAngle builds a rotation of degrees around axis. A zero axis gives
// Identity.
func AxisAngle(axis Vector, degrees float64) Quat {
	if r3.Norm(axis) == 0 {
		return Identity
	}
	return quat.Number(r3.NewRotation(degrees*math.Pi/180, axis))
}

// Settings are the per-device calibration values.
type Settings struct {
	TranslationOffset Vector
	RotationOffset    Quat
	UnitsScale        float64
	FlipZ             bool
}

// DefaultSettings leave samples unchanged.
func DefaultSettings() Settings {
	return Settings{RotationOffset: Identity, UnitsScale: 1}
}

// WorldScale converts a world-to-meters setting into a scale factor,
// treating non-positive values as the engine default of 100.
func WorldScale(worldToMeters float64) float64 {
	if worldToMeters <= 0 {
		return 1
	}
	return worldToMeters * 0.01
}

// Transform moves a raw sample into engine space.
func Transform(s Settings, pos Vector, rot Quat, worldScale float64) (Vector, Quat) {
	offset := s.TranslationOffset
	if s.FlipZ {
		pos.Z = -pos.Z
		offset.Z = -offset.Z
		rot.Imag = -rot.Imag
		rot.Jmag = -rot.Jmag
	}
	scaled := r3.Scale(s.UnitsScale*worldScale, r3.Add(pos, offset))
	outPos := r3.Rotation(s.RotationOffset).Rotate(scaled)
	return outPos, quat.Mul(s.RotationOffset, rot)
}
