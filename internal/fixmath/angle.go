package fixmath

import (
	"math"

	"golang.org/x/image/math/fixed"
)

// Angle is a signed angle in 1/65536 degree units.
type Angle int64

// Angle constants.
const (
	AnglePI  Angle = 180 << 16
	Angle2PI       = AnglePI << 1
	AnglePI2       = AnglePI >> 1

	// FlatThreshold is the largest turning angle between consecutive
	// control-polygon chords for which a cubic is drawn as a single segment.
	FlatThreshold = AnglePI / 8
)

// Radians converts a to radians.
func (a Angle) Radians() float64 {
	return float64(a) / 65536 * (math.Pi / 180)
}

// Degrees converts a to degrees.
func (a Angle) Degrees() float64 {
	return float64(a) / 65536
}

// Cos returns the cosine of a as a 16.16 value.
func Cos(a Angle) int64 {
	return int64(math.Cos(a.Radians()) * 65536)
}

// Sin returns the sine of a as a 16.16 value.
func Sin(a Angle) int64 {
	return Cos(AnglePI2 - a)
}

// Tan returns the tangent of a as a 16.16 value.
func Tan(a Angle) int64 {
	if a == 0 {
		return 0
	}
	return int64(math.Tan(a.Radians()) * 65536)
}

// Atan returns the direction of p. The zero vector yields 0.
func Atan(p Point) Angle {
	if p.Zero() {
		return 0
	}
	rad := math.Atan2(float64(p.Y)/64, float64(p.X)/64)
	return Angle(rad * (180 / math.Pi) * 65536)
}

// Diff returns the signed shortest rotation from a1 to a2, in (-AnglePI, AnglePI].
func Diff(a1, a2 Angle) Angle {
	delta := (a2 - a1) % Angle2PI
	if delta < 0 {
		delta += Angle2PI
	}
	if delta > AnglePI {
		delta -= Angle2PI
	}
	return delta
}

// Mean returns the angle halfway along the shorter arc from a1 to a2.
func Mean(a1, a2 Angle) Angle {
	return a1 + Diff(a1, a2)/2
}

// Rotate rotates p around the origin by a, rounding to the nearest
// sub-pixel unit.
func Rotate(p Point, a Angle) Point {
	if a == 0 || p.Zero() {
		return p
	}
	v := p.Vec2()
	sin, cos := math.Sincos(a.Radians())
	x := v.X*cos - v.Y*sin
	y := v.X*sin + v.Y*cos
	return Point{
		X: fixed.Int26_6(math.RoundToEven(x * 64)),
		Y: fixed.Int26_6(math.RoundToEven(y * 64)),
	}
}

// Length approximates |p| in sub-pixel units using max + 3/8*min.
// Axis-aligned vectors are exact; the worst-case error is about 7%.
func Length(p Point) int64 {
	x, y := int64(abs26(p.X)), int64(abs26(p.Y))
	switch {
	case x == 0:
		return y
	case y == 0:
		return x
	case x > y:
		return x + y*3/8
	default:
		return y + x*3/8
	}
}
