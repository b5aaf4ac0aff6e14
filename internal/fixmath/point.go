package fixmath

import (
	"golang.org/x/image/math/fixed"
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/vec"
)

// SmallThreshold is the per-axis magnitude, in sub-pixel units, below which
// a vector is considered degenerate for direction computations.
const SmallThreshold fixed.Int26_6 = 2

// Point is a coordinate pair in sub-pixel (1/64 pixel) units.
type Point struct {
	X, Y fixed.Int26_6
}

// Pt returns the sub-pixel point for integer pixel coordinates.
func Pt(x, y int) Point {
	return Point{X: fixed.I(x), Y: fixed.I(y)}
}

// Add returns p+q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns p-q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Zero reports whether p is exactly the origin.
func (p Point) Zero() bool {
	return p.X == 0 && p.Y == 0
}

// Small reports whether both components are within SmallThreshold of zero.
// A small vector has no reliable direction.
func (p Point) Small() bool {
	return abs26(p.X) < SmallThreshold && abs26(p.Y) < SmallThreshold
}

// Vec2 converts p to pixel units.
func (p Point) Vec2() vec.Vec2 {
	return vec.Vec2{X: float64(p.X) / 64, Y: float64(p.Y) / 64}
}

// FromVec2 converts a pixel-space point to sub-pixel units, truncating
// toward zero.
func FromVec2(v vec.Vec2) Point {
	return Point{X: fixed.Int26_6(int32(v.X * 64)), Y: fixed.Int26_6(int32(v.Y * 64))}
}

// Transform applies the affine matrix m to v and converts the result to
// sub-pixel units.
func Transform(v vec.Vec2, m matrix.Matrix) Point {
	x, y := m.Apply(v.X, v.Y)
	return FromVec2(vec.Vec2{X: x, Y: y})
}

// Outline is a sequence of sub-pixel points split into contours.
// Contours holds the index of the last point of each contour.
type Outline struct {
	Points   []Point
	Contours []int
}

func abs26(v fixed.Int26_6) fixed.Int26_6 {
	if v < 0 {
		return -v
	}
	return v
}
