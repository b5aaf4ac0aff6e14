package fixmath

// CornerClass is the result of classifying a cubic control polygon.
type CornerClass int

const (
	// CornerIgnorable means every chord is degenerate; the curve collapses to a point.
	CornerIgnorable CornerClass = iota
	// CornerFlat means the curve may be replaced by its chord.
	CornerFlat
	// CornerCurved means the curve needs further subdivision.
	CornerCurved
)

// String returns the class name.
func (c CornerClass) String() string {
	switch c {
	case CornerIgnorable:
		return "ignorable"
	case CornerFlat:
		return "flat"
	case CornerCurved:
		return "curved"
	default:
		return "unknown"
	}
}

// MaxSplitDepth bounds the number of bisections FlattenCubic applies to a
// single curve.
const MaxSplitDepth = 16

// CubicAngle computes the incoming, middle and outgoing tangent angles of a
// cubic and classifies its curvature. The control points are stored in
// reverse order: base[3] is the start point and base[0] the end point.
//
// Degenerate chords take the angle of their nearest non-degenerate
// neighbour. When all three chords are degenerate the angles are zero and
// the class is CornerIgnorable.
func CubicAngle(base [4]Point) (in, mid, out Angle, class CornerClass) {
	d1 := base[2].Sub(base[3])
	d2 := base[1].Sub(base[2])
	d3 := base[0].Sub(base[1])

	switch s1, s2, s3 := d1.Small(), d2.Small(), d3.Small(); {
	case s1 && s2 && s3:
		return 0, 0, 0, CornerIgnorable
	case s1 && s2:
		in = Atan(d3)
		mid, out = in, in
	case s1 && s3:
		in = Atan(d2)
		mid, out = in, in
	case s1:
		in = Atan(d2)
		mid = in
		out = Atan(d3)
	case s2 && s3:
		in = Atan(d1)
		mid, out = in, in
	case s2:
		in = Atan(d1)
		out = Atan(d3)
		mid = Mean(in, out)
	case s3:
		in = Atan(d1)
		mid = Atan(d2)
		out = mid
	default:
		in = Atan(d1)
		mid = Atan(d2)
		out = Atan(d3)
	}

	theta1 := absAngle(Diff(in, mid))
	theta2 := absAngle(Diff(mid, out))
	if theta1 < FlatThreshold && theta2 < FlatThreshold {
		return in, mid, out, CornerFlat
	}
	return in, mid, out, CornerCurved
}

// SplitCubic bisects the cubic in base[0:4] in place. On return base[0:4]
// and base[3:7] hold the two halves sharing base[3] as their common point.
// Only integer averaging is used, so the outer end points are preserved
// exactly.
func SplitCubic(base []Point) {
	_ = base[6]
	base[6] = base[3]
	base[1].X, base[2].X, base[3].X, base[4].X, base[5].X = splitCubicAxis(base[0].X, base[1].X, base[2].X, base[6].X)
	base[1].Y, base[2].Y, base[3].Y, base[4].Y, base[5].Y = splitCubicAxis(base[0].Y, base[1].Y, base[2].Y, base[6].Y)
}

func splitCubicAxis[T ~int32](p0, p1, p2, p3 T) (q1, q2, mid, r1, r2 T) {
	q1 = (p0 + p1) >> 1
	r2 = (p3 + p2) >> 1
	c := (p1 + p2) >> 1
	q2 = (q1 + c) >> 1
	r1 = (r2 + c) >> 1
	mid = (q2 + r1) >> 1
	return q1, q2, mid, r1, r2
}

// SplitLine bisects the segment base[0]..base[1] in place so that
// base[0:2] and base[1:3] are the two halves.
func SplitLine(base []Point) {
	_ = base[2]
	base[2] = base[1]
	base[1] = Point{
		X: (base[0].X + base[1].X) >> 1,
		Y: (base[0].Y + base[1].Y) >> 1,
	}
}

// FlattenCubic appends to dst the end points of the line segments that
// approximate the cubic from p0 through p1, p2 to p3. The start point p0 is
// not appended. A curve is bisected while CubicAngle reports it curved or
// its control points stray further than tolerance from the chord.
func FlattenCubic(dst []Point, p0, p1, p2, p3 Point, tolerance int64) []Point {
	var stack [3*MaxSplitDepth + 4]Point
	var levels [MaxSplitDepth + 1]int

	stack[0], stack[1], stack[2], stack[3] = p3, p2, p1, p0
	top := 0
	for {
		arc := stack[top*3:]
		if levels[top] < MaxSplitDepth && needsSplit([4]Point(arc[:4]), tolerance) {
			SplitCubic(arc[:7])
			levels[top]++
			levels[top+1] = levels[top]
			top++
			continue
		}
		dst = append(dst, arc[0])
		if top == 0 {
			return dst
		}
		top--
	}
}

func needsSplit(base [4]Point, tolerance int64) bool {
	_, _, _, class := CubicAngle(base)
	switch class {
	case CornerIgnorable:
		return false
	case CornerCurved:
		return true
	}
	if tolerance <= 0 {
		return false
	}
	// Deviation of the control points from the chord, scaled by 3.
	ux := 3*int64(base[2].X) - 2*int64(base[3].X) - int64(base[0].X)
	uy := 3*int64(base[2].Y) - 2*int64(base[3].Y) - int64(base[0].Y)
	vx := 3*int64(base[1].X) - int64(base[3].X) - 2*int64(base[0].X)
	vy := 3*int64(base[1].Y) - int64(base[3].Y) - 2*int64(base[0].Y)
	dev := max(ux*ux, vx*vx) + max(uy*uy, vy*vy)
	return dev > 16*tolerance*tolerance
}

func absAngle(a Angle) Angle {
	if a < 0 {
		return -a
	}
	return a
}
