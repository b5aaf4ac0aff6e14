package fixmath

import (
	"image"
	"math"
	"testing"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/vec"
)

func TestMultiplyDivide(t *testing.T) {
	const one = 1 << 16
	tests := []struct {
		name string
		got  int64
		want int64
	}{
		{"mul 1*1", Multiply(one, one), one},
		{"mul 2*-1.5", Multiply(2*one, -3*one/2), -3 * one},
		{"mul -0.5*-0.5", Multiply(-one/2, -one/2), one / 4},
		{"div 1/2", Divide(one, 2*one), one / 2},
		{"div -3/2", Divide(-3*one, 2*one), -3 * one / 2},
		{"div by zero", Divide(one, 0), MaxMagnitude},
		{"div negative by zero", Divide(-one, 0), -MaxMagnitude},
		{"muldiv", MulDiv(10, 20, 4), 50},
		{"muldiv rounds", MulDiv(1, 1, 2), 1},
		{"muldiv negative", MulDiv(-10, 20, 4), -50},
		{"muldiv by zero", MulDiv(-10, 20, 0), -MaxMagnitude},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %d, want %d", tt.got, tt.want)
			}
		})
	}
}

func TestTrig(t *testing.T) {
	if got := Sin(0); got != 0 {
		t.Errorf("Sin(0) = %d, want 0", got)
	}
	if got := Tan(0); got != 0 {
		t.Errorf("Tan(0) = %d, want 0", got)
	}
	if got := Cos(0); got != 1<<16 {
		t.Errorf("Cos(0) = %d, want 65536", got)
	}
	if got := Sin(AnglePI2); got != 1<<16 {
		t.Errorf("Sin(90deg) = %d, want 65536", got)
	}
	if got := Tan(AnglePI / 4); math.Abs(float64(got-1<<16)) > 2 {
		t.Errorf("Tan(45deg) = %d, want ~65536", got)
	}
}

func TestAtan(t *testing.T) {
	tests := []struct {
		p    Point
		want Angle
	}{
		{Point{}, 0},
		{Pt(1, 0), 0},
		{Pt(0, 1), AnglePI2},
		{Pt(-1, 0), AnglePI},
		{Pt(0, -1), -AnglePI2},
	}
	for _, tt := range tests {
		if got := Atan(tt.p); got != tt.want {
			t.Errorf("Atan(%v) = %d, want %d", tt.p, got, tt.want)
		}
	}
}

func TestDiffRange(t *testing.T) {
	angles := []Angle{0, 1, AnglePI2, AnglePI, AnglePI + 1, Angle2PI - 1, -AnglePI, -Angle2PI, 3 * Angle2PI, 12345678}
	for _, a := range angles {
		if d := Diff(a, a); d != 0 {
			t.Errorf("Diff(%d, %d) = %d, want 0", a, a, d)
		}
		for _, b := range angles {
			d := Diff(a, b)
			if d <= -AnglePI || d > AnglePI {
				t.Errorf("Diff(%d, %d) = %d, out of (-PI, PI]", a, b, d)
			}
		}
	}
	if d := Diff(0, AnglePI); d != AnglePI {
		t.Errorf("Diff(0, PI) = %d, want PI", d)
	}
}

func TestMeanShorterArc(t *testing.T) {
	deg := Angle(1 << 16)
	// 170deg and -170deg straddle the wraparound; the short arc passes 180deg.
	a1 := Atan(FromVec2(vec.Vec2{X: math.Cos(170*math.Pi/180) * 100, Y: math.Sin(170*math.Pi/180) * 100}))
	a2 := Atan(FromVec2(vec.Vec2{X: math.Cos(-170*math.Pi/180) * 100, Y: math.Sin(-170*math.Pi/180) * 100}))

	m := Mean(a1, a2)
	// The mean lies 10deg past a1 on the short arc.
	if dist := absAngle(Diff(m, AnglePI)); dist > deg/4 {
		t.Errorf("Mean(%d, %d) = %d, want ~180deg", a1, a2, m)
	}
	if absAngle(Diff(a1, m)) > absAngle(Diff(a1, a2)) {
		t.Errorf("Mean(%d, %d) = %d lies outside the shorter arc", a1, a2, m)
	}
}

func TestLength(t *testing.T) {
	tests := []struct {
		p    Point
		want int64
	}{
		{Point{}, 0},
		{Pt(5, 0), 5 * 64},
		{Pt(0, -7), 7 * 64},
		{Pt(-3, 0), 3 * 64},
	}
	for _, tt := range tests {
		if got := Length(tt.p); got != tt.want {
			t.Errorf("Length(%v) = %d, want %d", tt.p, got, tt.want)
		}
	}

	got := float64(Length(Pt(3, 4))) / 64
	if math.Abs(got-5)/5 > 0.07 {
		t.Errorf("Length(3,4) = %v, want within 7%% of 5", got)
	}
}

func TestRotate(t *testing.T) {
	p := Pt(10, 0)
	if got := Rotate(p, 0); got != p {
		t.Errorf("Rotate by zero changed point: %v", got)
	}
	if got := Rotate(Point{}, AnglePI2); got != (Point{}) {
		t.Errorf("Rotate of origin = %v, want origin", got)
	}
	if got := Rotate(p, AnglePI2); got != Pt(0, 10) {
		t.Errorf("Rotate(10,0, 90deg) = %v, want (0,10)", got)
	}
	if got := Rotate(p, AnglePI); got != Pt(-10, 0) {
		t.Errorf("Rotate(10,0, 180deg) = %v, want (-10,0)", got)
	}
}

func TestCubicAngle(t *testing.T) {
	tests := []struct {
		name  string
		base  [4]Point
		class CornerClass
	}{
		{
			name:  "collinear within one pixel",
			base:  [4]Point{{X: 3}, {X: 2}, {X: 1}, {X: 0}},
			class: CornerIgnorable,
		},
		{
			name:  "collinear long",
			base:  [4]Point{Pt(30, 0), Pt(20, 0), Pt(10, 0), Pt(0, 0)},
			class: CornerFlat,
		},
		{
			name:  "right angle",
			base:  [4]Point{Pt(0, 10), Pt(10, 10), Pt(10, 0), Pt(0, 0)},
			class: CornerCurved,
		},
		{
			name:  "degenerate middle chord",
			base:  [4]Point{Pt(10, 10), Pt(10, 0), Pt(10, 0), Pt(0, 0)},
			class: CornerCurved,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in, mid, out, class := CubicAngle(tt.base)
			if class != tt.class {
				t.Errorf("class = %v, want %v", class, tt.class)
			}
			if class == CornerIgnorable && (in != 0 || mid != 0 || out != 0) {
				t.Errorf("ignorable angles = %d,%d,%d, want zeros", in, mid, out)
			}
		})
	}
}

func TestSplitCubicExact(t *testing.T) {
	var base [7]Point
	base[0], base[1], base[2], base[3] = Pt(0, 0), Point{X: 333, Y: 1001}, Point{X: -77, Y: 5}, Point{X: 641, Y: -129}
	orig := base

	SplitCubic(base[:])

	if base[0] != orig[0] {
		t.Errorf("first half start = %v, want %v", base[0], orig[0])
	}
	if base[6] != orig[3] {
		t.Errorf("second half end = %v, want %v", base[6], orig[3])
	}
	// The shared point is the end of one half and the start of the other.
	if _, _, _, c := CubicAngle([4]Point(base[0:4])); c == CornerIgnorable {
		t.Error("first half collapsed")
	}

	line := [3]Point{Pt(0, 0), Pt(4, 8)}
	SplitLine(line[:])
	if line[0] != Pt(0, 0) || line[2] != Pt(4, 8) || line[1] != Pt(2, 4) {
		t.Errorf("SplitLine = %v", line)
	}
}

func TestFlattenCubic(t *testing.T) {
	p0, p1, p2, p3 := Pt(0, 0), Pt(0, 50), Pt(50, 100), Pt(100, 100)
	pts := FlattenCubic(nil, p0, p1, p2, p3, 16)
	if len(pts) < 4 {
		t.Fatalf("got %d points, want a subdivided curve", len(pts))
	}
	if pts[len(pts)-1] != p3 {
		t.Errorf("last point = %v, want %v", pts[len(pts)-1], p3)
	}
	for i := 1; i < len(pts); i++ {
		// Integer bisection may floor by a unit or two.
		if pts[i].X < pts[i-1].X-2 || pts[i].Y < pts[i-1].Y-2 {
			t.Errorf("points not monotonic at %d: %v -> %v", i, pts[i-1], pts[i])
		}
	}

	line := FlattenCubic(nil, Pt(0, 0), Pt(10, 0), Pt(20, 0), Pt(30, 0), 16)
	if len(line) != 1 || line[0] != Pt(30, 0) {
		t.Errorf("straight cubic = %v, want single end point", line)
	}
}

func TestTransform(t *testing.T) {
	m := matrix.Scale(2, 2).Translate(1, 0)
	got := Transform(vec.Vec2{X: 1.5, Y: 3}, m)
	if got != Pt(4, 6) {
		t.Errorf("Transform = %v, want (4,6)", got)
	}
}

func TestUpdateOutlineBBox(t *testing.T) {
	plane := image.Rect(-1<<20, -1<<20, 1<<20, 1<<20)
	square := &Outline{
		Points:   []Point{Pt(0, 0), Pt(10, 0), Pt(10, 10), Pt(0, 10)},
		Contours: []int{3},
	}

	fast, ok := UpdateOutlineBBox(square, plane, true)
	if !ok || fast != image.Rect(0, 0, 10, 10) {
		t.Errorf("fast = %v, %v; want [0,0]-[10,10]", fast, ok)
	}
	precise, ok := UpdateOutlineBBox(square, plane, false)
	if !ok || !fast.In(precise) {
		t.Errorf("precise = %v does not contain %v", precise, fast)
	}

	frac := &Outline{
		Points:   []Point{{X: 10, Y: 10}, {X: 650, Y: 650}},
		Contours: []int{1},
	}
	r, _ := UpdateOutlineBBox(frac, plane, false)
	if r != image.Rect(0, 0, 11, 11) {
		t.Errorf("precise fractional = %v, want [0,0]-[11,11]", r)
	}

	half := &Outline{
		Points:   []Point{{X: -32, Y: -96}, {X: 32, Y: 96}},
		Contours: []int{1},
	}
	if r, _ := UpdateOutlineBBox(half, plane, true); r != image.Rect(-1, -2, 1, 2) {
		t.Errorf("fast half-pixel = %v, want [-1,-2]-[1,2]", r)
	}

	if r, ok := UpdateOutlineBBox(&Outline{}, plane, false); ok || r != (image.Rectangle{}) {
		t.Errorf("empty outline = %v, %v; want zero, false", r, ok)
	}

	if _, ok := UpdateOutlineBBox(square, image.Rect(20, 20, 30, 30), false); ok {
		t.Error("disjoint clip reported a valid region")
	}
	clipped, _ := UpdateOutlineBBox(square, image.Rect(5, 5, 30, 30), false)
	if clipped != image.Rect(5, 5, 10, 10) {
		t.Errorf("clipped = %v, want [5,5]-[10,10]", clipped)
	}
}
