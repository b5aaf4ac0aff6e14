package mesh

import (
	"math"

	"seehuhn.de/go/geom/vec"
)

// LineCap specifies the shape of open polyline end points.
type LineCap int

const (
	// LineCapButt ends the stroke flush with the end point.
	LineCapButt LineCap = iota
	// LineCapRound adds a half disc around the end point.
	LineCapRound
	// LineCapSquare extends the stroke by half its width.
	LineCapSquare
)

// LineJoin specifies the shape of the corner between two segments.
type LineJoin int

const (
	// LineJoinMiter extends the outer edges until they meet.
	LineJoinMiter LineJoin = iota
	// LineJoinRound fills the corner with a circular arc.
	LineJoinRound
	// LineJoinBevel cuts the corner with a straight edge.
	LineJoinBevel
)

// Stroke describes how a polyline is outlined.
type Stroke struct {
	Width      float64
	Cap        LineCap
	Join       LineJoin
	MiterLimit float64
	Dash       *Dash
}

// DefaultStroke returns a one unit wide butt-capped, mitered stroke.
func DefaultStroke() Stroke {
	return Stroke{
		Width:      1,
		Cap:        LineCapButt,
		Join:       LineJoinMiter,
		MiterLimit: 4,
	}
}

// joinThreshold is the sine of the smallest turn that gets a join.
const joinThreshold = 1e-3

// AppendStrokes appends the triangles outlining src to dst. Every segment
// becomes a quad; corners get joins and open ends get caps. The arc density
// of round joins and caps follows dst.Scale.
func AppendStrokes(dst *IndexedVertexBuffer, src *VertexBuffer, s Stroke) {
	if dst == nil || src == nil || s.Width <= 0 {
		return
	}
	pts := src.Points
	if len(pts) < 2 {
		return
	}
	g := strokeGen{dst: dst, style: s, hw: s.Width / 2, scale: math.Max(dst.Scale, 1)}

	n := len(pts)
	segs := n - 1
	if src.Closed {
		segs = n
	}
	for i := range segs {
		g.segment(pts[i], pts[(i+1)%n])
	}

	for i := 1; i < n-1; i++ {
		g.join(pts[i-1], pts[i], pts[i+1])
	}
	if src.Closed && n > 2 {
		g.join(pts[n-2], pts[n-1], pts[0])
		g.join(pts[n-1], pts[0], pts[1])
		return
	}
	g.endCap(pts[0], pts[0].Sub(pts[1]))
	g.endCap(pts[n-1], pts[n-1].Sub(pts[n-2]))
}

type strokeGen struct {
	dst   *IndexedVertexBuffer
	style Stroke
	hw    float64
	scale float64
}

func (g *strokeGen) normal(d vec.Vec2) vec.Vec2 {
	return d.Normal().Mul(g.hw)
}

func (g *strokeGen) segment(a, b vec.Vec2) {
	nrm := g.normal(b.Sub(a))
	if nrm == (vec.Vec2{}) {
		return
	}
	g.dst.quad(a.Add(nrm), a.Sub(nrm), b.Sub(nrm), b.Add(nrm))
}

// join fills the outer gap at p between segment a..p and p..b.
func (g *strokeGen) join(a, p, b vec.Vec2) {
	d0 := p.Sub(a).Normalize()
	d1 := b.Sub(p).Normalize()
	if d0 == (vec.Vec2{}) || d1 == (vec.Vec2{}) {
		return
	}
	cross := d0.X*d1.Y - d0.Y*d1.X
	dot := d0.Dot(d1)
	if dot > 0 && math.Abs(cross) < joinThreshold {
		return
	}

	// The outer side lies opposite the turn direction.
	side := 1.0
	if cross > 0 {
		side = -1
	}
	n0 := d0.Rot90().Mul(g.hw * side)
	n1 := d1.Rot90().Mul(g.hw * side)
	o0, o1 := p.Add(n0), p.Add(n1)

	switch g.style.Join {
	case LineJoinRound:
		g.arc(p, n0, math.Atan2(cross, dot))
	case LineJoinMiter:
		// Squared form of 1/cos(theta/2) < MiterLimit.
		limit := g.style.MiterLimit * g.style.MiterLimit
		if 2 < (1+dot)*limit {
			bisect := n0.Add(n1).Normalize()
			miter := p.Add(bisect.Mul(g.hw / math.Sqrt((1+dot)/2)))
			g.dst.quad(p, o0, miter, o1)
			return
		}
		g.dst.triangle(p, o0, o1)
	default:
		g.dst.triangle(p, o0, o1)
	}
}

// endCap closes the open end at p. dir points away from the stroke.
func (g *strokeGen) endCap(p, dir vec.Vec2) {
	d := dir.Normalize()
	if d == (vec.Vec2{}) {
		return
	}
	nrm := d.Rot90().Mul(g.hw)
	switch g.style.Cap {
	case LineCapSquare:
		ext := d.Mul(g.hw)
		g.dst.quad(p.Add(nrm), p.Sub(nrm), p.Sub(nrm).Add(ext), p.Add(nrm).Add(ext))
	case LineCapRound:
		g.arc(p, nrm.Neg(), math.Pi)
	}
}

// arc emits a triangle fan around center starting at center+from and sweeping
// angle radians.
func (g *strokeGen) arc(center, from vec.Vec2, angle float64) {
	// Segment count grows with the on-screen radius.
	steps := int(math.Ceil(math.Abs(angle) * math.Sqrt(g.hw*g.scale) / 2))
	steps = min(max(steps, 1), 64)

	step := angle / float64(steps)
	sin, cos := math.Sincos(step)
	prev := from
	for range steps {
		next := vec.Vec2{X: prev.X*cos - prev.Y*sin, Y: prev.X*sin + prev.Y*cos}
		g.dst.triangle(center, center.Add(prev), center.Add(next))
		prev = next
	}
}
