package mesh

import (
	"github.com/gogpu/wgrender/internal/fixmath"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
)

// FlattenTolerance is the maximum distance, in sub-pixel units at the
// tessellation scale, a flattened curve may deviate from the true curve.
const FlattenTolerance = 16

// DecodePath flattens p into polygons and calls fn once per contour.
//
// Curves are subdivided in sub-pixel space after multiplying by scale, so a
// larger scale yields denser polygons for shapes that will be magnified.
// The output points stay in the path's own coordinate space. The buffer
// passed to fn is reused after fn returns; contours with fewer than two
// points are dropped.
func DecodePath(p path.Path, scale float64, buf *VertexBuffer, fn func(*VertexBuffer)) {
	if p == nil || buf == nil {
		return
	}
	if scale <= 0 {
		scale = 1
	}
	buf.Reset(scale)

	emit := func() {
		if len(buf.Points) > 1 {
			fn(buf)
		}
		buf.Reset(scale)
	}

	var start, current vec.Vec2
	var flat []fixmath.Point
	for cmd, pts := range p.ToCubic() {
		switch cmd {
		case path.CmdMoveTo:
			emit()
			start, current = pts[0], pts[0]
			buf.Append(current)
		case path.CmdLineTo:
			if len(buf.Points) == 0 {
				buf.Append(current)
			}
			current = pts[0]
			buf.Append(current)
		case path.CmdCubeTo:
			if len(buf.Points) == 0 {
				buf.Append(current)
			}
			flat = fixmath.FlattenCubic(flat[:0],
				toSubPixel(current, scale), toSubPixel(pts[0], scale),
				toSubPixel(pts[1], scale), toSubPixel(pts[2], scale),
				FlattenTolerance)
			// The last flattened point is replaced by the exact end point.
			for _, q := range flat[:len(flat)-1] {
				buf.Append(fromSubPixel(q, scale))
			}
			current = pts[2]
			buf.Append(current)
		case path.CmdClose:
			buf.Close()
			emit()
			current = start
		}
	}
	emit()
}

func toSubPixel(v vec.Vec2, scale float64) fixmath.Point {
	return fixmath.FromVec2(v.Mul(scale))
}

func fromSubPixel(p fixmath.Point, scale float64) vec.Vec2 {
	return p.Vec2().Mul(1 / scale)
}
