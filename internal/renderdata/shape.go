package renderdata

import (
	"image"
	"math"

	"github.com/gogpu/wgrender/internal/mesh"
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

const (
	// MaxTessellationScale caps the scale curves are flattened at.
	MaxTessellationScale = 8

	// DashPatternThreshold is the pattern length below which a dash is
	// ignored and the stroke drawn solid.
	DashPatternThreshold = 0.001
)

// ShapeGeometry is the input of Shape.UpdateMeshes.
type ShapeGeometry struct {
	Path path.Path
	// Stroke is nil, or has zero width, for fill-only shapes.
	Stroke      *mesh.Stroke
	StrokeFirst bool
}

// TessellationScale returns the flattening scale for a paint transform: the
// length of the transformed (1,1) diagonal, clamped to [1, MaxTessellationScale].
func TessellationScale(tr matrix.Matrix) float64 {
	s := math.Hypot(tr[0]+tr[2], tr[1]+tr[3])
	return min(max(s, 1), MaxTessellationScale)
}

// Shape is the render data of a path paint.
type Shape struct {
	Paint

	Shapes      mesh.Group // fill fans, one per contour
	ShapesBBox  mesh.Group // bounding quad per fill fan
	Strokes     mesh.Group // stroke triangle lists
	StrokesBBox mesh.Group // bounding quad per stroke mesh
	BBox        mesh.MeshData

	// PMin and PMax bound all meshes in local space.
	PMin, PMax vec.Vec2
	// AABB bounds the transformed meshes in device space.
	AABB rect.Rect

	StrokeFirst    bool
	SettingsShape  RenderSettings
	SettingsStroke RenderSettings

	hasBounds bool
}

// UpdateMeshes rebuilds the fill and stroke meshes of g.
//
// Geometry stays in local space; tr only sets the tessellation density and
// the device-space AABB. Scratch buffers come from bufs.
func (s *Shape) UpdateMeshes(g ShapeGeometry, tr matrix.Matrix, bufs *mesh.GeometryBufferPool) {
	s.ReleaseMeshes()
	s.StrokeFirst = g.StrokeFirst

	scale := TessellationScale(tr)
	pbuf := bufs.ReqVertexBuffer(scale)
	defer bufs.RetVertexBuffer(pbuf)

	stroked := g.Stroke != nil && g.Stroke.Width > 0
	mesh.DecodePath(g.Path, scale, pbuf, func(vb *mesh.VertexBuffer) {
		s.appendShape(vb)
		if stroked {
			s.appendStrokes(vb, *g.Stroke, bufs)
		}
	})

	if s.Shapes.Len() > 0 || s.Strokes.Len() > 0 {
		s.updateAABB(tr)
	} else {
		s.PMin, s.PMax = vec.Vec2{}, vec.Vec2{}
		s.AABB = rect.Rect{}
	}
	s.BBox.BBox(s.PMin, s.PMax)
	slogger().Debug("renderdata: shape meshes updated",
		"scale", scale, "fills", s.Shapes.Len(), "strokes", s.Strokes.Len())
}

func (s *Shape) appendShape(vb *mesh.VertexBuffer) {
	if len(vb.Points) < 3 {
		return
	}
	pmin, pmax := vb.MinMax()
	s.Shapes.Append(vb)
	s.ShapesBBox.AppendBBox(pmin, pmax)
	s.updateBBox(pmin, pmax)
}

func (s *Shape) appendStrokes(vb *mesh.VertexBuffer, st mesh.Stroke, bufs *mesh.GeometryBufferPool) {
	ibuf := bufs.ReqIndexedVertexBuffer(vb.Scale)
	defer bufs.RetIndexedVertexBuffer(ibuf)

	if st.Dash.PatternLength() < DashPatternThreshold {
		mesh.AppendStrokes(ibuf, vb, st)
	} else {
		mesh.AppendDashedStrokes(ibuf, vb, st)
	}
	if len(ibuf.Points) < 3 {
		return
	}
	pmin, pmax := ibuf.MinMax()
	s.Strokes.AppendIndexed(ibuf)
	s.StrokesBBox.AppendBBox(pmin, pmax)
	s.updateBBox(pmin, pmax)
}

func (s *Shape) updateBBox(pmin, pmax vec.Vec2) {
	if !s.hasBounds {
		s.PMin, s.PMax = pmin, pmax
		s.hasBounds = true
		return
	}
	s.PMin = vec.Vec2{X: min(s.PMin.X, pmin.X), Y: min(s.PMin.Y, pmin.Y)}
	s.PMax = vec.Vec2{X: max(s.PMax.X, pmax.X), Y: max(s.PMax.Y, pmax.Y)}
}

func (s *Shape) updateAABB(tr matrix.Matrix) {
	x, y := tr.Apply(s.PMin.X, s.PMin.Y)
	r := rect.Rect{LLx: x, LLy: y, URx: x, URy: y}
	r.Add(tr.Apply(s.PMax.X, s.PMin.Y))
	r.Add(tr.Apply(s.PMin.X, s.PMax.Y))
	r.Add(tr.Apply(s.PMax.X, s.PMax.Y))
	s.AABB = r
}

// Region returns the device pixels the shape may touch.
func (s *Shape) Region() image.Rectangle {
	r := s.AABB.Rounded()
	return image.Rect(int(r.LLx), int(r.LLy), int(r.URx), int(r.URy))
}

// ReleaseMeshes drops all geometry. The meshes are kept for reuse.
func (s *Shape) ReleaseMeshes() {
	s.StrokesBBox.Release()
	s.Strokes.Release()
	s.ShapesBBox.Release()
	s.Shapes.Release()
	s.BBox.Clear()
	s.PMin, s.PMax = vec.Vec2{}, vec.Vec2{}
	s.AABB = rect.Rect{}
	s.hasBounds = false
}

// Release drops the geometry and destroys the GPU objects of both passes.
func (s *Shape) Release(gpu GPU) {
	s.ReleaseMeshes()
	s.SettingsStroke.Release(gpu)
	s.SettingsShape.Release(gpu)
	s.ClearClips()
}

func (s *Shape) recycle() {
	s.ReleaseMeshes()
	s.ClearClips()
}
