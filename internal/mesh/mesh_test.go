package mesh

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
)

type segment struct {
	cmd path.Command
	pts []vec.Vec2
}

func makePath(segs ...segment) path.Path {
	return func(yield func(path.Command, []vec.Vec2) bool) {
		for _, s := range segs {
			if !yield(s.cmd, s.pts) {
				return
			}
		}
	}
}

func moveTo(x, y float64) segment { return segment{path.CmdMoveTo, []vec.Vec2{{X: x, Y: y}}} }
func lineTo(x, y float64) segment { return segment{path.CmdLineTo, []vec.Vec2{{X: x, Y: y}}} }
func closePath() segment          { return segment{path.CmdClose, nil} }

func cubeTo(x1, y1, x2, y2, x3, y3 float64) segment {
	return segment{path.CmdCubeTo, []vec.Vec2{{X: x1, Y: y1}, {X: x2, Y: y2}, {X: x3, Y: y3}}}
}

func TestBufferGrowth(t *testing.T) {
	var b Buffer[uint32]
	if b.Count() != 0 || b.Reserved() != 0 {
		t.Fatalf("zero buffer: count=%d reserved=%d", b.Count(), b.Reserved())
	}

	b.Push(1, 2, 3)
	prev := b.Reserved()
	for i := range 100 {
		b.Push(uint32(i))
		if r := b.Reserved(); r != prev {
			if r < 2*prev {
				t.Fatalf("grew from %d to %d, want at least double", prev, r)
			}
			prev = r
		}
		if b.Count() > b.Reserved() {
			t.Fatalf("count %d exceeds reserved %d", b.Count(), b.Reserved())
		}
	}

	reserved := b.Reserved()
	b.Clear()
	if b.Count() != 0 {
		t.Errorf("Count after Clear = %d, want 0", b.Count())
	}
	if b.Reserved() != reserved {
		t.Errorf("Reserved after Clear = %d, want %d", b.Reserved(), reserved)
	}
}

func TestMeshDataUpdate(t *testing.T) {
	var m MeshData
	m.ImageBox(4, 4)

	if m.Update(&VertexBuffer{Points: []vec.Vec2{{X: 0}, {X: 1}}}) {
		t.Error("Update accepted two vertices")
	}
	if m.Vertices.Count() != 4 {
		t.Errorf("rejected update changed the mesh: %d vertices", m.Vertices.Count())
	}

	tri := &VertexBuffer{Points: []vec.Vec2{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}}}
	if !m.Update(tri) {
		t.Fatal("Update rejected a triangle")
	}
	want := []Vertex{{0, 0}, {1, 0}, {0, 1}}
	if diff := cmp.Diff(want, m.Vertices.Data()); diff != "" {
		t.Errorf("vertices mismatch (-want +got):\n%s", diff)
	}
	if m.TexCoords.Count() != 0 || m.Indices.Count() != 0 {
		t.Errorf("stale texcoords=%d indices=%d", m.TexCoords.Count(), m.Indices.Count())
	}

	ind := &IndexedVertexBuffer{
		Points:  []vec.Vec2{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}},
		Indices: []uint32{0, 1, 2, 0, 2, 3},
	}
	if !m.UpdateIndexed(ind) {
		t.Fatal("UpdateIndexed rejected a quad")
	}
	if m.Indices.Count() != 6 || m.Vertices.Count() != 4 {
		t.Errorf("indexed mesh: %d vertices, %d indices", m.Vertices.Count(), m.Indices.Count())
	}
}

func TestMeshDataFixedTopologies(t *testing.T) {
	tests := []struct {
		name      string
		build     func(*MeshData)
		vertices  []Vertex
		texCoords []Vertex
	}{
		{
			name:     "bbox",
			build:    func(m *MeshData) { m.BBox(vec.Vec2{X: 1, Y: 2}, vec.Vec2{X: 3, Y: 4}) },
			vertices: []Vertex{{1, 2}, {3, 2}, {3, 4}, {1, 4}},
		},
		{
			name:      "image",
			build:     func(m *MeshData) { m.ImageBox(64, 32) },
			vertices:  []Vertex{{0, 0}, {64, 0}, {64, 32}, {0, 32}},
			texCoords: []Vertex{{0, 0}, {1, 0}, {1, 1}, {0, 1}},
		},
		{
			name:      "blit",
			build:     func(m *MeshData) { m.BlitBox() },
			vertices:  []Vertex{{-1, 1}, {1, 1}, {1, -1}, {-1, -1}},
			texCoords: []Vertex{{0, 0}, {1, 0}, {1, 1}, {0, 1}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var m MeshData
			tt.build(&m)
			if diff := cmp.Diff(tt.vertices, m.Vertices.Data()); diff != "" {
				t.Errorf("vertices (-want +got):\n%s", diff)
			}
			if len(tt.texCoords) == 0 && m.TexCoords.Count() != 0 {
				t.Errorf("unexpected texcoords %v", m.TexCoords.Data())
			}
			if len(tt.texCoords) > 0 {
				if diff := cmp.Diff(tt.texCoords, m.TexCoords.Data()); diff != "" {
					t.Errorf("texcoords (-want +got):\n%s", diff)
				}
			}
			if diff := cmp.Diff([]uint32{0, 1, 2, 0, 2, 3}, m.Indices.Data()); diff != "" {
				t.Errorf("indices (-want +got):\n%s", diff)
			}
		})
	}
}

func TestGroupReusesMeshes(t *testing.T) {
	var g Group
	tri := &VertexBuffer{Points: []vec.Vec2{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}}}
	g.Append(tri)
	g.Append(&VertexBuffer{Points: []vec.Vec2{{X: 0}}})
	g.AppendBBox(vec.Vec2{}, vec.Vec2{X: 1, Y: 1})
	if g.Len() != 2 {
		t.Fatalf("Len = %d, want 2", g.Len())
	}
	first := g.Meshes[0]

	g.Release()
	if g.Len() != 0 {
		t.Fatalf("Len after Release = %d, want 0", g.Len())
	}
	if first.Vertices.Count() != 0 {
		t.Error("released mesh still holds vertices")
	}

	g.Append(tri)
	g.Append(tri)
	if g.Meshes[0] != first && g.Meshes[1] != first {
		t.Error("released mesh was not reused")
	}
}

func TestGeometryBufferPool(t *testing.T) {
	var p GeometryBufferPool
	b := p.ReqVertexBuffer(2)
	b.Append(vec.Vec2{X: 1})
	b.Closed = true
	p.RetVertexBuffer(b)

	again := p.ReqVertexBuffer(3)
	if again != b {
		t.Error("pool did not recycle the vertex buffer")
	}
	if len(again.Points) != 0 || again.Closed || again.Scale != 3 {
		t.Errorf("recycled buffer not reset: %+v", again)
	}

	ib := p.ReqIndexedVertexBuffer(1)
	p.RetIndexedVertexBuffer(ib)
	if p.ReqIndexedVertexBuffer(1) != ib {
		t.Error("pool did not recycle the indexed buffer")
	}
	p.RetVertexBuffer(nil)
}

func TestDecodePath(t *testing.T) {
	p := makePath(
		moveTo(0, 0), lineTo(10, 0), lineTo(10, 10), lineTo(0, 10), closePath(),
		moveTo(20, 0), cubeTo(20, 50, 70, 100, 120, 100), lineTo(20, 100), closePath(),
	)

	var polys [][]vec.Vec2
	var closed []bool
	DecodePath(p, 1, &VertexBuffer{}, func(vb *VertexBuffer) {
		polys = append(polys, append([]vec.Vec2(nil), vb.Points...))
		closed = append(closed, vb.Closed)
	})

	if len(polys) != 2 {
		t.Fatalf("got %d polygons, want 2", len(polys))
	}
	square := []vec.Vec2{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}}
	if diff := cmp.Diff(square, polys[0]); diff != "" {
		t.Errorf("square (-want +got):\n%s", diff)
	}
	if !closed[0] || !closed[1] {
		t.Errorf("closed = %v, want both closed", closed)
	}

	curve := polys[1]
	if len(curve) < 6 {
		t.Errorf("curve flattened to %d points, want a subdivided polygon", len(curve))
	}
	if curve[0] != (vec.Vec2{X: 20, Y: 0}) {
		t.Errorf("curve starts at %v", curve[0])
	}
	found := false
	for _, pt := range curve {
		if pt == (vec.Vec2{X: 120, Y: 100}) {
			found = true
		}
	}
	if !found {
		t.Error("curve end point missing from polygon")
	}
}

func TestDecodePathScaleDensity(t *testing.T) {
	p := makePath(moveTo(0, 0), cubeTo(0, 50, 50, 100, 100, 100))
	count := func(scale float64) int {
		n := 0
		DecodePath(p, scale, &VertexBuffer{}, func(vb *VertexBuffer) { n = len(vb.Points) })
		return n
	}
	if lo, hi := count(1), count(8); hi < lo {
		t.Errorf("scale 8 produced %d points, fewer than %d at scale 1", hi, lo)
	}
}

func TestAppendStrokesLine(t *testing.T) {
	src := &VertexBuffer{Points: []vec.Vec2{{X: 0, Y: 0}, {X: 10, Y: 0}}}

	tests := []struct {
		cap        LineCap
		pmin, pmax vec.Vec2
	}{
		{LineCapButt, vec.Vec2{X: 0, Y: -1}, vec.Vec2{X: 10, Y: 1}},
		{LineCapSquare, vec.Vec2{X: -1, Y: -1}, vec.Vec2{X: 11, Y: 1}},
		{LineCapRound, vec.Vec2{X: -1, Y: -1}, vec.Vec2{X: 11, Y: 1}},
	}
	for _, tt := range tests {
		dst := &IndexedVertexBuffer{Scale: 1}
		AppendStrokes(dst, src, Stroke{Width: 2, Cap: tt.cap, MiterLimit: 4})
		pmin, pmax := dst.MinMax()
		if !near(pmin, tt.pmin) || !near(pmax, tt.pmax) {
			t.Errorf("cap %d: bounds %v..%v, want %v..%v", tt.cap, pmin, pmax, tt.pmin, tt.pmax)
		}
		if len(dst.Indices)%3 != 0 {
			t.Errorf("cap %d: %d indices is not a triangle list", tt.cap, len(dst.Indices))
		}
		for _, i := range dst.Indices {
			if int(i) >= len(dst.Points) {
				t.Fatalf("cap %d: index %d out of range", tt.cap, i)
			}
		}
	}
}

func TestAppendStrokesClosedMiter(t *testing.T) {
	src := &VertexBuffer{Points: []vec.Vec2{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}}, Closed: true}
	dst := &IndexedVertexBuffer{Scale: 1}
	AppendStrokes(dst, src, Stroke{Width: 2, Join: LineJoinMiter, MiterLimit: 4})

	// Four segment quads and four miter quads.
	if len(dst.Points) != 32 || len(dst.Indices) != 48 {
		t.Errorf("got %d points, %d indices; want 32, 48", len(dst.Points), len(dst.Indices))
	}
	pmin, pmax := dst.MinMax()
	if !near(pmin, vec.Vec2{X: -1, Y: -1}) || !near(pmax, vec.Vec2{X: 11, Y: 11}) {
		t.Errorf("bounds %v..%v, want (-1,-1)..(11,11)", pmin, pmax)
	}

	bevel := &IndexedVertexBuffer{Scale: 1}
	AppendStrokes(bevel, src, Stroke{Width: 2, Join: LineJoinBevel})
	if len(bevel.Points) != 28 {
		t.Errorf("bevel: got %d points, want 28", len(bevel.Points))
	}
}

func TestAppendStrokesIgnoresDegenerate(t *testing.T) {
	dst := &IndexedVertexBuffer{}
	AppendStrokes(dst, &VertexBuffer{Points: []vec.Vec2{{X: 1}}}, DefaultStroke())
	AppendStrokes(dst, &VertexBuffer{Points: []vec.Vec2{{X: 1}, {X: 2}}}, Stroke{Width: 0})
	if len(dst.Points) != 0 {
		t.Errorf("degenerate input produced %d points", len(dst.Points))
	}
}

func TestDash(t *testing.T) {
	if NewDash() != nil || NewDash(0, -0) != nil {
		t.Error("NewDash without positive lengths should be nil")
	}
	d := NewDash(2, -3, 5)
	if d.PatternLength() != 20 {
		t.Errorf("PatternLength = %v, want 20", d.PatternLength())
	}
	d.Offset = -5
	if got := d.NormalizedOffset(); got != 15 {
		t.Errorf("NormalizedOffset = %v, want 15", got)
	}
	var nilDash *Dash
	if nilDash.PatternLength() != 0 {
		t.Error("nil dash has a pattern length")
	}
}

func TestAppendDashedStrokes(t *testing.T) {
	src := &VertexBuffer{Points: []vec.Vec2{{X: 0, Y: 0}, {X: 10, Y: 0}}}
	dst := &IndexedVertexBuffer{Scale: 1}
	AppendDashedStrokes(dst, src, Stroke{Width: 2, Dash: NewDash(2, 2)})

	// Dashes [0,2], [4,6] and [8,10].
	if len(dst.Points) != 12 {
		t.Fatalf("got %d points, want three dash quads", len(dst.Points))
	}
	xs := []float64{dst.Points[0].X, dst.Points[2].X, dst.Points[4].X, dst.Points[6].X, dst.Points[8].X, dst.Points[10].X}
	want := []float64{0, 2, 4, 6, 8, 10}
	if diff := cmp.Diff(want, xs); diff != "" {
		t.Errorf("dash extents (-want +got):\n%s", diff)
	}

	offset := &IndexedVertexBuffer{Scale: 1}
	AppendDashedStrokes(offset, src, Stroke{Width: 2, Dash: &Dash{Array: []float64{2, 2}, Offset: 3}})
	// Starts inside the gap: dashes [1,3], [5,7], [9,10].
	if len(offset.Points) != 12 || offset.Points[0].X != 1 {
		t.Errorf("offset dashes: %d points starting at %v", len(offset.Points), offset.Points)
	}

	solid := &IndexedVertexBuffer{Scale: 1}
	AppendDashedStrokes(solid, src, Stroke{Width: 2})
	if len(solid.Points) != 4 {
		t.Errorf("nil dash: got %d points, want one quad", len(solid.Points))
	}
}

func near(a, b vec.Vec2) bool {
	const eps = 1e-9
	d := a.Sub(b)
	return d.X > -eps && d.X < eps && d.Y > -eps && d.Y < eps
}
