package mesh

import (
	"math"

	"seehuhn.de/go/geom/vec"
)

// Byte sizes of the GPU vertex and index formats.
const (
	VertexSize = 8 // two float32
	IndexSize  = 4 // uint32
)

// Vertex is a GPU vertex position or texture coordinate.
type Vertex struct {
	X, Y float32
}

// V converts a float64 vector to a Vertex.
func V(v vec.Vec2) Vertex {
	return Vertex{X: float32(v.X), Y: float32(v.Y)}
}

// VertexBuffer is a flattened polygon or polyline produced by path decoding.
type VertexBuffer struct {
	Points []vec.Vec2
	Closed bool
	// Scale is the tessellation density the buffer was produced for.
	Scale float64
}

// Reset clears the buffer for reuse at the given scale.
func (b *VertexBuffer) Reset(scale float64) {
	b.Points = b.Points[:0]
	b.Closed = false
	b.Scale = scale
}

// Append adds a point, skipping exact duplicates of the previous one.
func (b *VertexBuffer) Append(p vec.Vec2) {
	if n := len(b.Points); n > 0 && b.Points[n-1] == p {
		return
	}
	b.Points = append(b.Points, p)
}

// Close marks the buffer as a closed contour. A trailing point that repeats
// the first one is dropped.
func (b *VertexBuffer) Close() {
	if n := len(b.Points); n > 1 && b.Points[n-1] == b.Points[0] {
		b.Points = b.Points[:n-1]
	}
	b.Closed = true
}

// MinMax returns the bounds of the points. An empty buffer yields zero vectors.
func (b *VertexBuffer) MinMax() (pmin, pmax vec.Vec2) {
	return minMax(b.Points)
}

// Length returns the length of the polyline, including the closing segment
// for closed buffers.
func (b *VertexBuffer) Length() float64 {
	var total float64
	for i := 1; i < len(b.Points); i++ {
		total += b.Points[i].Sub(b.Points[i-1]).Length()
	}
	if b.Closed && len(b.Points) > 1 {
		total += b.Points[0].Sub(b.Points[len(b.Points)-1]).Length()
	}
	return total
}

// IndexedVertexBuffer is a triangle list with explicit indices.
type IndexedVertexBuffer struct {
	Points  []vec.Vec2
	Indices []uint32
	Scale   float64
}

// Reset clears the buffer for reuse at the given scale.
func (b *IndexedVertexBuffer) Reset(scale float64) {
	b.Points = b.Points[:0]
	b.Indices = b.Indices[:0]
	b.Scale = scale
}

// MinMax returns the bounds of the points. An empty buffer yields zero vectors.
func (b *IndexedVertexBuffer) MinMax() (pmin, pmax vec.Vec2) {
	return minMax(b.Points)
}

func (b *IndexedVertexBuffer) base() uint32 {
	return uint32(len(b.Points)) //nolint:gosec // G115: vertex counts stay far below 2^32
}

func (b *IndexedVertexBuffer) triangle(p0, p1, p2 vec.Vec2) {
	i := b.base()
	b.Points = append(b.Points, p0, p1, p2)
	b.Indices = append(b.Indices, i, i+1, i+2)
}

func (b *IndexedVertexBuffer) quad(p0, p1, p2, p3 vec.Vec2) {
	i := b.base()
	b.Points = append(b.Points, p0, p1, p2, p3)
	b.Indices = append(b.Indices, i, i+1, i+2, i, i+2, i+3)
}

func minMax(pts []vec.Vec2) (pmin, pmax vec.Vec2) {
	if len(pts) == 0 {
		return vec.Vec2{}, vec.Vec2{}
	}
	pmin, pmax = pts[0], pts[0]
	for _, p := range pts[1:] {
		pmin.X = math.Min(pmin.X, p.X)
		pmin.Y = math.Min(pmin.Y, p.Y)
		pmax.X = math.Max(pmax.X, p.X)
		pmax.Y = math.Max(pmax.Y, p.Y)
	}
	return pmin, pmax
}

// GeometryBufferPool recycles scratch vertex buffers across tessellation
// calls.
type GeometryBufferPool struct {
	vertex  []*VertexBuffer
	indexed []*IndexedVertexBuffer
}

// ReqVertexBuffer returns an empty vertex buffer for the given scale.
func (p *GeometryBufferPool) ReqVertexBuffer(scale float64) *VertexBuffer {
	var b *VertexBuffer
	if n := len(p.vertex); n > 0 {
		b = p.vertex[n-1]
		p.vertex = p.vertex[:n-1]
	} else {
		b = &VertexBuffer{}
	}
	b.Reset(scale)
	return b
}

// RetVertexBuffer returns b to the pool. b must not be used afterwards.
func (p *GeometryBufferPool) RetVertexBuffer(b *VertexBuffer) {
	if b != nil {
		p.vertex = append(p.vertex, b)
	}
}

// ReqIndexedVertexBuffer returns an empty indexed buffer for the given scale.
func (p *GeometryBufferPool) ReqIndexedVertexBuffer(scale float64) *IndexedVertexBuffer {
	var b *IndexedVertexBuffer
	if n := len(p.indexed); n > 0 {
		b = p.indexed[n-1]
		p.indexed = p.indexed[:n-1]
	} else {
		b = &IndexedVertexBuffer{}
	}
	b.Reset(scale)
	return b
}

// RetIndexedVertexBuffer returns b to the pool. b must not be used afterwards.
func (p *GeometryBufferPool) RetIndexedVertexBuffer(b *IndexedVertexBuffer) {
	if b != nil {
		p.indexed = append(p.indexed, b)
	}
}
