package mesh

import (
	"seehuhn.de/go/geom/vec"
)

// quadIndices triangulates the four corners of a quad.
var quadIndices = []uint32{0, 1, 2, 0, 2, 3}

var unitTexCoords = []Vertex{{0, 0}, {1, 0}, {1, 1}, {0, 1}}

// MeshData is one drawable polygon: positions, optional texture coordinates
// and optional indices. Meshes without indices are drawn as triangle fans.
//
// VOffset, TOffset and IOffset are the byte offsets of the three arrays
// inside the stage buffer they were last copied into. They are only valid
// for the frame that computed them.
type MeshData struct {
	Vertices  Buffer[Vertex]
	TexCoords Buffer[Vertex]
	Indices   Buffer[uint32]

	VOffset uint64
	TOffset uint64
	IOffset uint64
}

// Update replaces the mesh with the fan polygon in vb. Buffers with fewer
// than three points are ignored and false is returned.
func (m *MeshData) Update(vb *VertexBuffer) bool {
	if vb == nil || len(vb.Points) < 3 {
		return false
	}
	m.setVertices(vb.Points)
	m.TexCoords.Clear()
	m.Indices.Clear()
	return true
}

// UpdateIndexed replaces the mesh with the triangle list in ivb. Buffers
// with fewer than three points are ignored and false is returned.
func (m *MeshData) UpdateIndexed(ivb *IndexedVertexBuffer) bool {
	if ivb == nil || len(ivb.Points) < 3 {
		return false
	}
	m.setVertices(ivb.Points)
	m.TexCoords.Clear()
	m.Indices.Set(ivb.Indices)
	return true
}

// BBox replaces the mesh with the axis-aligned quad spanning pmin..pmax.
func (m *MeshData) BBox(pmin, pmax vec.Vec2) {
	m.Vertices.Set([]Vertex{
		{float32(pmin.X), float32(pmin.Y)},
		{float32(pmax.X), float32(pmin.Y)},
		{float32(pmax.X), float32(pmax.Y)},
		{float32(pmin.X), float32(pmax.Y)},
	})
	m.TexCoords.Clear()
	m.Indices.Set(quadIndices)
}

// ImageBox replaces the mesh with a w x h quad at the origin mapped to the
// full texture.
func (m *MeshData) ImageBox(w, h float32) {
	m.Vertices.Set([]Vertex{{0, 0}, {w, 0}, {w, h}, {0, h}})
	m.TexCoords.Set(unitTexCoords)
	m.Indices.Set(quadIndices)
}

// BlitBox replaces the mesh with a quad covering the whole viewport in
// normalized device coordinates.
func (m *MeshData) BlitBox() {
	m.Vertices.Set([]Vertex{{-1, 1}, {1, 1}, {1, -1}, {-1, -1}})
	m.TexCoords.Set(unitTexCoords)
	m.Indices.Set(quadIndices)
}

// Clear empties all buffers and resets the stage offsets.
func (m *MeshData) Clear() {
	m.Vertices.Clear()
	m.TexCoords.Clear()
	m.Indices.Clear()
	m.VOffset, m.TOffset, m.IOffset = 0, 0, 0
}

// VertexBytes returns the size of the position array in bytes.
func (m *MeshData) VertexBytes() int { return m.Vertices.Count() * VertexSize }

// TexCoordBytes returns the size of the texture coordinate array in bytes.
func (m *MeshData) TexCoordBytes() int { return m.TexCoords.Count() * VertexSize }

// IndexBytes returns the size of the index array in bytes.
func (m *MeshData) IndexBytes() int { return m.Indices.Count() * IndexSize }

func (m *MeshData) setVertices(pts []vec.Vec2) {
	m.Vertices.Clear()
	m.Vertices.Reserve(len(pts))
	for _, p := range pts {
		m.Vertices.Push(V(p))
	}
}

// Group owns the meshes a single path decomposes into. Released meshes are
// kept for reuse by later appends.
type Group struct {
	Meshes []*MeshData
	spare  []*MeshData
}

// Append adds the fan polygon in vb. Buffers with fewer than three points
// are skipped.
func (g *Group) Append(vb *VertexBuffer) {
	if vb == nil || len(vb.Points) < 3 {
		return
	}
	m := g.next()
	m.Update(vb)
	g.Meshes = append(g.Meshes, m)
}

// AppendIndexed adds the triangle list in ivb. Buffers with fewer than three
// points are skipped.
func (g *Group) AppendIndexed(ivb *IndexedVertexBuffer) {
	if ivb == nil || len(ivb.Points) < 3 {
		return
	}
	m := g.next()
	m.UpdateIndexed(ivb)
	g.Meshes = append(g.Meshes, m)
}

// AppendBBox adds the axis-aligned quad spanning pmin..pmax.
func (g *Group) AppendBBox(pmin, pmax vec.Vec2) {
	m := g.next()
	m.BBox(pmin, pmax)
	g.Meshes = append(g.Meshes, m)
}

// Len returns the number of meshes.
func (g *Group) Len() int { return len(g.Meshes) }

// Release empties the group. The meshes are cleared and kept for reuse.
func (g *Group) Release() {
	for i, m := range g.Meshes {
		m.Clear()
		g.spare = append(g.spare, m)
		g.Meshes[i] = nil
	}
	g.Meshes = g.Meshes[:0]
}

func (g *Group) next() *MeshData {
	if n := len(g.spare); n > 0 {
		m := g.spare[n-1]
		g.spare = g.spare[:n-1]
		return m
	}
	return &MeshData{}
}
