// Package stage aggregates the meshes drawn in a frame into one vertex and
// one index buffer, so the frame is uploaded with a single write per buffer.
package stage

import (
	"encoding/binary"
	"math"

	"github.com/gogpu/wgrender/internal/mesh"
	"github.com/gogpu/wgrender/internal/renderdata"
	"github.com/gogpu/wgrender/internal/wgctx"
)

// GPU uploads the staged regions. *wgctx.Context implements it.
type GPU interface {
	AllocateBufferVertex(buf *wgctx.Buffer, data []byte) (bool, error)
	AllocateBufferIndex(buf *wgctx.Buffer, data []byte) (bool, error)
	AllocateBufferIndexFan(buf *wgctx.Buffer, vertexCount uint64) (bool, error)
	ReleaseBuffer(buf *wgctx.Buffer)
}

var _ GPU = (*wgctx.Context)(nil)

// Stats describes the staged contents of a frame.
type Stats struct {
	VertexBytes    int
	IndexBytes     int
	Meshes         int
	MaxVertexCount uint64
}

// Geometry is the per-frame stage buffer.
//
// Each appended mesh has its vertices, then its texture coordinates, copied
// into the vertex region and its indices into the index region. The byte
// offsets are written back into the mesh and are valid until Clear.
type Geometry struct {
	vdata []byte
	idata []byte

	vmaxCount uint64
	meshes    int

	vbuf   wgctx.Buffer
	ibuf   wgctx.Buffer
	fanbuf wgctx.Buffer
}

// New returns a Geometry with room for capacity bytes in each region.
func New(capacity int) *Geometry {
	capacity = max(capacity, 0)
	return &Geometry{
		vdata: make([]byte, 0, capacity),
		idata: make([]byte, 0, capacity),
	}
}

// reserve makes room for n more bytes. Capacity grows by at least its
// current size so repeated small appends stay amortized.
func reserve(b []byte, n int) []byte {
	if len(b)+n <= cap(b) {
		return b
	}
	grown := make([]byte, len(b), cap(b)+max(n, cap(b)))
	copy(grown, b)
	return grown
}

func appendVertices(b []byte, vs []mesh.Vertex) []byte {
	for _, v := range vs {
		b = binary.LittleEndian.AppendUint32(b, math.Float32bits(v.X))
		b = binary.LittleEndian.AppendUint32(b, math.Float32bits(v.Y))
	}
	return b
}

func appendIndices(b []byte, is []uint32) []byte {
	for _, i := range is {
		b = binary.LittleEndian.AppendUint32(b, i)
	}
	return b
}

// Append stages one mesh and records its offsets.
func (g *Geometry) Append(m *mesh.MeshData) {
	if m == nil {
		return
	}
	if n := m.VertexBytes(); n > 0 {
		g.vdata = reserve(g.vdata, n)
		m.VOffset = uint64(len(g.vdata))
		g.vdata = appendVertices(g.vdata, m.Vertices.Data())
	}
	if n := m.TexCoordBytes(); n > 0 {
		g.vdata = reserve(g.vdata, n)
		m.TOffset = uint64(len(g.vdata))
		g.vdata = appendVertices(g.vdata, m.TexCoords.Data())
	}
	if n := m.IndexBytes(); n > 0 {
		g.idata = reserve(g.idata, n)
		m.IOffset = uint64(len(g.idata))
		g.idata = appendIndices(g.idata, m.Indices.Data())
	}
	g.vmaxCount = max(g.vmaxCount, uint64(m.Vertices.Count()))
	g.meshes++
}

// AppendGroup stages every mesh of grp in order.
func (g *Geometry) AppendGroup(grp *mesh.Group) {
	for _, m := range grp.Meshes {
		g.Append(m)
	}
}

// AppendShape stages the fill meshes, fill boxes, stroke meshes, stroke
// boxes and finally the combined box of s. Draw code relies on this order.
func (g *Geometry) AppendShape(s *renderdata.Shape) {
	g.AppendGroup(&s.Shapes)
	g.AppendGroup(&s.ShapesBBox)
	g.AppendGroup(&s.Strokes)
	g.AppendGroup(&s.StrokesBBox)
	g.Append(&s.BBox)
}

// AppendPicture stages the image quad of p.
func (g *Geometry) AppendPicture(p *renderdata.Picture) {
	g.Append(&p.Mesh)
}

// Flush uploads both regions and sizes the shared fan index buffer for the
// largest staged mesh.
func (g *Geometry) Flush(gpu GPU) error {
	if _, err := gpu.AllocateBufferVertex(&g.vbuf, g.vdata); err != nil {
		return err
	}
	if _, err := gpu.AllocateBufferIndex(&g.ibuf, g.idata); err != nil {
		return err
	}
	if _, err := gpu.AllocateBufferIndexFan(&g.fanbuf, g.vmaxCount); err != nil {
		return err
	}
	slogger().Debug("stage: flushed",
		"vertex_bytes", len(g.vdata), "index_bytes", len(g.idata),
		"meshes", g.meshes, "max_vertices", g.vmaxCount)
	return nil
}

// Clear empties the regions for the next frame, keeping their capacity.
func (g *Geometry) Clear() {
	g.vdata = g.vdata[:0]
	g.idata = g.idata[:0]
	g.vmaxCount = 0
	g.meshes = 0
}

// Release destroys the GPU buffers and drops the staged data.
func (g *Geometry) Release(gpu GPU) {
	gpu.ReleaseBuffer(&g.vbuf)
	gpu.ReleaseBuffer(&g.ibuf)
	gpu.ReleaseBuffer(&g.fanbuf)
	g.Clear()
}

// Stats returns the sizes of the staged regions.
func (g *Geometry) Stats() Stats {
	return Stats{
		VertexBytes:    len(g.vdata),
		IndexBytes:     len(g.idata),
		Meshes:         g.meshes,
		MaxVertexCount: g.vmaxCount,
	}
}

// VertexData returns the staged vertex region.
func (g *Geometry) VertexData() []byte { return g.vdata }

// IndexData returns the staged index region.
func (g *Geometry) IndexData() []byte { return g.idata }

// VertexBuffer returns the GPU vertex buffer written by Flush.
func (g *Geometry) VertexBuffer() *wgctx.Buffer { return &g.vbuf }

// IndexBuffer returns the GPU index buffer written by Flush.
func (g *Geometry) IndexBuffer() *wgctx.Buffer { return &g.ibuf }

// IndexFanBuffer returns the shared triangle fan index buffer.
func (g *Geometry) IndexFanBuffer() *wgctx.Buffer { return &g.fanbuf }
