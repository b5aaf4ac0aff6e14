// Package mesh holds the CPU side of renderable geometry.
//
// Buffer is the growable typed array every mesh is made of. MeshData groups
// a position, a texture coordinate and an index buffer into one drawable
// polygon; Group owns the several polygons a single path decomposes into.
//
// The package also provides the collaborators that produce that geometry:
// DecodePath flattens a seehuhn.de/go/geom path into polygons using the
// fixed-point subdivision predicates of internal/fixmath, and AppendStrokes
// and AppendDashedStrokes turn polylines into indexed stroke triangles.
//
// Nothing in this package is safe for concurrent use.
package mesh
