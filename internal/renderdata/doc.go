// Package renderdata holds the per-paint GPU state of the renderer.
//
// Each paint kind has a record type: Shape, Picture, Viewport and
// EffectParams. Records own CPU-side meshes and the GPU objects (uniform
// buffers, textures, bind groups) a draw needs. They are recycled through
// typed pools so GPU objects survive across frames, and are re-uploaded only
// when their shape changes.
//
// All methods that touch the GPU take a GPU, normally a *wgctx.Context.
// Records are not safe for concurrent use.
package renderdata
