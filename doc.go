// Package wgrender prepares vector paint data for WebGPU rendering.
//
// A Renderer turns path shapes, strokes, gradients and raster images into
// GPU-ready meshes and fill resources, keeps them in pooled records that
// survive across frames, and aggregates every mesh staged in a frame into a
// single vertex and index buffer. Pipelines and draw submission are left to
// the caller, which reads the bind groups and staged offsets of each record.
//
// # Frame lifecycle
//
//	r, err := wgrender.New(device, queue)
//	...
//	shape, _, _ := r.AllocateShape()
//	r.BeginFrame(image.Rect(0, 0, 800, 600))
//	region, visible, err := r.UpdateShape(shape, geometry, transform, 255)
//	shape.SettingsShape.UpdateColor(color.NRGBA{R: 255, A: 255})
//	if visible {
//		r.StageShape(shape)
//	}
//	r.EndFrame() // uploads the staged geometry
//	...
//	r.Release()
//
// A Renderer is not safe for concurrent use. All calls for a frame must come
// from one goroutine.
//
// # Logging
//
// By default the package logs nothing. Use SetLogger or WithLogger to enable
// structured logging through log/slog.
package wgrender
