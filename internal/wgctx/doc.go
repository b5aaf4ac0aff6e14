// Package wgctx is the GPU context the render data is allocated through.
//
// A Context wraps a hal.Device and hal.Queue and exposes the small
// allocate/release contract the render-data layer needs: textures and
// buffers that are reused while they still fit and recreated when they do
// not, texture views, bind groups of the two shapes the renderer binds
// (sampler + texture, single uniform buffer), and one shared sampler per
// gradient spread mode.
//
// Every Allocate method reports whether the underlying GPU object was
// replaced. Callers use that flag to decide whether dependent objects such as
// views and bind groups must be rebuilt.
//
// GPU objects are held in a Slot, which destroys the previous object before a
// new one is installed so that a logical resource never has two live handles.
//
// Context is not safe for concurrent use.
package wgctx
