package renderdata

import (
	"image"

	"github.com/gogpu/wgpu/hal"
)

// Viewport holds the device region a composition pass is restricted to.
type Viewport struct {
	Region image.Rectangle

	binding uniformBinding
	scratch []byte
}

// Update uploads r as a vec4 (x0, y0, x1, y1).
func (v *Viewport) Update(gpu GPU, r image.Rectangle) error {
	r = r.Canon()
	v.Region = r
	u := RegionVec4(r)
	v.scratch = appendVec4(v.scratch[:0], u)
	return v.binding.upload(gpu, v.scratch)
}

// BindGroup returns the viewport uniform binding.
func (v *Viewport) BindGroup() hal.BindGroup { return v.binding.bindGroup.Get() }

// Release destroys the uniform buffer and bind group.
func (v *Viewport) Release(gpu GPU) {
	v.binding.release(gpu)
}

func (v *Viewport) recycle() {}
