package renderdata

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgrender/internal/wgctx"
)

// ImageData is a sampled texture: the texture, a view of it and a bind group
// pairing the view with a sampler.
//
// Pixels are uploaded on every update. The view and bind group are only
// recreated when the texture itself was reallocated or the sampler changed.
type ImageData struct {
	texture   wgctx.Texture
	view      wgctx.Slot[hal.TextureView]
	bindGroup wgctx.Slot[hal.BindGroup]
	spread    wgctx.Spread
	ramp      []byte
}

// BindGroup returns the sampler and view binding, or nil before the first
// update.
func (d *ImageData) BindGroup() hal.BindGroup { return d.bindGroup.Get() }

// Texture returns the backing texture.
func (d *ImageData) Texture() *wgctx.Texture { return &d.texture }

// UpdateSurface uploads s, choosing the texture format from its color space.
// Surfaces are sampled with the repeat sampler.
func (d *ImageData) UpdateSurface(gpu GPU, s *Surface) error {
	pixels, err := s.Pixels()
	if err != nil {
		return err
	}
	format := s.ColorSpace.TextureFormat()
	return d.upload(gpu, uint32(s.Width), uint32(s.Height), format, pixels, wgctx.SpreadRepeat) //nolint:gosec // G115: surface sizes are positive and bounded by texture limits
}

// UpdateGradient renders the color ramp of fill and uploads it as a
// GradientTextureSize x 1 RGBA8 texture sampled according to the spread mode.
func (d *ImageData) UpdateGradient(gpu GPU, fill *Fill) error {
	if fill == nil {
		return fmt.Errorf("renderdata: nil gradient fill")
	}
	d.ramp = GradientRamp(d.ramp, fill.Stops)
	return d.upload(gpu, GradientTextureSize, 1, gputypes.TextureFormatRGBA8Unorm, d.ramp, fill.Spread)
}

func (d *ImageData) upload(gpu GPU, width, height uint32, format gputypes.TextureFormat, data []byte, spread wgctx.Spread) error {
	changed, err := gpu.AllocateTexture(&d.texture, width, height, format, data)
	if changed {
		// The old texture is gone even when the upload into the new one failed.
		d.bindGroup.Release()
		d.view.Release()
	}
	if err != nil {
		return err
	}
	if d.bindGroup.Valid() && spread == d.spread {
		return nil
	}

	d.bindGroup.Release()
	if !d.view.Valid() {
		view, err := gpu.CreateTextureView(&d.texture)
		if err != nil {
			return err
		}
		d.view.Replace(view, gpu.ReleaseTextureView)
	}
	bg, err := gpu.CreateBindGroupTexSampled(gpu.Sampler(spread), d.view.Get())
	if err != nil {
		return err
	}
	d.bindGroup.Replace(bg, gpu.ReleaseBindGroup)
	d.spread = spread
	slogger().Debug("renderdata: image rebound", "width", width, "height", height, "format", format, "spread", spread)
	return nil
}

// Release destroys the bind group, view and texture.
func (d *ImageData) Release(gpu GPU) {
	d.bindGroup.Release()
	d.view.Release()
	gpu.ReleaseTexture(&d.texture)
}
