package renderdata

import (
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgrender/internal/wgctx"
)

// GPU allocates the objects render data records own. *wgctx.Context
// implements it.
type GPU interface {
	AllocateTexture(tex *wgctx.Texture, width, height uint32, format gputypes.TextureFormat, data []byte) (bool, error)
	ReleaseTexture(tex *wgctx.Texture)
	CreateTextureView(tex *wgctx.Texture) (hal.TextureView, error)
	ReleaseTextureView(view hal.TextureView)

	AllocateBufferUniform(buf *wgctx.Buffer, data []byte) (bool, error)
	ReleaseBuffer(buf *wgctx.Buffer)

	CreateBindGroupTexSampled(sampler hal.Sampler, view hal.TextureView) (hal.BindGroup, error)
	CreateBindGroupBuffer1Un(buf *wgctx.Buffer) (hal.BindGroup, error)
	ReleaseBindGroup(bg hal.BindGroup)

	Sampler(s wgctx.Spread) hal.Sampler
}

var _ GPU = (*wgctx.Context)(nil)

// uniformBinding is a uniform buffer and the bind group exposing it.
type uniformBinding struct {
	buffer    wgctx.Buffer
	bindGroup wgctx.Slot[hal.BindGroup]
}

// upload writes data into the buffer and recreates the bind group when the
// buffer was reallocated.
func (u *uniformBinding) upload(gpu GPU, data []byte) error {
	changed, err := gpu.AllocateBufferUniform(&u.buffer, data)
	if changed {
		u.bindGroup.Release()
	}
	if err != nil {
		return err
	}
	if u.bindGroup.Valid() {
		return nil
	}
	bg, err := gpu.CreateBindGroupBuffer1Un(&u.buffer)
	if err != nil {
		return err
	}
	u.bindGroup.Replace(bg, gpu.ReleaseBindGroup)
	return nil
}

func (u *uniformBinding) release(gpu GPU) {
	u.bindGroup.Release()
	gpu.ReleaseBuffer(&u.buffer)
}
