package wgctx

import (
	"encoding/binary"
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// copyAlignment is the granularity of buffer sizes and queue writes.
const copyAlignment = 4

// Texture is a 2D texture slot together with the shape it was created with.
type Texture struct {
	slot   Slot[hal.Texture]
	width  uint32
	height uint32
	format gputypes.TextureFormat
}

// Handle returns the GPU texture, or nil when none is allocated.
func (t *Texture) Handle() hal.Texture { return t.slot.Get() }

// Size returns the texture dimensions.
func (t *Texture) Size() (width, height uint32) { return t.width, t.height }

// Format returns the texel format.
func (t *Texture) Format() gputypes.TextureFormat { return t.format }

// Buffer is a GPU buffer slot together with its allocated size.
type Buffer struct {
	slot Slot[hal.Buffer]
	size uint64
}

// Handle returns the GPU buffer, or nil when none is allocated.
func (b *Buffer) Handle() hal.Buffer { return b.slot.Get() }

// Size returns the allocated size in bytes.
func (b *Buffer) Size() uint64 { return b.size }

// BytesPerPixel returns the texel size of the formats the renderer uploads.
func BytesPerPixel(format gputypes.TextureFormat) uint32 {
	switch format {
	case gputypes.TextureFormatR8Unorm:
		return 1
	default:
		return 4
	}
}

// AllocateTexture uploads data into tex, creating the texture when none
// exists or when the size or format changed. It reports whether a new texture
// was created. data holds tightly packed rows of width texels.
func (c *Context) AllocateTexture(tex *Texture, width, height uint32, format gputypes.TextureFormat, data []byte) (bool, error) {
	changed := false
	if !tex.slot.Valid() || tex.width != width || tex.height != height || tex.format != format {
		t, err := c.device.CreateTexture(&hal.TextureDescriptor{
			Label:         "wgrender_texture",
			Size:          hal.Extent3D{Width: width, Height: height, DepthOrArrayLayers: 1},
			MipLevelCount: 1,
			SampleCount:   1,
			Dimension:     gputypes.TextureDimension2D,
			Format:        format,
			Usage:         gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopyDst,
		})
		if err != nil {
			return false, fmt.Errorf("wgctx: create texture %dx%d: %w", width, height, err)
		}
		tex.slot.Replace(t, c.device.DestroyTexture)
		tex.width, tex.height, tex.format = width, height, format
		changed = true
		slogger().Debug("wgctx: texture allocated", "width", width, "height", height, "format", format)
	}

	if len(data) > 0 {
		err := c.queue.WriteTexture(
			&hal.ImageCopyTexture{Texture: tex.slot.Get(), Aspect: gputypes.TextureAspectAll},
			data,
			&hal.ImageDataLayout{BytesPerRow: width * BytesPerPixel(format), RowsPerImage: height},
			&hal.Extent3D{Width: width, Height: height, DepthOrArrayLayers: 1},
		)
		if err != nil {
			return changed, fmt.Errorf("wgctx: write texture: %w", err)
		}
	}
	return changed, nil
}

// ReleaseTexture destroys the texture held by tex.
func (c *Context) ReleaseTexture(tex *Texture) {
	tex.slot.Release()
	tex.width, tex.height = 0, 0
}

// CreateTextureView creates a full 2D view of tex.
func (c *Context) CreateTextureView(tex *Texture) (hal.TextureView, error) {
	if !tex.slot.Valid() {
		return nil, fmt.Errorf("wgctx: create view of unallocated texture")
	}
	view, err := c.device.CreateTextureView(tex.slot.Get(), &hal.TextureViewDescriptor{
		Label:         "wgrender_texture_view",
		Format:        tex.format,
		Dimension:     gputypes.TextureViewDimension2D,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: 1,
	})
	if err != nil {
		return nil, fmt.Errorf("wgctx: create texture view: %w", err)
	}
	return view, nil
}

// ReleaseTextureView destroys a view created by CreateTextureView.
func (c *Context) ReleaseTextureView(view hal.TextureView) {
	if view != nil {
		c.device.DestroyTextureView(view)
	}
}

// AllocateBufferVertex uploads vertex data, reusing buf while it is large
// enough. It reports whether a new buffer was created.
func (c *Context) AllocateBufferVertex(buf *Buffer, data []byte) (bool, error) {
	return c.allocateBuffer(buf, data, gputypes.BufferUsageVertex|gputypes.BufferUsageCopyDst, "wgrender_vertex")
}

// AllocateBufferIndex uploads index data, reusing buf while it is large
// enough. It reports whether a new buffer was created.
func (c *Context) AllocateBufferIndex(buf *Buffer, data []byte) (bool, error) {
	return c.allocateBuffer(buf, data, gputypes.BufferUsageIndex|gputypes.BufferUsageCopyDst, "wgrender_index")
}

// AllocateBufferUniform uploads uniform data, reusing buf while it is large
// enough. It reports whether a new buffer was created.
func (c *Context) AllocateBufferUniform(buf *Buffer, data []byte) (bool, error) {
	return c.allocateBuffer(buf, data, gputypes.BufferUsageUniform|gputypes.BufferUsageCopyDst, "wgrender_uniform")
}

// AllocateBufferIndexFan makes buf hold triangle-fan indices (0, i+1, i+2)
// for polygons of up to vertexCount vertices. The buffer is only rebuilt
// when it is too small, in which case true is returned.
func (c *Context) AllocateBufferIndexFan(buf *Buffer, vertexCount uint64) (bool, error) {
	if vertexCount < 3 {
		return false, nil
	}
	indexCount := (vertexCount - 2) * 3
	if buf.slot.Valid() && buf.size >= indexCount*4 {
		return false, nil
	}

	data := make([]byte, 0, indexCount*4)
	for i := uint32(0); uint64(i) < vertexCount-2; i++ {
		data = binary.LittleEndian.AppendUint32(data, 0)
		data = binary.LittleEndian.AppendUint32(data, i+1)
		data = binary.LittleEndian.AppendUint32(data, i+2)
	}
	buf.slot.Release()
	return c.allocateBuffer(buf, data, gputypes.BufferUsageIndex|gputypes.BufferUsageCopyDst, "wgrender_index_fan")
}

func (c *Context) allocateBuffer(buf *Buffer, data []byte, usage gputypes.BufferUsage, label string) (bool, error) {
	size := alignUp(uint64(len(data)))
	changed := false
	if !buf.slot.Valid() || buf.size < size {
		b, err := c.device.CreateBuffer(&hal.BufferDescriptor{
			Label: label,
			Size:  max(size, copyAlignment),
			Usage: usage,
		})
		if err != nil {
			return false, fmt.Errorf("wgctx: create %s buffer (%d bytes): %w", label, size, err)
		}
		buf.slot.Replace(b, c.device.DestroyBuffer)
		buf.size = max(size, copyAlignment)
		changed = true
		slogger().Debug("wgctx: buffer allocated", "label", label, "size", buf.size)
	}

	if len(data) > 0 {
		if pad := int(size) - len(data); pad > 0 {
			data = append(data[:len(data):len(data)], make([]byte, pad)...)
		}
		if err := c.queue.WriteBuffer(buf.slot.Get(), 0, data); err != nil {
			return changed, fmt.Errorf("wgctx: write %s buffer: %w", label, err)
		}
	}
	return changed, nil
}

// ReleaseBuffer destroys the buffer held by buf.
func (c *Context) ReleaseBuffer(buf *Buffer) {
	buf.slot.Release()
	buf.size = 0
}

// CreateBindGroupTexSampled binds a sampler at 0 and a texture view at 1.
func (c *Context) CreateBindGroupTexSampled(sampler hal.Sampler, view hal.TextureView) (hal.BindGroup, error) {
	if sampler == nil || view == nil {
		return nil, fmt.Errorf("wgctx: texture bind group needs sampler and view")
	}
	bg, err := c.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  "wgrender_bind_tex_sampled",
		Layout: c.layoutTexSampled,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.SamplerBinding{Sampler: sampler.NativeHandle()}},
			{Binding: 1, Resource: gputypes.TextureViewBinding{TextureView: view.NativeHandle()}},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("wgctx: create texture bind group: %w", err)
	}
	return bg, nil
}

// CreateBindGroupBuffer1Un binds a single uniform buffer at 0.
func (c *Context) CreateBindGroupBuffer1Un(buf *Buffer) (hal.BindGroup, error) {
	if !buf.slot.Valid() {
		return nil, fmt.Errorf("wgctx: uniform bind group needs an allocated buffer")
	}
	bg, err := c.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  "wgrender_bind_buffer_1un",
		Layout: c.layoutBuffer1Un,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.BufferBinding{Buffer: buf.slot.Get().NativeHandle(), Size: buf.size}},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("wgctx: create uniform bind group: %w", err)
	}
	return bg, nil
}

// ReleaseBindGroup destroys a bind group created by this context.
func (c *Context) ReleaseBindGroup(bg hal.BindGroup) {
	if bg != nil {
		c.device.DestroyBindGroup(bg)
	}
}

func alignUp(n uint64) uint64 {
	return (n + copyAlignment - 1) &^ (copyAlignment - 1)
}
