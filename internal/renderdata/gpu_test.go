package renderdata

import (
	"errors"
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgrender/internal/gputest"
	"github.com/gogpu/wgrender/internal/wgctx"
)

var errInjected = errors.New("injected failure")

// failingGPU fails the selected calls once, after the underlying context has
// done its work where that matters.
type failingGPU struct {
	*wgctx.Context
	failView         bool
	failTextureWrite bool
	failUniformWrite bool
}

func (g *failingGPU) CreateTextureView(tex *wgctx.Texture) (hal.TextureView, error) {
	if g.failView {
		g.failView = false
		return nil, errInjected
	}
	return g.Context.CreateTextureView(tex)
}

func (g *failingGPU) AllocateTexture(tex *wgctx.Texture, width, height uint32, format gputypes.TextureFormat, data []byte) (bool, error) {
	changed, err := g.Context.AllocateTexture(tex, width, height, format, data)
	if err == nil && g.failTextureWrite {
		g.failTextureWrite = false
		return changed, errInjected
	}
	return changed, err
}

func (g *failingGPU) AllocateBufferUniform(buf *wgctx.Buffer, data []byte) (bool, error) {
	changed, err := g.Context.AllocateBufferUniform(buf, data)
	if err == nil && g.failUniformWrite {
		g.failUniformWrite = false
		return changed, errInjected
	}
	return changed, err
}

func rgbaSurface(size int) *Surface {
	return &Surface{Data: make([]byte, size*size*4), Width: size, Height: size, ColorSpace: ColorSpaceARGB8888}
}

func TestImageDataRecoversFromFailedRebind(t *testing.T) {
	tests := []struct {
		name   string
		inject func(g *failingGPU)
	}{
		{"view creation", func(g *failingGPU) { g.failView = true }},
		{"texture write", func(g *failingGPU) { g.failTextureWrite = true }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, dev, _ := newGPU(t)
			g := &failingGPU{Context: ctx}
			var d ImageData

			if err := d.UpdateSurface(g, rgbaSurface(2)); err != nil {
				t.Fatal(err)
			}
			tt.inject(g)
			if err := d.UpdateSurface(g, rgbaSurface(4)); !errors.Is(err, errInjected) {
				t.Fatalf("resize error = %v, want injected failure", err)
			}
			if d.BindGroup() != nil {
				t.Error("bind group of the destroyed texture survived the failed resize")
			}
			if got := dev.Live(gputest.KindView); got != 0 {
				t.Errorf("live views after failed resize = %d, want 0", got)
			}

			if err := d.UpdateSurface(g, rgbaSurface(4)); err != nil {
				t.Fatal(err)
			}
			if d.BindGroup() == nil {
				t.Fatal("retry did not rebind")
			}
			if got := dev.Created[gputest.KindView]; got != 2 {
				t.Errorf("views created = %d, want a new view for the new texture", got)
			}
			if dev.Live(gputest.KindTexture) != 1 || dev.Live(gputest.KindView) != 1 || dev.Live(gputest.KindBindGroup) != 1 {
				t.Errorf("live textures=%d views=%d bind groups=%d, want 1 each",
					dev.Live(gputest.KindTexture), dev.Live(gputest.KindView), dev.Live(gputest.KindBindGroup))
			}
			d.Release(g)
		})
	}
}

func TestUniformBindingRecoversFromFailedWrite(t *testing.T) {
	ctx, dev, _ := newGPU(t)
	g := &failingGPU{Context: ctx}
	var u uniformBinding

	if err := u.upload(g, make([]byte, 16)); err != nil {
		t.Fatal(err)
	}
	g.failUniformWrite = true
	if err := u.upload(g, make([]byte, 256)); !errors.Is(err, errInjected) {
		t.Fatalf("upload error = %v, want injected failure", err)
	}
	if u.bindGroup.Valid() {
		t.Error("bind group of the destroyed buffer survived the failed upload")
	}

	if err := u.upload(g, make([]byte, 256)); err != nil {
		t.Fatal(err)
	}
	if !u.bindGroup.Valid() {
		t.Fatal("retry did not rebind")
	}
	if got := dev.Created[gputest.KindBindGroup]; got != 2 {
		t.Errorf("bind groups created = %d, want 2", got)
	}
	if dev.Live(gputest.KindBuffer) != 1 || dev.Live(gputest.KindBindGroup) != 1 {
		t.Errorf("live buffers=%d bind groups=%d, want 1 each",
			dev.Live(gputest.KindBuffer), dev.Live(gputest.KindBindGroup))
	}
	u.release(g)
}
