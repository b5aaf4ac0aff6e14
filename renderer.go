package wgrender

import (
	"errors"
	"fmt"
	"image"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgrender/internal/fixmath"
	"github.com/gogpu/wgrender/internal/mesh"
	"github.com/gogpu/wgrender/internal/pool"
	"github.com/gogpu/wgrender/internal/renderdata"
	"github.com/gogpu/wgrender/internal/stage"
	"github.com/gogpu/wgrender/internal/wgctx"
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/vec"
)

var (
	// ErrNilDevice is returned by New when device or queue is nil.
	ErrNilDevice = wgctx.ErrNilDevice

	// ErrProviderNotHAL is returned by NewFromProvider when the provider
	// does not expose HAL device and queue objects.
	ErrProviderNotHAL = wgctx.ErrProviderNotHAL

	// ErrStaleHandle is returned when a handle refers to a freed record.
	ErrStaleHandle = pool.ErrStaleHandle

	// ErrDoubleFree is returned when a record is freed twice.
	ErrDoubleFree = pool.ErrDoubleFree

	// ErrRendererReleased is returned by every call after Release.
	ErrRendererReleased = errors.New("wgrender: renderer released")

	// ErrFrameState is returned when a frame call is made out of order:
	// BeginFrame inside a frame, or staging outside one.
	ErrFrameState = errors.New("wgrender: call out of frame order")
)

// Renderer owns the GPU context, the record pools and the stage buffer.
type Renderer struct {
	ctx      *wgctx.Context
	fastBBox bool

	bufs      mesh.GeometryBufferPool
	shapes    *renderdata.ShapePool
	pictures  *renderdata.PicturePool
	viewports *renderdata.ViewportPool
	effects   *renderdata.EffectParamsPool
	stage     *stage.Geometry

	target   image.Rectangle
	inFrame  bool
	released bool
}

// New creates a Renderer on a HAL device and queue. The caller keeps
// ownership of both and must keep them alive until Release.
func New(device hal.Device, queue hal.Queue, opts ...Option) (*Renderer, error) {
	o := applyOptions(opts)
	format := o.format
	if format == gputypes.TextureFormatUndefined {
		format = gputypes.TextureFormatBGRA8Unorm
	}
	ctx, err := wgctx.New(device, queue, format)
	if err != nil {
		return nil, err
	}
	return newRenderer(ctx, o), nil
}

// NewFromProvider creates a Renderer on the device of a host application,
// such as a gogpu window. The target format defaults to the provider's
// surface format.
func NewFromProvider(p gpucontext.DeviceProvider, opts ...Option) (*Renderer, error) {
	o := applyOptions(opts)
	ctx, err := wgctx.NewFromProvider(p, o.format)
	if err != nil {
		return nil, err
	}
	return newRenderer(ctx, o), nil
}

func applyOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger != nil {
		SetLogger(o.logger)
	}
	return o
}

func newRenderer(ctx *wgctx.Context, o options) *Renderer {
	r := &Renderer{
		ctx:       ctx,
		fastBBox:  o.fastBBox,
		shapes:    renderdata.NewShapePool(),
		pictures:  renderdata.NewPicturePool(),
		viewports: renderdata.NewViewportPool(),
		effects:   renderdata.NewEffectParamsPool(),
		stage:     stage.New(o.stageCapacity),
	}
	Logger().Info("wgrender: renderer created",
		"format", ctx.TargetFormat(), "fast_bbox", o.fastBBox, "stage_capacity", o.stageCapacity)
	return r
}

// GPU returns the allocator records use for their GPU objects, for calls
// such as EffectParams.UpdateGaussianBlur.
func (r *Renderer) GPU() GPU { return r.ctx }

// TargetFormat returns the render target format.
func (r *Renderer) TargetFormat() gputypes.TextureFormat { return r.ctx.TargetFormat() }

// Sampler returns the shared linear sampler for a spread mode.
func (r *Renderer) Sampler(s Spread) hal.Sampler { return r.ctx.Sampler(s) }

func (r *Renderer) check() error {
	if r.released {
		return ErrRendererReleased
	}
	return nil
}

func (r *Renderer) checkFrame() error {
	if err := r.check(); err != nil {
		return err
	}
	if !r.inFrame {
		return ErrFrameState
	}
	return nil
}

// AllocateShape returns a shape record and its handle.
func (r *Renderer) AllocateShape() (*Shape, Handle, error) {
	if err := r.check(); err != nil {
		return nil, Handle{}, err
	}
	s, h := r.shapes.Allocate()
	return s, h, nil
}

// FreeShape returns s to the pool. Its geometry and clips are cleared; its
// GPU objects are kept for the next allocation.
func (r *Renderer) FreeShape(s *Shape) error {
	if err := r.check(); err != nil {
		return err
	}
	return r.shapes.Free(s)
}

// Shape resolves a shape handle.
func (r *Renderer) Shape(h Handle) (*Shape, error) {
	if err := r.check(); err != nil {
		return nil, err
	}
	return r.shapes.Get(h)
}

// ShapeHandle returns the handle of an allocated shape, for use in clip
// lists.
func (r *Renderer) ShapeHandle(s *Shape) (Handle, bool) {
	return r.shapes.HandleOf(s)
}

// AllocatePicture returns a picture record and its handle.
func (r *Renderer) AllocatePicture() (*Picture, Handle, error) {
	if err := r.check(); err != nil {
		return nil, Handle{}, err
	}
	p, h := r.pictures.Allocate()
	return p, h, nil
}

// FreePicture returns p to the pool, keeping its texture.
func (r *Renderer) FreePicture(p *Picture) error {
	if err := r.check(); err != nil {
		return err
	}
	return r.pictures.Free(p)
}

// Picture resolves a picture handle.
func (r *Renderer) Picture(h Handle) (*Picture, error) {
	if err := r.check(); err != nil {
		return nil, err
	}
	return r.pictures.Get(h)
}

// AllocateViewport returns a viewport record and its handle.
func (r *Renderer) AllocateViewport() (*Viewport, Handle, error) {
	if err := r.check(); err != nil {
		return nil, Handle{}, err
	}
	v, h := r.viewports.Allocate()
	return v, h, nil
}

// FreeViewport returns v to the pool.
func (r *Renderer) FreeViewport(v *Viewport) error {
	if err := r.check(); err != nil {
		return err
	}
	return r.viewports.Free(v)
}

// AllocateEffect returns an effect parameter record and its handle.
func (r *Renderer) AllocateEffect() (*EffectParams, Handle, error) {
	if err := r.check(); err != nil {
		return nil, Handle{}, err
	}
	e, h := r.effects.Allocate()
	return e, h, nil
}

// FreeEffect returns e to the pool.
func (r *Renderer) FreeEffect(e *EffectParams) error {
	if err := r.check(); err != nil {
		return err
	}
	return r.effects.Free(e)
}

// BeginFrame starts a frame drawing into target. Geometry staged by the
// previous frame is discarded.
func (r *Renderer) BeginFrame(target image.Rectangle) error {
	if err := r.check(); err != nil {
		return err
	}
	if r.inFrame {
		return ErrFrameState
	}
	r.stage.Clear()
	r.target = target.Canon()
	r.inFrame = true
	return nil
}

// UpdateShape rebuilds the meshes of s and sets the transform and opacity of
// both its passes. It returns the device region the shape covers within the
// frame target and whether that region is non-empty.
func (r *Renderer) UpdateShape(s *Shape, g ShapeGeometry, tr matrix.Matrix, opacity uint8) (image.Rectangle, bool, error) {
	if err := r.checkFrame(); err != nil {
		return image.Rectangle{}, false, err
	}
	s.UpdateMeshes(g, tr, &r.bufs)
	cs := targetColorSpace(r.ctx.TargetFormat())
	s.SettingsShape.UpdateTransform(tr, cs, opacity)
	s.SettingsStroke.UpdateTransform(tr, cs, opacity)

	if s.Shapes.Len() == 0 && s.Strokes.Len() == 0 {
		return image.Rectangle{}, false, nil
	}
	region, visible := r.deviceRegion(s.PMin, s.PMax, tr)
	return region, visible, nil
}

// UpdatePicture uploads surf into p and sets its transform and opacity. It
// returns the covered device region like UpdateShape.
func (r *Renderer) UpdatePicture(p *Picture, surf *Surface, tr matrix.Matrix, opacity uint8) (image.Rectangle, bool, error) {
	if err := r.checkFrame(); err != nil {
		return image.Rectangle{}, false, err
	}
	if err := p.UpdateSurface(r.ctx, surf); err != nil {
		return image.Rectangle{}, false, err
	}
	p.Settings.UpdateTransform(tr, surf.ColorSpace, opacity)
	size := vec.Vec2{X: float64(surf.Width), Y: float64(surf.Height)}
	region, visible := r.deviceRegion(vec.Vec2{}, size, tr)
	return region, visible, nil
}

// SetFill switches s to a gradient fill.
func (r *Renderer) SetFill(s *RenderSettings, f *Fill) error {
	if err := r.check(); err != nil {
		return err
	}
	return s.UpdateFill(r.ctx, f)
}

// UpdateViewport uploads the region of v.
func (r *Renderer) UpdateViewport(v *Viewport, region image.Rectangle) error {
	if err := r.check(); err != nil {
		return err
	}
	return v.Update(r.ctx, region)
}

// deviceRegion bounds the transformed local box pmin..pmax in sub-pixel
// precision and clips it to the frame target.
func (r *Renderer) deviceRegion(pmin, pmax vec.Vec2, tr matrix.Matrix) (image.Rectangle, bool) {
	o := fixmath.Outline{
		Points: []fixmath.Point{
			fixmath.Transform(pmin, tr),
			fixmath.Transform(vec.Vec2{X: pmax.X, Y: pmin.Y}, tr),
			fixmath.Transform(pmax, tr),
			fixmath.Transform(vec.Vec2{X: pmin.X, Y: pmax.Y}, tr),
		},
		Contours: []int{3},
	}
	return fixmath.UpdateOutlineBBox(&o, r.target, r.fastBBox)
}

// StageShape uploads the uniforms of s and appends its meshes to the frame.
func (r *Renderer) StageShape(s *Shape) error {
	if err := r.checkFrame(); err != nil {
		return err
	}
	if err := s.SettingsShape.Flush(r.ctx); err != nil {
		return fmt.Errorf("wgrender: shape settings: %w", err)
	}
	if s.Strokes.Len() > 0 {
		if err := s.SettingsStroke.Flush(r.ctx); err != nil {
			return fmt.Errorf("wgrender: stroke settings: %w", err)
		}
	}
	r.stage.AppendShape(s)
	return nil
}

// StagePicture uploads the uniforms of p and appends its quad to the frame.
func (r *Renderer) StagePicture(p *Picture) error {
	if err := r.checkFrame(); err != nil {
		return err
	}
	if err := p.Settings.Flush(r.ctx); err != nil {
		return fmt.Errorf("wgrender: picture settings: %w", err)
	}
	r.stage.AppendPicture(p)
	return nil
}

// ResolveClips returns the live shapes clipping p. Handles of freed shapes
// are skipped.
func (r *Renderer) ResolveClips(p *Paint) []*Shape {
	clips := make([]*Shape, 0, len(p.Clips))
	for _, h := range p.Clips {
		if s, err := r.shapes.Get(h); err == nil {
			clips = append(clips, s)
		}
	}
	return clips
}

// EndFrame uploads the staged geometry. Offsets recorded in staged meshes
// stay valid until the next BeginFrame.
func (r *Renderer) EndFrame() error {
	if err := r.checkFrame(); err != nil {
		return err
	}
	r.inFrame = false
	if err := r.stage.Flush(r.ctx); err != nil {
		return fmt.Errorf("wgrender: stage flush: %w", err)
	}
	return nil
}

// StageStats returns the sizes of the geometry staged in the current or
// last frame.
func (r *Renderer) StageStats() StageStats { return r.stage.Stats() }

// Buffers returns the staged vertex and index buffers and the shared
// triangle fan index buffer, as uploaded by the last EndFrame.
func (r *Renderer) Buffers() (vertex, index, fan hal.Buffer) {
	return r.stage.VertexBuffer().Handle(), r.stage.IndexBuffer().Handle(), r.stage.IndexFanBuffer().Handle()
}

// Release destroys every GPU object the renderer created. The device and
// queue are left to the caller. Release is idempotent.
func (r *Renderer) Release() {
	if r.released {
		return
	}
	r.released = true
	if r.inFrame {
		Logger().Warn("wgrender: released during a frame, staged geometry dropped",
			"meshes", r.stage.Stats().Meshes)
		r.inFrame = false
	}
	r.shapes.Release(r.ctx)
	r.pictures.Release(r.ctx)
	r.viewports.Release(r.ctx)
	r.effects.Release(r.ctx)
	r.stage.Release(r.ctx)
	r.ctx.Release()
	Logger().Info("wgrender: renderer released")
}

func targetColorSpace(f gputypes.TextureFormat) ColorSpace {
	switch f {
	case gputypes.TextureFormatRGBA8Unorm, gputypes.TextureFormatRGBA8UnormSrgb:
		return ColorSpaceABGR8888
	default:
		return ColorSpaceARGB8888
	}
}
