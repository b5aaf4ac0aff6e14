package wgctx

import (
	"errors"
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

var (
	// ErrNilDevice is returned when a Context is created without a device or queue.
	ErrNilDevice = errors.New("wgctx: nil device or queue")

	// ErrProviderNotHAL is returned when a device provider does not expose
	// HAL device and queue objects.
	ErrProviderNotHAL = errors.New("wgctx: provider does not expose HAL device")
)

// Spread selects how a gradient is sampled outside its [0,1] domain.
type Spread int

const (
	// SpreadPad clamps to the edge colors.
	SpreadPad Spread = iota
	// SpreadReflect mirrors the ramp on every repetition.
	SpreadReflect
	// SpreadRepeat tiles the ramp.
	SpreadRepeat

	spreadCount
)

// String returns the spread mode name.
func (s Spread) String() string {
	switch s {
	case SpreadPad:
		return "pad"
	case SpreadReflect:
		return "reflect"
	case SpreadRepeat:
		return "repeat"
	default:
		return fmt.Sprintf("Spread(%d)", int(s))
	}
}

func (s Spread) addressMode() gputypes.AddressMode {
	switch s {
	case SpreadReflect:
		return gputypes.AddressModeMirrorRepeat
	case SpreadRepeat:
		return gputypes.AddressModeRepeat
	default:
		return gputypes.AddressModeClampToEdge
	}
}

// Context allocates and releases the GPU objects backing render data.
type Context struct {
	device hal.Device
	queue  hal.Queue
	format gputypes.TextureFormat

	samplers [spreadCount]hal.Sampler

	layoutTexSampled hal.BindGroupLayout
	layoutBuffer1Un  hal.BindGroupLayout
}

// New creates a Context on device and queue, creating the shared samplers
// and bind group layouts. The caller keeps ownership of device and queue.
func New(device hal.Device, queue hal.Queue, format gputypes.TextureFormat) (*Context, error) {
	if device == nil || queue == nil {
		return nil, ErrNilDevice
	}
	c := &Context{device: device, queue: queue, format: format}
	if err := c.init(); err != nil {
		c.Release()
		return nil, err
	}
	slogger().Debug("wgctx: context created", "format", format)
	return c, nil
}

// NewFromProvider creates a Context on the device shared by an external
// provider such as a windowing host. The provider's Device must expose
// HalDevice and HalQueue, as *wgpu.Device does. An undefined format selects
// the provider's surface format.
func NewFromProvider(p gpucontext.DeviceProvider, format gputypes.TextureFormat) (*Context, error) {
	if p == nil {
		return nil, ErrNilDevice
	}
	device, queue, err := halFromProvider(p)
	if err != nil {
		return nil, err
	}
	if format == gputypes.TextureFormatUndefined {
		format = p.SurfaceFormat()
	}
	return New(device, queue, format)
}

func halFromProvider(p gpucontext.DeviceProvider) (hal.Device, hal.Queue, error) {
	type halDevice interface {
		HalDevice() hal.Device
		HalQueue() hal.Queue
	}
	if d, ok := p.Device().(halDevice); ok {
		return d.HalDevice(), d.HalQueue(), nil
	}

	// Hosts that predate wgpu.Device expose untyped accessors on the provider.
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := p.(halProvider)
	if !ok {
		return nil, nil, ErrProviderNotHAL
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok {
		return nil, nil, fmt.Errorf("%w: HalDevice is %T", ErrProviderNotHAL, hp.HalDevice())
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok {
		return nil, nil, fmt.Errorf("%w: HalQueue is %T", ErrProviderNotHAL, hp.HalQueue())
	}
	return device, queue, nil
}

func (c *Context) init() error {
	for s := range spreadCount {
		mode := s.addressMode()
		sampler, err := c.device.CreateSampler(&hal.SamplerDescriptor{
			Label:        "wgrender_sampler_" + s.String(),
			AddressModeU: mode,
			AddressModeV: mode,
			AddressModeW: mode,
			MagFilter:    gputypes.FilterModeLinear,
			MinFilter:    gputypes.FilterModeLinear,
			MipmapFilter: gputypes.FilterModeNearest,
			LodMaxClamp:  32,
			Anisotropy:   1,
		})
		if err != nil {
			return fmt.Errorf("wgctx: create %s sampler: %w", s, err)
		}
		c.samplers[s] = sampler
	}

	var err error
	c.layoutTexSampled, err = c.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "wgrender_layout_tex_sampled",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageFragment,
				Sampler:    &gputypes.SamplerBindingLayout{Type: gputypes.SamplerBindingTypeFiltering},
			},
			{
				Binding:    1,
				Visibility: gputypes.ShaderStageFragment,
				Texture: &gputypes.TextureBindingLayout{
					SampleType:    gputypes.TextureSampleTypeFloat,
					ViewDimension: gputypes.TextureViewDimension2D,
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("wgctx: create texture layout: %w", err)
	}

	c.layoutBuffer1Un, err = c.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "wgrender_layout_buffer_1un",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageVertex | gputypes.ShaderStageFragment,
				Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("wgctx: create uniform layout: %w", err)
	}
	return nil
}

// Device returns the HAL device.
func (c *Context) Device() hal.Device { return c.device }

// Queue returns the HAL queue.
func (c *Context) Queue() hal.Queue { return c.queue }

// TargetFormat returns the render target format the context was created for.
func (c *Context) TargetFormat() gputypes.TextureFormat { return c.format }

// Sampler returns the shared linear sampler for a spread mode.
func (c *Context) Sampler(s Spread) hal.Sampler {
	if s < 0 || s >= spreadCount {
		s = SpreadPad
	}
	return c.samplers[s]
}

// Release destroys the shared samplers and layouts. Objects allocated
// through the context must be released by their owners first.
func (c *Context) Release() {
	if c == nil || c.device == nil {
		return
	}
	for i, s := range c.samplers {
		if s != nil {
			c.device.DestroySampler(s)
			c.samplers[i] = nil
		}
	}
	if c.layoutTexSampled != nil {
		c.device.DestroyBindGroupLayout(c.layoutTexSampled)
		c.layoutTexSampled = nil
	}
	if c.layoutBuffer1Un != nil {
		c.device.DestroyBindGroupLayout(c.layoutBuffer1Un)
		c.layoutBuffer1Un = nil
	}
}
