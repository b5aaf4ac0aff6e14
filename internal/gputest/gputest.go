// Package gputest provides a noop-backed HAL device that counts GPU object
// lifetimes, for tests of code that allocates through internal/wgctx.
package gputest

import (
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"
)

// Object kinds tracked by Device.
const (
	KindBuffer    = "buffer"
	KindTexture   = "texture"
	KindView      = "view"
	KindSampler   = "sampler"
	KindLayout    = "layout"
	KindBindGroup = "bindgroup"
)

// Device wraps a noop device and counts creations and destructions.
type Device struct {
	hal.Device
	Created   map[string]int
	Destroyed map[string]int
}

// Live returns the number of objects of kind that are currently alive.
func (d *Device) Live(kind string) int {
	return d.Created[kind] - d.Destroyed[kind]
}

func (d *Device) CreateBuffer(desc *hal.BufferDescriptor) (hal.Buffer, error) {
	d.Created[KindBuffer]++
	return d.Device.CreateBuffer(desc)
}

func (d *Device) DestroyBuffer(b hal.Buffer) {
	d.Destroyed[KindBuffer]++
	d.Device.DestroyBuffer(b)
}

func (d *Device) CreateTexture(desc *hal.TextureDescriptor) (hal.Texture, error) {
	d.Created[KindTexture]++
	return d.Device.CreateTexture(desc)
}

func (d *Device) DestroyTexture(t hal.Texture) {
	d.Destroyed[KindTexture]++
	d.Device.DestroyTexture(t)
}

func (d *Device) CreateTextureView(t hal.Texture, desc *hal.TextureViewDescriptor) (hal.TextureView, error) {
	d.Created[KindView]++
	return d.Device.CreateTextureView(t, desc)
}

func (d *Device) DestroyTextureView(v hal.TextureView) {
	d.Destroyed[KindView]++
	d.Device.DestroyTextureView(v)
}

func (d *Device) CreateSampler(desc *hal.SamplerDescriptor) (hal.Sampler, error) {
	d.Created[KindSampler]++
	return d.Device.CreateSampler(desc)
}

func (d *Device) DestroySampler(s hal.Sampler) {
	d.Destroyed[KindSampler]++
	d.Device.DestroySampler(s)
}

func (d *Device) CreateBindGroupLayout(desc *hal.BindGroupLayoutDescriptor) (hal.BindGroupLayout, error) {
	d.Created[KindLayout]++
	return d.Device.CreateBindGroupLayout(desc)
}

func (d *Device) DestroyBindGroupLayout(l hal.BindGroupLayout) {
	d.Destroyed[KindLayout]++
	d.Device.DestroyBindGroupLayout(l)
}

func (d *Device) CreateBindGroup(desc *hal.BindGroupDescriptor) (hal.BindGroup, error) {
	d.Created[KindBindGroup]++
	return d.Device.CreateBindGroup(desc)
}

func (d *Device) DestroyBindGroup(g hal.BindGroup) {
	d.Destroyed[KindBindGroup]++
	d.Device.DestroyBindGroup(g)
}

// Queue wraps a noop queue and records the last data written to each buffer.
type Queue struct {
	hal.Queue
	Writes        map[hal.Buffer][]byte
	TextureWrites int
}

func (q *Queue) WriteBuffer(b hal.Buffer, offset uint64, data []byte) error {
	q.Writes[b] = append([]byte(nil), data...)
	return q.Queue.WriteBuffer(b, offset, data)
}

func (q *Queue) WriteTexture(dst *hal.ImageCopyTexture, data []byte, layout *hal.ImageDataLayout, size *hal.Extent3D) error {
	q.TextureWrites++
	return q.Queue.WriteTexture(dst, data, layout, size)
}

// Open creates a counting device and queue on the noop backend. They are
// destroyed when the test ends.
func Open(t testing.TB) (*Device, *Queue) {
	t.Helper()
	api := noop.API{}
	instance, err := api.CreateInstance(nil)
	if err != nil {
		t.Fatalf("CreateInstance failed: %v", err)
	}
	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		instance.Destroy()
		t.Fatal("noop backend exposes no adapter")
	}
	openDev, err := adapters[0].Adapter.Open(0, gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() {
		openDev.Device.Destroy()
		instance.Destroy()
	})
	dev := &Device{
		Device:    openDev.Device,
		Created:   map[string]int{},
		Destroyed: map[string]int{},
	}
	queue := &Queue{
		Queue:  openDev.Queue,
		Writes: map[hal.Buffer][]byte{},
	}
	return dev, queue
}
