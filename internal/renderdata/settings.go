package renderdata

import (
	"fmt"
	"image/color"

	"github.com/gogpu/wgpu/hal"
	"seehuhn.de/go/geom/matrix"
)

// RasterType selects the fill pipeline family.
type RasterType int

const (
	// RasterSolid fills with the uniform color.
	RasterSolid RasterType = iota
	// RasterGradient samples a gradient ramp.
	RasterGradient
)

// RenderSettings is the fill state of one paint pass: the uniform block, its
// GPU buffer and bind group, and the gradient ramp for gradient fills.
//
// Update methods change the CPU copy; Flush uploads it.
type RenderSettings struct {
	Uniform    PaintUniform
	RasterType RasterType
	FillType   FillType
	// Skip is set for fills that cannot produce visible pixels.
	Skip bool

	gradient ImageData
	binding  uniformBinding
	scratch  []byte
	dirty    bool
}

// UpdateTransform sets the paint transform, color space and opacity.
func (s *RenderSettings) UpdateTransform(tr matrix.Matrix, cs ColorSpace, opacity uint8) {
	s.Uniform.Transform = Mat4From(tr)
	s.Uniform.Options = Vec4{float32(cs), 0, 0, float32(opacity) / 255}
	s.dirty = true
}

// UpdateFill switches to a gradient fill and uploads its color ramp.
func (s *RenderSettings) UpdateFill(gpu GPU, fill *Fill) error {
	if fill == nil {
		return fmt.Errorf("renderdata: nil gradient fill")
	}
	if fill.Type != FillTypeLinear && fill.Type != FillTypeRadial {
		return fmt.Errorf("renderdata: %v is not a gradient fill", fill.Type)
	}
	s.Uniform.Gradient.update(fill)
	if err := s.gradient.UpdateGradient(gpu, fill); err != nil {
		return err
	}
	s.RasterType = RasterGradient
	s.FillType = fill.Type
	s.Skip = false
	s.dirty = true
	return nil
}

// UpdateColor switches to a solid fill. Fully transparent colors set Skip.
func (s *RenderSettings) UpdateColor(c color.NRGBA) {
	s.Uniform.Color = ColorVec4(c)
	s.RasterType = RasterSolid
	s.FillType = FillTypeSolid
	s.Skip = c.A == 0
	s.dirty = true
}

// Flush uploads the uniform block if it changed since the last flush.
func (s *RenderSettings) Flush(gpu GPU) error {
	if !s.dirty && s.binding.bindGroup.Valid() {
		return nil
	}
	s.scratch = s.Uniform.AppendBytes(s.scratch[:0])
	if err := s.binding.upload(gpu, s.scratch); err != nil {
		return err
	}
	s.dirty = false
	return nil
}

// BindGroup returns the uniform bind group, or nil before the first Flush.
func (s *RenderSettings) BindGroup() hal.BindGroup { return s.binding.bindGroup.Get() }

// GradientBindGroup returns the ramp bind group of a gradient fill.
func (s *RenderSettings) GradientBindGroup() hal.BindGroup { return s.gradient.BindGroup() }

// Release destroys the uniform buffer and the gradient ramp.
func (s *RenderSettings) Release(gpu GPU) {
	s.binding.release(gpu)
	s.gradient.Release(gpu)
	s.dirty = true
}
