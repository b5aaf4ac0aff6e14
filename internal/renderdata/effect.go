package renderdata

import (
	"encoding/binary"
	"image/color"
	"math"

	"github.com/gogpu/wgpu/hal"
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/vec"
)

const (
	// GaussianMaxLevel is the number of blur passes at quality 100.
	GaussianMaxLevel = 3

	// GaussianKernelSizeMax bounds the blur kernel in device pixels.
	GaussianKernelSizeMax = 128.0
)

// GaussianBlur blurs the paint content.
type GaussianBlur struct {
	Sigma   float64
	Quality int // 0 to 100
}

// DropShadow draws a blurred, offset, tinted copy behind the content.
type DropShadow struct {
	Color    color.NRGBA
	Angle    float64 // degrees, 0 points down
	Distance float64
	Sigma    float64
	Quality  int
}

// FillEffect replaces the content color, keeping coverage.
type FillEffect struct {
	Color color.NRGBA
}

// Tint maps luminance between Black and White. Alpha of the colors is
// ignored.
type Tint struct {
	Black, White color.NRGBA
	Intensity    uint8
}

// Tritone maps shadows, midtones and highlights to three colors. Alpha of
// the colors is ignored.
type Tritone struct {
	Shadow, Midtone, Highlight color.NRGBA
	Blender                    uint8
}

// EffectUniform is the parameter block of the post-processing shaders.
//
// Blur: sigma, scale, kernel size. Drop shadow: as blur, then color in [4:8]
// and offset in [8:10]. Fill: color in [0:4]. Tint: black in [0:3], white in
// [4:7], intensity at 8. Tritone: shadow, midtone and highlight at 0, 4 and 8,
// blender at 11.
type EffectUniform [16]float32

// EffectParams is the render data of a post-processing effect.
type EffectParams struct {
	Uniform EffectUniform
	// Level is the number of blur passes.
	Level int
	// Extend is the number of device pixels the effect grows the region by.
	Extend uint32
	// Offset is the device-space shadow displacement.
	Offset vec.Vec2

	binding uniformBinding
	scratch []byte
}

// effectScale is the x-axis scale of a transform.
func effectScale(tr matrix.Matrix) float64 {
	return math.Hypot(tr[0], tr[2])
}

func blurLevel(quality int) int {
	return int(GaussianMaxLevel*(float32(quality-1)*0.01)) + 1
}

func (u *EffectUniform) blur(sigma, scale float64) (extend uint32, ok bool) {
	kernel := min(GaussianKernelSizeMax, 2*sigma*scale)
	if sigma <= 0 || kernel <= 0 {
		return 0, false
	}
	u[0] = float32(sigma)
	u[1] = float32(min(GaussianKernelSizeMax/kernel, scale))
	u[2] = float32(kernel)
	u[3] = 0
	return uint32(u[2] * 2), true
}

func (u *EffectUniform) setColor(at int, c color.NRGBA, alpha bool) {
	v := ColorVec4(c)
	n := 3
	if alpha {
		n = 4
	}
	copy(u[at:at+n], v[:n])
}

// UpdateGaussianBlur prepares a blur. Effects with no visible result leave
// the record untouched and report false.
func (e *EffectParams) UpdateGaussianBlur(gpu GPU, b GaussianBlur, tr matrix.Matrix) (bool, error) {
	var u EffectUniform
	extend, ok := u.blur(b.Sigma, effectScale(tr))
	if !ok {
		return false, nil
	}
	if err := e.upload(gpu, u); err != nil {
		return false, err
	}
	e.Level = blurLevel(b.Quality)
	e.Extend = extend
	return true, nil
}

// UpdateDropShadow prepares a drop shadow. A shadow without blur leaves the
// record untouched and reports false.
func (e *EffectParams) UpdateDropShadow(gpu GPU, d DropShadow, tr matrix.Matrix) (bool, error) {
	var u EffectUniform
	scale := effectScale(tr)
	extend, ok := u.blur(d.Sigma, scale)
	if !ok {
		return false, nil
	}
	var offset vec.Vec2
	if d.Distance > 0 {
		rad := (90 - d.Angle) * math.Pi / 180
		offset = vec.Vec2{
			X: d.Distance * math.Cos(rad) * scale,
			Y: -d.Distance * math.Sin(rad) * scale,
		}
	}
	u.setColor(4, d.Color, true)
	u[8], u[9] = float32(offset.X), float32(offset.Y)
	if err := e.upload(gpu, u); err != nil {
		return false, err
	}
	e.Level = blurLevel(d.Quality)
	e.Extend = extend
	e.Offset = offset
	return true, nil
}

// UpdateFill prepares a fill effect.
func (e *EffectParams) UpdateFill(gpu GPU, f FillEffect) (bool, error) {
	var u EffectUniform
	u.setColor(0, f.Color, true)
	return e.uploadOK(gpu, u)
}

// UpdateTint prepares a tint effect.
func (e *EffectParams) UpdateTint(gpu GPU, t Tint) (bool, error) {
	var u EffectUniform
	u.setColor(0, t.Black, false)
	u.setColor(4, t.White, false)
	u[8] = float32(t.Intensity) / 255
	return e.uploadOK(gpu, u)
}

// UpdateTritone prepares a tritone effect.
func (e *EffectParams) UpdateTritone(gpu GPU, t Tritone) (bool, error) {
	var u EffectUniform
	u.setColor(0, t.Shadow, false)
	u.setColor(4, t.Midtone, false)
	u.setColor(8, t.Highlight, false)
	u[11] = float32(t.Blender) / 255
	return e.uploadOK(gpu, u)
}

func (e *EffectParams) uploadOK(gpu GPU, u EffectUniform) (bool, error) {
	if err := e.upload(gpu, u); err != nil {
		return false, err
	}
	return true, nil
}

func (e *EffectParams) upload(gpu GPU, u EffectUniform) error {
	e.Uniform = u
	e.scratch, _ = binary.Append(e.scratch[:0], binary.LittleEndian, &e.Uniform)
	return e.binding.upload(gpu, e.scratch)
}

// BindGroup returns the parameter uniform binding.
func (e *EffectParams) BindGroup() hal.BindGroup { return e.binding.bindGroup.Get() }

// Release destroys the uniform buffer and bind group.
func (e *EffectParams) Release(gpu GPU) {
	e.binding.release(gpu)
}

func (e *EffectParams) recycle() {}
