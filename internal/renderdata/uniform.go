package renderdata

import (
	"encoding/binary"
	"image"
	"image/color"

	"seehuhn.de/go/geom/matrix"
)

// Mat4 is a column-major 4x4 matrix as WGSL lays out mat4x4<f32>.
type Mat4 [16]float32

// Mat4From embeds a 2D affine transform.
func Mat4From(m matrix.Matrix) Mat4 {
	return Mat4{
		float32(m[0]), float32(m[1]), 0, 0,
		float32(m[2]), float32(m[3]), 0, 0,
		0, 0, 1, 0,
		float32(m[4]), float32(m[5]), 0, 1,
	}
}

// Vec4 is a vec4<f32>.
type Vec4 [4]float32

// ColorVec4 returns c with channels scaled to [0,1], straight alpha.
func ColorVec4(c color.NRGBA) Vec4 {
	return Vec4{float32(c.R) / 255, float32(c.G) / 255, float32(c.B) / 255, float32(c.A) / 255}
}

// RegionVec4 returns r as (x0, y0, x1, y1).
func RegionVec4(r image.Rectangle) Vec4 {
	return Vec4{float32(r.Min.X), float32(r.Min.Y), float32(r.Max.X), float32(r.Max.Y)}
}

// GradientUniform holds the geometry of a gradient fill.
type GradientUniform struct {
	// Linear: x1, y1, x2, y2. Radial: cx, cy, fx, fy.
	Points Vec4
	// Radial: r, fr.
	Radii Vec4
	// Inverse of the fill transform, mapping shape space to gradient space.
	Transform Mat4
}

// PaintUniform is the per-paint uniform block read by the fill shaders.
type PaintUniform struct {
	Transform Mat4
	Options   Vec4 // color space, unused, unused, opacity
	Color     Vec4
	Gradient  GradientUniform
}

// PaintUniformSize is the encoded size of PaintUniform in bytes.
const PaintUniformSize = 192

// AppendBytes appends the little-endian encoding of u to dst.
func (u *PaintUniform) AppendBytes(dst []byte) []byte {
	dst, _ = binary.Append(dst, binary.LittleEndian, u)
	return dst
}

func (g *GradientUniform) update(f *Fill) {
	*g = GradientUniform{}
	switch f.Type {
	case FillTypeLinear:
		g.Points = Vec4{float32(f.Start.X), float32(f.Start.Y), float32(f.End.X), float32(f.End.Y)}
	case FillTypeRadial:
		g.Points = Vec4{float32(f.Center.X), float32(f.Center.Y), float32(f.Focal.X), float32(f.Focal.Y)}
		g.Radii = Vec4{float32(f.Radius), float32(f.FocalRadius)}
	}
	g.Transform = Mat4From(invertOrIdentity(f.Transform))
}

func invertOrIdentity(m matrix.Matrix) matrix.Matrix {
	if m.IsZero() || m[0]*m[3]-m[1]*m[2] == 0 {
		return matrix.Identity
	}
	return m.Inv()
}

func appendVec4(dst []byte, v Vec4) []byte {
	dst, _ = binary.Append(dst, binary.LittleEndian, v)
	return dst
}
