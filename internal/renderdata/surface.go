package renderdata

import (
	"errors"
	"fmt"
	"image"

	"github.com/gogpu/gputypes"
	"golang.org/x/image/draw"
)

// ErrEmptySurface is returned when a surface without pixels is uploaded.
var ErrEmptySurface = errors.New("renderdata: empty surface")

// ColorSpace describes the channel order and alpha convention of surface
// pixels.
type ColorSpace int

const (
	// ColorSpaceABGR8888 is premultiplied, R in the lowest byte.
	ColorSpaceABGR8888 ColorSpace = iota
	// ColorSpaceARGB8888 is premultiplied, B in the lowest byte.
	ColorSpaceARGB8888
	// ColorSpaceABGR8888S is straight alpha, R in the lowest byte.
	ColorSpaceABGR8888S
	// ColorSpaceARGB8888S is straight alpha, B in the lowest byte.
	ColorSpaceARGB8888S
	// ColorSpaceGrayscale8 is a single 8-bit channel.
	ColorSpaceGrayscale8
)

// String returns the color space name.
func (cs ColorSpace) String() string {
	switch cs {
	case ColorSpaceABGR8888:
		return "ABGR8888"
	case ColorSpaceARGB8888:
		return "ARGB8888"
	case ColorSpaceABGR8888S:
		return "ABGR8888S"
	case ColorSpaceARGB8888S:
		return "ARGB8888S"
	case ColorSpaceGrayscale8:
		return "Grayscale8"
	default:
		return fmt.Sprintf("ColorSpace(%d)", int(cs))
	}
}

// TextureFormat returns the texture format surfaces of this color space are
// uploaded as. Straight ABGR maps to RGBA8 and grayscale to R8; everything
// else is uploaded as BGRA8.
func (cs ColorSpace) TextureFormat() gputypes.TextureFormat {
	switch cs {
	case ColorSpaceABGR8888S:
		return gputypes.TextureFormatRGBA8Unorm
	case ColorSpaceGrayscale8:
		return gputypes.TextureFormatR8Unorm
	default:
		return gputypes.TextureFormatBGRA8Unorm
	}
}

// Premultiplied reports whether color channels are scaled by alpha.
func (cs ColorSpace) Premultiplied() bool {
	return cs == ColorSpaceABGR8888 || cs == ColorSpaceARGB8888
}

// BytesPerPixel returns the pixel size.
func (cs ColorSpace) BytesPerPixel() int {
	if cs == ColorSpaceGrayscale8 {
		return 1
	}
	return 4
}

// Surface is a raster image in CPU memory.
type Surface struct {
	Data       []byte
	Stride     int // bytes per row; 0 means tightly packed
	Width      int
	Height     int
	ColorSpace ColorSpace
}

// Empty reports whether the surface has no pixels.
func (s *Surface) Empty() bool {
	return s == nil || s.Width <= 0 || s.Height <= 0 || len(s.Data) == 0
}

func (s *Surface) rowBytes() int { return s.Width * s.ColorSpace.BytesPerPixel() }

// Pixels returns the surface rows tightly packed. The returned slice aliases
// Data when the stride already equals the row size.
func (s *Surface) Pixels() ([]byte, error) {
	if s.Empty() {
		return nil, ErrEmptySurface
	}
	row := s.rowBytes()
	stride := s.Stride
	if stride == 0 {
		stride = row
	}
	if stride < row || len(s.Data) < stride*(s.Height-1)+row {
		return nil, fmt.Errorf("renderdata: surface %dx%d stride %d: have %d bytes", s.Width, s.Height, stride, len(s.Data))
	}
	if stride == row {
		return s.Data[:row*s.Height], nil
	}
	packed := make([]byte, 0, row*s.Height)
	for y := range s.Height {
		packed = append(packed, s.Data[y*stride:y*stride+row]...)
	}
	return packed, nil
}

// SurfaceFromImage converts a decoded image into a surface. Gray images keep
// their single channel; everything else becomes straight-alpha RGBA.
func SurfaceFromImage(img image.Image) *Surface {
	b := img.Bounds()
	if g, ok := img.(*image.Gray); ok {
		dst := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(dst, dst.Bounds(), g, b.Min, draw.Src)
		return &Surface{Data: dst.Pix, Stride: dst.Stride, Width: b.Dx(), Height: b.Dy(), ColorSpace: ColorSpaceGrayscale8}
	}
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return &Surface{Data: dst.Pix, Stride: dst.Stride, Width: b.Dx(), Height: b.Dy(), ColorSpace: ColorSpaceABGR8888S}
}

// SurfaceFromImageScaled resamples img to width x height with bilinear
// filtering and returns it as a straight-alpha RGBA surface. Images already
// at the requested size are converted as by SurfaceFromImage.
func SurfaceFromImageScaled(img image.Image, width, height int) *Surface {
	if width <= 0 || height <= 0 {
		return &Surface{ColorSpace: ColorSpaceABGR8888S}
	}
	if b := img.Bounds(); b.Dx() == width && b.Dy() == height {
		return SurfaceFromImage(img)
	}
	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return &Surface{Data: dst.Pix, Stride: dst.Stride, Width: width, Height: height, ColorSpace: ColorSpaceABGR8888S}
}
