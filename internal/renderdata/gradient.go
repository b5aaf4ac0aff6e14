package renderdata

import (
	"fmt"
	"image/color"
	"sort"

	"github.com/gogpu/wgrender/internal/wgctx"
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/vec"
)

// GradientTextureSize is the number of texels in a gradient ramp.
const GradientTextureSize = 512

// FillType selects how a paint is colored.
type FillType int

const (
	// FillTypeSolid paints a single color.
	FillTypeSolid FillType = iota
	// FillTypeLinear paints a linear gradient.
	FillTypeLinear
	// FillTypeRadial paints a two-point radial gradient.
	FillTypeRadial
)

// String returns the fill type name.
func (t FillType) String() string {
	switch t {
	case FillTypeSolid:
		return "solid"
	case FillTypeLinear:
		return "linear"
	case FillTypeRadial:
		return "radial"
	default:
		return fmt.Sprintf("FillType(%d)", int(t))
	}
}

// ColorStop is a color at a position along a gradient.
type ColorStop struct {
	Offset float32 // 0 to 1
	Color  color.NRGBA
}

// Fill describes a gradient paint.
type Fill struct {
	Type   FillType
	Stops  []ColorStop
	Spread wgctx.Spread

	// Start and End span a linear gradient.
	Start, End vec.Vec2

	// Center and Radius give the end circle of a radial gradient, Focal and
	// FocalRadius its start circle.
	Center, Focal       vec.Vec2
	Radius, FocalRadius float64

	// Transform maps gradient space into shape space. The zero matrix is
	// treated as identity.
	Transform matrix.Matrix
}

// sortStops returns the stops ordered by offset. The input is not modified.
func sortStops(stops []ColorStop) []ColorStop {
	sorted := make([]ColorStop, len(stops))
	copy(sorted, stops)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Offset < sorted[j].Offset
	})
	return sorted
}

// GradientRamp renders stops into GradientTextureSize RGBA8 texels, reusing
// dst when it is large enough.
//
// Texels before the first stop take its color and texels after the last stop
// take the last color. Between stops colors are interpolated per channel in
// straight sRGB. Without stops the ramp is transparent black.
func GradientRamp(dst []byte, stops []ColorStop) []byte {
	const n = GradientTextureSize
	if cap(dst) < n*4 {
		dst = make([]byte, n*4)
	}
	dst = dst[:n*4]
	if len(stops) == 0 {
		clear(dst)
		return dst
	}

	sorted := sortStops(stops)
	put := func(i int, c color.NRGBA) {
		dst[i*4+0] = c.R
		dst[i*4+1] = c.G
		dst[i*4+2] = c.B
		dst[i*4+3] = c.A
	}

	end := rampIndex(sorted[0].Offset)
	for i := range end {
		put(i, sorted[0].Color)
	}
	for k := 1; k < len(sorted); k++ {
		start := end
		end = rampIndex(sorted[k].Offset)
		for i := start; i < end; i++ {
			t := float32(i-start) / float32(end-start)
			put(i, lerpColor(sorted[k-1].Color, sorted[k].Color, t))
		}
	}
	last := sorted[len(sorted)-1].Color
	for i := end; i < n; i++ {
		put(i, last)
	}
	return dst
}

func rampIndex(offset float32) int {
	i := int(offset * GradientTextureSize)
	return min(max(i, 0), GradientTextureSize)
}

func lerpColor(a, b color.NRGBA, t float32) color.NRGBA {
	ch := func(x, y uint8) uint8 {
		v := float32(x) + (float32(y)-float32(x))*t
		return uint8(min(max(v+0.5, 0), 255))
	}
	return color.NRGBA{R: ch(a.R, b.R), G: ch(a.G, b.G), B: ch(a.B, b.B), A: ch(a.A, b.A)}
}
