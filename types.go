package wgrender

import (
	"image"

	"github.com/gogpu/wgrender/internal/mesh"
	"github.com/gogpu/wgrender/internal/pool"
	"github.com/gogpu/wgrender/internal/renderdata"
	"github.com/gogpu/wgrender/internal/stage"
	"github.com/gogpu/wgrender/internal/wgctx"
)

// Render data records and their inputs.
type (
	// Shape is the render data of a path paint.
	Shape = renderdata.Shape
	// ShapeGeometry is the path and stroke of a shape.
	ShapeGeometry = renderdata.ShapeGeometry
	// Picture is the render data of a raster image paint.
	Picture = renderdata.Picture
	// Viewport is a composition region uniform.
	Viewport = renderdata.Viewport
	// EffectParams is the render data of a post-processing effect.
	EffectParams = renderdata.EffectParams
	// Paint holds the clip list shared by drawable records.
	Paint = renderdata.Paint
	// RenderSettings is the fill state of one paint pass.
	RenderSettings = renderdata.RenderSettings
	// MeshData is a staged mesh with its buffer offsets.
	MeshData = mesh.MeshData
	// Handle is a weak reference to a pooled record.
	Handle = pool.Handle
	// StageStats describes the geometry staged in a frame.
	StageStats = stage.Stats
	// GPU allocates record-owned GPU objects.
	GPU = renderdata.GPU
)

// Fills and surfaces.
type (
	Fill       = renderdata.Fill
	ColorStop  = renderdata.ColorStop
	FillType   = renderdata.FillType
	RasterType = renderdata.RasterType
	Spread     = wgctx.Spread
	Surface    = renderdata.Surface
	ColorSpace = renderdata.ColorSpace
)

// Strokes.
type (
	Stroke   = mesh.Stroke
	Dash     = mesh.Dash
	LineCap  = mesh.LineCap
	LineJoin = mesh.LineJoin
)

// Effects.
type (
	GaussianBlur = renderdata.GaussianBlur
	DropShadow   = renderdata.DropShadow
	FillEffect   = renderdata.FillEffect
	Tint         = renderdata.Tint
	Tritone      = renderdata.Tritone
)

const (
	FillTypeSolid  = renderdata.FillTypeSolid
	FillTypeLinear = renderdata.FillTypeLinear
	FillTypeRadial = renderdata.FillTypeRadial

	RasterSolid    = renderdata.RasterSolid
	RasterGradient = renderdata.RasterGradient

	SpreadPad     = wgctx.SpreadPad
	SpreadReflect = wgctx.SpreadReflect
	SpreadRepeat  = wgctx.SpreadRepeat

	ColorSpaceABGR8888   = renderdata.ColorSpaceABGR8888
	ColorSpaceARGB8888   = renderdata.ColorSpaceARGB8888
	ColorSpaceABGR8888S  = renderdata.ColorSpaceABGR8888S
	ColorSpaceARGB8888S  = renderdata.ColorSpaceARGB8888S
	ColorSpaceGrayscale8 = renderdata.ColorSpaceGrayscale8

	LineCapButt   = mesh.LineCapButt
	LineCapRound  = mesh.LineCapRound
	LineCapSquare = mesh.LineCapSquare

	LineJoinMiter = mesh.LineJoinMiter
	LineJoinRound = mesh.LineJoinRound
	LineJoinBevel = mesh.LineJoinBevel
)

// DefaultStroke returns a one unit wide butt-capped, mitered stroke.
func DefaultStroke() Stroke { return mesh.DefaultStroke() }

// NewDash returns a dash pattern, or nil for a solid stroke.
func NewDash(lengths ...float64) *Dash { return mesh.NewDash(lengths...) }

// SurfaceFromImage converts a decoded image into an uploadable surface.
func SurfaceFromImage(img image.Image) *Surface { return renderdata.SurfaceFromImage(img) }

// SurfaceFromImageScaled resamples img to width x height.
func SurfaceFromImageScaled(img image.Image, width, height int) *Surface {
	return renderdata.SurfaceFromImageScaled(img, width, height)
}
