package fixmath

import (
	"image"

	"golang.org/x/image/math/fixed"
)

// UpdateOutlineBBox computes the pixel region covered by the outline,
// intersected with clip. It reports whether the result is non-empty.
//
// With fast set, extents are rounded to the nearest pixel, halves away
// from zero. Otherwise the minimum is floored and the maximum ceiled so the
// region covers every partially touched pixel.
//
// An outline without points or contours yields the zero region.
func UpdateOutlineBBox(o *Outline, clip image.Rectangle, fast bool) (image.Rectangle, bool) {
	if o == nil || len(o.Points) == 0 || len(o.Contours) == 0 {
		return image.Rectangle{}, false
	}

	lo, hi := o.Points[0], o.Points[0]
	for _, p := range o.Points[1:] {
		lo.X = min(lo.X, p.X)
		lo.Y = min(lo.Y, p.Y)
		hi.X = max(hi.X, p.X)
		hi.Y = max(hi.Y, p.Y)
	}

	var r image.Rectangle
	if fast {
		r = image.Rect(roundPixel(lo.X), roundPixel(lo.Y), roundPixel(hi.X), roundPixel(hi.Y))
	} else {
		r = image.Rect(lo.X.Floor(), lo.Y.Floor(), hi.X.Ceil(), hi.Y.Ceil())
	}
	r = r.Intersect(clip)
	return r, !r.Empty()
}

// roundPixel rounds a sub-pixel value to whole pixels, halves away from zero.
func roundPixel(v fixed.Int26_6) int {
	if v < 0 {
		return -int((-v + 32) >> 6)
	}
	return int((v + 32) >> 6)
}
