package mesh

import (
	"math"
)

// Dash is an on/off stroke pattern. Array alternates dash and gap lengths;
// an odd-length array is repeated once to make the pattern even. Offset
// shifts the start of the pattern along the path.
type Dash struct {
	Array  []float64
	Offset float64
}

// NewDash returns a dash pattern from the given lengths. Negative lengths
// are made positive. It returns nil when no length is positive, meaning a
// solid stroke.
func NewDash(lengths ...float64) *Dash {
	positive := false
	for _, l := range lengths {
		if l > 0 {
			positive = true
			break
		}
	}
	if !positive {
		return nil
	}

	normalized := make([]float64, len(lengths))
	for i, l := range lengths {
		normalized[i] = math.Abs(l)
	}
	return &Dash{Array: normalized}
}

// PatternLength returns the length of one full dash cycle. A nil pattern
// has length zero.
func (d *Dash) PatternLength() float64 {
	if d == nil || len(d.Array) == 0 {
		return 0
	}
	var total float64
	for _, l := range d.Array {
		total += l
	}
	if len(d.Array)%2 != 0 {
		total *= 2
	}
	return total
}

// NormalizedOffset returns Offset reduced into [0, PatternLength).
func (d *Dash) NormalizedOffset() float64 {
	patternLen := d.PatternLength()
	if patternLen <= 0 {
		return 0
	}
	offset := math.Mod(d.Offset, patternLen)
	if offset < 0 {
		offset += patternLen
	}
	return offset
}

func (d *Dash) effectiveArray() []float64 {
	if len(d.Array)%2 == 0 {
		return d.Array
	}
	result := make([]float64, len(d.Array)*2)
	copy(result, d.Array)
	copy(result[len(d.Array):], d.Array)
	return result
}

// AppendDashedStrokes cuts src into the dashes of s.Dash and strokes each
// dash with AppendStrokes. Every dash gets its own caps. A pattern of zero
// length strokes src as a solid line.
func AppendDashedStrokes(dst *IndexedVertexBuffer, src *VertexBuffer, s Stroke) {
	if dst == nil || src == nil || s.Width <= 0 || len(src.Points) < 2 {
		return
	}
	plain := s
	plain.Dash = nil
	if s.Dash.PatternLength() <= 0 {
		AppendStrokes(dst, src, plain)
		return
	}

	arr := s.Dash.effectiveArray()
	idx := 0
	offset := s.Dash.NormalizedOffset()
	for offset >= arr[idx] {
		offset -= arr[idx]
		idx = (idx + 1) % len(arr)
	}
	remain := arr[idx] - offset
	on := idx%2 == 0

	pts := src.Points
	if src.Closed {
		pts = append(pts[:len(pts):len(pts)], pts[0])
	}

	dash := &VertexBuffer{Scale: src.Scale}
	if on {
		dash.Append(pts[0])
	}
	for i := 1; i < len(pts); i++ {
		a, b := pts[i-1], pts[i]
		seg := b.Sub(a)
		segLen := seg.Length()
		pos := 0.0
		for segLen-pos > remain {
			pos += remain
			p := a.Add(seg.Mul(pos / segLen))
			dash.Append(p)
			if on {
				AppendStrokes(dst, dash, plain)
				dash.Reset(src.Scale)
			}
			on = !on
			idx = (idx + 1) % len(arr)
			remain = arr[idx]
		}
		remain -= segLen - pos
		if on {
			dash.Append(b)
		}
	}
	if on {
		AppendStrokes(dst, dash, plain)
	}
}
