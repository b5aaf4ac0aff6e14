package renderdata

import "github.com/gogpu/wgrender/internal/pool"

// Paint is the state shared by every drawable record.
type Paint struct {
	// Clips are weak references to the shapes clipping this paint. They are
	// resolved through the shape pool at draw time; a stale handle means
	// the clip was freed and is skipped.
	Clips []pool.Handle
}

// UpdateClips replaces the clip list with a copy of clips.
func (p *Paint) UpdateClips(clips []pool.Handle) {
	p.Clips = append(p.Clips[:0], clips...)
}

// ClearClips empties the clip list.
func (p *Paint) ClearClips() {
	clear(p.Clips)
	p.Clips = p.Clips[:0]
}
