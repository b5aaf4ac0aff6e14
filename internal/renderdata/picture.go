package renderdata

import "github.com/gogpu/wgrender/internal/mesh"

// Picture is the render data of a raster image paint.
type Picture struct {
	Paint

	Mesh     mesh.MeshData
	Image    ImageData
	Settings RenderSettings
}

// UpdateSurface sets the image quad to the surface size and uploads its
// pixels.
func (p *Picture) UpdateSurface(gpu GPU, s *Surface) error {
	if s.Empty() {
		return ErrEmptySurface
	}
	p.Mesh.ImageBox(float32(s.Width), float32(s.Height))
	return p.Image.UpdateSurface(gpu, s)
}

// Release destroys the texture and uniform objects.
func (p *Picture) Release(gpu GPU) {
	p.Settings.Release(gpu)
	p.Image.Release(gpu)
	p.Mesh.Clear()
	p.ClearClips()
}

func (p *Picture) recycle() {
	p.Mesh.Clear()
	p.ClearClips()
}
