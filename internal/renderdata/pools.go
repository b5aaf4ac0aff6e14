package renderdata

import "github.com/gogpu/wgrender/internal/pool"

// record is a pooled render data type.
type record[T any] interface {
	*T
	// Release destroys the GPU objects of the record.
	Release(gpu GPU)
	// recycle clears per-use CPU state while keeping GPU objects.
	recycle()
}

// Pool recycles render data records of one kind. Free clears geometry and
// clips but keeps GPU objects, so a recycled record reuses its buffers and
// textures.
type Pool[T any, P record[T]] struct {
	records *pool.Pool[T]
}

type (
	// ShapePool recycles Shape records.
	ShapePool = Pool[Shape, *Shape]
	// PicturePool recycles Picture records.
	PicturePool = Pool[Picture, *Picture]
	// ViewportPool recycles Viewport records.
	ViewportPool = Pool[Viewport, *Viewport]
	// EffectParamsPool recycles EffectParams records.
	EffectParamsPool = Pool[EffectParams, *EffectParams]
)

// NewPool returns an empty pool.
func NewPool[T any, P record[T]]() *Pool[T, P] {
	return &Pool[T, P]{records: pool.New[T](nil)}
}

// NewShapePool returns an empty shape pool.
func NewShapePool() *ShapePool { return NewPool[Shape]() }

// NewPicturePool returns an empty picture pool.
func NewPicturePool() *PicturePool { return NewPool[Picture]() }

// NewViewportPool returns an empty viewport pool.
func NewViewportPool() *ViewportPool { return NewPool[Viewport]() }

// NewEffectParamsPool returns an empty effect parameter pool.
func NewEffectParamsPool() *EffectParamsPool { return NewPool[EffectParams]() }

// Allocate returns a free record, or a new one, and its handle.
func (p *Pool[T, P]) Allocate() (*T, pool.Handle) {
	return p.records.Allocate()
}

// Free returns rec to the pool. Freeing nil is a no-op; freeing a record
// twice reports pool.ErrDoubleFree.
func (p *Pool[T, P]) Free(rec *T) error {
	return p.records.Free(rec, func(r *T) { P(r).recycle() })
}

// Get resolves a handle, failing with pool.ErrStaleHandle once the record was
// freed.
func (p *Pool[T, P]) Get(h pool.Handle) (*T, error) {
	return p.records.Get(h)
}

// HandleOf returns the handle of a live record.
func (p *Pool[T, P]) HandleOf(rec *T) (pool.Handle, bool) {
	return p.records.HandleOf(rec)
}

// Len returns the number of records the pool owns.
func (p *Pool[T, P]) Len() int { return p.records.Len() }

// FreeLen returns the number of records available for reuse.
func (p *Pool[T, P]) FreeLen() int { return p.records.FreeLen() }

// Release destroys the GPU objects of every record, live or free, and
// empties the pool.
func (p *Pool[T, P]) Release(gpu GPU) {
	p.records.Release(func(r *T) { P(r).Release(gpu) })
}
