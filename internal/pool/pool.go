// Package pool implements an arena of reusable records with a free list.
//
// Records are never destroyed while the pool is alive: Free only marks a
// record available and the next Allocate hands it out again, so whatever
// GPU objects the record holds survive for reuse. Handles carry the
// allocation generation of their slot, which lets holders of weak
// references detect that the record has since been freed.
package pool

import (
	"errors"
	"fmt"
)

var (
	// ErrStaleHandle is returned when a handle refers to a record that was
	// freed after the handle was taken.
	ErrStaleHandle = errors.New("pool: stale handle")

	// ErrDoubleFree is returned when a record is freed while already free.
	ErrDoubleFree = errors.New("pool: record freed twice")

	// ErrForeignRecord is returned when a record does not belong to the pool.
	ErrForeignRecord = errors.New("pool: record not owned by this pool")
)

// Handle is a weak reference to a pooled record. The zero Handle refers to
// nothing.
type Handle struct {
	slot uint32
	gen  uint32
}

// IsZero reports whether h is the zero handle.
func (h Handle) IsZero() bool { return h.gen == 0 }

// String formats the handle for logs.
func (h Handle) String() string {
	return fmt.Sprintf("%d@%d", h.slot, h.gen)
}

type entry[T any] struct {
	rec  *T
	gen  uint32
	free bool
}

// Pool owns every record it ever constructed. The zero value is not usable;
// create pools with New.
type Pool[T any] struct {
	entries []entry[T]
	index   map[*T]uint32
	free    []uint32
	newFn   func() *T

	// genFloor is the highest generation handed out before the last
	// Release. New slots start above it so old handles never match again.
	genFloor uint32
}

// New returns an empty pool that constructs records with newFn.
func New[T any](newFn func() *T) *Pool[T] {
	if newFn == nil {
		newFn = func() *T { return new(T) }
	}
	return &Pool[T]{index: make(map[*T]uint32), newFn: newFn}
}

// Allocate returns a free record, constructing one when none is available.
func (p *Pool[T]) Allocate() (*T, Handle) {
	var slot uint32
	if n := len(p.free); n > 0 {
		slot = p.free[n-1]
		p.free = p.free[:n-1]
	} else {
		rec := p.newFn()
		slot = uint32(len(p.entries)) //nolint:gosec // G115: pools never hold 2^32 records
		p.entries = append(p.entries, entry[T]{rec: rec, gen: p.genFloor})
		p.index[rec] = slot
	}
	e := &p.entries[slot]
	e.gen++
	e.free = false
	return e.rec, Handle{slot: slot, gen: e.gen}
}

// Free returns rec to the pool. Freeing nil is a no-op. reset, when not
// nil, is called with the record before it becomes available.
func (p *Pool[T]) Free(rec *T, reset func(*T)) error {
	if rec == nil {
		return nil
	}
	slot, ok := p.index[rec]
	if !ok {
		return ErrForeignRecord
	}
	e := &p.entries[slot]
	if e.free {
		return ErrDoubleFree
	}
	if reset != nil {
		reset(rec)
	}
	e.free = true
	p.free = append(p.free, slot)
	return nil
}

// Get resolves a handle. It fails with ErrStaleHandle when the record was
// freed after the handle was issued.
func (p *Pool[T]) Get(h Handle) (*T, error) {
	if h.IsZero() || int(h.slot) >= len(p.entries) {
		return nil, ErrStaleHandle
	}
	e := &p.entries[h.slot]
	if e.gen != h.gen || e.free {
		return nil, ErrStaleHandle
	}
	return e.rec, nil
}

// HandleOf returns the current handle of an allocated record.
func (p *Pool[T]) HandleOf(rec *T) (Handle, bool) {
	slot, ok := p.index[rec]
	if !ok || p.entries[slot].free {
		return Handle{}, false
	}
	return Handle{slot: slot, gen: p.entries[slot].gen}, true
}

// Len returns the number of records the pool owns.
func (p *Pool[T]) Len() int { return len(p.entries) }

// FreeLen returns the number of records available for reuse.
func (p *Pool[T]) FreeLen() int { return len(p.free) }

// Release calls release on every record ever constructed, then empties the
// pool. Outstanding handles become stale.
func (p *Pool[T]) Release(release func(*T)) {
	for _, e := range p.entries {
		if release != nil {
			release(e.rec)
		}
		p.genFloor = max(p.genFloor, e.gen)
	}
	p.entries = nil
	p.free = nil
	clear(p.index)
}
