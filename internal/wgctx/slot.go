package wgctx

// Slot owns at most one GPU object of type T.
//
// Replace destroys the current object before installing the new one, and
// Release destroys it and leaves the slot empty. The zero Slot is empty and
// ready to use.
type Slot[T comparable] struct {
	obj     T
	destroy func(T)
}

// Get returns the held object, or the zero value when the slot is empty.
func (s *Slot[T]) Get() T { return s.obj }

// Valid reports whether the slot holds an object.
func (s *Slot[T]) Valid() bool {
	var zero T
	return s.obj != zero
}

// Replace destroys the held object and installs obj, which destroy will
// later release.
func (s *Slot[T]) Replace(obj T, destroy func(T)) {
	s.Release()
	s.obj = obj
	s.destroy = destroy
}

// Release destroys the held object, if any.
func (s *Slot[T]) Release() {
	var zero T
	if s.obj != zero && s.destroy != nil {
		s.destroy(s.obj)
	}
	s.obj = zero
	s.destroy = nil
}
