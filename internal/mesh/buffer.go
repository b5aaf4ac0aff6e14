package mesh

// Buffer is a growable array with separate logical length and capacity.
// Clear keeps the backing storage so a buffer reused every frame stops
// allocating once it has reached its working size.
type Buffer[T any] struct {
	data []T
}

// Count returns the number of elements.
func (b *Buffer[T]) Count() int { return len(b.data) }

// Reserved returns the capacity of the backing storage.
func (b *Buffer[T]) Reserved() int { return cap(b.data) }

// Data returns the elements. The slice is only valid until the next
// mutating call.
func (b *Buffer[T]) Data() []T { return b.data }

// Reserve makes room for at least n elements in total.
func (b *Buffer[T]) Reserve(n int) {
	if n <= cap(b.data) {
		return
	}
	newCap := max(n, 2*cap(b.data))
	grown := make([]T, len(b.data), newCap)
	copy(grown, b.data)
	b.data = grown
}

// Push appends values, growing the storage at least twofold when full.
func (b *Buffer[T]) Push(values ...T) {
	b.Reserve(len(b.data) + len(values))
	b.data = append(b.data, values...)
}

// Set replaces the contents with values.
func (b *Buffer[T]) Set(values []T) {
	b.Clear()
	b.Push(values...)
}

// Clear drops all elements but keeps the storage.
func (b *Buffer[T]) Clear() { b.data = b.data[:0] }
