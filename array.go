package ssbuf

import (
	"github.com/brickingsoft/errors"
	"github.com/pavanmanishd/ssbuf/internal/diag"
)

// Array is an owned, growable, densely packed sequence of T.
//
// Capacity is tracked in bytes and is always zero or a power of two. A nil
// *Array behaves as an absent array: accessors report it as empty and
// mutating methods return ErrNilArray. An operation that fails leaves the
// array exactly as it was.
//
// After Dissolve or Free the array must not be used again; doing so panics.
type Array[T any] struct {
	data      []T
	len       int // elements
	capacity  int // bytes
	alloc     Allocator
	dissolved bool
}

// New returns an empty array without a buffer.
func New[T any](opts ...Option) *Array[T] {
	options := newOptions(opts)
	checkElemType[T](options.Allocator)
	return &Array[T]{alloc: options.Allocator}
}

// NewWithSize returns an empty array whose buffer holds at least n elements.
// If n <= 0, it behaves like New.
func NewWithSize[T any](n int, opts ...Option) (*Array[T], error) {
	a := New[T](opts...)
	if n <= 0 {
		return a, nil
	}
	size, err := mulSize(n, elemSize[T]())
	if err == nil {
		size, err = growSize(size)
	}
	if err != nil {
		return nil, allocError(errMetaOpCreate, err)
	}
	data, err := allocSlice[T](a.alloc, size)
	if err != nil {
		return nil, allocError(errMetaOpCreate, err)
	}
	a.data = data
	a.capacity = size
	return a, nil
}

// NewFrom returns an array holding a copy of data.
func NewFrom[T any](data []T, opts ...Option) (*Array[T], error) {
	a, err := NewWithSize[T](len(data), opts...)
	if err != nil {
		return nil, err
	}
	a.len = copy(a.data, data)
	return a, nil
}

// Clear zeroes the live elements and sets the length to 0. The buffer is
// kept for reuse.
func (a *Array[T]) Clear() {
	if a == nil {
		return
	}
	a.mustBeLive()
	clear(a.data[:a.len])
	a.len = 0
}

// AppendData copies data onto the end of the array.
func (a *Array[T]) AppendData(data []T) error {
	if a == nil {
		return ErrNilArray
	}
	a.mustBeLive()
	if len(data) == 0 {
		return ErrNoData
	}
	return a.appendData(data, errMetaOpAppend)
}

// Append copies every element of src onto the end of the array.
func (a *Array[T]) Append(src *Array[T]) error {
	if a == nil || src == nil {
		return ErrNilArray
	}
	src.mustBeLive()
	return a.AppendData(src.Ptr())
}

// appendData may be handed a slice of a's own buffer.
func (a *Array[T]) appendData(data []T, op string) error {
	size := elemSize[T]()
	newLen := a.len + len(data)
	need, err := mulSize(newLen, size)
	if err != nil {
		return allocError(op, err)
	}

	if need > a.capacity {
		capacity, err := growSize(need)
		if err != nil {
			return allocError(op, err)
		}
		buf, err := allocSlice[T](a.alloc, capacity)
		if err != nil {
			return allocError(op, err)
		}
		copy(buf, a.data[:a.len])
		copy(buf[a.len:], data)
		old := a.data
		a.data = buf
		a.capacity = capacity
		a.release(old)
	} else {
		copy(a.data[a.len:], data)
	}

	diag.Assert(a.capacity >= newLen*size, "")
	a.len = newLen
	return nil
}

// Insert places elem at pos, moving the elements from pos onward up by one.
// pos may equal Len to insert at the end.
//
// The array first grows by a copy of its last element, then elem is rotated
// into place by swapping it forward through the tail. No shift buffer is
// allocated.
func (a *Array[T]) Insert(elem T, pos int) error {
	if a == nil {
		return ErrNilArray
	}
	a.mustBeLive()
	if pos < 0 || pos > a.len {
		return errors.From(ErrOutOfRange, errors.WithMeta(errMetaOpKey, errMetaOpInsert))
	}
	if a.len == 0 {
		return a.appendData([]T{elem}, errMetaOpInsert)
	}

	if err := a.appendData(a.data[a.len-1:a.len], errMetaOpInsert); err != nil {
		return err
	}
	for i := pos; i < a.len; i++ {
		elem, a.data[i] = a.data[i], elem
	}
	return nil
}

// Partition reorders the array in place so that every element for which
// pred holds precedes every element for which it does not, and returns the
// index of the first element of the second group. The index is Len when
// pred holds for all elements. Order within a group is not preserved.
func (a *Array[T]) Partition(pred func(*T) bool) (int, error) {
	if a == nil {
		return 0, ErrNilArray
	}
	a.mustBeLive()
	if pred == nil {
		return 0, ErrNilPredicate
	}
	if a.len == 0 {
		return 0, ErrEmpty
	}

	// Hoare
	low, high := 0, a.len-1
	for {
		for low < high && pred(&a.data[low]) {
			low++
		}
		for low < high && !pred(&a.data[high]) {
			high--
		}
		if low >= high {
			break
		}
		a.data[low], a.data[high] = a.data[high], a.data[low]
		low++
		high--
	}
	if pred(&a.data[low]) {
		low++
	}
	return low, nil
}

// Swap exchanges the elements at i and j.
func (a *Array[T]) Swap(i, j int) error {
	if a == nil {
		return ErrNilArray
	}
	a.mustBeLive()
	if i < 0 || j < 0 || i >= a.len || j >= a.len {
		return ErrOutOfRange
	}
	a.data[i], a.data[j] = a.data[j], a.data[i]
	return nil
}

// Len returns the number of elements.
func (a *Array[T]) Len() int {
	if a == nil {
		return 0
	}
	a.mustBeLive()
	return a.len
}

// Cap returns the buffer size in bytes.
func (a *Array[T]) Cap() int {
	if a == nil {
		return 0
	}
	a.mustBeLive()
	return a.capacity
}

// Get returns a pointer to the element at pos, or nil if pos is out of range.
// The pointer is invalidated by the next growth of the array.
func (a *Array[T]) Get(pos int) *T {
	if a == nil {
		return nil
	}
	a.mustBeLive()
	if pos < 0 || pos >= a.len {
		return nil
	}
	return &a.data[pos]
}

// Ptr returns the live elements. The slice aliases the array's buffer.
func (a *Array[T]) Ptr() []T {
	if a == nil {
		return nil
	}
	a.mustBeLive()
	if a.data == nil {
		return nil
	}
	return a.data[:a.len]
}

// IsEmpty reports whether the array is nil, has no buffer or no elements.
func (a *Array[T]) IsEmpty() bool {
	if a == nil {
		return true
	}
	a.mustBeLive()
	return a.data == nil || a.len == 0
}

// Allocator returns the allocator backing the array.
func (a *Array[T]) Allocator() Allocator {
	if a == nil {
		return Heap
	}
	return a.alloc
}

// Dissolve hands the buffer over to the caller and returns it with the
// element count. The array is unusable afterwards. Unless the array used
// Heap, the caller gives the buffer back with FreeSlice.
func (a *Array[T]) Dissolve() ([]T, int) {
	if a == nil {
		return nil, 0
	}
	a.mustBeLive()
	n := a.len
	diag.Assert(n*elemSize[T]() <= a.capacity && n <= len(a.data),
		"ssbuf: cannot hand over %d elements from a %d byte buffer", n, a.capacity)

	var out []T
	if a.data != nil {
		out = a.data[:n]
	}
	a.data = nil
	a.len = 0
	a.capacity = 0
	a.dissolved = true
	return out, n
}

// Free returns the buffer to the allocator. The array is unusable
// afterwards. Freeing twice is harmless.
func (a *Array[T]) Free() {
	if a == nil || a.dissolved {
		return
	}
	a.release(a.data)
	a.data = nil
	a.len = 0
	a.capacity = 0
	a.dissolved = true
}

func (a *Array[T]) release(data []T) {
	if data == nil || isHeap(a.alloc) {
		return
	}
	a.alloc.Free(bytesOf(data))
}

func (a *Array[T]) mustBeLive() {
	diag.Assert(!a.dissolved, "ssbuf: use of dissolved array")
}
