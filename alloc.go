package ssbuf

import (
	"reflect"
	"strconv"
	"unsafe"

	"github.com/brickingsoft/errors"
	"github.com/pavanmanishd/ssbuf/internal/diag"
)

// Allocator hands out the raw buffers behind arrays and strings.
//
// Alloc returns a zeroed buffer of exactly size bytes. Running out of memory
// is reported as an error, never as a panic. Free gives a buffer obtained from
// Alloc back; it must accept any reslice sharing the original base address,
// and Free(nil) must be a no-op.
type Allocator interface {
	Alloc(size int) ([]byte, error)
	Free(buf []byte)
}

// HeapAllocator allocates from the Go runtime. Free is a no-op and the
// garbage collector reclaims buffers once they are unreachable.
type HeapAllocator struct{}

// Heap is the default allocator.
var Heap = HeapAllocator{}

func (HeapAllocator) Alloc(size int) (b []byte, err error) {
	if size < 0 {
		err = errors.From(ErrTooLarge, errors.WithMeta(errMetaAllocKey, errMetaAllocHeap))
		return
	}
	defer func() {
		if recover() != nil {
			b = nil
			err = errors.From(
				ErrTooLarge,
				errors.WithMeta(errMetaAllocKey, errMetaAllocHeap),
				errors.WithMeta(errMetaSizeKey, strconv.Itoa(size)),
			)
		}
	}()
	b = make([]byte, size)
	return
}

func (HeapAllocator) Free([]byte) {}

func isHeap(a Allocator) bool {
	switch a.(type) {
	case HeapAllocator, *HeapAllocator:
		return true
	}
	return false
}

// elemSize returns the accounted size of T. Zero-sized types count as one
// byte so capacities stay meaningful.
func elemSize[T any]() int {
	var zero T
	if size := int(unsafe.Sizeof(zero)); size > 0 {
		return size
	}
	return 1
}

// checkElemType panics when T cannot live in untyped memory from a.
func checkElemType[T any](a Allocator) {
	if isHeap(a) {
		return
	}
	t := reflect.TypeFor[T]()
	diag.Assert(pointerFree(t),
		"ssbuf: element type %s holds pointers and cannot be backed by %T", t, a)
}

// pointerFree reports whether values of t contain no pointers the garbage
// collector would need to see.
func pointerFree(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return true
	case reflect.Array:
		return t.Len() == 0 || pointerFree(t.Elem())
	case reflect.Struct:
		for i := 0; i < t.NumField(); i++ {
			if !pointerFree(t.Field(i).Type) {
				return false
			}
		}
		return true
	}
	return false
}

// allocSlice returns room for size bytes worth of T. Heap-backed slices are
// typed allocations rounded up to whole elements, so they reserve at least
// size bytes; any other allocator hands out bytes that are viewed as T.
func allocSlice[T any](a Allocator, size int) ([]T, error) {
	es := elemSize[T]()
	if isHeap(a) {
		return makeSlice[T](size/es + min(size%es, 1))
	}
	n := size / es
	b, err := a.Alloc(size)
	if err != nil {
		return nil, err
	}
	if len(b) == 0 {
		return nil, nil
	}
	diag.Assert(uintptr(unsafe.Pointer(&b[0]))%unsafe.Alignof(*new(T)) == 0,
		"ssbuf: %T returned a misaligned buffer", a)
	return unsafe.Slice((*T)(unsafe.Pointer(&b[0])), n), nil
}

func makeSlice[T any](n int) (s []T, err error) {
	defer func() {
		if recover() != nil {
			s = nil
			err = errors.From(
				ErrTooLarge,
				errors.WithMeta(errMetaAllocKey, errMetaAllocHeap),
				errors.WithMeta(errMetaSizeKey, strconv.Itoa(n)),
			)
		}
	}()
	s = make([]T, n)
	return
}

// FreeSlice returns s, obtained from Array.Dissolve, to the allocator the
// array was using. It is a no-op for Heap.
func FreeSlice[T any](a Allocator, s []T) {
	if a == nil || isHeap(a) || cap(s) == 0 {
		return
	}
	a.Free(bytesOf(s))
}

// bytesOf views the backing array of s as bytes.
func bytesOf[T any](s []T) []byte {
	if cap(s) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(s))), cap(s)*elemSize[T]())
}

// baseOf returns the address identifying the allocation behind buf.
func baseOf(buf []byte) uintptr {
	if cap(buf) == 0 {
		return 0
	}
	return uintptr(unsafe.Pointer(unsafe.SliceData(buf)))
}
