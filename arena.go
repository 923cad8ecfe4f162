package ssbuf

import (
	"strconv"
	"unsafe"

	"github.com/brickingsoft/errors"
)

// DefaultChunkSize is the default chunk size for new arenas (64 KiB).
const DefaultChunkSize = 1 << 16

// chunk is a single block of arena memory.
type chunk struct {
	buf    []byte  // backing memory
	offset uintptr // allocation offset within buf
}

// Arena is a chunked bump allocator. Buffers are carved sequentially out of
// large chunks; Free is a no-op and memory comes back all at once through
// Reset or Release. Not goroutine-safe; wrap it with NewSafeAllocator to
// share it.
//
// Every array or string backed by an arena must be dropped before the arena
// is Reset or Released.
type Arena struct {
	chunks       []chunk
	chunkSize    int
	currentChunk *chunk
	released     bool
}

// NewArena creates an Arena with the given chunk size.
// If chunkSize <= 0, DefaultChunkSize is used.
func NewArena(chunkSize int) *Arena {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	a := &Arena{chunkSize: chunkSize}
	_ = a.grow(chunkSize)
	return a
}

// Alloc returns size zeroed bytes from the current chunk, starting a new
// chunk when it does not fit.
func (a *Arena) Alloc(size int) ([]byte, error) {
	if a.released {
		return nil, errors.From(ErrAllocatorReleased, errors.WithMeta(errMetaAllocKey, errMetaAllocArena))
	}
	if size < 0 {
		return nil, errors.From(ErrTooLarge, errors.WithMeta(errMetaAllocKey, errMetaAllocArena))
	}
	if size == 0 {
		return nil, nil
	}

	// Fast path: current chunk
	if c := a.currentChunk; c != nil {
		off := alignPtr(c.offset)
		if off+uintptr(size) <= uintptr(len(c.buf)) {
			return a.carve(c, off, size), nil
		}
	}

	if !a.advance(size) {
		if err := a.grow(size); err != nil {
			return nil, err
		}
	}
	c := a.currentChunk
	return a.carve(c, alignPtr(c.offset), size), nil
}

// advance makes the next chunk with room for size bytes current. Chunks
// past the current one are only non-empty before a Reset rewinds them.
func (a *Arena) advance(size int) bool {
	start := 0
	for i := range a.chunks {
		if &a.chunks[i] == a.currentChunk {
			start = i + 1
			break
		}
	}
	for i := start; i < len(a.chunks); i++ {
		c := &a.chunks[i]
		if alignPtr(c.offset)+uintptr(size) <= uintptr(len(c.buf)) {
			a.currentChunk = c
			return true
		}
	}
	return false
}

func (a *Arena) carve(c *chunk, off uintptr, size int) []byte {
	c.offset = off + uintptr(size)
	b := unsafe.Slice((*byte)(unsafe.Pointer(&c.buf[off])), size)
	// Chunks are reused after Reset.
	clear(b)
	return b
}

// Free is a no-op: arena memory is reclaimed by Reset or Release.
func (a *Arena) Free([]byte) {}

// EnsureCapacity makes sure the current chunk has at least n free bytes.
func (a *Arena) EnsureCapacity(n int) error {
	if a.released {
		return errors.From(ErrAllocatorReleased, errors.WithMeta(errMetaAllocKey, errMetaAllocArena))
	}
	if c := a.currentChunk; c != nil && alignPtr(c.offset)+uintptr(n) <= uintptr(len(c.buf)) {
		return nil
	}
	if a.advance(n) {
		return nil
	}
	return a.grow(n)
}

// Reset rewinds every chunk so its memory can be handed out again.
// Buffers allocated before the reset must no longer be used.
func (a *Arena) Reset() {
	if a.released {
		return
	}
	for i := range a.chunks {
		a.chunks[i].offset = 0
	}
	if len(a.chunks) > 0 {
		a.currentChunk = &a.chunks[0]
	}
}

// Release drops all chunks. Later allocations fail with ErrAllocatorReleased.
func (a *Arena) Release() {
	a.chunks = nil
	a.currentChunk = nil
	a.released = true
}

// grow appends a chunk of at least min bytes and makes it current.
func (a *Arena) grow(min int) (err error) {
	size := a.chunkSize
	if min > size {
		size = min
	}
	defer func() {
		if recover() != nil {
			err = errors.From(
				ErrTooLarge,
				errors.WithMeta(errMetaAllocKey, errMetaAllocArena),
				errors.WithMeta(errMetaSizeKey, strconv.Itoa(size)),
			)
		}
	}()
	buf := make([]byte, size)
	a.chunks = append(a.chunks, chunk{buf: buf})
	a.currentChunk = &a.chunks[len(a.chunks)-1]
	return nil
}

// alignPtr aligns the offset up to pointer size alignment.
func alignPtr(off uintptr) uintptr {
	const align = unsafe.Sizeof(uintptr(0))
	mask := align - 1
	return (off + mask) & ^mask
}
