package ssbuf

import (
	"strconv"
	"sync"

	"github.com/brickingsoft/errors"
)

// Budget caps the number of bytes outstanding from a parent allocator.
// An allocation that would exceed the limit fails with ErrBudgetExceeded
// and leaves the parent untouched. Budget is safe for concurrent use as long
// as the parent is.
type Budget struct {
	parent Allocator
	limit  int

	mu    sync.Mutex
	inUse int
	sizes map[uintptr]int
}

// NewBudget limits parent to limit bytes. A nil parent means Heap.
//
// Buffers from a Budget are untyped memory even when the parent is Heap, so
// arrays backed by a Budget need pointer-free element types.
func NewBudget(parent Allocator, limit int) *Budget {
	if parent == nil {
		parent = Heap
	}
	if limit < 0 {
		limit = 0
	}
	return &Budget{parent: parent, limit: limit, sizes: make(map[uintptr]int)}
}

func (b *Budget) Alloc(size int) ([]byte, error) {
	if size == 0 {
		return nil, nil
	}

	b.mu.Lock()
	if size < 0 || size > b.limit-b.inUse {
		b.mu.Unlock()
		return nil, errors.From(
			ErrBudgetExceeded,
			errors.WithMeta(errMetaAllocKey, errMetaAllocBudget),
			errors.WithMeta(errMetaSizeKey, strconv.Itoa(size)),
		)
	}
	b.inUse += size
	b.mu.Unlock()

	buf, err := b.parent.Alloc(size)
	if err != nil {
		b.mu.Lock()
		b.inUse -= size
		b.mu.Unlock()
		return nil, err
	}

	b.mu.Lock()
	base := baseOf(buf)
	// A parent that reclaims in bulk, such as a reset Arena, hands out the
	// same address again; the earlier buffer is gone.
	if stale, ok := b.sizes[base]; ok {
		b.inUse -= stale
	}
	b.sizes[base] = size
	b.mu.Unlock()
	return buf, nil
}

func (b *Budget) Free(buf []byte) {
	base := baseOf(buf)
	if base == 0 {
		return
	}
	b.mu.Lock()
	size, ok := b.sizes[base]
	if ok {
		delete(b.sizes, base)
		b.inUse -= size
	}
	b.mu.Unlock()
	if ok {
		b.parent.Free(buf)
	}
}

// InUse returns the number of bytes currently outstanding.
func (b *Budget) InUse() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.inUse
}

// Limit returns the configured cap in bytes.
func (b *Budget) Limit() int {
	return b.limit
}
