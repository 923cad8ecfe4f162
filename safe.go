package ssbuf

import "sync"

// SafeAllocator is a mutex-protected wrapper that lets one allocator, such as
// an Arena, back arrays and strings owned by different goroutines. It only
// guards the allocator; each Array or String still has a single owner.
type SafeAllocator struct {
	mu sync.Mutex
	a  Allocator
}

// NewSafeAllocator wraps a. A nil allocator means Heap.
func NewSafeAllocator(a Allocator) *SafeAllocator {
	if a == nil {
		a = Heap
	}
	return &SafeAllocator{a: a}
}

// Alloc thread-safely allocates size bytes from the wrapped allocator.
func (s *SafeAllocator) Alloc(size int) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.Alloc(size)
}

// Free thread-safely returns buf to the wrapped allocator.
func (s *SafeAllocator) Free(buf []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.a.Free(buf)
}

// Do runs fn with exclusive access to the wrapped allocator, for calls
// outside the Allocator interface such as Arena.Reset.
func (s *SafeAllocator) Do(fn func(a Allocator)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.a)
}
