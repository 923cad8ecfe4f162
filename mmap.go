package ssbuf

import "sync"

// Mmap allocates every buffer as its own anonymous private memory mapping and
// unmaps it on Free. Buffers live outside the Go heap, so only pointer-free
// element types may be stored in them. Mmap is safe for concurrent use.
type Mmap struct {
	mu    sync.Mutex
	maps  map[uintptr][]byte
	inUse int
}

// NewMmap returns an empty mapping allocator.
func NewMmap() *Mmap {
	return &Mmap{maps: make(map[uintptr][]byte)}
}

// InUse returns the number of bytes currently mapped.
func (m *Mmap) InUse() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.inUse
}

// Mappings returns the number of live mappings.
func (m *Mmap) Mappings() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.maps)
}
