//go:build linux || darwin || freebsd || netbsd || openbsd

package ssbuf

import (
	"strconv"

	"github.com/brickingsoft/errors"
	"github.com/pavanmanishd/ssbuf/internal/diag"
	"golang.org/x/sys/unix"
)

func (m *Mmap) Alloc(size int) ([]byte, error) {
	if size < 0 {
		return nil, errors.From(ErrTooLarge, errors.WithMeta(errMetaAllocKey, errMetaAllocMmap))
	}
	if size == 0 {
		return nil, nil
	}
	b, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, errors.New(
			"ssbuf: mmap failed",
			errors.WithMeta(errMetaAllocKey, errMetaAllocMmap),
			errors.WithMeta(errMetaSizeKey, strconv.Itoa(size)),
			errors.WithWrap(err),
		)
	}

	m.mu.Lock()
	m.maps[baseOf(b)] = b
	m.inUse += len(b)
	m.mu.Unlock()
	return b, nil
}

func (m *Mmap) Free(buf []byte) {
	base := baseOf(buf)
	if base == 0 {
		return
	}

	m.mu.Lock()
	b, ok := m.maps[base]
	if ok {
		delete(m.maps, base)
		m.inUse -= len(b)
	}
	m.mu.Unlock()

	diag.Assert(ok, "ssbuf: free of a buffer not mapped by this allocator")
	err := unix.Munmap(b)
	diag.Check(err == nil, "ssbuf: munmap of %d bytes failed: %v", len(b), err)
}

// Release unmaps every outstanding buffer.
func (m *Mmap) Release() {
	m.mu.Lock()
	maps := m.maps
	m.maps = make(map[uintptr][]byte)
	m.inUse = 0
	m.mu.Unlock()

	for _, b := range maps {
		err := unix.Munmap(b)
		diag.Check(err == nil, "ssbuf: munmap of %d bytes failed: %v", len(b), err)
	}
}
