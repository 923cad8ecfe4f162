//go:build !(linux || darwin || freebsd || netbsd || openbsd)

package ssbuf

import "github.com/brickingsoft/errors"

func (m *Mmap) Alloc(size int) ([]byte, error) {
	if size == 0 {
		return nil, nil
	}
	return nil, errors.From(ErrNotSupported, errors.WithMeta(errMetaAllocKey, errMetaAllocMmap))
}

func (m *Mmap) Free([]byte) {}

func (m *Mmap) Release() {}
