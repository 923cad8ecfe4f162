package ssbuf

import (
	"bytes"
	"strings"

	"github.com/pavanmanishd/ssbuf/internal/diag"
)

// minStringGrowth is the smallest buffer an append allocates.
const minStringGrowth = 16

// String is an owned, growable, null-terminated byte string.
//
// Len counts the terminator: a string built from "" has Len 1, while a string
// without a buffer has Len 0. Text handed to the constructors and appenders
// ends at its first NUL byte, as a C string would.
//
// A nil *String behaves as an absent string. After Free the string must not
// be used again; doing so panics.
type String struct {
	str      []byte
	len      int // bytes, terminator included
	capacity int // bytes
	alloc    Allocator
	freed    bool
}

// NewString returns an empty string without a buffer.
func NewString(opts ...Option) *String {
	options := newOptions(opts)
	return &String{alloc: options.Allocator}
}

// NewStringWithSize returns an empty string with a buffer of at least n
// bytes. If n <= 0, it behaves like NewString.
func NewStringWithSize(n int, opts ...Option) (*String, error) {
	s := NewString(opts...)
	if n <= 0 {
		return s, nil
	}
	size, err := growSize(n)
	if err != nil {
		return nil, allocError(errMetaOpCreate, err)
	}
	buf, err := s.alloc.Alloc(size)
	if err != nil {
		return nil, allocError(errMetaOpCreate, err)
	}
	s.str = buf
	s.capacity = size
	return s, nil
}

// NewStringFrom returns a string holding a copy of text.
func NewStringFrom(text string, opts ...Option) (*String, error) {
	text = cstring(text)
	n := len(text) + 1
	s, err := NewStringWithSize(n, opts...)
	if err != nil {
		return nil, err
	}
	copy(s.str, text)
	s.str[n-1] = 0
	s.len = n
	return s, nil
}

// Clear zeroes the occupied bytes and sets the length to 0. The buffer is
// kept for reuse.
func (s *String) Clear() {
	if s == nil {
		return
	}
	s.mustBeLive()
	if s.str == nil {
		return
	}
	clear(s.str[:s.len])
	s.len = 0
}

// Wipe zeroes the whole buffer, not just the occupied bytes, and sets the
// length to 0.
func (s *String) Wipe() {
	if s == nil {
		return
	}
	s.mustBeLive()
	if s.str == nil {
		return
	}
	clear(s.str[:s.capacity])
	s.len = 0
}

// AppendText appends text. Empty text is rejected with ErrNoData.
func (s *String) AppendText(text string) error {
	if s == nil {
		return ErrNilString
	}
	s.mustBeLive()
	text = cstring(text)
	if text == "" {
		return ErrNoData
	}
	return s.appendText(text)
}

// AppendBytes appends p, which does not need to be null-terminated. An empty
// p, or one starting with a NUL byte, is rejected with ErrNoData.
func (s *String) AppendBytes(p []byte) error {
	if s == nil {
		return ErrNilString
	}
	s.mustBeLive()
	if len(p) == 0 || p[0] == 0 {
		return ErrNoData
	}
	return s.appendBytes(p)
}

// AppendChar appends a single byte. NUL is rejected with ErrNoData.
func (s *String) AppendChar(c byte) error {
	if s == nil {
		return ErrNilString
	}
	s.mustBeLive()
	if c == 0 {
		return ErrNoData
	}
	return s.appendBytes([]byte{c})
}

// AppendString appends the text of src, which may be s itself.
func (s *String) AppendString(src *String) error {
	if s == nil || src == nil {
		return ErrNilString
	}
	s.mustBeLive()
	src.mustBeLive()
	if src.IsEmpty() {
		return ErrNoData
	}
	return s.appendBytes(src.str[:src.len-1])
}

func (s *String) appendText(text string) error {
	old, err := s.reserve(len(text))
	if err != nil {
		return err
	}
	copy(s.str[s.used():], text)
	s.terminate(len(text))
	s.release(old)
	return nil
}

// appendBytes may be handed a slice of s's own buffer; the old buffer is
// released only after the copy.
func (s *String) appendBytes(p []byte) error {
	old, err := s.reserve(len(p))
	if err != nil {
		return err
	}
	copy(s.str[s.used():], p)
	s.terminate(len(p))
	s.release(old)
	return nil
}

// used returns the offset of the terminator, which is also where appended
// content starts.
func (s *String) used() int {
	if s.len == 0 {
		return 0
	}
	return s.len - 1
}

// required returns the buffer size needed to hold n more bytes.
func (s *String) required(n int) int {
	return s.used() + n + 1
}

// reserve makes room for n more bytes and returns the replaced buffer, if
// any. Every append variant grows the same way: twice the required length
// rounded up to a power of two, and never less than minStringGrowth.
func (s *String) reserve(n int) (old []byte, err error) {
	need := s.required(n)
	if need <= s.capacity {
		return nil, nil
	}
	size, err := mulSize(need, 2)
	if err == nil {
		size, err = growSize(size)
	}
	if err != nil {
		return nil, allocError(errMetaOpAppend, err)
	}
	size = max(size, minStringGrowth)

	buf, err := s.alloc.Alloc(size)
	if err != nil {
		return nil, allocError(errMetaOpAppend, err)
	}
	copy(buf, s.str[:s.len])
	old = s.str
	s.str = buf
	s.capacity = size
	return old, nil
}

// terminate accounts for n appended bytes and rewrites the terminator.
func (s *String) terminate(n int) {
	s.len = s.required(n)
	s.str[s.len-1] = 0
	diag.Assert(s.len <= s.capacity,
		"ssbuf: string of length %d overflows its %d byte buffer", s.len, s.capacity)
}

func (s *String) release(buf []byte) {
	if buf != nil {
		s.alloc.Free(buf)
	}
}

// Text returns the content without the terminator.
func (s *String) Text() string {
	if s == nil {
		return ""
	}
	s.mustBeLive()
	if s.str == nil || s.len == 0 {
		return ""
	}
	return string(s.str[:s.len-1])
}

// CString returns the occupied bytes including the terminator. The slice
// aliases the buffer. It is nil when the string has no buffer.
func (s *String) CString() []byte {
	if s == nil {
		return nil
	}
	s.mustBeLive()
	if s.str == nil {
		return nil
	}
	if s.len == 0 {
		return s.str[:1]
	}
	return s.str[:s.len]
}

// Len returns the occupied bytes including the terminator, or 0 when the
// string has no buffer.
func (s *String) Len() int {
	if s == nil {
		return 0
	}
	s.mustBeLive()
	if s.str == nil {
		return 0
	}
	return s.len
}

// Cap returns the buffer size in bytes.
func (s *String) Cap() int {
	if s == nil {
		return 0
	}
	s.mustBeLive()
	return s.capacity
}

// IsEmpty reports whether the string is nil, has no buffer, has length 0 or
// starts with the terminator.
func (s *String) IsEmpty() bool {
	if s == nil {
		return true
	}
	s.mustBeLive()
	if s.str == nil {
		return true
	}
	return s.len == 0 || s.str[0] == 0
}

// Free returns the buffer to the allocator. The string is unusable
// afterwards. Freeing twice is harmless.
func (s *String) Free() {
	if s == nil || s.freed {
		return
	}
	s.release(s.str)
	s.str = nil
	s.len = 0
	s.capacity = 0
	s.freed = true
}

func (s *String) mustBeLive() {
	diag.Assert(!s.freed, "ssbuf: use of freed string")
}

// Compare orders two strings bytewise, like strcmp. It returns 0 when both
// are nil and -1 when exactly one of them is nil.
func Compare(s1, s2 *String) int {
	switch {
	case s1 == nil && s2 == nil:
		return 0
	case s1 == nil || s2 == nil:
		return -1
	}
	return bytes.Compare(s1.content(), s2.content())
}

// content returns the bytes up to the first NUL.
func (s *String) content() []byte {
	s.mustBeLive()
	if s.str == nil || s.len == 0 {
		return nil
	}
	b := s.str[:s.len]
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return b
}

func cstring(text string) string {
	if i := strings.IndexByte(text, 0); i >= 0 {
		return text[:i]
	}
	return text
}
