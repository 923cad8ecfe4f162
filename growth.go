package ssbuf

import (
	"math"
	"strconv"

	"github.com/brickingsoft/errors"
)

// NextPowOfTwo returns n if it is a power of two, otherwise the next higher
// power of two. NextPowOfTwo(0) is 0.
func NextPowOfTwo(n uint64) uint64 {
	if n == 0 {
		return 0
	}
	n--
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n |= n >> 32
	return n + 1
}

// growSize rounds a byte count up through NextPowOfTwo, failing when the
// result does not fit an int.
func growSize(n int) (int, error) {
	if n < 0 {
		return 0, errors.From(ErrTooLarge, errors.WithMeta(errMetaSizeKey, strconv.Itoa(n)))
	}
	size := NextPowOfTwo(uint64(n))
	if size > math.MaxInt {
		return 0, errors.From(ErrTooLarge, errors.WithMeta(errMetaSizeKey, strconv.Itoa(n)))
	}
	return int(size), nil
}

// mulSize returns a*b, reporting overflow as ErrTooLarge.
func mulSize(a, b int) (int, error) {
	if a < 0 || b < 0 || (a != 0 && b > math.MaxInt/a) {
		return 0, errors.From(ErrTooLarge)
	}
	return a * b, nil
}
