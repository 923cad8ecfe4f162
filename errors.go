package ssbuf

import "github.com/brickingsoft/errors"

var (
	// ErrNilArray is returned when an array operation receives a nil *Array.
	ErrNilArray = errors.Define("ssbuf: array is nil")
	// ErrNilString is returned when a string operation receives a nil *String.
	ErrNilString = errors.Define("ssbuf: string is nil")
	// ErrNilPredicate is returned by Partition when pred is nil.
	ErrNilPredicate = errors.Define("ssbuf: predicate is nil")
	// ErrNoData is returned when an append has nothing to add.
	ErrNoData = errors.Define("ssbuf: nothing to append")
	// ErrEmpty is returned by Partition on an array without elements.
	ErrEmpty = errors.Define("ssbuf: array is empty")
	// ErrOutOfRange is returned for a position outside the array.
	ErrOutOfRange = errors.Define("ssbuf: position out of range")
	// ErrAllocate wraps every failure to obtain a new buffer.
	ErrAllocate = errors.Define("ssbuf: allocate failed")
	// ErrTooLarge is the cause when a requested size overflows or is negative.
	ErrTooLarge = errors.Define("ssbuf: buffer too large")
	// ErrBudgetExceeded is the cause when a Budget refuses an allocation.
	ErrBudgetExceeded = errors.Define("ssbuf: allocation budget exceeded")
	// ErrAllocatorReleased is the cause when an Arena is used after Release.
	ErrAllocatorReleased = errors.Define("ssbuf: allocator released")
	// ErrNotSupported is the cause when Mmap is used on a platform without it.
	ErrNotSupported = errors.Define("ssbuf: allocator not supported on this platform")
)

const (
	errMetaOpKey       = "op"
	errMetaOpCreate    = "create"
	errMetaOpAppend    = "append"
	errMetaOpInsert    = "insert"
	errMetaSizeKey     = "size"
	errMetaAllocKey    = "allocator"
	errMetaAllocHeap   = "heap"
	errMetaAllocArena  = "arena"
	errMetaAllocMmap   = "mmap"
	errMetaAllocBudget = "budget"
)

// IsAllocate reports whether err is an allocation failure of any kind.
func IsAllocate(err error) bool {
	return errors.Is(err, ErrAllocate)
}

// IsTooLarge reports whether err was caused by an oversized request.
func IsTooLarge(err error) bool {
	return errors.Is(err, ErrTooLarge)
}

// IsBudgetExceeded reports whether err was caused by a Budget refusing an allocation.
func IsBudgetExceeded(err error) bool {
	return errors.Is(err, ErrBudgetExceeded)
}

// IsAllocatorReleased reports whether err was caused by a released allocator.
func IsAllocatorReleased(err error) bool {
	return errors.Is(err, ErrAllocatorReleased)
}

// IsOutOfRange reports whether err is an out-of-range position.
func IsOutOfRange(err error) bool {
	return errors.Is(err, ErrOutOfRange)
}

// IsNoData reports whether err is an append with nothing to add.
func IsNoData(err error) bool {
	return errors.Is(err, ErrNoData)
}

// allocError wraps an allocator failure so that both ErrAllocate and the
// allocator's own cause match with errors.Is.
func allocError(op string, cause error) error {
	return errors.From(
		ErrAllocate,
		errors.WithMeta(errMetaOpKey, op),
		errors.WithWrap(cause),
	)
}
