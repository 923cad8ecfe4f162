// Package ssbuf provides growable, explicitly owned buffers: a generic
// sequence container and a managed null-terminated byte string.
//
// # Overview
//
// Both types keep their capacity in bytes and grow it to the next power of
// two whenever an operation needs more room. Growth goes through an
// Allocator, so a buffer can live on the Go heap, in an Arena, in anonymous
// memory mappings, or under a Budget that refuses to hand out more than a
// fixed number of bytes.
//
// Failures are values. Running out of memory, appending nothing or passing
// an out-of-range position returns an error and leaves the buffer exactly as
// it was. Broken internal invariants and use of a buffer after it has been
// handed away panic.
//
// # Arrays
//
//	a := ssbuf.New[int]()
//	defer a.Free()
//
//	_ = a.AppendData([]int{9, 2, 3, 8})
//	_ = a.Insert(5, 1)               // 9 5 2 3 8
//	at, _ := a.Partition(func(v *int) bool { return *v <= 5 })
//	// a.Ptr()[:at] holds {2, 3, 5} and a.Ptr()[at:] holds {8, 9}, in some order
//
// Insert grows the array by a copy of its last element and then rotates the
// new element into place with swaps; Partition is a Hoare scan. Neither uses
// a scratch buffer.
//
// Dissolve hands the buffer to the caller and invalidates the array:
//
//	data, n := a.Dissolve()
//
// # Strings
//
//	s, _ := ssbuf.NewStringFrom("a")
//	_ = s.AppendText("bcd")
//	s.Text() // "abcd"
//	s.Len()  // 5, the terminator is counted
//
// # Allocators
//
//	arena := ssbuf.NewArena(0)
//	defer arena.Release()
//	a := ssbuf.New[int64](ssbuf.WithAllocator(arena))
//
// Memory from allocators other than Heap is untyped, so arrays backed by
// them accept only element types without pointers. None of the buffer types
// are safe for concurrent use; SafeAllocator lets one allocator be shared.
package ssbuf
