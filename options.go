package ssbuf

// Options configures a new Array or String.
type Options struct {
	// Allocator provides the backing buffers. Defaults to Heap.
	Allocator Allocator
}

type Option func(options *Options)

// WithAllocator backs the buffer with a. A nil allocator keeps the default.
func WithAllocator(a Allocator) Option {
	return func(options *Options) {
		if a != nil {
			options.Allocator = a
		}
	}
}

func newOptions(opts []Option) Options {
	options := Options{Allocator: Heap}
	for _, opt := range opts {
		if opt != nil {
			opt(&options)
		}
	}
	return options
}
