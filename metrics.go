package ssbuf

// BufferMetrics is a snapshot of an Array or String.
type BufferMetrics struct {
	Len         int     // Elements for an Array, bytes including the terminator for a String
	SizeInUse   int     // Bytes occupied by live content
	Capacity    int     // Buffer size in bytes
	Utilization float64 // Ratio of SizeInUse to Capacity (0.0-1.0)
}

func newBufferMetrics(n, inUse, capacity int) BufferMetrics {
	m := BufferMetrics{Len: n, SizeInUse: inUse, Capacity: capacity}
	if capacity > 0 {
		m.Utilization = float64(inUse) / float64(capacity)
	}
	return m
}

// Metrics returns a snapshot of the array's buffer usage.
func (a *Array[T]) Metrics() BufferMetrics {
	if a == nil {
		return BufferMetrics{}
	}
	return newBufferMetrics(a.Len(), a.Len()*elemSize[T](), a.Cap())
}

// Metrics returns a snapshot of the string's buffer usage.
func (s *String) Metrics() BufferMetrics {
	if s == nil {
		return BufferMetrics{}
	}
	return newBufferMetrics(s.Len(), s.Len(), s.Cap())
}

// ArenaMetrics contains statistical information about an arena.
type ArenaMetrics struct {
	SizeInUse   int     // Bytes currently allocated
	Capacity    int     // Total capacity in bytes
	NumChunks   int     // Number of chunks
	ChunkSize   int     // Default chunk size
	Utilization float64 // Ratio of used to total capacity (0.0-1.0)
}

// SizeInUse returns the number of bytes handed out since the last Reset,
// alignment padding included.
func (a *Arena) SizeInUse() int {
	sum := 0
	for _, c := range a.chunks {
		sum += int(c.offset)
	}
	return sum
}

// NumChunks returns the number of chunks currently held by the arena.
func (a *Arena) NumChunks() int {
	return len(a.chunks)
}

// Capacity returns the total size of all chunks in bytes.
func (a *Arena) Capacity() int {
	sum := 0
	for _, c := range a.chunks {
		sum += len(c.buf)
	}
	return sum
}

// Utilization returns the ratio of bytes in use to total capacity.
func (a *Arena) Utilization() float64 {
	capacity := a.Capacity()
	if capacity == 0 {
		return 0
	}
	return float64(a.SizeInUse()) / float64(capacity)
}

// ChunkSize returns the default chunk size used by this arena.
func (a *Arena) ChunkSize() int {
	return a.chunkSize
}

// Metrics returns a snapshot of arena statistics.
func (a *Arena) Metrics() ArenaMetrics {
	return ArenaMetrics{
		SizeInUse:   a.SizeInUse(),
		Capacity:    a.Capacity(),
		NumChunks:   a.NumChunks(),
		ChunkSize:   a.ChunkSize(),
		Utilization: a.Utilization(),
	}
}
