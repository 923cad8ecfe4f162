package ssbuf

import "testing"

func TestArrayMetrics(t *testing.T) {
	var absent *Array[int32]
	if absent.Metrics() != (BufferMetrics{}) {
		t.Error("nil array metrics not zero")
	}

	a := New[int32]()
	if m := a.Metrics(); m != (BufferMetrics{}) {
		t.Errorf("empty array metrics = %+v", m)
	}

	if err := a.AppendData([]int32{1, 2, 3}); err != nil {
		t.Fatal(err)
	}
	m := a.Metrics()
	if m.Len != 3 || m.SizeInUse != 12 || m.Capacity != 16 {
		t.Errorf("metrics = %+v, want len 3, 12 bytes of 16", m)
	}
	if m.Utilization != 0.75 {
		t.Errorf("Utilization = %f, want 0.75", m.Utilization)
	}
}

func TestStringMetrics(t *testing.T) {
	s, _ := NewStringFrom("abc")
	m := s.Metrics()
	if m.Len != 4 || m.SizeInUse != 4 || m.Capacity != 4 || m.Utilization != 1 {
		t.Errorf("metrics = %+v", m)
	}

	s.Clear()
	if m := s.Metrics(); m.Len != 0 || m.Capacity != 4 || m.Utilization != 0 {
		t.Errorf("metrics after Clear = %+v", m)
	}

	var absent *String
	if absent.Metrics() != (BufferMetrics{}) {
		t.Error("nil string metrics not zero")
	}
}

func TestArenaMetrics(t *testing.T) {
	a := NewArena(1024)

	if a.SizeInUse() != 0 {
		t.Errorf("Initial SizeInUse = %d, want 0", a.SizeInUse())
	}
	if a.NumChunks() != 1 {
		t.Errorf("Initial NumChunks = %d, want 1", a.NumChunks())
	}
	if a.Capacity() == 0 {
		t.Error("Initial Capacity should be > 0")
	}
	if a.ChunkSize() != 1024 {
		t.Errorf("ChunkSize = %d, want 1024", a.ChunkSize())
	}
	if a.Utilization() != 0 {
		t.Errorf("Initial Utilization = %f, want 0", a.Utilization())
	}

	_, _ = a.Alloc(100)
	_, _ = a.Alloc(200)

	if a.SizeInUse() == 0 {
		t.Error("SizeInUse should be > 0 after allocations")
	}
	if u := a.Utilization(); u <= 0 || u > 1 {
		t.Errorf("Utilization = %f, want 0 < x <= 1", u)
	}

	// Larger than a chunk.
	_, _ = a.Alloc(2000)
	if a.NumChunks() != 2 {
		t.Errorf("NumChunks after growth = %d, want 2", a.NumChunks())
	}
	if a.Capacity() <= 1024 {
		t.Errorf("Capacity after growth = %d, want > 1024", a.Capacity())
	}

	metrics := a.Metrics()
	want := ArenaMetrics{
		SizeInUse:   a.SizeInUse(),
		Capacity:    a.Capacity(),
		NumChunks:   a.NumChunks(),
		ChunkSize:   a.ChunkSize(),
		Utilization: a.Utilization(),
	}
	if metrics != want {
		t.Errorf("Metrics() = %+v, want %+v", metrics, want)
	}
}

func TestArenaMetricsAfterReset(t *testing.T) {
	a := NewArena(1024)
	_, _ = a.Alloc(500)
	if a.Utilization() == 0 {
		t.Error("Expected non-zero Utilization before reset")
	}

	a.Reset()
	if a.SizeInUse() != 0 {
		t.Errorf("SizeInUse after Reset = %d, want 0", a.SizeInUse())
	}
	if a.Utilization() != 0 {
		t.Errorf("Utilization after Reset = %f, want 0", a.Utilization())
	}
	if a.NumChunks() == 0 || a.Capacity() == 0 {
		t.Error("chunks should survive Reset")
	}
}

func TestArenaMetricsAfterRelease(t *testing.T) {
	a := NewArena(1024)
	_, _ = a.Alloc(100)
	a.Release()

	if m := a.Metrics(); m.SizeInUse != 0 || m.NumChunks != 0 || m.Capacity != 0 || m.Utilization != 0 {
		t.Errorf("Metrics after Release = %+v", m)
	}
}
