package ssbuf

import (
	"runtime"
	"testing"
)

// BenchmarkRealisticUsage compares arena-backed buffers with heap-backed ones
// in request-shaped workloads.
func BenchmarkRealisticUsage(b *testing.B) {
	type record struct {
		ID   int64
		Data [56]byte
	}

	// Build a batch of records per request, then drop everything at once.
	b.Run("RecordBatch/Arena", func(b *testing.B) {
		a := NewArena(64 * 1024)
		b.ResetTimer()

		for i := 0; i < b.N; i++ {
			batch := New[record](WithAllocator(a))
			for j := 0; j < 50; j++ {
				_ = batch.AppendData([]record{{ID: int64(j)}})
			}
			a.Reset()
		}
	})

	b.Run("RecordBatch/Heap", func(b *testing.B) {
		b.ResetTimer()

		for i := 0; i < b.N; i++ {
			batch := New[record]()
			for j := 0; j < 50; j++ {
				_ = batch.AppendData([]record{{ID: int64(j)}})
			}
			if i%10 == 0 {
				runtime.GC()
			}
		}
	})

	// Assemble a response line by line.
	b.Run("ResponseText/Arena", func(b *testing.B) {
		a := NewArena(1024 * 1024)
		b.ResetTimer()

		for i := 0; i < b.N; i++ {
			s := NewString(WithAllocator(a))
			for j := 0; j < 10; j++ {
				_ = s.AppendText("header: value\r\n")
			}
			a.Reset()
		}
	})

	b.Run("ResponseText/Heap", func(b *testing.B) {
		b.ResetTimer()

		for i := 0; i < b.N; i++ {
			s := NewString()
			for j := 0; j < 10; j++ {
				_ = s.AppendText("header: value\r\n")
			}
			if i%5 == 0 {
				runtime.GC()
			}
		}
	})

	// Partition a reused buffer without reallocating.
	b.Run("PartitionReuse", func(b *testing.B) {
		a, _ := NewWithSize[int](1024)
		src := make([]int, 1024)
		for i := range src {
			src[i] = (i * 7919) % 1024
		}
		b.ResetTimer()

		for i := 0; i < b.N; i++ {
			a.Clear()
			_ = a.AppendData(src)
			_, _ = a.Partition(func(v *int) bool { return *v < 512 })
		}
	})
}
