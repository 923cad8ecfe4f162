package ssbuf

import (
	"math"
	"reflect"
	"slices"
	"testing"
)

func TestHeapAlloc(t *testing.T) {
	b, err := Heap.Alloc(32)
	if err != nil || len(b) != 32 {
		t.Fatalf("Heap.Alloc(32) = len %d, %v", len(b), err)
	}
	Heap.Free(b)
	Heap.Free(nil)

	if _, err := Heap.Alloc(-1); !IsTooLarge(err) {
		t.Errorf("Heap.Alloc(-1) err = %v, want ErrTooLarge", err)
	}
	if _, err := Heap.Alloc(math.MaxInt); !IsTooLarge(err) {
		t.Errorf("Heap.Alloc(MaxInt) err = %v, want ErrTooLarge", err)
	}
}

func TestPointerFree(t *testing.T) {
	type flat struct {
		a int64
		b [4]uint8
		c pair
	}
	type nested struct {
		f flat
		p *int
	}

	tests := []struct {
		name string
		typ  reflect.Type
		want bool
	}{
		{"int", reflect.TypeFor[int](), true},
		{"float64", reflect.TypeFor[float64](), true},
		{"flat struct", reflect.TypeFor[flat](), true},
		{"empty struct", reflect.TypeFor[struct{}](), true},
		{"array of int", reflect.TypeFor[[8]int](), true},
		{"empty array of pointers", reflect.TypeFor[[0]*int](), true},
		{"pointer", reflect.TypeFor[*int](), false},
		{"string", reflect.TypeFor[string](), false},
		{"slice", reflect.TypeFor[[]byte](), false},
		{"map", reflect.TypeFor[map[int]int](), false},
		{"interface", reflect.TypeFor[any](), false},
		{"nested pointer", reflect.TypeFor[nested](), false},
		{"array of strings", reflect.TypeFor[[2]string](), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := pointerFree(tt.typ); got != tt.want {
				t.Errorf("pointerFree(%s) = %v, want %v", tt.typ, got, tt.want)
			}
		})
	}
}

func TestHeapArrayHoldsPointers(t *testing.T) {
	x, y := 1, 2
	a, err := NewFrom([]*int{&x, &y})
	if err != nil {
		t.Fatal(err)
	}
	if *a.Ptr()[1] != 2 {
		t.Error("pointer element lost")
	}

	words, err := NewFrom([]string{"a", "b"})
	if err != nil {
		t.Fatal(err)
	}
	if err := words.Insert("c", 1); err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(words.Ptr(), []string{"a", "c", "b"}) {
		t.Errorf("got %v", words.Ptr())
	}
}

func TestElemSize(t *testing.T) {
	if elemSize[int32]() != 4 || elemSize[pair]() != 8 || elemSize[triple]() != 12 {
		t.Error("element sizes")
	}
	if elemSize[struct{}]() != 1 {
		t.Errorf("zero-sized type accounted as %d bytes, want 1", elemSize[struct{}]())
	}
}

func TestHeapBackingCoversCapacity(t *testing.T) {
	type wide struct{ a, b, c int64 }

	a, err := NewFrom([]wide{{}})
	if err != nil {
		t.Fatal(err)
	}
	if a.Cap() != 32 {
		t.Fatalf("cap = %d, want 32", a.Cap())
	}
	if backing := cap(a.data) * elemSize[wide](); backing < a.Cap() {
		t.Errorf("backing %d bytes < capacity %d", backing, a.Cap())
	}

	for _, n := range []int{1, 3, 5, 11, 100} {
		tr, err := NewWithSize[triple](n)
		if err != nil {
			t.Fatal(err)
		}
		if backing := cap(tr.data) * elemSize[triple](); backing < tr.Cap() {
			t.Errorf("NewWithSize(%d): backing %d bytes < capacity %d", n, backing, tr.Cap())
		}
	}
}

func TestFreeSlice(t *testing.T) {
	budget := NewBudget(Heap, 1024)
	a, err := NewFrom([]int64{1, 2, 3}, WithAllocator(budget))
	if err != nil {
		t.Fatal(err)
	}
	if budget.InUse() != 32 {
		t.Fatalf("budget in use = %d, want 32", budget.InUse())
	}

	data, n := a.Dissolve()
	if n != 3 || budget.InUse() != 32 {
		t.Fatalf("Dissolve = %d, in use %d", n, budget.InUse())
	}
	FreeSlice(a.Allocator(), data)
	if budget.InUse() != 0 {
		t.Errorf("budget in use = %d after FreeSlice, want 0", budget.InUse())
	}

	FreeSlice[int](Heap, []int{1})
	FreeSlice[int](nil, nil)
}

func TestWithAllocator(t *testing.T) {
	if o := newOptions(nil); !isHeap(o.Allocator) {
		t.Errorf("default allocator = %T, want Heap", o.Allocator)
	}
	if o := newOptions([]Option{WithAllocator(nil), nil}); !isHeap(o.Allocator) {
		t.Errorf("WithAllocator(nil) = %T, want Heap", o.Allocator)
	}
	arena := NewArena(0)
	if o := newOptions([]Option{WithAllocator(arena)}); o.Allocator != arena {
		t.Errorf("allocator = %T, want *Arena", o.Allocator)
	}
}
