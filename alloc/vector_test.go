package alloc

import (
	"errors"
	"testing"
)

func TestVector(t *testing.T) {
	v := NewVector[int64](New(Heap()), 4)

	for i := range int64(4) {
		v.Push(i + 1)
	}

	if v.Len() != 4 {
		t.Fatalf("Len() = %d, want 4", v.Len())
	}

	for i := range 4 {
		if got, ok := v.Get(i); !ok || got != int64(i+1) {
			t.Errorf("Get(%d) = %d, %v; want %d, true", i, got, ok, i+1)
		}
	}

	if !v.Set(2, 5) {
		t.Fatal("Set(2) reported out of range")
	}

	if got, _ := v.Get(2); got != 5 {
		t.Errorf("Get(2) after Set = %d, want 5", got)
	}

	if _, ok := v.Get(4); ok {
		t.Error("Get(4) should be out of range")
	}

	if v.Set(4, 1) {
		t.Error("Set(4) should be out of range")
	}

	v.Destroy()
}

func TestVector_Growth(t *testing.T) {
	tests := []struct {
		name    string
		initial int
		pushes  int
		wantCap int
	}{
		{"default capacity", 0, 0, DefaultCapacity},
		{"no growth", 4, 4, 4},
		{"grow once", 4, 5, 8},
		{"grow twice", 4, 9, 16},
		{"custom initial", 3, 4, 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewVector[byte](nil, tt.initial)
			for range tt.pushes {
				v.Push('x')
			}

			if v.Cap() != tt.wantCap {
				t.Errorf("Cap() = %d, want %d", v.Cap(), tt.wantCap)
			}

			if v.Len() != tt.pushes {
				t.Errorf("Len() = %d, want %d", v.Len(), tt.pushes)
			}
		})
	}
}

func TestVector_ReserveAndClear(t *testing.T) {
	v := NewVector[int](nil, 4)
	v.Append(1, 2, 3)

	v.Reserve(2)

	if v.Cap() != 4 {
		t.Errorf("Reserve below capacity changed Cap() to %d", v.Cap())
	}

	v.Reserve(32)

	if v.Cap() != 32 || v.Len() != 3 {
		t.Errorf("Reserve(32) Cap/Len = %d/%d, want 32/3", v.Cap(), v.Len())
	}

	v.Clear()

	if v.Len() != 0 || v.Cap() != 32 {
		t.Errorf("Clear() Cap/Len = %d/%d, want 32/0", v.Cap(), v.Len())
	}
}

func TestVector_OutOfMemory(t *testing.T) {
	b := Limit(64)
	a := New(b)

	err := Guard(func() error {
		v := NewVector[int64](a, 0)
		for i := range 64 {
			v.Push(int64(i))
		}

		return nil
	})

	if !errors.Is(err, ErrOutOfMemory) {
		t.Fatalf("Guard() error = %v, want %v", err, ErrOutOfMemory)
	}

	if b.InUse() != 0 {
		t.Errorf("InUse() = %d, want the failed vector's buffer released", b.InUse())
	}
}
