package bucket

import (
	"errors"
	"slices"
	"testing"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		name   string
		w, h   int
		wantID int
		size   int
	}{
		{"tiny", 1, 1, 1, 16},
		{"exact min", 16, 16, 1, 16},
		{"just over min", 17, 3, 2, 32},
		{"tall", 10, 32, 2, 32},
		{"wide strip frame", 64, 48, 3, 64},
		{"power of two", 256, 256, 5, 256},
		{"non square", 300, 20, 6, 512},
		{"max", 2048, 2048, 8, 2048},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info, ok := Lookup(tt.w, tt.h)
			if !ok {
				t.Fatalf("Lookup(%d, %d) not ok", tt.w, tt.h)
			}
			if info.ID != tt.wantID {
				t.Errorf("ID = %d, want %d", info.ID, tt.wantID)
			}
			if info.Size != tt.size {
				t.Errorf("Size = %d, want %d", info.Size, tt.size)
			}
		})
	}
}

func TestLookup_Unsupported(t *testing.T) {
	for _, dims := range [][2]int{{0, 10}, {10, 0}, {-1, 5}, {2049, 1}, {1, 4096}} {
		if _, ok := Lookup(dims[0], dims[1]); ok {
			t.Errorf("Lookup(%d, %d) should not be ok", dims[0], dims[1])
		}
	}
}

func TestLookup_Properties(t *testing.T) {
	sizes := Sizes()
	for w := 1; w <= MaxSize; w += 37 {
		for h := 1; h <= MaxSize; h += 53 {
			a, ok := Lookup(w, h)
			if !ok {
				t.Fatalf("Lookup(%d, %d) not ok", w, h)
			}
			b, _ := Lookup(w, h)
			if a != b {
				t.Fatalf("Lookup(%d, %d) not deterministic: %v vs %v", w, h, a, b)
			}
			if a.Size < max(w, h) {
				t.Errorf("Lookup(%d, %d).Size = %d, smaller than input", w, h, a.Size)
			}
			if !slices.Contains(sizes, a.Size) {
				t.Errorf("Lookup(%d, %d).Size = %d, not a supported size", w, h, a.Size)
			}
			if SizeOf(a.ID) != a.Size {
				t.Errorf("SizeOf(%d) = %d, want %d", a.ID, SizeOf(a.ID), a.Size)
			}
			// Same padded size must map to the same bucket.
			again, _ := Lookup(a.Size, a.Size)
			if again != a {
				t.Errorf("Lookup(%d, %d) = %v, want %v", a.Size, a.Size, again, a)
			}
		}
	}
}

func TestSizes(t *testing.T) {
	want := []int{16, 32, 64, 128, 256, 512, 1024, 2048}
	if got := Sizes(); !slices.Equal(got, want) {
		t.Errorf("Sizes() = %v, want %v", got, want)
	}
	if Count != len(want)+1 {
		t.Errorf("Count = %d, want %d", Count, len(want)+1)
	}
	if SizeOf(Glyphs) != 0 {
		t.Errorf("SizeOf(Glyphs) = %d, want 0", SizeOf(Glyphs))
	}
	if SizeOf(Count) != 0 {
		t.Errorf("SizeOf(Count) = %d, want 0", SizeOf(Count))
	}
}

func TestMustLookup_Panics(t *testing.T) {
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("MustLookup should panic for oversized input")
		}
		var se *SizeError
		if err, ok := r.(error); !ok || !errors.As(err, &se) {
			t.Fatalf("panic value = %v, want *SizeError", r)
		}
		if se.Width != 4000 {
			t.Errorf("SizeError.Width = %d, want 4000", se.Width)
		}
	}()
	MustLookup(4000, 10)
}
