package slicer

import "testing"

func TestNewStoreEmpty(t *testing.T) {
	s := NewStore()
	for i := range MaxSlices {
		if got := s.Length(i); got != 0 {
			t.Fatalf("slice %d length: got %d want 0", i, got)
		}
		if got := len(s.Slice(i)); got != 0 {
			t.Fatalf("slice %d view: got %d samples want 0", i, got)
		}
	}
}

func TestStoreWriteSampleRoundTrip(t *testing.T) {
	s := NewStore()
	s.Write(3, 100, 0.5)
	if got := s.Sample(3, 100); got != 0.5 {
		t.Fatalf("sample: got %v want 0.5", got)
	}
	// Other slices stay untouched.
	if got := s.Sample(2, 100); got != 0 {
		t.Fatalf("neighbor slice: got %v want 0", got)
	}
}

func TestStoreFinalizePublishesLength(t *testing.T) {
	s := NewStore()
	for i := range 1000 {
		s.Write(5, i, 1)
	}

	if got := len(s.Slice(5)); got != 0 {
		t.Fatalf("pre-finalize view: got %d samples want 0", got)
	}

	s.Finalize(5, 1000)
	if got := s.Length(5); got != 1000 {
		t.Fatalf("length: got %d want 1000", got)
	}
	if got := len(s.Slice(5)); got != 1000 {
		t.Fatalf("view: got %d samples want 1000", got)
	}
}

func TestStoreFinalizeClampsLength(t *testing.T) {
	s := NewStore()

	s.Finalize(0, -5)
	if got := s.Length(0); got != 0 {
		t.Fatalf("negative length: got %d want 0", got)
	}

	s.Finalize(0, MaxSliceLength+1)
	if got := s.Length(0); got != MaxSliceLength {
		t.Fatalf("over-capacity length: got %d want %d", got, MaxSliceLength)
	}
}

func TestStoreOutOfRangeIndexPanics(t *testing.T) {
	s := NewStore()
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for out-of-range slice index")
		}
	}()
	s.Write(MaxSlices, 0, 1)
}

func TestStoreReset(t *testing.T) {
	s := NewStore()
	for i := range 100 {
		s.Write(2, i, 0.25)
	}
	s.Finalize(2, 100)

	s.Reset()

	if got := s.Length(2); got != 0 {
		t.Fatalf("length after reset: got %d want 0", got)
	}
	if got := s.Sample(2, 50); got != 0 {
		t.Fatalf("content after reset: got %v want 0", got)
	}
}
