package slicer

const (
	// MaxSlices is the fixed number of slice buffers in a Store.
	MaxSlices = 16
	// MaxSliceLength is the fixed per-slice capacity in samples
	// (500 ms at 48 kHz).
	MaxSliceLength = 24000
)

// Store is a fixed arena of MaxSlices slice buffers plus their valid
// lengths. All memory is allocated once at construction and never grows.
//
// A slice's content is written by one full capture pass and published by
// Finalize, which is the sole point where its valid length changes; readers
// that stay below the published length therefore never observe a partially
// written slice. Indices are bounds-checked by the runtime rather than
// wrapped: an out-of-range index is a programming defect and panics.
type Store struct {
	buffers [][]float64
	lengths []int
}

// NewStore returns a store with all slices empty.
func NewStore() *Store {
	backing := make([]float64, MaxSlices*MaxSliceLength)
	buffers := make([][]float64, MaxSlices)
	for i := range buffers {
		buffers[i] = backing[i*MaxSliceLength : (i+1)*MaxSliceLength : (i+1)*MaxSliceLength]
	}
	return &Store{
		buffers: buffers,
		lengths: make([]int, MaxSlices),
	}
}

// Write stores one sample at pos within the slice at index.
func (s *Store) Write(index, pos int, sample float64) {
	s.buffers[index][pos] = sample
}

// Sample reads one sample at pos within the slice at index.
func (s *Store) Sample(index, pos int) float64 {
	return s.buffers[index][pos]
}

// Finalize publishes the valid length of the slice at index.
func (s *Store) Finalize(index, length int) {
	if length < 0 {
		length = 0
	}
	if length > MaxSliceLength {
		length = MaxSliceLength
	}
	s.lengths[index] = length
}

// Length returns the valid length of the slice at index; 0 means the slice
// has never been finalized.
func (s *Store) Length(index int) int {
	return s.lengths[index]
}

// Slice returns the finalized content of the slice at index as a read-only
// view. Callers must not modify the returned slice.
func (s *Store) Slice(index int) []float64 {
	return s.buffers[index][:s.lengths[index]]
}

// Reset clears all lengths and content.
func (s *Store) Reset() {
	for i := range s.buffers {
		buf := s.buffers[i]
		for j := range buf {
			buf[j] = 0
		}
		s.lengths[i] = 0
	}
}
