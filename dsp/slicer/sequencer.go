package slicer

import (
	"fmt"
	"math/rand"
)

// minStutterIntensity is the deadband below which stutter is treated as
// fully off: repeat counts are always 1 and no randomness is consumed.
const minStutterIntensity = 0.01

// Mode selects how the engine advances through the slice ring.
type Mode int

const (
	// ModeForward steps slice indices upward and plays slices front to back.
	ModeForward Mode = iota
	// ModeBackward steps slice indices downward and plays slices back to front.
	ModeBackward
	// ModeRandom picks playback slices at random and flips direction on a
	// coin toss per slice.
	ModeRandom
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeForward:
		return "Forward"
	case ModeBackward:
		return "Backward"
	case ModeRandom:
		return "Random"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Sequencer decides how playback moves on: how many times a slice repeats,
// which slice follows, and in which direction it plays. It owns the
// engine's single random stream so seeded tests can assert exact decision
// sequences.
//
// Stutter intensity shapes both decisions. Repeat counts shift from
// always-1 toward the 2/4/8 musical subdivisions as intensity rises. With
// the shuffle overlay enabled the same intensity is also the probability
// that a sequential step is replaced by a jump to a random slice.
type Sequencer struct {
	rng     *rand.Rand
	seed    int64
	shuffle bool
}

// NewSequencer returns a sequencer seeded for deterministic decisions.
func NewSequencer(seed int64) *Sequencer {
	return &Sequencer{
		rng:  rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Seed reseeds and rewinds the random stream.
func (s *Sequencer) Seed(seed int64) {
	s.seed = seed
	s.rng.Seed(seed)
}

// SetShuffle toggles the shuffle overlay. It is disabled by default: slice
// order then follows the mode's rule alone and only ModeRandom randomizes
// indices.
func (s *Sequencer) SetShuffle(enabled bool) {
	s.shuffle = enabled
}

// Shuffle reports whether the shuffle overlay is enabled.
func (s *Sequencer) Shuffle() bool {
	return s.shuffle
}

// ChooseRepeatCount picks how many times the next slice plays: 1, 2, 4
// or 8. Below intensity 0.01 the answer is always 1 and no randomness is
// consumed. Otherwise a single uniform draw selects from a banded
// distribution whose weight shifts toward longer repeats as the intensity
// rises.
func (s *Sequencer) ChooseRepeatCount(stutter float64) int {
	if stutter < minStutterIntensity {
		return 1
	}

	r := s.rng.Float64()
	switch {
	case stutter < 0.25:
		if r < 0.95 {
			return 1
		}
		return 2
	case stutter < 0.50:
		switch {
		case r < 0.60:
			return 1
		case r < 0.90:
			return 2
		default:
			return 4
		}
	case stutter < 0.75:
		switch {
		case r < 0.30:
			return 1
		case r < 0.70:
			return 2
		case r < 0.90:
			return 4
		default:
			return 8
		}
	default:
		switch {
		case r < 0.10:
			return 1
		case r < 0.40:
			return 2
		case r < 0.70:
			return 4
		default:
			return 8
		}
	}
}

// NextSlice returns the playback slice that follows current, and the
// direction it plays in. Without the shuffle overlay the mode's rule
// applies directly: Forward steps up, Backward steps down, Random draws a
// uniform index. With the overlay one uniform draw is always consumed
// first; below stutter it replaces the sequential step (up for Forward and
// Random, down for Backward) with a uniform random index. Direction always
// follows the mode: forward, reverse, or a coin toss for ModeRandom.
func (s *Sequencer) NextSlice(current, activeCount int, stutter float64, mode Mode) (next int, reverse bool) {
	if activeCount < 1 {
		activeCount = 1
	}
	if current < 0 {
		current = 0
	}

	if s.shuffle {
		if s.rng.Float64() < stutter {
			next = s.rng.Intn(activeCount)
		} else if mode == ModeBackward {
			next = (current - 1 + activeCount) % activeCount
		} else {
			next = (current + 1) % activeCount
		}
		return next, s.Direction(mode)
	}

	switch mode {
	case ModeBackward:
		next = (current - 1 + activeCount) % activeCount
	case ModeRandom:
		next = s.rng.Intn(activeCount)
	default:
		next = (current + 1) % activeCount
	}
	return next, s.Direction(mode)
}

// Direction draws the playback direction for mode: always forward for
// ModeForward, always reverse for ModeBackward, and a coin toss for
// ModeRandom (consuming one draw).
func (s *Sequencer) Direction(mode Mode) bool {
	switch mode {
	case ModeBackward:
		return true
	case ModeRandom:
		return s.rng.Intn(2) == 0
	default:
		return false
	}
}

// CaptureAdvance returns the slice index capture targets after a finalize:
// uniformly random in ModeRandom, the next index upward otherwise.
func (s *Sequencer) CaptureAdvance(current, activeCount int, mode Mode) int {
	if activeCount < 1 {
		activeCount = 1
	}
	if mode == ModeRandom {
		return s.rng.Intn(activeCount)
	}
	if current < 0 {
		current = 0
	}
	return (current + 1) % activeCount
}
