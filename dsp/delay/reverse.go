package delay

import (
	"fmt"
	"math"
)

const (
	defaultReverseDelay     = 2400
	defaultReverseCrossfade = 2300
)

// ReverseLine is a circular delay line whose read side plays backward.
//
// Two read heads walk the ring opposite to the write head, which is what
// produces time reversal. Only one head supplies most of the output at a
// time; shortly before the active head has consumed a full delay span the
// idle head snaps to just behind the write position and a quarter-sine
// crossfade hands the output over. Blending with sin(pos*pi/2) and
// sin((1-pos)*pi/2) keeps the summed power constant through the handover,
// so there is no level dip where a single reversing head would click.
//
// The zero value is not usable; construct with NewReverse. Methods are not
// safe for concurrent use.
type ReverseLine struct {
	buffer   []float64
	writePos int
	readPos1 int
	readPos2 int

	delay    int
	frac     float64
	fade     int
	headDiff int

	headTwoActive bool
	fadePos       float64
	fading        bool
}

// NewReverse returns a reverse delay line of fixed capacity.
func NewReverse(capacity int) (*ReverseLine, error) {
	if capacity <= 1 {
		return nil, fmt.Errorf("reverse delay capacity must be > 1: %d", capacity)
	}
	r := &ReverseLine{buffer: make([]float64, capacity)}
	r.Reset()
	return r, nil
}

// Len returns internal buffer size.
func (r *ReverseLine) Len() int {
	return len(r.buffer)
}

// Delay returns the configured delay in samples, including the fractional part.
func (r *ReverseLine) Delay() float64 {
	return float64(r.delay) + r.frac
}

// Crossfade returns the handover length in samples.
func (r *ReverseLine) Crossfade() int {
	return r.fade
}

// SetDelay sets the reverse traversal span in samples. The integer part sets
// the ring distance between head handovers; the fractional part shifts both
// read taps by linear interpolation toward the adjacent older sample.
// Requests beyond capacity are clamped, never rejected. The crossfade is
// shortened if the new delay no longer accommodates it.
func (r *ReverseLine) SetDelay(delay float64) {
	if math.IsNaN(delay) || delay < 1 {
		delay = 1
	}
	n := int(delay)
	r.frac = delay - float64(n)
	if max := len(r.buffer) - 1; n > max {
		n = max
		r.frac = 0
	}
	r.delay = n
	if r.fade > r.delay-1 {
		r.fade = maxInt(1, r.delay-1)
	}
	if r.headDiff >= r.delay {
		r.headDiff = 0
	}
}

// SetCrossfade sets the handover length in samples, clamped to [1, delay-1].
func (r *ReverseLine) SetCrossfade(samples int) {
	if samples < 1 {
		samples = 1
	}
	if samples > r.delay-1 {
		samples = maxInt(1, r.delay-1)
	}
	r.fade = samples
}

// Write stores one sample and advances head state by one step.
func (r *ReverseLine) Write(sample float64) {
	size := len(r.buffer)
	r.buffer[r.writePos] = sample
	r.writePos++
	if r.writePos >= size {
		r.writePos = 0
	}

	r.headDiff = (r.headDiff + 1) % r.delay

	r.readPos1--
	if r.readPos1 < 0 {
		r.readPos1 = size - 1
	}
	r.readPos2--
	if r.readPos2 < 0 {
		r.readPos2 = size - 1
	}

	// Handover: the idle head restarts just behind the write position and
	// fades in while the active head fades out.
	if r.headDiff > r.delay-r.fade-1 && !r.fading {
		r.fading = true
		if r.headTwoActive {
			r.readPos1 = (r.writePos - 1 + size) % size
		} else {
			r.readPos2 = (r.writePos - 1 + size) % size
		}
	}

	if !r.fading {
		return
	}
	step := 1.0 / float64(r.fade)
	if r.headTwoActive {
		r.fadePos -= step
		if r.fadePos <= 0 {
			r.fadePos = 0
			r.fading = false
			r.headTwoActive = false
		}
	} else {
		r.fadePos += step
		if r.fadePos >= 1 {
			r.fadePos = 1
			r.fading = false
			r.headTwoActive = true
		}
	}
}

// Read returns the crossfaded blend of both heads. Read does not advance
// state; the traversal is driven entirely by Write.
func (r *ReverseLine) Read() float64 {
	a1 := r.tap(r.readPos1)
	a2 := r.tap(r.readPos2)
	g2 := math.Sin(r.fadePos * (math.Pi * 0.5))
	g1 := math.Sin((1 - r.fadePos) * (math.Pi * 0.5))
	return a1*g1 + a2*g2
}

// tap reads one head position, applying the fractional delay part as a
// linear blend toward the adjacent older sample.
func (r *ReverseLine) tap(pos int) float64 {
	if r.frac == 0 {
		return r.buffer[pos]
	}
	older := pos - 1
	if older < 0 {
		older = len(r.buffer) - 1
	}
	return r.buffer[pos] + r.frac*(r.buffer[older]-r.buffer[pos])
}

// Reset clears the buffer and restores the default delay and crossfade.
func (r *ReverseLine) Reset() {
	for i := range r.buffer {
		r.buffer[i] = 0
	}
	r.writePos = 0
	r.readPos1 = 0
	r.readPos2 = 0
	r.headDiff = 0
	r.headTwoActive = false
	r.fadePos = 0
	r.fading = false
	r.frac = 0
	r.delay = maxInt(1, minInt(defaultReverseDelay, len(r.buffer)-1))
	r.fade = maxInt(1, minInt(defaultReverseCrossfade, r.delay-1))
}
