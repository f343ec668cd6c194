package delay

import (
	"fmt"
	"math"
)

// Mode selects the interpolator used by ReadFractional.
type Mode int

const (
	// Hermite is cubic 4-point interpolation, the default.
	Hermite Mode = iota
	// Linear blends the two nearest taps.
	Linear
)

// Option configures a Line.
type Option func(*Line)

// WithMode selects the fractional-read interpolation mode.
func WithMode(mode Mode) Option {
	return func(d *Line) {
		d.mode = mode
	}
}

// Line is a circular delay line.
type Line struct {
	buffer   []float64
	writePos int
	mode     Mode
}

// New returns a delay line of fixed size.
func New(size int, opts ...Option) (*Line, error) {
	if size <= 0 {
		return nil, fmt.Errorf("delay size must be > 0: %d", size)
	}
	d := &Line{buffer: make([]float64, size)}
	for _, opt := range opts {
		if opt != nil {
			opt(d)
		}
	}
	return d, nil
}

// Len returns internal buffer size.
func (d *Line) Len() int {
	return len(d.buffer)
}

// Write writes one sample.
func (d *Line) Write(sample float64) {
	d.buffer[d.writePos] = sample
	d.writePos++
	if d.writePos >= len(d.buffer) {
		d.writePos = 0
	}
}

// Read reads an integer delay in samples.
func (d *Line) Read(delay int) float64 {
	size := len(d.buffer)
	if size == 0 {
		return 0
	}
	readPos := (d.writePos - delay + size) % size
	return d.buffer[readPos]
}

// ReadFractional reads a fractional delay using the configured mode.
func (d *Line) ReadFractional(delay float64) float64 {
	size := len(d.buffer)
	if size == 0 {
		return 0
	}
	if delay < 0 {
		delay = 0
	}
	maxDelay := float64(size - 3)
	if delay > maxDelay {
		delay = maxDelay
	}

	p := int(math.Floor(delay))
	t := delay - float64(p)

	x0 := d.Read(p)
	x1 := d.Read(p + 1)
	if d.mode == Linear {
		return x0 + t*(x1-x0)
	}

	xm1 := d.Read(maxInt(0, p-1))
	x2 := d.Read(p + 2)
	return hermite4(t, xm1, x0, x1, x2)
}

// Reset clears line state.
func (d *Line) Reset() {
	for i := range d.buffer {
		d.buffer[i] = 0
	}
	d.writePos = 0
}

// hermite4 computes cubic 4-point interpolation from x0 to x1 using
// neighbor points xm1 and x2.
func hermite4(t, xm1, x0, x1, x2 float64) float64 {
	c0 := x0
	c1 := 0.5 * (x1 - xm1)
	c2 := xm1 - 2.5*x0 + 2*x1 - 0.5*x2
	c3 := 0.5*(x2-xm1) + 1.5*(x0-x1)
	return ((c3*t+c2)*t+c1)*t + c0
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
