package lofi

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-flux/dsp/core"
)

const (
	maxCrushHold       = 32
	minCrushCutoffHz   = 500.0
	maxCrushCutoffHz   = 18000.0
	initialCrushCutoff = 8000.0
)

// BitCrusher reduces the effective sample rate by holding the input for up
// to 32 samples, then low-passes the result at half the effective Nyquist
// to tame aliasing. A single amount control in [0, 1] drives the hold
// length on a squared curve; amount 0 is an exact bypass.
type BitCrusher struct {
	sampleRate float64
	amount     float64

	holdLength  int
	holdCounter int
	holdValue   float64
	filter      *OnePole
}

// NewBitCrusher creates a bit crusher at amount 0 (bypass).
func NewBitCrusher(sampleRate float64) (*BitCrusher, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("bit crusher sample rate must be > 0 and finite: %f", sampleRate)
	}

	filter, err := NewOnePole(sampleRate, math.Min(initialCrushCutoff, sampleRate/2))
	if err != nil {
		return nil, err
	}

	bc := &BitCrusher{
		sampleRate: sampleRate,
		holdLength: 1,
		filter:     filter,
	}
	return bc, nil
}

// SetAmount sets the crush amount in [0, 1]. The hold length and the
// anti-alias cutoff are derived here so the per-sample path stays branch-
// and division-free.
func (bc *BitCrusher) SetAmount(amount float64) error {
	if amount < 0 || amount > 1 || math.IsNaN(amount) {
		return fmt.Errorf("bit crusher amount must be in [0, 1]: %f", amount)
	}
	bc.amount = amount
	bc.holdLength = 1 + int(amount*amount*(maxCrushHold-1))

	effectiveNyquist := bc.sampleRate / float64(bc.holdLength) / 2
	cutoff := core.Clamp(effectiveNyquist*0.5, minCrushCutoffHz, maxCrushCutoffHz)
	cutoff = math.Min(cutoff, bc.sampleRate/2)
	return bc.filter.SetCutoffHz(cutoff)
}

// Amount returns the crush amount in [0, 1].
func (bc *BitCrusher) Amount() float64 { return bc.amount }

// HoldLength returns the current sample-and-hold length in samples.
func (bc *BitCrusher) HoldLength() int { return bc.holdLength }

// ProcessSample processes one sample. At amount 0 the input is returned
// unchanged, without touching hold or filter state.
func (bc *BitCrusher) ProcessSample(input float64) float64 {
	if bc.amount <= 0 {
		return input
	}

	bc.holdCounter++
	if bc.holdCounter >= bc.holdLength {
		bc.holdCounter = 0
		bc.holdValue = input
	}

	return bc.filter.ProcessSample(bc.holdValue)
}

// ProcessInPlace applies the crusher to buf in place.
func (bc *BitCrusher) ProcessInPlace(buf []float64) {
	for i := range buf {
		buf[i] = bc.ProcessSample(buf[i])
	}
}

// Reset clears the hold and filter state.
func (bc *BitCrusher) Reset() {
	bc.holdCounter = 0
	bc.holdValue = 0
	bc.filter.Reset()
}
