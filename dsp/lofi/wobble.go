package lofi

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-flux/dsp/delay"
)

const (
	wobbleDelayCapacity = 4800 // 100 ms at 48 kHz
	wobbleMinRateHz     = 0.5
	wobbleMaxRateHz     = 6.0
	wobbleCenterMs      = 5.0
	wobbleMinDepthMs    = 2.0
	wobbleMaxDepthMs    = 8.0
	wobbleMaxMix        = 0.5
)

// Wobble is tape-style wow and flutter: a sine LFO modulates a fractional
// delay read, bending pitch up and down around a 5 ms center tap. The
// amount control in [0, 1] drives LFO rate (0.5-6 Hz), modulation depth
// (2-8 ms) and wet mix (up to 50%) on squared curves, so low settings give
// slow tape drift and high settings approach a uni-vibe. Amount 0 is an
// exact bypass.
type Wobble struct {
	sampleRate float64
	amount     float64

	rateHz       float64
	depthSamples float64
	mix          float64

	line     *delay.Line
	lfoPhase float64
}

// NewWobble creates a wobble stage at amount 0 (bypass).
func NewWobble(sampleRate float64) (*Wobble, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("wobble sample rate must be > 0 and finite: %f", sampleRate)
	}

	line, err := delay.New(wobbleDelayCapacity)
	if err != nil {
		return nil, err
	}

	w := &Wobble{
		sampleRate: sampleRate,
		rateHz:     wobbleMinRateHz,
		line:       line,
	}
	return w, nil
}

// SetAmount sets the wobble amount in [0, 1].
func (w *Wobble) SetAmount(amount float64) error {
	if amount < 0 || amount > 1 || math.IsNaN(amount) {
		return fmt.Errorf("wobble amount must be in [0, 1]: %f", amount)
	}
	w.amount = amount
	w.rateHz = wobbleMinRateHz + amount*amount*(wobbleMaxRateHz-wobbleMinRateHz)
	depthMs := wobbleMinDepthMs + amount*(wobbleMaxDepthMs-wobbleMinDepthMs)
	w.depthSamples = depthMs / 1000 * w.sampleRate
	w.mix = amount * amount * wobbleMaxMix
	return nil
}

// Amount returns the wobble amount in [0, 1].
func (w *Wobble) Amount() float64 { return w.amount }

// RateHz returns the current LFO rate in Hz.
func (w *Wobble) RateHz() float64 { return w.rateHz }

// ProcessSample processes one sample. At amount 0 the input passes through
// untouched and the modulation state stands still.
func (w *Wobble) ProcessSample(input float64) float64 {
	if w.amount <= 0 {
		return input
	}

	lfo := math.Sin(2 * math.Pi * w.lfoPhase)
	w.lfoPhase += w.rateHz / w.sampleRate
	if w.lfoPhase >= 1 {
		w.lfoPhase -= 1
	}

	centerSamples := wobbleCenterMs / 1000 * w.sampleRate
	delaySamples := centerSamples + lfo*w.depthSamples*0.5

	w.line.Write(input)
	wobbled := w.line.ReadFractional(delaySamples)

	return input*(1-w.mix) + wobbled*w.mix
}

// ProcessInPlace applies the wobble to buf in place.
func (w *Wobble) ProcessInPlace(buf []float64) {
	for i := range buf {
		buf[i] = w.ProcessSample(buf[i])
	}
}

// Reset clears the delay line and LFO phase.
func (w *Wobble) Reset() {
	w.line.Reset()
	w.lfoPhase = 0
}
