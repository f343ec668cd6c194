package lofi

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-flux/dsp/core"
)

// OnePole is a one-pole low-pass filter, the smoothing primitive the other
// lofi stages build on.
type OnePole struct {
	sampleRate float64
	cutoffHz   float64
	coeff      float64
	state      float64
}

// NewOnePole creates a one-pole low-pass at the given cutoff.
func NewOnePole(sampleRate, cutoffHz float64) (*OnePole, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("one-pole sample rate must be > 0 and finite: %f", sampleRate)
	}

	p := &OnePole{sampleRate: sampleRate}
	if err := p.SetCutoffHz(cutoffHz); err != nil {
		return nil, err
	}
	return p, nil
}

// SetCutoffHz sets the -3 dB cutoff in (0, sampleRate/2].
func (p *OnePole) SetCutoffHz(cutoffHz float64) error {
	if cutoffHz <= 0 || cutoffHz > p.sampleRate/2 || math.IsNaN(cutoffHz) {
		return fmt.Errorf("one-pole cutoff must be in (0, %g]: %f", p.sampleRate/2, cutoffHz)
	}
	p.cutoffHz = cutoffHz
	p.coeff = 1 - math.Exp(-2*math.Pi*cutoffHz/p.sampleRate)
	return nil
}

// CutoffHz returns the cutoff in Hz.
func (p *OnePole) CutoffHz() float64 { return p.cutoffHz }

// SampleRate returns the sample rate in Hz.
func (p *OnePole) SampleRate() float64 { return p.sampleRate }

// ProcessSample filters one sample.
func (p *OnePole) ProcessSample(input float64) float64 {
	p.state += p.coeff * (input - p.state)
	p.state = core.FlushDenormals(p.state)
	return p.state
}

// ProcessInPlace filters buf in place.
func (p *OnePole) ProcessInPlace(buf []float64) {
	for i := range buf {
		buf[i] = p.ProcessSample(buf[i])
	}
}

// Reset clears the filter state.
func (p *OnePole) Reset() {
	p.state = 0
}
