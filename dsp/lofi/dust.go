package lofi

import (
	"fmt"
	"math"
	"math/rand"
)

const (
	defaultDustSeed  = 1
	dustMaxDensity   = 0.02
	dustMaxMix       = 0.05
	dustFilterHz     = 600.0
	dustImpulsesBias = 0.5
)

// Dust adds sparse vinyl-style crackle: random unipolar impulses, softened
// by a 600 Hz low-pass and mixed in quietly. The amount control in [0, 1]
// drives per-sample impulse probability (up to 2%) and mix (up to 5%) on
// squared curves. Impulses are centered by subtracting 0.5 before mixing.
// Amount 0 is an exact bypass.
//
// The impulse stream comes from a seeded generator so renders are
// reproducible.
type Dust struct {
	sampleRate float64
	amount     float64

	density float64
	mix     float64

	filter *OnePole
	rng    *rand.Rand
	seed   int64
}

// NewDust creates a dust stage at amount 0 (bypass).
func NewDust(sampleRate float64) (*Dust, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("dust sample rate must be > 0 and finite: %f", sampleRate)
	}

	filter, err := NewOnePole(sampleRate, math.Min(dustFilterHz, sampleRate/2))
	if err != nil {
		return nil, err
	}

	d := &Dust{
		sampleRate: sampleRate,
		filter:     filter,
		rng:        rand.New(rand.NewSource(defaultDustSeed)),
		seed:       defaultDustSeed,
	}
	return d, nil
}

// SetAmount sets the crackle amount in [0, 1].
func (d *Dust) SetAmount(amount float64) error {
	if amount < 0 || amount > 1 || math.IsNaN(amount) {
		return fmt.Errorf("dust amount must be in [0, 1]: %f", amount)
	}
	d.amount = amount
	d.density = amount * amount * dustMaxDensity
	d.mix = amount * amount * dustMaxMix
	return nil
}

// Amount returns the crackle amount in [0, 1].
func (d *Dust) Amount() float64 { return d.amount }

// SetRandomSeed sets the RNG seed for a deterministic impulse stream and
// rewinds it.
func (d *Dust) SetRandomSeed(seed int64) {
	d.seed = seed
	d.rng.Seed(seed)
}

// ProcessSample processes one sample. At amount 0 the input passes through
// untouched and no randomness is consumed.
func (d *Dust) ProcessSample(input float64) float64 {
	if d.amount <= 0 {
		return input
	}

	impulse := 0.0
	if d.rng.Float64() < d.density {
		impulse = d.rng.Float64()
	}
	crackle := d.filter.ProcessSample(impulse)

	return input + (crackle-dustImpulsesBias)*d.mix
}

// ProcessInPlace applies the crackle to buf in place.
func (d *Dust) ProcessInPlace(buf []float64) {
	for i := range buf {
		buf[i] = d.ProcessSample(buf[i])
	}
}

// Reset clears the filter state and rewinds the impulse stream.
func (d *Dust) Reset() {
	d.filter.Reset()
	d.rng.Seed(d.seed)
}
