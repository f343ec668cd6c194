package flux

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-flux/dsp/core"
	"github.com/cwbudde/algo-flux/dsp/slicer"
)

const (
	minSliceLengthMs = 100.0
	maxSliceLengthMs = 500.0
)

// Controls is the raw pedal surface. All knob fields are normalized to
// [0, 1]; Map turns them into engine parameters using the product curves.
type Controls struct {
	// Level is the master output level knob (maps to a gain of 0-2).
	Level float64
	// Mix blends dry input against the slicer's wet output.
	Mix float64
	// Feedback is the amount of wet signal folded back into capture.
	Feedback float64
	// SliceCount selects 1-16 active slices.
	SliceCount float64
	// SliceLength selects the capture target from 100 ms to 500 ms on a
	// logarithmic curve.
	SliceLength float64
	// Stutter drives repeat counts and shuffle probability.
	Stutter float64
	// Wobble, Dust and BitCrush drive the lofi stages.
	Wobble   float64
	Dust     float64
	BitCrush float64

	Mode    slicer.Mode
	Shuffle bool
	Freeze  bool
	Bypass  bool
}

// DefaultControls returns the power-on surface: unity level, half mix,
// moderate feedback, four 100-400 ms slices, everything else off.
func DefaultControls() Controls {
	return Controls{
		Level:       0.5,
		Mix:         0.5,
		Feedback:    0.3,
		SliceCount:  0.2,
		SliceLength: 0.5,
		Mode:        slicer.ModeForward,
	}
}

// Params is the mapped engine-facing form of a Controls surface.
type Params struct {
	MasterLevel        float64
	Mix                float64
	Feedback           float64
	SliceCount         int
	SliceLengthSamples float64
	Stutter            float64
	Mode               slicer.Mode
	Shuffle            bool
	Freeze             bool
	Bypass             bool
	Wobble             float64
	Dust               float64
	BitCrush           float64
}

// Validate checks every knob against its [0, 1] range and the mode against
// its enum.
func (c Controls) Validate() error {
	knobs := []struct {
		name  string
		value float64
	}{
		{"level", c.Level},
		{"mix", c.Mix},
		{"feedback", c.Feedback},
		{"slice count", c.SliceCount},
		{"slice length", c.SliceLength},
		{"stutter", c.Stutter},
		{"wobble", c.Wobble},
		{"dust", c.Dust},
		{"bit crush", c.BitCrush},
	}
	for _, k := range knobs {
		if k.value < 0 || k.value > 1 || math.IsNaN(k.value) {
			return fmt.Errorf("flux %s knob must be in [0, 1]: %f", k.name, k.value)
		}
	}
	if c.Mode < slicer.ModeForward || c.Mode > slicer.ModeRandom {
		return fmt.Errorf("flux mode must be Forward, Backward or Random: %d", int(c.Mode))
	}
	return nil
}

// Map applies the product tuning curves: level spans 0-2, slice count steps
// through 1-16, and slice length follows a log curve from 100 ms to 500 ms
// converted to samples at the given rate.
func (c Controls) Map(sampleRate float64) Params {
	count := 1 + int(core.Clamp(c.SliceCount, 0, 1)*15.999)
	count = core.ClampInt(count, 1, slicer.MaxSlices)

	logKnob := math.Log10(1 + 9*core.Clamp(c.SliceLength, 0, 1))
	lengthMs := minSliceLengthMs + logKnob*(maxSliceLengthMs-minSliceLengthMs)
	lengthSamples := core.Clamp(lengthMs/1000*sampleRate, 1, slicer.MaxSliceLength)

	return Params{
		MasterLevel:        core.Clamp(c.Level, 0, 1) * 2,
		Mix:                core.Clamp(c.Mix, 0, 1),
		Feedback:           core.Clamp(c.Feedback, 0, 1),
		SliceCount:         count,
		SliceLengthSamples: lengthSamples,
		Stutter:            core.Clamp(c.Stutter, 0, 1),
		Mode:               c.Mode,
		Shuffle:            c.Shuffle,
		Freeze:             c.Freeze,
		Bypass:             c.Bypass,
		Wobble:             core.Clamp(c.Wobble, 0, 1),
		Dust:               core.Clamp(c.Dust, 0, 1),
		BitCrush:           core.Clamp(c.BitCrush, 0, 1),
	}
}
