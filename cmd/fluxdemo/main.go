// Command fluxdemo renders a short built-in riff through the flux
// sample-and-hold slicer delay and plays the result.
//
// Usage:
//
//	fluxdemo [flags]
//
// The null backend renders without audio output and prints peak/RMS
// statistics, which is handy for quick parameter experiments and CI.
//
// Examples:
//
//	fluxdemo -backend null
//	fluxdemo -backend oto -stutter 0.7 -mode random -shuffle
//	fluxdemo -seconds 12 -freeze-after 6 -wobble 0.4 -dust 0.5
package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/cwbudde/algo-flux/dsp/flux"
	"github.com/cwbudde/algo-flux/dsp/slicer"
)

const blockSize = 1024

type demoConfig struct {
	backend     string
	seconds     float64
	sampleRate  int
	seed        int64
	freezeAfter float64
	controls    flux.Controls
}

func main() {
	backend := flag.String("backend", "null", "audio backend: null, oto or portaudio")
	seconds := flag.Float64("seconds", 8, "length of the rendered demo in seconds")
	sampleRate := flag.Int("samplerate", 48000, "sample rate in Hz")
	seed := flag.Int64("seed", 1, "random seed for sequencing and crackle")

	level := flag.Float64("level", 0.5, "master level knob in [0, 1] (0.5 = unity gain)")
	mix := flag.Float64("mix", 0.7, "dry/wet mix in [0, 1]")
	feedback := flag.Float64("feedback", 0.3, "feedback amount in [0, 1]")
	slices := flag.Int("slices", 4, "active slice count in [1, 16]")
	lengthMs := flag.Float64("length-ms", 250, "slice length target in [100, 500] ms")
	stutter := flag.Float64("stutter", 0.4, "stutter intensity in [0, 1]")
	wobble := flag.Float64("wobble", 0, "tape wobble amount in [0, 1]")
	dust := flag.Float64("dust", 0, "vinyl dust amount in [0, 1]")
	crush := flag.Float64("crush", 0, "bit crush amount in [0, 1]")
	mode := flag.String("mode", "forward", "slice order: forward, backward or random")
	shuffle := flag.Bool("shuffle", false, "enable random slice jumps driven by stutter")
	freezeAfter := flag.Float64("freeze-after", 0, "freeze capture after this many seconds (0 = never)")
	flag.Parse()

	parsedMode, err := parseMode(*mode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	cfg := demoConfig{
		backend:     *backend,
		seconds:     *seconds,
		sampleRate:  *sampleRate,
		seed:        *seed,
		freezeAfter: *freezeAfter,
		controls: flux.Controls{
			Level:       *level,
			Mix:         *mix,
			Feedback:    *feedback,
			SliceCount:  sliceCountKnob(*slices),
			SliceLength: sliceLengthKnob(*lengthMs),
			Stutter:     *stutter,
			Wobble:      *wobble,
			Dust:        *dust,
			BitCrush:    *crush,
			Mode:        parsedMode,
			Shuffle:     *shuffle,
		},
	}

	if err := run(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg demoConfig) error {
	if cfg.seconds <= 0 {
		return fmt.Errorf("seconds must be > 0: %v", cfg.seconds)
	}
	if cfg.sampleRate < 8000 {
		return fmt.Errorf("sample rate must be >= 8000: %d", cfg.sampleRate)
	}

	out, err := newPlayer(cfg.backend)
	if err != nil {
		return err
	}

	processor, err := flux.New(float64(cfg.sampleRate),
		flux.WithControls(cfg.controls),
		flux.WithBlockSize(blockSize),
		flux.WithSeed(cfg.seed),
	)
	if err != nil {
		return err
	}

	length := int(cfg.seconds * float64(cfg.sampleRate))
	input := renderRiff(cfg.sampleRate, length)
	left := make([]float64, length)
	right := make([]float64, length)

	freezeAt := length + 1
	if cfg.freezeAfter > 0 {
		freezeAt = int(cfg.freezeAfter * float64(cfg.sampleRate))
	}

	controls := cfg.controls
	for pos := 0; pos < length; pos += blockSize {
		if !controls.Freeze && pos >= freezeAt {
			controls.Freeze = true
			if err := processor.Apply(controls); err != nil {
				return err
			}
		}

		end := pos + blockSize
		if end > length {
			end = length
		}
		processor.ProcessBlockStereo(left[pos:end], right[pos:end], input[pos:end])
	}

	return out.play(cfg.sampleRate, left, right)
}

// renderRiff synthesizes a deterministic plucked arpeggio: two-partial
// sines with an exponential decay, half a second per note.
func renderRiff(sampleRate, length int) []float64 {
	notes := []float64{220, 261.63, 329.63, 392, 329.63, 261.63}
	noteLen := sampleRate / 2

	out := make([]float64, length)
	for i := range out {
		note := (i / noteLen) % len(notes)
		pos := i % noteLen
		t := float64(pos) / float64(sampleRate)
		env := math.Exp(-4 * float64(pos) / float64(noteLen))
		out[i] = env * (0.4*math.Sin(2*math.Pi*notes[note]*t) +
			0.1*math.Sin(4*math.Pi*notes[note]*t))
	}
	return out
}

func parseMode(name string) (slicer.Mode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "forward":
		return slicer.ModeForward, nil
	case "backward":
		return slicer.ModeBackward, nil
	case "random":
		return slicer.ModeRandom, nil
	default:
		return 0, fmt.Errorf("unknown mode %q (want forward, backward or random)", name)
	}
}

// sliceCountKnob inverts the 1-16 slice count mapping back to a knob value.
func sliceCountKnob(count int) float64 {
	if count < 1 {
		count = 1
	}
	if count > slicer.MaxSlices {
		count = slicer.MaxSlices
	}
	return float64(count-1) / 15.999
}

// sliceLengthKnob inverts the 100-500 ms log curve back to a knob value.
func sliceLengthKnob(ms float64) float64 {
	if ms < 100 {
		ms = 100
	}
	if ms > 500 {
		ms = 500
	}
	knob := (math.Pow(10, (ms-100)/400) - 1) / 9
	if knob < 0 {
		knob = 0
	}
	if knob > 1 {
		knob = 1
	}
	return knob
}
