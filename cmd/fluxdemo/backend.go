package main

import (
	"fmt"
	"math"
	"strings"
)

// player renders a finished stereo buffer on some output device.
type player interface {
	play(sampleRate int, left, right []float64) error
}

func newPlayer(name string) (player, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "null":
		return nullPlayer{}, nil
	case "oto":
		return otoPlayer{}, nil
	case "portaudio":
		return portaudioPlayer{}, nil
	default:
		return nil, fmt.Errorf("unknown backend %q (want null, oto or portaudio)", name)
	}
}

// nullPlayer discards the audio and prints level statistics instead.
type nullPlayer struct{}

func (nullPlayer) play(sampleRate int, left, right []float64) error {
	peak := 0.0
	sum := 0.0
	for i := range left {
		mono := 0.5 * (left[i] + right[i])
		if a := math.Abs(mono); a > peak {
			peak = a
		}
		sum += mono * mono
	}

	rms := 0.0
	if len(left) > 0 {
		rms = math.Sqrt(sum / float64(len(left)))
	}

	fmt.Printf("rendered %d samples at %d Hz\n", len(left), sampleRate)
	fmt.Printf("peak: %.4f\n", peak)
	fmt.Printf("rms:  %.4f\n", rms)
	return nil
}
