package testutil

import (
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"
)

// MagnitudeSpectrum returns the magnitudes of the non-negative-frequency
// bins of signal, zero-padded to the next power of two and Hann-windowed.
// Bin i corresponds to frequency i*sampleRate/fftSize with
// fftSize = 2*(len(result)-1).
func MagnitudeSpectrum(signal []float64) []float64 {
	if len(signal) == 0 {
		return nil
	}

	fftSize := nextPowerOf2(len(signal))
	in := make([]complex128, fftSize)
	for i, s := range signal {
		w := 0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/float64(len(signal)-1))
		if len(signal) == 1 {
			w = 1
		}
		in[i] = complex(s*w, 0)
	}

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil
	}
	out := make([]complex128, fftSize)
	if err := plan.Forward(out, in); err != nil {
		return nil
	}

	bins := fftSize/2 + 1
	re := make([]float64, bins)
	im := make([]float64, bins)
	for i := range bins {
		re[i] = real(out[i])
		im[i] = imag(out[i])
	}
	mags := make([]float64, bins)
	vecmath.Magnitude(mags, re, im)
	return mags
}

// DominantFrequencyHz returns the frequency of the strongest spectral bin
// of signal, excluding DC. Returns 0 for empty or all-zero input.
func DominantFrequencyHz(signal []float64, sampleRate float64) float64 {
	mags := MagnitudeSpectrum(signal)
	if len(mags) < 2 {
		return 0
	}

	best, bestMag := 0, 0.0
	for i := 1; i < len(mags); i++ {
		if mags[i] > bestMag {
			best, bestMag = i, mags[i]
		}
	}
	if bestMag == 0 {
		return 0
	}

	fftSize := 2 * (len(mags) - 1)
	return float64(best) * sampleRate / float64(fftSize)
}

func nextPowerOf2(n int) int {
	size := 1
	for size < n {
		size *= 2
	}
	return size
}
