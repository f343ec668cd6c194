package lofi

import (
	"math"
	"math/rand"
	"testing"

	"github.com/cwbudde/algo-flux/internal/testutil"
)

func TestNewDustValidation(t *testing.T) {
	if _, err := NewDust(-1); err == nil {
		t.Fatal("expected error for negative sample rate")
	}
}

func TestDustSetAmountValidation(t *testing.T) {
	d, err := NewDust(48000)
	if err != nil {
		t.Fatal(err)
	}
	if err := d.SetAmount(-0.5); err == nil {
		t.Fatal("expected error for negative amount")
	}
	if err := d.SetAmount(1.5); err == nil {
		t.Fatal("expected error for amount > 1")
	}
}

func TestDustZeroAmountIsExactBypass(t *testing.T) {
	d, err := NewDust(48000)
	if err != nil {
		t.Fatal(err)
	}

	input := testutil.DeterministicNoise(4, 0.9, 2048)
	for i, s := range input {
		if got := d.ProcessSample(s); got != s {
			t.Fatalf("sample %d: got %v want exact passthrough %v", i, got, s)
		}
	}

	// Bypass must not consume randomness either.
	fresh := rand.New(rand.NewSource(defaultDustSeed))
	if got, want := d.rng.Int63(), fresh.Int63(); got != want {
		t.Fatal("rng advanced during bypass")
	}
}

func TestDustDeterministicUnderSeed(t *testing.T) {
	build := func(seed int64) []float64 {
		d, err := NewDust(48000)
		if err != nil {
			t.Fatal(err)
		}
		if err := d.SetAmount(1); err != nil {
			t.Fatal(err)
		}
		d.SetRandomSeed(seed)

		out := make([]float64, 8192)
		for i := range out {
			out[i] = d.ProcessSample(0)
		}
		return out
	}

	a, b := build(7), build(7)
	testutil.RequireSliceNearlyEqual(t, a, b, 0)

	c := build(8)
	diff, err := testutil.MaxAbsDiff(a, c)
	if err != nil {
		t.Fatal(err)
	}
	if diff == 0 {
		t.Fatal("different seeds produced identical crackle")
	}
}

func TestDustLevelAtFullAmount(t *testing.T) {
	d, err := NewDust(48000)
	if err != nil {
		t.Fatal(err)
	}
	if err := d.SetAmount(1); err != nil {
		t.Fatal(err)
	}

	// On silence the output is the centered crackle floor: about
	// (density*0.5 - 0.5) * mix on average, and never far from it.
	sum := 0.0
	const n = 48000
	for range n {
		out := d.ProcessSample(0)
		if math.Abs(out) > dustMaxMix {
			t.Fatalf("crackle exceeded mix ceiling: %v", out)
		}
		sum += out
	}
	mean := sum / n
	if mean > -0.02 || mean < -0.026 {
		t.Fatalf("crackle floor: got mean %v want around -0.0245", mean)
	}
}

func TestDustResetRewindsImpulseStream(t *testing.T) {
	d, err := NewDust(48000)
	if err != nil {
		t.Fatal(err)
	}
	if err := d.SetAmount(0.8); err != nil {
		t.Fatal(err)
	}

	first := make([]float64, 4096)
	for i := range first {
		first[i] = d.ProcessSample(0.1)
	}

	d.Reset()
	for i := range first {
		if got := d.ProcessSample(0.1); got != first[i] {
			t.Fatalf("sample %d after reset: got %v want %v", i, got, first[i])
		}
	}
}
