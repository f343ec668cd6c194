package lofi

import (
	"math"
	"testing"
)

func TestNewOnePoleValidation(t *testing.T) {
	if _, err := NewOnePole(0, 1000); err == nil {
		t.Fatal("expected error for zero sample rate")
	}
	if _, err := NewOnePole(math.NaN(), 1000); err == nil {
		t.Fatal("expected error for NaN sample rate")
	}
	if _, err := NewOnePole(48000, 0); err == nil {
		t.Fatal("expected error for zero cutoff")
	}
	if _, err := NewOnePole(48000, 30000); err == nil {
		t.Fatal("expected error for cutoff above Nyquist")
	}
}

func TestOnePoleConvergesToDC(t *testing.T) {
	p, err := NewOnePole(48000, 1000)
	if err != nil {
		t.Fatal(err)
	}

	var out float64
	for range 4800 {
		out = p.ProcessSample(1)
	}
	if math.Abs(out-1) > 1e-6 {
		t.Fatalf("DC convergence: got %v want ~1", out)
	}
}

func TestOnePoleStepResponseMonotone(t *testing.T) {
	p, err := NewOnePole(48000, 600)
	if err != nil {
		t.Fatal(err)
	}

	prev := 0.0
	for i := range 1000 {
		out := p.ProcessSample(1)
		if out <= prev {
			t.Fatalf("sample %d: step response not increasing (%v after %v)", i, out, prev)
		}
		prev = out
	}
}

func TestOnePoleHigherCutoffConvergesFaster(t *testing.T) {
	slow, err := NewOnePole(48000, 200)
	if err != nil {
		t.Fatal(err)
	}
	fast, err := NewOnePole(48000, 5000)
	if err != nil {
		t.Fatal(err)
	}

	var slowOut, fastOut float64
	for range 100 {
		slowOut = slow.ProcessSample(1)
		fastOut = fast.ProcessSample(1)
	}
	if fastOut <= slowOut {
		t.Fatalf("fast cutoff behind slow one: %v vs %v", fastOut, slowOut)
	}
}

func TestOnePoleReset(t *testing.T) {
	p, err := NewOnePole(48000, 1000)
	if err != nil {
		t.Fatal(err)
	}

	first := p.ProcessSample(1)
	p.Reset()
	if got := p.ProcessSample(1); got != first {
		t.Fatalf("reset did not restore state: got %v want %v", got, first)
	}
}
