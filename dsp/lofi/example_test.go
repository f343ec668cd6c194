package lofi_test

import (
	"fmt"

	"github.com/cwbudde/algo-flux/dsp/lofi"
)

func ExampleBitCrusher() {
	bc, err := lofi.NewBitCrusher(48000)
	if err != nil {
		panic(err)
	}

	// At amount 0 the crusher is a perfect bypass.
	fmt.Println(bc.ProcessSample(0.25))

	if err := bc.SetAmount(1); err != nil {
		panic(err)
	}
	fmt.Println("hold length:", bc.HoldLength())

	// Output:
	// 0.25
	// hold length: 32
}

func ExampleWobble() {
	w, err := lofi.NewWobble(48000)
	if err != nil {
		panic(err)
	}
	if err := w.SetAmount(1); err != nil {
		panic(err)
	}

	fmt.Printf("LFO rate: %.1f Hz\n", w.RateHz())

	// Output:
	// LFO rate: 6.0 Hz
}
