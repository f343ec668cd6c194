package flux_test

import (
	"fmt"

	"github.com/cwbudde/algo-flux/dsp/flux"
)

func ExampleProcessor() {
	controls := flux.DefaultControls()
	controls.Mix = 1
	controls.SliceLength = 0 // 100 ms slices

	p, err := flux.New(48000, flux.WithControls(controls), flux.WithSeed(1))
	if err != nil {
		panic(err)
	}

	// Feed a steady input; after the first slice finalizes the engine
	// starts playing captured audio back.
	for range 12000 {
		p.ProcessSample(0.5)
	}

	fmt.Println("captured content:", p.Engine().HasContent())
	fmt.Println("active slices:", p.Engine().ActiveSliceCount())

	// Output:
	// captured content: true
	// active slices: 4
}

func ExampleControls_Map() {
	c := flux.DefaultControls()
	c.SliceCount = 1
	c.SliceLength = 1

	params := c.Map(48000)
	fmt.Println("slices:", params.SliceCount)
	fmt.Println("slice length:", params.SliceLengthSamples)

	// Output:
	// slices: 16
	// slice length: 24000
}
