package slicer_test

import (
	"fmt"

	"github.com/cwbudde/algo-flux/dsp/slicer"
)

func ExampleEngine() {
	engine, err := slicer.New(
		slicer.WithActiveSliceCount(4),
		slicer.WithTargetSliceLength(1000),
		slicer.WithSeed(1),
	)
	if err != nil {
		panic(err)
	}

	// DC input has no zero crossings, so every slice finalizes through the
	// bounded search timeout at exactly target + 1000 samples.
	for range 5000 {
		engine.Playback()
		engine.Capture(0.5)
	}

	fmt.Println("has content:", engine.HasContent())
	fmt.Println("slice 0 length:", engine.SliceLength(0))
	fmt.Println("slice 1 length:", engine.SliceLength(1))

	// Output:
	// has content: true
	// slice 0 length: 2000
	// slice 1 length: 2000
}

func ExampleSequencer_ChooseRepeatCount() {
	seq := slicer.NewSequencer(1)

	// Below the stutter deadband the answer is always a single play.
	fmt.Println(seq.ChooseRepeatCount(0.0))
	fmt.Println(seq.ChooseRepeatCount(0.0))

	// Output:
	// 1
	// 1
}
