package delay_test

import (
	"fmt"

	"github.com/cwbudde/algo-flux/dsp/delay"
)

func ExampleLine() {
	line, err := delay.New(64)
	if err != nil {
		panic(err)
	}

	// An impulse written now reappears at the configured delay.
	line.Write(1)
	for range 9 {
		line.Write(0)
	}

	fmt.Println("at delay 10:", line.Read(10))
	fmt.Println("at delay 5: ", line.Read(5))

	// Output:
	// at delay 10: 1
	// at delay 5:  0
}

func ExampleReverseLine() {
	line, err := delay.NewReverse(4800)
	if err != nil {
		panic(err)
	}
	line.SetDelay(480)
	line.SetCrossfade(120)

	for i := range 960 {
		line.Write(float64(i))
	}

	fmt.Println("delay:", line.Delay())
	fmt.Println("crossfade:", line.Crossfade())

	// Output:
	// delay: 480
	// crossfade: 120
}
