package main

import (
	"github.com/gordonklaus/portaudio"
)

// portaudioPlayer streams the rendered buffer through the default output
// device using a pull callback.
type portaudioPlayer struct{}

func (portaudioPlayer) play(sampleRate int, left, right []float64) error {
	if err := portaudio.Initialize(); err != nil {
		return err
	}
	defer portaudio.Terminate()

	pos := 0
	done := make(chan struct{})
	stream, err := portaudio.OpenDefaultStream(0, 2, float64(sampleRate), blockSize,
		func(out [][]float32) {
			for i := range out[0] {
				if pos < len(left) {
					out[0][i] = float32(left[pos])
					out[1][i] = float32(right[pos])
					pos++
				} else {
					out[0][i] = 0
					out[1][i] = 0
				}
			}
			if pos >= len(left) {
				select {
				case <-done:
				default:
					close(done)
				}
			}
		})
	if err != nil {
		return err
	}
	defer stream.Close()

	if err := stream.Start(); err != nil {
		return err
	}
	<-done
	return stream.Stop()
}
