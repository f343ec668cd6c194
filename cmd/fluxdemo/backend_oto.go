package main

import (
	"bytes"
	"encoding/binary"
	"math"
	"time"

	"github.com/ebitengine/oto/v3"
)

// otoPlayer plays the rendered buffer through the system mixer via oto.
type otoPlayer struct{}

func (otoPlayer) play(sampleRate int, left, right []float64) error {
	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 2,
		Format:       oto.FormatFloat32LE,
	}
	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return err
	}
	<-ready

	pcm := make([]byte, 0, len(left)*8)
	for i := range left {
		pcm = appendFloat32LE(pcm, left[i])
		pcm = appendFloat32LE(pcm, right[i])
	}

	pl := ctx.NewPlayer(bytes.NewReader(pcm))
	pl.Play()
	for pl.IsPlaying() {
		time.Sleep(10 * time.Millisecond)
	}
	return pl.Close()
}

func appendFloat32LE(dst []byte, s float64) []byte {
	return binary.LittleEndian.AppendUint32(dst, math.Float32bits(float32(s)))
}
