package flux

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-flux/dsp/core"
	"github.com/cwbudde/algo-flux/dsp/lofi"
	"github.com/cwbudde/algo-flux/dsp/slicer"
)

const (
	// sliceLengthSmoothing is the per-sample one-pole step toward the
	// mapped slice length target; it keeps length changes click-free.
	sliceLengthSmoothing = 0.0002

	// wetEffectsGate keeps wobble and dust off the signal while the mix
	// knob sits at fully dry, so the dry path stays clean.
	wetEffectsGate = 0.01

	defaultProcessorSeed = 1
)

// Option mutates processor construction parameters.
type Option func(*processorConfig) error

type processorConfig struct {
	controls  Controls
	blockSize int
	seed      int64
}

// WithControls sets the initial control surface.
func WithControls(controls Controls) Option {
	return func(cfg *processorConfig) error {
		if err := controls.Validate(); err != nil {
			return err
		}
		cfg.controls = controls
		return nil
	}
}

// WithBlockSize pre-sizes the block-processing scratch buffer.
func WithBlockSize(blockSize int) Option {
	return func(cfg *processorConfig) error {
		if blockSize < 1 {
			return fmt.Errorf("flux block size must be >= 1: %d", blockSize)
		}
		cfg.blockSize = blockSize
		return nil
	}
}

// WithSeed sets the random seed for deterministic sequencing and crackle.
func WithSeed(seed int64) Option {
	return func(cfg *processorConfig) error {
		cfg.seed = seed
		return nil
	}
}

// Processor is the assembled pedal: slicer engine plus lofi chain behind a
// Controls surface. Call Apply once per audio block, then ProcessSample or
// ProcessBlock.
//
// Within each sample the playback read strictly precedes the capture write;
// the capture input is the crushed dry signal plus the playback output
// scaled by feedback. That ordering carries the engine's conflict guarantee
// and must not be rearranged.
type Processor struct {
	sampleRate float64
	controls   Controls

	engine  *slicer.Engine
	crusher *lofi.BitCrusher
	wobble  *lofi.Wobble
	dust    *lofi.Dust

	masterLevel float64
	lastLevel   float64
	mix         float64
	feedback    float64
	bypass      bool

	targetLength float64
	smoothLength float64

	ramp []float64
}

// New creates a processor with default controls applied.
func New(sampleRate float64, opts ...Option) (*Processor, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("flux sample rate must be > 0 and finite: %f", sampleRate)
	}

	cfg := processorConfig{
		controls:  DefaultControls(),
		blockSize: core.DefaultProcessorConfig().BlockSize,
		seed:      defaultProcessorSeed,
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	engine, err := slicer.New(slicer.WithSeed(cfg.seed))
	if err != nil {
		return nil, err
	}
	crusher, err := lofi.NewBitCrusher(sampleRate)
	if err != nil {
		return nil, err
	}
	wobble, err := lofi.NewWobble(sampleRate)
	if err != nil {
		return nil, err
	}
	dust, err := lofi.NewDust(sampleRate)
	if err != nil {
		return nil, err
	}
	dust.SetRandomSeed(cfg.seed)

	p := &Processor{
		sampleRate: sampleRate,
		engine:     engine,
		crusher:    crusher,
		wobble:     wobble,
		dust:       dust,
		ramp:       make([]float64, cfg.blockSize),
	}
	if err := p.Apply(cfg.controls); err != nil {
		return nil, err
	}
	p.smoothLength = p.targetLength
	p.lastLevel = p.masterLevel
	return p, nil
}

// SampleRate returns the sample rate in Hz.
func (p *Processor) SampleRate() float64 { return p.sampleRate }

// Controls returns the last applied control surface.
func (p *Processor) Controls() Controls { return p.controls }

// Bypassed reports whether the processor passes input through unchanged.
func (p *Processor) Bypassed() bool { return p.bypass }

// Engine exposes the slicer engine for inspection.
func (p *Processor) Engine() *slicer.Engine { return p.engine }

// Apply validates and maps a control surface onto the engine and the lofi
// stages. Call it once per audio block; the slice length target it sets is
// approached one smoothing step per sample.
func (p *Processor) Apply(controls Controls) error {
	if err := controls.Validate(); err != nil {
		return err
	}

	params := controls.Map(p.sampleRate)

	if err := p.engine.SetActiveSliceCount(params.SliceCount); err != nil {
		return err
	}
	if err := p.engine.SetStutter(params.Stutter); err != nil {
		return err
	}
	if err := p.engine.SetMode(params.Mode); err != nil {
		return err
	}
	p.engine.SetShuffle(params.Shuffle)
	p.engine.SetFreeze(params.Freeze)

	if err := p.crusher.SetAmount(params.BitCrush); err != nil {
		return err
	}
	if err := p.wobble.SetAmount(params.Wobble); err != nil {
		return err
	}
	if err := p.dust.SetAmount(params.Dust); err != nil {
		return err
	}

	p.controls = controls
	p.masterLevel = params.MasterLevel
	p.mix = params.Mix
	p.feedback = params.Feedback
	p.bypass = params.Bypass
	p.targetLength = params.SliceLengthSamples
	return nil
}

// SetRandomSeed reseeds the sequencer and the dust stage for reproducible
// renders. The slicer engine is reset in the process, discarding captured
// content.
func (p *Processor) SetRandomSeed(seed int64) {
	p.engine.SetRandomSeed(seed)
	p.dust.SetRandomSeed(seed)
}

// ProcessSample runs one sample through the full chain and applies the
// master level directly.
func (p *Processor) ProcessSample(input float64) float64 {
	if p.bypass {
		return input
	}
	out := p.processSample(input)
	p.lastLevel = p.masterLevel
	return out * p.masterLevel
}

// processSample is the chain without the master level: smooth the slice
// length, crush, playback before capture with feedback, dry/wet blend,
// then wobble and dust on the blended signal.
func (p *Processor) processSample(input float64) float64 {
	p.smoothLength += sliceLengthSmoothing * (p.targetLength - p.smoothLength)
	_ = p.engine.SetTargetSliceLength(core.Clamp(p.smoothLength, 1, slicer.MaxSliceLength))

	crushed := p.crusher.ProcessSample(input)
	wet := p.engine.Playback()
	p.engine.Capture(crushed + wet*p.feedback)

	out := core.Lerp(input, wet, p.mix)
	if p.mix > wetEffectsGate {
		out = p.wobble.ProcessSample(out)
		out = p.dust.ProcessSample(out)
	}
	return out
}

// ProcessBlock processes min(len(dst), len(src)) samples from src into dst
// and returns the count. The master level is applied as a per-block ramp
// from the previous block's level, so level changes arrive click-free.
func (p *Processor) ProcessBlock(dst, src []float64) int {
	n := len(dst)
	if len(src) < n {
		n = len(src)
	}
	if n == 0 {
		return 0
	}

	if p.bypass {
		copy(dst[:n], src[:n])
		return n
	}

	for i := range n {
		dst[i] = p.processSample(src[i])
	}

	p.ramp = core.EnsureLen(p.ramp, n)
	step := (p.masterLevel - p.lastLevel) / float64(n)
	for i := range n {
		p.ramp[i] = p.lastLevel + step*float64(i+1)
	}
	vecmath.MulBlockInPlace(dst[:n], p.ramp[:n])
	p.lastLevel = p.masterLevel

	return n
}

// ProcessBlockStereo processes src into a stereo pair by duplicating the
// mono chain output onto both channels.
func (p *Processor) ProcessBlockStereo(left, right, src []float64) int {
	n := p.ProcessBlock(left, src)
	if len(right) < n {
		n = len(right)
	}
	copy(right[:n], left[:n])
	return n
}

// Reset clears all audio state (captured slices, filters, delay lines,
// random streams) while keeping the applied controls.
func (p *Processor) Reset() {
	p.engine.Reset()
	p.crusher.Reset()
	p.wobble.Reset()
	p.dust.Reset()
	p.smoothLength = p.targetLength
	p.lastLevel = p.masterLevel
}
