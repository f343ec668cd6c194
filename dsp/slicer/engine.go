package slicer

import (
	"fmt"
	"math"
)

const (
	// captureDeadband is the amplitude the signal must exceed before a sign
	// change counts as a zero crossing (1% of full scale). The hysteresis
	// keeps near-silent input from triggering false crossings.
	captureDeadband = 0.01
	// maxZeroSearch caps the zero-crossing search after the target length
	// has been reached (about 20.8 ms at 48 kHz), so DC or sub-audio input
	// still finalizes.
	maxZeroSearch = 1000

	// fadePercent and minFadeSamples size the playback crossfade: 15% of
	// the slice, floored at 5 ms at 48 kHz.
	fadePercent    = 15
	minFadeSamples = 240

	defaultEngineSeed = 1
)

// Option mutates engine construction parameters.
type Option func(*engineConfig) error

type engineConfig struct {
	activeSliceCount int
	targetLength     float64
	stutter          float64
	mode             Mode
	shuffle          bool
	seed             int64
}

func defaultEngineConfig() engineConfig {
	return engineConfig{
		activeSliceCount: MaxSlices,
		targetLength:     MaxSliceLength,
		mode:             ModeForward,
		seed:             defaultEngineSeed,
	}
}

// WithActiveSliceCount sets how many slices the ring uses. Range: [1, 16].
func WithActiveSliceCount(count int) Option {
	return func(cfg *engineConfig) error {
		if count < 1 || count > MaxSlices {
			return fmt.Errorf("slicer active slice count must be in [1, %d]: %d", MaxSlices, count)
		}
		cfg.activeSliceCount = count
		return nil
	}
}

// WithTargetSliceLength sets the capture target length in samples.
// Range: [1, 24000].
func WithTargetSliceLength(samples float64) Option {
	return func(cfg *engineConfig) error {
		if samples < 1 || samples > MaxSliceLength || math.IsNaN(samples) {
			return fmt.Errorf("slicer target slice length must be in [1, %d]: %f", MaxSliceLength, samples)
		}
		cfg.targetLength = samples
		return nil
	}
}

// WithStutter sets the stutter intensity in [0, 1].
func WithStutter(intensity float64) Option {
	return func(cfg *engineConfig) error {
		if intensity < 0 || intensity > 1 || math.IsNaN(intensity) {
			return fmt.Errorf("slicer stutter intensity must be in [0, 1]: %f", intensity)
		}
		cfg.stutter = intensity
		return nil
	}
}

// WithMode sets the capture/playback mode.
func WithMode(mode Mode) Option {
	return func(cfg *engineConfig) error {
		if mode < ModeForward || mode > ModeRandom {
			return fmt.Errorf("slicer mode must be Forward, Backward or Random: %d", int(mode))
		}
		cfg.mode = mode
		return nil
	}
}

// WithShuffle enables the sequencer's shuffle overlay.
func WithShuffle(enabled bool) Option {
	return func(cfg *engineConfig) error {
		cfg.shuffle = enabled
		return nil
	}
}

// WithSeed sets the random seed for deterministic sequencing.
func WithSeed(seed int64) Option {
	return func(cfg *engineConfig) error {
		cfg.seed = seed
		return nil
	}
}

// Engine is the sample-and-hold slicer: one Store, a capture cursor, a
// playback cursor and a Sequencer, advanced one sample at a time.
//
// Capture and Playback are driven separately so callers can feed playback
// output back into the capture input. Within one sample, call Playback
// before Capture; that ordering is what lets the conflict guard keep
// playback off the slice currently being written.
//
// The engine never fails at runtime: indices are clamped or wrapped, reads
// of never-captured slices yield silence, and the zero-crossing search and
// capacity guards bound all internal loops. Methods are not safe for
// concurrent use.
type Engine struct {
	store *Store
	seq   *Sequencer

	activeSliceCount int
	targetLength     float64
	stutter          float64
	mode             Mode
	freeze           bool
	seed             int64

	// capture cursor
	captureSlice   int
	writePos       int
	waitingForZero bool
	zeroSearch     int
	hasLeftZero    bool
	prevSample     float64

	// playback cursor
	playbackSlice int
	readPos       int
	reverse       bool
	repeatCount   int
	targetRepeats int
	hasContent    bool

	// crossfade cache, recomputed on slice entry
	lastPlayedSlice int
	fadeLength      int
}

// New creates an engine with all slices empty.
func New(opts ...Option) (*Engine, error) {
	cfg := defaultEngineConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	e := &Engine{
		store:            NewStore(),
		seq:              NewSequencer(cfg.seed),
		activeSliceCount: cfg.activeSliceCount,
		targetLength:     cfg.targetLength,
		stutter:          cfg.stutter,
		mode:             cfg.mode,
		seed:             cfg.seed,
		targetRepeats:    1,
		lastPlayedSlice:  -1,
	}
	e.seq.SetShuffle(cfg.shuffle)

	return e, nil
}

// ActiveSliceCount returns the number of slices in use.
func (e *Engine) ActiveSliceCount() int { return e.activeSliceCount }

// TargetSliceLength returns the capture target length in samples.
func (e *Engine) TargetSliceLength() float64 { return e.targetLength }

// Stutter returns the stutter intensity in [0, 1].
func (e *Engine) Stutter() float64 { return e.stutter }

// Mode returns the capture/playback mode.
func (e *Engine) Mode() Mode { return e.mode }

// Shuffle reports whether the sequencer's shuffle overlay is enabled.
func (e *Engine) Shuffle() bool { return e.seq.Shuffle() }

// Frozen reports whether capture is suspended.
func (e *Engine) Frozen() bool { return e.freeze }

// HasContent reports whether at least one slice has ever finalized.
func (e *Engine) HasContent() bool { return e.hasContent }

// CaptureSlice returns the slice index currently being written.
func (e *Engine) CaptureSlice() int { return e.captureSlice }

// PlaybackSlice returns the slice index currently being read.
func (e *Engine) PlaybackSlice() int { return e.playbackSlice }

// SliceLength returns the finalized length of the slice at index;
// 0 means never captured.
func (e *Engine) SliceLength(index int) int { return e.store.Length(index) }

// SetActiveSliceCount sets how many slices the ring uses. Range: [1, 16].
// Shrinking the count mid-stream is tolerated: cursor advances use the
// current value, and stale slices beyond it simply stop being targeted.
func (e *Engine) SetActiveSliceCount(count int) error {
	if count < 1 || count > MaxSlices {
		return fmt.Errorf("slicer active slice count must be in [1, %d]: %d", MaxSlices, count)
	}
	e.activeSliceCount = count
	return nil
}

// SetTargetSliceLength sets the capture target length in samples.
// Range: [1, 24000]. Callers smooth this value toward their control target;
// the engine compares the truncated value against the write position.
func (e *Engine) SetTargetSliceLength(samples float64) error {
	if samples < 1 || samples > MaxSliceLength || math.IsNaN(samples) {
		return fmt.Errorf("slicer target slice length must be in [1, %d]: %f", MaxSliceLength, samples)
	}
	e.targetLength = samples
	return nil
}

// SetStutter sets the stutter intensity in [0, 1].
func (e *Engine) SetStutter(intensity float64) error {
	if intensity < 0 || intensity > 1 || math.IsNaN(intensity) {
		return fmt.Errorf("slicer stutter intensity must be in [0, 1]: %f", intensity)
	}
	e.stutter = intensity
	return nil
}

// SetMode sets the capture/playback mode.
func (e *Engine) SetMode(mode Mode) error {
	if mode < ModeForward || mode > ModeRandom {
		return fmt.Errorf("slicer mode must be Forward, Backward or Random: %d", int(mode))
	}
	e.mode = mode
	return nil
}

// SetShuffle toggles the sequencer's shuffle overlay.
func (e *Engine) SetShuffle(enabled bool) {
	e.seq.SetShuffle(enabled)
}

// SetFreeze suspends or resumes capture. While frozen, Capture is a no-op
// and Playback keeps looping the frozen store.
func (e *Engine) SetFreeze(frozen bool) {
	e.freeze = frozen
}

// SetRandomSeed sets the RNG seed for deterministic sequencing and resets
// the engine.
func (e *Engine) SetRandomSeed(seed int64) {
	e.seed = seed
	e.Reset()
}

// Capture advances the capture state machine by one input sample: the
// sample is appended to the targeted slice, and once the slice has grown to
// the target length it finalizes at the next zero crossing (or after the
// bounded search times out, or one sample before capacity). While frozen
// this is a no-op.
func (e *Engine) Capture(sample float64) {
	if e.freeze {
		return
	}

	if math.Abs(sample) > captureDeadband {
		e.hasLeftZero = true
	}
	crossing := e.hasLeftZero &&
		((e.prevSample > 0 && sample <= 0) || (e.prevSample < 0 && sample >= 0))

	e.store.Write(e.captureSlice, e.writePos, sample)
	e.writePos++
	e.prevSample = sample

	finalize := false
	if e.waitingForZero {
		e.zeroSearch++
		if crossing || e.zeroSearch >= maxZeroSearch || e.writePos >= MaxSliceLength-1 {
			finalize = true
		}
	} else if e.writePos >= int(e.targetLength) || e.writePos >= MaxSliceLength-1 {
		e.waitingForZero = true
		e.zeroSearch = 0
		e.hasLeftZero = false
	}

	if finalize {
		e.finalizeSlice()
	}
}

// finalizeSlice publishes the open slice, bootstraps playback the first
// time any content exists, advances the capture target and rearms the
// detector.
func (e *Engine) finalizeSlice() {
	e.store.Finalize(e.captureSlice, e.writePos)

	if !e.hasContent {
		e.hasContent = true
		e.playbackSlice = e.captureSlice
		e.readPos = 0
		e.repeatCount = 0
		e.targetRepeats = e.seq.ChooseRepeatCount(e.stutter)
		e.reverse = e.seq.Direction(e.mode)
	}

	e.captureSlice = e.seq.CaptureAdvance(e.captureSlice, e.activeSliceCount, e.mode)

	e.writePos = 0
	e.waitingForZero = false
	e.zeroSearch = 0
	e.hasLeftZero = false
	e.prevSample = 0
}

// Playback advances the playback state machine and returns one output
// sample. Slices play under a proportional fade envelope; when the current
// slice has repeated its target count the sequencer picks the next one.
// The conflict guard keeps reads off the slice capture is writing: in the
// rare case no other slice is available this sample degrades to silence.
func (e *Engine) Playback() float64 {
	if !e.hasContent {
		return 0
	}

	if e.playbackSlice == e.captureSlice {
		e.playbackSlice, e.reverse = e.seq.NextSlice(e.playbackSlice, e.activeSliceCount, e.stutter, e.mode)
		e.readPos = 0
		e.repeatCount = 0
		e.targetRepeats = e.seq.ChooseRepeatCount(e.stutter)
		if e.playbackSlice == e.captureSlice {
			return 0
		}
	}

	length := e.store.Length(e.playbackSlice)
	if length == 0 {
		return 0
	}

	readPos := e.readPos
	if e.reverse {
		if e.readPos < length {
			readPos = length - 1 - e.readPos
		} else {
			readPos = 0
		}
	}
	if readPos < 0 || readPos >= length {
		readPos = 0
	}

	output := e.store.Sample(e.playbackSlice, readPos)

	if e.playbackSlice != e.lastPlayedSlice || e.readPos == 0 {
		e.lastPlayedSlice = e.playbackSlice
		e.fadeLength = crossfadeLength(length)
	}

	envelope := 1.0
	if e.readPos < e.fadeLength {
		envelope = float64(e.readPos) / float64(e.fadeLength)
	}
	if fadeOutStart := length - e.fadeLength; fadeOutStart > 0 && e.readPos >= fadeOutStart {
		fadeOut := 1 - float64(e.readPos-fadeOutStart)/float64(e.fadeLength)
		if fadeOut < envelope {
			envelope = fadeOut
		}
	}

	output *= envelope
	e.readPos++

	if e.readPos >= length {
		e.repeatCount++
		e.readPos = 0

		if e.repeatCount >= e.targetRepeats {
			next, reverse := e.seq.NextSlice(e.playbackSlice, e.activeSliceCount, e.stutter, e.mode)
			e.reverse = reverse
			if next == e.captureSlice {
				next, reverse = e.seq.NextSlice(next, e.activeSliceCount, e.stutter, e.mode)
				e.reverse = reverse
			}
			if e.store.Length(next) > 0 {
				e.playbackSlice = next
			}
			e.repeatCount = 0
			e.targetRepeats = e.seq.ChooseRepeatCount(e.stutter)
		}
	}

	return output
}

// crossfadeLength sizes the entry/exit fade for a slice: 15% of its length
// floored at 240 samples, shrunk to a third of the slice when the fade-in
// and fade-out windows would otherwise overlap.
func crossfadeLength(sliceLength int) int {
	fade := sliceLength * fadePercent / 100
	if fade < minFadeSamples {
		fade = minFadeSamples
	}
	if fade*2 > sliceLength {
		fade = sliceLength / 3
		if fade < 1 {
			fade = 1
		}
	}
	return fade
}

// Reset clears all slices and cursors and rewinds the random stream.
// Configuration (slice count, target length, stutter, mode, shuffle,
// freeze) is kept.
func (e *Engine) Reset() {
	e.store.Reset()

	e.captureSlice = 0
	e.writePos = 0
	e.waitingForZero = false
	e.zeroSearch = 0
	e.hasLeftZero = false
	e.prevSample = 0

	e.playbackSlice = 0
	e.readPos = 0
	e.reverse = false
	e.repeatCount = 0
	e.targetRepeats = 1
	e.hasContent = false

	e.lastPlayedSlice = -1
	e.fadeLength = 0

	e.seq.Seed(e.seed)
}
