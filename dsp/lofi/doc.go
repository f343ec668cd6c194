// Package lofi provides the degradation stages of a vintage-sampler signal
// chain: a one-pole low-pass, a filtered sample-and-hold bit crusher, a
// tape-style wobble (LFO-modulated fractional delay) and sparse vinyl-style
// dust crackle.
//
// Every stage is a per-sample kernel with a single amount control in [0, 1];
// at amount 0 each stage is an exact bypass. All stages are allocation-free
// after construction and none is safe for concurrent use.
package lofi
