// Package slicer implements a sample-and-hold slicer: audio is captured
// into a ring of independently-lengthed slice buffers and played back
// slice-by-slice with crossfades, musical repeats and randomized ordering.
//
// The Engine owns a fixed Store of slices and two cursors. Capture grows
// the targeted slice one sample at a time and closes it at a zero crossing
// near the target length, so slice boundaries never click. Playback reads a
// finalized slice (forward or reversed) under a proportional fade envelope
// and asks the Sequencer for the next slice, direction and repeat count
// when the current one has played out. Capture and playback never touch the
// same slice at the same time.
//
// Everything runs sample-synchronously on the caller's goroutine with no
// allocation after construction, which makes the engine usable inside a
// real-time audio callback. It is not safe for concurrent use.
package slicer
