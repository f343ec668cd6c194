// Package flux assembles the slicer engine and the lofi stages into the
// complete sample-and-hold slicer delay: input is optionally bit-crushed,
// captured into slices with feedback from the playback output, blended with
// the clean dry signal, then colored by wobble and dust before the master
// level.
//
// Controls models the pedal surface (all knobs normalized to [0, 1]) and
// maps it onto engine parameters with the product's tuning curves; Processor
// runs the per-sample chain. Apply is meant to be called once per audio
// block, ProcessSample or ProcessBlock per sample or block. The processor
// is single-threaded and not safe for concurrent use.
package flux
