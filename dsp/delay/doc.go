// Package delay provides circular delay lines: a forward Line with integer
// and fractional (Hermite or linear) read taps, and a ReverseLine whose read
// side plays backward through a pair of crossfading heads.
//
// All types process float64 samples one at a time, allocate only at
// construction, and are not safe for concurrent use.
package delay
