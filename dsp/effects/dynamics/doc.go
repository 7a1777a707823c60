// Package dynamics provides reusable non-I/O dynamics processors.
//
// Included processors:
//   - BandCompressor: Hard-knee downward compressor with dB-domain envelope
//     detection and asymmetrically smoothed gain reduction.
//   - Processor: Three-band compression engine that splits the input with
//     Linkwitz-Riley crossovers, compresses each band independently and sums
//     the bands back together, tracking the output peak for metering.
//
// All processing is block-based and in place. Parameters are snapshotted
// once per block, so a running engine can be driven from changing parameter
// sources without locks as long as a BlockParams value is handed to each
// ProcessBlock call.
package dynamics
