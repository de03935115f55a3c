// Package dshot implements the DShot digital ESC protocol.
//
// DShot sends 16-bit frames to an electronic speed controller over a
// single signal wire. The first 11 bits carry a throttle value or a
// special command, bit 12 requests telemetry, and the last 4 bits are
// a checksum over the rest.
//
// Ones and zeroes are both transmitted as high pulses at a fixed bit
// rate, with a one held high exactly twice as long as a zero. This
// package renders frames either as timed pulses on a digital output
// pin, or as a duty-cycle buffer for DMA-driven PWM playback.
//
// The checksum is a 4-bit XOR fold. It catches most single-bit
// corruption but is not collision resistant; it is a sanity check,
// not a security boundary.
package dshot
