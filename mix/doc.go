// SPDX-License-Identifier: EPL-2.0

// Package mix renders a speech clip over a music bed.
//
// Render is a pure function from two decoded buffers and a gain to one new
// buffer:
//
//   - the output runs at the speech sample rate, for exactly as many frames
//     as the speech has;
//   - it has max(speech channels, music channels, 2) channels, so it is
//     never mono;
//   - speech is copied at unity gain, mono speech feeding both the left and
//     right outputs;
//   - music is resampled to the speech rate, scaled by MusicGain and added
//     on top, looped sample-accurately when it is shorter than the speech
//     and cut off when longer.
//
// No limiting happens here. Sums outside [-1, 1] are left for the encoder
// to clamp.
package mix
