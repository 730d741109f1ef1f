// SPDX-License-Identifier: EPL-2.0

// Package wav decodes RIFF/WAVE files and writes the canonical 16-bit PCM
// container.
//
// # Decoding
//
// Decoder parses the chunk layout with github.com/go-audio/wav and accepts
// integer PCM at 8, 16, 24 or 32 bits, any channel count and any sample
// rate. IEEE float and compressed format tags fail with audio.ErrUnsupported;
// broken headers fail with audio.ErrMalformed.
//
// 16-bit samples are mapped with utils.Int16ToFloat32, the exact inverse of
// the encoder's quantizer, so decode(encode(x)) reproduces x.
//
// # Encoding
//
// Encode and EncodeBytes serialize an audio.Buffer; WriteWAV16 writes
// already-quantized samples. The output is always the 44-byte header layout:
//
//	offset 0   "RIFF", total size - 8
//	offset 8   "WAVE"
//	offset 12  "fmt ", 16, format 1 (PCM), channels, sample rate,
//	           byte rate, block align, 16 bits per sample
//	offset 36  "data", data size
//	offset 44  interleaved little-endian int16, frame-major
//
// Each sample is clamped to [-1, 1], negatives are scaled by 32768 and
// positives by 32767, then rounded half away from zero.
package wav
