// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes Audio Interchange File Format (AIFF) audio using
// github.com/go-audio/aiff.
//
// Integer PCM of 8, 16, 24 and 32 bits is accepted. AIFF samples are signed
// and big-endian at every depth; they are normalized with the same
// asymmetric rule the WAV encoder uses, so a 16-bit AIFF re-encoded as WAV
// keeps its exact sample values.
//
// Failures wrap audio.ErrMalformed (not an AIFF container, broken COMM
// chunk) or audio.ErrUnsupported (other bit depths).
package aiff
