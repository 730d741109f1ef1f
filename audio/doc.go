// SPDX-License-Identifier: EPL-2.0

// Package audio provides the PCM model and the decoding contract used by the
// mixing engine.
//
// # Sources and Decoders
//
// Format decoders produce a streaming Source of interleaved float32 samples:
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    ReadSamples(dst []float32) (int, error)
//	    BufSize() int
//	    Close() error
//	}
//
// Clips handled here are short, so a Source is usually drained straight into
// a Buffer with ReadAll.
//
// # Registry
//
// The Registry maps a container key to its Decoder. DecodeBytes sniffs the
// container from the leading bytes, decodes, and closes the source:
//
//	registry := audio.NewRegistry()
//	registry.Register(audio.FormatWAV, wav.Decoder{})
//	buf, err := registry.DecodeBytes(data)
//
// Every decode failure wraps either ErrMalformed (broken container, truncated
// stream) or ErrUnsupported (unknown signature, codec or bit depth).
//
// # Buffers
//
// Buffer holds planar channels, Data[channel][frame], at one sample rate.
// Samples are nominally in [-1.0, 1.0]; sums produced by mixing may exceed
// that range and are clamped only when encoded.
//
// # Resampling
//
// Resample converts a Buffer to a new rate with Catmull-Rom interpolation.
// Positions are computed from the frame index in integer arithmetic, so the
// output length is round(frames * dst / src) and there is no cumulative
// drift. EdgeWrap treats the input as a loop period and interpolates across
// the seam.
//
// # Channel Mapping
//
// ChannelMap describes how a narrower source spreads over a wider output:
// mono feeds left and right, wider sources map channel for channel.
package audio
