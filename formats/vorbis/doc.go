// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis audio with github.com/jfreymuth/oggvorbis.
//
// Vorbis decodes natively to float32, so samples pass through without
// quantization. The stream's own sample rate and channel count are reported
// unchanged.
//
//	src, err := vorbis.Decoder{}.Decode(r)
//	if err != nil {
//	    // errors.Is(err, audio.ErrMalformed)
//	}
//	defer src.Close()
//	buf, err := audio.ReadAll(src)
package vorbis
