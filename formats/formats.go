// SPDX-License-Identifier: EPL-2.0

// Package formats wires every container decoder into one audio.Registry.
package formats

import (
	"github.com/ik5/voxmix/audio"
	"github.com/ik5/voxmix/formats/aiff"
	"github.com/ik5/voxmix/formats/mp3"
	"github.com/ik5/voxmix/formats/vorbis"
	"github.com/ik5/voxmix/formats/wav"
)

// NewRegistry returns a registry with the WAV, MP3, Ogg Vorbis and AIFF
// decoders registered under their audio.Format* keys.
func NewRegistry() *audio.Registry {
	reg := audio.NewRegistry()
	reg.Register(audio.FormatWAV, wav.Decoder{})
	reg.Register(audio.FormatMP3, mp3.Decoder{})
	reg.Register(audio.FormatOgg, vorbis.Decoder{})
	reg.Register(audio.FormatAIFF, aiff.Decoder{})

	return reg
}
