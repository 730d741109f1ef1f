// SPDX-License-Identifier: EPL-2.0

package mix

import (
	"errors"
	"fmt"
	"math"

	"github.com/ik5/voxmix/audio"
)

// ErrContractViolation reports input the renderer must never be given:
// nil or malformed buffers, or a gain outside [0, 1].
var ErrContractViolation = errors.New("render contract violation")

// Request is the input to Render. Callers are expected to clamp MusicGain
// to the supported envelope before building one.
type Request struct {
	Speech    *audio.Buffer
	Music     *audio.Buffer
	MusicGain float64
}

// Render mixes req.Music under req.Speech. The result is a new buffer; the
// inputs are not modified.
func Render(req Request) (*audio.Buffer, error) {
	if err := check(req); err != nil {
		return nil, err
	}

	speech, music := req.Speech, req.Music
	frames := speech.Frames()
	channels := max(speech.Channels(), music.Channels(), 2)

	out := audio.NewBuffer(speech.SampleRate, channels, frames)
	for c, src := range audio.ChannelMap(speech.Channels(), channels) {
		if src >= 0 {
			copy(out.Data[c], speech.Data[src])
		}
	}

	gain := float32(req.MusicGain)
	if gain == 0 || frames == 0 {
		return out, nil
	}

	edge := audio.EdgeClamp
	if Loops(speech, music) {
		edge = audio.EdgeWrap
	}

	bed := audio.Resample(music, speech.SampleRate, edge)
	if bed.Frames() == 0 {
		return out, nil
	}

	for c, src := range audio.ChannelMap(bed.Channels(), channels) {
		if src >= 0 {
			addLooped(out.Data[c], bed.Data[src], gain)
		}
	}

	return out, nil
}

// Loops reports whether music is shorter than speech and so has to repeat
// to cover it. Durations are compared exactly as frame/rate fractions.
func Loops(speech, music *audio.Buffer) bool {
	return int64(music.Frames())*int64(speech.SampleRate) <
		int64(speech.Frames())*int64(music.SampleRate)
}

// addLooped adds gain*bed to dst, restarting bed from its first frame each
// time it runs out. The frame after the last bed frame is bed[0], so the
// seam has no gap.
func addLooped(dst, bed []float32, gain float32) {
	for off := 0; off < len(dst); off += len(bed) {
		seg := dst[off:min(off+len(bed), len(dst))]
		for i := range seg {
			seg[i] += gain * bed[i]
		}
	}
}

func check(req Request) error {
	if req.Speech == nil {
		return fmt.Errorf("%w: nil speech buffer", ErrContractViolation)
	}
	if req.Music == nil {
		return fmt.Errorf("%w: nil music buffer", ErrContractViolation)
	}

	if err := req.Speech.Validate(); err != nil {
		return fmt.Errorf("%w: speech: %w", ErrContractViolation, err)
	}
	if err := req.Music.Validate(); err != nil {
		return fmt.Errorf("%w: music: %w", ErrContractViolation, err)
	}

	if math.IsNaN(req.MusicGain) || req.MusicGain < 0 || req.MusicGain > 1 {
		return fmt.Errorf("%w: music gain %v outside [0, 1]", ErrContractViolation, req.MusicGain)
	}

	return nil
}
