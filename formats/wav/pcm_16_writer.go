// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/ik5/voxmix/audio"
	"github.com/ik5/voxmix/utils"
)

// HeaderSize is the length of the canonical RIFF/WAVE header written here.
const HeaderSize = 44

const chunkFrames = 4096

// header builds the 44-byte canonical header for 16-bit PCM.
func header(sampleRate, channels, frames int) ([]byte, error) {
	if sampleRate <= 0 || channels <= 0 || channels > math.MaxUint16/2 {
		return nil, fmt.Errorf("%w: %d Hz, %d channels", ErrInvalidLayout, sampleRate, channels)
	}

	dataSize := uint64(frames) * uint64(channels) * 2
	if dataSize > math.MaxUint32-36 {
		return nil, ErrTooLarge
	}

	blockAlign := uint16(channels * 2)
	h := make([]byte, HeaderSize)

	copy(h[0:4], "RIFF")
	binary.LittleEndian.PutUint32(h[4:8], uint32(36+dataSize))
	copy(h[8:12], "WAVE")

	copy(h[12:16], "fmt ")
	binary.LittleEndian.PutUint32(h[16:20], 16)
	binary.LittleEndian.PutUint16(h[20:22], formatPCM)
	binary.LittleEndian.PutUint16(h[22:24], uint16(channels))
	binary.LittleEndian.PutUint32(h[24:28], uint32(sampleRate))
	binary.LittleEndian.PutUint32(h[28:32], uint32(sampleRate)*uint32(blockAlign))
	binary.LittleEndian.PutUint16(h[32:34], blockAlign)
	binary.LittleEndian.PutUint16(h[34:36], 16)

	copy(h[36:40], "data")
	binary.LittleEndian.PutUint32(h[40:44], uint32(dataSize))

	return h, nil
}

// WriteWAV16 writes interleaved int16 samples as a 16-bit PCM WAV.
// len(samples) must be a whole number of frames.
func WriteWAV16(w io.Writer, sampleRate, channels int, samples []int16) error {
	if channels <= 0 || len(samples)%channels != 0 {
		return fmt.Errorf("%w: %d samples for %d channels", ErrInvalidLayout, len(samples), channels)
	}

	h, err := header(sampleRate, channels, len(samples)/channels)
	if err != nil {
		return err
	}

	if _, err := w.Write(h); err != nil {
		return fmt.Errorf("%w", err)
	}

	if len(samples) == 0 {
		return nil
	}

	buf := make([]byte, min(len(samples), chunkFrames*channels)*2)
	for i := 0; i < len(samples); i += len(buf) / 2 {
		chunk := samples[i:min(i+len(buf)/2, len(samples))]
		out := buf[:len(chunk)*2]

		for j, s := range chunk {
			binary.LittleEndian.PutUint16(out[j*2:], uint16(s))
		}

		if _, err := w.Write(out); err != nil {
			return fmt.Errorf("%w", err)
		}
	}

	return nil
}

// Encode writes b as a 16-bit PCM WAV. Samples are clamped to [-1, 1] and
// quantized with utils.Float32ToInt16, interleaved frame by frame.
func Encode(w io.Writer, b *audio.Buffer) error {
	if err := b.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidLayout, err)
	}

	channels := b.Channels()
	frames := b.Frames()

	h, err := header(b.SampleRate, channels, frames)
	if err != nil {
		return err
	}

	if _, err := w.Write(h); err != nil {
		return fmt.Errorf("%w", err)
	}

	buf := make([]byte, min(frames, chunkFrames)*channels*2)
	for start := 0; start < frames; start += chunkFrames {
		end := min(start+chunkFrames, frames)
		out := buf[:(end-start)*channels*2]

		pos := 0
		for f := start; f < end; f++ {
			for c := range channels {
				binary.LittleEndian.PutUint16(out[pos:], uint16(utils.Float32ToInt16(b.Data[c][f])))
				pos += 2
			}
		}

		if _, err := w.Write(out); err != nil {
			return fmt.Errorf("%w", err)
		}
	}

	return nil
}

// EncodeBytes is Encode into memory.
func EncodeBytes(b *audio.Buffer) ([]byte, error) {
	out := new(bytes.Buffer)
	if b != nil {
		out.Grow(HeaderSize + b.Frames()*b.Channels()*2)
	}

	if err := Encode(out, b); err != nil {
		return nil, err
	}

	return out.Bytes(), nil
}
