// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"
	"time"
)

// Buffer is a fully materialized PCM clip with planar channels.
// Data[c][f] is frame f of channel c; every channel has the same length.
// Buffers are treated as immutable once built.
type Buffer struct {
	SampleRate int
	Data       [][]float32
}

// NewBuffer allocates a silent buffer.
func NewBuffer(sampleRate, channels, frames int) *Buffer {
	data := make([][]float32, channels)
	for c := range data {
		data[c] = make([]float32, frames)
	}

	return &Buffer{SampleRate: sampleRate, Data: data}
}

// FromInterleaved de-interleaves samples into a new Buffer.
// A trailing partial frame is dropped.
func FromInterleaved(sampleRate, channels int, samples []float32) *Buffer {
	frames := 0
	if channels > 0 {
		frames = len(samples) / channels
	}

	b := NewBuffer(sampleRate, channels, frames)
	for f := range frames {
		base := f * channels
		for c := range channels {
			b.Data[c][f] = samples[base+c]
		}
	}

	return b
}

func (b *Buffer) Channels() int { return len(b.Data) }

func (b *Buffer) Frames() int {
	if len(b.Data) == 0 {
		return 0
	}
	return len(b.Data[0])
}

// Seconds is Frames / SampleRate.
func (b *Buffer) Seconds() float64 {
	if b.SampleRate <= 0 {
		return 0
	}
	return float64(b.Frames()) / float64(b.SampleRate)
}

func (b *Buffer) Duration() time.Duration {
	if b.SampleRate <= 0 {
		return 0
	}
	return time.Duration(int64(b.Frames()) * int64(time.Second) / int64(b.SampleRate))
}

// Validate reports a malformed buffer: non-positive sample rate, no channels
// or ragged channel lengths.
func (b *Buffer) Validate() error {
	if b == nil {
		return fmt.Errorf("%w: nil buffer", ErrInvalidBuffer)
	}

	if b.SampleRate <= 0 {
		return fmt.Errorf("%w: sample rate %d", ErrInvalidBuffer, b.SampleRate)
	}

	if len(b.Data) == 0 {
		return fmt.Errorf("%w: no channels", ErrInvalidBuffer)
	}

	frames := len(b.Data[0])
	for c, ch := range b.Data {
		if len(ch) != frames {
			return fmt.Errorf("%w: channel %d has %d frames, channel 0 has %d",
				ErrInvalidBuffer, c, len(ch), frames)
		}
	}

	return nil
}

// Interleaved returns the samples frame-major, channel-minor.
func (b *Buffer) Interleaved() []float32 {
	channels := b.Channels()
	frames := b.Frames()
	out := make([]float32, frames*channels)

	for c, ch := range b.Data {
		for f, v := range ch {
			out[f*channels+c] = v
		}
	}

	return out
}

// ReadAll drains src into a Buffer. It does not close src.
func ReadAll(src Source) (*Buffer, error) {
	rate := src.SampleRate()
	channels := src.Channels()

	if rate <= 0 {
		return nil, fmt.Errorf("%w: sample rate %d", ErrMalformed, rate)
	}

	if channels <= 0 {
		return nil, fmt.Errorf("%w: %d channels", ErrMalformed, channels)
	}

	size := max(src.BufSize(), 4096)
	size -= size % channels

	var (
		samples []float32
		chunk   = make([]float32, size)
	)

	for {
		n, err := src.ReadSamples(chunk)
		if n > 0 {
			samples = append(samples, chunk[:n]...)
		}

		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
		}

		if n == 0 {
			// A source that makes no progress without reporting EOF is done.
			break
		}
	}

	return FromInterleaved(rate, channels, samples), nil
}
