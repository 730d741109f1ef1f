// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"errors"
	"fmt"
	"io"

	"github.com/ik5/voxmix/audio"
	"github.com/jfreymuth/oggvorbis"
)

// oggReader is an interface for oggvorbis.Reader to allow testing
type oggReader interface {
	SampleRate() int
	Channels() int
	// Read fills p with interleaved samples and returns the sample count.
	Read(p []float32) (int, error)
}

type source struct {
	dec        oggReader
	sampleRate int
	channels   int
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return s.channels }
func (s *source) BufSize() int    { return 4096 }

func (s *source) Close() error {
	s.dec = nil
	return nil
}

func (s *source) ReadSamples(dst []float32) (int, error) {
	if s.dec == nil {
		return 0, io.EOF
	}

	// oggvorbis only hands out whole frames, so never ask for a partial one.
	n := len(dst) - len(dst)%s.channels
	if n == 0 {
		return 0, nil
	}

	got, err := s.dec.Read(dst[:n])
	if err != nil && !errors.Is(err, io.EOF) {
		return got, fmt.Errorf("%w: %w", audio.ErrMalformed, err)
	}

	return got, err
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := oggvorbis.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", audio.ErrMalformed, err)
	}

	if dec.SampleRate() <= 0 || dec.Channels() <= 0 {
		return nil, fmt.Errorf("%w: %d Hz, %d channels", audio.ErrMalformed, dec.SampleRate(), dec.Channels())
	}

	return &source{
		dec:        dec,
		sampleRate: dec.SampleRate(),
		channels:   dec.Channels(),
	}, nil
}
