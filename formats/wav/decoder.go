// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	gowav "github.com/go-audio/wav"
	"github.com/ik5/voxmix/audio"
	"github.com/ik5/voxmix/utils"
)

const (
	formatPCM        = 1
	formatExtensible = 0xFFFE
)

// source serves samples already pulled out of the data chunk.
type source struct {
	data       []int
	pos        int
	sampleRate int
	channels   int
	bitDepth   int
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return s.channels }
func (s *source) BufSize() int    { return 4096 }

func (s *source) Close() error {
	s.data = nil
	return nil
}

func (s *source) ReadSamples(dst []float32) (int, error) {
	if s.pos >= len(s.data) {
		return 0, io.EOF
	}

	n := copyNormalized(dst, s.data[s.pos:], s.bitDepth)
	s.pos += n

	if s.pos >= len(s.data) {
		return n, io.EOF
	}

	return n, nil
}

func copyNormalized(dst []float32, src []int, bitDepth int) int {
	n := min(len(dst), len(src))

	switch bitDepth {
	case 8:
		// 8-bit WAV is unsigned with 128 as silence.
		for i := range n {
			dst[i] = utils.IntToFloat32(src[i]-128, 8)
		}
	case 16:
		for i := range n {
			dst[i] = utils.Int16ToFloat32(int16(src[i]))
		}
	case 24:
		for i := range n {
			dst[i] = utils.IntToFloat32(src[i], 24)
		}
	default:
		for i := range n {
			dst[i] = utils.IntToFloat32(src[i], 32)
		}
	}

	return n
}

// Decoder reads integer PCM WAV files of 8, 16, 24 or 32 bits. Chunk layout
// is parsed by go-audio, so LIST/fact chunks before the data are fine.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	rs, ok := r.(io.ReadSeeker)
	if !ok {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("%w: reading wav data: %w", audio.ErrMalformed, err)
		}
		rs = bytes.NewReader(data)
	}

	dec := gowav.NewDecoder(rs)
	dec.ReadInfo()
	if err := dec.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w: %w", audio.ErrMalformed, ErrNotWavFile, err)
	}

	if dec.NumChans == 0 || dec.SampleRate == 0 {
		return nil, fmt.Errorf("%w: %w: missing fmt chunk", audio.ErrMalformed, ErrNotWavFile)
	}

	if dec.WavAudioFormat != formatPCM && dec.WavAudioFormat != formatExtensible {
		return nil, fmt.Errorf("%w: %w: format tag %#x", audio.ErrUnsupported, ErrUnsupportedEncoding, dec.WavAudioFormat)
	}

	bitDepth := int(dec.BitDepth)
	switch bitDepth {
	case 8, 16, 24, 32:
	default:
		return nil, fmt.Errorf("%w: %w: %d", audio.ErrUnsupported, ErrUnsupportedBitDepth, bitDepth)
	}

	pcm, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", audio.ErrMalformed, err)
	}

	// go-audio does not expose the sub-format, so float data in an
	// extensible container would otherwise decode as integers.
	if dec.WavAudioFormat == formatExtensible {
		sub, err := extensibleSubFormat(rs)
		if err != nil {
			return nil, fmt.Errorf("%w: %w: %w", audio.ErrMalformed, ErrInvalidLayout, err)
		}
		if sub != formatPCM {
			return nil, fmt.Errorf("%w: %w: sub-format %#x", audio.ErrUnsupported, ErrUnsupportedEncoding, sub)
		}
	}

	return &source{
		data:       pcm.Data,
		sampleRate: int(dec.SampleRate),
		channels:   int(dec.NumChans),
		bitDepth:   bitDepth,
	}, nil
}

// extensibleSubFormat reads the format code from the first two bytes of the
// sub-format GUID in a WAVE_FORMAT_EXTENSIBLE fmt chunk.
func extensibleSubFormat(rs io.ReadSeeker) (uint16, error) {
	if _, err := rs.Seek(12, io.SeekStart); err != nil {
		return 0, err
	}

	var hdr [8]byte
	for {
		if _, err := io.ReadFull(rs, hdr[:]); err != nil {
			return 0, fmt.Errorf("fmt chunk not found: %w", err)
		}
		size := int64(binary.LittleEndian.Uint32(hdr[4:]))

		if string(hdr[:4]) != "fmt " {
			// Chunks are padded to an even length.
			if _, err := rs.Seek(size+size%2, io.SeekCurrent); err != nil {
				return 0, err
			}
			continue
		}

		if size < 40 {
			return 0, fmt.Errorf("extensible fmt chunk is %d bytes, want 40", size)
		}

		body := make([]byte, 40)
		if _, err := io.ReadFull(rs, body); err != nil {
			return 0, err
		}

		return binary.LittleEndian.Uint16(body[24:26]), nil
	}
}
