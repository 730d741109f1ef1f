// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sync"
)

// Container format keys used by the Registry.
const (
	FormatWAV  = "wav"
	FormatMP3  = "mp3"
	FormatOgg  = "ogg"
	FormatAIFF = "aiff"
)

type Source interface {
	// SampleRate of the PCM stream in Hz.
	SampleRate() int
	// Channels count (e.g., 1=mono, 2=stereo).
	Channels() int
	// ReadSamples fills dst with interleaved float32 samples in [-1,1].
	// Returns number of float32 values written (not frames). When n == 0 with err == io.EOF, the stream is finished.
	ReadSamples(dst []float32) (n int, err error)

	BufSize() int

	// Close releases any resources.
	Close() error
}

// Decoder constructs a Source from an input reader.
type Decoder interface {
	Decode(r io.Reader) (Source, error)
}

// Registry for decoders by format key (e.g., "wav", "mp3", "ogg").
type Registry struct {
	codecs map[string]Decoder

	mtx *sync.Mutex
}

func NewRegistry() *Registry {
	return &Registry{
		codecs: make(map[string]Decoder),
		mtx:    &sync.Mutex{},
	}
}

func (r *Registry) Register(format string, d Decoder) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.codecs[format] = d
}

func (r *Registry) Get(format string) (Decoder, bool) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	d, ok := r.codecs[format]
	return d, ok
}

// Sniff identifies the container of an encoded asset from its leading bytes.
func Sniff(data []byte) (string, bool) {
	switch {
	case len(data) >= 12 && string(data[0:4]) == "RIFF" && string(data[8:12]) == "WAVE":
		return FormatWAV, true
	case len(data) >= 4 && string(data[0:4]) == "OggS":
		return FormatOgg, true
	case len(data) >= 12 && string(data[0:4]) == "FORM" &&
		(string(data[8:12]) == "AIFF" || string(data[8:12]) == "AIFC"):
		return FormatAIFF, true
	case len(data) >= 3 && string(data[0:3]) == "ID3":
		return FormatMP3, true
	case len(data) >= 2 && data[0] == 0xFF && data[1]&0xE0 == 0xE0:
		// MPEG audio frame sync
		return FormatMP3, true
	}

	return "", false
}

// DecodeBytes sniffs the container, decodes the whole asset and releases the
// decoder before returning. Every failure wraps ErrMalformed or ErrUnsupported.
func (r *Registry) DecodeBytes(data []byte) (*Buffer, error) {
	format, ok := Sniff(data)
	if !ok {
		return nil, fmt.Errorf("%w: %w", ErrUnsupported, ErrUnknownFormat)
	}

	dec, ok := r.Get(format)
	if !ok {
		return nil, fmt.Errorf("%w: no decoder registered for %q", ErrUnsupported, format)
	}

	src, err := dec.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, classify(format, err)
	}
	defer src.Close()

	buf, err := ReadAll(src)
	if err != nil {
		return nil, classify(format, err)
	}

	return buf, nil
}

func classify(format string, err error) error {
	if errors.Is(err, ErrMalformed) || errors.Is(err, ErrUnsupported) {
		return fmt.Errorf("%s: %w", format, err)
	}

	return fmt.Errorf("%s: %w: %w", format, ErrMalformed, err)
}
