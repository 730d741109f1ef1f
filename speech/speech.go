// SPDX-License-Identifier: EPL-2.0

// Package speech talks to the text-to-speech service that produces the
// voice track.
package speech

import (
	"bytes"
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/ik5/voxmix/formats/wav"
)

// Raw PCM responses carry no header; these apply when the media type has
// no rate or channels parameter.
const (
	DefaultPCMRate     = 24000
	DefaultPCMChannels = 1
)

var (
	ErrEmptyText = errors.New("text is empty")
	ErrSynthesis = errors.New("speech synthesis failed")
)

type Request struct {
	Text  string
	Voice string
	// StylePrompt is prepended to Text, e.g. "Say cheerfully: ".
	StylePrompt string
}

// Audio is an encoded speech clip.
type Audio struct {
	Data        []byte
	ContentType string
}

type Synthesizer interface {
	Synthesize(ctx context.Context, req Request) (*Audio, error)
}

// SynthesizerFunc adapts a function to Synthesizer.
type SynthesizerFunc func(ctx context.Context, req Request) (*Audio, error)

func (f SynthesizerFunc) Synthesize(ctx context.Context, req Request) (*Audio, error) {
	return f(ctx, req)
}

type payload struct {
	Text   string `json:"text"`
	Voice  string `json:"voice,omitempty"`
	Prompt string `json:"prompt,omitempty"`
}

// HTTPClient posts a JSON request to URL and expects audio back. Raw 16-bit
// PCM answers (audio/L16, audio/pcm) are wrapped into WAV so the result is
// always a self-describing container.
type HTTPClient struct {
	URL    string
	APIKey string
	Client *http.Client
	// MaxBytes caps the response; zero means unlimited.
	MaxBytes int64
}

func NewHTTPClient(url, apiKey string) *HTTPClient {
	return &HTTPClient{URL: url, APIKey: apiKey, Client: &http.Client{}}
}

func (c *HTTPClient) Synthesize(ctx context.Context, req Request) (*Audio, error) {
	if strings.TrimSpace(req.Text) == "" {
		return nil, ErrEmptyText
	}

	body, err := json.Marshal(payload{
		Text:   req.StylePrompt + req.Text,
		Voice:  req.Voice,
		Prompt: req.StylePrompt,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSynthesis, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "audio/*")
	if c.APIKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.APIKey)
	}

	client := c.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSynthesis, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w: service returned status %d: %s", ErrSynthesis, resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	var r io.Reader = resp.Body
	if c.MaxBytes > 0 {
		r = io.LimitReader(resp.Body, c.MaxBytes)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: reading audio: %w", ErrSynthesis, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty audio", ErrSynthesis)
	}

	return normalize(data, resp.Header.Get("Content-Type"))
}

// normalize wraps headerless PCM into WAV and passes anything else through.
func normalize(data []byte, contentType string) (*Audio, error) {
	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return &Audio{Data: data, ContentType: contentType}, nil
	}

	switch strings.ToLower(mediaType) {
	case "audio/l16", "audio/pcm":
	default:
		return &Audio{Data: data, ContentType: mediaType}, nil
	}

	rate := paramInt(params, "rate", DefaultPCMRate)
	channels := paramInt(params, "channels", DefaultPCMChannels)

	// The payload is little-endian signed 16-bit; a dangling odd byte is dropped.
	samples := make([]int16, len(data)/2)
	for i := range samples {
		samples[i] = int16(binary.LittleEndian.Uint16(data[2*i:]))
	}
	samples = samples[:len(samples)-len(samples)%channels]

	var out bytes.Buffer
	if err := wav.WriteWAV16(&out, rate, channels, samples); err != nil {
		return nil, fmt.Errorf("%w: wrapping pcm: %w", ErrSynthesis, err)
	}

	return &Audio{Data: out.Bytes(), ContentType: "audio/wav"}, nil
}

func paramInt(params map[string]string, key string, def int) int {
	v, err := strconv.Atoi(params[key])
	if err != nil || v <= 0 {
		return def
	}
	return v
}
