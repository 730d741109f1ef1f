// SPDX-License-Identifier: EPL-2.0

package speech

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ik5/voxmix/audio"
	"github.com/ik5/voxmix/formats/wav"
)

func TestHTTPClient_Synthesize(t *testing.T) {
	t.Parallel()

	requests := make(chan *http.Request, 1)
	bodies := make(chan payload, 1)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var p payload
		json.NewDecoder(r.Body).Decode(&p)
		requests <- r
		bodies <- p

		w.Header().Set("Content-Type", "audio/mpeg")
		w.Write([]byte("ID3 fake mp3"))
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, "secret")
	got, err := c.Synthesize(context.Background(), Request{Text: "Hello there", Voice: "Kore", StylePrompt: "Say cheerfully: "})
	if err != nil {
		t.Fatalf("Synthesize() error = %v", err)
	}

	if string(got.Data) != "ID3 fake mp3" || got.ContentType != "audio/mpeg" {
		t.Errorf("Synthesize() = %+v", got)
	}

	r := <-requests
	if r.Method != http.MethodPost || r.Header.Get("Authorization") != "Bearer secret" {
		t.Errorf("request %s with auth %q", r.Method, r.Header.Get("Authorization"))
	}

	p := <-bodies
	if p.Text != "Say cheerfully: Hello there" || p.Voice != "Kore" || p.Prompt != "Say cheerfully: " {
		t.Errorf("payload = %+v", p)
	}
}

func TestHTTPClient_RawPCM(t *testing.T) {
	t.Parallel()

	pcm := make([]byte, 8)
	for i, s := range []int16{0, 1000, -1000, 32767} {
		binary.LittleEndian.PutUint16(pcm[2*i:], uint16(s))
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "audio/L16;codec=pcm;rate=16000")
		w.Write(pcm)
	}))
	defer srv.Close()

	got, err := NewHTTPClient(srv.URL, "").Synthesize(context.Background(), Request{Text: "hi"})
	if err != nil {
		t.Fatalf("Synthesize() error = %v", err)
	}

	if got.ContentType != "audio/wav" || len(got.Data) != wav.HeaderSize+len(pcm) {
		t.Fatalf("Synthesize() = %s, %d bytes", got.ContentType, len(got.Data))
	}

	reg := audio.NewRegistry()
	reg.Register(audio.FormatWAV, wav.Decoder{})
	buf, err := reg.DecodeBytes(got.Data)
	if err != nil {
		t.Fatalf("DecodeBytes() error = %v", err)
	}

	if buf.SampleRate != 16000 || buf.Channels() != 1 || buf.Frames() != 4 {
		t.Errorf("decoded %d Hz, %d ch, %d frames", buf.SampleRate, buf.Channels(), buf.Frames())
	}
}

func TestHTTPClient_Errors(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/empty" {
			w.Header().Set("Content-Type", "audio/wav")
			return
		}
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := NewHTTPClient(srv.URL, "").Synthesize(context.Background(), Request{Text: "hi"})
	if !errors.Is(err, ErrSynthesis) || !strings.Contains(err.Error(), "429") || !strings.Contains(err.Error(), "quota exceeded") {
		t.Errorf("Synthesize() error = %v", err)
	}

	_, err = NewHTTPClient(srv.URL+"/empty", "").Synthesize(context.Background(), Request{Text: "hi"})
	if !errors.Is(err, ErrSynthesis) {
		t.Errorf("Synthesize(empty) error = %v, want ErrSynthesis", err)
	}

	_, err = NewHTTPClient(srv.URL, "").Synthesize(context.Background(), Request{Text: "   "})
	if !errors.Is(err, ErrEmptyText) {
		t.Errorf("Synthesize(blank) error = %v, want ErrEmptyText", err)
	}
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		contentType string
		data        []byte
		wantType    string
		wantLen     int
	}{
		{"wav passthrough", "audio/wav", []byte("RIFF"), "audio/wav", 4},
		{"unparseable type", "", []byte("abc"), "", 3},
		{"pcm default rate", "audio/pcm", []byte{1, 0, 2, 0}, "audio/wav", wav.HeaderSize + 4},
		{"odd byte dropped", "audio/pcm", []byte{1, 0, 2}, "audio/wav", wav.HeaderSize + 2},
		{"stereo partial frame dropped", "audio/L16; rate=8000; channels=2", []byte{1, 0, 2, 0, 3, 0}, "audio/wav", wav.HeaderSize + 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := normalize(tt.data, tt.contentType)
			if err != nil {
				t.Fatalf("normalize() error = %v", err)
			}
			if got.ContentType != tt.wantType || len(got.Data) != tt.wantLen {
				t.Errorf("normalize() = %q, %d bytes, want %q, %d", got.ContentType, len(got.Data), tt.wantType, tt.wantLen)
			}
		})
	}
}
