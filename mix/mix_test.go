// SPDX-License-Identifier: EPL-2.0

package mix

import (
	"errors"
	"math"
	"slices"
	"testing"

	"github.com/ik5/voxmix/audio"
)

func tone(rate, channels, frames int, freq float64) *audio.Buffer {
	b := audio.NewBuffer(rate, channels, frames)
	for c := range b.Data {
		for f := range b.Data[c] {
			b.Data[c][f] = float32(0.5 * math.Sin(2*math.Pi*freq*float64(f)/float64(rate)+float64(c)))
		}
	}
	return b
}

func ramp(rate, channels, frames int) *audio.Buffer {
	b := audio.NewBuffer(rate, channels, frames)
	for c := range b.Data {
		for f := range b.Data[c] {
			b.Data[c][f] = float32(f+1) / float32(frames) * float32(c+1) / float32(channels)
		}
	}
	return b
}

// Speech 3s mono at 24 kHz over a 1s stereo bed at 44.1 kHz, gain 0.2.
func TestRender_LoopedResampledBed(t *testing.T) {
	t.Parallel()

	speech := tone(24000, 1, 72000, 220)
	music := tone(44100, 2, 44100, 330)

	out, err := Render(Request{Speech: speech, Music: music, MusicGain: 0.2})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	if out.SampleRate != 24000 || out.Channels() != 2 || out.Frames() != 72000 {
		t.Fatalf("got %d Hz, %d ch, %d frames, want 24000 Hz, 2 ch, 72000 frames",
			out.SampleRate, out.Channels(), out.Frames())
	}

	bed := audio.Resample(music, 24000, audio.EdgeWrap)
	if bed.Frames() != 24000 {
		t.Fatalf("bed frames = %d, want 24000", bed.Frames())
	}

	for c := range 2 {
		for f := range 72000 {
			want := speech.Data[0][f] + float32(0.2)*bed.Data[c][f%24000]
			if out.Data[c][f] != want {
				t.Fatalf("out[%d][%d] = %v, want %v", c, f, out.Data[c][f], want)
			}
		}
	}
}

func TestRender_Shape(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name                  string
		speechCh, musicCh     int
		speechRate, musicRate int
		speechFr, musicFr     int
		wantCh                int
	}{
		{"mono over mono", 1, 1, 24000, 24000, 1000, 300, 2},
		{"mono over stereo", 1, 2, 24000, 44100, 1000, 5000, 2},
		{"stereo over mono", 2, 1, 48000, 22050, 4800, 100, 2},
		{"stereo over stereo", 2, 2, 16000, 16000, 160, 16000, 2},
		{"mono over quad", 1, 4, 8000, 8000, 800, 800, 4},
		{"six over stereo", 6, 2, 48000, 44100, 480, 441, 6},
		{"empty speech", 1, 2, 24000, 44100, 0, 441, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			out, err := Render(Request{
				Speech:    ramp(tt.speechRate, tt.speechCh, tt.speechFr),
				Music:     ramp(tt.musicRate, tt.musicCh, tt.musicFr),
				MusicGain: 0.15,
			})
			if err != nil {
				t.Fatalf("Render() error = %v", err)
			}

			if out.Channels() != tt.wantCh {
				t.Errorf("Channels() = %d, want %d", out.Channels(), tt.wantCh)
			}
			if out.Frames() != tt.speechFr {
				t.Errorf("Frames() = %d, want %d", out.Frames(), tt.speechFr)
			}
			if out.SampleRate != tt.speechRate {
				t.Errorf("SampleRate = %d, want %d", out.SampleRate, tt.speechRate)
			}
			if err := out.Validate(); err != nil {
				t.Errorf("output invalid: %v", err)
			}
		})
	}
}

// The sample after the last bed frame must be the bed's first frame again.
func TestRender_LoopSeamIsContinuous(t *testing.T) {
	t.Parallel()

	speech := audio.NewBuffer(8000, 1, 25) // silent
	music := &audio.Buffer{SampleRate: 8000, Data: [][]float32{{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 1.0}}}

	out, err := Render(Request{Speech: speech, Music: music, MusicGain: 1})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	for c := range 2 {
		for f, got := range out.Data[c] {
			if want := music.Data[0][f%10]; got != want {
				t.Errorf("out[%d][%d] = %v, want %v", c, f, got, want)
			}
		}
	}
}

func TestRender_LongerMusicIsTruncated(t *testing.T) {
	t.Parallel()

	speech := audio.NewBuffer(8000, 2, 4)
	music := ramp(8000, 2, 100)

	out, err := Render(Request{Speech: speech, Music: music, MusicGain: 0.5})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	for c := range 2 {
		for f := range 4 {
			if want := 0.5 * music.Data[c][f]; out.Data[c][f] != want {
				t.Errorf("out[%d][%d] = %v, want %v", c, f, out.Data[c][f], want)
			}
		}
	}
}

func TestRender_ZeroGainEqualsSpeech(t *testing.T) {
	t.Parallel()

	speech := tone(24000, 1, 2400, 440)
	out, err := Render(Request{Speech: speech, Music: tone(44100, 2, 441, 100), MusicGain: 0})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	want := audio.Upmix(speech, 2)
	for c := range 2 {
		if !slices.Equal(out.Data[c], want.Data[c]) {
			t.Errorf("channel %d differs from speech", c)
		}
	}
}

func TestRender_NoClipping(t *testing.T) {
	t.Parallel()

	speech := &audio.Buffer{SampleRate: 8000, Data: [][]float32{{0.9, -0.9}}}
	music := &audio.Buffer{SampleRate: 8000, Data: [][]float32{{1, -1}}}

	out, err := Render(Request{Speech: speech, Music: music, MusicGain: 0.5})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	if out.Data[0][0] <= 1 || out.Data[0][1] >= -1 {
		t.Errorf("sums were limited: %v", out.Data[0])
	}
}

func TestRender_DoesNotModifyInputs(t *testing.T) {
	t.Parallel()

	speech := ramp(8000, 1, 50)
	music := ramp(16000, 2, 30)
	speechCopy := slices.Clone(speech.Data[0])
	musicCopy := slices.Clone(music.Data[1])

	if _, err := Render(Request{Speech: speech, Music: music, MusicGain: 0.3}); err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	if !slices.Equal(speech.Data[0], speechCopy) || !slices.Equal(music.Data[1], musicCopy) {
		t.Error("Render modified its inputs")
	}
}

func TestRender_EmptyMusic(t *testing.T) {
	t.Parallel()

	speech := ramp(8000, 1, 10)
	out, err := Render(Request{Speech: speech, Music: audio.NewBuffer(44100, 2, 0), MusicGain: 0.5})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	if !slices.Equal(out.Data[1], speech.Data[0]) {
		t.Errorf("empty bed changed the output: %v", out.Data[1])
	}
}

func TestRender_ContractViolations(t *testing.T) {
	t.Parallel()

	good := ramp(8000, 1, 10)

	tests := []struct {
		name string
		req  Request
	}{
		{"nil speech", Request{Music: good}},
		{"nil music", Request{Speech: good}},
		{"zero rate speech", Request{Speech: &audio.Buffer{Data: [][]float32{{0}}}, Music: good}},
		{"ragged music", Request{Speech: good, Music: &audio.Buffer{SampleRate: 8000, Data: [][]float32{{0, 1}, {0}}}}},
		{"no channels", Request{Speech: &audio.Buffer{SampleRate: 8000}, Music: good}},
		{"nan gain", Request{Speech: good, Music: good, MusicGain: math.NaN()}},
		{"negative gain", Request{Speech: good, Music: good, MusicGain: -0.1}},
		{"gain above one", Request{Speech: good, Music: good, MusicGain: 1.5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			out, err := Render(tt.req)
			if !errors.Is(err, ErrContractViolation) {
				t.Errorf("Render() error = %v, want ErrContractViolation", err)
			}
			if out != nil {
				t.Error("Render() returned a buffer on violation")
			}
		})
	}
}

func TestLoops(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		speech, music *audio.Buffer
		want          bool
	}{
		{"shorter music", audio.NewBuffer(24000, 1, 72000), audio.NewBuffer(44100, 2, 44100), true},
		{"equal duration", audio.NewBuffer(24000, 1, 24000), audio.NewBuffer(44100, 2, 44100), false},
		{"longer music", audio.NewBuffer(24000, 1, 24000), audio.NewBuffer(44100, 2, 44101), false},
		{"one frame short", audio.NewBuffer(8000, 1, 8000), audio.NewBuffer(16000, 1, 15999), true},
	}

	for _, tt := range tests {
		if got := Loops(tt.speech, tt.music); got != tt.want {
			t.Errorf("%s: Loops() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func BenchmarkRender_ThreeSecondClip(b *testing.B) {
	speech := tone(24000, 1, 72000, 220)
	music := tone(44100, 2, 44100, 330)
	req := Request{Speech: speech, Music: music, MusicGain: 0.15}

	b.ReportAllocs()

	for b.Loop() {
		if _, err := Render(req); err != nil {
			b.Fatal(err)
		}
	}
}
