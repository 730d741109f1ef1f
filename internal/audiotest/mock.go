// SPDX-License-Identifier: EPL-2.0

package audiotest

import "io"

// MockSource generates audio on demand. It implements audio.Source without
// importing the audio package so that package's own tests can use it.
type MockSource struct {
	sampleRate   int
	channels     int
	totalSamples int // frames to generate per channel
	generated    int
	waveform     func(sample int, channel int) float32

	// EndErr, when set, is returned instead of io.EOF once the frames run
	// out, simulating a truncated stream.
	EndErr error

	closed int
}

// NewMockSource creates a mock source producing totalSamples frames, each
// sample given by waveform(frame, channel).
func NewMockSource(sampleRate, channels, totalSamples int, waveform func(sample int, channel int) float32) *MockSource {
	return &MockSource{
		sampleRate:   sampleRate,
		channels:     channels,
		totalSamples: totalSamples,
		waveform:     waveform,
	}
}

func NewSilentSource(sampleRate, channels, totalSamples int) *MockSource {
	return NewConstantSource(sampleRate, channels, totalSamples, 0)
}

func NewConstantSource(sampleRate, channels, totalSamples int, value float32) *MockSource {
	return NewMockSource(sampleRate, channels, totalSamples, func(sample int, channel int) float32 {
		return value
	})
}

func (m *MockSource) SampleRate() int { return m.sampleRate }
func (m *MockSource) Channels() int   { return m.channels }
func (m *MockSource) BufSize() int    { return 4096 }

func (m *MockSource) Close() error {
	m.closed++
	return nil
}

// Closed reports how many times Close was called.
func (m *MockSource) Closed() int { return m.closed }

func (m *MockSource) end() error {
	if m.EndErr != nil {
		return m.EndErr
	}
	return io.EOF
}

func (m *MockSource) ReadSamples(dst []float32) (int, error) {
	if m.generated >= m.totalSamples {
		return 0, m.end()
	}

	framesToWrite := min(len(dst)/m.channels, m.totalSamples-m.generated)

	for frame := range framesToWrite {
		sampleIndex := m.generated + frame
		for ch := range m.channels {
			dst[frame*m.channels+ch] = m.waveform(sampleIndex, ch)
		}
	}

	m.generated += framesToWrite
	samplesWritten := framesToWrite * m.channels

	if m.generated >= m.totalSamples {
		return samplesWritten, m.end()
	}

	return samplesWritten, nil
}
