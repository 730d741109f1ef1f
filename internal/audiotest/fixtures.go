// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"bytes"
	"encoding/binary"
	"math"
)

// WAV builds a canonical 44-byte-header WAV file around interleaved samples.
// bitsPerSample may be 8, 16, 24 or 32; samples are written as int16 values
// scaled to that depth (8-bit as unsigned).
func WAV(sampleRate, channels, bitsPerSample int, samples []int16) []byte {
	buf := new(bytes.Buffer)

	bytesPer := bitsPerSample / 8
	dataSize := uint32(len(samples) * bytesPer)

	buf.WriteString("RIFF")
	binary.Write(buf, binary.LittleEndian, 36+dataSize)
	buf.WriteString("WAVE")

	buf.WriteString("fmt ")
	binary.Write(buf, binary.LittleEndian, uint32(16))
	binary.Write(buf, binary.LittleEndian, uint16(1))
	binary.Write(buf, binary.LittleEndian, uint16(channels))
	binary.Write(buf, binary.LittleEndian, uint32(sampleRate))
	binary.Write(buf, binary.LittleEndian, uint32(sampleRate*channels*bytesPer))
	binary.Write(buf, binary.LittleEndian, uint16(channels*bytesPer))
	binary.Write(buf, binary.LittleEndian, uint16(bitsPerSample))

	buf.WriteString("data")
	binary.Write(buf, binary.LittleEndian, dataSize)

	for _, s := range samples {
		switch bitsPerSample {
		case 8:
			buf.WriteByte(byte(int(s>>8) + 128))
		case 24:
			v := int32(s) << 8
			buf.Write([]byte{byte(v), byte(v >> 8), byte(v >> 16)})
		case 32:
			binary.Write(buf, binary.LittleEndian, int32(s)<<16)
		default:
			binary.Write(buf, binary.LittleEndian, s)
		}
	}

	return buf.Bytes()
}

// WAV16 is WAV with 16-bit samples.
func WAV16(sampleRate, channels int, samples []int16) []byte {
	return WAV(sampleRate, channels, 16, samples)
}

// Tone returns interleaved int16 samples of a sine at freq Hz and amplitude
// amp (0..1), identical on every channel.
func Tone(sampleRate, channels, frames int, freq, amp float64) []int16 {
	out := make([]int16, frames*channels)
	for f := range frames {
		v := int16(math.Round(amp * 32767 * math.Sin(2*math.Pi*freq*float64(f)/float64(sampleRate))))
		for c := range channels {
			out[f*channels+c] = v
		}
	}

	return out
}

// Ramp returns interleaved int16 samples where frame f of channel c holds
// (f*channels+c) % 2000 - 1000, a pattern that makes misplaced frames obvious.
func Ramp(channels, frames int) []int16 {
	out := make([]int16, frames*channels)
	for i := range out {
		out[i] = int16(i%2000 - 1000)
	}

	return out
}
