// SPDX-License-Identifier: EPL-2.0

package audio

// ChannelMap tells which source channel feeds each of dst output channels,
// with -1 for an output channel that stays silent.
//
// Mono feeds the first two outputs (left and right). Wider sources map
// channel for channel; outputs beyond the source width stay silent and source
// channels beyond dst are dropped.
func ChannelMap(src, dst int) []int {
	m := make([]int, dst)
	for i := range m {
		switch {
		case src == 1 && i < 2:
			m[i] = 0
		case i < src:
			m[i] = i
		default:
			m[i] = -1
		}
	}

	return m
}

// Upmix returns b widened to channels outputs following ChannelMap. Mono
// channel data is shared, not copied. When b already has channels or more,
// it is returned as is.
func Upmix(b *Buffer, channels int) *Buffer {
	if b.Channels() >= channels {
		return b
	}

	out := &Buffer{SampleRate: b.SampleRate, Data: make([][]float32, channels)}
	frames := b.Frames()
	for i, src := range ChannelMap(b.Channels(), channels) {
		if src < 0 {
			out.Data[i] = make([]float32, frames)
			continue
		}
		out.Data[i] = b.Data[src]
	}

	return out
}
