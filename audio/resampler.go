// SPDX-License-Identifier: EPL-2.0

package audio

// EdgeMode selects how the resampler reads past either end of the input.
type EdgeMode int

const (
	// EdgeClamp repeats the first and last frames.
	EdgeClamp EdgeMode = iota
	// EdgeWrap treats the input as one period of a loop, so the last output
	// frames interpolate towards the first input frames.
	EdgeWrap
)

// Resample converts b to dstRate using Catmull-Rom cubic interpolation.
//
// The output has round(frames * dstRate / srcRate) frames. Output frame j
// reads source position j * srcRate / dstRate, computed in integers so long
// clips do not accumulate drift. When the rates already match b is returned
// unchanged.
func Resample(b *Buffer, dstRate int, edge EdgeMode) *Buffer {
	if b.SampleRate == dstRate {
		return b
	}

	src, dst := int64(b.SampleRate), int64(dstRate)
	frames := int((int64(b.Frames())*dst + src/2) / src)

	out := NewBuffer(dstRate, b.Channels(), frames)
	for c, in := range b.Data {
		o := out.Data[c]
		for j := range o {
			pos := int64(j) * src
			i := int(pos / dst)
			x := float32(pos%dst) / float32(dst)

			o[j] = cubicInterpolate(
				frameAt(in, i-1, edge),
				frameAt(in, i, edge),
				frameAt(in, i+1, edge),
				frameAt(in, i+2, edge),
				x,
			)
		}
	}

	return out
}

func frameAt(s []float32, i int, edge EdgeMode) float32 {
	n := len(s)
	if edge == EdgeWrap {
		i %= n
		if i < 0 {
			i += n
		}
		return s[i]
	}

	return s[min(max(i, 0), n-1)]
}

// cubicInterpolate is a Catmull-Rom spline through y0..y3; x in [0, 1) is the
// fractional position between y1 and y2.
func cubicInterpolate(y0, y1, y2, y3, x float32) float32 {
	a0 := -0.5*y0 + 1.5*y1 - 1.5*y2 + 0.5*y3
	a1 := y0 - 2.5*y1 + 2*y2 - 0.5*y3
	a2 := -0.5*y0 + 0.5*y2
	a3 := y1

	return a0*x*x*x + a1*x*x + a2*x + a3
}
