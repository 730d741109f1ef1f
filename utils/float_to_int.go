// SPDX-License-Identifier: EPL-2.0

package utils

import "math"

// Float32ToInt16 quantizes a sample to signed 16-bit PCM.
//
// The sample is hard-clamped to [-1, 1] first. Negative values scale by
// 32768 and positive values by 32767 so both ends of the int16 range are
// reachable, and the product is rounded half away from zero. NaN maps to 0.
func Float32ToInt16(x float32) int16 {
	v := float64(x)
	switch {
	case v != v:
		return 0
	case v > 1:
		v = 1
	case v < -1:
		v = -1
	}

	if v < 0 {
		return int16(math.Round(v * 32768.0))
	}

	return int16(math.Round(v * 32767.0))
}

// Int16ToFloat32 is the inverse of Float32ToInt16 on the int16 grid:
// Float32ToInt16(Int16ToFloat32(s)) == s for every s.
func Int16ToFloat32(s int16) float32 {
	if s < 0 {
		return float32(s) / 32768.0
	}

	return float32(s) / 32767.0
}

// IntToFloat32 normalizes a signed integer sample of the given bit depth
// with the same asymmetric rule: negatives divide by 2^(bits-1), positives
// by 2^(bits-1)-1.
func IntToFloat32(v, bits int) float32 {
	full := int64(1) << (bits - 1)
	if v < 0 {
		return float32(float64(v) / float64(full))
	}

	return float32(float64(v) / float64(full-1))
}
