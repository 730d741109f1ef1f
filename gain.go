// SPDX-License-Identifier: EPL-2.0

package voxmix

import "math"

const (
	// DefaultMusicGain keeps the bed well under the voice.
	DefaultMusicGain = 0.15

	// MaxMusicGain is the top of the supported operating envelope.
	MaxMusicGain = 0.5
)

// ClampMusicGain limits a caller-supplied gain to [0, MaxMusicGain]. NaN
// becomes DefaultMusicGain.
func ClampMusicGain(g float64) float64 {
	if math.IsNaN(g) {
		return DefaultMusicGain
	}

	return min(max(g, 0), MaxMusicGain)
}

// unitGain is the orchestrator's own guard: the renderer accepts [0, 1]
// and anything outside is pinned rather than rejected.
func unitGain(g float64) float64 {
	if math.IsNaN(g) {
		return 0
	}

	return min(max(g, 0), 1)
}
