// SPDX-License-Identifier: EPL-2.0

package voxmix

import (
	"errors"
	"fmt"

	"github.com/ik5/voxmix/audio"
	"github.com/ik5/voxmix/fetch"
)

// Stage names the pipeline step an error came from.
type Stage string

const (
	StageSynthesize Stage = "synthesize"
	StageFetch      Stage = "fetch"
	StageDecode     Stage = "decode"
	StageRender     Stage = "render"
	StageEncode     Stage = "encode"
)

var (
	// ErrNoSpeech is returned when a request names no speech asset.
	ErrNoSpeech = errors.New("no speech asset")

	// ErrUnknownTrack is returned by Studio for a track id that is neither
	// in the catalog nor a usable reference.
	ErrUnknownTrack = errors.New("unknown music track")
)

// SpeechError is a fatal failure on the speech path.
type SpeechError struct {
	Stage Stage
	Err   error
}

func (e *SpeechError) Error() string {
	return fmt.Sprintf("speech %s failed: %v", e.Stage, e.Err)
}

func (e *SpeechError) Unwrap() error { return e.Err }

// WarningPrefix starts every MixFailure message.
const WarningPrefix = "warning: "

// MixFailure reports that the music could not be mixed in. It is never
// returned as an error by Mix; it rides along in Result.Warning next to a
// valid voice-only clip.
type MixFailure struct {
	Stage Stage
	// Ref is the music reference that was requested.
	Ref string
	Err error
}

func (f *MixFailure) Error() string {
	return fmt.Sprintf("%smusic mixing failed (%s), using voice-only output: %v", WarningPrefix, f.Cause(), f.Err)
}

func (f *MixFailure) Unwrap() error { return f.Err }

// Cause is a short label for the probable reason, suitable for a metric
// label or a UI hint.
func (f *MixFailure) Cause() string {
	var fe *fetch.Error
	if errors.As(f.Err, &fe) {
		if fe.Reason == fetch.Other && fe.Status != 0 {
			return fmt.Sprintf("http %d", fe.Status)
		}
		return fe.Reason.String()
	}

	switch {
	case errors.Is(f.Err, audio.ErrUnsupported):
		return "unsupported"
	case errors.Is(f.Err, audio.ErrMalformed):
		return "malformed"
	}

	return string(f.Stage)
}
