// SPDX-License-Identifier: EPL-2.0

package voxmix

import (
	"context"
	"fmt"
	"strings"

	"github.com/ik5/voxmix/catalog"
	"github.com/ik5/voxmix/speech"
)

// GenerateRequest describes a clip from text. Track is a catalog id
// ("lofi", "none") or a direct music reference. MusicGain is clamped with
// ClampMusicGain.
type GenerateRequest struct {
	Text      string
	Voice     string
	Emotion   string
	Track     string
	MusicGain float64
}

// Studio turns text into a finished clip: synthesize, park the speech in
// the orchestrator's store, mix, and drop the intermediate speech blob.
type Studio struct {
	orch  *Orchestrator
	synth speech.Synthesizer
}

func NewStudio(orch *Orchestrator, synth speech.Synthesizer) *Studio {
	return &Studio{orch: orch, synth: synth}
}

func (s *Studio) Generate(ctx context.Context, req GenerateRequest) (*Result, error) {
	if strings.TrimSpace(req.Text) == "" {
		return nil, &SpeechError{Stage: StageSynthesize, Err: speech.ErrEmptyText}
	}

	music, ok := catalog.ResolveMusic(req.Track)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTrack, req.Track)
	}

	voice := req.Voice
	if voice == "" {
		voice = catalog.DefaultVoice
	}

	clip, err := s.synth.Synthesize(ctx, speech.Request{
		Text:        req.Text,
		Voice:       voice,
		StylePrompt: catalog.StylePrompt(req.Emotion),
	})
	if err != nil {
		return nil, s.orch.fail(s.orch.logger, &SpeechError{Stage: StageSynthesize, Err: err})
	}

	parked := s.orch.store.Put(clip.Data, clip.ContentType)
	defer s.orch.store.Release(parked.URI)

	return s.orch.Mix(ctx, Request{
		Speech:    parked.URI,
		Music:     music,
		MusicGain: ClampMusicGain(req.MusicGain),
	})
}
