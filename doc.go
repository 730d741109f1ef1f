// SPDX-License-Identifier: EPL-2.0

// Package voxmix lays a synthesized voice over a looping music bed and
// returns a 16-bit PCM WAV clip behind a temporary handle.
//
// # Pipeline
//
// An Orchestrator runs one clip at a time through four stages:
//
//	fetch   both assets concurrently (fetch package)
//	decode  both assets concurrently (formats package)
//	render  one synchronous pass (mix package)
//	encode  canonical 44-byte-header WAV (formats/wav)
//
// The result is stored in a blob.Store. Callers own the handle and must
// release it with Orchestrator.Release once the clip has been served.
//
// # Fallback
//
// The speech path is fatal: if the voice cannot be synthesized, fetched or
// decoded there is nothing to return, and Mix fails with a *SpeechError.
//
// The music path is not. Any failure to fetch, decode, render or encode the
// mix degrades to a voice-only clip, and Result.Warning carries a
// *MixFailure whose Cause names the likely reason (forbidden, not found,
// network, malformed and so on). The warning text starts with "warning:" so
// it can be told apart from a hard error in logs and UIs.
//
// # Quick Start
//
//	orch := voxmix.New()
//	res, err := orch.Mix(ctx, voxmix.Request{
//	    Speech:    "speech.wav",
//	    Music:     "https://www.soundhelix.com/examples/mp3/SoundHelix-Song-2.mp3",
//	    MusicGain: voxmix.DefaultMusicGain,
//	})
//	if err != nil {
//	    return err
//	}
//	defer orch.Release(res.Output.URI)
//	if res.Warning != nil {
//	    log.Println(res.Warning)
//	}
//	os.WriteFile("out.wav", res.Output.Data, 0o644)
//
// Studio wraps the same flow behind a speech.Synthesizer, starting from text
// instead of a speech asset.
package voxmix
