// SPDX-License-Identifier: EPL-2.0

// Package catalog holds the fixed music tracks, voices and speaking styles
// offered to callers.
package catalog

import (
	"net/url"
	"strings"
)

// NoMusic is the track id that selects a voice-only clip.
const NoMusic = "none"

type Track struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url,omitempty"`
}

var tracks = []Track{
	{ID: NoMusic, Name: "No Music"},
	{ID: "cinematic", Name: "Cinematic", URL: "https://www.soundhelix.com/examples/mp3/SoundHelix-Song-1.mp3"},
	{ID: "lofi", Name: "Lo-Fi Chill", URL: "https://www.soundhelix.com/examples/mp3/SoundHelix-Song-2.mp3"},
	{ID: "corporate", Name: "Corporate", URL: "https://www.soundhelix.com/examples/mp3/SoundHelix-Song-3.mp3"},
	{ID: "upbeat", Name: "Upbeat Pop", URL: "https://www.soundhelix.com/examples/mp3/SoundHelix-Song-4.mp3"},
	{ID: "ambient", Name: "Ambient", URL: "https://www.soundhelix.com/examples/mp3/SoundHelix-Song-8.mp3"},
}

// Tracks returns a copy of the catalog, NoMusic first.
func Tracks() []Track {
	return append([]Track(nil), tracks...)
}

// Lookup finds a track by id, case-insensitively.
func Lookup(id string) (Track, bool) {
	for _, t := range tracks {
		if strings.EqualFold(t.ID, id) {
			return t, true
		}
	}

	return Track{}, false
}

// ResolveMusic turns a track id or a direct reference into a location for
// the fetcher. An empty result means no music. Unknown ids that do not
// look like URLs or paths are returned with ok == false.
func ResolveMusic(idOrRef string) (ref string, ok bool) {
	idOrRef = strings.TrimSpace(idOrRef)
	if idOrRef == "" {
		return "", true
	}

	if t, found := Lookup(idOrRef); found {
		return t.URL, true
	}

	if u, err := url.Parse(idOrRef); err == nil && u.Scheme != "" {
		return idOrRef, true
	}

	if strings.ContainsAny(idOrRef, "/.") {
		return idOrRef, true
	}

	return "", false
}

type Voice struct {
	ID          string `json:"id"`
	Description string `json:"description"`
}

var voices = []Voice{
	{ID: "Kore", Description: "Calm, professional and trustworthy"},
	{ID: "Puck", Description: "Energetic and youthful"},
	{ID: "Charon", Description: "Deep and authoritative"},
	{ID: "Fenrir", Description: "Bold and expressive"},
	{ID: "Zephyr", Description: "Soft and soothing"},
}

// DefaultVoice is used when a request names none.
const DefaultVoice = "Kore"

func Voices() []Voice {
	return append([]Voice(nil), voices...)
}

type Style struct {
	Label  string `json:"label"`
	Prompt string `json:"prompt"`
}

var styles = []Style{
	{Label: "Neutral", Prompt: "Say naturally: "},
	{Label: "Cheerful", Prompt: "Say cheerfully: "},
	{Label: "Serious", Prompt: "Say seriously: "},
	{Label: "Excited", Prompt: "Say excitedly: "},
	{Label: "Whispering", Prompt: "Whisper: "},
	{Label: "Angry", Prompt: "Say angrily: "},
}

func Styles() []Style {
	return append([]Style(nil), styles...)
}

// StylePrompt returns the prefix for an emotion label, case-insensitively.
// Unknown labels get no prefix.
func StylePrompt(label string) string {
	for _, s := range styles {
		if strings.EqualFold(s.Label, label) {
			return s.Prompt
		}
	}

	return ""
}
