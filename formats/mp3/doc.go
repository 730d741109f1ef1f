// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MPEG-1/2 Layer III audio with
// github.com/hajimehoshi/go-mp3.
//
// go-mp3 always produces 16-bit stereo at the stream's sample rate, so the
// returned audio.Source reports two channels even for mono files. Music
// beds in the track catalog are MP3, which makes this the decoder used on
// the music path.
//
//	src, err := mp3.Decoder{}.Decode(bytes.NewReader(data))
//	if err != nil {
//	    // errors.Is(err, audio.ErrMalformed)
//	}
//	defer src.Close()
//	buf, err := audio.ReadAll(src)
//
// Frames that fail to decode mid-stream surface from ReadSamples wrapped in
// audio.ErrMalformed.
package mp3
