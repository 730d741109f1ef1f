// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var (
	// ErrMalformed covers broken containers and truncated streams.
	ErrMalformed = errors.New("malformed audio stream")

	// ErrUnsupported covers valid containers carrying a codec or layout
	// this package cannot decode.
	ErrUnsupported = errors.New("unsupported audio format")

	// ErrUnknownFormat is returned when no container signature matches.
	ErrUnknownFormat = errors.New("unrecognized container signature")

	// ErrInvalidBuffer is returned by Buffer.Validate.
	ErrInvalidBuffer = errors.New("invalid PCM buffer")
)
