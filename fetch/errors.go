// SPDX-License-Identifier: EPL-2.0

package fetch

import (
	"errors"
	"fmt"
)

// Reason classifies a failed fetch.
type Reason int

const (
	Other Reason = iota
	NotFound
	Forbidden
	Network
)

func (r Reason) String() string {
	switch r {
	case NotFound:
		return "not found"
	case Forbidden:
		return "forbidden"
	case Network:
		return "network"
	default:
		return "other"
	}
}

// ForbiddenHint is shown for 403 responses. Hosts that block hotlinking do
// so consistently, so retrying the same track does not help.
const ForbiddenHint = "provider is blocking direct access; choose another track"

// Sentinels matched by errors.Is against any *Error with the same Reason.
var (
	ErrNotFound  = errors.New("asset not found")
	ErrForbidden = errors.New("asset forbidden")
	ErrNetwork   = errors.New("network failure")
	ErrOther     = errors.New("fetch failed")

	// ErrTooLarge is wrapped by an Other failure when an asset exceeds the
	// fetcher's size cap.
	ErrTooLarge = errors.New("asset too large")
)

// Error is the only error type fetchers return.
type Error struct {
	Reason Reason
	// Status and StatusText are set for HTTP responses.
	Status     int
	StatusText string
	Ref        string
	Err        error
}

func (e *Error) Error() string {
	msg := "fetch " + e.Ref + ": "

	switch {
	case e.Reason == Forbidden && e.Status != 0:
		msg += fmt.Sprintf("forbidden (%d): %s", e.Status, ForbiddenHint)
	case e.Reason == Forbidden:
		msg += "forbidden: " + ForbiddenHint
	case e.Reason == Other && e.Status != 0 && e.Err == nil:
		msg += fmt.Sprintf("http %d %s", e.Status, e.StatusText)
	case e.Status != 0:
		msg += fmt.Sprintf("%s (%d)", e.Reason, e.Status)
	default:
		msg += e.Reason.String()
	}

	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}

	return msg
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.Reason == NotFound
	case ErrForbidden:
		return e.Reason == Forbidden
	case ErrNetwork:
		return e.Reason == Network
	case ErrOther:
		return e.Reason == Other
	}

	return false
}
