// SPDX-License-Identifier: EPL-2.0

package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// HTTP fetches http and https references. It sends no cookies or other
// credentials, so a host sees the same request a cross-origin page would
// make.
type HTTP struct {
	Client *http.Client
	// MaxBytes caps the body; zero means DefaultMaxBytes.
	MaxBytes int64
	// UserAgent is sent when set.
	UserAgent string
}

func NewHTTP(maxBytes int64) *HTTP {
	return &HTTP{Client: &http.Client{}, MaxBytes: maxBytes}
}

func (h *HTTP) Fetch(ctx context.Context, ref string) (*Asset, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ref, nil)
	if err != nil {
		return nil, &Error{Reason: Other, Ref: ref, Err: err}
	}
	req.Header.Set("Accept", "audio/*")
	if h.UserAgent != "" {
		req.Header.Set("User-Agent", h.UserAgent)
	}

	client := h.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, &Error{Reason: Network, Ref: ref, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain a little so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4<<10))
		return nil, statusError(ref, resp)
	}

	data, err := readCapped(resp.Body, h.limit())
	if err != nil {
		e := &Error{Reason: Network, Ref: ref, Err: err}
		if errors.Is(err, ErrTooLarge) {
			e.Reason = Other
		}
		return nil, e
	}

	return &Asset{Ref: ref, Data: data, ContentType: resp.Header.Get("Content-Type")}, nil
}

func (h *HTTP) limit() int64 {
	if h.MaxBytes > 0 {
		return h.MaxBytes
	}
	return DefaultMaxBytes
}

func statusError(ref string, resp *http.Response) *Error {
	e := &Error{
		Reason:     Other,
		Status:     resp.StatusCode,
		StatusText: http.StatusText(resp.StatusCode),
		Ref:        ref,
	}

	switch resp.StatusCode {
	case http.StatusForbidden:
		e.Reason = Forbidden
	case http.StatusNotFound, http.StatusGone:
		e.Reason = NotFound
	}

	return e
}

func readCapped(r io.Reader, limit int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, fmt.Errorf("reading body: %w", err)
	}

	if int64(len(data)) > limit {
		return nil, ErrTooLarge
	}

	return data, nil
}
