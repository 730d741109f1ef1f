// SPDX-License-Identifier: EPL-2.0

// Package fetch retrieves raw encoded audio by reference.
//
// A reference is a URL or a local path. Fetchers never decode; they return
// bytes or a classified *Error. The HTTP fetcher is the one that meets
// third-party hosts, so its status mapping is the part callers rely on:
//
//	403             -> Forbidden, with ForbiddenHint in the message
//	404, 410        -> NotFound
//	other non-2xx   -> Other, with the status code and text
//	transport error -> Network (DNS, refused connection, cancelled context)
package fetch

import (
	"context"
	"fmt"
	"net/url"
	"strings"
)

// DefaultMaxBytes caps a single asset.
const DefaultMaxBytes = 64 << 20

// Asset is one fetched, still encoded, payload.
type Asset struct {
	Ref         string
	Data        []byte
	ContentType string
}

// Fetcher retrieves the asset behind ref.
type Fetcher interface {
	Fetch(ctx context.Context, ref string) (*Asset, error)
}

// FetcherFunc adapts a function to Fetcher.
type FetcherFunc func(ctx context.Context, ref string) (*Asset, error)

func (f FetcherFunc) Fetch(ctx context.Context, ref string) (*Asset, error) {
	return f(ctx, ref)
}

// Mux routes by URL scheme. A reference without a scheme is looked up under
// "file".
type Mux struct {
	schemes map[string]Fetcher
}

func NewMux() *Mux {
	return &Mux{schemes: make(map[string]Fetcher)}
}

// Handle registers f for scheme, replacing any previous fetcher.
func (m *Mux) Handle(scheme string, f Fetcher) {
	m.schemes[strings.ToLower(scheme)] = f
}

func (m *Mux) Fetch(ctx context.Context, ref string) (*Asset, error) {
	scheme := schemeOf(ref)

	f, ok := m.schemes[scheme]
	if !ok {
		return nil, &Error{Reason: Other, Ref: ref, Err: fmt.Errorf("no fetcher for scheme %q", scheme)}
	}

	return f.Fetch(ctx, ref)
}

func schemeOf(ref string) string {
	u, err := url.Parse(ref)
	if err != nil || u.Scheme == "" {
		return "file"
	}

	return strings.ToLower(u.Scheme)
}
