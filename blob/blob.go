// SPDX-License-Identifier: EPL-2.0

// Package blob keeps encoded clips in memory behind temporary handles.
//
// A handle stays valid until it is released. Nothing expires on its own, so
// every Put must eventually be matched by a Release.
package blob

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Scheme prefixes every handle URI.
const Scheme = "blob:voxmix/"

// ErrBadHandle is returned by ParseURI for anything that is not a handle.
var ErrBadHandle = errors.New("not a blob handle")

// Handle identifies a stored blob.
type Handle struct {
	ID  uuid.UUID
	URI string
}

// Blob is an immutable byte payload with its media type.
type Blob struct {
	Handle
	ContentType string
	Data        []byte
}

// Size is the payload length in bytes.
func (b *Blob) Size() int { return len(b.Data) }

// ParseURI accepts either a full "blob:voxmix/<uuid>" URI or a bare uuid.
func ParseURI(s string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimPrefix(s, Scheme))
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %q", ErrBadHandle, s)
	}

	return id, nil
}

func newHandle(id uuid.UUID) Handle {
	return Handle{ID: id, URI: Scheme + id.String()}
}

// Store is a concurrency-safe map of live blobs.
type Store struct {
	mu    sync.RWMutex
	blobs map[uuid.UUID]*Blob
}

func NewStore() *Store {
	return &Store{blobs: make(map[uuid.UUID]*Blob)}
}

// Put stores data under a fresh handle. The store keeps data as is, so the
// caller must not modify it afterwards.
func (s *Store) Put(data []byte, contentType string) *Blob {
	b := &Blob{
		Handle:      newHandle(uuid.New()),
		ContentType: contentType,
		Data:        data,
	}

	s.mu.Lock()
	s.blobs[b.ID] = b
	s.mu.Unlock()

	return b
}

// Get looks a blob up by URI or bare id.
func (s *Store) Get(uriOrID string) (*Blob, bool) {
	id, err := ParseURI(uriOrID)
	if err != nil {
		return nil, false
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.blobs[id]
	return b, ok
}

// Release drops a blob. It reports whether the handle was live; releasing
// twice is harmless.
func (s *Store) Release(uriOrID string) bool {
	id, err := ParseURI(uriOrID)
	if err != nil {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.blobs[id]; !ok {
		return false
	}
	delete(s.blobs, id)

	return true
}

// Len is the number of live blobs.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.blobs)
}
