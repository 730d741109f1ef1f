// SPDX-License-Identifier: EPL-2.0

package fetch

import (
	"context"

	"github.com/ik5/voxmix/blob"
)

// Blob resolves blob: handles from a local store. It is how freshly
// synthesized speech reaches the mixer without leaving the process.
type Blob struct {
	Store *blob.Store
}

func (b Blob) Fetch(ctx context.Context, ref string) (*Asset, error) {
	if err := ctx.Err(); err != nil {
		return nil, &Error{Reason: Network, Ref: ref, Err: err}
	}

	if _, err := blob.ParseURI(ref); err != nil {
		return nil, &Error{Reason: Other, Ref: ref, Err: err}
	}

	stored, ok := b.Store.Get(ref)
	if !ok {
		return nil, &Error{Reason: NotFound, Ref: ref}
	}

	return &Asset{Ref: ref, Data: stored.Data, ContentType: stored.ContentType}, nil
}
