// SPDX-License-Identifier: EPL-2.0

package fetch

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"mime"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// File reads local paths and file:// URLs.
type File struct {
	// MaxBytes caps the file size; zero means DefaultMaxBytes.
	MaxBytes int64
}

func (f File) Fetch(ctx context.Context, ref string) (*Asset, error) {
	if err := ctx.Err(); err != nil {
		return nil, &Error{Reason: Network, Ref: ref, Err: err}
	}

	path := ref
	if strings.HasPrefix(ref, "file:") {
		u, err := url.Parse(ref)
		if err != nil {
			return nil, &Error{Reason: Other, Ref: ref, Err: err}
		}
		path = u.Path
	}

	fh, err := os.Open(path)
	if err != nil {
		return nil, fileError(ref, err)
	}
	defer fh.Close()

	limit := f.MaxBytes
	if limit <= 0 {
		limit = DefaultMaxBytes
	}

	data, err := readCapped(fh, limit)
	if err != nil {
		if errors.Is(err, ErrTooLarge) {
			return nil, &Error{Reason: Other, Ref: ref, Err: err}
		}
		return nil, fileError(ref, err)
	}

	return &Asset{Ref: ref, Data: data, ContentType: mime.TypeByExtension(filepath.Ext(path))}, nil
}

func fileError(ref string, err error) *Error {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return &Error{Reason: NotFound, Ref: ref, Err: err}
	case errors.Is(err, fs.ErrPermission):
		return &Error{Reason: Forbidden, Ref: ref, Err: err}
	case errors.Is(err, io.ErrUnexpectedEOF):
		return &Error{Reason: Network, Ref: ref, Err: err}
	default:
		return &Error{Reason: Other, Ref: ref, Err: err}
	}
}
