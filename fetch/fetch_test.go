// SPDX-License-Identifier: EPL-2.0

package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/ik5/voxmix/blob"
)

func TestFile_Fetch(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "speech.wav")
	if err := os.WriteFile(path, []byte("RIFF"), 0o600); err != nil {
		t.Fatal(err)
	}

	for _, ref := range []string{path, "file://" + path} {
		asset, err := File{}.Fetch(context.Background(), ref)
		if err != nil {
			t.Fatalf("Fetch(%q) error = %v", ref, err)
		}
		if string(asset.Data) != "RIFF" || asset.Ref != ref {
			t.Errorf("Fetch(%q) = %+v", ref, asset)
		}
	}

	_, err := File{}.Fetch(context.Background(), filepath.Join(dir, "missing.wav"))
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Fetch(missing) error = %v, want ErrNotFound", err)
	}

	_, err = File{MaxBytes: 2}.Fetch(context.Background(), path)
	if !errors.Is(err, ErrTooLarge) {
		t.Errorf("Fetch(over cap) error = %v, want ErrTooLarge", err)
	}
}

func TestBlob_Fetch(t *testing.T) {
	t.Parallel()

	store := blob.NewStore()
	h := store.Put([]byte("speech"), "audio/wav")
	f := Blob{Store: store}

	asset, err := f.Fetch(context.Background(), h.URI)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if string(asset.Data) != "speech" || asset.ContentType != "audio/wav" {
		t.Errorf("Fetch() = %+v", asset)
	}

	store.Release(h.URI)
	if _, err := f.Fetch(context.Background(), h.URI); !errors.Is(err, ErrNotFound) {
		t.Errorf("Fetch(released) error = %v, want ErrNotFound", err)
	}

	if _, err := f.Fetch(context.Background(), "blob:voxmix/junk"); !errors.Is(err, ErrOther) {
		t.Errorf("Fetch(junk) error = %v, want ErrOther", err)
	}
}

func TestMux_Routing(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("remote"))
	}))
	defer srv.Close()

	store := blob.NewStore()
	h := store.Put([]byte("local"), "audio/wav")

	path := filepath.Join(t.TempDir(), "a.wav")
	if err := os.WriteFile(path, []byte("file"), 0o600); err != nil {
		t.Fatal(err)
	}

	mux := NewMux()
	mux.Handle("http", NewHTTP(0))
	mux.Handle("blob", Blob{Store: store})
	mux.Handle("file", File{})

	tests := []struct {
		ref  string
		want string
	}{
		{srv.URL, "remote"},
		{h.URI, "local"},
		{path, "file"},
		{"file://" + path, "file"},
	}

	for _, tt := range tests {
		asset, err := mux.Fetch(context.Background(), tt.ref)
		if err != nil {
			t.Errorf("Fetch(%q) error = %v", tt.ref, err)
			continue
		}
		if string(asset.Data) != tt.want {
			t.Errorf("Fetch(%q) = %q, want %q", tt.ref, asset.Data, tt.want)
		}
	}

	if _, err := mux.Fetch(context.Background(), "ftp://example.com/a.mp3"); !errors.Is(err, ErrOther) {
		t.Errorf("Fetch(ftp) error = %v, want ErrOther", err)
	}
}

func TestFetcherFunc(t *testing.T) {
	t.Parallel()

	f := FetcherFunc(func(ctx context.Context, ref string) (*Asset, error) {
		return &Asset{Ref: ref}, nil
	})

	asset, err := f.Fetch(context.Background(), "x")
	if err != nil || asset.Ref != "x" {
		t.Errorf("Fetch() = %+v, %v", asset, err)
	}
}
