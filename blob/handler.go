// SPDX-License-Identifier: EPL-2.0

package blob

import (
	"net/http"
	"strconv"
)

// Handler serves GET /{id} with the stored bytes and DELETE /{id} to release
// a blob. Mount it under a prefix with http.StripPrefix.
func Handler(store *Store) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{id}", func(w http.ResponseWriter, r *http.Request) {
		b, ok := store.Get(r.PathValue("id"))
		if !ok {
			http.NotFound(w, r)
			return
		}

		w.Header().Set("Content-Type", b.ContentType)
		w.Header().Set("Content-Length", strconv.Itoa(b.Size()))
		w.Header().Set("Cache-Control", "no-store")
		w.Write(b.Data)
	})

	mux.HandleFunc("DELETE /{id}", func(w http.ResponseWriter, r *http.Request) {
		if !store.Release(r.PathValue("id")) {
			http.NotFound(w, r)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	})

	return mux
}
