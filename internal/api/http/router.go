package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	ilog "github.com/corekv/corekv/internal/log"
	"github.com/corekv/corekv/internal/store"
)

// NewRouter builds the command-layer HTTP surface fronting st: SET/GET/
// DEL/EXPIRE/PERSIST/TTL/INCR against st's facade, plus /health. This is
// the thin, non-RESP command dispatch spec.md §1 places out of scope for
// the store core itself.
func NewRouter(st *store.Store, logger ilog.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(RecoverMiddleware())
	r.Use(RequestIDMiddleware())
	r.Use(AccessLog(logger))

	r.Get("/health", healthHandler)

	h := &kvHandler{st: st}
	h.mount(r)

	return r
}
