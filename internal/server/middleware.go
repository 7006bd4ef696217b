package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
)

type ctxKey int

const ctxKeyGame ctxKey = iota

// gameMiddleware resolves {slot} to a loaded Game.
func gameMiddleware(games *Registry) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			slot := chi.URLParam(r, "slot")
			if slot == "" {
				writeError(w, http.StatusNotFound, "game not found")
				return
			}

			g, err := games.Get(r.Context(), slot)
			if errors.Is(err, ErrNotFound) {
				writeError(w, http.StatusNotFound, "game not found")
				return
			}
			if err != nil {
				writeError(w, http.StatusInternalServerError, "loading game failed")
				return
			}

			ctx := context.WithValue(r.Context(), ctxKeyGame, g)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func gameFrom(r *http.Request) *Game {
	return r.Context().Value(ctxKeyGame).(*Game)
}
