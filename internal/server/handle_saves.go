package server

import "net/http"

func handleListSaves(store SaveStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		saves, err := store.ListSaves(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusOK, saves)
	}
}
