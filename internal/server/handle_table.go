package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/playperu/matchday/internal/matchday"
)

type StandingRow struct {
	matchday.TableEntry
	TeamName string `json:"teamName"`
}

func handleTable() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := gameFrom(r).Snapshot()
		ix := s.Index()

		league, ok := ix.League(chi.URLParam(r, "leagueID"))
		if !ok {
			writeError(w, http.StatusNotFound, "league not found")
			return
		}

		entries := matchday.Standings(*league, ix)
		rows := make([]StandingRow, 0, len(entries))
		for _, e := range entries {
			row := StandingRow{TableEntry: e, TeamName: e.TeamID}
			if t, ok := ix.Team(e.TeamID); ok {
				row.TeamName = t.Name
			}
			rows = append(rows, row)
		}
		writeJSON(w, http.StatusOK, rows)
	}
}
