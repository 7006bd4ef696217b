package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/playperu/matchday/internal/matchday"
	"github.com/playperu/matchday/internal/seed"
)

type CreateGameRequest struct {
	Slot        string `json:"slot"`
	TeamIndex   int    `json:"teamIndex"`
	ManagerName string `json:"managerName"`
	Teams       int    `json:"teams,omitempty"`
}

// GameSummary is the short form returned after creating a career.
type GameSummary struct {
	Slot         string `json:"slot"`
	PlayerTeamID string `json:"playerTeamId"`
	TeamName     string `json:"teamName"`
	CurrentDate  string `json:"currentDate"`
}

func summarize(g *Game) GameSummary {
	s := g.Snapshot()
	sum := GameSummary{
		Slot:         g.Slot(),
		PlayerTeamID: s.PlayerTeamID,
		CurrentDate:  s.CurrentDate.Format("2006-01-02"),
	}
	if t, ok := s.Index().Team(s.PlayerTeamID); ok {
		sum.TeamName = t.Name
	}
	return sum
}

func validSlot(slot string) bool {
	if slot == "" || len(slot) > 64 {
		return false
	}
	for _, c := range slot {
		switch {
		case c >= 'a' && c <= 'z', c >= '0' && c <= '9', c == '-', c == '_':
		default:
			return false
		}
	}
	return true
}

func handleCreateGame(games *Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateGameRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		req.Slot = strings.ToLower(strings.TrimSpace(req.Slot))
		if !validSlot(req.Slot) {
			writeError(w, http.StatusBadRequest, "slot must be 1-64 characters of a-z, 0-9, - or _")
			return
		}
		if req.Teams != 0 && (req.Teams < 2 || req.Teams > 20) {
			writeError(w, http.StatusBadRequest, "teams must be between 2 and 20")
			return
		}
		teams := req.Teams
		if teams == 0 {
			teams = seed.DefaultTeams
		}
		if req.TeamIndex < 0 || req.TeamIndex >= teams {
			writeError(w, http.StatusBadRequest, "teamIndex out of range")
			return
		}

		g, err := games.CreateDemo(r.Context(), req.Slot, seed.Options{
			Teams:       req.Teams,
			PlayerTeam:  req.TeamIndex,
			ManagerName: strings.TrimSpace(req.ManagerName),
		})
		if errors.Is(err, ErrSlotTaken) {
			writeError(w, http.StatusConflict, "slot already in use")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		writeJSON(w, http.StatusCreated, summarize(g))
	}
}

func handleGetState() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, gameFrom(r).Snapshot())
	}
}

// handleImportState accepts a full snapshot, filling absent collections
// with defaults.
func handleImportState(games *Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slot := chi.URLParam(r, "slot")
		if !validSlot(slot) {
			writeError(w, http.StatusBadRequest, "invalid slot")
			return
		}

		var state matchday.GameState
		if err := readJSON(r, &state); err != nil {
			writeError(w, http.StatusBadRequest, "invalid game state")
			return
		}
		if state.CurrentDate.IsZero() {
			writeError(w, http.StatusBadRequest, "currentDate is required")
			return
		}

		g, err := games.Import(r.Context(), slot, &state)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusOK, g.Snapshot())
	}
}

func handleDeleteGame(games *Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := games.Remove(r.Context(), chi.URLParam(r, "slot"))
		if errors.Is(err, ErrNotFound) {
			writeError(w, http.StatusNotFound, "game not found")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func handleSaveGame() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		g := gameFrom(r)
		if err := g.Save(r.Context()); err != nil {
			writeError(w, http.StatusInternalServerError, "save failed")
			return
		}
		writeJSON(w, http.StatusOK, summarize(g))
	}
}
