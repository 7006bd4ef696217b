package server

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/playperu/matchday/internal/matchday"
)

type AdvanceRequest struct {
	Days int `json:"days"`
}

type StartLiveRequest struct {
	MatchID string `json:"matchId"`
}

// commandDecoder builds a command from the request.
type commandDecoder func(r *http.Request) (matchday.Command, error)

func fixed(cmd matchday.Command) commandDecoder {
	return func(*http.Request) (matchday.Command, error) { return cmd, nil }
}

func decodeAdvance(r *http.Request) (matchday.Command, error) {
	req := AdvanceRequest{Days: 1}
	if err := readJSON(r, &req); err != nil {
		return nil, err
	}
	return matchday.AdvanceTime{Days: req.Days}, nil
}

func decodeStartLive(r *http.Request) (matchday.Command, error) {
	var req StartLiveRequest
	if err := readJSON(r, &req); err != nil {
		return nil, err
	}
	if req.MatchID == "" {
		return nil, errors.New("matchId is required")
	}
	return matchday.StartLiveMatch{MatchID: req.MatchID}, nil
}

func decodeMarkNewsRead(r *http.Request) (matchday.Command, error) {
	return matchday.MarkNewsRead{NewsID: chi.URLParam(r, "newsID")}, nil
}

// handleCommand applies the decoded command to the request's game and
// returns the resulting state.
func handleCommand(decode commandDecoder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cmd, err := decode(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		state, err := gameFrom(r).Apply(r.Context(), cmd)
		if err != nil {
			status, msg := commandError(err)
			writeError(w, status, msg)
			return
		}
		writeJSON(w, http.StatusOK, state)
	}
}

func commandError(err error) (int, string) {
	switch {
	case errors.Is(err, matchday.ErrInvalidDays),
		errors.Is(err, matchday.ErrUnknownCommand):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, matchday.ErrMatchNotFound),
		errors.Is(err, matchday.ErrNewsNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, matchday.ErrFixtureNotScheduled),
		errors.Is(err, matchday.ErrLiveMatchActive),
		errors.Is(err, matchday.ErrNoLiveMatch),
		errors.Is(err, matchday.ErrNotPlayerFixture),
		errors.Is(err, matchday.ErrNoUpcomingMatch):
		return http.StatusConflict, err.Error()
	default:
		return http.StatusInternalServerError, "internal error"
	}
}
