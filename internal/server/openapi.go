package server

import (
	"encoding/json"
	"net/http"

	openapi "github.com/swaggest/openapi-go"
	"github.com/swaggest/openapi-go/openapi3"

	"github.com/playperu/matchday/internal/matchday"
)

// ErrorResponse is returned for all error responses.
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthResponse maps each checked dependency to its status.
type HealthResponse map[string]struct {
	Status string `json:"status" enum:"ok,error"`
}

type slotPath struct {
	Slot string `path:"slot" description:"Save slot of the career."`
}

type leaguePath struct {
	Slot     string `path:"slot"`
	LeagueID string `path:"leagueID"`
}

type newsPath struct {
	Slot   string `path:"slot"`
	NewsID string `path:"newsID"`
}

type advanceInput struct {
	slotPath
	AdvanceRequest
}

type startLiveInput struct {
	slotPath
	StartLiveRequest
}

type importInput struct {
	slotPath
	matchday.GameState
}

func newOpenAPISpec() *openapi3.Spec {
	r := openapi3.NewReflector()
	r.Spec.Info.Title = "Matchday API"
	r.Spec.Info.Version = "0.1.0"
	r.Spec.Info.WithDescription("Football career simulation: calendar, live matches, training and saves.")

	op := func(method, path, summary, description string, req any, resp any, okStatus int, errStatuses ...int) {
		oc, _ := r.NewOperationContext(method, path)
		oc.SetSummary(summary)
		oc.SetDescription(description)
		if req != nil {
			oc.AddReqStructure(req)
		}
		oc.AddRespStructure(resp, openapi.WithHTTPStatus(okStatus))
		for _, s := range errStatuses {
			oc.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(s))
		}
		_ = r.AddOperation(oc)
	}

	// GET /healthz
	getHealthz, _ := r.NewOperationContext(http.MethodGet, "/healthz")
	getHealthz.SetSummary("Health check")
	getHealthz.SetDescription("Returns the health status of backend dependencies.")
	getHealthz.AddRespStructure(HealthResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getHealthz.AddRespStructure(HealthResponse{}, openapi.WithHTTPStatus(http.StatusServiceUnavailable))
	_ = r.AddOperation(getHealthz)

	op(http.MethodGet, "/api/saves", "List saves",
		"Returns stored careers, most recently saved first.",
		nil, []SaveSummary{}, http.StatusOK)

	op(http.MethodPost, "/api/games", "Create career",
		"Generates a demo league and starts a new career in the given slot.",
		CreateGameRequest{}, GameSummary{}, http.StatusCreated,
		http.StatusBadRequest, http.StatusConflict)

	op(http.MethodGet, "/api/games/{slot}/state", "Get game state",
		"Returns the full career snapshot.",
		slotPath{}, matchday.GameState{}, http.StatusOK, http.StatusNotFound)

	op(http.MethodPut, "/api/games/{slot}/state", "Import game state",
		"Replaces the career with the given snapshot. Missing collections are filled with defaults.",
		importInput{}, matchday.GameState{}, http.StatusOK, http.StatusBadRequest)

	op(http.MethodDelete, "/api/games/{slot}", "Delete career",
		"Unloads the career and deletes its save.",
		slotPath{}, nil, http.StatusNoContent, http.StatusNotFound)

	op(http.MethodPost, "/api/games/{slot}/save", "Save career",
		"Writes the current state to the save slot.",
		slotPath{}, GameSummary{}, http.StatusOK, http.StatusNotFound)

	op(http.MethodPost, "/api/games/{slot}/advance", "Advance time",
		"Advances the calendar by a number of days, stopping on the day of the player's fixture.",
		advanceInput{}, matchday.GameState{}, http.StatusOK,
		http.StatusBadRequest, http.StatusNotFound, http.StatusConflict)

	op(http.MethodPost, "/api/games/{slot}/advance/next-match", "Advance to next match",
		"Advances to the player's next fixture and kicks it off live.",
		slotPath{}, matchday.GameState{}, http.StatusOK, http.StatusNotFound, http.StatusConflict)

	op(http.MethodPost, "/api/games/{slot}/training", "Process weekly training",
		"Runs the weekly development pass immediately.",
		slotPath{}, matchday.GameState{}, http.StatusOK, http.StatusNotFound)

	op(http.MethodPost, "/api/games/{slot}/live/start", "Start live match",
		"Kicks off one of the player's scheduled fixtures.",
		startLiveInput{}, matchday.GameState{}, http.StatusOK,
		http.StatusBadRequest, http.StatusNotFound, http.StatusConflict)

	for _, l := range []struct{ path, summary, description string }{
		{"/api/games/{slot}/live/tick", "Tick live match", "Plays one minute of the live match."},
		{"/api/games/{slot}/live/pause", "Pause live match", "Stops the live clock."},
		{"/api/games/{slot}/live/resume", "Resume live match", "Restarts the live clock after a pause or half time."},
		{"/api/games/{slot}/live/end", "End live match", "Plays out the remaining minutes and records the result."},
	} {
		op(http.MethodPost, l.path, l.summary, l.description,
			slotPath{}, matchday.GameState{}, http.StatusOK, http.StatusNotFound, http.StatusConflict)
	}

	op(http.MethodGet, "/api/games/{slot}/leagues/{leagueID}/table", "League table",
		"Returns standings ordered by points, goal difference and goals scored.",
		leaguePath{}, []StandingRow{}, http.StatusOK, http.StatusNotFound)

	op(http.MethodPost, "/api/games/{slot}/news/{newsID}/read", "Mark news read",
		"Marks one news item as read.",
		newsPath{}, matchday.GameState{}, http.StatusOK, http.StatusNotFound)

	// GET /api/games/{slot}/events
	getEvents, _ := r.NewOperationContext(http.MethodGet, "/api/games/{slot}/events")
	getEvents.SetSummary("SSE event stream")
	getEvents.SetDescription("Server-Sent Events stream of state changes and live match minutes.")
	getEvents.AddReqStructure(slotPath{})
	getEvents.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK),
		openapi.WithContentType("text/event-stream"))
	_ = r.AddOperation(getEvents)

	// GET /ws/games/{slot}/live
	getLive, _ := r.NewOperationContext(http.MethodGet, "/ws/games/{slot}/live")
	getLive.SetSummary("Live match feed")
	getLive.SetDescription("Upgrades to a WebSocket connection that pushes the career's events as JSON text frames.")
	getLive.AddReqStructure(slotPath{})
	getLive.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusSwitchingProtocols),
		openapi.WithContentType("application/json"))
	_ = r.AddOperation(getLive)

	return r.Spec
}

func handleOpenAPI() http.HandlerFunc {
	spec := newOpenAPISpec()
	data, _ := json.MarshalIndent(spec, "", "  ")

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}
}
