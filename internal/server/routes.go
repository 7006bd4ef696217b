package server

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/swaggest/swgui/v5emb"

	"github.com/playperu/matchday/internal/matchday"
)

func addRoutes(r chi.Router, logger *slog.Logger, store SaveStore, games *Registry, broker *Broker, spaDir string) {
	r.Get("/openapi.json", handleOpenAPI())
	r.Mount("/docs", v5emb.New("Matchday API", "/openapi.json", "/docs"))

	r.Get("/api/saves", handleListSaves(store))
	r.Post("/api/games", handleCreateGame(games))

	r.Route("/api/games/{slot}", func(r chi.Router) {
		r.Put("/state", handleImportState(games))

		// {slot} resolved by gameMiddleware.
		r.Group(func(r chi.Router) {
			r.Use(gameMiddleware(games))
			r.Get("/state", handleGetState())
			r.Delete("/", handleDeleteGame(games))
			r.Post("/save", handleSaveGame())

			r.Post("/advance", handleCommand(decodeAdvance))
			r.Post("/advance/next-match", handleCommand(fixed(matchday.AdvanceToNextMatch{})))
			r.Post("/training", handleCommand(fixed(matchday.ProcessWeeklyTraining{})))

			r.Post("/live/start", handleCommand(decodeStartLive))
			r.Post("/live/tick", handleCommand(fixed(matchday.TickLiveMatch{})))
			r.Post("/live/pause", handleCommand(fixed(matchday.PauseLiveMatch{})))
			r.Post("/live/resume", handleCommand(fixed(matchday.ResumeLiveMatch{})))
			r.Post("/live/end", handleCommand(fixed(matchday.EndLiveMatch{})))

			r.Get("/leagues/{leagueID}/table", handleTable())
			r.Post("/news/{newsID}/read", handleCommand(decodeMarkNewsRead))
			r.Get("/events", handleEvents(broker))
		})
	})

	r.With(gameMiddleware(games)).Get("/ws/games/{slot}/live", handleLiveFeed(logger, broker))

	if spaDir != "" {
		if info, err := os.Stat(spaDir); err == nil && info.IsDir() {
			logger.Info("serving SPA", "dir", spaDir)
			r.NotFound(handleSPA(spaDir))
		}
	}
}
