package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"nhooyr.io/websocket"
)

// handleLiveFeed streams the game's events over a WebSocket. The feed is
// push-only; client messages close the connection.
func handleLiveFeed(logger *slog.Logger, broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		g := gameFrom(r)

		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			InsecureSkipVerify: true,
		})
		if err != nil {
			logger.Error("websocket accept failed", "error", err)
			return
		}
		defer conn.CloseNow()

		ch := broker.Subscribe(g.Slot())
		defer broker.Unsubscribe(g.Slot(), ch)

		ctx := conn.CloseRead(r.Context())

		initial := stateEvent(EventLive, "", g.Snapshot())
		initial.Slot = g.Slot()
		data, _ := json.Marshal(initial)
		if err := writeFrame(ctx, conn, data); err != nil {
			logger.Debug("websocket write failed", "error", err)
			return
		}

		for {
			select {
			case <-ctx.Done():
				logger.Debug("websocket feed ended", "slot", g.Slot(), "error", ctx.Err())
				return
			case data := <-ch:
				if err := writeFrame(ctx, conn, data); err != nil {
					logger.Debug("websocket write failed", "error", err)
					return
				}
			}
		}
	}
}

func writeFrame(ctx context.Context, conn *websocket.Conn, data []byte) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return conn.Write(ctx, websocket.MessageText, data)
}
