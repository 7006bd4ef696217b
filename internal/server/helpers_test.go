package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/playperu/matchday/internal/database"
	"github.com/playperu/matchday/internal/matchday"
	"github.com/playperu/matchday/internal/migrations"
	"github.com/playperu/matchday/internal/seed"
)

var quiet = slog.New(slog.DiscardHandler)

func newTestStore(t *testing.T) *SQLiteSaveStore {
	t.Helper()
	db, err := database.Open(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := migrations.Run(db); err != nil {
		t.Fatalf("migrations: %v", err)
	}
	return NewSQLiteSaveStore(db)
}

func newTestRegistry(t *testing.T, opts GameOptions) (*Registry, *SQLiteSaveStore, *Broker) {
	t.Helper()
	store := newTestStore(t)
	broker := NewBroker(quiet)
	games := NewRegistry(store, broker, quiet, opts)
	t.Cleanup(func() { games.Close() })
	return games, store, broker
}

// newTestHandler returns the full router with the server-side live clock
// disabled so tests drive every minute themselves.
func newTestHandler(t *testing.T) (http.Handler, *Registry) {
	t.Helper()
	games, store, broker := newTestRegistry(t, GameOptions{Seed: 7})
	srv := New(":0", quiet, Deps{
		Store:       store,
		Games:       games,
		Broker:      broker,
		CORSOrigins: []string{"http://localhost:5173"},
	})
	return srv.Handler(), games
}

func demoState(seedValue uint64) *matchday.GameState {
	rng := matchday.NewRand(seedValue)
	return seed.Demo(matchday.NewEngine(rng), rng, seed.Options{ManagerName: "Alex Doe"})
}

func do(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("encoding body: %v", err)
		}
		r = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(rec.Body).Decode(&v); err != nil {
		t.Fatalf("decoding response: %v (body %q)", err, rec.Body.String())
	}
	return v
}

func newPreflight(path, origin string) *http.Request {
	req := httptest.NewRequest(http.MethodOptions, path, nil)
	req.Header.Set("Origin", origin)
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	return req
}

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}
