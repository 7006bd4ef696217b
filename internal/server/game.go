package server

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/playperu/matchday/internal/matchday"
)

// Game owns the authoritative state of one career. All engine calls happen
// under mu; published snapshots are never mutated afterwards because every
// engine operation returns a fresh copy.
type Game struct {
	slot   string
	store  SaveStore
	broker *Broker
	logger *slog.Logger

	mu     sync.Mutex
	engine *matchday.Engine
	state  *matchday.GameState

	// clockRate is the server-side live pace in match minutes per
	// second; zero leaves ticking to clients.
	clockRate float64
	stopClock context.CancelFunc
}

func newGame(slot string, state *matchday.GameState, engine *matchday.Engine, store SaveStore, broker *Broker, logger *slog.Logger, clockRate float64) *Game {
	g := &Game{
		slot:      slot,
		store:     store,
		broker:    broker,
		logger:    logger,
		engine:    engine,
		state:     state,
		clockRate: clockRate,
	}
	g.mu.Lock()
	g.syncClock()
	g.mu.Unlock()
	return g
}

func (g *Game) Slot() string { return g.slot }

// Snapshot returns the current state. Callers must not modify it.
func (g *Game) Snapshot() *matchday.GameState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// Apply runs cmd, autosaves when the counter is due and notifies
// subscribers. On error the state is left as it was.
func (g *Game) Apply(ctx context.Context, cmd matchday.Command) (*matchday.GameState, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	next, err := g.engine.Apply(g.state, cmd)
	if err != nil {
		return nil, err
	}
	g.state = next

	if next.AutosaveDue() {
		g.autosave(ctx)
	}

	g.syncClock()
	g.broker.Publish(g.slot, stateEvent(EventState, commandName(cmd), g.state))
	return g.state, nil
}

// autosave persists the state with its counter reset. A failed write keeps
// the counter so the next command retries.
func (g *Game) autosave(ctx context.Context) {
	reset, err := g.engine.Apply(g.state, matchday.ResetAutosaveCounter{})
	if err != nil {
		g.logger.Error("resetting autosave counter", "slot", g.slot, "error", err)
		return
	}
	if err := g.store.SaveGame(ctx, g.slot, reset); err != nil {
		g.logger.Error("autosave failed", "slot", g.slot, "error", err)
		return
	}
	g.state = reset
	g.logger.Info("autosaved", "slot", g.slot, "date", reset.CurrentDate.Format(time.DateOnly))
}

// Save writes the current state to the store.
func (g *Game) Save(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.store.SaveGame(ctx, g.slot, g.state); err != nil {
		return err
	}
	g.broker.Publish(g.slot, stateEvent(EventSaved, "", g.state))
	return nil
}

// Replace swaps in an imported snapshot and persists it.
func (g *Game) Replace(ctx context.Context, state *matchday.GameState) error {
	state.Normalize()

	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.store.SaveGame(ctx, g.slot, state); err != nil {
		return err
	}
	g.state = state
	g.syncClock()
	g.broker.Publish(g.slot, stateEvent(EventState, "Import", g.state))
	return nil
}

// Close stops the live clock.
func (g *Game) Close() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.stopClock != nil {
		g.stopClock()
		g.stopClock = nil
	}
}

func (g *Game) rate() float64 {
	if g.clockRate <= 0 {
		return 0
	}
	if r := g.state.Settings.LiveMinutesPerSecond; r > 0 {
		return r
	}
	return g.clockRate
}

// syncClock starts or stops the ticker goroutine to match the live match
// status. Must be called with mu held.
func (g *Game) syncClock() {
	live := g.state.LiveMatch
	want := live != nil && live.Status == matchday.LivePlaying && g.rate() > 0

	switch {
	case want && g.stopClock == nil:
		ctx, cancel := context.WithCancel(context.Background())
		g.stopClock = cancel
		go g.runClock(ctx, time.Duration(float64(time.Second)/g.rate()))
	case !want && g.stopClock != nil:
		g.stopClock()
		g.stopClock = nil
	}
}

func (g *Game) runClock(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			g.clockTick(ctx)
		}
	}
}

func (g *Game) clockTick(ctx context.Context) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if ctx.Err() != nil {
		return
	}
	next, err := g.engine.TickLiveMatch(g.state)
	if err != nil {
		g.logger.Warn("live clock tick", "slot", g.slot, "error", err)
		g.syncClock()
		return
	}
	g.state = next
	g.broker.Publish(g.slot, stateEvent(EventLive, "TickLiveMatch", g.state))
	g.syncClock()
}

func commandName(cmd matchday.Command) string {
	return strings.TrimPrefix(fmt.Sprintf("%T", cmd), "matchday.")
}
