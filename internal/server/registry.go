package server

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"log/slog"
	"sync"
	"time"

	"github.com/playperu/matchday/internal/matchday"
	"github.com/playperu/matchday/internal/seed"
)

var ErrSlotTaken = errors.New("save slot already in use")

// GameOptions applies to every career the registry hosts.
type GameOptions struct {
	// LiveMinutesPerSecond paces the server-side live clock; zero
	// disables it.
	LiveMinutesPerSecond float64
	// AutosaveInterval is written into newly created careers.
	AutosaveInterval int
	// Seed makes engines reproducible per slot; zero seeds from the clock.
	Seed uint64
}

// Registry keeps one loaded Game per save slot, loading lazily from the
// store on first use.
type Registry struct {
	store  SaveStore
	broker *Broker
	logger *slog.Logger
	opts   GameOptions

	mu    sync.RWMutex
	games map[string]*Game
}

func NewRegistry(store SaveStore, broker *Broker, logger *slog.Logger, opts GameOptions) *Registry {
	return &Registry{
		store:  store,
		broker: broker,
		logger: logger,
		opts:   opts,
		games:  make(map[string]*Game),
	}
}

func (r *Registry) Get(ctx context.Context, slot string) (*Game, error) {
	r.mu.RLock()
	g, ok := r.games[slot]
	r.mu.RUnlock()
	if ok {
		return g, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Double-check after acquiring write lock.
	if g, ok := r.games[slot]; ok {
		return g, nil
	}

	state, err := r.store.LoadGame(ctx, slot)
	if err != nil {
		return nil, err
	}
	g = r.open(slot, state)
	r.games[slot] = g
	return g, nil
}

// Create registers a new career and saves it. It fails with ErrSlotTaken
// if the slot is loaded or stored already.
func (r *Registry) Create(ctx context.Context, slot string, state *matchday.GameState) (*Game, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.games[slot]; ok {
		return nil, ErrSlotTaken
	}
	if _, err := r.store.LoadGame(ctx, slot); err == nil {
		return nil, ErrSlotTaken
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	state.Normalize()
	if err := r.store.SaveGame(ctx, slot, state); err != nil {
		return nil, fmt.Errorf("saving new career %q: %w", slot, err)
	}
	g := r.open(slot, state)
	r.games[slot] = g
	return g, nil
}

// CreateDemo generates a demo league for slot with the slot's engine so
// the same seed reproduces the same world.
func (r *Registry) CreateDemo(ctx context.Context, slot string, opts seed.Options) (*Game, error) {
	rng := r.rand(slot)
	state := seed.Demo(r.engine(slot, rng), rng, opts)
	if r.opts.AutosaveInterval > 0 {
		state.Settings.AutosaveInterval = r.opts.AutosaveInterval
	}
	return r.Create(ctx, slot, state)
}

// Import replaces the slot's state with an external snapshot, creating the
// career if needed.
func (r *Registry) Import(ctx context.Context, slot string, state *matchday.GameState) (*Game, error) {
	g, err := r.Get(ctx, slot)
	if errors.Is(err, ErrNotFound) {
		return r.Create(ctx, slot, state)
	}
	if err != nil {
		return nil, err
	}
	return g, g.Replace(ctx, state)
}

// Remove unloads the career and deletes its save.
func (r *Registry) Remove(ctx context.Context, slot string) error {
	r.mu.Lock()
	g, loaded := r.games[slot]
	delete(r.games, slot)
	r.mu.Unlock()

	if loaded {
		g.Close()
	}
	err := r.store.DeleteSave(ctx, slot)
	if errors.Is(err, ErrNotFound) && loaded {
		err = nil
	}
	if err != nil {
		return err
	}
	r.broker.Publish(slot, Event{Type: EventDeleted})
	return nil
}

// SaveAll flushes every loaded career to the store.
func (r *Registry) SaveAll(ctx context.Context) error {
	r.mu.RLock()
	games := make([]*Game, 0, len(r.games))
	for _, g := range r.games {
		games = append(games, g)
	}
	r.mu.RUnlock()

	var errs []error
	for _, g := range games {
		if err := g.Save(ctx); err != nil {
			errs = append(errs, fmt.Errorf("saving %q: %w", g.Slot(), err))
		}
	}
	return errors.Join(errs...)
}

func (r *Registry) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for slot, g := range r.games {
		g.Close()
		delete(r.games, slot)
	}
	return nil
}

func (r *Registry) open(slot string, state *matchday.GameState) *Game {
	logger := r.logger.With("slot", slot)
	return newGame(slot, state, r.engine(slot, r.rand(slot)), r.store, r.broker, logger, r.opts.LiveMinutesPerSecond)
}

func (r *Registry) engine(slot string, rng matchday.Rand) *matchday.Engine {
	return matchday.NewEngine(rng, matchday.WithLogger(r.logger.With("slot", slot)))
}

func (r *Registry) rand(slot string) matchday.Rand {
	base := r.opts.Seed
	if base == 0 {
		base = uint64(time.Now().UnixNano())
	}
	h := fnv.New64a()
	h.Write([]byte(slot))
	return matchday.NewRand(base ^ h.Sum64())
}

// SeedDemo creates the demo career if no saves exist.
// Idempotent: does nothing if any save exists.
func SeedDemo(ctx context.Context, logger *slog.Logger, games *Registry, slot string) error {
	existing, err := games.store.ListSaves(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	if _, err := games.CreateDemo(ctx, slot, seed.Options{ManagerName: "Demo Manager"}); err != nil {
		return err
	}
	logger.Info("demo career created", "slot", slot)
	return nil
}
