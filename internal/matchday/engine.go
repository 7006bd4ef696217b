package matchday

import (
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidDays         = errors.New("days must not be negative")
	ErrMatchNotFound       = errors.New("match not found")
	ErrFixtureNotScheduled = errors.New("fixture is not scheduled")
	ErrLiveMatchActive     = errors.New("a live match is already in progress")
	ErrNoLiveMatch         = errors.New("no live match in progress")
	ErrNotPlayerFixture    = errors.New("fixture does not involve the player's team")
	ErrNoUpcomingMatch     = errors.New("no upcoming match for the player's team")
	ErrNewsNotFound        = errors.New("news item not found")
	ErrUnknownCommand      = errors.New("unknown command")
)

// Engine runs the simulation. It carries no game state of its own; the
// random source is its only mutable dependency, so an Engine must not be
// shared between goroutines.
type Engine struct {
	rng         Rand
	logger      *slog.Logger
	trainingDay time.Weekday
	newID       func() string
	fullTime    int
	halfTime    int
	goalChance  float64
	jitterRange float64
	maxGoalSpan float64
}

type Option func(*Engine)

// WithLogger sets the logger used for data-integrity warnings.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithTrainingDay moves the weekly development boundary.
func WithTrainingDay(d time.Weekday) Option {
	return func(e *Engine) { e.trainingDay = d }
}

// WithIDs replaces UUID generation, mostly for tests that compare
// snapshots.
func WithIDs(f func() string) Option {
	return func(e *Engine) {
		if f != nil {
			e.newID = f
		}
	}
}

// WithGoalChance overrides the live per-minute goal probability.
func WithGoalChance(p float64) Option {
	return func(e *Engine) { e.goalChance = p }
}

func NewEngine(rng Rand, opts ...Option) *Engine {
	e := &Engine{
		rng:         rng,
		logger:      slog.New(slog.DiscardHandler),
		trainingDay: time.Monday,
		newID:       uuid.NewString,
		fullTime:    90,
		halfTime:    45,
		goalChance:  0.015,
		jitterRange: 10,
		maxGoalSpan: 6,
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// TrainingDay is the weekday on which the development pass runs.
func (e *Engine) TrainingDay() time.Weekday { return e.trainingDay }
