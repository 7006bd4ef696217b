package matchday

import (
	"fmt"
	"math"
	"strings"
	"time"
)

type DevelopmentKind string

const (
	DevImprovement  DevelopmentKind = "improvement"
	DevDecline      DevelopmentKind = "decline"
	DevBreakthrough DevelopmentKind = "breakthrough"
	DevSetback      DevelopmentKind = "setback"
)

const (
	baseDevelopmentChance = 0.3
	maxDevelopmentChance  = 0.8
	abovePotentialDecline = 0.1
	breakthroughThreshold = 2
	noticeableThreshold   = 0.5
	minAttribute          = 1
	maxAttribute          = 99
)

// DevelopmentEvent records a noticeable weekly attribute change.
type DevelopmentEvent struct {
	PlayerID  string          `json:"playerId"`
	Kind      DevelopmentKind `json:"type"`
	Attribute Attribute       `json:"attribute"`
	Change    float64         `json:"change"`
	Reason    string          `json:"reason"`
}

// TrainingResult is the outcome of one weekly development pass. Players holds
// a full replacement for GameState.Players in the same order.
type TrainingResult struct {
	Players []Player
	Events  []DevelopmentEvent
}

type developmentFactors struct {
	facility    float64
	morale      float64
	personality float64
	age         float64
	playtime    float64
}

// chance is the per-attribute probability that training moves it at all.
func (f developmentFactors) chance() float64 {
	p := baseDevelopmentChance * (1 + f.facility + (f.morale - 1) + (f.personality - 1) + (f.playtime - 1))
	return math.Max(0, math.Min(maxDevelopmentChance, p))
}

func (f developmentFactors) multiplier() float64 {
	return f.facility + f.morale*f.personality*f.age*f.playtime
}

var moraleDevelopment = map[Morale]float64{
	MoraleEcstatic:    1.3,
	MoraleHappy:       1.2,
	MoraleContent:     1.0,
	MoraleUnsettled:   0.9,
	MoraleUnhappy:     0.8,
	MoraleVeryUnhappy: 0.7,
}

func ageFactor(age int) float64 {
	switch {
	case age < 18:
		return 1.1
	case age < 24:
		return 1.2
	case age < 28:
		return 1.0
	case age < 32:
		return 0.85
	default:
		return 0.7
	}
}

func playtimeFactor(appearances int) float64 {
	switch {
	case appearances >= 20:
		return 1.2
	case appearances >= 10:
		return 1.1
	case appearances >= 5:
		return 1.0
	default:
		return 0.8
	}
}

func factorsFor(p *Player, teams TeamLookup) developmentFactors {
	f := developmentFactors{
		morale:      1.0,
		personality: 0.8 + p.Personality.Ambition/100*0.3 + p.Personality.Professionalism/100*0.7,
		age:         ageFactor(p.Age),
		playtime:    playtimeFactor(p.SeasonalStats.Appearances),
	}
	if m, ok := moraleDevelopment[p.Morale]; ok {
		f.morale = m
	}
	if t, ok := teams.Team(p.Contract.ClubID); ok {
		f.facility = float64(t.TrainingFacilitiesLevel) * 0.1
	}
	return f
}

// ProcessWeeklyTraining runs one development pass over every player. The
// state is not modified; the caller merges the returned players.
func (e *Engine) ProcessWeeklyTraining(s *GameState) TrainingResult {
	ix := s.Index()
	res := TrainingResult{
		Players: make([]Player, len(s.Players)),
		Events:  []DevelopmentEvent{},
	}
	for i := range s.Players {
		p := s.Players[i]
		f := factorsFor(&p, ix)
		chance := f.chance()
		before := p.Stats
		for _, a := range TrainableAttributes {
			cur, _ := p.Stats.Get(a)
			next := cur + e.statChange(cur, p.Stats.Potential, chance, f)
			p.Stats.Set(a, math.Max(minAttribute, math.Min(maxAttribute, next)))
		}
		res.Events = append(res.Events, developmentEvents(&p, before)...)
		res.Players[i] = p
	}
	return res
}

func (e *Engine) statChange(cur, potential, chance float64, f developmentFactors) float64 {
	if e.rng.Float64() >= chance {
		return 0
	}
	headroom := potential - cur
	if headroom <= 0 {
		return -abovePotentialDecline
	}
	change := e.rng.Float64() * 0.3 * (headroom / 20) * f.multiplier()
	// Growth never carries an attribute past the ceiling in a single step.
	return math.Min(change, headroom)
}

func developmentEvents(p *Player, before PlayerStats) []DevelopmentEvent {
	var out []DevelopmentEvent
	for _, a := range TrainableAttributes {
		old, _ := before.Get(a)
		cur, _ := p.Stats.Get(a)
		delta := cur - old
		var kind DevelopmentKind
		switch {
		case delta >= breakthroughThreshold:
			kind = DevBreakthrough
		case delta <= -breakthroughThreshold:
			kind = DevSetback
		case delta >= noticeableThreshold:
			kind = DevImprovement
		case delta <= -noticeableThreshold:
			kind = DevDecline
		default:
			continue
		}
		out = append(out, DevelopmentEvent{
			PlayerID:  p.ID,
			Kind:      kind,
			Attribute: a,
			Change:    delta,
			Reason:    developmentReason(p.Name, a, delta),
		})
	}
	return out
}

func developmentReason(name string, a Attribute, delta float64) string {
	if delta > 0 {
		return fmt.Sprintf("%s's %s has improved through dedicated training.", name, a)
	}
	return fmt.Sprintf("%s's %s has declined due to lack of match practice.", name, a)
}

// trainingDue reports whether the development pass should run on day.
func (e *Engine) trainingDue(s *GameState, day time.Time) bool {
	if day.Weekday() != e.trainingDay {
		return false
	}
	return s.LastTrainingDate == nil || !sameDay(*s.LastTrainingDate, day)
}

// applyTraining runs the development pass for day and records it.
func (e *Engine) applyTraining(s *GameState, day time.Time) {
	res := e.ProcessWeeklyTraining(s)
	s.Players = res.Players
	d := dateOnly(day)
	s.LastTrainingDate = &d

	if s.PlayerTeamID == "" {
		return
	}
	ix := s.Index()
	var notable []string
	for _, ev := range res.Events {
		p, ok := ix.Player(ev.PlayerID)
		if !ok || p.Contract.ClubID != s.PlayerTeamID {
			continue
		}
		if ev.Kind == DevBreakthrough || ev.Kind == DevSetback {
			notable = append(notable, ev.Reason)
		}
	}
	if len(notable) == 0 {
		return
	}
	s.addNews(e, NewsDevelopment, s.PlayerTeamID,
		fmt.Sprintf("Training report: %d notable changes", len(notable)),
		strings.Join(notable, " "),
	)
}
