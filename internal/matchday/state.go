package matchday

import (
	"slices"
	"time"
)

const (
	defaultAutosaveInterval     = 7
	defaultLiveMinutesPerSecond = 1
)

// PlayerLookup resolves players by id.
type PlayerLookup interface {
	Player(id string) (*Player, bool)
}

// TeamLookup resolves teams by id.
type TeamLookup interface {
	Team(id string) (*Team, bool)
}

// Index provides id lookups into one GameState. It holds pointers into the
// state's slices and is invalidated when those slices are replaced.
type Index struct {
	players map[string]*Player
	teams   map[string]*Team
	leagues map[string]*League
}

func (s *GameState) Index() *Index {
	ix := &Index{
		players: make(map[string]*Player, len(s.Players)),
		teams:   make(map[string]*Team, len(s.Teams)),
		leagues: make(map[string]*League, len(s.Leagues)),
	}
	for i := range s.Players {
		ix.players[s.Players[i].ID] = &s.Players[i]
	}
	for i := range s.Teams {
		ix.teams[s.Teams[i].ID] = &s.Teams[i]
	}
	for i := range s.Leagues {
		ix.leagues[s.Leagues[i].ID] = &s.Leagues[i]
	}
	return ix
}

func (ix *Index) Player(id string) (*Player, bool) {
	p, ok := ix.players[id]
	return p, ok
}

func (ix *Index) Team(id string) (*Team, bool) {
	t, ok := ix.teams[id]
	return t, ok
}

func (ix *Index) League(id string) (*League, bool) {
	l, ok := ix.leagues[id]
	return l, ok
}

// FindMatch returns the league and the position of the fixture with the
// given id.
func (s *GameState) FindMatch(id string) (*League, int, bool) {
	for li := range s.Leagues {
		for fi := range s.Leagues[li].Fixtures {
			if s.Leagues[li].Fixtures[fi].ID == id {
				return &s.Leagues[li], fi, true
			}
		}
	}
	return nil, 0, false
}

// IsPlayerFixture reports whether m involves the human player's club.
func (s *GameState) IsPlayerFixture(m Match) bool {
	if s.PlayerTeamID == "" {
		return false
	}
	return m.HomeTeamID == s.PlayerTeamID || m.AwayTeamID == s.PlayerTeamID
}

// NextPlayerMatch returns the earliest scheduled fixture of the player's club
// on or after the current date.
func (s *GameState) NextPlayerMatch() (Match, bool) {
	var (
		next  Match
		found bool
	)
	today := dateOnly(s.CurrentDate)
	for _, l := range s.Leagues {
		for _, m := range l.Fixtures {
			if m.Status != MatchScheduled || !s.IsPlayerFixture(m) {
				continue
			}
			if dateOnly(m.Date).Before(today) {
				continue
			}
			if !found || m.Date.Before(next.Date) {
				next, found = m, true
			}
		}
	}
	return next, found
}

// Normalize fills every field a loaded snapshot may lack with its default so
// that the engine never has to nil-check collections.
func (s *GameState) Normalize() {
	if s.Teams == nil {
		s.Teams = []Team{}
	}
	if s.Players == nil {
		s.Players = []Player{}
	}
	if s.Leagues == nil {
		s.Leagues = []League{}
	}
	if s.News == nil {
		s.News = []NewsItem{}
	}
	if s.Settings.AutosaveInterval < 0 {
		s.Settings.AutosaveInterval = 0
	}
	if s.Settings.LiveMinutesPerSecond <= 0 {
		s.Settings.LiveMinutesPerSecond = defaultLiveMinutesPerSecond
	}
	if s.SeasonYear == 0 && !s.CurrentDate.IsZero() {
		s.SeasonYear = s.CurrentDate.Year()
	}
	for i := range s.Players {
		if s.Players[i].Morale == "" {
			s.Players[i].Morale = MoraleContent
		}
	}
	for i := range s.Leagues {
		l := &s.Leagues[i]
		if l.Fixtures == nil {
			l.Fixtures = []Match{}
		}
		if l.Table == nil {
			l.Table = []TableEntry{}
		}
		for _, id := range l.TeamIDs {
			if _, ok := tableEntry(l, id); !ok {
				l.Table = append(l.Table, TableEntry{TeamID: id})
			}
		}
		for j := range l.Fixtures {
			if l.Fixtures[j].Status == "" {
				l.Fixtures[j].Status = MatchScheduled
			}
		}
	}
	if s.LiveMatch != nil && s.LiveMatch.Commentary == nil {
		s.LiveMatch.Commentary = []Commentary{}
	}
}

// NewGameState returns an empty career starting on date.
func NewGameState(date time.Time, playerTeamID string) *GameState {
	s := &GameState{
		CurrentDate:  dateOnly(date),
		PlayerTeamID: playerTeamID,
		SeasonYear:   date.Year(),
		Settings: Settings{
			AutosaveInterval:     defaultAutosaveInterval,
			LiveMinutesPerSecond: defaultLiveMinutesPerSecond,
		},
	}
	s.Normalize()
	return s
}

// Clone returns a deep copy. The engine clones before every transition so
// callers keep an untouched snapshot on error.
func (s *GameState) Clone() *GameState {
	c := *s
	c.Teams = make([]Team, len(s.Teams))
	for i, t := range s.Teams {
		t.PlayerIDs = slices.Clone(t.PlayerIDs)
		t.Squad.StartingXI = slices.Clone(t.Squad.StartingXI)
		t.Squad.Subs = slices.Clone(t.Squad.Subs)
		t.Squad.Reserves = slices.Clone(t.Squad.Reserves)
		c.Teams[i] = t
	}
	c.Players = make([]Player, len(s.Players))
	for i, p := range s.Players {
		if p.Contract.ExpiryDate != nil {
			d := *p.Contract.ExpiryDate
			p.Contract.ExpiryDate = &d
		}
		c.Players[i] = p
	}
	c.Leagues = make([]League, len(s.Leagues))
	for i, l := range s.Leagues {
		l.TeamIDs = slices.Clone(l.TeamIDs)
		l.Table = slices.Clone(l.Table)
		fixtures := make([]Match, len(l.Fixtures))
		for j, m := range l.Fixtures {
			m.Events = slices.Clone(m.Events)
			m.CommentaryLog = slices.Clone(m.CommentaryLog)
			fixtures[j] = m
		}
		l.Fixtures = fixtures
		c.Leagues[i] = l
	}
	c.News = slices.Clone(s.News)
	if s.LiveMatch != nil {
		lm := *s.LiveMatch
		lm.Commentary = slices.Clone(lm.Commentary)
		c.LiveMatch = &lm
	}
	if s.LastTrainingDate != nil {
		d := *s.LastTrainingDate
		c.LastTrainingDate = &d
	}
	return &c
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func sameDay(a, b time.Time) bool {
	return dateOnly(a).Equal(dateOnly(b))
}
