package matchday

import (
	"fmt"
	"time"
)

// maxNews bounds the news feed; the oldest items are dropped first.
const maxNews = 200

// AdvanceTime walks the calendar forward up to days days. Every day resolves
// its AI fixtures instantly and runs the development pass on the training
// weekday. A day holding the player's own fixture stops the walk: the date
// moves onto that day, the fixture kicks off as the live match and the rest
// of the day waits until the match ends.
func (e *Engine) AdvanceTime(s *GameState, days int) (*GameState, error) {
	if days < 0 {
		return s, fmt.Errorf("advancing %d days: %w", days, ErrInvalidDays)
	}
	if s.LiveMatch != nil {
		return s, ErrLiveMatchActive
	}

	c := s.Clone()
	// An imported snapshot may still hold unplayed fixtures on today's date.
	if c.DayPending || (days > 0 && c.scheduledOn(c.CurrentDate)) {
		started, err := e.kickOffPlayerFixture(c)
		if err != nil {
			return s, err
		}
		if started {
			return c, nil
		}
		e.completeDay(c)
	}
	for range days {
		c.CurrentDate = dateOnly(c.CurrentDate).AddDate(0, 0, 1)
		started, err := e.kickOffPlayerFixture(c)
		if err != nil {
			return s, err
		}
		if started {
			break
		}
		e.completeDay(c)
	}
	return c, nil
}

// kickOffPlayerFixture starts the player's next scheduled fixture on the
// current date as the live match and leaves the rest of the day pending.
func (e *Engine) kickOffPlayerFixture(c *GameState) (bool, error) {
	day := dateOnly(c.CurrentDate)
	m, ok := c.playerFixtureOn(day)
	if !ok {
		return false, nil
	}
	if err := e.startLive(c, m.ID); err != nil {
		return false, fmt.Errorf("kicking off %s: %w", m.ID, err)
	}
	c.DayPending = true
	e.logger.Debug("player fixture reached, live match started",
		"match_id", m.ID,
		"date", day.Format(time.DateOnly),
	)
	return true, nil
}

// continueDay runs after a live match on a pending day: a second player
// fixture on the same date kicks off next, otherwise the day completes.
func (e *Engine) continueDay(c *GameState) {
	started, err := e.kickOffPlayerFixture(c)
	if err != nil {
		e.logger.Warn("second fixture of the day not started", "error", err)
	}
	if !started {
		e.completeDay(c)
	}
}

// AdvanceToNextMatch advances exactly as far as the player's next scheduled
// fixture and kicks it off.
func (e *Engine) AdvanceToNextMatch(s *GameState) (*GameState, error) {
	if s.LiveMatch != nil {
		return s, ErrLiveMatchActive
	}
	next, ok := s.NextPlayerMatch()
	if !ok {
		return s, ErrNoUpcomingMatch
	}

	today := dateOnly(s.CurrentDate)
	if !dateOnly(next.Date).After(today) {
		c := s.Clone()
		c.DayPending = true
		if err := e.startLive(c, next.ID); err != nil {
			return s, err
		}
		return c, nil
	}
	days := int(dateOnly(next.Date).Sub(today).Hours() / 24)
	return e.AdvanceTime(s, days)
}

// completeDay processes everything on the current date that does not need
// the player: AI fixtures, the weekly development pass and the autosave
// counter.
func (e *Engine) completeDay(c *GameState) {
	day := dateOnly(c.CurrentDate)
	for li := range c.Leagues {
		for fi := range c.Leagues[li].Fixtures {
			m := c.Leagues[li].Fixtures[fi]
			if m.Status != MatchScheduled || !sameDay(m.Date, day) {
				continue
			}
			e.resolveInto(c, m)
		}
	}
	if e.trainingDue(c, day) {
		e.applyTraining(c, day)
	}
	c.AutosaveCounter++
	c.DayPending = false
}

func (e *Engine) resolveInto(c *GameState, m Match) {
	ix := c.Index()
	league, _ := ix.League(m.LeagueID)
	if league == nil {
		league, _, _ = c.FindMatch(m.ID)
	}
	res, err := e.ResolveMatch(m, ix, ix, league)
	if err != nil {
		e.logger.Warn("fixture skipped", "match_id", m.ID, "error", err)
		return
	}
	c.applyResolution(res)
	if l, _, ok := c.FindMatch(m.ID); ok {
		l.CurrentMatchday = max(l.CurrentMatchday, m.Matchday)
	}
	if res.Degraded {
		return
	}

	home, _ := ix.Team(m.HomeTeamID)
	away, _ := ix.Team(m.AwayTeamID)
	hg, ag := res.Match.Result.HomeScore, res.Match.Result.AwayScore
	c.addNews(e, NewsMatchResult, "",
		fmt.Sprintf("%s %d-%d %s", home.Name, hg, ag, away.Name),
		resultMessage(home, away, hg, ag),
	)
}

// scheduledOn reports whether any fixture on day is still unplayed.
func (s *GameState) scheduledOn(day time.Time) bool {
	for _, l := range s.Leagues {
		for _, m := range l.Fixtures {
			if m.Status == MatchScheduled && sameDay(m.Date, day) {
				return true
			}
		}
	}
	return false
}

// playerFixtureOn returns the player's scheduled fixture on day, if any.
func (s *GameState) playerFixtureOn(day time.Time) (Match, bool) {
	for _, l := range s.Leagues {
		for _, m := range l.Fixtures {
			if m.Status == MatchScheduled && s.IsPlayerFixture(m) && sameDay(m.Date, day) {
				return m, true
			}
		}
	}
	return Match{}, false
}

// AutosaveDue reports whether enough days have passed since the last save.
func (s *GameState) AutosaveDue() bool {
	return s.Settings.AutosaveInterval > 0 && s.AutosaveCounter >= s.Settings.AutosaveInterval
}

func (s *GameState) addNews(e *Engine, kind NewsType, teamID, subject, message string) {
	s.News = append(s.News, NewsItem{
		ID:      e.newID(),
		Date:    dateOnly(s.CurrentDate),
		Type:    kind,
		Subject: subject,
		Message: message,
		TeamID:  teamID,
	})
	if n := len(s.News); n > maxNews {
		s.News = append([]NewsItem(nil), s.News[n-maxNews:]...)
	}
}

func resultMessage(home, away *Team, homeGoals, awayGoals int) string {
	switch {
	case homeGoals > awayGoals:
		return fmt.Sprintf("%s beat %s %d-%d at home.", home.Name, away.Name, homeGoals, awayGoals)
	case homeGoals < awayGoals:
		return fmt.Sprintf("%s won %d-%d away at %s.", away.Name, awayGoals, homeGoals, home.Name)
	default:
		return fmt.Sprintf("%s and %s drew %d-%d.", home.Name, away.Name, homeGoals, awayGoals)
	}
}
