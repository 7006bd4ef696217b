package matchday

import (
	"fmt"
	"math"
	"slices"
	"strings"
)

const ballDrift = 5.0

// MinuteResult is what one simulated minute adds to a live match.
type MinuteResult struct {
	Events    []Commentary
	HomeScore int
	AwayScore int
	Ball      Point
}

var minuteTemplates = []string{
	"{team} keep the ball in midfield",
	"{team} on the attack here",
	"Beautiful passing move by {team}",
	"{team} win a corner",
	"Free kick awarded to {team}",
	"The ball goes out for a {team} throw-in",
	"Close! {team} just wide of the target",
	"Great save denies {team}",
	"{team} press high and force a turnover",
	"Crucial tackle stops {team} in their tracks",
}

// SimulateMinute advances a live match by one minute. It keeps no state
// between calls and never touches fixtures or tables; the caller merges the
// result.
func (e *Engine) SimulateMinute(live LiveMatchState, state *GameState) MinuteResult {
	minute := live.Minute + 1
	res := MinuteResult{
		HomeScore: live.HomeScore,
		AwayScore: live.AwayScore,
		Ball: Point{
			X: clampPitch(live.BallPosition.X + uniform(e.rng, -ballDrift, ballDrift)),
			Y: clampPitch(live.BallPosition.Y + uniform(e.rng, -ballDrift, ballDrift)),
		},
	}

	home, away, ix := liveTeams(live, state)
	attacking := home
	if res.Ball.X < 50 {
		attacking = away
	}
	line := minuteTemplates[e.rng.IntN(len(minuteTemplates))]
	res.Events = append(res.Events, Commentary{
		ID:     e.newID(),
		Minute: minute,
		Text:   strings.ReplaceAll(line, "{team}", attacking.Name),
		TeamID: attacking.ID,
	})

	if e.rng.Float64() >= e.goalChance {
		return res
	}

	scorer := away
	if e.rng.Float64() < liveHomeShare(live, home, away, ix) {
		scorer = home
	}
	if scorer == home {
		res.HomeScore++
	} else {
		res.AwayScore++
	}
	goal := Commentary{
		ID:     e.newID(),
		Minute: minute,
		Text:   fmt.Sprintf("GOAL! %s score! (%d-%d)", scorer.Name, res.HomeScore, res.AwayScore),
		Type:   EventGoal,
		TeamID: scorer.ID,
	}
	if ix != nil {
		if id := e.pickScorer(scorer, ix); id != "" {
			goal.PlayerID = id
			if p, ok := ix.Player(id); ok {
				goal.Text = fmt.Sprintf("GOAL! %s score through %s! (%d-%d)", scorer.Name, p.Name, res.HomeScore, res.AwayScore)
			}
		}
	}
	res.Events = append(res.Events, goal)
	res.Ball = Point{X: 50, Y: 50}
	return res
}

// liveTeams resolves both sides of the live fixture. Missing records are
// replaced by placeholders so that commentary can still be written.
func liveTeams(live LiveMatchState, state *GameState) (*Team, *Team, *Index) {
	home := &Team{ID: "home", Name: "Home"}
	away := &Team{ID: "away", Name: "Away"}
	if state == nil {
		return home, away, nil
	}
	ix := state.Index()
	league, idx, ok := state.FindMatch(live.MatchID)
	if !ok {
		return home, away, ix
	}
	m := league.Fixtures[idx]
	if t, ok := ix.Team(m.HomeTeamID); ok {
		home = t
	}
	if t, ok := ix.Team(m.AwayTeamID); ok {
		away = t
	}
	return home, away, ix
}

// liveHomeShare is the chance a live goal goes to the home side, from the
// relative strength under the tactics snapshotted at kickoff.
func liveHomeShare(live LiveMatchState, home, away *Team, ix *Index) float64 {
	if ix == nil {
		return 0.5
	}
	hs := teamStrength(home, ix, true, live.HomeTactics)
	as := teamStrength(away, ix, false, live.AwayTactics)
	if hs+as <= 0 {
		return 0.5
	}
	return math.Max(0.3, math.Min(0.7, hs/(hs+as)))
}

func clampPitch(v float64) float64 {
	return math.Max(0, math.Min(100, v))
}

// StartLiveMatch kicks off a scheduled fixture as the live match. Only one
// live match may exist; a second start is rejected and the active one is
// left untouched.
func (e *Engine) StartLiveMatch(s *GameState, matchID string) (*GameState, error) {
	c := s.Clone()
	if err := e.startLive(c, matchID); err != nil {
		return s, err
	}
	return c, nil
}

func (e *Engine) startLive(c *GameState, matchID string) error {
	if c.LiveMatch != nil {
		return ErrLiveMatchActive
	}
	league, idx, ok := c.FindMatch(matchID)
	if !ok {
		return fmt.Errorf("starting %q: %w", matchID, ErrMatchNotFound)
	}
	m := &league.Fixtures[idx]
	if m.Status != MatchScheduled {
		return fmt.Errorf("starting %q: %w", matchID, ErrFixtureNotScheduled)
	}
	if !c.IsPlayerFixture(*m) {
		return fmt.Errorf("starting %q: %w", matchID, ErrNotPlayerFixture)
	}

	ix := c.Index()
	live := &LiveMatchState{
		MatchID:      matchID,
		Status:       LivePlaying,
		BallPosition: Point{X: 50, Y: 50},
	}
	homeName, awayName := m.HomeTeamID, m.AwayTeamID
	if t, ok := ix.Team(m.HomeTeamID); ok {
		live.HomeTactics = t.Tactics
		homeName = t.Name
	}
	if t, ok := ix.Team(m.AwayTeamID); ok {
		live.AwayTactics = t.Tactics
		awayName = t.Name
	}
	live.Commentary = []Commentary{{
		ID:   e.newID(),
		Text: fmt.Sprintf("Kick-off! %s vs %s is underway.", homeName, awayName),
		Type: "KickOff",
	}}

	m.Status = MatchInProgress
	c.LiveMatch = live
	return nil
}

// TickLiveMatch merges one simulated minute into a playing live match.
// Ticks while paused or after full time change nothing.
func (e *Engine) TickLiveMatch(s *GameState) (*GameState, error) {
	if s.LiveMatch == nil {
		return s, ErrNoLiveMatch
	}
	if s.LiveMatch.Status != LivePlaying {
		return s, nil
	}
	c := s.Clone()
	e.tick(c)
	return c, nil
}

func (e *Engine) tick(c *GameState) {
	lm := c.LiveMatch
	if lm.Minute >= e.fullTime {
		e.fullTimeWhistle(c)
		return
	}

	res := e.SimulateMinute(*lm, c)
	lm.Minute++
	lm.HomeScore = res.HomeScore
	lm.AwayScore = res.AwayScore
	lm.BallPosition = res.Ball
	lm.Commentary = append(lm.Commentary, res.Events...)

	switch {
	case lm.Minute >= e.fullTime:
		e.fullTimeWhistle(c)
	case lm.Minute == e.halfTime && c.Settings.HalfTimeBreak:
		lm.Status = LiveHalfTime
		lm.Commentary = append(lm.Commentary, Commentary{
			ID:     e.newID(),
			Minute: lm.Minute,
			Text:   fmt.Sprintf("Half-time. (%d-%d)", lm.HomeScore, lm.AwayScore),
			Type:   "HalfTime",
		})
	}
}

func (e *Engine) fullTimeWhistle(c *GameState) {
	lm := c.LiveMatch
	if lm.Status != LiveFullTime {
		lm.Status = LiveFullTime
		lm.Commentary = append(lm.Commentary, Commentary{
			ID:     e.newID(),
			Minute: lm.Minute,
			Text:   fmt.Sprintf("Full-time. (%d-%d)", lm.HomeScore, lm.AwayScore),
			Type:   "FullTime",
		})
	}
	e.finalizeLive(c)
}

// finalizeLive folds the live score into the fixture, the table and the
// players. It acts only while the fixture is in progress, so it runs once.
func (e *Engine) finalizeLive(c *GameState) {
	lm := c.LiveMatch
	league, idx, ok := c.FindMatch(lm.MatchID)
	if !ok {
		e.logger.Warn("live match fixture vanished, result dropped", "match_id", lm.MatchID)
		return
	}
	m := &league.Fixtures[idx]
	if m.Status != MatchInProgress {
		return
	}

	ix := c.Index()
	var events []MatchEvent
	for _, line := range lm.Commentary {
		if line.Type != EventGoal {
			continue
		}
		events = append(events, MatchEvent{
			Minute:   line.Minute,
			Type:     EventGoal,
			TeamID:   line.TeamID,
			PlayerID: line.PlayerID,
			Details:  "Goal scored",
		})
	}
	if events == nil {
		events = []MatchEvent{}
	}

	var diff float64
	home, okH := ix.Team(m.HomeTeamID)
	away, okA := ix.Team(m.AwayTeamID)
	if okH && okA {
		diff = teamStrength(home, ix, true, lm.HomeTactics) - teamStrength(away, ix, false, lm.AwayTactics)
	}

	m.Status = MatchPlayed
	m.Result = MatchResult{HomeScore: lm.HomeScore, AwayScore: lm.AwayScore}
	m.Events = events
	m.Stats = deriveStats(lm.HomeScore, lm.AwayScore, diff)
	m.CommentaryLog = slices.Clone(lm.Commentary)

	if entries := tableUpdate(league, m.HomeTeamID, m.AwayTeamID, lm.HomeScore, lm.AwayScore); entries != nil {
		replaceEntries(league, entries)
	} else {
		e.logger.Warn("league table missing a participant, table left unchanged",
			"match_id", m.ID,
			"league_id", league.ID,
		)
	}
	if okH && okA {
		c.mergePlayers(matchdayPlayers(home, away, ix, events, lm.HomeScore, lm.AwayScore))
		c.addNews(e, NewsLiveMatch, c.PlayerTeamID,
			fmt.Sprintf("Full time: %s %d-%d %s", home.Name, lm.HomeScore, lm.AwayScore, away.Name),
			resultMessage(home, away, lm.HomeScore, lm.AwayScore),
		)
	}
	league.CurrentMatchday = max(league.CurrentMatchday, m.Matchday)
}

// PauseLiveMatch stops the clock of a playing live match.
func (e *Engine) PauseLiveMatch(s *GameState) (*GameState, error) {
	if s.LiveMatch == nil {
		return s, ErrNoLiveMatch
	}
	if s.LiveMatch.Status != LivePlaying {
		return s, nil
	}
	c := s.Clone()
	c.LiveMatch.Status = LivePaused
	return c, nil
}

// ResumeLiveMatch restarts a paused match or the second half after a
// half-time break.
func (e *Engine) ResumeLiveMatch(s *GameState) (*GameState, error) {
	if s.LiveMatch == nil {
		return s, ErrNoLiveMatch
	}
	if st := s.LiveMatch.Status; st != LivePaused && st != LiveHalfTime {
		return s, nil
	}
	c := s.Clone()
	c.LiveMatch.Status = LivePlaying
	return c, nil
}

// EndLiveMatch closes the live match and hands control back to time
// advancement. A match that has not reached full time is played out to the
// final whistle first, so ending early is a skip, not an abandonment.
func (e *Engine) EndLiveMatch(s *GameState) (*GameState, error) {
	if s.LiveMatch == nil {
		return s, ErrNoLiveMatch
	}
	c := s.Clone()
	for c.LiveMatch.Status != LiveFullTime {
		c.LiveMatch.Status = LivePlaying
		e.tick(c)
	}
	e.finalizeLive(c)
	c.LiveMatch = nil
	if c.DayPending {
		e.continueDay(c)
	}
	return c, nil
}
