package matchday

import (
	"cmp"
	"fmt"
	"math"
	"slices"
)

// Resolution is the outcome of one instantly simulated fixture. Nothing in it
// aliases the inputs; the caller merges it into its snapshot.
type Resolution struct {
	Match   Match
	Table   []TableEntry
	Events  []MatchEvent
	Players []Player

	// Degraded is set when the fixture could not be simulated and was
	// closed as a 0-0 instead.
	Degraded bool
}

// ResolveMatch simulates a scheduled fixture without a time dimension.
//
// A fixture that is not scheduled is rejected. Missing teams or league do
// not fail: the fixture is closed as a 0-0 with no events so that a bulk day
// advance can carry on.
func (e *Engine) ResolveMatch(fixture Match, teams TeamLookup, players PlayerLookup, league *League) (Resolution, error) {
	if fixture.Status != MatchScheduled {
		return Resolution{}, fmt.Errorf("resolving %s: %w", fixture.ID, ErrFixtureNotScheduled)
	}

	home, okH := teams.Team(fixture.HomeTeamID)
	away, okA := teams.Team(fixture.AwayTeamID)
	if !okH || !okA || league == nil {
		e.logger.Warn("fixture participants unresolved, recording 0-0",
			"match_id", fixture.ID,
			"home_team_id", fixture.HomeTeamID,
			"away_team_id", fixture.AwayTeamID,
			"league_id", fixture.LeagueID,
		)
		return Resolution{Match: degraded(fixture), Events: []MatchEvent{}, Degraded: true}, nil
	}

	homeStrength := TeamMatchStrength(home, players, true)
	awayStrength := TeamMatchStrength(away, players, false)
	diff := homeStrength - awayStrength
	swing := diff + uniform(e.rng, -e.jitterRange, e.jitterRange)

	goals := e.goalCount(swing)
	homeShare := homeGoalShare(swing)

	events := make([]MatchEvent, 0, goals)
	for range goals {
		minute := e.rng.IntN(e.fullTime) + 1
		side := away
		if e.rng.Float64() < homeShare {
			side = home
		}
		events = append(events, MatchEvent{
			Minute:   minute,
			Type:     EventGoal,
			TeamID:   side.ID,
			PlayerID: e.pickScorer(side, players),
			Details:  "Goal scored",
		})
	}
	slices.SortStableFunc(events, func(a, b MatchEvent) int { return cmp.Compare(a.Minute, b.Minute) })

	var homeGoals, awayGoals int
	for _, ev := range events {
		if ev.TeamID == home.ID {
			homeGoals++
		} else {
			awayGoals++
		}
	}

	m := fixture
	m.Status = MatchPlayed
	m.Result = MatchResult{HomeScore: homeGoals, AwayScore: awayGoals}
	m.Events = events
	m.Stats = deriveStats(homeGoals, awayGoals, diff)
	m.CommentaryLog = e.goalCommentary(events, home, away, players)

	table := tableUpdate(league, home.ID, away.ID, homeGoals, awayGoals)
	if table == nil {
		e.logger.Warn("league table missing a participant, table left unchanged",
			"match_id", fixture.ID,
			"league_id", league.ID,
		)
	}

	return Resolution{
		Match:   m,
		Table:   table,
		Events:  slices.Clone(events),
		Players: matchdayPlayers(home, away, players, events, homeGoals, awayGoals),
	}, nil
}

func degraded(fixture Match) Match {
	m := fixture
	m.Status = MatchPlayed
	m.Result = MatchResult{}
	m.Events = []MatchEvent{}
	m.CommentaryLog = []Commentary{}
	m.Stats = MatchStats{HomePossession: 50, AwayPossession: 50}
	return m
}

// goalCount scales the strength swing into a small total. A level game
// draws from 0..2, a lopsided one from 0..5.
func (e *Engine) goalCount(swing float64) int {
	span := 3 + math.Abs(swing)*3/50
	if span > e.maxGoalSpan {
		span = e.maxGoalSpan
	}
	return int(e.rng.Float64() * span)
}

// homeGoalShare is the probability that a single goal goes to the home side.
// The favored side gets at least 60% and up to 85% for a large swing.
func homeGoalShare(swing float64) float64 {
	favored := 0.6 + math.Min(0.25, math.Abs(swing)/200)
	if swing > 0 {
		return favored
	}
	return 1 - favored
}

// deriveStats produces shots and possession from the final score and the
// strength difference. Possession is skewed toward the stronger side and
// always sums to 100.
func deriveStats(homeGoals, awayGoals int, diff float64) MatchStats {
	tilt := int(math.Round(diff / 10))
	homeShots := 4 + homeGoals*3 + max(0, tilt)
	awayShots := 4 + awayGoals*3 + max(0, -tilt)
	possession := int(math.Round(50 + diff/2))
	possession = max(30, min(70, possession))
	return MatchStats{
		HomeShots:         homeShots,
		AwayShots:         awayShots,
		HomeShotsOnTarget: homeGoals + (homeShots-homeGoals)/3,
		AwayShotsOnTarget: awayGoals + (awayShots-awayGoals)/3,
		HomePossession:    possession,
		AwayPossession:    100 - possession,
	}
}

// pickScorer chooses a scorer among the side's resolvable starters,
// preferring outfield players. It returns "" when nobody can be resolved.
func (e *Engine) pickScorer(t *Team, players PlayerLookup) string {
	var outfield, keepers []string
	for _, id := range starters(t) {
		p, ok := players.Player(id)
		if !ok {
			continue
		}
		if p.GeneralPosition == PositionGK {
			keepers = append(keepers, id)
		} else {
			outfield = append(outfield, id)
		}
	}
	pool := outfield
	if len(pool) == 0 {
		pool = keepers
	}
	if len(pool) == 0 {
		return ""
	}
	return pool[e.rng.IntN(len(pool))]
}

func (e *Engine) goalCommentary(events []MatchEvent, home, away *Team, players PlayerLookup) []Commentary {
	log := make([]Commentary, 0, len(events))
	for _, ev := range events {
		team := away
		if ev.TeamID == home.ID {
			team = home
		}
		text := fmt.Sprintf("Goal by %s", team.Name)
		if p, ok := players.Player(ev.PlayerID); ok {
			text = fmt.Sprintf("Goal by %s (%s)", team.Name, p.Name)
		}
		log = append(log, Commentary{
			ID:     e.newID(),
			Minute: ev.Minute,
			Text:   text,
			Type:   EventGoal,
			TeamID: team.ID,
		})
	}
	return log
}

// matchdayPlayers returns updated copies of every starter who took part:
// one more appearance, goals credited to scorers, and a morale step up for
// the winners and down for the losers.
func matchdayPlayers(home, away *Team, players PlayerLookup, events []MatchEvent, homeGoals, awayGoals int) []Player {
	goals := make(map[string]int)
	for _, ev := range events {
		if ev.Type == EventGoal && ev.PlayerID != "" {
			goals[ev.PlayerID]++
		}
	}

	step := func(t *Team) int {
		switch {
		case homeGoals == awayGoals:
			return 0
		case (t == home) == (homeGoals > awayGoals):
			return -1
		default:
			return 1
		}
	}

	var out []Player
	seen := make(map[string]bool)
	for _, t := range []*Team{home, away} {
		delta := step(t)
		for _, id := range starters(t) {
			p, ok := players.Player(id)
			if !ok || seen[id] {
				continue
			}
			seen[id] = true
			updated := *p
			updated.SeasonalStats.Appearances++
			updated.SeasonalStats.Goals += goals[id]
			updated.Morale = shiftMorale(updated.Morale, delta)
			out = append(out, updated)
		}
	}
	return out
}

// shiftMorale moves m along the ladder; negative steps are happier.
func shiftMorale(m Morale, steps int) Morale {
	i := slices.Index(moraleLadder, m)
	if i < 0 {
		i = slices.Index(moraleLadder, MoraleContent)
	}
	i = max(0, min(len(moraleLadder)-1, i+steps))
	return moraleLadder[i]
}

// applyResolution merges a resolution into the state it was computed from.
func (s *GameState) applyResolution(res Resolution) {
	league, idx, ok := s.FindMatch(res.Match.ID)
	if !ok {
		return
	}
	league.Fixtures[idx] = res.Match
	replaceEntries(league, res.Table)
	s.mergePlayers(res.Players)
}

func (s *GameState) mergePlayers(updated []Player) {
	if len(updated) == 0 {
		return
	}
	byID := make(map[string]int, len(s.Players))
	for i := range s.Players {
		byID[s.Players[i].ID] = i
	}
	for _, p := range updated {
		if i, ok := byID[p.ID]; ok {
			s.Players[i] = p
		}
	}
}
