package matchday

import (
	"errors"
	"slices"
	"testing"
)

func resolveState(homeLevel, awayLevel float64) *GameState {
	s := NewGameState(seasonStart, "")
	home, hp := squad("home", homeLevel)
	away, ap := squad("away", awayLevel)
	s.Teams = []Team{home, away}
	s.Players = append(hp, ap...)
	s.Leagues = []League{{
		ID:       "league",
		TeamIDs:  []string{"home", "away"},
		Fixtures: []Match{fixture("m1", "home", "away", day(1))},
	}}
	s.Normalize()
	return s
}

func TestResolveMatchStrongHomeSideWins(t *testing.T) {
	s := resolveState(80, 40)
	ix := s.Index()
	league, _ := ix.League("league")
	e := testEngine(42)

	const runs = 1000
	wins := 0
	for range runs {
		res, err := e.ResolveMatch(league.Fixtures[0], ix, ix, league)
		if err != nil {
			t.Fatalf("ResolveMatch: %v", err)
		}
		if res.Match.Result.HomeScore > res.Match.Result.AwayScore {
			wins++
		}
	}
	if rate := float64(wins) / runs; rate <= 0.55 {
		t.Errorf("home win rate = %.2f, want > 0.55", rate)
	}
}

func TestResolveMatchInvariants(t *testing.T) {
	e := testEngine(7)
	for i := range 300 {
		s := resolveState(float64(30+i%50), float64(70-i%40))
		ix := s.Index()
		league, _ := ix.League("league")

		res, err := e.ResolveMatch(league.Fixtures[0], ix, ix, league)
		if err != nil {
			t.Fatalf("ResolveMatch: %v", err)
		}
		m := res.Match
		if m.Status != MatchPlayed {
			t.Fatalf("status = %q, want played", m.Status)
		}
		if !slices.IsSortedFunc(m.Events, func(a, b MatchEvent) int { return a.Minute - b.Minute }) {
			t.Fatalf("events not sorted by minute: %+v", m.Events)
		}
		goals := 0
		for _, ev := range m.Events {
			if ev.Minute < 1 || ev.Minute > 90 {
				t.Fatalf("goal minute %d outside [1,90]", ev.Minute)
			}
			goals++
		}
		if goals != m.Result.HomeScore+m.Result.AwayScore {
			t.Fatalf("%d goal events for a %d-%d score", goals, m.Result.HomeScore, m.Result.AwayScore)
		}
		st := m.Stats
		if sum := st.HomePossession + st.AwayPossession; sum < 95 || sum > 105 {
			t.Fatalf("possession sums to %d", sum)
		}
		if st.HomePossession < 30 || st.HomePossession > 70 {
			t.Fatalf("home possession %d outside [30,70]", st.HomePossession)
		}
		if st.HomeShotsOnTarget > st.HomeShots || st.AwayShotsOnTarget > st.AwayShots {
			t.Fatalf("more shots on target than shots: %+v", st)
		}
		if st.HomeShotsOnTarget < m.Result.HomeScore || st.AwayShotsOnTarget < m.Result.AwayScore {
			t.Fatalf("fewer shots on target than goals: %+v for %+v", st, m.Result)
		}

		s.applyResolution(res)
		checkTable(t, s.Leagues[0])
	}
}

func TestResolveMatchDoesNotMutateInputs(t *testing.T) {
	s := resolveState(60, 60)
	before := s.Clone()
	ix := s.Index()
	league, _ := ix.League("league")

	if _, err := testEngine(1).ResolveMatch(league.Fixtures[0], ix, ix, league); err != nil {
		t.Fatalf("ResolveMatch: %v", err)
	}
	if s.Leagues[0].Fixtures[0].Status != MatchScheduled {
		t.Error("fixture was modified in place")
	}
	if !slices.Equal(s.Leagues[0].Table, before.Leagues[0].Table) {
		t.Error("table was modified in place")
	}
	for i := range s.Players {
		if s.Players[i].SeasonalStats != before.Players[i].SeasonalStats {
			t.Fatalf("player %s was modified in place", s.Players[i].ID)
		}
	}
}

func TestResolveMatchRejectsPlayedFixture(t *testing.T) {
	s := resolveState(60, 60)
	ix := s.Index()
	league, _ := ix.League("league")
	e := testEngine(1)

	res, err := e.ResolveMatch(league.Fixtures[0], ix, ix, league)
	if err != nil {
		t.Fatalf("ResolveMatch: %v", err)
	}
	s.applyResolution(res)
	table := slices.Clone(s.Leagues[0].Table)

	_, err = e.ResolveMatch(s.Leagues[0].Fixtures[0], ix, ix, &s.Leagues[0])
	if !errors.Is(err, ErrFixtureNotScheduled) {
		t.Fatalf("second resolve err = %v, want ErrFixtureNotScheduled", err)
	}
	if !slices.Equal(s.Leagues[0].Table, table) {
		t.Error("table changed after rejected resolve")
	}
}

func TestResolveMatchMissingTeamDegrades(t *testing.T) {
	s := resolveState(60, 60)
	s.Leagues[0].Fixtures[0].AwayTeamID = "nobody"
	ix := s.Index()
	league, _ := ix.League("league")

	res, err := testEngine(1).ResolveMatch(league.Fixtures[0], ix, ix, league)
	if err != nil {
		t.Fatalf("ResolveMatch: %v", err)
	}
	if !res.Degraded {
		t.Error("Degraded = false, want true")
	}
	if res.Match.Status != MatchPlayed || res.Match.Result != (MatchResult{}) {
		t.Errorf("degraded match = %+v, want played 0-0", res.Match)
	}
	if len(res.Match.Events) != 0 || len(res.Events) != 0 {
		t.Errorf("degraded match has events: %+v", res.Match.Events)
	}
	if res.Table != nil {
		t.Errorf("degraded match produced table entries: %+v", res.Table)
	}
}

func TestResolveMatchNilLeagueDegrades(t *testing.T) {
	s := resolveState(60, 60)
	ix := s.Index()
	res, err := testEngine(1).ResolveMatch(s.Leagues[0].Fixtures[0], ix, ix, nil)
	if err != nil {
		t.Fatalf("ResolveMatch: %v", err)
	}
	if !res.Degraded {
		t.Error("Degraded = false, want true")
	}
}

func TestResolveMatchMissingTableEntry(t *testing.T) {
	s := resolveState(60, 60)
	s.Leagues[0].Table = s.Leagues[0].Table[:1]
	ix := s.Index()
	league, _ := ix.League("league")

	res, err := testEngine(1).ResolveMatch(league.Fixtures[0], ix, ix, league)
	if err != nil {
		t.Fatalf("ResolveMatch: %v", err)
	}
	if res.Match.Status != MatchPlayed {
		t.Errorf("status = %q, want played", res.Match.Status)
	}
	if res.Table != nil {
		t.Errorf("table entries = %+v, want none", res.Table)
	}
}

func TestResolveMatchUpdatesPlayers(t *testing.T) {
	s := resolveState(60, 60)
	ix := s.Index()
	league, _ := ix.League("league")

	res, err := testEngine(3).ResolveMatch(league.Fixtures[0], ix, ix, league)
	if err != nil {
		t.Fatalf("ResolveMatch: %v", err)
	}
	if len(res.Players) != 22 {
		t.Fatalf("updated %d players, want 22", len(res.Players))
	}
	goals := 0
	for _, p := range res.Players {
		if p.SeasonalStats.Appearances != 1 {
			t.Errorf("%s appearances = %d, want 1", p.ID, p.SeasonalStats.Appearances)
		}
		goals += p.SeasonalStats.Goals
	}
	if want := res.Match.Result.HomeScore + res.Match.Result.AwayScore; goals != want {
		t.Errorf("credited %d goals, want %d", goals, want)
	}
}

func TestShiftMorale(t *testing.T) {
	tests := []struct {
		from  Morale
		steps int
		want  Morale
	}{
		{MoraleContent, -1, MoraleHappy},
		{MoraleContent, 1, MoraleUnsettled},
		{MoraleEcstatic, -1, MoraleEcstatic},
		{MoraleVeryUnhappy, 1, MoraleVeryUnhappy},
		{Morale("unknown"), 0, MoraleContent},
	}
	for _, tt := range tests {
		if got := shiftMorale(tt.from, tt.steps); got != tt.want {
			t.Errorf("shiftMorale(%q, %d) = %q, want %q", tt.from, tt.steps, got, tt.want)
		}
	}
}

func TestStandings(t *testing.T) {
	l := League{Table: []TableEntry{
		{TeamID: "c", Points: 6, GoalDifference: 2, GoalsFor: 5},
		{TeamID: "a", Points: 6, GoalDifference: 2, GoalsFor: 5},
		{TeamID: "b", Points: 6, GoalDifference: 4, GoalsFor: 5},
		{TeamID: "d", Points: 9, GoalDifference: -1, GoalsFor: 1},
		{TeamID: "e", Points: 6, GoalDifference: 2, GoalsFor: 7},
	}}
	got := Standings(l, nil)
	var order []string
	for i, e := range got {
		order = append(order, e.TeamID)
		if e.Position != i+1 {
			t.Errorf("%s position = %d, want %d", e.TeamID, e.Position, i+1)
		}
	}
	if want := []string{"d", "b", "e", "a", "c"}; !slices.Equal(order, want) {
		t.Errorf("order = %v, want %v", order, want)
	}
	if l.Table[0].TeamID != "c" {
		t.Error("Standings reordered the league table in place")
	}
}
