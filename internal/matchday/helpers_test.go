package matchday

import (
	"fmt"
	"strconv"
	"testing"
	"time"
)

var seasonStart = time.Date(2023, time.August, 1, 0, 0, 0, 0, time.UTC) // a Tuesday

func uniformStats(level float64) PlayerStats {
	var s PlayerStats
	for _, a := range TrainableAttributes {
		s.Set(a, level)
	}
	s.Potential = level
	s.Consistency = 50
	s.InjuryProneness = 20
	return s
}

var lineup = []Position{
	PositionGK,
	PositionDF, PositionDF, PositionDF, PositionDF,
	PositionMF, PositionMF, PositionMF, PositionMF,
	PositionFW, PositionFW,
}

// squad builds a team whose eleven starters all have every attribute at level.
func squad(teamID string, level float64) (Team, []Player) {
	t := Team{
		ID:        teamID,
		Name:      "Team " + teamID,
		ShortName: teamID,
		LeagueID:  "league",
		Formation: "4-4-2",
		Tactics:   Tactics{Mentality: MentalityBalanced},
	}
	var players []Player
	for i, pos := range lineup {
		id := teamID + "-p" + strconv.Itoa(i)
		players = append(players, Player{
			ID:              id,
			Name:            fmt.Sprintf("%s Player %d", teamID, i),
			Age:             25,
			GeneralPosition: pos,
			Position:        string(pos),
			Stats:           uniformStats(level),
			Morale:          MoraleContent,
			Contract:        Contract{ClubID: teamID},
			Personality:     Personality{Ambition: 50, Professionalism: 50},
		})
		t.PlayerIDs = append(t.PlayerIDs, id)
		t.Squad.StartingXI = append(t.Squad.StartingXI, id)
	}
	return t, players
}

func fixture(id, home, away string, date time.Time) Match {
	return Match{
		ID:         id,
		HomeTeamID: home,
		AwayTeamID: away,
		Date:       date,
		LeagueID:   "league",
		Status:     MatchScheduled,
	}
}

// fourTeamState returns a league of four equal teams with the player managing
// "a". Fixtures must be added by the caller.
func fourTeamState() *GameState {
	s := NewGameState(seasonStart, "a")
	league := League{ID: "league", Name: "Test League"}
	for _, id := range []string{"a", "b", "c", "d"} {
		t, ps := squad(id, 60)
		s.Teams = append(s.Teams, t)
		s.Players = append(s.Players, ps...)
		league.TeamIDs = append(league.TeamIDs, id)
	}
	s.Leagues = append(s.Leagues, league)
	s.Normalize()
	return s
}

func counterIDs() func() string {
	n := 0
	return func() string {
		n++
		return "id-" + strconv.Itoa(n)
	}
}

func testEngine(seed uint64, opts ...Option) *Engine {
	return NewEngine(NewRand(seed), append([]Option{WithIDs(counterIDs())}, opts...)...)
}

func day(n int) time.Time {
	return seasonStart.AddDate(0, 0, n)
}

func checkTable(t *testing.T, l League) {
	t.Helper()
	for _, e := range l.Table {
		if e.Points != 3*e.Won+e.Drawn {
			t.Errorf("%s: points = %d, want %d", e.TeamID, e.Points, 3*e.Won+e.Drawn)
		}
		if e.GoalDifference != e.GoalsFor-e.GoalsAgainst {
			t.Errorf("%s: goal difference = %d, want %d", e.TeamID, e.GoalDifference, e.GoalsFor-e.GoalsAgainst)
		}
		if e.Played != e.Won+e.Drawn+e.Lost {
			t.Errorf("%s: played = %d, want %d", e.TeamID, e.Played, e.Won+e.Drawn+e.Lost)
		}
	}
}
