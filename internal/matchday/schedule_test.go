package matchday

import (
	"testing"
	"time"
)

func TestScheduleLeague(t *testing.T) {
	tests := []struct {
		name      string
		teams     []string
		fixtures  int
		matchdays int
	}{
		{"eight teams", []string{"a", "b", "c", "d", "e", "f", "g", "h"}, 56, 14},
		{"odd team count", []string{"a", "b", "c", "d", "e"}, 20, 10},
		{"two teams", []string{"a", "b"}, 2, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := League{ID: "l", TeamIDs: tt.teams}
			start := time.Date(2023, time.August, 5, 15, 0, 0, 0, time.UTC)
			testEngine(1).ScheduleLeague(&l, start)

			if len(l.Fixtures) != tt.fixtures {
				t.Fatalf("got %d fixtures, want %d", len(l.Fixtures), tt.fixtures)
			}
			if len(l.Table) != len(tt.teams) {
				t.Errorf("table has %d entries, want %d", len(l.Table), len(tt.teams))
			}

			type pair struct{ home, away string }
			seen := map[pair]int{}
			perRound := map[int]map[string]bool{}
			maxMatchday := 0
			for _, m := range l.Fixtures {
				if m.HomeTeamID == m.AwayTeamID {
					t.Fatalf("team plays itself: %+v", m)
				}
				if m.Status != MatchScheduled || m.LeagueID != "l" {
					t.Fatalf("bad fixture: %+v", m)
				}
				seen[pair{m.HomeTeamID, m.AwayTeamID}]++
				if perRound[m.Matchday] == nil {
					perRound[m.Matchday] = map[string]bool{}
				}
				for _, id := range []string{m.HomeTeamID, m.AwayTeamID} {
					if perRound[m.Matchday][id] {
						t.Fatalf("%s plays twice on matchday %d", id, m.Matchday)
					}
					perRound[m.Matchday][id] = true
				}
				want := time.Date(2023, time.August, 5, 0, 0, 0, 0, time.UTC).AddDate(0, 0, 7*(m.Matchday-1))
				if !m.Date.Equal(want) {
					t.Fatalf("matchday %d on %s, want %s", m.Matchday, m.Date, want)
				}
				maxMatchday = max(maxMatchday, m.Matchday)
			}
			if maxMatchday != tt.matchdays {
				t.Errorf("last matchday = %d, want %d", maxMatchday, tt.matchdays)
			}
			for _, h := range tt.teams {
				for _, a := range tt.teams {
					if h == a {
						continue
					}
					if n := seen[pair{h, a}]; n != 1 {
						t.Errorf("%s v %s scheduled %d times, want 1", h, a, n)
					}
				}
			}
		})
	}
}
