package matchday

import "time"

// ScheduleLeague replaces the league's fixtures with a double round robin
// over its teams, one round per week from firstRound, and resets the table.
// With an odd number of teams one side rests each round.
func (e *Engine) ScheduleLeague(l *League, firstRound time.Time) {
	ids := append([]string(nil), l.TeamIDs...)
	if len(ids)%2 != 0 {
		ids = append(ids, "")
	}
	n := len(ids)

	var rounds [][][2]string
	for r := 0; r < n-1; r++ {
		var round [][2]string
		for j := 0; j < n/2; j++ {
			home, away := ids[j], ids[n-1-j]
			if home == "" || away == "" {
				continue
			}
			// Rotate home advantage for the fixed first slot.
			if j == 0 && r%2 == 1 {
				home, away = away, home
			}
			round = append(round, [2]string{home, away})
		}
		rounds = append(rounds, round)

		last := ids[n-1]
		copy(ids[2:], ids[1:n-1])
		ids[1] = last
	}
	perLeg := 0
	for _, round := range rounds {
		perLeg += len(round)
	}

	l.Fixtures = make([]Match, 0, 2*perLeg)
	start := dateOnly(firstRound)
	for leg := range 2 {
		for r, round := range rounds {
			matchday := leg*len(rounds) + r + 1
			date := start.AddDate(0, 0, 7*(matchday-1))
			for _, pair := range round {
				home, away := pair[0], pair[1]
				if leg == 1 {
					home, away = away, home
				}
				l.Fixtures = append(l.Fixtures, Match{
					ID:            e.newID(),
					HomeTeamID:    home,
					AwayTeamID:    away,
					Date:          date,
					LeagueID:      l.ID,
					Matchday:      matchday,
					Status:        MatchScheduled,
					Events:        []MatchEvent{},
					CommentaryLog: []Commentary{},
				})
			}
		}
	}

	l.Table = make([]TableEntry, 0, len(l.TeamIDs))
	for _, id := range l.TeamIDs {
		l.Table = append(l.Table, TableEntry{TeamID: id})
	}
	l.CurrentMatchday = 0
}
