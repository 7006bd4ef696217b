package matchday

import (
	"cmp"
	"slices"
)

func tableEntry(l *League, teamID string) (*TableEntry, bool) {
	for i := range l.Table {
		if l.Table[i].TeamID == teamID {
			return &l.Table[i], true
		}
	}
	return nil, false
}

// recordResult applies one final score to both entries: played, goals,
// goal difference, exactly one of won/drawn/lost and the points for it.
func recordResult(home, away *TableEntry, homeGoals, awayGoals int) {
	home.Played++
	away.Played++
	home.GoalsFor += homeGoals
	home.GoalsAgainst += awayGoals
	away.GoalsFor += awayGoals
	away.GoalsAgainst += homeGoals
	home.GoalDifference = home.GoalsFor - home.GoalsAgainst
	away.GoalDifference = away.GoalsFor - away.GoalsAgainst

	switch {
	case homeGoals > awayGoals:
		home.Won++
		home.Points += 3
		away.Lost++
	case homeGoals < awayGoals:
		away.Won++
		away.Points += 3
		home.Lost++
	default:
		home.Drawn++
		away.Drawn++
		home.Points++
		away.Points++
	}
}

// tableUpdate returns the two updated entries for a result, or nil when the
// league table lacks either participant.
func tableUpdate(l *League, homeID, awayID string, homeGoals, awayGoals int) []TableEntry {
	if l == nil {
		return nil
	}
	h, okH := tableEntry(l, homeID)
	a, okA := tableEntry(l, awayID)
	if !okH || !okA {
		return nil
	}
	home, away := *h, *a
	recordResult(&home, &away, homeGoals, awayGoals)
	return []TableEntry{home, away}
}

// replaceEntries swaps updated entries into the league table by team id.
func replaceEntries(l *League, entries []TableEntry) {
	for _, e := range entries {
		if cur, ok := tableEntry(l, e.TeamID); ok {
			*cur = e
		}
	}
}

// Standings returns the table ordered by points, goal difference, goals
// scored and finally team name, with positions filled in. The league itself
// is not modified.
func Standings(l League, teams TeamLookup) []TableEntry {
	name := func(id string) string {
		if teams == nil {
			return id
		}
		if t, ok := teams.Team(id); ok {
			return t.Name
		}
		return id
	}

	out := slices.Clone(l.Table)
	slices.SortStableFunc(out, func(a, b TableEntry) int {
		if c := cmp.Compare(b.Points, a.Points); c != 0 {
			return c
		}
		if c := cmp.Compare(b.GoalDifference, a.GoalDifference); c != 0 {
			return c
		}
		if c := cmp.Compare(b.GoalsFor, a.GoalsFor); c != 0 {
			return c
		}
		return cmp.Compare(name(a.TeamID), name(b.TeamID))
	})
	for i := range out {
		out[i].Position = i + 1
	}
	return out
}
