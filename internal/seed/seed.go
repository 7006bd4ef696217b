// Package seed generates a playable demo career: one league of clubs with
// full squads and a double round-robin season.
package seed

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/playperu/matchday/internal/matchday"
)

// DefaultTeams is the league size when Options.Teams is unset.
const DefaultTeams = 8

const (
	minAge          = 17
	maxAge          = 33
	basePlayerValue = 50000
	squadSize       = 16
)

var (
	DefaultStart      = time.Date(2023, time.July, 1, 0, 0, 0, 0, time.UTC)
	DefaultFirstRound = time.Date(2023, time.August, 5, 0, 0, 0, 0, time.UTC)
)

var (
	cities = []string{
		"Ashford", "Bramley", "Castleton", "Dunmore", "Eastwick", "Fairhaven",
		"Glenrock", "Harrowgate", "Ivybridge", "Kingsmoor", "Longford", "Marston",
	}
	suffixes = []string{
		"United", "City", "Rovers", "Wanderers", "Athletic", "Town",
		"Albion", "Rangers", "Harriers", "County", "Borough", "Olympic",
	}
	firstNames = []string{
		"James", "Luca", "Mateo", "Noah", "Oliver", "Diego", "Finn", "Hugo",
		"Karim", "Leon", "Marco", "Niko", "Pablo", "Rafael", "Sami", "Tomas",
	}
	lastNames = []string{
		"Adams", "Baker", "Costa", "Dubois", "Evans", "Fischer", "Garcia",
		"Hughes", "Jensen", "Keller", "Lopez", "Moreau", "Novak", "Okafor",
		"Price", "Rossi", "Silva", "Turner", "Weber", "Young",
	}
	nationalities = []string{"English", "Spanish", "German", "Italian", "French"}

	// Eleven starters in 4-4-2 order, then five substitutes.
	squadPositions = []string{
		"GK", "DR", "DC", "DC", "DL", "MR", "MC", "MC", "ML", "ST", "ST",
		"GK", "DC", "DMC", "AMC", "ST",
	}
)

// Options shapes the generated career. Zero values select the defaults.
type Options struct {
	Teams       int
	PlayerTeam  int
	ManagerName string
	Start       time.Time
	FirstRound  time.Time
}

// Demo builds a new career. IDs come from the engine and every random draw
// from rng, so a seeded rng reproduces the same world.
func Demo(e *matchday.Engine, rng matchday.Rand, opts Options) *matchday.GameState {
	if opts.Teams < 2 {
		opts.Teams = DefaultTeams
	}
	if opts.Start.IsZero() {
		opts.Start = DefaultStart
	}
	if opts.FirstRound.IsZero() {
		opts.FirstRound = DefaultFirstRound
	}
	if opts.PlayerTeam < 0 || opts.PlayerTeam >= opts.Teams {
		opts.PlayerTeam = 0
	}

	league := matchday.League{
		ID:      "league-1",
		Name:    "Premier Division",
		Country: "England",
	}
	s := matchday.NewGameState(opts.Start, "")

	names := teamNames(rng, opts.Teams)
	for i := range opts.Teams {
		team := newTeam(rng, fmt.Sprintf("team-%d", i+1), names[i], league.ID)
		for j, pos := range squadPositions {
			p := newPlayer(rng, fmt.Sprintf("%s-player-%d", team.ID, j+1), pos, team.ID, opts.Start)
			s.Players = append(s.Players, p)
			team.PlayerIDs = append(team.PlayerIDs, p.ID)
			switch {
			case j < 11:
				team.Squad.StartingXI = append(team.Squad.StartingXI, p.ID)
			default:
				team.Squad.Subs = append(team.Squad.Subs, p.ID)
			}
		}
		if i == opts.PlayerTeam {
			team.ManagerName = opts.ManagerName
			s.PlayerTeamID = team.ID
		}
		s.Teams = append(s.Teams, team)
		league.TeamIDs = append(league.TeamIDs, team.ID)
	}

	e.ScheduleLeague(&league, opts.FirstRound)
	s.Leagues = []matchday.League{league}
	s.Normalize()
	return s
}

func teamNames(rng matchday.Rand, n int) []string {
	pool := slices.Clone(cities)
	var out []string
	for i := range n {
		city := fmt.Sprintf("Club %d", i+1)
		if len(pool) > 0 {
			k := rng.IntN(len(pool))
			city = pool[k]
			pool = slices.Delete(pool, k, k+1)
		}
		out = append(out, city+" "+suffixes[rng.IntN(len(suffixes))])
	}
	return out
}

func newTeam(rng matchday.Rand, id, name, leagueID string) matchday.Team {
	var short strings.Builder
	for _, w := range strings.Fields(name) {
		short.WriteByte(w[0])
	}
	return matchday.Team{
		ID:        id,
		Name:      name,
		ShortName: strings.ToUpper(short.String()),
		LeagueID:  leagueID,
		Formation: "4-4-2",
		Tactics: matchday.Tactics{
			Mentality:         matchday.MentalityBalanced,
			PassingStyle:      "mixed",
			PressingIntensity: "medium",
		},
		Finances: matchday.Finances{
			Balance:        int64(between(rng, 1_000_000, 21_000_000)),
			WageBudget:     int64(between(rng, 50_000, 550_000)),
			TransferBudget: int64(between(rng, 1_000_000, 11_000_000)),
		},
		TrainingFacilitiesLevel: between(rng, 1, 3),
	}
}

func newPlayer(rng matchday.Rand, id, position, clubID string, today time.Time) matchday.Player {
	age := between(rng, minAge, maxAge)
	potential := between(rng, 45, 88)
	stat := func(lo, hi int) float64 {
		return float64(between(rng, lo, max(lo, hi)))
	}

	keeper := position == "GK"
	gk := func() float64 {
		if keeper {
			return stat(30, min(75, potential-10))
		}
		return stat(5, 20)
	}

	stats := matchday.PlayerStats{
		Passing:         stat(20, min(70, potential-15)),
		Shooting:        stat(20, min(70, potential-15)),
		Tackling:        stat(20, min(70, potential-15)),
		Dribbling:       stat(20, min(70, potential-15)),
		Heading:         stat(20, min(70, potential-15)),
		Technique:       stat(20, min(70, potential-15)),
		Handling:        gk(),
		Reflexes:        gk(),
		Aggression:      stat(20, min(70, potential-5)),
		Positioning:     stat(20, min(60, potential-10)),
		Vision:          stat(20, min(60, potential-10)),
		Composure:       stat(20, min(60, potential-10)),
		WorkRate:        stat(30, min(75, potential-5)),
		Pace:            stat(30, min(75, potential-5)),
		Stamina:         stat(30, min(75, potential-5)),
		Strength:        stat(30, min(75, potential-5)),
		Potential:       float64(potential),
		Consistency:     stat(5, 15),
		InjuryProneness: stat(1, 10),
	}

	expiry := today.AddDate(between(rng, 1, 4), 0, 0)
	p := matchday.Player{
		ID:              id,
		Name:            firstNames[rng.IntN(len(firstNames))] + " " + lastNames[rng.IntN(len(lastNames))],
		Age:             age,
		Nationality:     nationalities[rng.IntN(len(nationalities))],
		Position:        position,
		GeneralPosition: GeneralPosition(position),
		Stats:           stats,
		Personality: matchday.Personality{
			Ambition:        stat(1, 100),
			Professionalism: stat(1, 100),
			Loyalty:         stat(1, 100),
			Leadership:      stat(1, 100),
			Temperament:     stat(1, 100),
		},
		Morale: matchday.MoraleContent,
		Contract: matchday.Contract{
			ClubID:     clubID,
			Wage:       int64(between(rng, 500, 15000)),
			ExpiryDate: &expiry,
		},
	}
	p.Value = playerValue(p)
	return p
}

// GeneralPosition maps a detailed position code to its line.
func GeneralPosition(position string) matchday.Position {
	switch {
	case position == "GK":
		return matchday.PositionGK
	case strings.HasPrefix(position, "D"), position == "SW":
		return matchday.PositionDF
	case strings.HasPrefix(position, "AM"), strings.HasPrefix(position, "M"):
		return matchday.PositionMF
	case position == "ST", strings.HasPrefix(position, "F"):
		return matchday.PositionFW
	default:
		return matchday.PositionMF
	}
}

func playerValue(p matchday.Player) int64 {
	v := basePlayerValue + p.Stats.Potential*p.Stats.Potential*50
	switch {
	case p.Age < 21:
		v *= 1.5
	case p.Age < 25:
		v *= 1.2
	case p.Age > 30:
		v *= 0.7
	}
	return int64(v)
}

// between returns an int in [lo, hi].
func between(rng matchday.Rand, lo, hi int) int {
	return lo + rng.IntN(hi-lo+1)
}
