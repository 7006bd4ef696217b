package matchday

import "math"

const (
	startersPerSide     = 11
	unfieldableStrength = 30
	homeAdvantage       = 1.1
	defaultFitness      = 0.5
)

var moraleMultiplier = map[Morale]float64{
	MoraleEcstatic:    1.1,
	MoraleHappy:       1.05,
	MoraleContent:     1.0,
	MoraleUnsettled:   0.97,
	MoraleUnhappy:     0.95,
	MoraleVeryUnhappy: 0.95,
}

func mentalityMultiplier(m Mentality) float64 {
	switch m {
	case MentalityAttacking:
		return 1.1
	case MentalityDefensive:
		return 0.9
	default:
		return 1.0
	}
}

// starters returns at most eleven ids from the front of the starting XI.
func starters(t *Team) []string {
	xi := t.Squad.StartingXI
	if len(xi) > startersPerSide {
		xi = xi[:startersPerSide]
	}
	return xi
}

// TeamMatchStrength combines the starting XI's ability, morale and fitness
// with home advantage and mentality into one match-strength scalar.
// Starters that cannot be resolved count as zero.
func TeamMatchStrength(team *Team, players PlayerLookup, isHome bool) float64 {
	return teamStrength(team, players, isHome, team.Tactics)
}

func teamStrength(team *Team, players PlayerLookup, isHome bool, tactics Tactics) float64 {
	xi := starters(team)
	if len(xi) == 0 {
		return unfieldableStrength
	}

	var total float64
	for _, id := range xi {
		p, ok := players.Player(id)
		if !ok {
			continue
		}
		total += playerContribution(p)
	}

	avg := total / float64(len(xi))
	if isHome {
		avg *= homeAdvantage
	}
	return avg * mentalityMultiplier(tactics.Mentality)
}

func playerContribution(p *Player) float64 {
	ability := float64(CurrentAbility(p.Stats, p.GeneralPosition))
	morale, ok := moraleMultiplier[p.Morale]
	if !ok {
		morale = 1.0
	}
	fitness := defaultFitness
	if s := p.Stats.Stamina; s > 0 && !math.IsNaN(s) {
		fitness = s / 100
	}
	return ability * morale * fitness
}
