package matchday

import "math"

// abilityFloor is returned when no meaningful ability can be computed.
const abilityFloor = 20

type weight struct {
	attr  Attribute
	value float64
}

// weights is ordered so that the floating-point sum is reproducible.
type weights []weight

// Every outfield map carries the all-rounder attributes (work rate, stamina,
// composure) at weight 1.
var positionWeights = map[Position]weights{
	PositionGK: {
		{AttrHandling, 3},
		{AttrReflexes, 3},
		{AttrPositioning, 2},
		{AttrStrength, 1},
		{AttrPace, 0.5},
		{AttrWorkRate, 1},
		{AttrStamina, 1},
		{AttrComposure, 1},
	},
	PositionDF: {
		{AttrTackling, 3},
		{AttrHeading, 2},
		{AttrPositioning, 2},
		{AttrStrength, 1.5},
		{AttrPace, 1},
		{AttrAggression, 1},
		{AttrWorkRate, 1},
		{AttrStamina, 1},
		{AttrComposure, 1},
	},
	PositionMF: {
		{AttrPassing, 2.5},
		{AttrVision, 2},
		{AttrTechnique, 2},
		{AttrDribbling, 1.5},
		{AttrPositioning, 1.5},
		{AttrTackling, 0.5},
		{AttrWorkRate, 1},
		{AttrStamina, 1},
		{AttrComposure, 1},
	},
	PositionFW: {
		{AttrShooting, 3},
		{AttrHeading, 1.5},
		{AttrDribbling, 1.5},
		{AttrPace, 1.5},
		{AttrTechnique, 1.5},
		{AttrStrength, 0.5},
		{AttrPositioning, 1},
		{AttrWorkRate, 1},
		{AttrStamina, 1},
		{AttrComposure, 1},
	},
}

var uniformWeights = func() weights {
	w := make(weights, 0, len(TrainableAttributes))
	for _, a := range TrainableAttributes {
		w = append(w, weight{a, 1})
	}
	return w
}()

func weightsFor(pos Position) weights {
	if w, ok := positionWeights[pos]; ok {
		return w
	}
	return uniformWeights
}

// CurrentAbility maps raw attributes and a general position to a single
// ability score in [0,100]. It never fails: malformed input yields 20.
func CurrentAbility(stats PlayerStats, pos Position) int {
	return abilityWith(stats, weightsFor(pos))
}

func abilityWith(stats PlayerStats, w weights) int {
	var sum, total float64
	for _, wt := range w {
		v, ok := stats.Get(wt.attr)
		if !ok || math.IsNaN(v) || math.IsInf(v, 0) {
			return abilityFloor
		}
		sum += v * wt.value
		total += wt.value
	}
	if total <= 0 {
		return abilityFloor
	}
	avg := math.Round(sum / total)
	return int(math.Max(0, math.Min(100, avg)))
}
