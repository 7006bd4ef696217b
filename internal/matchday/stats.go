package matchday

// Attribute names one numeric field of PlayerStats.
type Attribute string

const (
	AttrPassing         Attribute = "passing"
	AttrShooting        Attribute = "shooting"
	AttrTackling        Attribute = "tackling"
	AttrDribbling       Attribute = "dribbling"
	AttrHeading         Attribute = "heading"
	AttrTechnique       Attribute = "technique"
	AttrHandling        Attribute = "handling"
	AttrReflexes        Attribute = "reflexes"
	AttrAggression      Attribute = "aggression"
	AttrPositioning     Attribute = "positioning"
	AttrVision          Attribute = "vision"
	AttrComposure       Attribute = "composure"
	AttrWorkRate        Attribute = "workRate"
	AttrPace            Attribute = "pace"
	AttrStamina         Attribute = "stamina"
	AttrStrength        Attribute = "strength"
	AttrPotential       Attribute = "potential"
	AttrConsistency     Attribute = "consistency"
	AttrInjuryProneness Attribute = "injuryProneness"
)

// TrainableAttributes lists every attribute the development pass may move.
// Potential, consistency and injury proneness are fixed traits.
var TrainableAttributes = []Attribute{
	AttrPassing,
	AttrShooting,
	AttrTackling,
	AttrDribbling,
	AttrHeading,
	AttrTechnique,
	AttrHandling,
	AttrReflexes,
	AttrAggression,
	AttrPositioning,
	AttrVision,
	AttrComposure,
	AttrWorkRate,
	AttrPace,
	AttrStamina,
	AttrStrength,
}

// PlayerStats holds raw attributes on a 1-99 scale. Values are fractional so
// that small weekly development steps accumulate.
type PlayerStats struct {
	Passing         float64 `json:"passing"`
	Shooting        float64 `json:"shooting"`
	Tackling        float64 `json:"tackling"`
	Dribbling       float64 `json:"dribbling"`
	Heading         float64 `json:"heading"`
	Technique       float64 `json:"technique"`
	Handling        float64 `json:"handling"`
	Reflexes        float64 `json:"reflexes"`
	Aggression      float64 `json:"aggression"`
	Positioning     float64 `json:"positioning"`
	Vision          float64 `json:"vision"`
	Composure       float64 `json:"composure"`
	WorkRate        float64 `json:"workRate"`
	Pace            float64 `json:"pace"`
	Stamina         float64 `json:"stamina"`
	Strength        float64 `json:"strength"`
	Potential       float64 `json:"potential"`
	Consistency     float64 `json:"consistency"`
	InjuryProneness float64 `json:"injuryProneness"`
}

func (s *PlayerStats) field(a Attribute) *float64 {
	switch a {
	case AttrPassing:
		return &s.Passing
	case AttrShooting:
		return &s.Shooting
	case AttrTackling:
		return &s.Tackling
	case AttrDribbling:
		return &s.Dribbling
	case AttrHeading:
		return &s.Heading
	case AttrTechnique:
		return &s.Technique
	case AttrHandling:
		return &s.Handling
	case AttrReflexes:
		return &s.Reflexes
	case AttrAggression:
		return &s.Aggression
	case AttrPositioning:
		return &s.Positioning
	case AttrVision:
		return &s.Vision
	case AttrComposure:
		return &s.Composure
	case AttrWorkRate:
		return &s.WorkRate
	case AttrPace:
		return &s.Pace
	case AttrStamina:
		return &s.Stamina
	case AttrStrength:
		return &s.Strength
	case AttrPotential:
		return &s.Potential
	case AttrConsistency:
		return &s.Consistency
	case AttrInjuryProneness:
		return &s.InjuryProneness
	}
	return nil
}

// Get returns the value of a, and false for an unknown attribute.
func (s PlayerStats) Get(a Attribute) (float64, bool) {
	f := s.field(a)
	if f == nil {
		return 0, false
	}
	return *f, true
}

// Set assigns v to a. Unknown attributes are ignored.
func (s *PlayerStats) Set(a Attribute, v float64) {
	if f := s.field(a); f != nil {
		*f = v
	}
}
