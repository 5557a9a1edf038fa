package ruleset

// Weighting ranks a trait group during character creation. The primary group
// receives the most points to distribute.
type Weighting string

const (
	WeightingPrimary   Weighting = "primary"
	WeightingSecondary Weighting = "secondary"
	WeightingTertiary  Weighting = "tertiary"
)

// Weightings lists weightings from most to fewest points.
var Weightings = []Weighting{WeightingPrimary, WeightingSecondary, WeightingTertiary}

// AttributePoints returns the attribute dots granted to a group with this
// weighting, or 0 for an unknown weighting.
func (w Weighting) AttributePoints() int {
	switch w {
	case WeightingPrimary:
		return 7
	case WeightingSecondary:
		return 5
	case WeightingTertiary:
		return 3
	}
	return 0
}

// AbilityPoints returns the ability dots granted to a group with this
// weighting, or 0 for an unknown weighting.
func (w Weighting) AbilityPoints() int {
	switch w {
	case WeightingPrimary:
		return 13
	case WeightingSecondary:
		return 9
	case WeightingTertiary:
		return 5
	}
	return 0
}

// TranslationKey returns the i18n message key for the weighting label.
func (w Weighting) TranslationKey() string {
	return "weighting." + string(w)
}
