package card

// Set is a cosmetic card theme.
type Set string

const (
	SetBase       Set = "Base"
	SetRookie     Set = "Rookie"
	SetAllStar    Set = "All-Star"
	SetPlayoffs   Set = "Playoffs"
	SetFinalsMVP  Set = "Finals MVP"
	SetHallOfFame Set = "Hall of Fame"
	SetSummer     Set = "Summer"
	SetHalloween  Set = "Halloween"
	SetChristmas  Set = "Christmas"
)

// SetModifier shifts rarity weighting and rating for cards of a set.
type SetModifier struct {
	RarityMod int
	RatingMod int
}

var setModifiers = map[Set]SetModifier{
	SetBase:       {RarityMod: 0, RatingMod: 0},
	SetRookie:     {RarityMod: 1, RatingMod: -3},
	SetAllStar:    {RarityMod: 2, RatingMod: 4},
	SetSummer:     {RarityMod: 2, RatingMod: 5},
	SetHalloween:  {RarityMod: 3, RatingMod: 7},
	SetChristmas:  {RarityMod: 4, RatingMod: 10},
	SetPlayoffs:   {RarityMod: 3, RatingMod: 8},
	SetFinalsMVP:  {RarityMod: 4, RatingMod: 12},
	SetHallOfFame: {RarityMod: 5, RatingMod: 15},
}

// Modifier returns the set's modifiers; unknown sets behave like Base.
func (s Set) Modifier() SetModifier { return setModifiers[s] }

// Known reports whether s is one of the closed list of sets.
func (s Set) Known() bool {
	_, ok := setModifiers[s]
	return ok
}

// SetTier overrides the running set when the draw is strictly above Above.
type SetTier struct {
	Above float64
	Set   Set
}

// DefaultSetTiers is applied in order. Tiers overlap on purpose: every tier whose
// threshold is exceeded overwrites the previous pick, so the last match wins.
var DefaultSetTiers = []SetTier{
	{Above: 0.50, Set: SetRookie},
	{Above: 0.70, Set: SetSummer},
	{Above: 0.80, Set: SetAllStar},
	{Above: 0.88, Set: SetHalloween},
	{Above: 0.94, Set: SetPlayoffs},
	{Above: 0.97, Set: SetChristmas},
	{Above: 0.98, Set: SetFinalsMVP},
	{Above: 0.995, Set: SetHallOfFame},
}

// SelectSet runs u through every tier in order and keeps the last override.
func SelectSet(tiers []SetTier, u float64) Set {
	set := SetBase
	for _, t := range tiers {
		if u > t.Above {
			set = t.Set
		}
	}
	return set
}
