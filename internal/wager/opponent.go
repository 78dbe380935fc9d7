package wager

import (
	"github.com/xtding233/hoops-backend/internal/gacha"
)

const (
	MinOpponentOVR = 60
	MaxOpponentOVR = 99
	ovrVariance    = 5
)

var Cities = []string{"Gotham", "Metropolis", "Springfield", "South Beach", "Windy City", "Bay Area", "Brooklyn", "Sin City"}

var Mascots = []string{"Vipers", "Knights", "Ballers", "Sharks", "Phantoms", "Titans", "Dragons", "Wolves"}

// Opponent is the generated team a wager is played against.
type Opponent struct {
	Name string  `json:"name"`
	OVR  float64 `json:"ovr"`
}

// NewOpponent rolls a team around the user's rating, +/-5 OVR, clamped to [60, 99].
// Draw order: city, mascot, variance.
func NewOpponent(rng gacha.RandomSource, teamRating float64) Opponent {
	if rng == nil {
		rng = gacha.DefaultRNG()
	}
	city := Cities[gacha.IntN(rng, len(Cities))]
	mascot := Mascots[gacha.IntN(rng, len(Mascots))]
	variance := gacha.Uniform(rng, -ovrVariance, ovrVariance)
	ovr := gacha.Clamp(Round1(teamRating+variance), MinOpponentOVR, MaxOpponentOVR)
	return Opponent{Name: city + " " + mascot, OVR: ovr}
}
