package card

import (
	"math"

	"github.com/google/uuid"

	"github.com/xtding233/hoops-backend/internal/gacha"
)

const (
	baseRating      = 75
	ratingSpread    = 20
	priceJitterLow  = 0.9
	priceJitterHigh = 1.1
)

// Generator mints cards from the weighted random model.
type Generator struct {
	Roster []Player
	Tiers  []SetTier
	RNG    gacha.RandomSource
	NewID  func() string
}

// NewGenerator uses the default roster and set tiers. A nil rng means DefaultRNG.
func NewGenerator(rng gacha.RandomSource) *Generator {
	if rng == nil {
		rng = gacha.DefaultRNG()
	}
	return &Generator{
		Roster: DefaultRoster,
		Tiers:  DefaultSetTiers,
		RNG:    rng,
		NewID:  uuid.NewString,
	}
}

// Generate mints one card. Draw order: player, set, rating, price jitter,
// offense, defense, potential.
func (g *Generator) Generate() Card {
	roster := g.Roster
	if len(roster) == 0 {
		roster = DefaultRoster
	}
	player := roster[gacha.IntN(g.RNG, len(roster))]

	set := SelectSet(g.Tiers, g.RNG.Float64())

	rating := baseRating + gacha.IntN(g.RNG, ratingSpread) + set.Modifier().RatingMod
	rating = gacha.Clamp(rating, 0, MaxRating)

	rarity := RarityForRating(rating)
	price := PriceFor(rating, rarity, gacha.Uniform(g.RNG, priceJitterLow, priceJitterHigh))

	offense := min(MaxRating, int(math.Floor(float64(rating)*gacha.Uniform(g.RNG, 0.85, 1.15))))
	defense := min(MaxRating, int(math.Floor(float64(rating)*gacha.Uniform(g.RNG, 0.7, 1.2))))
	potential := gacha.IntN(g.RNG, MaxRating)

	return Card{
		ID:         g.newID(),
		ExternalID: player.ExternalID,
		Name:       player.Name,
		Team:       player.Team,
		Position:   player.Position,
		Rarity:     rarity,
		Set:        set,
		Rating:     rating,
		Price:      price,
		ImageSeed:  ImageSeed(player.Name),
		Locked:     AutoLocked(rarity),
		Stats: Stats{
			Offense:   offense,
			Defense:   defense,
			Potential: potential,
		},
	}
}

func (g *Generator) newID() string {
	if g.NewID == nil {
		return uuid.NewString()
	}
	return g.NewID()
}
