package scout

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/xtding233/hoops-backend/internal/card"
	"github.com/xtding233/hoops-backend/internal/gacha"
)

var (
	ErrUpstream    = errors.New("scouting service failed")
	ErrInvalidJSON = errors.New("scouting service returned invalid JSON")
)

const (
	// DefaultCost is what one scouting trip costs.
	DefaultCost = 5000

	priceFactor = 1.5
)

// Report is what a scout sends back about a fictional prospect.
type Report struct {
	Name     string  `json:"name"`
	Team     string  `json:"team"`
	Position string  `json:"position"`
	Lore     string  `json:"lore"`
	Rating   float64 `json:"rating"`
	Offense  float64 `json:"offense"`
	Defense  float64 `json:"defense"`
}

// Scouter invents a prospect.
type Scouter interface {
	Scout(ctx context.Context) (Report, error)
}

// rarityForScoutRating starts scouted players at RARE.
func rarityForScoutRating(rating int) card.Rarity {
	r := card.Rare
	if rating > 88 {
		r = card.Epic
	}
	if rating > 94 {
		r = card.Legendary
	}
	if rating > 98 {
		r = card.Goat
	}
	return r
}

// CardFromReport turns a report into a locked Base-set card with full potential.
func CardFromReport(rep Report, rng gacha.RandomSource) card.Card {
	rating := card.RoundStat(rep.Rating)
	r := rarityForScoutRating(rating)
	pos := rep.Position
	if pos == "" {
		pos = card.PF
	}
	return card.Card{
		ID:          "ai_" + uuid.NewString(),
		Name:        rep.Name,
		Team:        rep.Team,
		Position:    pos,
		Rarity:      r,
		Set:         card.SetBase,
		Rating:      rating,
		Price:       card.PriceFor(rating, r, priceFactor),
		ImageSeed:   2000 + gacha.IntN(rng, 5000),
		AIGenerated: true,
		Locked:      true,
		Lore:        rep.Lore,
		Stats: card.Stats{
			Offense:   card.RoundStat(rep.Offense),
			Defense:   card.RoundStat(rep.Defense),
			Potential: card.MaxRating,
		},
	}
}

// FallbackCard is handed out when the scout comes back empty.
func FallbackCard() card.Card {
	return card.Card{
		ID:          "ai_fallback_" + uuid.NewString(),
		Name:        "Mystery Rookie",
		Team:        "Unknowns",
		Position:    card.PF,
		Rarity:      card.Rare,
		Set:         card.SetBase,
		Rating:      85,
		Price:       1000,
		ImageSeed:   9999,
		AIGenerated: true,
		Locked:      true,
		Lore:        "The scouting report was lost, but this player shows promise.",
		Stats:       card.Stats{Offense: 80, Defense: 80, Potential: 90},
	}
}
