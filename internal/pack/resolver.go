package pack

import (
	"github.com/xtding233/hoops-backend/internal/card"
	"github.com/xtding233/hoops-backend/internal/gacha"
)

const (
	// DefaultRetries bounds the rejection sampling of a regular slot.
	DefaultRetries = 10
	// DefaultGuaranteeRetries bounds the re-rolls of the guaranteed slot.
	DefaultGuaranteeRetries = 50
	// ForcedRating is stamped on a guaranteed card when re-rolls run out.
	ForcedRating = 85
)

// CardSource mints one card per call.
type CardSource interface {
	Generate() card.Card
}

// Resolver opens packs.
type Resolver struct {
	Cards            CardSource
	RNG              gacha.RandomSource
	Retries          int
	GuaranteeRetries int
}

// NewResolver wires a resolver with the default retry budgets.
func NewResolver(cards CardSource, rng gacha.RandomSource) *Resolver {
	if rng == nil {
		rng = gacha.DefaultRNG()
	}
	return &Resolver{
		Cards:            cards,
		RNG:              rng,
		Retries:          DefaultRetries,
		GuaranteeRetries: DefaultGuaranteeRetries,
	}
}

// Open always yields exactly def.CardCount cards, in generation order.
// When the pack has a guarantee, the last slot is rolled against it.
func (r *Resolver) Open(def Definition) []card.Card {
	if def.CardCount <= 0 {
		return []card.Card{}
	}
	cards := make([]card.Card, 0, def.CardCount)
	for i := 0; i < def.CardCount; i++ {
		if i == def.CardCount-1 && def.Guaranteed != nil {
			cards = append(cards, r.guaranteedSlot(*def.Guaranteed))
			continue
		}
		cards = append(cards, r.regularSlot(def.Odds))
	}
	return cards
}

// TargetRarity walks the odds in enum order; COMMON when the draw falls past the
// authored mass.
func TargetRarity(odds Odds, u float64) card.Rarity {
	idx, ok := gacha.PickCumulative(odds.Table(), u)
	if !ok {
		return card.Common
	}
	return card.Rarities[idx]
}

// regularSlot rejection-samples towards the drawn rarity and settles for the last
// card when the budget runs out.
func (r *Resolver) regularSlot(odds Odds) card.Card {
	c := r.Cards.Generate()
	target := TargetRarity(odds, r.RNG.Float64())
	for attempts := 0; c.Rarity != target && attempts < r.Retries; attempts++ {
		c = r.Cards.Generate()
	}
	return c
}

// guaranteedSlot re-rolls until the floor is met, then forces it. The forced card
// keeps the price and stats of the failed draw. Like a regular slot it draws one
// uniform up front, which goes unused, so seeded replays keep their draw order.
func (r *Resolver) guaranteedSlot(floor card.Rarity) card.Card {
	c := r.Cards.Generate()
	_ = r.RNG.Float64()
	for attempts := 0; !c.Rarity.AtLeast(floor) && attempts < r.GuaranteeRetries; attempts++ {
		c = r.Cards.Generate()
	}
	if !c.Rarity.AtLeast(floor) {
		c.Rarity = floor
		c.Rating = ForcedRating
		c.Locked = c.Locked || card.AutoLocked(floor)
	}
	return c
}
