package pack

import (
	"github.com/xtding233/hoops-backend/internal/card"
)

// Odds are per-rarity probabilities. They are authored to sum to 1 but are not
// required to.
type Odds struct {
	Common    float64 `json:"COMMON"`
	Rare      float64 `json:"RARE"`
	Epic      float64 `json:"EPIC"`
	Legendary float64 `json:"LEGENDARY"`
	Goat      float64 `json:"GOAT"`
}

// Table returns the probabilities in rarity enum order.
func (o Odds) Table() []float64 {
	return []float64{o.Common, o.Rare, o.Epic, o.Legendary, o.Goat}
}

// Sum is the total authored mass.
func (o Odds) Sum() float64 {
	s := 0.0
	for _, p := range o.Table() {
		s += p
	}
	return s
}

// Definition models a purchasable pack in the shop.
type Definition struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Price       int          `json:"price"`
	CardCount   int          `json:"cardCount"`
	Odds        Odds         `json:"probabilities"`
	Guaranteed  *card.Rarity `json:"guaranteedRarity,omitempty"`
	Theme       string       `json:"color,omitempty"`
	Description string       `json:"description,omitempty"`
}

func guaranteed(r card.Rarity) *card.Rarity { return &r }

// DefaultCatalog is the shop's built-in pack list.
var DefaultCatalog = []Definition{
	{
		ID:          "rookie_pack",
		Name:        "Rookie Class",
		Price:       500,
		CardCount:   3,
		Theme:       "from-slate-700 to-slate-900",
		Description: "Standard issue cards. Start your journey here.",
		Odds:        Odds{Common: 0.80, Rare: 0.18, Epic: 0.02},
	},
	{
		ID:          "allstar_pack",
		Name:        "All-Star Weekend",
		Price:       2500,
		CardCount:   5,
		Theme:       "from-blue-700 to-blue-900",
		Description: "Higher chance of special event cards.",
		Guaranteed:  guaranteed(card.Rare),
		Odds:        Odds{Common: 0.40, Rare: 0.45, Epic: 0.12, Legendary: 0.03},
	},
	{
		ID:          "summer_pack",
		Name:        "Summer Vibes",
		Price:       5000,
		CardCount:   4,
		Theme:       "from-cyan-500 to-yellow-500",
		Description: "Heat up the court with limited Summer cards.",
		Guaranteed:  guaranteed(card.Rare),
		Odds:        Odds{Common: 0.20, Rare: 0.50, Epic: 0.25, Legendary: 0.05},
	},
	{
		ID:          "halloween_pack",
		Name:        "Spooky Season",
		Price:       12500,
		CardCount:   5,
		Theme:       "from-purple-900 to-orange-600",
		Description: "Terrifyingly good players. Trick or Treat?",
		Guaranteed:  guaranteed(card.Epic),
		Odds:        Odds{Common: 0.10, Rare: 0.30, Epic: 0.50, Legendary: 0.09, Goat: 0.01},
	},
	{
		ID:          "christmas_pack",
		Name:        "Winter Holiday",
		Price:       25000,
		CardCount:   6,
		Theme:       "from-red-700 to-green-800",
		Description: "The gift of buckets. Very high value.",
		Guaranteed:  guaranteed(card.Epic),
		Odds:        Odds{Common: 0.05, Rare: 0.20, Epic: 0.55, Legendary: 0.15, Goat: 0.05},
	},
	{
		ID:          "goat_pack",
		Name:        "Hall of Fame",
		Price:       50000,
		CardCount:   4,
		Theme:       "from-yellow-600 to-red-900",
		Description: "The most expensive pack. Highest GOAT chance.",
		Guaranteed:  guaranteed(card.Legendary),
		Odds:        Odds{Rare: 0.10, Epic: 0.40, Legendary: 0.40, Goat: 0.10},
	},
}

// Find looks a pack up by id.
func Find(defs []Definition, id string) (Definition, bool) {
	for _, d := range defs {
		if d.ID == id {
			return d, true
		}
	}
	return Definition{}, false
}
