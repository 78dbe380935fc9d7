package market

import (
	"errors"
	"math"
	"time"

	"github.com/xtding233/hoops-backend/internal/card"
	"github.com/xtding233/hoops-backend/internal/gacha"
)

const (
	// ListingSize is the number of cards per auction batch.
	ListingSize = 8
	// RefreshInterval is how long a batch stays up.
	RefreshInterval = 15 * time.Minute
	// ResaleDivisor turns a paid auction price into the card's sell value.
	ResaleDivisor = 4
)

var ErrListingNotFound = errors.New("auction listing not found")

// CardSource mints one card per call.
type CardSource interface {
	Generate() card.Card
}

// Auction produces marked-up listing batches.
type Auction struct {
	Cards     CardSource
	RNG       gacha.RandomSource
	Size      int
	MarkupMin float64
	MarkupMax float64
}

func NewAuction(cards CardSource, rng gacha.RandomSource) *Auction {
	if rng == nil {
		rng = gacha.DefaultRNG()
	}
	return &Auction{
		Cards:     cards,
		RNG:       rng,
		Size:      ListingSize,
		MarkupMin: 3,
		MarkupMax: 5,
	}
}

// Refresh builds a full replacement batch. Each price is scaled by U[3,5).
func (a *Auction) Refresh() []card.Card {
	n := a.Size
	if n <= 0 {
		n = ListingSize
	}
	listings := make([]card.Card, 0, n)
	for i := 0; i < n; i++ {
		c := a.Cards.Generate()
		c.Price = Markup(c.Price, gacha.Uniform(a.RNG, a.MarkupMin, a.MarkupMax))
		listings = append(listings, c)
	}
	return listings
}

// Markup is floor(price * factor).
func Markup(price int, factor float64) int {
	return int(math.Floor(float64(price) * factor))
}

// Purchase converts a bought listing into an inventory card: resale value at a
// quarter of the paid price, locked.
func Purchase(listing card.Card) card.Card {
	c := listing
	c.Price = listing.Price / ResaleDivisor
	c.Locked = true
	return c
}

// Take removes the listing with id and returns the remaining batch.
func Take(listings []card.Card, id string) ([]card.Card, card.Card, error) {
	for i, c := range listings {
		if c.ID != id {
			continue
		}
		rest := make([]card.Card, 0, len(listings)-1)
		rest = append(rest, listings[:i]...)
		rest = append(rest, listings[i+1:]...)
		return rest, c, nil
	}
	return listings, card.Card{}, ErrListingNotFound
}
