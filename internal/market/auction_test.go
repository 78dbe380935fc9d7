package market

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xtding233/hoops-backend/internal/card"
	"github.com/xtding233/hoops-backend/internal/gacha"
)

type fixedSource struct{ n int }

func (f *fixedSource) Generate() card.Card {
	f.n++
	return card.Card{ID: string(rune('a' + f.n - 1)), Price: 1000, Rarity: card.Rare}
}

func TestRefreshMarksUpEveryListing(t *testing.T) {
	a := NewAuction(&fixedSource{}, gacha.NewSeededRNG(8))
	for round := 0; round < 100; round++ {
		listings := a.Refresh()
		require.Len(t, listings, ListingSize)
		for _, l := range listings {
			require.GreaterOrEqual(t, l.Price, 3000)
			require.Less(t, l.Price, 5000)
		}
	}
}

func TestRefreshReplacesBatch(t *testing.T) {
	src := &fixedSource{}
	a := NewAuction(src, gacha.NewScriptedRNG(0.5))
	first := a.Refresh()
	second := a.Refresh()
	assert.NotEqual(t, first[0].ID, second[0].ID)
	assert.Equal(t, 4000, first[0].Price)
}

func TestPurchaseResaleAndLock(t *testing.T) {
	listing := card.Card{ID: "x", Price: 4003, Locked: false}
	got := Purchase(listing)
	assert.Equal(t, 1000, got.Price)
	assert.True(t, got.Locked)
	assert.Equal(t, 4003, listing.Price, "listing copy untouched")
}

func TestTake(t *testing.T) {
	listings := []card.Card{{ID: "a"}, {ID: "b"}, {ID: "c"}}
	rest, got, err := Take(listings, "b")
	require.NoError(t, err)
	assert.Equal(t, "b", got.ID)
	assert.Equal(t, []card.Card{{ID: "a"}, {ID: "c"}}, rest)
	assert.Len(t, listings, 3)

	_, _, err = Take(listings, "zzz")
	assert.ErrorIs(t, err, ErrListingNotFound)
}
