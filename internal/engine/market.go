package engine

import (
	"slices"

	"go.uber.org/zap"

	"github.com/xtding233/hoops-backend/internal/card"
	"github.com/xtding233/hoops-backend/internal/market"
	"github.com/xtding233/hoops-backend/internal/progress"
	"github.com/xtding233/hoops-backend/internal/state"
)

// BuyListing pays the listed price and adds the card at the front of the inventory.
func (e *Engine) BuyListing(s state.GameState, id string) (state.GameState, card.Card, error) {
	rest, listing, err := market.Take(s.AuctionListings, id)
	if err != nil {
		return s, card.Card{}, err
	}
	if s.Coins < listing.Price {
		return s, card.Card{}, ErrInsufficientFunds
	}

	bought := market.Purchase(listing)
	next := s.Clone()
	next.Coins -= listing.Price
	next.AuctionListings = rest
	next.Inventory = slices.Insert(next.Inventory, 0, bought)
	next.Quests = progress.Record(next.Quests, progress.CollectCards, 1)

	e.log.Info("auction purchase", zap.String("card", bought.ID), zap.Int("paid", listing.Price), zap.Int("resale", bought.Price))
	return next, bought, nil
}
