package engine

import (
	"slices"
	"time"

	"go.uber.org/zap"

	"github.com/xtding233/hoops-backend/internal/card"
	"github.com/xtding233/hoops-backend/internal/lineup"
	"github.com/xtding233/hoops-backend/internal/pack"
	"github.com/xtding233/hoops-backend/internal/progress"
	"github.com/xtding233/hoops-backend/internal/state"
)

// collectionPointsPerCard is added to the collection score for every card pulled.
const collectionPointsPerCard = 10

// OpenResult is the outcome of buying a pack.
type OpenResult struct {
	Pack  pack.Definition `json:"pack"`
	Cards []card.Card     `json:"cards"`
}

// BuyPack charges for a pack, opens it and adds the cards to the inventory.
func (e *Engine) BuyPack(s state.GameState, packID string, now time.Time) (state.GameState, OpenResult, error) {
	def, ok := pack.Find(e.Catalog.Packs, packID)
	if !ok {
		return s, OpenResult{}, ErrUnknownPack
	}
	if s.Coins < def.Price {
		return s, OpenResult{}, ErrInsufficientFunds
	}

	next := s.Clone()
	next.Coins -= def.Price
	next.TotalPacksOpened++
	next.Quests = progress.Record(next.Quests, progress.OpenPacks, 1)

	cards := e.resolver.Open(def)
	next.Inventory = append(next.Inventory, cards...)
	next.CollectionScore += collectionPointsPerCard * len(cards)
	next.Quests = progress.Record(next.Quests, progress.CollectCards, len(cards))
	next.LastOpenTime = now.UnixMilli()

	e.log.Info("pack opened",
		zap.String("pack", def.ID),
		zap.Int("price", def.Price),
		zap.Int("cards", len(cards)),
		zap.String("best", bestRarity(cards).String()),
	)
	return next, OpenResult{Pack: def, Cards: cards}, nil
}

func bestRarity(cards []card.Card) card.Rarity {
	best := card.Common
	for _, c := range cards {
		if c.Rarity > best {
			best = c.Rarity
		}
	}
	return best
}

// SellCard removes a card and credits its stored price.
func (e *Engine) SellCard(s state.GameState, id string) (state.GameState, card.Card, error) {
	c, idx, ok := s.Card(id)
	if !ok {
		return s, card.Card{}, ErrCardNotFound
	}
	if c.Locked {
		return s, card.Card{}, ErrCardLocked
	}
	if s.Lineup.Contains(id) {
		return s, card.Card{}, ErrCardInLineup
	}

	next := s.Clone()
	next.Inventory = slices.Delete(next.Inventory, idx, idx+1)
	next.Coins += c.Price
	e.log.Info("card sold", zap.String("card", c.ID), zap.String("name", c.Name), zap.Int("price", c.Price))
	return next, c, nil
}

// ToggleLock flips a card's lock flag.
func (e *Engine) ToggleLock(s state.GameState, id string) (state.GameState, card.Card, error) {
	_, idx, ok := s.Card(id)
	if !ok {
		return s, card.Card{}, ErrCardNotFound
	}
	next := s.Clone()
	next.Inventory[idx].Locked = !next.Inventory[idx].Locked
	return next, next.Inventory[idx], nil
}

// Equip puts an owned card into a lineup slot.
func (e *Engine) Equip(s state.GameState, slot lineup.Slot, id string) (state.GameState, error) {
	if _, _, ok := s.Card(id); !ok {
		return s, ErrCardNotFound
	}
	l, err := s.Lineup.Equip(slot, id)
	if err != nil {
		return s, err
	}
	next := s.Clone()
	next.Lineup = l
	return next, nil
}

// Unequip clears a starter slot or one bench entry.
func (e *Engine) Unequip(s state.GameState, slot lineup.Slot, benchIndex int) (state.GameState, error) {
	if _, err := lineup.ParseSlot(string(slot)); err != nil {
		return s, err
	}
	l, err := s.Lineup.Unequip(slot, benchIndex)
	if err != nil {
		return s, err
	}
	next := s.Clone()
	next.Lineup = l
	return next, nil
}

// OptimizeLineup rebuilds the lineup from the best cards owned.
func (e *Engine) OptimizeLineup(s state.GameState) state.GameState {
	next := s.Clone()
	next.Lineup = lineup.AutoOptimize(next.Inventory)
	return next
}
