package engine

import (
	"context"

	"go.uber.org/zap"

	"github.com/xtding233/hoops-backend/internal/card"
	"github.com/xtding233/hoops-backend/internal/scout"
	"github.com/xtding233/hoops-backend/internal/state"
)

// CanScout reports whether s can pay for a scouting trip. Scouting is split in
// two: ScoutCard fetches a prospect and CommitScout charges for it. Any scouting
// failure still delivers the fallback prospect; only a cancelled context aborts.
func (e *Engine) CanScout(s state.GameState) error {
	if s.Coins < e.Catalog.Economy.ScoutCost {
		return ErrInsufficientFunds
	}
	return nil
}

// ScoutCard asks the scouting service for a prospect. It touches no game state
// and may block for as long as the upstream call takes.
func (e *Engine) ScoutCard(ctx context.Context) (card.Card, error) {
	c, fallback, err := e.scoutCard(ctx)
	if err != nil {
		return card.Card{}, err
	}
	e.log.Info("prospect scouted", zap.String("name", c.Name), zap.Int("rating", c.Rating), zap.Bool("fallback", fallback))
	return c, nil
}

// CommitScout charges the trip and adds c to the inventory. Funds are checked
// again since the state may have moved while c was being fetched.
func (e *Engine) CommitScout(s state.GameState, c card.Card) (state.GameState, error) {
	if err := e.CanScout(s); err != nil {
		return s, err
	}
	next := s.Clone()
	next.Coins -= e.Catalog.Economy.ScoutCost
	next.Inventory = append(next.Inventory, c)
	return next, nil
}

func (e *Engine) scoutCard(ctx context.Context) (c card.Card, fallback bool, err error) {
	if e.scouter == nil {
		return scout.FallbackCard(), true, nil
	}
	rep, err := e.scouter.Scout(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return card.Card{}, false, ctx.Err()
		}
		e.log.Warn("scouting failed, using fallback", zap.Error(err))
		return scout.FallbackCard(), true, nil
	}
	return scout.CardFromReport(rep, e.rng), false, nil
}
