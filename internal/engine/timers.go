package engine

import (
	"time"

	"go.uber.org/zap"

	"github.com/xtding233/hoops-backend/internal/progress"
	"github.com/xtding233/hoops-backend/internal/state"
)

// TickResult says which timers fired.
type TickResult struct {
	AuctionRefreshed bool `json:"auctionRefreshed"`
	QuestsRefreshed  bool `json:"questsRefreshed"`
}

// Tick runs the polled timers: a new auction batch every refresh window or when
// the board is empty, and a new quest batch every rotation or when there are none.
// Calling it again before a window closes changes nothing.
func (e *Engine) Tick(s state.GameState, now time.Time) (state.GameState, TickResult) {
	var res TickResult
	next := s

	if len(s.AuctionListings) == 0 || state.IsDue(now, s.LastAuctionRefresh, e.Catalog.Economy.AuctionRefresh) {
		next = e.RefreshAuction(next, now)
		res.AuctionRefreshed = true
	}
	if len(s.Quests) == 0 || state.IsDue(now, s.LastQuestRefresh, e.Catalog.Economy.QuestRefresh) {
		next = e.RefreshQuests(next, now)
		res.QuestsRefreshed = true
	}
	return next, res
}

// RefreshAuction replaces the listings on demand.
func (e *Engine) RefreshAuction(s state.GameState, now time.Time) state.GameState {
	next := s.Clone()
	next.AuctionListings = e.auction.Refresh()
	next.LastAuctionRefresh = now.UnixMilli()
	e.log.Debug("auction refreshed", zap.Int("listings", len(next.AuctionListings)))
	return next
}

// RefreshQuests hands out a new quest batch.
func (e *Engine) RefreshQuests(s state.GameState, now time.Time) state.GameState {
	next := s.Clone()
	next.Quests = progress.GenerateQuests(e.rng, e.Catalog.Quests, now)
	next.LastQuestRefresh = now.UnixMilli()
	e.log.Debug("quests refreshed", zap.Int("quests", len(next.Quests)))
	return next
}

// AuctionRemaining is the time until the next automatic auction batch.
func (e *Engine) AuctionRemaining(s state.GameState, now time.Time) time.Duration {
	return state.Remaining(now, s.LastAuctionRefresh, e.Catalog.Economy.AuctionRefresh)
}
