package api

import (
	"time"

	"github.com/xtding233/hoops-backend/internal/card"
	"github.com/xtding233/hoops-backend/internal/engine"
	"github.com/xtding233/hoops-backend/internal/lineup"
	"github.com/xtding233/hoops-backend/internal/pack"
	"github.com/xtding233/hoops-backend/internal/progress"
	"github.com/xtding233/hoops-backend/internal/state"
	"github.com/xtding233/hoops-backend/internal/wager"
	"github.com/xtding233/hoops-backend/internal/wheel"
)

type healthResponse struct {
	Status         string `json:"status"`
	CatalogVersion string `json:"catalogVersion"`
	Uptime         string `json:"uptime"`
	RequestID      string `json:"requestId,omitempty"`
}

// stateResponse is the save slot plus the figures derived from it.
type stateResponse struct {
	state.GameState
	TeamRating         float64            `json:"teamRating"`
	CollectionValue    int                `json:"collectionValue"`
	AuctionRemainingMs int64              `json:"auctionRemainingMs"`
	Wheel              engine.WheelStatus `json:"wheel"`
}

func newStateResponse(e *engine.Engine, gs state.GameState, now time.Time) stateResponse {
	return stateResponse{
		GameState:          gs,
		TeamRating:         gs.TeamRating(),
		CollectionValue:    gs.CollectionValue(),
		AuctionRemainingMs: e.AuctionRemaining(gs, now).Milliseconds(),
		Wheel:              e.WheelStatus(gs, now),
	}
}

type packsResponse struct {
	Packs []pack.Definition `json:"packs"`
}

type openResponse struct {
	Pack  pack.Definition `json:"pack"`
	Cards []card.Card     `json:"cards"`
	Coins int             `json:"coins"`
}

type cardResponse struct {
	Card  card.Card `json:"card"`
	Coins int       `json:"coins"`
}

type equipRequest struct {
	CardID string `json:"cardId"`
}

type lineupResponse struct {
	Lineup     lineup.Lineup `json:"lineup"`
	TeamRating float64       `json:"teamRating"`
	Complete   bool          `json:"isComplete"`
}

type auctionResponse struct {
	Listings    []card.Card `json:"listings"`
	RemainingMs int64       `json:"remainingMs"`
}

type opponentResponse struct {
	Opponent   wager.Opponent `json:"opponent"`
	TeamRating float64        `json:"teamRating"`
	WinChance  float64        `json:"winChance"`
}

type wagerRequest struct {
	Stake int `json:"stake"`
}

type wagerResponse struct {
	Outcome      wager.Outcome    `json:"outcome"`
	Coins        int              `json:"coins"`
	Stats        state.WagerStats `json:"wagerStats"`
	NextOpponent *wager.Opponent  `json:"nextOpponent"`
}

type spinResponse struct {
	Result wheel.Result       `json:"result"`
	Coins  int                `json:"coins"`
	Status engine.WheelStatus `json:"status"`
}

type questsResponse struct {
	Quests          []progress.Quest `json:"quests"`
	NextRefreshMs   int64            `json:"nextRefreshMs"`
	LastRefreshedAt int64            `json:"lastQuestRefresh"`
}

type claimResponse struct {
	ID     string `json:"id"`
	Reward int    `json:"reward"`
	Coins  int    `json:"coins"`
}

type setsResponse struct {
	Sets []progress.SetStatus `json:"sets"`
}
