package state

import (
	"encoding/json"
	"fmt"
	"slices"
	"time"

	"github.com/xtding233/hoops-backend/internal/card"
	"github.com/xtding233/hoops-backend/internal/lineup"
	"github.com/xtding233/hoops-backend/internal/progress"
	"github.com/xtding233/hoops-backend/internal/wager"
)

const (
	// Version of the persisted blob. Older blobs are upgraded on Decode by
	// backfilling defaults.
	Version = 7

	InitialCoins = 1000
)

type WagerStats struct {
	Wins     int `json:"wins"`
	Losses   int `json:"losses"`
	Earnings int `json:"earnings"`
}

// GameState is the whole save slot. Timestamps are unix millis.
type GameState struct {
	Version             int              `json:"version"`
	Coins               int              `json:"coins"`
	Inventory           []card.Card      `json:"inventory"`
	Lineup              lineup.Lineup    `json:"lineup"`
	LastOpenTime        int64            `json:"lastOpenTime"`
	CollectionScore     int              `json:"collectionScore"`
	TotalPacksOpened    int              `json:"totalPacksOpened"`
	WagerStats          WagerStats       `json:"wagerStats"`
	LastWheelSpin       int64            `json:"lastWheelSpin"`
	LastAuctionRefresh  int64            `json:"lastAuctionRefresh"`
	LastQuestRefresh    int64            `json:"lastQuestRefresh"`
	Quests              []progress.Quest `json:"quests"`
	ClaimedSets         []string         `json:"claimedSets"`
	ActiveWagerOpponent *wager.Opponent  `json:"activeWagerOpponent"`
	AuctionListings     []card.Card      `json:"auctionListings"`
}

// New is a fresh save.
func New(now time.Time, initialCoins int) GameState {
	ms := now.UnixMilli()
	return GameState{
		Version:            Version,
		Coins:              initialCoins,
		Inventory:          []card.Card{},
		Lineup:             lineup.Lineup{Bench: []string{}},
		LastOpenTime:       ms,
		LastAuctionRefresh: ms,
		Quests:             []progress.Quest{},
		ClaimedSets:        []string{},
		AuctionListings:    []card.Card{},
	}
}

// Decode reads a saved blob of any version and fills what older saves lack.
func Decode(blob []byte, now time.Time) (GameState, error) {
	var s GameState
	if err := json.Unmarshal(blob, &s); err != nil {
		return GameState{}, fmt.Errorf("decode game state: %w", err)
	}
	s.backfill(now)
	return s, nil
}

func (s *GameState) backfill(now time.Time) {
	if s.Inventory == nil {
		s.Inventory = []card.Card{}
	}
	if s.Version < Version {
		// older saves may still list cards that were sold
		s.Lineup = s.Lineup.Prune(s.Inventory)
	}
	if s.Lineup.Bench == nil {
		s.Lineup.Bench = []string{}
	}
	if s.LastAuctionRefresh == 0 {
		s.LastAuctionRefresh = now.UnixMilli()
	}
	if s.Quests == nil {
		s.Quests = []progress.Quest{}
	}
	if s.ClaimedSets == nil {
		s.ClaimedSets = []string{}
	}
	if s.AuctionListings == nil {
		s.AuctionListings = []card.Card{}
	}
	s.Version = Version
}

func (s GameState) Encode() ([]byte, error) {
	return json.Marshal(s)
}

// Clone deep-copies every slice and pointer so the result can be changed freely.
func (s GameState) Clone() GameState {
	out := s
	out.Inventory = slices.Clone(s.Inventory)
	out.Lineup = s.Lineup.Clone()
	out.Quests = slices.Clone(s.Quests)
	out.ClaimedSets = slices.Clone(s.ClaimedSets)
	out.AuctionListings = slices.Clone(s.AuctionListings)
	if s.ActiveWagerOpponent != nil {
		o := *s.ActiveWagerOpponent
		out.ActiveWagerOpponent = &o
	}
	return out
}

// CollectionValue is the summed sell price of the inventory.
func (s GameState) CollectionValue() int {
	total := 0
	for _, c := range s.Inventory {
		total += c.Price
	}
	return total
}

// Card finds an inventory card by id.
func (s GameState) Card(id string) (card.Card, int, bool) {
	for i, c := range s.Inventory {
		if c.ID == id {
			return c, i, true
		}
	}
	return card.Card{}, -1, false
}

// TeamRating is the current lineup's OVR.
func (s GameState) TeamRating() float64 {
	return lineup.TeamRating(s.Lineup, s.Inventory)
}
