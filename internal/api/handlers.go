package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/xtding233/hoops-backend/internal/card"
	"github.com/xtding233/hoops-backend/internal/engine"
	"github.com/xtding233/hoops-backend/internal/lineup"
	"github.com/xtding233/hoops-backend/internal/state"
	"github.com/xtding233/hoops-backend/internal/wager"
	"github.com/xtding233/hoops-backend/internal/wheel"
)

func decodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: %v", errBadRequest, err)
	}
	return nil
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	gs, err := s.session.View(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, newStateResponse(s.session.Engine(), gs, s.session.Clock().Now()))
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	gs, err := s.session.Reset(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, newStateResponse(s.session.Engine(), gs, s.session.Clock().Now()))
}

func (s *Server) handleListPacks(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, packsResponse{Packs: s.session.Engine().Packs()})
}

func (s *Server) handleOpenPack(w http.ResponseWriter, r *http.Request) {
	packID := chi.URLParam(r, "packID")
	var res engine.OpenResult
	gs, err := s.session.Update(r.Context(), func(e *engine.Engine, cur state.GameState) (state.GameState, error) {
		next, out, err := e.BuyPack(cur, packID, s.session.Clock().Now())
		res = out
		return next, err
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	pause(r.Context(), s.opts.RevealDelay)
	s.writeJSON(w, http.StatusOK, openResponse{Pack: res.Pack, Cards: res.Cards, Coins: gs.Coins})
}

// cardOp runs an engine call that returns the card it touched.
func (s *Server) cardOp(w http.ResponseWriter, r *http.Request, op func(e *engine.Engine, cur state.GameState, id string) (state.GameState, card.Card, error)) {
	id := chi.URLParam(r, "cardID")
	var c card.Card
	gs, err := s.session.Update(r.Context(), func(e *engine.Engine, cur state.GameState) (state.GameState, error) {
		next, touched, err := op(e, cur, id)
		c = touched
		return next, err
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, cardResponse{Card: c, Coins: gs.Coins})
}

func (s *Server) handleSellCard(w http.ResponseWriter, r *http.Request) {
	s.cardOp(w, r, (*engine.Engine).SellCard)
}

func (s *Server) handleToggleLock(w http.ResponseWriter, r *http.Request) {
	s.cardOp(w, r, (*engine.Engine).ToggleLock)
}

func (s *Server) handleBuyListing(w http.ResponseWriter, r *http.Request) {
	s.cardOp(w, r, (*engine.Engine).BuyListing)
}

func (s *Server) writeLineup(w http.ResponseWriter, gs state.GameState) {
	s.writeJSON(w, http.StatusOK, lineupResponse{
		Lineup:     gs.Lineup,
		TeamRating: gs.TeamRating(),
		Complete:   gs.Lineup.IsComplete(),
	})
}

func (s *Server) handleLineup(w http.ResponseWriter, r *http.Request) {
	gs, err := s.session.View(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeLineup(w, gs)
}

func (s *Server) handleEquip(w http.ResponseWriter, r *http.Request) {
	slot, err := lineup.ParseSlot(chi.URLParam(r, "slot"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var req equipRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	gs, err := s.session.Update(r.Context(), func(e *engine.Engine, cur state.GameState) (state.GameState, error) {
		return e.Equip(cur, slot, req.CardID)
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeLineup(w, gs)
}

// handleUnequip clears a starter slot, or the bench entry at ?index= for the bench.
func (s *Server) handleUnequip(w http.ResponseWriter, r *http.Request) {
	slot, err := lineup.ParseSlot(chi.URLParam(r, "slot"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	idx := 0
	if v := r.URL.Query().Get("index"); v != "" {
		if idx, err = strconv.Atoi(v); err != nil {
			s.writeError(w, r, fmt.Errorf("%w: invalid index %q", errBadRequest, v))
			return
		}
	}
	gs, err := s.session.Update(r.Context(), func(e *engine.Engine, cur state.GameState) (state.GameState, error) {
		return e.Unequip(cur, slot, idx)
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeLineup(w, gs)
}

func (s *Server) handleOptimize(w http.ResponseWriter, r *http.Request) {
	gs, err := s.session.Update(r.Context(), func(e *engine.Engine, cur state.GameState) (state.GameState, error) {
		return e.OptimizeLineup(cur), nil
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeLineup(w, gs)
}

func (s *Server) writeAuction(w http.ResponseWriter, gs state.GameState) {
	remaining := s.session.Engine().AuctionRemaining(gs, s.session.Clock().Now())
	s.writeJSON(w, http.StatusOK, auctionResponse{Listings: gs.AuctionListings, RemainingMs: remaining.Milliseconds()})
}

func (s *Server) handleAuction(w http.ResponseWriter, r *http.Request) {
	gs, err := s.session.View(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeAuction(w, gs)
}

func (s *Server) handleAuctionRefresh(w http.ResponseWriter, r *http.Request) {
	gs, err := s.session.Update(r.Context(), func(e *engine.Engine, cur state.GameState) (state.GameState, error) {
		return e.RefreshAuction(cur, s.session.Clock().Now()), nil
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeAuction(w, gs)
}

func (s *Server) handleOpponent(w http.ResponseWriter, r *http.Request) {
	gs, err := s.session.Update(r.Context(), func(e *engine.Engine, cur state.GameState) (state.GameState, error) {
		return e.EnsureOpponent(cur), nil
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	rating := gs.TeamRating()
	opp := *gs.ActiveWagerOpponent
	s.writeJSON(w, http.StatusOK, opponentResponse{
		Opponent:   opp,
		TeamRating: rating,
		WinChance:  wager.WinChance(rating, opp.OVR),
	})
}

func (s *Server) handleWager(w http.ResponseWriter, r *http.Request) {
	var req wagerRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	var out wager.Outcome
	gs, err := s.session.Update(r.Context(), func(e *engine.Engine, cur state.GameState) (state.GameState, error) {
		next, res, err := e.PlaceWager(cur, req.Stake)
		out = res
		return next, err
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	pause(r.Context(), s.opts.MatchDelay)
	s.writeJSON(w, http.StatusOK, wagerResponse{
		Outcome:      out,
		Coins:        gs.Coins,
		Stats:        gs.WagerStats,
		NextOpponent: gs.ActiveWagerOpponent,
	})
}

func (s *Server) handleWheel(w http.ResponseWriter, r *http.Request) {
	gs, err := s.session.View(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, s.session.Engine().WheelStatus(gs, s.session.Clock().Now()))
}

func (s *Server) handleSpin(w http.ResponseWriter, r *http.Request) {
	var res wheel.Result
	gs, err := s.session.Update(r.Context(), func(e *engine.Engine, cur state.GameState) (state.GameState, error) {
		next, out, err := e.SpinWheel(cur, s.session.Clock().Now())
		res = out
		return next, err
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, spinResponse{
		Result: res,
		Coins:  gs.Coins,
		Status: s.session.Engine().WheelStatus(gs, s.session.Clock().Now()),
	})
}

func (s *Server) handleQuests(w http.ResponseWriter, r *http.Request) {
	gs, err := s.session.View(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	e := s.session.Engine()
	left := state.Remaining(s.session.Clock().Now(), gs.LastQuestRefresh, e.Catalog.Economy.QuestRefresh)
	s.writeJSON(w, http.StatusOK, questsResponse{
		Quests:          gs.Quests,
		NextRefreshMs:   left.Milliseconds(),
		LastRefreshedAt: gs.LastQuestRefresh,
	})
}

// claim runs a claim op keyed by the named URL parameter.
func (s *Server) claim(w http.ResponseWriter, r *http.Request, param string, op func(e *engine.Engine, cur state.GameState, id string) (state.GameState, int, error)) {
	id := chi.URLParam(r, param)
	var reward int
	gs, err := s.session.Update(r.Context(), func(e *engine.Engine, cur state.GameState) (state.GameState, error) {
		next, paid, err := op(e, cur, id)
		reward = paid
		return next, err
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, claimResponse{ID: id, Reward: reward, Coins: gs.Coins})
}

func (s *Server) handleClaimQuest(w http.ResponseWriter, r *http.Request) {
	s.claim(w, r, "questID", (*engine.Engine).ClaimQuest)
}

func (s *Server) handleSets(w http.ResponseWriter, r *http.Request) {
	gs, err := s.session.View(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, setsResponse{Sets: s.session.Engine().SetStatuses(gs)})
}

func (s *Server) handleClaimSet(w http.ResponseWriter, r *http.Request) {
	s.claim(w, r, "setID", (*engine.Engine).ClaimSet)
}

func (s *Server) handleScout(w http.ResponseWriter, r *http.Request) {
	gs, c, err := s.session.Scout(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, cardResponse{Card: c, Coins: gs.Coins})
}
