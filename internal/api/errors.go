package api

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/xtding233/hoops-backend/internal/engine"
	"github.com/xtding233/hoops-backend/internal/progress"
)

var errBadRequest = errors.New("malformed request")

type rejection struct {
	err    error
	status int
	reason string
}

// rejections is walked in order; the first errors.Is match wins.
var rejections = []rejection{
	{engine.ErrInsufficientFunds, http.StatusPaymentRequired, "insufficient_funds"},

	{engine.ErrUnknownPack, http.StatusNotFound, "unknown_pack"},
	{engine.ErrCardNotFound, http.StatusNotFound, "card_not_found"},
	{engine.ErrListingNotFound, http.StatusNotFound, "listing_not_found"},
	{progress.ErrQuestNotFound, http.StatusNotFound, "quest_not_found"},
	{progress.ErrSetNotFound, http.StatusNotFound, "set_not_found"},

	{engine.ErrCardLocked, http.StatusConflict, "card_locked"},
	{engine.ErrCardInLineup, http.StatusConflict, "card_in_lineup"},
	{engine.ErrLineupIncomplete, http.StatusConflict, "lineup_incomplete"},
	{engine.ErrBenchFull, http.StatusConflict, "bench_full"},
	{engine.ErrWheelCooldown, http.StatusConflict, "wheel_cooldown"},
	{progress.ErrQuestClaimed, http.StatusConflict, "already_claimed"},
	{progress.ErrSetClaimed, http.StatusConflict, "already_claimed"},
	{progress.ErrQuestIncomplete, http.StatusConflict, "incomplete"},
	{progress.ErrSetIncomplete, http.StatusConflict, "incomplete"},

	{engine.ErrInvalidStake, http.StatusUnprocessableEntity, "invalid_stake"},
	{engine.ErrUnknownSlot, http.StatusUnprocessableEntity, "unknown_slot"},
	{engine.ErrBenchIndex, http.StatusUnprocessableEntity, "bench_index"},
	{errBadRequest, http.StatusBadRequest, "bad_request"},

	{context.DeadlineExceeded, http.StatusGatewayTimeout, "timeout"},
	{context.Canceled, http.StatusRequestTimeout, "canceled"},
}

type errorResponse struct {
	Error  string `json:"error"`
	Reason string `json:"reason"`
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	for _, rej := range rejections {
		if errors.Is(err, rej.err) {
			s.writeJSON(w, rej.status, errorResponse{Error: err.Error(), Reason: rej.reason})
			return
		}
	}
	s.log.Error("request failed", zap.String("path", r.URL.Path), zap.Error(err))
	s.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error", Reason: "internal"})
}
