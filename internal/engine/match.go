package engine

import (
	"go.uber.org/zap"

	"github.com/xtding233/hoops-backend/internal/progress"
	"github.com/xtding233/hoops-backend/internal/state"
	"github.com/xtding233/hoops-backend/internal/wager"
)

// EnsureOpponent rolls an opponent around the current team rating if none is set.
func (e *Engine) EnsureOpponent(s state.GameState) state.GameState {
	if s.ActiveWagerOpponent != nil {
		return s
	}
	next := s.Clone()
	opp := wager.NewOpponent(e.rng, next.TeamRating())
	next.ActiveWagerOpponent = &opp
	return next
}

// PlaceWager stakes coins on a match against the active opponent. The stake is
// debited, the match resolved, any reward credited and a new opponent rolled, all
// in one step.
func (e *Engine) PlaceWager(s state.GameState, stake int) (state.GameState, wager.Outcome, error) {
	if !s.Lineup.IsComplete() {
		return s, wager.Outcome{}, ErrLineupIncomplete
	}
	if stake <= 0 {
		return s, wager.Outcome{}, ErrInvalidStake
	}
	if s.Coins < stake {
		return s, wager.Outcome{}, ErrInsufficientFunds
	}

	next := e.EnsureOpponent(s).Clone()
	opp := *next.ActiveWagerOpponent
	teamRating := next.TeamRating()

	next.Coins -= stake
	out := wager.Resolve(e.rng, teamRating, opp.OVR, stake)
	out.Opponent = opp.Name
	next.Coins += out.Reward

	if out.Win {
		next.WagerStats.Wins++
		next.WagerStats.Earnings += stake
		next.Quests = progress.Record(next.Quests, progress.WinWager, 1)
	} else {
		next.WagerStats.Losses++
		next.WagerStats.Earnings -= stake
	}

	fresh := wager.NewOpponent(e.rng, teamRating)
	next.ActiveWagerOpponent = &fresh

	e.log.Info("wager resolved",
		zap.Int("stake", stake),
		zap.Bool("win", out.Win),
		zap.String("score", out.Score),
		zap.Float64("team_ovr", teamRating),
		zap.Float64("opponent_ovr", opp.OVR),
		zap.Float64("win_chance", out.WinChance),
	)
	return next, out, nil
}
