package engine

import (
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/xtding233/hoops-backend/internal/progress"
	"github.com/xtding233/hoops-backend/internal/state"
	"github.com/xtding233/hoops-backend/internal/wheel"
)

// WheelStatus describes the wheel for a caller about to spin it.
type WheelStatus struct {
	Ready     bool
	Remaining time.Duration
	Duration  time.Duration
	Slices    []wheel.Slice
}

func (w WheelStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Ready          bool          `json:"ready"`
		RemainingMs    int64         `json:"remainingMs"`
		SpinDurationMs int64         `json:"spinDurationMs"`
		Slices         []wheel.Slice `json:"slices"`
	}{w.Ready, w.Remaining.Milliseconds(), w.Duration.Milliseconds(), w.Slices})
}

func (e *Engine) WheelStatus(s state.GameState, now time.Time) WheelStatus {
	left := state.Remaining(now, s.LastWheelSpin, e.Catalog.Economy.WheelCooldown)
	return WheelStatus{
		Ready:     left == 0,
		Remaining: left,
		Duration:  wheel.SpinDuration,
		Slices:    wheel.Layout(e.wheel.Segments),
	}
}

// SpinWheel credits one spin and starts the cooldown.
func (e *Engine) SpinWheel(s state.GameState, now time.Time) (state.GameState, wheel.Result, error) {
	if !state.IsDue(now, s.LastWheelSpin, e.Catalog.Economy.WheelCooldown) {
		return s, wheel.Result{}, ErrWheelCooldown
	}
	res := e.wheel.Spin()
	next := s.Clone()
	next.Coins += res.Segment.Value
	next.LastWheelSpin = now.UnixMilli()
	e.log.Info("wheel spun", zap.Int("value", res.Segment.Value), zap.Float64("rotation", res.Rotation))
	return next, res, nil
}

// ClaimQuest pays a completed quest once.
func (e *Engine) ClaimQuest(s state.GameState, id string) (state.GameState, int, error) {
	quests, reward, err := progress.ClaimQuest(s.Quests, id)
	if err != nil {
		return s, 0, err
	}
	next := s.Clone()
	next.Quests = quests
	next.Coins += reward
	e.log.Info("quest claimed", zap.String("quest", id), zap.Int("reward", reward))
	return next, reward, nil
}

// ClaimSet pays a completed collection set once.
func (e *Engine) ClaimSet(s state.GameState, id string) (state.GameState, int, error) {
	claimed, reward, err := progress.ClaimSet(e.Catalog.Sets, s.Inventory, s.ClaimedSets, id)
	if err != nil {
		return s, 0, err
	}
	next := s.Clone()
	next.ClaimedSets = claimed
	next.Coins += reward
	e.log.Info("set claimed", zap.String("set", id), zap.Int("reward", reward))
	return next, reward, nil
}

// SetStatuses is recomputed from the inventory on every call.
func (e *Engine) SetStatuses(s state.GameState) []progress.SetStatus {
	return progress.SetStatuses(e.Catalog.Sets, s.Inventory, s.ClaimedSets)
}
