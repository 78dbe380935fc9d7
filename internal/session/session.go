package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/xtding233/hoops-backend/internal/card"
	"github.com/xtding233/hoops-backend/internal/engine"
	"github.com/xtding233/hoops-backend/internal/state"
	"github.com/xtding233/hoops-backend/internal/store"
)

// Session serialises every read-modify-write of one save slot.
type Session struct {
	store store.Store
	slot  string
	clock state.Clock
	log   *zap.Logger

	mu     sync.Mutex
	engine *engine.Engine
}

func New(st store.Store, slot string, eng *engine.Engine, clock state.Clock, log *zap.Logger) *Session {
	if clock == nil {
		clock = state.RealClock{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Session{store: st, slot: slot, engine: eng, clock: clock, log: log}
}

// Engine returns the engine currently in use.
func (s *Session) Engine() *engine.Engine {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine
}

// SetEngine swaps the engine, e.g. after a catalog reload. Calls already in
// flight finish on the old one.
func (s *Session) SetEngine(e *engine.Engine) {
	s.mu.Lock()
	s.engine = e
	s.mu.Unlock()
}

// Clock is the time source every operation is stamped with.
func (s *Session) Clock() state.Clock { return s.clock }

// Op is one state transition. Returning an error discards next.
type Op func(e *engine.Engine, cur state.GameState) (next state.GameState, err error)

// View loads the slot, runs the timers and saves.
func (s *Session) View(ctx context.Context) (state.GameState, error) {
	return s.Update(ctx, func(_ *engine.Engine, cur state.GameState) (state.GameState, error) {
		return cur, nil
	})
}

// Update loads the slot (or starts a new game), runs the timers, applies fn and
// saves the result. Nothing is written when fn fails.
func (s *Session) Update(ctx context.Context, fn Op) (state.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	cur, err := s.load(ctx)
	if err != nil {
		return state.GameState{}, err
	}

	ticked, _ := s.engine.Tick(cur, now)
	next, err := fn(s.engine, ticked)
	if err != nil {
		return ticked, err
	}
	if err := s.save(ctx, next); err != nil {
		return state.GameState{}, err
	}
	return next, nil
}

// Scout buys a scouting trip. The upstream call runs without holding the slot,
// so other requests go ahead meanwhile; the charge is committed afterwards.
func (s *Session) Scout(ctx context.Context) (state.GameState, card.Card, error) {
	if _, err := s.Update(ctx, func(e *engine.Engine, cur state.GameState) (state.GameState, error) {
		return cur, e.CanScout(cur)
	}); err != nil {
		return state.GameState{}, card.Card{}, err
	}

	c, err := s.Engine().ScoutCard(ctx)
	if err != nil {
		return state.GameState{}, card.Card{}, err
	}

	gs, err := s.Update(ctx, func(e *engine.Engine, cur state.GameState) (state.GameState, error) {
		return e.CommitScout(cur, c)
	})
	if err != nil {
		s.log.Warn("scouted prospect discarded", zap.String("name", c.Name), zap.Error(err))
		return gs, card.Card{}, err
	}
	return gs, c, nil
}

// Reset deletes the slot and saves a fresh game in its place.
func (s *Session) Reset(ctx context.Context) (state.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Delete(ctx, s.slot); err != nil {
		return state.GameState{}, err
	}
	now := s.clock.Now()
	fresh, _ := s.engine.Tick(s.engine.NewState(now), now)
	if err := s.save(ctx, fresh); err != nil {
		return state.GameState{}, err
	}
	s.log.Info("save slot reset", zap.String("slot", s.slot))
	return fresh, nil
}

func (s *Session) load(ctx context.Context) (state.GameState, error) {
	blob, err := s.store.Load(ctx, s.slot)
	if errors.Is(err, store.ErrNotFound) {
		s.log.Info("starting new game", zap.String("slot", s.slot))
		return s.engine.NewState(s.clock.Now()), nil
	}
	if err != nil {
		return state.GameState{}, err
	}
	return state.Decode(blob, s.clock.Now())
}

func (s *Session) save(ctx context.Context, gs state.GameState) error {
	blob, err := gs.Encode()
	if err != nil {
		return fmt.Errorf("encode game state: %w", err)
	}
	return s.store.Save(ctx, s.slot, blob)
}
