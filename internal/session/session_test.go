package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/xtding233/hoops-backend/internal/config"
	"github.com/xtding233/hoops-backend/internal/engine"
	"github.com/xtding233/hoops-backend/internal/gacha"
	"github.com/xtding233/hoops-backend/internal/scout"
	"github.com/xtding233/hoops-backend/internal/state"
	"github.com/xtding233/hoops-backend/internal/store"
)

var t0 = time.UnixMilli(1_700_000_000_000)

func newSession(t *testing.T) (*Session, *store.MemoryStore, *state.FakeClock) {
	t.Helper()
	st := store.NewMemoryStore()
	clock := state.NewFakeClock(t0)
	eng := engine.New(config.Default(), gacha.NewSeededRNG(11))
	return New(st, "main", eng, clock, zap.NewNop()), st, clock
}

func TestViewStartsNewGame(t *testing.T) {
	s, st, _ := newSession(t)
	gs, err := s.View(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1000, gs.Coins)
	assert.Len(t, gs.AuctionListings, 8)
	assert.Len(t, gs.Quests, 5)

	blob, err := st.Load(context.Background(), "main")
	require.NoError(t, err)
	saved, err := state.Decode(blob, t0)
	require.NoError(t, err)
	assert.Equal(t, gs, saved)

	again, err := s.View(context.Background())
	require.NoError(t, err)
	assert.Equal(t, gs, again)
}

func TestUpdatePersists(t *testing.T) {
	s, _, clock := newSession(t)
	ctx := context.Background()

	clock.Advance(time.Minute)
	gs, err := s.Update(ctx, func(e *engine.Engine, cur state.GameState) (state.GameState, error) {
		next, _, err := e.BuyPack(cur, "rookie_pack", clock.Now())
		return next, err
	})
	require.NoError(t, err)
	assert.Equal(t, 500, gs.Coins)

	view, err := s.View(ctx)
	require.NoError(t, err)
	assert.Equal(t, 500, view.Coins)
	assert.Len(t, view.Inventory, 3)
}

func TestUpdateRejectedLeavesSaveAlone(t *testing.T) {
	s, st, _ := newSession(t)
	ctx := context.Background()
	_, err := s.View(ctx)
	require.NoError(t, err)
	before, _ := st.Load(ctx, "main")

	_, err = s.Update(ctx, func(e *engine.Engine, cur state.GameState) (state.GameState, error) {
		next, _, err := e.BuyPack(cur, "goat_pack", t0)
		return next, err
	})
	assert.ErrorIs(t, err, engine.ErrInsufficientFunds)

	after, _ := st.Load(ctx, "main")
	assert.Equal(t, before, after)
}

func TestUpdateRunsTimers(t *testing.T) {
	s, _, clock := newSession(t)
	ctx := context.Background()
	first, err := s.View(ctx)
	require.NoError(t, err)

	clock.Advance(16 * time.Minute)
	second, err := s.View(ctx)
	require.NoError(t, err)
	assert.NotEqual(t, first.AuctionListings, second.AuctionListings)
	assert.Equal(t, first.Quests, second.Quests)
}

// gateScouter blocks every call until release is closed.
type gateScouter struct {
	started chan struct{}
	release chan struct{}
}

func newGateScouter() *gateScouter {
	return &gateScouter{started: make(chan struct{}, 1), release: make(chan struct{})}
}

func (g *gateScouter) Scout(ctx context.Context) (scout.Report, error) {
	g.started <- struct{}{}
	select {
	case <-g.release:
		return scout.Report{Name: "Jax Thunder", Team: "Rucker Park", Position: "SG", Rating: 91, Offense: 92, Defense: 80}, nil
	case <-ctx.Done():
		return scout.Report{}, ctx.Err()
	}
}

type scoutResult struct {
	gs  state.GameState
	err error
}

func scoutingSession(t *testing.T, coins int) (*Session, *gateScouter) {
	t.Helper()
	gate := newGateScouter()
	eng := engine.New(config.Default(), gacha.NewSeededRNG(11), engine.WithScouter(gate))
	s := New(store.NewMemoryStore(), "main", eng, state.NewFakeClock(t0), zap.NewNop())
	_, err := s.Update(context.Background(), func(_ *engine.Engine, cur state.GameState) (state.GameState, error) {
		cur.Coins = coins
		return cur, nil
	})
	require.NoError(t, err)
	return s, gate
}

func TestScoutDoesNotHoldSlot(t *testing.T) {
	s, gate := scoutingSession(t, 6000)
	ctx := context.Background()

	done := make(chan scoutResult, 1)
	go func() {
		gs, _, err := s.Scout(ctx)
		done <- scoutResult{gs, err}
	}()
	<-gate.started

	viewCtx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	view, err := s.View(viewCtx)
	require.NoError(t, err)
	assert.Equal(t, 6000, view.Coins, "not charged before the prospect arrives")

	close(gate.release)
	res := <-done
	require.NoError(t, res.err)
	assert.Equal(t, 1000, res.gs.Coins)
	require.Len(t, res.gs.Inventory, 1)
	assert.Equal(t, "Jax Thunder", res.gs.Inventory[0].Name)
}

func TestScoutRechecksFundsOnCommit(t *testing.T) {
	s, gate := scoutingSession(t, 6000)
	ctx := context.Background()

	done := make(chan scoutResult, 1)
	go func() {
		gs, _, err := s.Scout(ctx)
		done <- scoutResult{gs, err}
	}()
	<-gate.started

	_, err := s.Update(ctx, func(_ *engine.Engine, cur state.GameState) (state.GameState, error) {
		cur.Coins = 2000
		return cur, nil
	})
	require.NoError(t, err)

	close(gate.release)
	res := <-done
	assert.ErrorIs(t, res.err, engine.ErrInsufficientFunds)

	view, err := s.View(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2000, view.Coins)
	assert.Empty(t, view.Inventory)
}

func TestScoutNeedsFundsUpFront(t *testing.T) {
	s, gate := scoutingSession(t, 100)
	_, _, err := s.Scout(context.Background())
	assert.ErrorIs(t, err, engine.ErrInsufficientFunds)
	assert.Empty(t, gate.started, "upstream never called")
}

// deleteCounter records deletes on top of a memory store.
type deleteCounter struct {
	*store.MemoryStore
	deleted []string
	fail    error
}

func (d *deleteCounter) Delete(ctx context.Context, slot string) error {
	if d.fail != nil {
		return d.fail
	}
	d.deleted = append(d.deleted, slot)
	return d.MemoryStore.Delete(ctx, slot)
}

func TestResetDeletesSlot(t *testing.T) {
	st := &deleteCounter{MemoryStore: store.NewMemoryStore()}
	eng := engine.New(config.Default(), gacha.NewSeededRNG(11))
	s := New(st, "main", eng, state.NewFakeClock(t0), zap.NewNop())
	ctx := context.Background()
	_, err := s.View(ctx)
	require.NoError(t, err)

	_, err = s.Reset(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"main"}, st.deleted)
	_, err = st.Load(ctx, "main")
	require.NoError(t, err, "fresh game saved after the delete")

	st.fail = errors.New("disk gone")
	_, err = s.Reset(ctx)
	assert.ErrorContains(t, err, "disk gone")
}

func TestReset(t *testing.T) {
	s, _, _ := newSession(t)
	ctx := context.Background()
	_, err := s.Update(ctx, func(e *engine.Engine, cur state.GameState) (state.GameState, error) {
		cur.Coins = 99999
		return cur, nil
	})
	require.NoError(t, err)

	gs, err := s.Reset(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1000, gs.Coins)
}

func TestSetEngine(t *testing.T) {
	s, _, _ := newSession(t)
	cat := config.Default()
	cat.Economy.InitialCoins = 42
	s.SetEngine(engine.New(cat, gacha.NewSeededRNG(1)))

	gs, err := s.View(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 42, gs.Coins)
}
