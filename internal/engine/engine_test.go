package engine

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xtding233/hoops-backend/internal/card"
	"github.com/xtding233/hoops-backend/internal/config"
	"github.com/xtding233/hoops-backend/internal/gacha"
	"github.com/xtding233/hoops-backend/internal/lineup"
	"github.com/xtding233/hoops-backend/internal/progress"
	"github.com/xtding233/hoops-backend/internal/scout"
	"github.com/xtding233/hoops-backend/internal/state"
	"github.com/xtding233/hoops-backend/internal/wager"
)

var t0 = time.UnixMilli(1_700_000_000_000)

func newEngine(rng gacha.RandomSource, opts ...Option) *Engine {
	n := 0
	ids := WithCardIDs(func() string {
		n++
		return fmt.Sprintf("card-%d", n)
	})
	return New(config.Default(), rng, append([]Option{ids}, opts...)...)
}

// fullSquad owns 13 cards rated 80 and has all of them in the lineup.
func fullSquad(coins int) state.GameState {
	s := state.New(t0, coins)
	for i := 0; i < 13; i++ {
		s.Inventory = append(s.Inventory, card.Card{
			ID: fmt.Sprint("p", i), Name: fmt.Sprint("Player ", i), Position: card.PG, Rating: 80, Price: 100,
		})
	}
	s.Lineup = lineup.Lineup{PG: "p0", SG: "p1", SF: "p2", PF: "p3", C: "p4"}
	for i := 5; i < 13; i++ {
		s.Lineup.Bench = append(s.Lineup.Bench, fmt.Sprint("p", i))
	}
	return s
}

func TestBuyPack(t *testing.T) {
	e := newEngine(gacha.NewSeededRNG(1))
	s := e.NewState(t0)
	s.Quests = []progress.Quest{
		{ID: "q1", Type: progress.OpenPacks, Target: 3},
		{ID: "q2", Type: progress.CollectCards, Target: 5},
	}

	next, res, err := e.BuyPack(s, "rookie_pack", t0.Add(time.Minute))
	require.NoError(t, err)
	assert.Len(t, res.Cards, 3)
	assert.Equal(t, 500, next.Coins)
	assert.Equal(t, 1, next.TotalPacksOpened)
	assert.Equal(t, 30, next.CollectionScore)
	assert.Len(t, next.Inventory, 3)
	assert.Equal(t, res.Cards, next.Inventory)
	assert.Equal(t, 1, next.Quests[0].Current)
	assert.Equal(t, 3, next.Quests[1].Current)
	assert.Equal(t, t0.Add(time.Minute).UnixMilli(), next.LastOpenTime)

	// the input was not touched
	assert.Equal(t, 1000, s.Coins)
	assert.Empty(t, s.Inventory)
	assert.Zero(t, s.Quests[0].Current)
}

func TestBuyPackGuards(t *testing.T) {
	e := newEngine(gacha.NewSeededRNG(1))
	s := e.NewState(t0)

	next, _, err := e.BuyPack(s, "hof_pack_that_does_not_exist", t0)
	assert.ErrorIs(t, err, ErrUnknownPack)
	assert.Equal(t, s, next)

	next, _, err = e.BuyPack(s, "allstar_pack", t0)
	assert.ErrorIs(t, err, ErrInsufficientFunds)
	assert.Equal(t, s, next)
}

func TestBuyPackGuaranteeHolds(t *testing.T) {
	e := newEngine(gacha.NewSeededRNG(5))
	var epic string
	for _, p := range e.Packs() {
		if p.Guaranteed != nil && *p.Guaranteed == card.Epic {
			epic = p.ID
			break
		}
	}
	require.NotEmpty(t, epic)

	s := e.NewState(t0)
	for i := 0; i < 200; i++ {
		s.Coins = 1_000_000
		var res OpenResult
		var err error
		s, res, err = e.BuyPack(s, epic, t0)
		require.NoError(t, err)
		last := res.Cards[len(res.Cards)-1]
		require.True(t, last.Rarity.AtLeast(card.Epic), "pull %d: %s", i, last.Rarity)
	}
}

func TestSellCard(t *testing.T) {
	e := newEngine(gacha.NewSeededRNG(1))
	s := state.New(t0, 0)
	s.Inventory = []card.Card{
		{ID: "a", Price: 120},
		{ID: "b", Price: 300},
		{ID: "locked", Price: 900, Locked: true},
		{ID: "starter", Price: 50},
	}
	s.Lineup.PG = "starter"

	next, sold, err := e.SellCard(s, "b")
	require.NoError(t, err)
	assert.Equal(t, "b", sold.ID)
	assert.Equal(t, 300, next.Coins)
	assert.Len(t, next.Inventory, 3)
	_, _, still := next.Card("b")
	assert.False(t, still)
	assert.Len(t, s.Inventory, 4)

	for id, want := range map[string]error{
		"locked":  ErrCardLocked,
		"starter": ErrCardInLineup,
		"nope":    ErrCardNotFound,
	} {
		out, _, err := e.SellCard(s, id)
		assert.ErrorIs(t, err, want, id)
		assert.Equal(t, s, out, id)
	}
}

func TestToggleLock(t *testing.T) {
	e := newEngine(nil)
	s := state.New(t0, 0)
	s.Inventory = []card.Card{{ID: "a", Price: 10}}

	next, c, err := e.ToggleLock(s, "a")
	require.NoError(t, err)
	assert.True(t, c.Locked)
	assert.False(t, s.Inventory[0].Locked)

	_, _, err = e.SellCard(next, "a")
	assert.ErrorIs(t, err, ErrCardLocked)

	next, c, err = e.ToggleLock(next, "a")
	require.NoError(t, err)
	assert.False(t, c.Locked)

	_, _, err = e.ToggleLock(s, "zzz")
	assert.ErrorIs(t, err, ErrCardNotFound)
}

func TestEquipAndOptimize(t *testing.T) {
	e := newEngine(nil)
	s := fullSquad(0)
	s.Lineup = lineup.Lineup{Bench: []string{}}

	_, err := e.Equip(s, lineup.PG, "ghost")
	assert.ErrorIs(t, err, ErrCardNotFound)

	next, err := e.Equip(s, lineup.C, "p3")
	require.NoError(t, err)
	assert.Equal(t, "p3", next.Lineup.C)
	assert.Empty(t, s.Lineup.C)

	next, err = e.Unequip(next, lineup.C, 0)
	require.NoError(t, err)
	assert.Empty(t, next.Lineup.C)

	_, err = e.Unequip(next, lineup.Slot("X"), 0)
	assert.ErrorIs(t, err, ErrUnknownSlot)
	out, err := e.Unequip(next, lineup.Bench, 3)
	assert.ErrorIs(t, err, ErrBenchIndex)
	assert.Equal(t, next, out)

	opt := e.OptimizeLineup(s)
	assert.Equal(t, "p0", opt.Lineup.PG)
	assert.Len(t, opt.Lineup.Bench, lineup.MaxBench)
}

func TestEquipBenchFull(t *testing.T) {
	e := newEngine(nil)
	s := fullSquad(0)
	s.Inventory = append(s.Inventory, card.Card{ID: "extra"})

	next, err := e.Equip(s, lineup.Bench, "extra")
	assert.ErrorIs(t, err, ErrBenchFull)
	assert.Equal(t, s, next)
}

func TestTick(t *testing.T) {
	e := newEngine(gacha.NewSeededRNG(3))
	s := e.NewState(t0)

	s, res := e.Tick(s, t0)
	assert.True(t, res.AuctionRefreshed)
	assert.True(t, res.QuestsRefreshed)
	assert.Len(t, s.AuctionListings, 8)
	assert.Len(t, s.Quests, progress.BatchSize)

	again, res := e.Tick(s, t0.Add(time.Minute))
	assert.False(t, res.AuctionRefreshed)
	assert.False(t, res.QuestsRefreshed)
	assert.Equal(t, s, again)

	later, res := e.Tick(s, t0.Add(15*time.Minute))
	assert.True(t, res.AuctionRefreshed)
	assert.False(t, res.QuestsRefreshed)
	assert.NotEqual(t, s.AuctionListings, later.AuctionListings)

	_, res = e.Tick(s, t0.Add(24*time.Hour))
	assert.True(t, res.QuestsRefreshed)

	assert.Equal(t, 5*time.Minute, e.AuctionRemaining(s, t0.Add(10*time.Minute)))
}

func TestBuyListing(t *testing.T) {
	e := newEngine(gacha.NewSeededRNG(3))
	s := state.New(t0, 10_000)
	s.Inventory = []card.Card{{ID: "old"}}
	s.AuctionListings = []card.Card{{ID: "l1", Price: 4001}, {ID: "l2", Price: 50_000}}
	s.Quests = []progress.Quest{{ID: "q", Type: progress.CollectCards, Target: 5}}

	next, bought, err := e.BuyListing(s, "l1")
	require.NoError(t, err)
	assert.Equal(t, 1000, bought.Price)
	assert.True(t, bought.Locked)
	assert.Equal(t, 10_000-4001, next.Coins)
	assert.Equal(t, "l1", next.Inventory[0].ID)
	assert.Equal(t, "old", next.Inventory[1].ID)
	assert.Len(t, next.AuctionListings, 1)
	assert.Equal(t, 1, next.Quests[0].Current)

	out, _, err := e.BuyListing(s, "l2")
	assert.ErrorIs(t, err, ErrInsufficientFunds)
	assert.Equal(t, s, out)

	out, _, err = e.BuyListing(next, "l1")
	assert.ErrorIs(t, err, ErrListingNotFound)
	assert.Equal(t, next, out)
}

func TestPlaceWagerGuards(t *testing.T) {
	e := newEngine(gacha.NewSeededRNG(1))

	incomplete := state.New(t0, 5000)
	out, _, err := e.PlaceWager(incomplete, 100)
	assert.ErrorIs(t, err, ErrLineupIncomplete)
	assert.Equal(t, incomplete, out)

	s := fullSquad(500)
	for _, stake := range []int{0, -10} {
		out, _, err = e.PlaceWager(s, stake)
		assert.ErrorIs(t, err, ErrInvalidStake)
		assert.Equal(t, s, out)
	}

	out, _, err = e.PlaceWager(s, 1000)
	assert.ErrorIs(t, err, ErrInsufficientFunds)
	assert.Equal(t, s, out)
}

func TestPlaceWagerWin(t *testing.T) {
	// every draw is 0: the match is won and the opponent lands at OVR-5
	e := newEngine(gacha.NewScriptedRNG(0))
	s := fullSquad(5000)
	s.ActiveWagerOpponent = &wager.Opponent{Name: "Gotham Vipers", OVR: 80}
	s.Quests = []progress.Quest{{ID: "w", Type: progress.WinWager, Target: 1}}

	next, out, err := e.PlaceWager(s, 1000)
	require.NoError(t, err)
	assert.True(t, out.Win)
	assert.Equal(t, 0.5, out.WinChance)
	assert.Equal(t, 2000, out.Reward)
	assert.Equal(t, "Gotham Vipers", out.Opponent)
	assert.Equal(t, 6000, next.Coins)
	assert.Equal(t, state.WagerStats{Wins: 1, Earnings: 1000}, next.WagerStats)
	assert.Equal(t, 1, next.Quests[0].Current)
	require.NotNil(t, next.ActiveWagerOpponent)
	assert.Equal(t, 75.0, next.ActiveWagerOpponent.OVR)
	assert.Equal(t, 80.0, s.ActiveWagerOpponent.OVR)
}

func TestPlaceWagerLoss(t *testing.T) {
	e := newEngine(gacha.NewScriptedRNG(0.99))
	s := fullSquad(5000)
	s.ActiveWagerOpponent = &wager.Opponent{Name: "Sin City Wolves", OVR: 80}

	next, out, err := e.PlaceWager(s, 1000)
	require.NoError(t, err)
	assert.False(t, out.Win)
	assert.Zero(t, out.Reward)
	assert.Equal(t, 4000, next.Coins)
	assert.Equal(t, state.WagerStats{Losses: 1, Earnings: -1000}, next.WagerStats)
}

func TestPlaceWagerRollsMissingOpponent(t *testing.T) {
	e := newEngine(gacha.NewSeededRNG(8))
	s := fullSquad(5000)
	require.Nil(t, s.ActiveWagerOpponent)

	next, out, err := e.PlaceWager(s, 100)
	require.NoError(t, err)
	assert.NotEmpty(t, out.Opponent)
	assert.NotNil(t, next.ActiveWagerOpponent)
	assert.Contains(t, []int{4900, 5100}, next.Coins)
}

func TestEnsureOpponent(t *testing.T) {
	e := newEngine(gacha.NewSeededRNG(8))
	s := fullSquad(0)
	next := e.EnsureOpponent(s)
	require.NotNil(t, next.ActiveWagerOpponent)
	assert.InDelta(t, 80, next.ActiveWagerOpponent.OVR, 5)
	assert.Nil(t, s.ActiveWagerOpponent)
	assert.Equal(t, next, e.EnsureOpponent(next))
}

func TestSpinWheelCooldown(t *testing.T) {
	e := newEngine(gacha.NewScriptedRNG(0.99))
	s := state.New(t0, 0)

	require.True(t, e.WheelStatus(s, t0).Ready)
	next, res, err := e.SpinWheel(s, t0)
	require.NoError(t, err)
	assert.Equal(t, 20000, res.Segment.Value)
	assert.Equal(t, 20000, next.Coins)
	assert.Equal(t, t0.UnixMilli(), next.LastWheelSpin)

	again, _, err := e.SpinWheel(next, t0.Add(59*time.Minute))
	assert.ErrorIs(t, err, ErrWheelCooldown)
	assert.Equal(t, next, again)

	st := e.WheelStatus(next, t0.Add(45*time.Minute))
	assert.False(t, st.Ready)
	assert.Equal(t, 15*time.Minute, st.Remaining)
	assert.Len(t, st.Slices, 6)

	_, _, err = e.SpinWheel(next, t0.Add(time.Hour))
	assert.NoError(t, err)
}

func TestClaimQuestOnce(t *testing.T) {
	e := newEngine(nil)
	s := state.New(t0, 0)
	s.Quests = []progress.Quest{
		{ID: "done", Type: progress.OpenPacks, Target: 3, Current: 3, Reward: 500},
		{ID: "open", Type: progress.OpenPacks, Target: 5, Current: 3, Reward: 1000},
	}

	next, reward, err := e.ClaimQuest(s, "done")
	require.NoError(t, err)
	assert.Equal(t, 500, reward)
	assert.Equal(t, 500, next.Coins)

	again, _, err := e.ClaimQuest(next, "done")
	assert.ErrorIs(t, err, progress.ErrQuestClaimed)
	assert.Equal(t, next, again)

	early, _, err := e.ClaimQuest(s, "open")
	assert.ErrorIs(t, err, progress.ErrQuestIncomplete)
	assert.Equal(t, s, early)
}

func TestClaimSetOnce(t *testing.T) {
	e := newEngine(nil)
	s := state.New(t0, 0)
	for _, n := range []string{"LeBron James", "Anthony Davis", "Austin Reaves"} {
		s.Inventory = append(s.Inventory, card.Card{ID: n, Name: n, Team: "L.A. Lakers"})
	}

	statuses := e.SetStatuses(s)
	require.NotEmpty(t, statuses)
	assert.True(t, statuses[0].Complete)

	next, reward, err := e.ClaimSet(s, "set_lakers")
	require.NoError(t, err)
	assert.Equal(t, 5000, reward)
	assert.Equal(t, 5000, next.Coins)
	assert.Equal(t, []string{"set_lakers"}, next.ClaimedSets)

	again, _, err := e.ClaimSet(next, "set_lakers")
	assert.ErrorIs(t, err, progress.ErrSetClaimed)
	assert.Equal(t, next, again)

	_, _, err = e.ClaimSet(s, "set_legends")
	assert.ErrorIs(t, err, progress.ErrSetIncomplete)
}

type stubScouter struct {
	rep scout.Report
	err error
}

func (s stubScouter) Scout(ctx context.Context) (scout.Report, error) {
	if err := ctx.Err(); err != nil {
		return scout.Report{}, err
	}
	return s.rep, s.err
}

func TestScout(t *testing.T) {
	rep := scout.Report{Name: "Jax Thunder", Team: "Rucker Park", Position: "SG", Rating: 96, Offense: 90, Defense: 85}
	e := newEngine(gacha.NewSeededRNG(1), WithScouter(stubScouter{rep: rep}))
	s := state.New(t0, 6000)
	require.NoError(t, e.CanScout(s))

	c, err := e.ScoutCard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Jax Thunder", c.Name)
	assert.Equal(t, card.Legendary, c.Rarity)

	next, err := e.CommitScout(s, c)
	require.NoError(t, err)
	assert.Equal(t, 1000, next.Coins)
	assert.Len(t, next.Inventory, 1)
	assert.Empty(t, s.Inventory)

	assert.ErrorIs(t, e.CanScout(next), ErrInsufficientFunds)
	out, err := e.CommitScout(next, c)
	assert.ErrorIs(t, err, ErrInsufficientFunds)
	assert.Equal(t, next, out)
}

func TestScoutFallsBack(t *testing.T) {
	e := newEngine(nil, WithScouter(stubScouter{err: errors.New("upstream down")}))
	c, err := e.ScoutCard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Mystery Rookie", c.Name)

	bare := newEngine(nil)
	c, err = bare.ScoutCard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Mystery Rookie", c.Name)
}

func TestScoutCancelled(t *testing.T) {
	e := newEngine(nil, WithScouter(stubScouter{}))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := e.ScoutCard(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
