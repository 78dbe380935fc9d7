package wager

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xtding233/hoops-backend/internal/gacha"
)

func TestWinChanceEvenMatch(t *testing.T) {
	assert.Equal(t, 0.50, WinChance(80, 80))
}

func TestWinChanceClampedAndMonotonic(t *testing.T) {
	prev := -1.0
	for diff := -100.0; diff <= 100; diff += 0.5 {
		c := WinChance(80+diff, 80)
		require.GreaterOrEqual(t, c, MinWinChance)
		require.LessOrEqual(t, c, MaxWinChance)
		require.GreaterOrEqual(t, c, prev, "diff=%v", diff)
		prev = c
	}
	assert.Equal(t, MaxWinChance, WinChance(1000, 0))
	assert.Equal(t, MinWinChance, WinChance(0, 1000))
	assert.InDelta(t, 0.65, WinChance(85, 80), 1e-9)
}

func TestResolveWin(t *testing.T) {
	// win roll 0.1 < 0.5; winner = floor(100+0.5*20)=110; loser = floor(110-(2+0.2*15))=105
	o := Resolve(gacha.NewScriptedRNG(0.1, 0.5, 0.2), 80, 80, 1000)
	assert.True(t, o.Win)
	assert.Equal(t, 2000, o.Reward)
	assert.Equal(t, 1000, o.Net())
	assert.Equal(t, 110, o.UserScore)
	assert.Equal(t, 105, o.OpponentScore)
	assert.Equal(t, "110 - 105", o.Score)
}

func TestResolveLoss(t *testing.T) {
	o := Resolve(gacha.NewScriptedRNG(0.9, 0.5, 0.2), 80, 80, 1000)
	assert.False(t, o.Win)
	assert.Equal(t, 0, o.Reward)
	assert.Equal(t, -1000, o.Net())
	assert.Equal(t, "105 - 110", o.Score)
}

func TestResolveScoresInRange(t *testing.T) {
	rng := gacha.NewSeededRNG(77)
	for i := 0; i < 5000; i++ {
		o := Resolve(rng, 85, 82, 100)
		hi, lo := o.UserScore, o.OpponentScore
		if !o.Win {
			hi, lo = lo, hi
		}
		require.GreaterOrEqual(t, hi, 100)
		require.Less(t, hi, 120)
		require.Greater(t, hi, lo)
		require.LessOrEqual(t, hi-lo, 17)
	}
}

func TestResolveWinRateConverges(t *testing.T) {
	rng := gacha.NewSeededRNG(4)
	const n = 100000
	wins := 0
	for i := 0; i < n; i++ {
		if Resolve(rng, 85, 80, 1).Win {
			wins++
		}
	}
	freq := float64(wins) / n
	assert.InDelta(t, 0.65, freq, 0.01)
}

func TestNewOpponent(t *testing.T) {
	rng := gacha.NewSeededRNG(12)
	for i := 0; i < 2000; i++ {
		o := NewOpponent(rng, 80)
		require.GreaterOrEqual(t, o.OVR, 75.0)
		require.LessOrEqual(t, o.OVR, 85.0)
		require.Equal(t, o.OVR, math.Round(o.OVR*10)/10)
		parts := strings.SplitN(o.Name, " ", 2)
		require.Len(t, parts, 2)
	}

	low := NewOpponent(rng, 0)
	assert.Equal(t, float64(MinOpponentOVR), low.OVR)
	high := NewOpponent(rng, 120)
	assert.Equal(t, float64(MaxOpponentOVR), high.OVR)
}

func TestNewOpponentScripted(t *testing.T) {
	// city idx 0, mascot idx 7, variance -5+0.75*10=2.5
	o := NewOpponent(gacha.NewScriptedRNG(0.0, 0.99, 0.75), 80.0)
	assert.Equal(t, "Gotham Wolves", o.Name)
	assert.Equal(t, 82.5, o.OVR)
}

func TestRound1(t *testing.T) {
	assert.Equal(t, 81.3, Round1(81.26))
	assert.Equal(t, 81.2, Round1(81.24))
	assert.Equal(t, 0.0, Round1(0))
}
