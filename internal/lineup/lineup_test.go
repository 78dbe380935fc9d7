package lineup

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xtding233/hoops-backend/internal/card"
)

func mk(id, pos string, rating int) card.Card {
	return card.Card{ID: id, Name: id, Position: pos, Rating: rating}
}

func TestEquipMovesCard(t *testing.T) {
	var l Lineup
	l, err := l.Equip(PG, "a")
	require.NoError(t, err)
	assert.Equal(t, "a", l.PG)

	l, err = l.Equip(Bench, "a")
	require.NoError(t, err)
	assert.Empty(t, l.PG)
	assert.Equal(t, []string{"a"}, l.Bench)

	l, err = l.Equip(SG, "a")
	require.NoError(t, err)
	assert.Equal(t, "a", l.SG)
	assert.Empty(t, l.Bench)
}

func TestEquipBenchFull(t *testing.T) {
	l := Lineup{}
	var err error
	for i := 0; i < MaxBench; i++ {
		l, err = l.Equip(Bench, fmt.Sprint(i))
		require.NoError(t, err)
	}
	before := l.Clone()
	l, err = l.Equip(Bench, "extra")
	assert.ErrorIs(t, err, ErrBenchFull)
	assert.Equal(t, before, l)

	// moving a benched id back onto the bench frees its own spot first
	_, err = l.Equip(Bench, "3")
	assert.NoError(t, err)
}

func TestEquipUnknownSlot(t *testing.T) {
	_, err := Lineup{}.Equip(Slot("G"), "a")
	assert.ErrorIs(t, err, ErrUnknownSlot)
	_, err = ParseSlot("Center")
	assert.ErrorIs(t, err, ErrUnknownSlot)
}

func TestEquipDoesNotAlias(t *testing.T) {
	l := Lineup{Bench: make([]string, 0, MaxBench)}
	l.Bench = append(l.Bench, "x")
	next, err := l.Equip(Bench, "y")
	require.NoError(t, err)
	assert.Equal(t, []string{"x"}, l.Bench)
	assert.Equal(t, []string{"x", "y"}, next.Bench)
}

func TestUnequip(t *testing.T) {
	l := Lineup{C: "c", Bench: []string{"b1", "b2", "b3"}}
	out, err := l.Unequip(C, 0)
	require.NoError(t, err)
	assert.Empty(t, out.C)

	out, err = l.Unequip(Bench, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"b1", "b3"}, out.Bench)
	assert.Len(t, l.Bench, 3)

	out, err = l.Unequip(Bench, 9)
	assert.ErrorIs(t, err, ErrBenchIndex)
	assert.Equal(t, l, out)
	_, err = l.Unequip(Bench, -1)
	assert.ErrorIs(t, err, ErrBenchIndex)
}

func TestContainsAndIDs(t *testing.T) {
	l := Lineup{PG: "p", C: "c", Bench: []string{"b"}}
	assert.Equal(t, []string{"p", "c", "b"}, l.IDs())
	assert.True(t, l.Contains("b"))
	assert.False(t, l.Contains("z"))
	assert.False(t, l.Contains(""))
}

func TestIsComplete(t *testing.T) {
	l := Lineup{PG: "1", SG: "2", SF: "3", PF: "4", C: "5"}
	assert.False(t, l.IsComplete())
	for i := 0; i < MaxBench; i++ {
		l.Bench = append(l.Bench, fmt.Sprint("b", i))
	}
	assert.True(t, l.IsComplete())
	l.SF = ""
	assert.False(t, l.IsComplete())
}

func TestPrune(t *testing.T) {
	inv := []card.Card{mk("a", "PG", 80)}
	l := Lineup{PG: "a", SG: "gone", Bench: []string{"gone", "a"}}
	out := l.Prune(inv)
	assert.Equal(t, "a", out.PG)
	assert.Empty(t, out.SG)
	assert.Equal(t, []string{"a"}, out.Bench)
}

func TestTeamRating(t *testing.T) {
	inv := []card.Card{mk("a", "PG", 80), mk("b", "SG", 85), mk("c", "C", 90)}
	assert.Equal(t, 0.0, TeamRating(Lineup{}, inv))
	assert.Equal(t, 85.0, TeamRating(Lineup{PG: "a", SG: "b", Bench: []string{"c"}}, inv))
	assert.Equal(t, 82.5, TeamRating(Lineup{PG: "a", SG: "b"}, inv))
	// 80+85+0 over three ids
	assert.Equal(t, 55.0, TeamRating(Lineup{PG: "a", SG: "b", C: "gone"}, inv))
}

func TestAutoOptimize(t *testing.T) {
	inv := []card.Card{
		mk("pg1", "PG", 80), mk("pg2", "PG", 90),
		mk("sg", "SG", 70), mk("sf", "SF", 75),
		mk("c1", "C", 95), mk("c2", "C", 60),
	}
	for i := 0; i < 10; i++ {
		inv = append(inv, mk(fmt.Sprint("x", i), "PF", 50+i))
	}
	l := AutoOptimize(inv)
	assert.Equal(t, "pg2", l.PG)
	assert.Equal(t, "sg", l.SG)
	assert.Equal(t, "sf", l.SF)
	assert.Equal(t, "x9", l.PF)
	assert.Equal(t, "c1", l.C)
	require.Len(t, l.Bench, MaxBench)
	assert.Equal(t, []string{"pg1", "c2", "x8", "x7", "x6", "x5", "x4", "x3"}, l.Bench)
	assert.True(t, l.IsComplete())
}
