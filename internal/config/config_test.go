package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/xtding233/hoops-backend/internal/card"
	"github.com/xtding233/hoops-backend/internal/pack"
	"github.com/xtding233/hoops-backend/internal/progress"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"HOOPS_HTTP_ADDR", "HOOPS_STORE", "HOOPS_SEED", "HOOPS_LOG_LEVEL", "HOOPS_MATCH_DELAY", "HOOPS_LOG_FORMAT"} {
		t.Setenv(k, "")
	}
	c, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":8080", c.HTTPAddr)
	assert.Equal(t, "sqlite", c.Store)
	assert.Equal(t, zapcore.InfoLevel, c.LogLevel)
	assert.Equal(t, 2500*time.Millisecond, c.MatchDelay)
	assert.Zero(t, c.Seed)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("HOOPS_STORE", "Redis")
	t.Setenv("HOOPS_SEED", "42")
	t.Setenv("HOOPS_LOG_LEVEL", "debug")
	t.Setenv("HOOPS_MATCH_DELAY", "0s")
	t.Setenv("HOOPS_LLM_FALLBACK_MODELS", "a, b,,c")

	c, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "redis", c.Store)
	assert.Equal(t, uint64(42), c.Seed)
	assert.Equal(t, zapcore.DebugLevel, c.LogLevel)
	assert.Zero(t, c.MatchDelay)
	assert.Equal(t, []string{"a", "b", "c"}, c.LLMFallbackModels)
}

func TestLoadRejectsBadValues(t *testing.T) {
	cases := map[string]string{
		"HOOPS_STORE":       "postgres",
		"HOOPS_SEED":        "-1",
		"HOOPS_LOG_LEVEL":   "loud",
		"HOOPS_MATCH_DELAY": "soon",
	}
	for key, val := range cases {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, val)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

func TestLoaderWithoutFilesIsDefault(t *testing.T) {
	cat, err := NewLoader(t.TempDir()).Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cat)

	cat, err = NewLoader("").Load("whatever")
	require.NoError(t, err)
	assert.Len(t, cat.Packs, len(pack.DefaultCatalog))
}

func TestLoaderMergesLayers(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "catalog.yaml"), `
version: "2024.10"
economy:
  initial_coins: 2500
  wheel_cooldown: 30m
packs:
  - id: rookie_pack
    name: Rookie Class
    price: 400
    card_count: 3
    odds: {common: 0.7, rare: 0.25, epic: 0.05}
  - id: playoff_pack
    name: Playoff Push
    price: 8000
    card_count: 4
    guaranteed: rare
    odds: {common: 0.2, rare: 0.5, epic: 0.25, legendary: 0.05}
`)
	writeFile(t, filepath.Join(dir, "profiles", "event.yaml"), `
version: "2024.10-event"
economy:
  initial_coins: 9000
quests:
  - {description: Win 3 Wagers, type: WIN_WAGER, target: 3, reward: 5000}
`)

	l := NewLoader(dir)
	base, err := l.Load("")
	require.NoError(t, err)
	assert.Equal(t, "2024.10", base.Version)
	assert.Equal(t, 2500, base.Economy.InitialCoins)
	assert.Equal(t, 30*time.Minute, base.Economy.WheelCooldown)
	assert.Len(t, base.Packs, len(pack.DefaultCatalog)+1)

	rookie, ok := pack.Find(base.Packs, "rookie_pack")
	require.True(t, ok)
	assert.Equal(t, 400, rookie.Price)

	playoff, ok := pack.Find(base.Packs, "playoff_pack")
	require.True(t, ok)
	require.NotNil(t, playoff.Guaranteed)
	assert.Equal(t, card.Rare, *playoff.Guaranteed)

	ev, err := l.Load("event")
	require.NoError(t, err)
	assert.Equal(t, "2024.10-event", ev.Version)
	assert.Equal(t, 9000, ev.Economy.InitialCoins)
	assert.Equal(t, 30*time.Minute, ev.Economy.WheelCooldown)
	require.Len(t, ev.Quests, 1)
	assert.Equal(t, progress.WinWager, ev.Quests[0].Type)
	assert.Equal(t, progress.DefaultTemplates, base.Quests)
}

func TestLoaderCachesUntilInvalidate(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.yaml")
	writeFile(t, path, "economy: {scout_cost: 100}\n")

	l := NewLoader(dir)
	cat, err := l.Load("")
	require.NoError(t, err)
	assert.Equal(t, 100, cat.Economy.ScoutCost)

	writeFile(t, path, "economy: {scout_cost: 200}\n")
	cat, _ = l.Load("")
	assert.Equal(t, 100, cat.Economy.ScoutCost)

	l.Invalidate()
	cat, err = l.Load("")
	require.NoError(t, err)
	assert.Equal(t, 200, cat.Economy.ScoutCost)
}

func TestLoaderBadYAML(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "catalog.yaml"), "packs: [oops\n")
	_, err := NewLoader(dir).Load("")
	assert.Error(t, err)
}

func TestValidateRawCollectsEverything(t *testing.T) {
	neg := -5
	bad := "soon"
	err := ValidateRaw(RawCatalog{
		Economy: RawEconomy{InitialCoins: &neg, QuestRefresh: &bad},
		Packs: []RawPack{
			{ID: "a", CardCount: 0, Odds: RawOdds{Common: 1.5}, Guaranteed: "SHINY"},
			{ID: "a", CardCount: 1},
		},
		Roster:   []RawPlayer{{Name: "X", Position: "G"}},
		SetTiers: []RawTier{{Above: 0.5, Set: "Easter"}},
		Wheel:    []RawSegment{{Value: 1, Probability: 0.5, Span: 90}},
		Quests:   []RawQuest{{Type: "DUNK", Target: 0}},
		Sets:     []RawSet{{ID: "s", Rarity: "MYTHIC", Count: 0}},
	})
	require.ErrorIs(t, err, ErrInvalidCatalog)
	msg := err.Error()
	for _, want := range []string{
		"economy.initial_coins",
		"economy.quest_refresh",
		"packs[0].card_count",
		"packs[0].odds.common",
		"packs[0].guaranteed",
		`packs[1].id "a" is duplicated`,
		"roster[0].position",
		"set_tiers[0].set",
		"wheel:",
		"quests[0].type",
		"quests[0].target",
		"collection_sets[0].count",
		"collection_sets[0].rarity",
	} {
		assert.Contains(t, msg, want)
	}
}

func TestWarnings(t *testing.T) {
	cat := Default()
	assert.Empty(t, Warnings(cat))

	cat.Packs[0].Odds.Common = 0.5
	cat.Quests = cat.Quests[:2]
	assert.Len(t, Warnings(cat), 2)
}

func TestFileWatcherSeesChanges(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.yaml")
	missing := filepath.Join(dir, "profiles", "late.yaml")
	writeFile(t, path, "version: a\n")

	var changed []string
	w := NewFileWatcher([]string{path, missing}, time.Hour, func(p string) { changed = append(changed, p) })
	w.scanAll(true)
	assert.Empty(t, changed)

	w.scanAll(false)
	assert.Empty(t, changed)

	future := time.Now().Add(time.Minute)
	require.NoError(t, os.Chtimes(path, future, future))
	writeFile(t, missing, "version: b\n")
	w.scanAll(false)
	assert.ElementsMatch(t, []string{path, missing}, changed)
}

func TestWatchReloadsCatalog(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.yaml")
	writeFile(t, path, "economy: {scout_cost: 1}\n")

	l := NewLoader(dir)
	reloaded := make(chan Catalog, 1)
	w := Watch(l, "", 10*time.Millisecond, nil, func(c Catalog) {
		select {
		case reloaded <- c:
		default:
		}
	})
	defer w.Stop()

	writeFile(t, path, "economy: {scout_cost: 2}\n")
	future := time.Now().Add(time.Minute)
	require.NoError(t, os.Chtimes(path, future, future))

	select {
	case cat := <-reloaded:
		assert.Equal(t, 2, cat.Economy.ScoutCost)
	case <-time.After(5 * time.Second):
		t.Fatal("catalog was not reloaded")
	}
}

func TestShippedCatalog(t *testing.T) {
	l := NewLoader(filepath.Join("..", "..", "configs"))

	base, err := l.Load("")
	require.NoError(t, err)
	assert.Equal(t, "2025.1", base.Version)
	assert.Equal(t, time.Hour, base.Economy.WheelCooldown)
	assert.Len(t, base.Packs, 6)
	assert.Empty(t, Warnings(base))

	cat, err := l.Load("halloween")
	require.NoError(t, err)
	assert.Equal(t, "2025.1-halloween", cat.Version)
	assert.Equal(t, 30*time.Minute, cat.Economy.WheelCooldown)
	assert.Equal(t, 15*time.Minute, cat.Economy.AuctionRefresh)

	def, ok := pack.Find(cat.Packs, "halloween_pack")
	require.True(t, ok)
	assert.Equal(t, 10000, def.Price)
	require.NotNil(t, def.Guaranteed)
	assert.Equal(t, card.Epic, *def.Guaranteed)
	assert.InDelta(t, 1.0, def.Odds.Sum(), 1e-9)
	assert.Empty(t, Warnings(cat))
}
