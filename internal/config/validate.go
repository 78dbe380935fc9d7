package config

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/xtding233/hoops-backend/internal/card"
	"github.com/xtding233/hoops-backend/internal/gacha"
	"github.com/xtding233/hoops-backend/internal/progress"
	"github.com/xtding233/hoops-backend/internal/wheel"
)

var ErrInvalidCatalog = errors.New("catalog validation failed")

// ValidateRaw checks a merged layer and reports every problem at once.
func ValidateRaw(cfg RawCatalog) error {
	var errs []string

	e := cfg.Economy
	for _, f := range []struct {
		v   *int
		key string
		min int
	}{
		{e.InitialCoins, "economy.initial_coins", 0},
		{e.ScoutCost, "economy.scout_cost", 0},
		{e.AuctionSize, "economy.auction_size", 1},
		{e.PackRetries, "economy.pack_retries", 0},
		{e.GuaranteeRetries, "economy.guarantee_retries", 0},
	} {
		if f.v != nil && *f.v < f.min {
			errs = append(errs, fmt.Sprintf("%s must be >= %d", f.key, f.min))
		}
	}
	for _, f := range []struct {
		v   *string
		key string
	}{
		{e.AuctionRefresh, "economy.auction_refresh"},
		{e.QuestRefresh, "economy.quest_refresh"},
		{e.WheelCooldown, "economy.wheel_cooldown"},
	} {
		if f.v == nil {
			continue
		}
		if d, err := time.ParseDuration(*f.v); err != nil {
			errs = append(errs, fmt.Sprintf("%s: %q is not a duration", f.key, *f.v))
		} else if d < 0 {
			errs = append(errs, fmt.Sprintf("%s must be >= 0", f.key))
		}
	}

	seen := make(map[string]bool)
	for i, p := range cfg.Packs {
		if p.ID == "" {
			errs = append(errs, fmt.Sprintf("packs[%d].id is required", i))
		} else if seen[p.ID] {
			errs = append(errs, fmt.Sprintf("packs[%d].id %q is duplicated", i, p.ID))
		}
		seen[p.ID] = true
		if p.Price < 0 {
			errs = append(errs, fmt.Sprintf("packs[%d].price must be >= 0", i))
		}
		if p.CardCount < 1 {
			errs = append(errs, fmt.Sprintf("packs[%d].card_count must be >= 1", i))
		}
		odds := []float64{p.Odds.Common, p.Odds.Rare, p.Odds.Epic, p.Odds.Legendary, p.Odds.Goat}
		for j, v := range odds {
			if gacha.ValidateProb(v) != nil {
				errs = append(errs, fmt.Sprintf("packs[%d].odds.%s must be in [0,1]", i, strings.ToLower(card.Rarities[j].String())))
			}
		}
		if p.Guaranteed != "" {
			if _, err := card.ParseRarity(p.Guaranteed); err != nil {
				errs = append(errs, fmt.Sprintf("packs[%d].guaranteed: %q is not a rarity", i, p.Guaranteed))
			}
		}
	}

	for i, p := range cfg.Roster {
		if p.Name == "" {
			errs = append(errs, fmt.Sprintf("roster[%d].name is required", i))
		}
		switch p.Position {
		case card.PG, card.SG, card.SF, card.PF, card.C:
		default:
			errs = append(errs, fmt.Sprintf("roster[%d].position %q must be one of PG, SG, SF, PF, C", i, p.Position))
		}
	}

	for i, t := range cfg.SetTiers {
		if !card.Set(t.Set).Known() {
			errs = append(errs, fmt.Sprintf("set_tiers[%d].set %q is unknown", i, t.Set))
		}
		if t.Above < 0 || t.Above >= 1 {
			errs = append(errs, fmt.Sprintf("set_tiers[%d].above must be in [0,1)", i))
		}
	}

	if len(cfg.Wheel) > 0 {
		segs := make([]wheel.Segment, 0, len(cfg.Wheel))
		for _, s := range cfg.Wheel {
			segs = append(segs, wheel.Segment(s))
		}
		if err := wheel.Validate(segs); err != nil {
			errs = append(errs, "wheel: "+strings.ReplaceAll(err.Error(), "\n", "; "))
		}
	}

	for i, q := range cfg.Quests {
		if !progress.QuestType(q.Type).Valid() {
			errs = append(errs, fmt.Sprintf("quests[%d].type %q must be one of OPEN_PACKS, COLLECT_CARDS, WIN_WAGER", i, q.Type))
		}
		if q.Target < 1 {
			errs = append(errs, fmt.Sprintf("quests[%d].target must be >= 1", i))
		}
		if q.Reward < 0 {
			errs = append(errs, fmt.Sprintf("quests[%d].reward must be >= 0", i))
		}
	}

	setIDs := make(map[string]bool)
	for i, s := range cfg.Sets {
		if s.ID == "" {
			errs = append(errs, fmt.Sprintf("collection_sets[%d].id is required", i))
		} else if setIDs[s.ID] {
			errs = append(errs, fmt.Sprintf("collection_sets[%d].id %q is duplicated", i, s.ID))
		}
		setIDs[s.ID] = true
		if s.Count < 1 {
			errs = append(errs, fmt.Sprintf("collection_sets[%d].count must be >= 1", i))
		}
		if s.Set != "" && !card.Set(s.Set).Known() {
			errs = append(errs, fmt.Sprintf("collection_sets[%d].set %q is unknown", i, s.Set))
		}
		if s.Rarity != "" {
			if _, err := card.ParseRarity(s.Rarity); err != nil {
				errs = append(errs, fmt.Sprintf("collection_sets[%d].rarity %q is not a rarity", i, s.Rarity))
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidCatalog, strings.Join(errs, "; "))
	}
	return nil
}

// Warnings lists problems that do not stop the catalog from loading.
func Warnings(cat Catalog) []string {
	var out []string
	for _, p := range cat.Packs {
		if s := p.Odds.Sum(); math.Abs(s-1) > 1e-9 {
			out = append(out, fmt.Sprintf("pack %s: odds sum to %.4f, the remainder rolls COMMON", p.ID, s))
		}
	}
	if len(cat.Quests) < progress.BatchSize {
		out = append(out, fmt.Sprintf("only %d quest templates, batches will be short", len(cat.Quests)))
	}
	return out
}
