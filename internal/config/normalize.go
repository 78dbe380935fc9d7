package config

import (
	"fmt"
	"time"

	"github.com/xtding233/hoops-backend/internal/card"
	"github.com/xtding233/hoops-backend/internal/pack"
	"github.com/xtding233/hoops-backend/internal/progress"
	"github.com/xtding233/hoops-backend/internal/wheel"
)

// Normalize lays a merged raw layer over Default. Packs merge by id onto the
// built-in shop; other lists replace the built-in ones.
func Normalize(raw RawCatalog) (Catalog, error) {
	cat := Default()
	if raw.Version != "" {
		cat.Version = raw.Version
	}

	e := &cat.Economy
	setInt(&e.InitialCoins, raw.Economy.InitialCoins)
	setInt(&e.ScoutCost, raw.Economy.ScoutCost)
	setInt(&e.AuctionSize, raw.Economy.AuctionSize)
	setInt(&e.PackRetries, raw.Economy.PackRetries)
	setInt(&e.GuaranteeRetries, raw.Economy.GuaranteeRetries)
	for _, d := range []struct {
		dst *time.Duration
		src *string
		key string
	}{
		{&e.AuctionRefresh, raw.Economy.AuctionRefresh, "economy.auction_refresh"},
		{&e.QuestRefresh, raw.Economy.QuestRefresh, "economy.quest_refresh"},
		{&e.WheelCooldown, raw.Economy.WheelCooldown, "economy.wheel_cooldown"},
	} {
		if d.src == nil {
			continue
		}
		v, err := time.ParseDuration(*d.src)
		if err != nil {
			return Catalog{}, fmt.Errorf("%s: %w", d.key, err)
		}
		*d.dst = v
	}

	for _, rp := range raw.Packs {
		def, err := packFromRaw(rp)
		if err != nil {
			return Catalog{}, err
		}
		cat.Packs = upsertPack(cat.Packs, def)
	}

	if len(raw.Roster) > 0 {
		cat.Roster = make([]card.Player, 0, len(raw.Roster))
		for _, p := range raw.Roster {
			cat.Roster = append(cat.Roster, card.Player(p))
		}
	}
	if len(raw.SetTiers) > 0 {
		cat.SetTiers = make([]card.SetTier, 0, len(raw.SetTiers))
		for _, t := range raw.SetTiers {
			cat.SetTiers = append(cat.SetTiers, card.SetTier{Above: t.Above, Set: card.Set(t.Set)})
		}
	}
	if len(raw.Wheel) > 0 {
		cat.Wheel = make([]wheel.Segment, 0, len(raw.Wheel))
		for _, s := range raw.Wheel {
			cat.Wheel = append(cat.Wheel, wheel.Segment(s))
		}
	}
	if len(raw.Quests) > 0 {
		cat.Quests = make([]progress.Template, 0, len(raw.Quests))
		for _, q := range raw.Quests {
			cat.Quests = append(cat.Quests, progress.Template{
				Description: q.Description,
				Type:        progress.QuestType(q.Type),
				Target:      q.Target,
				Reward:      q.Reward,
			})
		}
	}
	if len(raw.Sets) > 0 {
		cat.Sets = make([]progress.SetDefinition, 0, len(raw.Sets))
		for _, s := range raw.Sets {
			def, err := setFromRaw(s)
			if err != nil {
				return Catalog{}, err
			}
			cat.Sets = append(cat.Sets, def)
		}
	}
	return cat, nil
}

func setInt(dst *int, src *int) {
	if src != nil {
		*dst = *src
	}
}

func packFromRaw(rp RawPack) (pack.Definition, error) {
	def := pack.Definition{
		ID:          rp.ID,
		Name:        rp.Name,
		Price:       rp.Price,
		CardCount:   rp.CardCount,
		Odds:        pack.Odds(rp.Odds),
		Theme:       rp.Color,
		Description: rp.Description,
	}
	if rp.Guaranteed != "" {
		r, err := card.ParseRarity(rp.Guaranteed)
		if err != nil {
			return pack.Definition{}, fmt.Errorf("pack %s: %w", rp.ID, err)
		}
		def.Guaranteed = &r
	}
	return def, nil
}

func setFromRaw(s RawSet) (progress.SetDefinition, error) {
	def := progress.SetDefinition{
		ID:          s.ID,
		Name:        s.Name,
		Description: s.Description,
		Reward:      s.Reward,
		Criteria: progress.Criteria{
			Team:  s.Team,
			Set:   card.Set(s.Set),
			Count: s.Count,
		},
	}
	if s.Rarity != "" {
		r, err := card.ParseRarity(s.Rarity)
		if err != nil {
			return progress.SetDefinition{}, fmt.Errorf("collection set %s: %w", s.ID, err)
		}
		def.Criteria.Rarity = &r
	}
	return def, nil
}

func upsertPack(defs []pack.Definition, def pack.Definition) []pack.Definition {
	for i := range defs {
		if defs[i].ID == def.ID {
			defs[i] = def
			return defs
		}
	}
	return append(defs, def)
}
