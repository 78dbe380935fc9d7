package config

import (
	"slices"
	"time"

	"github.com/xtding233/hoops-backend/internal/card"
	"github.com/xtding233/hoops-backend/internal/market"
	"github.com/xtding233/hoops-backend/internal/pack"
	"github.com/xtding233/hoops-backend/internal/progress"
	"github.com/xtding233/hoops-backend/internal/scout"
	"github.com/xtding233/hoops-backend/internal/state"
	"github.com/xtding233/hoops-backend/internal/wheel"
)

// Economy holds the tunable numbers of the game loop.
type Economy struct {
	InitialCoins     int
	ScoutCost        int
	AuctionSize      int
	AuctionRefresh   time.Duration
	QuestRefresh     time.Duration
	WheelCooldown    time.Duration
	PackRetries      int
	GuaranteeRetries int
}

// Catalog is the normalized game content the engine runs on.
type Catalog struct {
	Version  string
	Economy  Economy
	Packs    []pack.Definition
	Roster   []card.Player
	SetTiers []card.SetTier
	Wheel    []wheel.Segment
	Quests   []progress.Template
	Sets     []progress.SetDefinition
}

// Default is the built-in catalog, used as the base layer of every load.
func Default() Catalog {
	return Catalog{
		Version: "builtin",
		Economy: Economy{
			InitialCoins:     state.InitialCoins,
			ScoutCost:        scout.DefaultCost,
			AuctionSize:      market.ListingSize,
			AuctionRefresh:   market.RefreshInterval,
			QuestRefresh:     progress.RefreshInterval,
			WheelCooldown:    wheel.Cooldown,
			PackRetries:      pack.DefaultRetries,
			GuaranteeRetries: pack.DefaultGuaranteeRetries,
		},
		Packs:    clonePacks(pack.DefaultCatalog),
		Roster:   slices.Clone(card.DefaultRoster),
		SetTiers: slices.Clone(card.DefaultSetTiers),
		Wheel:    slices.Clone(wheel.DefaultSegments),
		Quests:   slices.Clone(progress.DefaultTemplates),
		Sets:     cloneSets(progress.DefaultSets),
	}
}

func clonePacks(in []pack.Definition) []pack.Definition {
	out := slices.Clone(in)
	for i := range out {
		if g := out[i].Guaranteed; g != nil {
			r := *g
			out[i].Guaranteed = &r
		}
	}
	return out
}

func cloneSets(in []progress.SetDefinition) []progress.SetDefinition {
	out := slices.Clone(in)
	for i := range out {
		if r := out[i].Criteria.Rarity; r != nil {
			v := *r
			out[i].Criteria.Rarity = &v
		}
	}
	return out
}
