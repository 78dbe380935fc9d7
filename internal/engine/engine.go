package engine

import (
	"time"

	"go.uber.org/zap"

	"github.com/xtding233/hoops-backend/internal/card"
	"github.com/xtding233/hoops-backend/internal/config"
	"github.com/xtding233/hoops-backend/internal/gacha"
	"github.com/xtding233/hoops-backend/internal/market"
	"github.com/xtding233/hoops-backend/internal/pack"
	"github.com/xtding233/hoops-backend/internal/scout"
	"github.com/xtding233/hoops-backend/internal/state"
	"github.com/xtding233/hoops-backend/internal/wheel"
)

// Engine applies game actions to a GameState. Every method takes the state by
// value and returns the next one; the caller decides whether to keep it.
type Engine struct {
	Catalog config.Catalog

	rng      gacha.RandomSource
	cards    *card.Generator
	resolver *pack.Resolver
	auction  *market.Auction
	wheel    *wheel.Wheel
	scouter  scout.Scouter
	log      *zap.Logger
}

type Option func(*Engine)

// WithScouter enables AI scouting. Without one, scouting hands out the fallback card.
func WithScouter(s scout.Scouter) Option {
	return func(e *Engine) { e.scouter = s }
}

func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// WithCardIDs replaces uuid card ids, for deterministic tests and tooling.
func WithCardIDs(next func() string) Option {
	return func(e *Engine) { e.cards.NewID = next }
}

// New wires the generators for a catalog. A nil rng means crypto randomness.
func New(cat config.Catalog, rng gacha.RandomSource, opts ...Option) *Engine {
	if rng == nil {
		rng = gacha.DefaultRNG()
	}
	gen := card.NewGenerator(rng)
	gen.Roster = cat.Roster
	gen.Tiers = cat.SetTiers

	res := pack.NewResolver(gen, rng)
	res.Retries = cat.Economy.PackRetries
	res.GuaranteeRetries = cat.Economy.GuaranteeRetries

	auc := market.NewAuction(gen, rng)
	auc.Size = cat.Economy.AuctionSize

	e := &Engine{
		Catalog:  cat,
		rng:      rng,
		cards:    gen,
		resolver: res,
		auction:  auc,
		wheel:    wheel.New(cat.Wheel, rng),
		log:      zap.NewNop(),
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// NewState is a fresh save with this catalog's starting coins.
func (e *Engine) NewState(now time.Time) state.GameState {
	return state.New(now, e.Catalog.Economy.InitialCoins)
}

// Packs lists the shop.
func (e *Engine) Packs() []pack.Definition {
	return e.Catalog.Packs
}
