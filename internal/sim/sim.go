// Package sim runs Monte Carlo passes over the economy for tuning.
package sim

import (
	"github.com/xtding233/hoops-backend/internal/card"
	"github.com/xtding233/hoops-backend/internal/config"
	"github.com/xtding233/hoops-backend/internal/gacha"
	"github.com/xtding233/hoops-backend/internal/pack"
	"github.com/xtding233/hoops-backend/internal/wager"
	"github.com/xtding233/hoops-backend/internal/wheel"
)

// Runner draws every simulation from one random source.
type Runner struct {
	Catalog config.Catalog
	RNG     gacha.RandomSource
}

func NewRunner(cat config.Catalog, rng gacha.RandomSource) *Runner {
	if rng == nil {
		rng = gacha.DefaultRNG()
	}
	return &Runner{Catalog: cat, RNG: rng}
}

// PackReport is the value distribution of one pack.
type PackReport struct {
	Pack pack.Definition
	// Value is the summed sell price per pack.
	Value gacha.Stats
	// Rarities counts every card pulled.
	Rarities map[card.Rarity]int
	// Forced counts cards whose rarity sits above what their rating earns.
	Forced int
	Cards  int
}

// ExpectedReturn is mean value over price; 0 for a free pack.
func (r PackReport) ExpectedReturn() float64 {
	if r.Pack.Price == 0 {
		return 0
	}
	return r.Value.Mean / float64(r.Pack.Price)
}

func (r *Runner) generator() *card.Generator {
	g := card.NewGenerator(r.RNG)
	g.Roster = r.Catalog.Roster
	g.Tiers = r.Catalog.SetTiers
	g.NewID = func() string { return "" }
	return g
}

// PackValue opens a pack trials times.
func (r *Runner) PackValue(def pack.Definition, trials int) (PackReport, error) {
	res := pack.NewResolver(r.generator(), r.RNG)
	res.Retries = r.Catalog.Economy.PackRetries
	res.GuaranteeRetries = r.Catalog.Economy.GuaranteeRetries

	rep := PackReport{Pack: def, Rarities: make(map[card.Rarity]int)}
	stats, err := gacha.RunTrials(trials, func() (int, error) {
		total := 0
		for _, c := range res.Open(def) {
			total += c.Price
			rep.Rarities[c.Rarity]++
			rep.Cards++
			if card.RarityForRating(c.Rating) != c.Rarity {
				rep.Forced++
			}
		}
		return total, nil
	})
	if err != nil {
		return PackReport{}, err
	}
	rep.Value = stats
	rep.Value.Samples = nil
	return rep, nil
}

// WheelReport is the payout distribution of the wheel.
type WheelReport struct {
	Payout gacha.Stats
	// Frequency per segment index, as a share of all spins.
	Frequency []float64
}

func (r *Runner) WheelPayout(trials int) (WheelReport, error) {
	w := wheel.New(r.Catalog.Wheel, r.RNG)
	counts := make([]int, len(w.Segments))
	stats, err := gacha.RunTrials(trials, func() (int, error) {
		res := w.Spin()
		counts[res.Index]++
		return res.Segment.Value, nil
	})
	if err != nil {
		return WheelReport{}, err
	}
	freq := make([]float64, len(counts))
	if trials > 0 {
		for i, c := range counts {
			freq[i] = float64(c) / float64(trials)
		}
	}
	stats.Samples = nil
	return WheelReport{Payout: stats, Frequency: freq}, nil
}

// WagerReport is the observed outcome of many equal-stake matches.
type WagerReport struct {
	Diff      float64
	WinChance float64
	WinRate   float64
	// Net is coins per match for a stake of 1.
	Net gacha.Stats
}

// WagerWinRate plays trials matches at a fixed OVR advantage.
func (r *Runner) WagerWinRate(diff float64, trials int) (WagerReport, error) {
	const base = 80.0
	wins := 0
	stats, err := gacha.RunTrials(trials, func() (int, error) {
		out := wager.Resolve(r.RNG, base+diff, base, 1)
		if out.Win {
			wins++
		}
		return out.Net(), nil
	})
	if err != nil {
		return WagerReport{}, err
	}
	rep := WagerReport{Diff: diff, WinChance: wager.WinChance(base+diff, base), Net: stats}
	if trials > 0 {
		rep.WinRate = float64(wins) / float64(trials)
	}
	rep.Net.Samples = nil
	return rep, nil
}
