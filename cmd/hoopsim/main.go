package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/xtding233/hoops-backend/internal/card"
	"github.com/xtding233/hoops-backend/internal/config"
	"github.com/xtding233/hoops-backend/internal/gacha"
	"github.com/xtding233/hoops-backend/internal/pack"
	"github.com/xtding233/hoops-backend/internal/sim"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "packs":
		err = cmdPacks(os.Args[2:])
	case "wheel":
		err = cmdWheel(os.Args[2:])
	case "wager":
		err = cmdWager(os.Args[2:])
	case "plan":
		err = cmdPlan(os.Args[2:])
	default:
		printUsage()
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s failed: %v\n", os.Args[1], err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "usage: hoopsim <packs|wheel|wager|plan> [flags]")
}

type common struct {
	trials     *int
	seed       *uint64
	catalogDir *string
	profile    *string
}

func commonFlags(fs *flag.FlagSet) common {
	return common{
		trials:     fs.Int("trials", 100000, "number of trials"),
		seed:       fs.Uint64("seed", 1, "rng seed, 0 for crypto randomness"),
		catalogDir: fs.String("catalog", "", "catalog directory (catalog.yaml, profiles/)"),
		profile:    fs.String("profile", "", "catalog profile"),
	}
}

func (c common) runner() (*sim.Runner, error) {
	cat, err := config.NewLoader(*c.catalogDir).Load(*c.profile)
	if err != nil {
		return nil, err
	}
	var rng gacha.RandomSource
	if *c.seed != 0 {
		rng = gacha.NewSeededRNG(*c.seed)
	}
	return sim.NewRunner(cat, rng), nil
}

func cmdPacks(args []string) error {
	fs := flag.NewFlagSet("packs", flag.ContinueOnError)
	c := commonFlags(fs)
	only := fs.String("pack", "", "simulate a single pack id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	r, err := c.runner()
	if err != nil {
		return err
	}

	defs := r.Catalog.Packs
	if *only != "" {
		def, ok := pack.Find(defs, *only)
		if !ok {
			return fmt.Errorf("unknown pack %q", *only)
		}
		defs = []pack.Definition{def}
	}

	reps := make([]sim.PackReport, 0, len(defs))
	for _, def := range defs {
		rep, err := r.PackValue(def, *c.trials)
		if err != nil {
			return fmt.Errorf("%s: %w", def.ID, err)
		}
		reps = append(reps, rep)
	}
	writePacks(os.Stdout, reps)
	return nil
}

func writePacks(out io.Writer, reps []sim.PackReport) {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprint(tw, "pack\tprice\tmean\tp50\tp90\tp99\treturn\t")
	for _, r := range card.Rarities {
		fmt.Fprintf(tw, "%s\t", r)
	}
	fmt.Fprintln(tw, "forced\t")
	for _, rep := range reps {
		fmt.Fprintf(tw, "%s\t%d\t%.0f\t%.0f\t%.0f\t%.0f\t%.2f\t",
			rep.Pack.ID, rep.Pack.Price, rep.Value.Mean, rep.Value.P50, rep.Value.P90, rep.Value.P99, rep.ExpectedReturn())
		for _, r := range card.Rarities {
			fmt.Fprintf(tw, "%.2f%%\t", share(rep.Rarities[r], rep.Cards))
		}
		fmt.Fprintf(tw, "%d\t\n", rep.Forced)
	}
	_ = tw.Flush()
}

func cmdWheel(args []string) error {
	fs := flag.NewFlagSet("wheel", flag.ContinueOnError)
	c := commonFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	r, err := c.runner()
	if err != nil {
		return err
	}
	rep, err := r.WheelPayout(*c.trials)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "value\tauthored\tobserved\t")
	for i, seg := range r.Catalog.Wheel {
		fmt.Fprintf(tw, "%d\t%.2f%%\t%.2f%%\t\n", seg.Value, seg.Probability*100, rep.Frequency[i]*100)
	}
	_ = tw.Flush()
	fmt.Printf("mean payout %.1f (sd %.1f) over %d spins\n", rep.Payout.Mean, rep.Payout.StdDev, rep.Payout.Trials)
	return nil
}

func cmdWager(args []string) error {
	fs := flag.NewFlagSet("wager", flag.ContinueOnError)
	c := commonFlags(fs)
	maxDiff := fs.Int("max-diff", 20, "largest OVR difference to simulate, both ways")
	step := fs.Int("step", 5, "OVR step between rows")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *step <= 0 {
		return fmt.Errorf("step must be positive")
	}
	r, err := c.runner()
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "diff\tchance\tobserved\tnet/stake\t")
	for d := -*maxDiff; d <= *maxDiff; d += *step {
		rep, err := r.WagerWinRate(float64(d), *c.trials)
		if err != nil {
			return err
		}
		fmt.Fprintf(tw, "%+d\t%.2f\t%.4f\t%+.4f\t\n", d, rep.WinChance, rep.WinRate, rep.Net.Mean)
	}
	return tw.Flush()
}

// cmdPlan finds the pack mix that maximizes simulated resale value for a budget,
// or the cheapest mix that yields a number of cards.
func cmdPlan(args []string) error {
	fs := flag.NewFlagSet("plan", flag.ContinueOnError)
	c := commonFlags(fs)
	budget := fs.Int("budget", 0, "coins to spend for the most resale value")
	cards := fs.Int("cards", 0, "cards to pull for the fewest coins")
	if err := fs.Parse(args); err != nil {
		return err
	}
	r, err := c.runner()
	if err != nil {
		return err
	}

	var plan sim.Plan
	switch {
	case *budget > 0:
		means := make(map[string]int, len(r.Catalog.Packs))
		for _, def := range r.Catalog.Packs {
			rep, err := r.PackValue(def, *c.trials)
			if err != nil {
				return fmt.Errorf("%s: %w", def.ID, err)
			}
			means[def.ID] = int(rep.Value.Mean)
		}
		plan = sim.MaxValueUnder(r.Catalog.Packs, *budget, func(def pack.Definition) int { return means[def.ID] })
	case *cards > 0:
		plan = sim.MinCoinsFor(r.Catalog.Packs, *cards, sim.CardCount)
	default:
		return fmt.Errorf("one of -budget or -cards is required")
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "pack\tqty\tprice\tvalue\tsubtotal\t")
	for _, p := range plan.Purchases {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%d\t\n", p.PackID, p.Qty, p.UnitPrice, p.UnitValue, p.Subtotal)
	}
	fmt.Fprintf(tw, "total\t\t\t%d\t%d\t\n", plan.Value, plan.Coins)
	return tw.Flush()
}

func share(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(n) / float64(total) * 100
}
