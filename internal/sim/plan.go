package sim

import (
	"sort"

	"github.com/xtding233/hoops-backend/internal/pack"
)

// Purchase is one line of a buying plan.
type Purchase struct {
	PackID    string `json:"packId"`
	Name      string `json:"name"`
	Qty       int    `json:"qty"`
	UnitPrice int    `json:"unitPrice"`
	UnitValue int    `json:"unitValue"`
	Subtotal  int    `json:"subtotal"`
}

// Plan is a multiset of pack purchases.
type Plan struct {
	Purchases []Purchase `json:"purchases"`
	Coins     int        `json:"coins"`
	Value     int        `json:"value"`
}

// ValueFunc scores one pack for planning, e.g. its card count or mean resale value.
type ValueFunc func(pack.Definition) int

// CardCount scores a pack by the cards it yields.
func CardCount(def pack.Definition) int { return def.CardCount }

type option struct {
	def   pack.Definition
	price int // in units of the price gcd
	value int
}

func options(packs []pack.Definition, value ValueFunc) ([]option, int) {
	g := 0
	for _, p := range packs {
		if p.Price > 0 && value(p) > 0 {
			g = gcd(g, p.Price)
		}
	}
	if g == 0 {
		return nil, 0
	}
	var out []option
	for _, p := range packs {
		if v := value(p); p.Price > 0 && v > 0 {
			out = append(out, option{def: p, price: p.Price / g, value: v})
		}
	}
	return out, g
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// MinCoinsFor finds the cheapest combination of packs worth at least target,
// allowing overshoot by up to one pack.
func MinCoinsFor(packs []pack.Definition, target int, value ValueFunc) Plan {
	opts, g := options(packs, value)
	if target <= 0 || len(opts) == 0 {
		return Plan{}
	}
	maxVal := 0
	for _, o := range opts {
		maxVal = max(maxVal, o.value)
	}
	limit := target + maxVal

	const inf = int(^uint(0) >> 1)
	dp := make([]int, limit+1) // min cost reaching exactly v
	pick := make([]int, limit+1)
	prev := make([]int, limit+1)
	for v := range dp {
		dp[v], pick[v], prev[v] = inf, -1, -1
	}
	dp[0] = 0

	for v := 0; v <= limit; v++ {
		if dp[v] == inf {
			continue
		}
		for i, o := range opts {
			nv := min(v+o.value, limit)
			if cost := dp[v] + o.price; cost < dp[nv] {
				dp[nv], pick[nv], prev[nv] = cost, i, v
			}
		}
	}

	best := target
	for v := target; v <= limit; v++ {
		if dp[v] < dp[best] {
			best = v
		}
	}
	counts := make([]int, len(opts))
	for v := best; v > 0 && pick[v] != -1; v = prev[v] {
		counts[pick[v]]++
	}
	return buildPlan(opts, counts, g)
}

// MaxValueUnder spends at most budget coins on the combination of packs with the
// highest total value.
func MaxValueUnder(packs []pack.Definition, budget int, value ValueFunc) Plan {
	opts, g := options(packs, value)
	if budget <= 0 || len(opts) == 0 {
		return Plan{}
	}
	units := budget / g

	dp := make([]int, units+1) // max value at cost exactly c
	pick := make([]int, units+1)
	for c := range pick {
		pick[c] = -1
	}
	for c := 0; c <= units; c++ {
		for i, o := range opts {
			nc := c + o.price
			if nc > units {
				continue
			}
			if v := dp[c] + o.value; v > dp[nc] {
				dp[nc], pick[nc] = v, i
			}
		}
	}

	best := 0
	for c := 0; c <= units; c++ {
		if dp[c] > dp[best] {
			best = c
		}
	}
	counts := make([]int, len(opts))
	for c := best; c > 0 && pick[c] != -1; c -= opts[pick[c]].price {
		counts[pick[c]]++
	}
	return buildPlan(opts, counts, g)
}

func buildPlan(opts []option, counts []int, g int) Plan {
	var plan Plan
	for i, qty := range counts {
		if qty == 0 {
			continue
		}
		o := opts[i]
		price := o.price * g
		plan.Purchases = append(plan.Purchases, Purchase{
			PackID:    o.def.ID,
			Name:      o.def.Name,
			Qty:       qty,
			UnitPrice: price,
			UnitValue: o.value,
			Subtotal:  price * qty,
		})
		plan.Coins += price * qty
		plan.Value += o.value * qty
	}
	sort.Slice(plan.Purchases, func(i, j int) bool { return plan.Purchases[i].PackID < plan.Purchases[j].PackID })
	return plan
}
