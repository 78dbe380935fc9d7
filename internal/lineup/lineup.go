package lineup

import (
	"errors"
	"slices"
	"sort"

	"github.com/xtding233/hoops-backend/internal/card"
	"github.com/xtding233/hoops-backend/internal/wager"
)

// Slot names a lineup position.
type Slot string

const (
	PG    Slot = "PG"
	SG    Slot = "SG"
	SF    Slot = "SF"
	PF    Slot = "PF"
	C     Slot = "C"
	Bench Slot = "Bench"
)

// Starters in court order.
var Starters = []Slot{PG, SG, SF, PF, C}

// MaxBench caps the bench.
const MaxBench = 8

var (
	ErrBenchFull   = errors.New("bench is full")
	ErrUnknownSlot = errors.New("unknown lineup slot")
	ErrBenchIndex  = errors.New("bench index out of range")
)

// Lineup holds card ids. An empty string is an open starter slot.
type Lineup struct {
	PG    string   `json:"PG"`
	SG    string   `json:"SG"`
	SF    string   `json:"SF"`
	PF    string   `json:"PF"`
	C     string   `json:"C"`
	Bench []string `json:"Bench"`
}

func ParseSlot(s string) (Slot, error) {
	sl := Slot(s)
	if sl == Bench || slices.Contains(Starters, sl) {
		return sl, nil
	}
	return "", ErrUnknownSlot
}

func (l *Lineup) starter(s Slot) *string {
	switch s {
	case PG:
		return &l.PG
	case SG:
		return &l.SG
	case SF:
		return &l.SF
	case PF:
		return &l.PF
	case C:
		return &l.C
	}
	return nil
}

// Get returns the card id in a starter slot.
func (l Lineup) Get(s Slot) string {
	if p := l.starter(s); p != nil {
		return *p
	}
	return ""
}

// Clone copies the bench so the result shares nothing with l.
func (l Lineup) Clone() Lineup {
	out := l
	out.Bench = slices.Clone(l.Bench)
	if out.Bench == nil {
		out.Bench = []string{}
	}
	return out
}

// Equip puts id in slot, pulling it out of any other position first.
// Starter slots are overwritten; the bench appends.
func (l Lineup) Equip(slot Slot, id string) (Lineup, error) {
	if _, err := ParseSlot(string(slot)); err != nil {
		return l, err
	}
	out := l.Remove(id)
	if slot == Bench {
		if len(out.Bench) >= MaxBench {
			return l, ErrBenchFull
		}
		out.Bench = append(out.Bench, id)
		return out, nil
	}
	*out.starter(slot) = id
	return out, nil
}

// Unequip clears a starter slot, or the bench entry at benchIndex.
func (l Lineup) Unequip(slot Slot, benchIndex int) (Lineup, error) {
	out := l.Clone()
	if slot == Bench {
		if benchIndex < 0 || benchIndex >= len(out.Bench) {
			return l, ErrBenchIndex
		}
		out.Bench = slices.Delete(out.Bench, benchIndex, benchIndex+1)
		return out, nil
	}
	p := out.starter(slot)
	if p == nil {
		return l, ErrUnknownSlot
	}
	*p = ""
	return out, nil
}

// Remove drops id from every position.
func (l Lineup) Remove(id string) Lineup {
	out := l.Clone()
	for _, s := range Starters {
		if p := out.starter(s); *p == id {
			*p = ""
		}
	}
	out.Bench = slices.DeleteFunc(out.Bench, func(b string) bool { return b == id })
	return out
}

func (l Lineup) Contains(id string) bool {
	if id == "" {
		return false
	}
	return slices.Contains(l.IDs(), id)
}

// IDs lists starters in court order, then the bench. Open slots are skipped.
func (l Lineup) IDs() []string {
	ids := make([]string, 0, len(Starters)+len(l.Bench))
	for _, s := range Starters {
		if v := l.Get(s); v != "" {
			ids = append(ids, v)
		}
	}
	return append(ids, l.Bench...)
}

// IsComplete reports five starters and a full bench, the wager requirement.
func (l Lineup) IsComplete() bool {
	for _, s := range Starters {
		if l.Get(s) == "" {
			return false
		}
	}
	return len(l.Bench) == MaxBench
}

// Prune drops ids that are no longer in the inventory.
func (l Lineup) Prune(inventory []card.Card) Lineup {
	have := make(map[string]struct{}, len(inventory))
	for _, c := range inventory {
		have[c.ID] = struct{}{}
	}
	out := l.Clone()
	for _, s := range Starters {
		p := out.starter(s)
		if _, ok := have[*p]; !ok {
			*p = ""
		}
	}
	out.Bench = slices.DeleteFunc(out.Bench, func(id string) bool {
		_, ok := have[id]
		return !ok
	})
	return out
}

// TeamRating is the mean rating over every lineup id, rounded to one decimal.
// Ids missing from the inventory count as 0. An empty lineup rates 0.
func TeamRating(l Lineup, inventory []card.Card) float64 {
	ids := l.IDs()
	if len(ids) == 0 {
		return 0
	}
	byID := make(map[string]card.Card, len(inventory))
	for _, c := range inventory {
		byID[c.ID] = c
	}
	total := 0
	for _, id := range ids {
		total += byID[id].Rating
	}
	return wager.Round1(float64(total) / float64(len(ids)))
}

// AutoOptimize fills each starter slot with the best-rated card of that
// position, then the bench with the best of the rest.
func AutoOptimize(inventory []card.Card) Lineup {
	sorted := slices.Clone(inventory)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Rating > sorted[j].Rating })

	out := Lineup{Bench: []string{}}
	used := make(map[string]bool)
	for _, s := range Starters {
		for _, c := range sorted {
			if c.Position == string(s) && !used[c.ID] {
				*out.starter(s) = c.ID
				used[c.ID] = true
				break
			}
		}
	}
	for _, c := range sorted {
		if len(out.Bench) >= MaxBench {
			break
		}
		if !used[c.ID] {
			out.Bench = append(out.Bench, c.ID)
			used[c.ID] = true
		}
	}
	return out
}
