package progress

import (
	"errors"
	"slices"

	"github.com/xtding233/hoops-backend/internal/card"
)

var (
	ErrSetNotFound   = errors.New("collection set not found")
	ErrSetClaimed    = errors.New("collection set already claimed")
	ErrSetIncomplete = errors.New("collection set not complete")
)

// Criteria filters the inventory. Empty fields match anything.
type Criteria struct {
	Team   string       `json:"team,omitempty" yaml:"team,omitempty"`
	Set    card.Set     `json:"set,omitempty" yaml:"set,omitempty"`
	Rarity *card.Rarity `json:"rarity,omitempty" yaml:"rarity,omitempty"`
	Count  int          `json:"count" yaml:"count"`
}

func (c Criteria) Matches(cd card.Card) bool {
	if c.Team != "" && cd.Team != c.Team {
		return false
	}
	if c.Set != "" && cd.Set != c.Set {
		return false
	}
	if c.Rarity != nil && cd.Rarity != *c.Rarity {
		return false
	}
	return true
}

type SetDefinition struct {
	ID          string   `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Description string   `json:"description" yaml:"description"`
	Reward      int      `json:"reward" yaml:"reward"`
	Criteria    Criteria `json:"criteria" yaml:"criteria"`
}

func rarity(r card.Rarity) *card.Rarity { return &r }

var DefaultSets = []SetDefinition{
	{
		ID: "set_lakers", Name: "Lakers Dynasty",
		Description: "Collect 3 unique players from the L.A. Lakers.",
		Reward:      5000,
		Criteria:    Criteria{Team: "L.A. Lakers", Count: 3},
	},
	{
		ID: "set_rookies", Name: "Future Stars",
		Description: "Collect 5 unique cards from the Rookie set.",
		Reward:      15000,
		Criteria:    Criteria{Set: card.SetRookie, Count: 5},
	},
	{
		ID: "set_summer", Name: "Summer Heat",
		Description: "Collect 3 unique cards from the Summer set.",
		Reward:      25000,
		Criteria:    Criteria{Set: card.SetSummer, Count: 3},
	},
	{
		ID: "set_legends", Name: "Legendary Status",
		Description: "Collect 2 unique Legendary cards.",
		Reward:      50000,
		Criteria:    Criteria{Rarity: rarity(card.Legendary), Count: 2},
	},
	{
		ID: "set_halloween", Name: "Monster Squad",
		Description: "Collect 4 unique Halloween cards.",
		Reward:      30000,
		Criteria:    Criteria{Set: card.SetHalloween, Count: 4},
	},
	{
		ID: "set_starter", Name: "Starter Pack",
		Description: "Collect 10 Common cards.",
		Reward:      1000,
		Criteria:    Criteria{Rarity: rarity(card.Common), Count: 10},
	},
}

// SetProgress counts distinct player names in the inventory that match.
func SetProgress(def SetDefinition, inventory []card.Card) int {
	seen := make(map[string]struct{})
	for _, c := range inventory {
		if def.Criteria.Matches(c) {
			seen[c.Name] = struct{}{}
		}
	}
	return len(seen)
}

// SetStatus is a live view of one set against an inventory.
type SetStatus struct {
	SetDefinition
	Progress int  `json:"progress"`
	Complete bool `json:"isComplete"`
	Claimed  bool `json:"isClaimed"`
}

func SetStatuses(defs []SetDefinition, inventory []card.Card, claimed []string) []SetStatus {
	out := make([]SetStatus, 0, len(defs))
	for _, d := range defs {
		p := SetProgress(d, inventory)
		out = append(out, SetStatus{
			SetDefinition: d,
			Progress:      p,
			Complete:      p >= d.Criteria.Count,
			Claimed:       slices.Contains(claimed, d.ID),
		})
	}
	return out
}

// ClaimSet checks completion at claim time and returns the new claimed list.
func ClaimSet(defs []SetDefinition, inventory []card.Card, claimed []string, id string) ([]string, int, error) {
	idx := slices.IndexFunc(defs, func(d SetDefinition) bool { return d.ID == id })
	if idx < 0 {
		return claimed, 0, ErrSetNotFound
	}
	if slices.Contains(claimed, id) {
		return claimed, 0, ErrSetClaimed
	}
	def := defs[idx]
	if SetProgress(def, inventory) < def.Criteria.Count {
		return claimed, 0, ErrSetIncomplete
	}
	out := append(slices.Clone(claimed), id)
	return out, def.Reward, nil
}
