package card

import (
	"errors"
	"fmt"
	"strings"
)

// Rarity is ordered: COMMON < RARE < EPIC < LEGENDARY < GOAT.
type Rarity int

const (
	Common Rarity = iota
	Rare
	Epic
	Legendary
	Goat
)

// Rarities lists every rarity in enum order.
var Rarities = []Rarity{Common, Rare, Epic, Legendary, Goat}

var ErrUnknownRarity = errors.New("unknown rarity")

var rarityNames = [...]string{"COMMON", "RARE", "EPIC", "LEGENDARY", "GOAT"}

// price multiplier per rarity
var rarityMultipliers = [...]int{1, 5, 20, 100, 500}

func (r Rarity) Valid() bool { return r >= Common && r <= Goat }

func (r Rarity) String() string {
	if !r.Valid() {
		return fmt.Sprintf("Rarity(%d)", int(r))
	}
	return rarityNames[r]
}

// Multiplier is the price multiplier applied on top of the rating.
func (r Rarity) Multiplier() int {
	if !r.Valid() {
		return 1
	}
	return rarityMultipliers[r]
}

// AtLeast reports whether r is ranked at or above min.
func (r Rarity) AtLeast(min Rarity) bool { return r >= min }

// ParseRarity accepts the upper-case names, case-insensitively.
func ParseRarity(s string) (Rarity, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for i, name := range rarityNames {
		if name == s {
			return Rarity(i), nil
		}
	}
	return Common, fmt.Errorf("%w: %q", ErrUnknownRarity, s)
}

func (r Rarity) MarshalText() ([]byte, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownRarity, int(r))
	}
	return []byte(rarityNames[r]), nil
}

func (r *Rarity) UnmarshalText(b []byte) error {
	v, err := ParseRarity(string(b))
	if err != nil {
		return err
	}
	*r = v
	return nil
}

// RarityForRating maps a rating onto its rarity floor.
func RarityForRating(rating int) Rarity {
	rarity := Common
	if rating >= 80 {
		rarity = Rare
	}
	if rating >= 88 {
		rarity = Epic
	}
	if rating >= 94 {
		rarity = Legendary
	}
	if rating >= 98 {
		rarity = Goat
	}
	return rarity
}
