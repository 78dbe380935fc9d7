package card

import (
	"encoding/json"
	"math"

	"github.com/xtding233/hoops-backend/internal/gacha"
)

// MaxRating caps ratings and stats.
const MaxRating = 99

// Stats is the per-card stat block, each 0..99.
type Stats struct {
	Offense   int `json:"offense"`
	Defense   int `json:"defense"`
	Potential int `json:"potential"`
}

// Card is a minted player card. Only Locked changes after creation, plus the
// auction markup/resale price transforms.
type Card struct {
	ID          string `json:"id"`
	ExternalID  string `json:"nbaId,omitempty"`
	Name        string `json:"name"`
	Team        string `json:"team"`
	Position    string `json:"position"`
	Rarity      Rarity `json:"rarity"`
	Set         Set    `json:"set"`
	Rating      int    `json:"rating"`
	Price       int    `json:"price"`
	ImageSeed   int    `json:"imageSeed"`
	AIGenerated bool   `json:"isAiGenerated,omitempty"`
	Locked      bool   `json:"isLocked"`
	Lore        string `json:"description,omitempty"`
	Stats       Stats  `json:"stats"`
}

// RoundStat rounds a raw number to the nearest whole rating in 0..99.
func RoundStat(v float64) int {
	return gacha.Clamp(int(math.Round(v)), 0, MaxRating)
}

// UnmarshalJSON accepts fractional stats, which scouted cards in older saves carry.
func (s *Stats) UnmarshalJSON(b []byte) error {
	var raw struct {
		Offense   float64 `json:"offense"`
		Defense   float64 `json:"defense"`
		Potential float64 `json:"potential"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*s = Stats{
		Offense:   RoundStat(raw.Offense),
		Defense:   RoundStat(raw.Defense),
		Potential: RoundStat(raw.Potential),
	}
	return nil
}

// UnmarshalJSON accepts a fractional rating and rounds it like the stats.
func (c *Card) UnmarshalJSON(b []byte) error {
	type plain Card
	aux := struct {
		*plain
		Rating float64 `json:"rating"`
	}{plain: (*plain)(c), Rating: float64(c.Rating)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	c.Rating = RoundStat(aux.Rating)
	return nil
}

// PriceFor is floor(rating * multiplier * factor), never negative.
func PriceFor(rating int, r Rarity, factor float64) int {
	p := int(math.Floor(float64(rating) * float64(r.Multiplier()) * factor))
	if p < 0 {
		return 0
	}
	return p
}

// AutoLocked reports whether a rarity is locked on mint.
func AutoLocked(r Rarity) bool { return r >= Legendary }

// ImageSeed hashes a name into a stable non-negative seed (32-bit wrapping
// h*31 + c over UTF-16 code units).
func ImageSeed(name string) int {
	var h int32
	for _, c := range utf16Units(name) {
		h = int32(c) + ((h << 5) - h)
	}
	v := int64(h)
	if v < 0 {
		v = -v
	}
	return int(v)
}

func utf16Units(s string) []uint16 {
	out := make([]uint16, 0, len(s))
	for _, r := range s {
		if r >= 0x10000 {
			r -= 0x10000
			out = append(out, uint16(0xD800+(r>>10)), uint16(0xDC00+(r&0x3FF)))
			continue
		}
		out = append(out, uint16(r))
	}
	return out
}
