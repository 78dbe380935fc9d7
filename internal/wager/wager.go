package wager

import (
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/xtding233/hoops-backend/internal/gacha"
)

const (
	baseChance     = 0.50
	chancePerPoint = 0.03
	MinWinChance   = 0.05
	MaxWinChance   = 0.95

	// PayoutMultiplier is applied to the stake on a win.
	PayoutMultiplier = 2

	// MatchDuration is how long a simulated match takes before the result shows.
	MatchDuration = 2500 * time.Millisecond
)

// Outcome is the record of one resolved match.
type Outcome struct {
	Win           bool    `json:"win"`
	UserScore     int     `json:"userScore"`
	OpponentScore int     `json:"opponentScore"`
	Score         string  `json:"score"`
	Reward        int     `json:"reward"`
	WinChance     float64 `json:"winChance"`
	Stake         int     `json:"stake"`
	Opponent      string  `json:"opponent,omitempty"`
}

// Net is the coin change once the pre-debited stake is accounted for.
func (o Outcome) Net() int { return o.Reward - o.Stake }

// WinChance is 50% plus 3% per OVR point of advantage, capped so upsets stay
// possible either way.
func WinChance(userOvr, opponentOvr float64) float64 {
	diff := userOvr - opponentOvr
	return gacha.Clamp(baseChance+diff*chancePerPoint, MinWinChance, MaxWinChance)
}

// Resolve plays one match. Draw order: outcome, winner score, margin.
func Resolve(rng gacha.RandomSource, userOvr, opponentOvr float64, stake int) Outcome {
	if rng == nil {
		rng = gacha.DefaultRNG()
	}
	chance := WinChance(userOvr, opponentOvr)
	// chance is clamped inside (0,1), so Draw always consumes exactly one value.
	win, _ := gacha.Draw(chance, rng)

	reward := 0
	if win {
		reward = stake * PayoutMultiplier
	}

	winnerScore := int(math.Floor(100 + rng.Float64()*20))
	loserScore := int(math.Floor(float64(winnerScore) - (2 + rng.Float64()*15)))

	userScore, oppScore := loserScore, winnerScore
	if win {
		userScore, oppScore = winnerScore, loserScore
	}

	return Outcome{
		Win:           win,
		UserScore:     userScore,
		OpponentScore: oppScore,
		Score:         fmt.Sprintf("%d - %d", userScore, oppScore),
		Reward:        reward,
		WinChance:     chance,
		Stake:         stake,
	}
}

// Round1 rounds to one decimal place.
func Round1(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(1).Float64()
	return f
}
