package engine

import (
	"errors"

	"github.com/xtding233/hoops-backend/internal/lineup"
	"github.com/xtding233/hoops-backend/internal/market"
)

// Guard rejections. A call that returns one of these leaves the state as it was.
var (
	ErrInsufficientFunds = errors.New("not enough coins")
	ErrUnknownPack       = errors.New("unknown pack")
	ErrCardNotFound      = errors.New("card not found")
	ErrCardLocked        = errors.New("card is locked")
	ErrCardInLineup      = errors.New("card is in the lineup")
	ErrLineupIncomplete  = errors.New("lineup incomplete: need 5 starters and 8 bench")
	ErrInvalidStake      = errors.New("stake must be positive")
	ErrWheelCooldown     = errors.New("wheel is on cooldown")

	ErrBenchFull       = lineup.ErrBenchFull
	ErrUnknownSlot     = lineup.ErrUnknownSlot
	ErrBenchIndex      = lineup.ErrBenchIndex
	ErrListingNotFound = market.ErrListingNotFound
)
