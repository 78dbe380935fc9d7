package gacha

import "errors"

var ErrInvalidProb = errors.New("invalid probability p; must be 0..1")

// Draw under p, return if it is hit
// p <=0 => no hit. p>= 1 => must hit. otherwise, rng.Float64() < p
func Draw(p float64, rng RandomSource) (bool, error) {
	if err := ValidateProb(p); err != nil {
		return false, err
	}
	if p <= 0 {
		return false, nil
	}
	if p >= 1 {
		return true, nil
	}
	if rng == nil {
		rng = DefaultRNG()
	}
	return rng.Float64() < p, nil
}

// PickCumulative walks weights in order, accumulating mass, and returns the first
// index whose cumulative mass exceeds u. ok is false when u lands past the total.
func PickCumulative(weights []float64, u float64) (idx int, ok bool) {
	cumulative := 0.0
	for i, w := range weights {
		cumulative += w
		if u < cumulative {
			return i, true
		}
	}
	return -1, false
}
