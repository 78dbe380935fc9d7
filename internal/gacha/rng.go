package gacha

import (
	cryptoRand "crypto/rand"
	"encoding/binary"
	"math"
	"math/rand/v2"
	"sync"
)

// RandomSource abstract
type RandomSource interface {
	Float64() float64 // [0, 1)
}

// crypto random : default generation method
type cryptoRNG struct{}

func (cryptoRNG) Float64() float64 {
	// Read 53bit random => [0, 1)
	var buf [8]byte
	if _, err := cryptoRand.Read(buf[:]); err != nil {
		// back to math/rand/v2
		return rand.Float64()
	}

	u := binary.BigEndian.Uint64(buf[:]) >> 11 // 53 bits
	return float64(u) / (1 << 53)
}

func DefaultRNG() RandomSource { return cryptoRNG{} }

// Replicable RNG (e.g. Monte Carlo, tests)
type seededRNG struct {
	mu sync.Mutex
	r  *rand.Rand
}

func NewSeededRNG(seed uint64) RandomSource {
	return &seededRNG{r: rand.New(rand.NewPCG(seed, 0))}
}

func (s *seededRNG) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.Float64()
}

// scriptedRNG replays a fixed list of draws, cycling when exhausted.
type scriptedRNG struct {
	mu     sync.Mutex
	values []float64
	next   int
}

// NewScriptedRNG returns a source that yields values in order and then starts over.
// Values are clamped into [0, 1).
func NewScriptedRNG(values ...float64) RandomSource {
	if len(values) == 0 {
		values = []float64{0}
	}
	vs := make([]float64, len(values))
	for i, v := range values {
		if v < 0 {
			v = 0
		}
		if v >= 1 {
			v = math.Nextafter(1, 0)
		}
		vs[i] = v
	}
	return &scriptedRNG{values: vs}
}

func (s *scriptedRNG) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := s.values[s.next%len(s.values)]
	s.next++
	return v
}

// Uniform returns a draw in [lo, hi).
func Uniform(rng RandomSource, lo, hi float64) float64 {
	if rng == nil {
		rng = DefaultRNG()
	}
	return lo + rng.Float64()*(hi-lo)
}

// IntN returns floor(u*n), i.e. an index in [0, n). n <= 0 yields 0.
func IntN(rng RandomSource, n int) int {
	if n <= 0 {
		return 0
	}
	if rng == nil {
		rng = DefaultRNG()
	}
	i := int(math.Floor(rng.Float64() * float64(n)))
	if i >= n {
		i = n - 1
	}
	return i
}

// Shuffle performs a Fisher-Yates shuffle of n elements through swap.
func Shuffle(rng RandomSource, n int, swap func(i, j int)) {
	for i := n - 1; i > 0; i-- {
		j := IntN(rng, i+1)
		swap(i, j)
	}
}
