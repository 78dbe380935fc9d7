package wheel

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/xtding233/hoops-backend/internal/gacha"
)

const (
	// FullSpins is the number of whole turns before the wheel settles.
	FullSpins = 10
	// SpinDuration is how long callers should animate the rotation.
	SpinDuration = 3 * time.Second
	// Cooldown between two spins.
	Cooldown = time.Hour

	fullTurn = 360.0
	epsilon  = 1e-9
)

var (
	ErrNoSegments = errors.New("wheel has no segments")
	ErrSpanTotal  = errors.New("segment spans must total 360 degrees")
	ErrProbTotal  = errors.New("segment probabilities must total 1")
)

// Segment is one prize slice of the wheel.
type Segment struct {
	Value       int     `json:"value" yaml:"value"`
	Color       string  `json:"color" yaml:"color"`
	Probability float64 `json:"probability" yaml:"probability"`
	Span        float64 `json:"span" yaml:"span"`
}

var DefaultSegments = []Segment{
	{Value: 500, Color: "#64748b", Probability: 0.30, Span: 68},
	{Value: 1000, Color: "#10b981", Probability: 0.25, Span: 68},
	{Value: 2000, Color: "#3b82f6", Probability: 0.20, Span: 68},
	{Value: 3000, Color: "#8b5cf6", Probability: 0.15, Span: 68},
	{Value: 5000, Color: "#f97316", Probability: 0.08, Span: 68},
	{Value: 20000, Color: "#eab308", Probability: 0.02, Span: 20},
}

// Slice is a segment's position on the dial, in degrees clockwise from 12 o'clock.
type Slice struct {
	Segment
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Mid   float64 `json:"mid"`
}

// Layout lays the segments out back to back in table order.
func Layout(segments []Segment) []Slice {
	out := make([]Slice, 0, len(segments))
	start := 0.0
	for _, s := range segments {
		end := start + s.Span
		out = append(out, Slice{Segment: s, Start: start, End: end, Mid: start + s.Span/2})
		start = end
	}
	return out
}

// TargetRotation brings the midpoint of the slice at idx under the top pointer
// after FullSpins whole turns.
func TargetRotation(segments []Segment, idx int) float64 {
	slices := Layout(segments)
	if idx < 0 || idx >= len(slices) {
		return FullSpins * fullTurn
	}
	return FullSpins*fullTurn + (fullTurn - slices[idx].Mid)
}

// Validate returns every problem with the segment table joined together.
func Validate(segments []Segment) error {
	if len(segments) == 0 {
		return ErrNoSegments
	}
	var errs []error
	spans, probs := 0.0, 0.0
	for i, s := range segments {
		if s.Value < 0 {
			errs = append(errs, fmt.Errorf("segment %d: negative value %d", i, s.Value))
		}
		if s.Span <= 0 {
			errs = append(errs, fmt.Errorf("segment %d: span must be > 0", i))
		}
		if err := gacha.ValidateProb(s.Probability); err != nil {
			errs = append(errs, fmt.Errorf("segment %d: %w", i, err))
		}
		spans += s.Span
		probs += s.Probability
	}
	if math.Abs(spans-fullTurn) > epsilon {
		errs = append(errs, fmt.Errorf("%w: got %.3f", ErrSpanTotal, spans))
	}
	if math.Abs(probs-1) > epsilon {
		errs = append(errs, fmt.Errorf("%w: got %.6f", ErrProbTotal, probs))
	}
	return errors.Join(errs...)
}

// Result is a spin outcome.
type Result struct {
	Segment  Segment `json:"segment"`
	Index    int     `json:"index"`
	Rotation float64 `json:"rotation"`
}

// Wheel picks prize segments.
type Wheel struct {
	Segments []Segment
	RNG      gacha.RandomSource
}

func New(segments []Segment, rng gacha.RandomSource) *Wheel {
	if len(segments) == 0 {
		segments = DefaultSegments
	}
	if rng == nil {
		rng = gacha.DefaultRNG()
	}
	return &Wheel{Segments: segments, RNG: rng}
}

// Spin walks the cumulative probabilities with one draw. A draw past the total
// lands on the first segment.
func (w *Wheel) Spin() Result {
	weights := make([]float64, len(w.Segments))
	for i, s := range w.Segments {
		weights[i] = s.Probability
	}
	idx, ok := gacha.PickCumulative(weights, w.RNG.Float64())
	if !ok {
		idx = 0
	}
	return Result{
		Segment:  w.Segments[idx],
		Index:    idx,
		Rotation: TargetRotation(w.Segments, idx),
	}
}
