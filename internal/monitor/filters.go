package monitor

import (
	"math"

	"github.com/ironsheep/vision-director/internal/director"
)

// Clamp limits numeric directives to [Min, Max].
type Clamp[R, I, C any] struct {
	director.UnimplementedMonitor[R, I, C, any]
	Min, Max float64
}

func (c *Clamp[R, I, C]) Monitor(result any, _ []R, _ I, _ C) (any, error) {
	v, ok := toFloat(result)
	if !ok {
		return result, nil
	}
	return math.Max(c.Min, math.Min(c.Max, v)), nil
}

// Smooth applies an exponential moving average to numeric directives.
// Alpha is the weight of the newest sample (0 < Alpha <= 1). A non-numeric
// result passes through and restarts the average.
type Smooth[R, I, C any] struct {
	director.UnimplementedMonitor[R, I, C, any]
	Alpha float64

	value  float64
	primed bool
}

func (s *Smooth[R, I, C]) Monitor(result any, _ []R, _ I, _ C) (any, error) {
	v, ok := toFloat(result)
	if !ok {
		s.Reset()
		return result, nil
	}
	if !s.primed {
		s.value, s.primed = v, true
		return v, nil
	}
	s.value += s.Alpha * (v - s.value)
	return s.value, nil
}

// Reset forgets the running average.
func (s *Smooth[R, I, C]) Reset() {
	s.value, s.primed = 0, false
}

// HoldLast bridges short detection dropouts: when the result equals Failure
// it returns the last good result instead, for at most MaxFrames consecutive
// frames. After that, or before any good result was seen, Failure passes
// through.
type HoldLast[R, I, C any] struct {
	director.UnimplementedMonitor[R, I, C, any]
	Failure   any
	MaxFrames int

	last    any
	hasLast bool
	held    int
}

func (h *HoldLast[R, I, C]) Monitor(result any, _ []R, _ I, _ C) (any, error) {
	if !sameValue(result, h.Failure) {
		h.last, h.hasLast, h.held = result, true, 0
		return result, nil
	}
	if h.hasLast && h.held < h.MaxFrames {
		h.held++
		return h.last, nil
	}
	return result, nil
}

// Reset forgets the last good result.
func (h *HoldLast[R, I, C]) Reset() {
	h.last, h.hasLast, h.held = nil, false, 0
}
