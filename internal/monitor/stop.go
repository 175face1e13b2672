package monitor

import (
	"sync/atomic"

	"github.com/ironsheep/vision-director/internal/director"
)

// StopWhenClose replaces the directive with Stop once the largest region
// reaches Threshold, which for a forward-facing camera means the target is
// close. It is terminal on exactly those frames, so later monitors (a PID
// for instance) do not see the stop directive.
type StopWhenClose[R, I, C any] struct {
	Area      func(R) float64
	Threshold float64
	Stop      any

	terminal bool
}

func (s *StopWhenClose[R, I, C]) Priority() director.Priority {
	return director.PriorityOf(s.terminal)
}

func (s *StopWhenClose[R, I, C]) Monitor(result any, regions []R, _ I, _ C) (any, error) {
	s.terminal = false
	if s.Area == nil {
		return result, nil
	}
	largest := 0.0
	for _, r := range regions {
		if a := s.Area(r); a > largest {
			largest = a
		}
	}
	if largest >= s.Threshold && len(regions) > 0 {
		s.terminal = true
		return s.Stop, nil
	}
	return result, nil
}

// Stopper forces Stop while engaged and halts the chain. Released, it is a
// pass-through. Engage and Release may be called from any goroutine.
type Stopper[R, I, C any] struct {
	Stop any

	engaged atomic.Bool
}

func (s *Stopper[R, I, C]) Engage()       { s.engaged.Store(true) }
func (s *Stopper[R, I, C]) Release()      { s.engaged.Store(false) }
func (s *Stopper[R, I, C]) Engaged() bool { return s.engaged.Load() }

func (s *Stopper[R, I, C]) Priority() director.Priority {
	return director.PriorityOf(s.engaged.Load())
}

func (s *Stopper[R, I, C]) Monitor(result any, _ []R, _ I, _ C) (any, error) {
	if s.engaged.Load() {
		return s.Stop, nil
	}
	return result, nil
}
