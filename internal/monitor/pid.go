package monitor

import (
	"math"
	"time"

	"github.com/ironsheep/vision-director/internal/director"
)

// PID runs a proportional-integral-derivative controller over numeric
// directives. The error term is result - Setpoint, so with a zero setpoint a
// positive offset produces a positive correction.
//
// The first sample after construction or Reset has no time step: it yields
// the proportional term only. Non-numeric results pass through and reset the
// controller, since they mean the target was lost.
type PID[R, I, C any] struct {
	director.UnimplementedMonitor[R, I, C, any]

	Kp, Ki, Kd float64
	Setpoint   float64

	// OutputMin and OutputMax bound the output and the integral term.
	// Both zero means unbounded.
	OutputMin, OutputMax float64

	// Now is the clock; nil uses time.Now.
	Now func() time.Time

	integral float64
	prevErr  float64
	last     time.Time
	primed   bool
}

// Monitor feeds result to the controller and returns its output.
func (p *PID[R, I, C]) Monitor(result any, _ []R, _ I, _ C) (any, error) {
	measured, ok := toFloat(result)
	if !ok {
		p.Reset()
		return result, nil
	}

	now := p.now()
	e := measured - p.Setpoint

	var derivative float64
	if p.primed {
		dt := now.Sub(p.last).Seconds()
		if dt > 0 {
			p.integral = p.limitIntegral(p.integral + e*dt)
			derivative = (e - p.prevErr) / dt
		}
	}

	p.prevErr = e
	p.last = now
	p.primed = true

	return p.limit(p.Kp*e + p.Ki*p.integral + p.Kd*derivative), nil
}

// Reset clears the integral and derivative history.
func (p *PID[R, I, C]) Reset() {
	p.integral = 0
	p.prevErr = 0
	p.last = time.Time{}
	p.primed = false
}

func (p *PID[R, I, C]) now() time.Time {
	if p.Now != nil {
		return p.Now()
	}
	return time.Now()
}

func (p *PID[R, I, C]) bounded() bool { return p.OutputMin != 0 || p.OutputMax != 0 }

func (p *PID[R, I, C]) limit(v float64) float64 {
	if !p.bounded() {
		return v
	}
	return math.Max(p.OutputMin, math.Min(p.OutputMax, v))
}

func (p *PID[R, I, C]) limitIntegral(v float64) float64 {
	if !p.bounded() || p.Ki == 0 {
		return v
	}
	lo, hi := p.OutputMin/p.Ki, p.OutputMax/p.Ki
	if lo > hi {
		lo, hi = hi, lo
	}
	return math.Max(lo, math.Min(hi, v))
}
