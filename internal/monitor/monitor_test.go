package monitor

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/vision-director/internal/director"
)

type (
	region struct{ area float64 }
	frame  struct{}
	cam    struct{}
	chain  = []director.Monitor[region, frame, cam, any]
)

func run(t *testing.T, m director.Monitor[region, frame, cam, any], in any, regions ...region) any {
	t.Helper()
	out, err := m.Monitor(in, regions, frame{}, cam{})
	require.NoError(t, err)
	return out
}

// fakeClock advances by step on every call.
func fakeClock(step time.Duration) func() time.Time {
	now := time.Unix(1000, 0)
	return func() time.Time {
		now = now.Add(step)
		return now
	}
}

func TestPID_ProportionalOnly(t *testing.T) {
	pid := &PID[region, frame, cam]{Kp: 2}
	assert.InDelta(t, 1.0, run(t, pid, 0.5), 1e-9)
	assert.InDelta(t, -0.5, run(t, pid, -0.25), 1e-9)
	assert.False(t, pid.Priority().Terminal())
}

func TestPID_IntegralAndDerivative(t *testing.T) {
	pid := &PID[region, frame, cam]{Ki: 1, Kd: 1, Now: fakeClock(500 * time.Millisecond)}

	// First sample: no time step, so neither integral nor derivative.
	assert.InDelta(t, 0.0, run(t, pid, 1.0), 1e-9)
	// dt = 0.5: integral = 2*0.5 = 1, derivative = (2-1)/0.5 = 2
	assert.InDelta(t, 3.0, run(t, pid, 2.0), 1e-9)
}

func TestPID_OutputLimits(t *testing.T) {
	pid := &PID[region, frame, cam]{Kp: 10, OutputMin: -1, OutputMax: 1}
	assert.InDelta(t, 1.0, run(t, pid, 5), 1e-9)
	assert.InDelta(t, -1.0, run(t, pid, -5), 1e-9)
}

func TestPID_NonNumericResets(t *testing.T) {
	pid := &PID[region, frame, cam]{Ki: 1, Now: fakeClock(time.Second)}
	run(t, pid, 1.0)
	run(t, pid, 1.0)
	require.NotZero(t, pid.integral)

	assert.Equal(t, "stop", run(t, pid, "stop"))
	assert.Zero(t, pid.integral)
	assert.False(t, pid.primed)
}

func TestClamp(t *testing.T) {
	c := &Clamp[region, frame, cam]{Min: -1, Max: 1}
	assert.Equal(t, 1.0, run(t, c, 3))
	assert.Equal(t, -1.0, run(t, c, -3.5))
	assert.Equal(t, 0.25, run(t, c, 0.25))
	assert.Nil(t, run(t, c, nil))
}

func TestSmooth(t *testing.T) {
	s := &Smooth[region, frame, cam]{Alpha: 0.5}
	assert.InDelta(t, 1.0, run(t, s, 1.0), 1e-9)
	assert.InDelta(t, 2.0, run(t, s, 3.0), 1e-9)
	assert.InDelta(t, 1.5, run(t, s, 1.0), 1e-9)

	assert.Nil(t, run(t, s, nil))
	assert.InDelta(t, 7.0, run(t, s, 7), 1e-9, "average restarts after a dropout")
}

func TestHoldLast(t *testing.T) {
	h := &HoldLast[region, frame, cam]{Failure: nil, MaxFrames: 2}

	assert.Nil(t, run(t, h, nil), "nothing to hold yet")
	assert.Equal(t, 0.3, run(t, h, 0.3))
	assert.Equal(t, 0.3, run(t, h, nil))
	assert.Equal(t, 0.3, run(t, h, nil))
	assert.Nil(t, run(t, h, nil), "hold expires after MaxFrames")

	assert.Equal(t, 0.1, run(t, h, 0.1))
	assert.Equal(t, 0.1, run(t, h, nil), "a good frame restarts the hold window")

	h.Reset()
	assert.Nil(t, run(t, h, nil))
}

func TestStopWhenClose(t *testing.T) {
	s := &StopWhenClose[region, frame, cam]{
		Area:      func(r region) float64 { return r.area },
		Threshold: 100,
		Stop:      "stop",
	}
	after := &Clamp[region, frame, cam]{Min: -1, Max: 1}

	got, err := director.ApplyChain(chain{s, after}, 5.0, []region{{area: 10}}, frame{}, cam{})
	require.NoError(t, err)
	assert.Equal(t, 1.0, got, "far target continues down the chain")
	assert.False(t, s.Priority().Terminal())

	got, err = director.ApplyChain(chain{s, after}, 5.0, []region{{area: 10}, {area: 150}}, frame{}, cam{})
	require.NoError(t, err)
	assert.Equal(t, "stop", got)
	assert.True(t, s.Priority().Terminal())

	assert.Equal(t, 5.0, run(t, s, 5.0), "no regions never stops")
	assert.False(t, s.Priority().Terminal())
}

func TestStopper(t *testing.T) {
	s := &Stopper[region, frame, cam]{Stop: 0.0}
	after := &Clamp[region, frame, cam]{Min: 0.5, Max: 1}

	got, err := director.ApplyChain(chain{s, after}, 0.7, nil, frame{}, cam{})
	require.NoError(t, err)
	assert.Equal(t, 0.7, got)

	s.Engage()
	require.True(t, s.Engaged())
	got, err = director.ApplyChain(chain{s, after}, 0.7, nil, frame{}, cam{})
	require.NoError(t, err)
	assert.Equal(t, 0.0, got, "engaged stopper halts before the clamp")

	s.Release()
	assert.False(t, s.Priority().Terminal())
}

func TestResetAll(t *testing.T) {
	smooth := &Smooth[region, frame, cam]{Alpha: 0.5}
	hold := &HoldLast[region, frame, cam]{MaxFrames: 1}
	run(t, smooth, 1.0)
	run(t, hold, 1.0)

	ResetAll(chain{smooth, hold, &Clamp[region, frame, cam]{Max: 1}})

	assert.False(t, smooth.primed)
	assert.False(t, hold.hasLast)
}
