package director

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type intMonitor = Monitor[int, frame, camera, int]

// countingMonitor applies op and counts how often it ran.
type countingMonitor struct {
	op       func(int) int
	priority Priority
	calls    int
}

func (m *countingMonitor) Priority() Priority { return m.priority }

func (m *countingMonitor) Monitor(result int, _ []int, _ frame, _ camera) (int, error) {
	m.calls++
	return m.op(result), nil
}

func plusOne(n int) int { return n + 1 }
func double(n int) int  { return n * 2 }

func TestApplyChain_AllNonTerminal(t *testing.T) {
	inc := &countingMonitor{op: plusOne}
	dbl := &countingMonitor{op: double}

	got, err := ApplyChain([]intMonitor{inc, dbl}, 3, nil, frame{}, camera{})

	require.NoError(t, err)
	assert.Equal(t, 8, got)
	assert.Equal(t, 1, inc.calls)
	assert.Equal(t, 1, dbl.calls)
}

func TestApplyChain_TerminalStops(t *testing.T) {
	tests := []struct {
		name     string
		priority Priority
		want     int
	}{
		{"boolean terminal", Terminal, 4},
		{"numeric terminal", Priority(0.5), 4},
		{"negative numeric terminal", Priority(-3), 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			first := &countingMonitor{op: plusOne}
			stop := &countingMonitor{op: plusOne, priority: tt.priority}
			after := &countingMonitor{op: double}

			got, err := ApplyChain([]intMonitor{first, stop, after}, 2, nil, frame{}, camera{})

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, 1, stop.calls)
			assert.Zero(t, after.calls, "monitors after a terminal monitor must not run")
		})
	}
}

func TestApplyChain_Empty(t *testing.T) {
	got, err := ApplyChain[int, frame, camera, int](nil, 42, nil, frame{}, camera{})
	require.NoError(t, err)
	assert.Equal(t, 42, got)

	got, err = ApplyChain([]intMonitor{}, 7, nil, frame{}, camera{})
	require.NoError(t, err)
	assert.Equal(t, 7, got)
}

// flippingMonitor becomes terminal after it has seen a threshold, which
// shows that priority is read after the call.
type flippingMonitor struct {
	threshold int
	terminal  bool
}

func (m *flippingMonitor) Priority() Priority { return PriorityOf(m.terminal) }

func (m *flippingMonitor) Monitor(result int, _ []int, _ frame, _ camera) (int, error) {
	m.terminal = result >= m.threshold
	return result, nil
}

func TestApplyChain_PriorityReadAfterCall(t *testing.T) {
	flip := &flippingMonitor{threshold: 10}
	after := &countingMonitor{op: double}
	chain := []intMonitor{flip, after}

	got, err := ApplyChain(chain, 3, nil, frame{}, camera{})
	require.NoError(t, err)
	assert.Equal(t, 6, got)

	got, err = ApplyChain(chain, 12, nil, frame{}, camera{})
	require.NoError(t, err)
	assert.Equal(t, 12, got)
	assert.Equal(t, 1, after.calls)
}

type bareMonitor struct {
	UnimplementedMonitor[int, frame, camera, int]
}

func TestUnimplementedMonitor(t *testing.T) {
	var m bareMonitor
	assert.False(t, m.Priority().Terminal())

	after := &countingMonitor{op: plusOne}
	_, err := ApplyChain([]intMonitor{m, after}, 1, nil, frame{}, camera{})

	require.ErrorIs(t, err, ErrNotImplemented)
	assert.Zero(t, after.calls)
}

func TestMonitorFunc_NilFn(t *testing.T) {
	_, err := MonitorFunc[int, frame, camera, int]{}.Monitor(1, nil, frame{}, camera{})
	assert.ErrorIs(t, err, ErrNotImplemented)
}

func TestDirector_ApplyChainMatchesFreeFunction(t *testing.T) {
	d, err := New(Config[int, frame, camera, int]{
		Directing:    func([]int, frame) (int, error) { return 3, nil },
		TargetAmount: Unbounded(),
		Monitors:     []intMonitor{&countingMonitor{op: plusOne}, &countingMonitor{op: double}},
	})
	require.NoError(t, err)

	got, err := d.Direct([]int{1}, frame{}, camera{}, nil)
	require.NoError(t, err)
	assert.Equal(t, 8, got)
}
