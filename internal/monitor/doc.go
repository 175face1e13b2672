// Package monitor provides ready-made director monitors.
//
// Every monitor here implements director.Monitor for any region, image and
// camera type, with results of type any. Numeric monitors (PID, Clamp, Smooth)
// act on int and float results and let anything else through unchanged, so a
// pipeline can mix a numeric steering value with a symbolic failure value
// such as "stop" or nil.
//
// Monitors keep state between frames and are not safe for concurrent use.
// Call Reset, where provided, when the tracked target changes.
package monitor

import (
	"reflect"

	"github.com/ironsheep/vision-director/internal/director"
)

// Resetter is implemented by monitors with per-target state.
type Resetter interface {
	Reset()
}

// toFloat converts numeric directives to float64.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	default:
		return 0, false
	}
}

// sameValue compares directives, including non-comparable ones.
func sameValue(a, b any) bool {
	return reflect.DeepEqual(a, b)
}

// ResetAll resets every monitor in chain that implements Resetter.
func ResetAll[R, I, C any](chain []director.Monitor[R, I, C, any]) {
	for _, m := range chain {
		if r, ok := m.(Resetter); ok {
			r.Reset()
		}
	}
}
