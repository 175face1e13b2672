package director

import "fmt"

// Priority tells the chain whether a monitor is terminal. Zero is
// non-terminal; any other value is terminal. Monitors that rank themselves
// numerically may return any non-zero value.
type Priority float64

const (
	NonTerminal Priority = 0
	Terminal    Priority = 1
)

// PriorityOf maps a boolean terminal flag to a Priority.
func PriorityOf(terminal bool) Priority {
	if terminal {
		return Terminal
	}
	return NonTerminal
}

// Terminal reports whether the chain must stop after this monitor ran.
func (p Priority) Terminal() bool { return p != 0 }

// Monitor post-processes a directing result.
//
// Monitor is called with the current result, the regions that were given to
// the directing function, the image and the camera context, and returns the
// new result. Priority is read after Monitor returns; a terminal priority
// stops the chain. Monitors may keep state between calls.
type Monitor[R, I, C, D any] interface {
	Priority() Priority
	Monitor(result D, regions []R, image I, camera C) (D, error)
}

// UnimplementedMonitor provides the default Monitor behaviour: a
// non-terminal priority and a Monitor method that fails with
// ErrNotImplemented. Embed it and override Monitor.
type UnimplementedMonitor[R, I, C, D any] struct{}

func (UnimplementedMonitor[R, I, C, D]) Priority() Priority { return NonTerminal }

func (UnimplementedMonitor[R, I, C, D]) Monitor(result D, _ []R, _ I, _ C) (D, error) {
	return result, ErrNotImplemented
}

// MonitorFunc adapts a function to the Monitor interface.
type MonitorFunc[R, I, C, D any] struct {
	Fn    func(result D, regions []R, image I, camera C) (D, error)
	Level Priority
}

func (m MonitorFunc[R, I, C, D]) Priority() Priority { return m.Level }

func (m MonitorFunc[R, I, C, D]) Monitor(result D, regions []R, image I, camera C) (D, error) {
	if m.Fn == nil {
		return result, ErrNotImplemented
	}
	return m.Fn(result, regions, image, camera)
}

// ApplyChain runs monitors over result in order. It stops after the first
// monitor reporting a terminal priority and returns the result current at
// that point. With no monitors, result is returned unchanged.
func ApplyChain[R, I, C, D any](monitors []Monitor[R, I, C, D], result D, regions []R, image I, camera C) (D, error) {
	for i, m := range monitors {
		next, err := m.Monitor(result, regions, image, camera)
		if err != nil {
			return result, fmt.Errorf("monitor %d (%T): %w", i, m, err)
		}
		result = next
		if m.Priority().Terminal() {
			return result, nil
		}
	}
	return result, nil
}
