package director

import "errors"

var (
	// ErrInvalidConfiguration is returned when a Director or TargetAmount is
	// built from values it cannot accept.
	ErrInvalidConfiguration = errors.New("invalid director configuration")

	// ErrNotImplemented is returned by monitors that do not provide a Monitor
	// implementation of their own.
	ErrNotImplemented = errors.New("monitor not implemented")
)
