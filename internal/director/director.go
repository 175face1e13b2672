package director

import (
	"fmt"
	"slices"
)

// DirectingFunc computes the raw directive from the selected regions.
type DirectingFunc[R, I, D any] func(regions []R, image I) (D, error)

// Sorter reorders a region set. It must return a permutation of its input.
type Sorter[R any] func(regions []R) []R

// Config holds everything a Director needs. It is copied by New.
type Config[R, I, C, D any] struct {
	// Directing is called with the selected regions on a successful gate.
	Directing DirectingFunc[R, I, D]

	// FailureValue replaces the directing result when too few regions were
	// found. It still passes through the monitors.
	FailureValue D

	// TargetAmount is the minimum region count and the trim size.
	TargetAmount TargetAmount

	// Monitors are applied in order to every result.
	Monitors []Monitor[R, I, C, D]
}

// Director gates, selects and directs regions, then applies its monitors.
type Director[R, I, C, D any] struct {
	directing DirectingFunc[R, I, D]
	failure   D
	target    TargetAmount
	monitors  []Monitor[R, I, C, D]
}

// New validates cfg and returns a Director.
//
// Returns ErrInvalidConfiguration when cfg has no directing function or its
// target amount was not built with Exact, Unbounded, NewTargetAmount or
// ParseTargetAmount.
func New[R, I, C, D any](cfg Config[R, I, C, D]) (*Director[R, I, C, D], error) {
	if cfg.Directing == nil {
		return nil, fmt.Errorf("%w: directing function is required", ErrInvalidConfiguration)
	}
	if !cfg.TargetAmount.Valid() {
		return nil, fmt.Errorf("%w: target amount is not set", ErrInvalidConfiguration)
	}
	return &Director[R, I, C, D]{
		directing: cfg.Directing,
		failure:   cfg.FailureValue,
		target:    cfg.TargetAmount,
		monitors:  slices.Clone(cfg.Monitors),
	}, nil
}

// TargetAmount returns the configured target amount.
func (d *Director[R, I, C, D]) TargetAmount() TargetAmount { return d.target }

// FailureValue returns the value used when the gate fails.
func (d *Director[R, I, C, D]) FailureValue() D { return d.failure }

// Monitors returns a copy of the monitor chain.
func (d *Director[R, I, C, D]) Monitors() []Monitor[R, I, C, D] { return slices.Clone(d.monitors) }

// Direct returns the directive for regions found in image.
//
// If fewer regions than the target amount were found, the failure value is
// used and neither sorter nor directing function is called. Otherwise the
// regions are sorted (when sorter is non-nil), trimmed to the target amount
// and given to the directing function. The result, together with the regions
// that were directed, is then passed through the monitor chain.
//
// Errors from the directing function or a monitor are returned wrapped; the
// result is then the zero value of D.
func (d *Director[R, I, C, D]) Direct(regions []R, image I, camera C, sorter Sorter[R]) (D, error) {
	var result D
	if selected, ok := d.Select(regions, sorter); !ok {
		result = d.failure
	} else {
		regions = selected

		var err error
		result, err = d.directing(regions, image)
		if err != nil {
			var zero D
			return zero, fmt.Errorf("directing function: %w", err)
		}
	}

	out, err := d.ApplyChain(result, regions, image, camera)
	if err != nil {
		var zero D
		return zero, err
	}
	return out, nil
}

// Select applies the gate and, when it passes, sorts and trims regions the
// way Direct does. It reports false, with regions unchanged, when too few
// regions were found.
func (d *Director[R, I, C, D]) Select(regions []R, sorter Sorter[R]) ([]R, bool) {
	if !d.target.Satisfied(len(regions)) {
		return regions, false
	}
	if sorter != nil {
		regions = sorter(regions)
	}
	return trim(d.target, regions), true
}

// ApplyChain applies the director's monitors to result.
func (d *Director[R, I, C, D]) ApplyChain(result D, regions []R, image I, camera C) (D, error) {
	return ApplyChain(d.monitors, result, regions, image, camera)
}
