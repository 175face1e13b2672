package director

import (
	"encoding/json"
	"fmt"
	"math"
	"slices"
	"strconv"
)

type targetKind uint8

const (
	targetInvalid targetKind = iota
	targetExact
	targetUnbounded
)

// TargetAmount is the minimum number of regions a Director needs before it
// calls its directing function, and the number of regions it passes on.
//
// A TargetAmount is either Exact(n) with n > 0 or Unbounded. Unbounded means
// there is no minimum and every region is used. The zero value is invalid and
// is rejected by New.
type TargetAmount struct {
	kind targetKind
	n    int
}

// Unbounded returns the target amount that accepts any number of regions and
// never trims.
func Unbounded() TargetAmount {
	return TargetAmount{kind: targetUnbounded}
}

// Exact returns a target amount of n regions. It panics if n is not positive;
// use NewTargetAmount for values that come from user input.
func Exact(n int) TargetAmount {
	if n <= 0 {
		panic(fmt.Sprintf("director: Exact target amount must be positive, got %d", n))
	}
	return TargetAmount{kind: targetExact, n: n}
}

// NewTargetAmount converts a configured integer into a TargetAmount.
// Zero means unbounded. Negative values are rejected.
func NewTargetAmount(n int) (TargetAmount, error) {
	switch {
	case n == 0:
		return Unbounded(), nil
	case n > 0:
		return TargetAmount{kind: targetExact, n: n}, nil
	default:
		return TargetAmount{}, fmt.Errorf("%w: target amount must not be negative, got %d", ErrInvalidConfiguration, n)
	}
}

// ParseTargetAmount converts a loosely typed configuration value into a
// TargetAmount. It accepts Go integer kinds and json.Number values holding an
// integer. Anything else, including floats with an integral value, strings
// and nil, fails with ErrInvalidConfiguration.
func ParseTargetAmount(v any) (TargetAmount, error) {
	var n int64
	switch t := v.(type) {
	case int:
		n = int64(t)
	case int8:
		n = int64(t)
	case int16:
		n = int64(t)
	case int32:
		n = int64(t)
	case int64:
		n = t
	case uint:
		if uint64(t) > math.MaxInt64 {
			return TargetAmount{}, fmt.Errorf("%w: target amount %d out of range", ErrInvalidConfiguration, t)
		}
		n = int64(t)
	case uint8:
		n = int64(t)
	case uint16:
		n = int64(t)
	case uint32:
		n = int64(t)
	case uint64:
		if t > math.MaxInt64 {
			return TargetAmount{}, fmt.Errorf("%w: target amount %d out of range", ErrInvalidConfiguration, t)
		}
		n = int64(t)
	case json.Number:
		parsed, err := strconv.ParseInt(t.String(), 10, 64)
		if err != nil {
			return TargetAmount{}, fmt.Errorf("%w: target amount must be an integer, got %q", ErrInvalidConfiguration, t.String())
		}
		n = parsed
	default:
		return TargetAmount{}, fmt.Errorf("%w: target amount must be an integer, got %v of type %T", ErrInvalidConfiguration, v, v)
	}
	if n > math.MaxInt32 {
		return TargetAmount{}, fmt.Errorf("%w: target amount %d out of range", ErrInvalidConfiguration, n)
	}
	return NewTargetAmount(int(n))
}

// IsUnbounded reports whether t has no minimum and no trimming.
func (t TargetAmount) IsUnbounded() bool { return t.kind == targetUnbounded }

// Valid reports whether t was built by one of the constructors.
func (t TargetAmount) Valid() bool { return t.kind != targetInvalid }

// Count returns n for Exact(n) and false for Unbounded.
func (t TargetAmount) Count() (int, bool) {
	if t.kind != targetExact {
		return 0, false
	}
	return t.n, true
}

// Satisfied reports whether found regions are enough to pass the gate.
func (t TargetAmount) Satisfied(found int) bool {
	switch t.kind {
	case targetUnbounded:
		return true
	case targetExact:
		return found >= t.n
	default:
		return false
	}
}

// String returns the number of regions or "unbounded".
func (t TargetAmount) String() string {
	switch t.kind {
	case targetUnbounded:
		return "unbounded"
	case targetExact:
		return strconv.Itoa(t.n)
	default:
		return "invalid"
	}
}

// trim returns the first n regions for Exact(n) and regions unchanged for
// Unbounded. The caller has already checked Satisfied. A trimmed slice has no
// spare capacity, so appending to it never writes into the caller's array.
func trim[R any](t TargetAmount, regions []R) []R {
	if n, ok := t.Count(); ok && len(regions) > n {
		return slices.Clip(regions[:n])
	}
	return regions
}
