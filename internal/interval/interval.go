// Package interval implements closed real intervals with the arithmetic the
// box state domain needs for score bounds and posterior bounds: addition,
// subtraction, scalar multiplication, monotone division by an interval that
// excludes zero, min/max, join, and the comparisons bestSplit and summary are
// built on.
package interval

import (
	"fmt"
	"math"
)

// Interval is a closed interval [Lo, Hi] of real numbers. A zero-value
// Interval is the degenerate point [0, 0]; use Empty for the ⊥ value.
type Interval struct {
	Lo, Hi float64
}

// Point returns the degenerate interval [v, v].
func Point(v float64) Interval { return Interval{Lo: v, Hi: v} }

// New returns [lo, hi]. It panics if lo > hi: callers construct intervals
// from known-ordered bounds, never from untrusted input.
func New(lo, hi float64) Interval {
	if lo > hi {
		panic(fmt.Sprintf("interval: lo %v > hi %v", lo, hi))
	}
	return Interval{Lo: lo, Hi: hi}
}

// Empty is the bottom element: the interval containing no reals.
var Empty = Interval{Lo: math.Inf(1), Hi: math.Inf(-1)}

// IsEmpty reports whether i is the bottom interval.
func (i Interval) IsEmpty() bool { return i.Lo > i.Hi }

// Add returns the interval of sums a+b for a in i, b in j.
func (i Interval) Add(j Interval) Interval {
	if i.IsEmpty() || j.IsEmpty() {
		return Empty
	}
	return Interval{Lo: i.Lo + j.Lo, Hi: i.Hi + j.Hi}
}

// Sub returns the interval of differences a-b for a in i, b in j.
func (i Interval) Sub(j Interval) Interval {
	if i.IsEmpty() || j.IsEmpty() {
		return Empty
	}
	return Interval{Lo: i.Lo - j.Hi, Hi: i.Hi - j.Lo}
}

// ScaleNonNeg multiplies every bound by a non-negative scalar. The sign is
// fixed because every caller in this domain scales by a count or a budget.
func (i Interval) ScaleNonNeg(k float64) Interval {
	if i.IsEmpty() || k < 0 {
		return Empty
	}
	return Interval{Lo: i.Lo * k, Hi: i.Hi * k}
}

// ErrDivisionByZeroInterval is returned by DivPositive when the denominator
// interval contains zero, matching spec's NumericError: division by an
// interval containing zero fails where a closed-form guard is impossible.
var ErrDivisionByZeroInterval = fmt.Errorf("interval: division by an interval containing zero")

// DivPositive computes monotone interval division assuming the denominator
// is known to be strictly positive (the only division this domain performs:
// count / total, where total is always bounded away from a degenerate zero
// once callers have checked ContainsZero). It returns
// ErrDivisionByZeroInterval if j contains zero.
func (i Interval) DivPositive(j Interval) (Interval, error) {
	if j.ContainsZero() {
		return Empty, ErrDivisionByZeroInterval
	}
	if i.IsEmpty() || j.IsEmpty() {
		return Empty, nil
	}
	// Monotone division: lower bound uses numerator-min over denominator-max,
	// upper bound uses numerator-max over denominator-min.
	candidates := []float64{i.Lo / j.Lo, i.Lo / j.Hi, i.Hi / j.Lo, i.Hi / j.Hi}
	lo, hi := candidates[0], candidates[0]
	for _, c := range candidates[1:] {
		lo = math.Min(lo, c)
		hi = math.Max(hi, c)
	}
	return Interval{Lo: lo, Hi: hi}, nil
}

// MulNonNeg multiplies two intervals known to be subsets of [0, +inf): the
// bound-to-bound product [loA*loB, hiA*hiB] is valid because multiplication
// is monotone nondecreasing in each argument when both are non-negative.
// Only used for probability-like quantities derived from counts/totals.
func (i Interval) MulNonNeg(j Interval) Interval {
	if i.IsEmpty() || j.IsEmpty() {
		return Empty
	}
	return Interval{Lo: i.Lo * j.Lo, Hi: i.Hi * j.Hi}
}

// SquareNonNeg squares a non-negative interval.
func (i Interval) SquareNonNeg() Interval {
	return i.MulNonNeg(i)
}

// Min returns the pointwise minimum interval.
func Min(a, b Interval) Interval {
	if a.IsEmpty() || b.IsEmpty() {
		return Empty
	}
	return Interval{Lo: math.Min(a.Lo, b.Lo), Hi: math.Min(a.Hi, b.Hi)}
}

// Max returns the pointwise maximum interval.
func Max(a, b Interval) Interval {
	if a.IsEmpty() || b.IsEmpty() {
		return Empty
	}
	return Interval{Lo: math.Max(a.Lo, b.Lo), Hi: math.Max(a.Hi, b.Hi)}
}

// Join is the interval lattice's least upper bound: the smallest interval
// containing both a and b. ⊥ (Empty) is its identity.
func Join(a, b Interval) Interval {
	if a.IsEmpty() {
		return b
	}
	if b.IsEmpty() {
		return a
	}
	return Interval{Lo: math.Min(a.Lo, b.Lo), Hi: math.Max(a.Hi, b.Hi)}
}

// ContainsZero reports whether 0 lies within [Lo, Hi].
func (i Interval) ContainsZero() bool {
	if i.IsEmpty() {
		return false
	}
	return i.Lo <= 0 && 0 <= i.Hi
}

// StrictlyPositive reports whether every value in i is > 0.
func (i Interval) StrictlyPositive() bool {
	return !i.IsEmpty() && i.Lo > 0
}

// StrictlyNegative reports whether every value in i is < 0.
func (i Interval) StrictlyNegative() bool {
	return !i.IsEmpty() && i.Hi < 0
}

// StrictlyDominates reports whether a's lower bound exceeds b's upper bound:
// the tie-break bestSplit uses to decide "a is strictly better than b in
// every concrete instantiation".
func (a Interval) StrictlyDominates(b Interval) bool {
	if a.IsEmpty() || b.IsEmpty() {
		return false
	}
	return a.Lo > b.Hi
}

// Clamp01 clamps both bounds into [0, 1], used when deriving posteriors.
func (i Interval) Clamp01() Interval {
	if i.IsEmpty() {
		return Empty
	}
	return Interval{Lo: clamp(i.Lo, 0, 1), Hi: clamp(i.Hi, 0, 1)}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Equal reports bound-for-bound equality, treating all empty intervals as
// equal regardless of the Lo/Hi values used to represent ⊥.
func (i Interval) Equal(j Interval) bool {
	if i.IsEmpty() && j.IsEmpty() {
		return true
	}
	return i.Lo == j.Lo && i.Hi == j.Hi
}

func (i Interval) String() string {
	if i.IsEmpty() {
		return "[]"
	}
	return fmt.Sprintf("[%g, %g]", i.Lo, i.Hi)
}
