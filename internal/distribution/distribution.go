// Package distribution implements C2: a finite categorical distribution —
// a map from class id to a value of some parameterized type V, with an
// elementwise join. It is used both for plain per-class counts (V =
// float64) and for the posterior interval abstraction (V = interval.Interval).
package distribution

import (
	"fmt"
	"sort"
	"strings"
)

// Distribution is a finite map class -> V over a fixed, ordered class list.
// The class list is shared across a single evaluation (it comes from the
// dataset's label set) so two distributions over the same classes can be
// joined or compared pointwise.
type Distribution[V any] struct {
	classes []string
	values  map[string]V
}

// New builds a distribution over classes, each initialized to zero(V).
func New[V any](classes []string, zero V) Distribution[V] {
	values := make(map[string]V, len(classes))
	for _, c := range classes {
		values[c] = zero
	}
	return Distribution[V]{classes: append([]string(nil), classes...), values: values}
}

// FromMap builds a distribution from an explicit class->value map. The
// class order is the sorted key order, which keeps Classes()/Classes-order
// round trips and printed output deterministic.
func FromMap[V any](values map[string]V) Distribution[V] {
	classes := make([]string, 0, len(values))
	for c := range values {
		classes = append(classes, c)
	}
	sort.Strings(classes)
	cp := make(map[string]V, len(values))
	for k, v := range values {
		cp[k] = v
	}
	return Distribution[V]{classes: classes, values: cp}
}

// Classes returns the distribution's class list in a stable order.
func (d Distribution[V]) Classes() []string {
	return append([]string(nil), d.classes...)
}

// Get returns the value for class c and whether c is present.
func (d Distribution[V]) Get(c string) (V, bool) {
	v, ok := d.values[c]
	return v, ok
}

// Set returns a new distribution equal to d except that class c maps to v.
// Distributions are treated as immutable values: transfer functions return
// fresh distributions rather than mutating in place.
func (d Distribution[V]) Set(c string, v V) Distribution[V] {
	out := d.clone()
	if _, existed := out.values[c]; !existed {
		out.classes = append(out.classes, c)
	}
	out.values[c] = v
	return out
}

func (d Distribution[V]) clone() Distribution[V] {
	values := make(map[string]V, len(d.values))
	for k, v := range d.values {
		values[k] = v
	}
	return Distribution[V]{classes: append([]string(nil), d.classes...), values: values}
}

// Join computes the elementwise join of a and b using the supplied per-value
// join function. The result's class list is the union of both inputs',
// sorted for determinism; a class present in only one input joins against
// the other's zero value.
func Join[V any](a, b Distribution[V], zero V, join func(V, V) V) Distribution[V] {
	seen := make(map[string]bool)
	classes := make([]string, 0, len(a.classes)+len(b.classes))
	for _, c := range a.classes {
		if !seen[c] {
			seen[c] = true
			classes = append(classes, c)
		}
	}
	for _, c := range b.classes {
		if !seen[c] {
			seen[c] = true
			classes = append(classes, c)
		}
	}
	sort.Strings(classes)

	values := make(map[string]V, len(classes))
	for _, c := range classes {
		av, aok := a.values[c]
		bv, bok := b.values[c]
		switch {
		case aok && bok:
			values[c] = join(av, bv)
		case aok:
			values[c] = join(av, zero)
		case bok:
			values[c] = join(zero, bv)
		default:
			values[c] = zero
		}
	}
	return Distribution[V]{classes: classes, values: values}
}

// Sum adds every value together using the supplied addition function and
// starting accumulator. For interval-valued distributions this computes the
// interval sum used only in (deliberately unperformed) sum-to-one tightening
// attempts; see DESIGN.md for why dtrobust never calls this to normalize P#.
func Sum[V any](d Distribution[V], zero V, add func(V, V) V) V {
	acc := zero
	for _, c := range d.classes {
		acc = add(acc, d.values[c])
	}
	return acc
}

// Equal reports whether a and b hold equal values for every class, using the
// caller-supplied per-value equality.
func Equal[V any](a, b Distribution[V], eq func(V, V) bool) bool {
	if len(a.values) != len(b.values) {
		return false
	}
	for c, av := range a.values {
		bv, ok := b.values[c]
		if !ok || !eq(av, bv) {
			return false
		}
	}
	return true
}

func (d Distribution[V]) String() string {
	classes := append([]string(nil), d.classes...)
	sort.Strings(classes)
	parts := make([]string, 0, len(classes))
	for _, c := range classes {
		parts = append(parts, fmt.Sprintf("%s: %v", c, d.values[c]))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
